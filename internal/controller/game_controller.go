package controller

import (
	"balance_game_backend/internal/model"
	"balance_game_backend/internal/service"
	"balance_game_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type GameController struct {
	GameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{GameService: gameService}
}

// GetConfig godoc
// @Summary Game configuration
// @Description Returns the configuration problems are generated from
// @Tags game
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.GameConfig}
// @Failure 500 {object} util.Response
// @Router /api/game/config [get]
func (c *GameController) GetConfig(ctx *gin.Context) {
	cfg, err := c.GameService.GetConfig(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, cfg)
}

// GetProblem godoc
// @Summary New problem
// @Description Generates a target and five options holding exactly two pairs that sum to it
// @Tags game
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.Problem}
// @Failure 500 {object} util.Response
// @Router /api/game/problem [get]
func (c *GameController) GetProblem(ctx *gin.Context) {
	problem, err := c.GameService.GenerateProblem(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, problem)
}

// SubmitAnswer godoc
// @Summary Submit an answer
// @Description Checks the selected options against the target and records the outcome.
// @Description userId defaults to the authenticated user.
// @Tags game
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body model.AnswerSubmission true "Answer"
// @Success 200 {object} util.Response{data=model.AnswerResponse}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response "User not found"
// @Router /api/game/submit [post]
func (c *GameController) SubmitAnswer(ctx *gin.Context) {
	var sub model.AnswerSubmission
	if err := ctx.ShouldBindJSON(&sub); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if sub.UserID == "" {
		if claims := util.GetUserFromContext(ctx); claims != nil {
			sub.UserID = claims.UserID
		}
	}

	resp, err := c.GameService.SubmitAnswer(ctx.Request.Context(), &sub)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx, "User not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, resp)
}

package controller

import (
	"balance_game_backend/internal/model"
	"balance_game_backend/internal/service"
	"balance_game_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// CreateUserRequest defines model for creating a profile record
// swagger:model CreateUserRequest
type CreateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"omitempty,oneof=student teacher"`
}

// GetUser godoc
// @Summary Get user
// @Tags user
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "User ID"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 404 {object} util.Response
// @Router /api/user/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	user, err := c.UserService.GetUser(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx, "User not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, user)
}

// GetProgress godoc
// @Summary Get user progress
// @Description Players may read their own progress; teachers may read anyone's
// @Tags user
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "User ID"
// @Success 200 {object} util.Response{data=model.ProgressView}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/user/{id}/progress [get]
func (c *UserController) GetProgress(ctx *gin.Context) {
	view, err := c.UserService.GetProgress(util.GetUserFromContext(ctx), ctx.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		case errors.Is(err, util.ErrUserNotFound):
			util.NotFound(ctx, "User not found")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, view)
}

// CreateUser godoc
// @Summary Create user record
// @Description Stores a profile without credentials. Progress starts at level 1.
// @Tags user
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body CreateUserRequest true "Profile"
// @Success 201 {object} util.Response{data=model.User}
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/user [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := &model.User{
		Name:  req.Name,
		Email: req.Email,
		Role:  model.UserRole(req.Role),
	}
	if err := c.UserService.CreateUser(user); err != nil {
		if errors.Is(err, util.ErrEmailRegistered) {
			util.Conflict(ctx, "Email already registered")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, user)
}

package controller

import (
	"balance_game_backend/internal/model"
	"balance_game_backend/internal/service"
	"balance_game_backend/internal/util"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// SignupRequest defines model for registration
// swagger:model SignupRequest
type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=student teacher"`
}

// LoginRequest defines model for login
// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is returned by signup and login.
// swagger:model TokenResponse
type TokenResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Signup godoc
// @Summary Register a new player
// @Description Creates an account with fresh progress (xp 0, level 1) and returns a token
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body SignupRequest true "Account details"
// @Success 201 {object} util.Response{data=TokenResponse}
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response "Email already registered"
// @Failure 500 {object} util.Response
// @Router /api/auth/signup [post]
func (c *AuthController) Signup(ctx *gin.Context) {
	var req SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     model.UserRole(req.Role),
	}

	if err := c.AuthService.Register(user); err != nil {
		if errors.Is(err, util.ErrEmailRegistered) {
			util.Conflict(ctx, "Email already registered")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	token, err := c.AuthService.IssueToken(user)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, TokenResponse{Token: token, User: user})
}

// Login godoc
// @Summary Log in
// @Description Verifies email and password and returns a token
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "Credentials"
// @Success 200 {object} util.Response{data=TokenResponse}
// @Failure 400 {object} util.Response
// @Failure 401 {object} util.Response "Invalid credentials"
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, user, err := c.AuthService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) {
			util.Error(ctx, http.StatusUnauthorized, "Invalid email or password")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, TokenResponse{Token: token, User: user})
}

// GetProfile godoc
// @Summary Current user
// @Description Returns the authenticated user's record
// @Tags auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.User}
// @Failure 401 {object} util.Response
// @Router /api/auth/me [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	util.Success(ctx, user)
}

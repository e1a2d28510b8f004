package controllers

import (
	"github.com/gin-gonic/gin"

	"mineral-catalog-service/internal/app/middleware"
	"mineral-catalog-service/internal/domain/models"
	"mineral-catalog-service/internal/domain/services"
	"mineral-catalog-service/internal/domain/services/container"
	"mineral-catalog-service/internal/error/code"
	"mineral-catalog-service/internal/error/response"
)

// InterfaceAuthController handles accounts
type InterfaceAuthController interface {
	Register()
	Login()
	Me()
}

// AuthController handles registration, login and the profile
type AuthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAuthController creates a new auth controller
func NewAuthController(ctx *gin.Context, container *container.ServiceContainer) *AuthController {
	return &AuthController{
		Ctx:       ctx,
		Container: container,
	}
}

// CredentialsRequest is the body of register and login
type CredentialsRequest struct {
	Username string `json:"username" binding:"required" example:"mira"`
	Password string `json:"password" binding:"required" example:"secret1"`
}

// HandleAuthFunc returns a gin handler for an auth method
func HandleAuthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAuthController(ctx, container)

		switch method {
		case "register":
			controller.Register()
		case "login":
			controller.Login()
		case "me":
			controller.Me()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

// Register creates a regular account
// @Summary      Register
// @Description  Create a user account and return a token. New accounts never get the admin role.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body CredentialsRequest true "Credentials"
// @Success      201  {object}  SuccessResponse{data=services.AuthResult}
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse  "Username taken"
// @Failure      429  {object}  ErrorResponse
// @Router       /v1/register [post]
func (c *AuthController) Register() {
	var req CredentialsRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "username and password are required", nil)
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	result, err := userService.Register(req.Username, req.Password)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	response.Created(c.Ctx, result)
}

// Login signs a token
// @Summary      Login
// @Description  Check credentials and return a JWT token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body CredentialsRequest true "Credentials"
// @Success      200  {object}  SuccessResponse{data=services.LoginResult}
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse  "Invalid username or password"
// @Failure      429  {object}  ErrorResponse
// @Router       /v1/login [post]
func (c *AuthController) Login() {
	var req CredentialsRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "username and password are required", nil)
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	result, err := userService.Login(req.Username, req.Password)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, result)
}

// Me returns the caller's profile
// @Summary      Profile
// @Description  Current account with its favorite mineral IDs
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  SuccessResponse{data=models.Profile}
// @Failure      401  {object}  ErrorResponse
// @Router       /v1/me [get]
func (c *AuthController) Me() {
	userID := middleware.UserID(c.Ctx)
	if userID == nil {
		response.Unauthorized(c.Ctx)
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.GetUserByID(*userID)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}

	favoriteService := c.Container.GetService("favorite").(services.InterfaceFavoriteService)
	ids, err := favoriteService.ListIDs(*userID)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, models.Profile{User: user, Favorites: ids})
}

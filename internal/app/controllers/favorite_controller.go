package controllers

import (
	"github.com/gin-gonic/gin"

	"mineral-catalog-service/internal/app/middleware"
	"mineral-catalog-service/internal/domain/services"
	"mineral-catalog-service/internal/domain/services/container"
	"mineral-catalog-service/internal/error/code"
	"mineral-catalog-service/internal/error/response"
)

// FavoriteController manages the caller's favorites
type FavoriteController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewFavoriteController creates a new favorite controller
func NewFavoriteController(ctx *gin.Context, container *container.ServiceContainer) *FavoriteController {
	return &FavoriteController{
		Ctx:       ctx,
		Container: container,
	}
}

// FavoritesData lists favorite mineral IDs
type FavoritesData struct {
	Favorites []uint `json:"favorites"`
}

// HandleFavoriteFunc returns a gin handler for a favorite method
func HandleFavoriteFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewFavoriteController(ctx, container)

		switch method {
		case "list":
			controller.List()
		case "add":
			controller.Add()
		case "remove":
			controller.Remove()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

func (c *FavoriteController) service() services.InterfaceFavoriteService {
	return c.Container.GetService("favorite").(services.InterfaceFavoriteService)
}

func (c *FavoriteController) respondList(userID uint) {
	ids, err := c.service().ListIDs(userID)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, FavoritesData{Favorites: ids})
}

// List returns the caller's favorite mineral IDs
// @Summary      List favorites
// @Tags         Favorites
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  SuccessResponse{data=FavoritesData}
// @Failure      401  {object}  ErrorResponse
// @Router       /v1/favorites [get]
func (c *FavoriteController) List() {
	userID := middleware.UserID(c.Ctx)
	if userID == nil {
		response.Unauthorized(c.Ctx)
		return
	}
	c.respondList(*userID)
}

// Add marks a mineral as favorite
// @Summary      Add favorite
// @Tags         Favorites
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Mineral ID"
// @Success      200  {object}  SuccessResponse{data=FavoritesData}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/favorites/{id} [post]
func (c *FavoriteController) Add() {
	userID := middleware.UserID(c.Ctx)
	if userID == nil {
		response.Unauthorized(c.Ctx)
		return
	}
	id, ok := parseID(c.Ctx, "id")
	if !ok {
		return
	}
	if err := c.service().Add(*userID, id); err != nil {
		respondError(c.Ctx, err)
		return
	}
	c.respondList(*userID)
}

// Remove unmarks a mineral
// @Summary      Remove favorite
// @Tags         Favorites
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Mineral ID"
// @Success      200  {object}  SuccessResponse{data=FavoritesData}
// @Failure      400  {object}  ErrorResponse
// @Router       /v1/favorites/{id} [delete]
func (c *FavoriteController) Remove() {
	userID := middleware.UserID(c.Ctx)
	if userID == nil {
		response.Unauthorized(c.Ctx)
		return
	}
	id, ok := parseID(c.Ctx, "id")
	if !ok {
		return
	}
	if err := c.service().Remove(*userID, id); err != nil {
		respondError(c.Ctx, err)
		return
	}
	c.respondList(*userID)
}

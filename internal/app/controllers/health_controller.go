package controllers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"mineral-catalog-service/internal/app/middleware"
	"mineral-catalog-service/internal/domain/services"
	"mineral-catalog-service/internal/domain/services/container"
	"mineral-catalog-service/internal/error/code"
	"mineral-catalog-service/internal/error/response"
	"mineral-catalog-service/internal/infrastructure/database"
)

// HealthCheckController reports liveness and dependency status
type HealthCheckController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
	Cache     *middleware.ResponseCache
}

// NewHealthCheckController creates a new health check controller
func NewHealthCheckController(ctx *gin.Context, container *container.ServiceContainer, cache *middleware.ResponseCache) *HealthCheckController {
	return &HealthCheckController{
		Ctx:       ctx,
		Container: container,
		Cache:     cache,
	}
}

// HealthStatus is the dependency report
type HealthStatus struct {
	Status        string `json:"status" example:"ok"`
	Database      string `json:"database" example:"ok"`
	Redis         string `json:"redis" example:"disabled"`
	Translation   string `json:"translation" example:"ok"`
	StorageDriver string `json:"storage_driver" example:"local"`
	CheckedAt     string `json:"checked_at" example:"2024-01-01T00:00:00Z"`
}

// HandleHealthFunc returns a gin handler for a health method
func HandleHealthFunc(container *container.ServiceContainer, cache *middleware.ResponseCache, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewHealthCheckController(ctx, container, cache)

		switch method {
		case "ping":
			controller.Ping()
		case "status":
			controller.Status()
		case "cache-stats":
			controller.CacheStats()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

// Ping is the liveness probe
// @Summary      Ping
// @Tags         Health
// @Produce      json
// @Success      200  {object}  SuccessResponse
// @Router       /ping [get]
// @Router       /health [get]
func (h *HealthCheckController) Ping() {
	response.Success(h.Ctx, gin.H{
		"status":  "healthy",
		"message": "pong",
	})
}

// Status checks the database, Redis and the translation service in parallel
// @Summary      Dependency status
// @Tags         Health
// @Produce      json
// @Success      200  {object}  SuccessResponse{data=HealthStatus}
// @Failure      503  {object}  ErrorResponse{data=HealthStatus}
// @Router       /health/status [get]
func (h *HealthCheckController) Status() {
	ctx, cancel := context.WithTimeout(h.Ctx.Request.Context(), 3*time.Second)
	defer cancel()

	status := HealthStatus{
		Status:        "ok",
		Database:      "ok",
		Redis:         "disabled",
		Translation:   "ok",
		StorageDriver: h.Container.GetService("asset").(services.InterfaceAssetService).Driver(),
	}

	var g errgroup.Group
	g.Go(func() error {
		if err := database.Ping(h.Container.GetDB()); err != nil {
			status.Database = "error: " + err.Error()
		}
		return nil
	})
	if redisService, ok := h.Container.GetService("redis").(services.InterfaceRedisService); ok && redisService != nil {
		g.Go(func() error {
			status.Redis = "ok"
			if err := redisService.Ping(ctx); err != nil {
				status.Redis = "error: " + err.Error()
			}
			return nil
		})
	}
	g.Go(func() error {
		translation := h.Container.GetService("translation").(services.InterfaceTranslationService)
		if err := translation.CheckAvailability(ctx); err != nil {
			status.Translation = "unavailable"
		}
		return nil
	})
	_ = g.Wait()

	status.CheckedAt = time.Now().UTC().Format(time.RFC3339)
	if status.Database != "ok" {
		status.Status = "degraded"
		response.FailWithMessage(h.Ctx, code.ErrConnectionFailed, "database unreachable", status)
		return
	}
	response.Success(h.Ctx, status)
}

// CacheStats reports the response cache
// @Summary      Response cache stats
// @Tags         Health
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  SuccessResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /health/cache-stats [get]
func (h *HealthCheckController) CacheStats() {
	if h.Cache == nil {
		response.Success(h.Ctx, gin.H{"total_items": 0})
		return
	}
	response.Success(h.Ctx, h.Cache.Stats())
}

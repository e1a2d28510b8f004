package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mineral-catalog-service/internal/domain/services"
	"mineral-catalog-service/internal/domain/services/container"
	"mineral-catalog-service/internal/error/code"
	"mineral-catalog-service/internal/error/response"
)

// UploadController stores standalone assets for later use in a mineral form
type UploadController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewUploadController creates a new upload controller
func NewUploadController(ctx *gin.Context, container *container.ServiceContainer) *UploadController {
	return &UploadController{
		Ctx:       ctx,
		Container: container,
	}
}

// UploadData is the public path of a stored asset
type UploadData struct {
	Path string `json:"path" example:"/storage/models/0b8e4f5c-3c1e-4d3e-9b1a-8f0d2c7e6a11.glb"`
}

// HandleUploadFunc returns a gin handler for an upload method
func HandleUploadFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewUploadController(ctx, container)

		switch method {
		case "model":
			controller.Upload(services.AssetModel, "model")
		case "preview":
			controller.Upload(services.AssetPreview, "preview")
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

// Upload stores the file sent in field
// @Summary      Upload asset
// @Description  Store a .glb model (field "model") or a preview image (field "preview")
// @Tags         Admin
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        model    formData  file  false  ".glb model, for /v1/admin/upload/model"
// @Param        preview  formData  file  false  "Preview image, for /v1/admin/upload/preview"
// @Success      201  {object}  SuccessResponse{data=UploadData}
// @Failure      400  {object}  ErrorResponse
// @Failure      413  {object}  ErrorResponse
// @Router       /v1/admin/upload/model [post]
// @Router       /v1/admin/upload/preview [post]
func (c *UploadController) Upload(kind services.AssetKind, field string) {
	file, err := c.Ctx.FormFile(field)
	if err != nil {
		var maxBytes *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytes):
			response.Fail(c.Ctx, code.ErrFileTooLarge, nil)
		case errors.Is(err, http.ErrMissingFile):
			response.FailWithMessage(c.Ctx, code.ErrFileMissing, field+" file is required", nil)
		default:
			response.FailWithMessage(c.Ctx, code.ErrBind, "multipart form expected", nil)
		}
		return
	}

	assets := c.Container.GetService("asset").(services.InterfaceAssetService)
	var path string
	if kind == services.AssetModel {
		path, err = assets.SaveModel(c.Ctx.Request.Context(), file)
	} else {
		path, err = assets.SavePreview(c.Ctx.Request.Context(), file)
	}
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	response.Created(c.Ctx, UploadData{Path: path})
}

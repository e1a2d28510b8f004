package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mineral-catalog-service/internal/app/middleware"
	"mineral-catalog-service/internal/domain/services"
	"mineral-catalog-service/internal/domain/services/container"
	"mineral-catalog-service/internal/error/code"
	"mineral-catalog-service/internal/error/response"
)

// InterfaceMineralController handles the catalog
type InterfaceMineralController interface {
	List()
	Get()
	Create()
	Update()
	Delete()
	QRCode()
}

// MineralController serves catalog entries
type MineralController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewMineralController creates a new mineral controller
func NewMineralController(ctx *gin.Context, container *container.ServiceContainer) *MineralController {
	return &MineralController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleMineralFunc returns a gin handler for a mineral method
func HandleMineralFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewMineralController(ctx, container)

		switch method {
		case "list":
			controller.List()
		case "get":
			controller.Get()
		case "create":
			controller.Create()
		case "update":
			controller.Update()
		case "delete":
			controller.Delete()
		case "qr":
			controller.QRCode()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

func (c *MineralController) service() services.InterfaceMineralService {
	return c.Container.GetService("mineral").(services.InterfaceMineralService)
}

// List returns the catalog
// @Summary      List minerals
// @Description  Filtered, sorted and optionally paginated catalog. The total count is sent in X-Total-Count.
// @Tags         Minerals
// @Produce      json
// @Param        sort            query  string  false  "id, title or created_at"
// @Param        order           query  string  false  "asc or desc"
// @Param        search          query  string  false  "Title prefix"
// @Param        favorites_only  query  bool    false  "Only the caller's favorites"
// @Param        page            query  int     false  "Page, starting at 1"
// @Param        page_size       query  int     false  "Page size, at most 100"
// @Success      200  {object}  SuccessResponse{data=[]models.MineralView}
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse  "favorites_only without a token"
// @Router       /v1/minerals [get]
func (c *MineralController) List() {
	var query services.ListQuery
	if err := c.Ctx.ShouldBindQuery(&query); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid query parameters", nil)
		return
	}
	if query.Page < 0 || query.PageSize < 0 {
		response.FailWithMessage(c.Ctx, code.ErrValidation, "page and page_size must be positive", nil)
		return
	}

	views, total, err := c.service().List(query, middleware.UserID(c.Ctx))
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	c.Ctx.Header("X-Total-Count", strconv.FormatInt(total, 10))
	response.Success(c.Ctx, views)
}

// Get returns one entry
// @Summary      Get mineral
// @Description  One entry with its description rendered as sanitized HTML
// @Tags         Minerals
// @Produce      json
// @Param        id   path      int  true  "Mineral ID"
// @Success      200  {object}  SuccessResponse{data=models.MineralView}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/minerals/{id} [get]
func (c *MineralController) Get() {
	id, ok := parseID(c.Ctx, "id")
	if !ok {
		return
	}
	view, err := c.service().Get(id, middleware.UserID(c.Ctx))
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, view)
}

// formFile returns the named upload, or nil when it was not sent
func formFile(form *multipart.Form, name string) *multipart.FileHeader {
	if form == nil || len(form.File[name]) == 0 {
		return nil
	}
	return form.File[name][0]
}

func formValue(form *multipart.Form, name string) string {
	if form == nil || len(form.Value[name]) == 0 {
		return ""
	}
	return form.Value[name][0]
}

// readMineralInput parses the multipart body. An oversized body is reported as 413.
func readMineralInput(ctx *gin.Context) (services.MineralInput, bool) {
	form, err := ctx.MultipartForm()
	if err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			response.Fail(ctx, code.ErrFileTooLarge, nil)
			return services.MineralInput{}, false
		}
		response.FailWithMessage(ctx, code.ErrBind, "multipart form expected", nil)
		return services.MineralInput{}, false
	}
	return services.MineralInput{
		Title:       formValue(form, "title"),
		Description: formValue(form, "description"),
		Model:       formFile(form, "model"),
		Preview:     formFile(form, "preview"),
	}, true
}

// Create adds an entry
// @Summary      Create mineral
// @Description  Multipart upload of a title, an optional description, a .glb model and a preview image
// @Tags         Admin
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title        formData  string  true   "Title"
// @Param        description  formData  string  false  "Markdown description"
// @Param        model        formData  file    true   ".glb model"
// @Param        preview      formData  file    true   "Preview image (jpg, png)"
// @Success      201  {object}  SuccessResponse{data=models.Mineral}
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      413  {object}  ErrorResponse
// @Router       /v1/admin/minerals [post]
func (c *MineralController) Create() {
	input, ok := readMineralInput(c.Ctx)
	if !ok {
		return
	}
	mineral, err := c.service().Create(c.Ctx.Request.Context(), input)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	response.Created(c.Ctx, mineral)
}

// Update changes an entry
// @Summary      Update mineral
// @Description  Multipart update. Omitted or blank fields keep their stored values.
// @Tags         Admin
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id           path      int     true   "Mineral ID"
// @Param        title        formData  string  false  "Title"
// @Param        description  formData  string  false  "Markdown description"
// @Param        model        formData  file    false  ".glb model"
// @Param        preview      formData  file    false  "Preview image (jpg, png)"
// @Success      200  {object}  SuccessResponse{data=models.Mineral}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      413  {object}  ErrorResponse
// @Router       /v1/admin/minerals/{id} [put]
func (c *MineralController) Update() {
	id, ok := parseID(c.Ctx, "id")
	if !ok {
		return
	}
	input, ok := readMineralInput(c.Ctx)
	if !ok {
		return
	}
	mineral, err := c.service().Update(c.Ctx.Request.Context(), id, input)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, mineral)
}

// Delete removes an entry with its assets
// @Summary      Delete mineral
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Mineral ID"
// @Success      200  {object}  SuccessResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/admin/minerals/{id} [delete]
func (c *MineralController) Delete() {
	id, ok := parseID(c.Ctx, "id")
	if !ok {
		return
	}
	if err := c.service().Delete(c.Ctx.Request.Context(), id); err != nil {
		respondError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, nil)
}

// QRCode renders a QR code linking to the entry in the web client
// @Summary      Mineral QR code
// @Tags         Minerals
// @Produce      png
// @Param        id    path   int  true   "Mineral ID"
// @Param        size  query  int  false  "Edge length in pixels, 64 to 1024"
// @Success      200  {file}    binary
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/minerals/{id}/qr [get]
func (c *MineralController) QRCode() {
	id, ok := parseID(c.Ctx, "id")
	if !ok {
		return
	}
	size := 0
	if raw := c.Ctx.Query("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.FailWithMessage(c.Ctx, code.ErrValidation, "size must be a number", nil)
			return
		}
		size = n
	}

	if _, err := c.service().GetMineral(id); err != nil {
		respondError(c.Ctx, err)
		return
	}

	qr := c.Container.GetService("qrcode").(services.InterfaceQRCodeService)
	png, err := qr.Generate(id, size)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	c.Ctx.Header("Cache-Control", "public, max-age=3600")
	c.Ctx.Data(http.StatusOK, "image/png", png)
}

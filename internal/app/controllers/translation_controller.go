package controllers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"mineral-catalog-service/internal/domain/models"
	"mineral-catalog-service/internal/domain/services"
	"mineral-catalog-service/internal/domain/services/container"
	"mineral-catalog-service/internal/error/code"
	"mineral-catalog-service/internal/error/response"
)

// TranslationController serves the catalog in other languages
type TranslationController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewTranslationController creates a new translation controller
func NewTranslationController(ctx *gin.Context, container *container.ServiceContainer) *TranslationController {
	return &TranslationController{
		Ctx:       ctx,
		Container: container,
	}
}

// TranslatedList is a translated catalog slice
type TranslatedList struct {
	Language       string           `json:"language" example:"en"`
	SourceLanguage string           `json:"source_language" example:"ru"`
	Minerals       []models.Mineral `json:"minerals"`
}

// HandleTranslationFunc returns a gin handler for a translation method
func HandleTranslationFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewTranslationController(ctx, container)

		switch method {
		case "languages":
			controller.Languages()
		case "list":
			controller.List()
		case "get":
			controller.Get()
		case "search":
			controller.Search()
		case "find":
			controller.Find()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

func (c *TranslationController) translation() services.InterfaceTranslationService {
	return c.Container.GetService("translation").(services.InterfaceTranslationService)
}

func (c *TranslationController) minerals() services.InterfaceMineralService {
	return c.Container.GetService("mineral").(services.InterfaceMineralService)
}

// languages reads lang and source_lang, both defaulting to the catalog language
func (c *TranslationController) languages() (target, source string, ok bool) {
	svc := c.translation()
	target = c.Ctx.DefaultQuery("lang", svc.SourceLanguage())
	source = c.Ctx.DefaultQuery("source_lang", svc.SourceLanguage())
	for _, lang := range []string{target, source} {
		if !svc.IsSupported(lang) {
			response.FailWithMessage(c.Ctx, code.ErrLanguageNotSupported, "language not supported: "+lang, nil)
			return "", "", false
		}
	}
	return target, source, true
}

// Languages lists translation targets
// @Summary      Supported languages
// @Tags         Translation
// @Produce      json
// @Success      200  {object}  SuccessResponse{data=[]models.Language}
// @Router       /v1/languages [get]
func (c *TranslationController) Languages() {
	response.Success(c.Ctx, c.translation().SupportedLanguages())
}

// List returns the whole catalog translated
// @Summary      Translated catalog
// @Description  Entries whose translation fails keep their original text
// @Tags         Translation
// @Produce      json
// @Param        lang         query  string  false  "Target language"  default(ru)
// @Param        source_lang  query  string  false  "Source language"  default(ru)
// @Success      200  {object}  SuccessResponse{data=TranslatedList}
// @Failure      400  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /v1/minerals-translated [get]
func (c *TranslationController) List() {
	target, source, ok := c.languages()
	if !ok {
		return
	}
	all, err := c.minerals().All()
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	translated, err := c.translation().TranslateMinerals(c.Ctx.Request.Context(), all, source, target)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}

	list := make([]models.Mineral, len(translated))
	for i, t := range translated {
		list[i] = t.Mineral
	}
	response.Success(c.Ctx, TranslatedList{Language: target, SourceLanguage: source, Minerals: list})
}

// Get returns one translated entry
// @Summary      Translated mineral
// @Tags         Translation
// @Produce      json
// @Param        id           path   int     true   "Mineral ID"
// @Param        lang         query  string  false  "Target language"  default(ru)
// @Param        source_lang  query  string  false  "Source language"  default(ru)
// @Success      200  {object}  SuccessResponse{data=models.Mineral}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /v1/minerals-translated/{id} [get]
func (c *TranslationController) Get() {
	id, ok := parseID(c.Ctx, "id")
	if !ok {
		return
	}
	target, source, ok := c.languages()
	if !ok {
		return
	}
	mineral, err := c.minerals().GetMineral(id)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	translated, err := c.translation().TranslateMineral(c.Ctx.Request.Context(), *mineral, source, target)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, translated)
}

// Search matches stored titles by prefix and translates the matches
// @Summary      Search and translate
// @Description  Prefix search on the stored titles. Entries that fail to translate are skipped.
// @Tags         Translation
// @Produce      json
// @Param        query        query  string  true   "Title prefix in the source language"
// @Param        lang         query  string  false  "Target language"  default(ru)
// @Param        source_lang  query  string  false  "Source language"  default(ru)
// @Success      200  {object}  SuccessResponse{data=TranslatedList}
// @Failure      400  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /v1/minerals-search [get]
func (c *TranslationController) Search() {
	query := strings.TrimSpace(c.Ctx.Query("query"))
	if query == "" {
		response.FailWithMessage(c.Ctx, code.ErrValidation, "query is required", nil)
		return
	}
	target, source, ok := c.languages()
	if !ok {
		return
	}

	found, err := c.minerals().SearchByTitlePrefix(query)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	translated, err := c.translation().TranslateMinerals(c.Ctx.Request.Context(), found, source, target)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}

	list := []models.Mineral{}
	for _, t := range translated {
		if t.TitleTranslated {
			list = append(list, t.Mineral)
		}
	}
	response.Success(c.Ctx, TranslatedList{Language: target, SourceLanguage: source, Minerals: list})
}

// Find matches the query against translated titles
// @Summary      Find by translated title
// @Description  Translates every title and keeps those starting with the query, case-insensitively
// @Tags         Translation
// @Produce      json
// @Security     BearerAuth
// @Param        query  query  string  false  "Title prefix in the target language"
// @Param        lang   query  string  false  "Target language"  default(ru)
// @Success      200  {object}  SuccessResponse{data=[]models.Mineral}
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /v1/find-minerals [get]
func (c *TranslationController) Find() {
	target, source, ok := c.languages()
	if !ok {
		return
	}
	query := strings.TrimSpace(c.Ctx.Query("query"))
	if query == "" {
		response.Success(c.Ctx, []models.Mineral{})
		return
	}

	all, err := c.minerals().All()
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	matched, err := c.translation().FilterByTranslatedTitle(c.Ctx.Request.Context(), all, query, source, target)
	if err != nil {
		if errors.Is(err, services.ErrServiceUnavailable) {
			response.Fail(c.Ctx, code.ErrTranslationUnavailable, nil)
			return
		}
		respondError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, matched)
}

package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mineral-catalog-service/internal/domain/models"
	"mineral-catalog-service/internal/domain/services"
	"mineral-catalog-service/internal/error/code"
	"mineral-catalog-service/internal/error/response"
	Logger "mineral-catalog-service/pkg/logger"
)

// ErrorResponse documents the failure envelope
type ErrorResponse struct {
	Code    int         `json:"code" example:"100003"`
	Message string      `json:"message" example:"request validation failed"`
	Data    interface{} `json:"data"`
}

// SuccessResponse documents the success envelope
type SuccessResponse struct {
	Code    int         `json:"code" example:"100000"`
	Message string      `json:"message" example:"success"`
	Data    interface{} `json:"data"`
}

var errorCodes = []struct {
	err  error
	code int
}{
	{services.ErrUserAlreadyExists, code.ErrUserAlreadyExist},
	{services.ErrUserNotFound, code.ErrUserNotFound},
	{services.ErrInvalidCredentials, code.ErrUserPasswordIncorrect},
	{services.ErrInvalidUsername, code.ErrValidation},
	{services.ErrInvalidPassword, code.ErrValidation},
	{services.ErrInvalidToken, code.ErrTokenInvalid},
	{services.ErrAuthRequired, code.ErrTokenInvalid},
	{services.ErrMineralNotFound, code.ErrMineralNotFound},
	{services.ErrInvalidQuery, code.ErrValidation},
	{services.ErrFileMissing, code.ErrFileMissing},
	{services.ErrFileTooLarge, code.ErrFileTooLarge},
	{services.ErrUnsupportedFileType, code.ErrFileTypeUnsupported},
	{services.ErrLanguageNotSupported, code.ErrLanguageNotSupported},
	{services.ErrServiceUnavailable, code.ErrTranslationUnavailable},
	{services.ErrInvalidResponse, code.ErrTranslationInvalidResponse},
	{services.ErrTranslationFailed, code.ErrTranslationFailed},
	{services.ErrEmptyText, code.ErrValidation},
}

// internalErrors are logged and answered with the code's generic message
var internalErrors = []struct {
	err  error
	code int
}{
	{services.ErrFavoriteFailed, code.ErrFavoriteFailed},
	{services.ErrStorageFailed, code.ErrFileStorage},
	{services.ErrDatabase, code.ErrDatabase},
}

// respondError maps a service error to its code. Unknown errors are logged
// and reported without detail.
func respondError(ctx *gin.Context, err error) {
	if models.IsValidationError(err) {
		response.FailWithMessage(ctx, code.ErrMineralInvalid, err.Error(), nil)
		return
	}
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		response.Fail(ctx, code.ErrFileTooLarge, nil)
		return
	}
	for _, m := range errorCodes {
		if errors.Is(err, m.err) {
			response.FailWithMessage(ctx, m.code, err.Error(), nil)
			return
		}
	}

	Logger.Error("%s %s: %v", ctx.Request.Method, ctx.FullPath(), err)
	_ = ctx.Error(err)
	for _, m := range internalErrors {
		if errors.Is(err, m.err) {
			response.Fail(ctx, m.code, nil)
			return
		}
	}
	response.ServerError(ctx)
}

// parseID reads a positive numeric path parameter
func parseID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.ParamError(ctx, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mineral-catalog-service/internal/error/code"
)

// Response is the envelope every JSON endpoint returns
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Success writes a 200 envelope
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    code.ErrSuccess,
		Message: code.GetMessage(code.ErrSuccess),
		Data:    data,
	})
}

// Created writes a 201 envelope
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    code.ErrCreated,
		Message: code.GetMessage(code.ErrCreated),
		Data:    data,
	})
}

// Fail writes the default message of errorCode with its HTTP status
func Fail(c *gin.Context, errorCode int, data interface{}) {
	c.JSON(code.GetStatus(errorCode), Response{
		Code:    errorCode,
		Message: code.GetMessage(errorCode),
		Data:    data,
	})
}

// FailWithMessage is Fail with a custom message
func FailWithMessage(c *gin.Context, errorCode int, message string, data interface{}) {
	c.JSON(code.GetStatus(errorCode), Response{
		Code:    errorCode,
		Message: message,
		Data:    data,
	})
}

// Abort writes a failure and stops the handler chain
func Abort(c *gin.Context, errorCode int, message string) {
	if message == "" {
		message = code.GetMessage(errorCode)
	}
	c.AbortWithStatusJSON(code.GetStatus(errorCode), Response{
		Code:    errorCode,
		Message: message,
	})
}

// ParamError responds with a validation failure
func ParamError(c *gin.Context, message string) {
	if message == "" {
		message = code.GetMessage(code.ErrValidation)
	}
	FailWithMessage(c, code.ErrValidation, message, nil)
}

// ServerError responds with an unknown error
func ServerError(c *gin.Context) {
	Fail(c, code.ErrUnknown, nil)
}

// Unauthorized responds with 401
func Unauthorized(c *gin.Context) {
	Fail(c, code.ErrTokenInvalid, nil)
}

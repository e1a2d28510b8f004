package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mineral-catalog-service/internal/domain/services"
	"mineral-catalog-service/internal/error/code"
	"mineral-catalog-service/internal/error/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func respond(t *testing.T, err error) (int, response.Response) {
	t.Helper()
	w := httptest.NewRecorder()
	ctx, r := gin.CreateTestContext(w)
	r.GET("/x", func(c *gin.Context) { respondError(c, err) })
	ctx.Request = httptest.NewRequest(http.MethodGet, "/x", nil)
	r.HandleContext(ctx)

	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestRespondErrorInternalFailures(t *testing.T) {
	secret := errors.New("dial tcp 10.0.0.5:3306: connection refused")
	cases := []struct {
		name   string
		err    error
		code   int
		status int
	}{
		{"favorite", fmt.Errorf("%w: add: %w", services.ErrFavoriteFailed, secret), code.ErrFavoriteFailed, http.StatusInternalServerError},
		{"storage", fmt.Errorf("%w: write model: %w", services.ErrStorageFailed, secret), code.ErrFileStorage, http.StatusInternalServerError},
		{"database", fmt.Errorf("%w: list minerals: %w", services.ErrDatabase, secret), code.ErrDatabase, http.StatusInternalServerError},
		{"unknown", secret, code.ErrUnknown, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := respond(t, tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, body.Code)
			assert.Equal(t, code.GetMessage(tc.code), body.Message)
			assert.NotContains(t, body.Message, "10.0.0.5")
		})
	}
}

func TestRespondErrorDomainFailures(t *testing.T) {
	status, body := respond(t, fmt.Errorf("get: %w", services.ErrMineralNotFound))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, code.ErrMineralNotFound, body.Code)

	status, body = respond(t, services.ErrUserAlreadyExists)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, code.ErrUserAlreadyExist, body.Code)
}

func TestParseID(t *testing.T) {
	for _, raw := range []string{"0", "abc", "-4"} {
		w := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(w)
		ctx.Params = gin.Params{{Key: "id", Value: raw}}

		_, ok := parseID(ctx, "id")
		assert.False(t, ok, raw)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var body response.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, code.ErrValidation, body.Code)
		assert.Equal(t, "invalid id", body.Message)
	}

	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Params = gin.Params{{Key: "id", Value: "42"}}
	id, ok := parseID(ctx, "id")
	assert.True(t, ok)
	assert.EqualValues(t, 42, id)
}

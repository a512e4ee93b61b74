package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/invento/backend/internal/interfaces/http/dto"
)

// Binding failures never reach the service, so a nil service is safe here.
func newAuthRouter() *gin.Engine {
	h := NewAuthHandler(nil, zap.NewNop())
	router := gin.New()
	h.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register_FieldErrors(t *testing.T) {
	router := newAuthRouter()

	w := postJSON(router, "/api/v1/auth/register", `{"email": "not-an-email", "password": "short"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, []string{"Enter a valid email address."}, resp.Error.Fields["email"])
	assert.Equal(t, []string{"Ensure this field has at least 8 characters."}, resp.Error.Fields["password"])
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	router := newAuthRouter()

	w := postJSON(router, "/api/v1/auth/register", `{}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, []string{"This field is required."}, resp.Error.Fields["email"])
	assert.Equal(t, []string{"This field is required."}, resp.Error.Fields["password"])
}

func TestAuthHandler_Register_MalformedJSON(t *testing.T) {
	router := newAuthRouter()

	w := postJSON(router, "/api/v1/auth/register", `{broken`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeInvalidJSON, resp.Error.Code)
}

func TestAuthHandler_Refresh_MissingToken(t *testing.T) {
	router := newAuthRouter()

	w := postJSON(router, "/api/v1/auth/refresh", `{}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, []string{"This field is required."}, resp.Error.Fields["refresh_token"])
}

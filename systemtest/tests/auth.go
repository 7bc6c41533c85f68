package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presenceops/presence-cloud/internal/api/http/dto"
)

func TestHealthCheck(t *testing.T, router *gin.Engine) {
	rr := doJSON(router, "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp dto.HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestLogin(t *testing.T, router *gin.Engine, username, password string) {
	t.Run("success", func(t *testing.T) {
		body := dto.LoginRequest{Username: username, Password: password}
		rr := doJSON(router, "POST", "/api/auth/login", body)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp dto.LoginResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "Login successful", resp.Message)
	})

	t.Run("wrong password", func(t *testing.T) {
		body := dto.LoginRequest{Username: username, Password: "wrongpassword"}
		rr := doJSON(router, "POST", "/api/auth/login", body)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		body := dto.LoginRequest{Username: "nobody", Password: password}
		rr := doJSON(router, "POST", "/api/auth/login", body)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("missing password", func(t *testing.T) {
		body := dto.LoginRequest{Username: username}
		rr := doJSON(router, "POST", "/api/auth/login", body)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	// clear the failure counter so later logins are unaffected
	rr := doJSON(router, "POST", "/api/auth/login", dto.LoginRequest{Username: username, Password: password})
	require.Equal(t, http.StatusOK, rr.Code)
}

func login(t *testing.T, router *gin.Engine, username, password string) string {
	t.Helper()
	rr := doJSON(router, "POST", "/api/auth/login", dto.LoginRequest{Username: username, Password: password})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Token
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	return doJSONWithAuth(router, method, path, body, "")
}

func doJSONWithAuth(router *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "importserver/server/errors"
)

func performRequest(r http.Handler, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRespondWithError_AppError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/boom", func(c *gin.Context) {
		RespondWithError(c, apperrors.NewValidationError("records field is required", nil))
	})

	w := performRequest(router, http.MethodGet, "/boom")

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != "records field is required" {
		t.Errorf("error message = %q, want %q", resp.Error, "records field is required")
	}
}

func TestRespondWithError_PlainErrorBecomesInternal(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/boom", func(c *gin.Context) {
		RespondWithError(c, errors.New("sqlite: disk I/O error"))
	})

	w := performRequest(router, http.MethodGet, "/boom")

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	// внутренние детали не должны утекать в ответ
	if resp.Error != "Internal server error" {
		t.Errorf("error message = %q, want generic message", resp.Error)
	}
}

func TestGinRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(GinRequestIDMiddleware())
	router.GET("/ping", func(c *gin.Context) {
		if GetRequestIDFromGin(c) == "" {
			t.Error("request id missing in gin context")
		}
		if GetRequestID(c.Request.Context()) == "" {
			t.Error("request id missing in request context")
		}
		c.Status(http.StatusOK)
	})

	w := performRequest(router, http.MethodGet, "/ping")

	if w.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header not set in response")
	}
}

func TestGinRequestIDMiddleware_PreservesIncomingID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(GinRequestIDMiddleware())
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "test-id-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "test-id-123" {
		t.Errorf("X-Request-ID = %q, want %q", got, "test-id-123")
	}
}

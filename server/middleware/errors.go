package middleware

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "importserver/server/errors"
)

// ErrorResponse структура ответа об ошибке
type ErrorResponse struct {
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id,omitempty"`
}

// RespondWithError записывает ошибку в JSON ответ и логирует её.
// AppError дает свой статус и сообщение, любая другая ошибка
// превращается в 500 с общим сообщением.
func RespondWithError(c *gin.Context, err error) {
	reqID := GetRequestIDFromGin(c)

	statusCode := 500
	message := "Internal server error"

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		statusCode = appErr.StatusCode()
		message = appErr.UserMessage()
	}

	attrs := []any{
		"error", err.Error(),
		"status_code", statusCode,
		"request_id", reqID,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	}
	if appErr != nil && appErr.Context != "" {
		attrs = append(attrs, "context", appErr.Context)
	}
	slog.Error("HTTP error", attrs...)

	c.JSON(statusCode, ErrorResponse{
		Error:     message,
		Timestamp: time.Now().Format(time.RFC3339),
		RequestID: reqID,
	})
}

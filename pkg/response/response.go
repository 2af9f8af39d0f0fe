package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// APIResponse is the uniform envelope for every endpoint.
type APIResponse[T any] struct {
	StatusCode int         `json:"statusCode"`
	Timestamp  time.Time   `json:"timestamp"`
	RequestID  string      `json:"request_id,omitempty"`
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       T           `json:"data,omitempty"`
	Meta       interface{} `json:"meta,omitempty"`
	Errors     interface{} `json:"errors,omitempty"`
}

// Success writes the envelope with the given status and returns it.
func Success[T any](ctx *gin.Context, status int, data T, message string, meta interface{}) APIResponse[T] {
	if status == 0 {
		status = http.StatusOK
	}
	resp := APIResponse[T]{
		StatusCode: status,
		Timestamp:  time.Now(),
		RequestID:  ctx.GetString("request_id"),
		Success:    true,
		Message:    message,
		Data:       data,
		Meta:       meta,
	}
	ctx.JSON(status, resp)
	return resp
}

// Error writes the error envelope with the given status and returns it.
func Error[T any](ctx *gin.Context, status int, message string, errs interface{}) APIResponse[T] {
	if status == 0 {
		status = http.StatusBadRequest
	}
	resp := APIResponse[T]{
		StatusCode: status,
		Timestamp:  time.Now(),
		RequestID:  ctx.GetString("request_id"),
		Success:    false,
		Message:    message,
		Errors:     errs,
	}
	ctx.JSON(status, resp)
	return resp
}

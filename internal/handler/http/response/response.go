package response

import (
	"encoding/json"
	"net/http"
)

type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    interface{}  `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
	Meta    *Meta        `json:"meta,omitempty"`
}

type ErrorDetail struct {
	Code   string            `json:"code"`
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields,omitempty"`
}

type Meta struct {
	Skip       int   `json:"skip"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"total_items"`
}

// JSON writes payload without the envelope
func JSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		fallback := Response{
			Success: false,
			Error: &ErrorDetail{
				Code:   "ENCODING_ERROR",
				Detail: "Failed to encode response",
			},
		}
		_ = json.NewEncoder(w).Encode(fallback)
	}
}

// Success responses
func Success(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

func SuccessWithMessage(w http.ResponseWriter, message string, data interface{}) {
	JSON(w, http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Created(w http.ResponseWriter, message string, data interface{}) {
	JSON(w, http.StatusCreated, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func SuccessWithMeta(w http.ResponseWriter, data interface{}, meta *Meta) {
	JSON(w, http.StatusOK, Response{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func errorResponse(w http.ResponseWriter, statusCode int, code, detail string, fields map[string]string) {
	JSON(w, statusCode, Response{
		Success: false,
		Error: &ErrorDetail{
			Code:   code,
			Detail: detail,
			Fields: fields,
		},
	})
}

// Error responses
func BadRequest(w http.ResponseWriter, detail string, fields map[string]string) {
	errorResponse(w, http.StatusBadRequest, "BAD_REQUEST", detail, fields)
}

func ValidationError(w http.ResponseWriter, fields map[string]string) {
	errorResponse(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", fields)
}

// Unauthorized also sets the bearer challenge header
func Unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	errorResponse(w, http.StatusUnauthorized, "UNAUTHORIZED", detail, nil)
}

func Forbidden(w http.ResponseWriter, detail string) {
	errorResponse(w, http.StatusForbidden, "FORBIDDEN", detail, nil)
}

func NotFound(w http.ResponseWriter, detail string) {
	errorResponse(w, http.StatusNotFound, "NOT_FOUND", detail, nil)
}

func Conflict(w http.ResponseWriter, detail string) {
	errorResponse(w, http.StatusConflict, "CONFLICT", detail, nil)
}

func RequestEntityTooLarge(w http.ResponseWriter, detail string) {
	errorResponse(w, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", detail, nil)
}

func InternalServerError(w http.ResponseWriter, detail string) {
	errorResponse(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", detail, nil)
}

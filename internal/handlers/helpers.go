package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/unionprice/union-price-api/internal/model"
	"go.uber.org/zap"
)

// RequestIDHeader carries the request id on both requests and responses.
const RequestIDHeader = "X-Request-ID"

func writeJson(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.S().Errorw("Failed to write json response", "status", status, "error", err)
	}
}

// writeRaw sends an already encoded body.
func writeRaw(w http.ResponseWriter, status int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)

	if _, err := w.Write(body); err != nil {
		zap.S().Errorw("Failed to write response body", "status", status, "error", err)
	}
}

// RequestID returns the id of r, generating one when the client sent none.
// The id is echoed on the response.
func RequestID(w http.ResponseWriter, r *http.Request) string {
	reqID := r.Header.Get(RequestIDHeader)
	if reqID == "" {
		reqID = uuid.NewString()
		r.Header.Set(RequestIDHeader, reqID)
	}
	w.Header().Set(RequestIDHeader, reqID)
	return reqID
}

func RespondErrorJSON(w http.ResponseWriter, r *http.Request, status int, code string, message string, details []model.ErrorDetails) {
	reqID := RequestID(w, r)

	payload := model.APIResponse[any]{
		Status: "error",
		Metadata: model.Metadata{
			Timestamp: time.Now().UTC(),
			RequestID: reqID,
		},
		Error: &model.APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
	writeJson(w, status, payload)
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	RespondErrorJSON(w, r, http.StatusNotFound, ErrNotFound.Error(), "route not found", nil)
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	RespondErrorJSON(w, r, http.StatusMethodNotAllowed, ErrMethodNotAllowed.Error(), "method not allowed", nil)
}

// Health reports liveness.
func Health(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"message": "ok",
		"time":    time.Now().Format(time.RFC3339),
	}
	writeJson(w, http.StatusOK, resp)
}

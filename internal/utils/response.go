package utils

import (
	"encoding/json"
	"net/http"

	"accounts-service/internal/dto"
)

// WriteJSONResponse writes a JSON response to the HTTP response writer
func WriteJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// WriteErrorResponse writes a JSON error body with the standard shape
func WriteErrorResponse(w http.ResponseWriter, status int, errMsg, message string) {
	WriteJSONResponse(w, status, dto.ErrorResponse{Error: errMsg, Message: message})
}

// WriteValidationErrorResponse writes a 400 carrying the per-field error list
func WriteValidationErrorResponse(w http.ResponseWriter, details []dto.FieldError) {
	WriteJSONResponse(w, http.StatusBadRequest, dto.ValidationErrorResponse{
		Error:   "Validation failed",
		Details: details,
	})
}

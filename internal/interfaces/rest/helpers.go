package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/songphoh/temp-trackerV3/internal/domain"
)

type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// WriteError maps domain errors to HTTP responses.
func WriteError(w http.ResponseWriter, err error) {
	WriteJSON(w, toHTTPStatus(err), ErrorResponse{
		Success: false,
		Error: ErrorDetail{
			Code:    toErrorCode(err),
			Message: err.Error(),
		},
	})
}

func toHTTPStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrEmployeeNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateEmpCode):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidEntryKind),
		errors.Is(err, domain.ErrMissingEmployeeID),
		errors.Is(err, domain.ErrEmployeeInactive):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

func toErrorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmployeeNotFound):
		return "EMPLOYEE_NOT_FOUND"
	case errors.Is(err, domain.ErrDuplicateEmpCode):
		return "DUPLICATE_EMP_CODE"
	case errors.Is(err, domain.ErrInvalidEntryKind):
		return "INVALID_ENTRY_KIND"
	case errors.Is(err, domain.ErrMissingEmployeeID):
		return "MISSING_EMPLOYEE_ID"
	case errors.Is(err, domain.ErrEmployeeInactive):
		return "EMPLOYEE_INACTIVE"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "TIMEOUT"
	default:
		return "INTERNAL_ERROR"
	}
}

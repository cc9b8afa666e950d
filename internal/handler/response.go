package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"go-todo-api/internal/model"
	"go-todo-api/pkg/apierror"
)

func writeSuccess(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if status == http.StatusNoContent {
		return
	}
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: true,
		Data:    data,
	})
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := &model.APIError{
		Code:    "INTERNAL_ERROR",
		Message: "Unexpected server error",
	}

	var apiErr *apierror.APIError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatus
		body.Code = apiErr.Code
		body.Message = apiErr.Message
		body.Details = apiErr.Details
	case errors.Is(err, model.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		body.Code = "UNAUTHORIZED"
		body.Message = "Invalid credentials"
	case errors.Is(err, model.ErrRefreshTokenNotFound), errors.Is(err, model.ErrRefreshTokenExpired):
		status = http.StatusUnauthorized
		body.Code = "UNAUTHORIZED"
		body.Message = "Invalid refresh token"
	case errors.Is(err, model.ErrUnauthorized):
		status = http.StatusUnauthorized
		body.Code = "UNAUTHORIZED"
		body.Message = "Authentication required"
	case errors.Is(err, model.ErrUserAlreadyExists):
		status = http.StatusBadRequest
		body.Code = "VALIDATION_FAILED"
		body.Message = "Username or email already taken"
	case errors.Is(err, model.ErrUserNotFound):
		// A token whose subject no longer resolves is an auth failure,
		// not a lookup miss.
		status = http.StatusUnauthorized
		body.Code = "UNAUTHORIZED"
		body.Message = "Authentication required"
	case errors.Is(err, model.ErrTodoNotFound):
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "Todo not found"
	case errors.Is(err, model.ErrInvalidInput):
		status = http.StatusBadRequest
		body.Code = "BAD_REQUEST"
		body.Message = "Invalid input"
	default:
		// Log unclassified errors so they are visible in container logs.
		slog.Error("unhandled error in writeError", "error", err.Error())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Error:   body,
	})
}

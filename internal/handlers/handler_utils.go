package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finovo/erp-backend/internal/apperrors"
	"github.com/finovo/erp-backend/internal/core/domain"
	"github.com/finovo/erp-backend/internal/middleware"
)

// apiResponse is the uniform envelope every endpoint returns.
type apiResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    any      `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func respondSuccess(c *gin.Context, status int, message string, data any) {
	c.JSON(status, apiResponse{Success: true, Message: message, Data: data})
}

func respondError(c *gin.Context, status int, message string, errs ...string) {
	c.JSON(status, apiResponse{Success: false, Message: message, Errors: errs})
}

// respondServiceError maps service errors to HTTP statuses. AppError codes
// win; otherwise the sentinel chain decides.
func respondServiceError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Code >= http.StatusInternalServerError {
			logger.Error("request failed", slog.String("error", err.Error()))
		}
		respondError(c, appErr.Code, appErr.Message)
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		respondError(c, http.StatusNotFound, "resource not found")
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrMissingAccount):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperrors.ErrForbidden):
		respondError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, apperrors.ErrInvalidState), errors.Is(err, apperrors.ErrDuplicate):
		respondError(c, http.StatusConflict, err.Error())
	default:
		logger.Error("request failed", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "internal server error")
	}
}

// requestContext builds the RequestContext for core operations from the
// authenticated gin context. False means the middleware chain did not run.
func requestContext(c *gin.Context) (domain.RequestContext, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return domain.RequestContext{}, false
	}
	companyID, ok := middleware.GetCompanyIDFromContext(c)
	if !ok {
		return domain.RequestContext{}, false
	}
	return domain.RequestContext{UserID: userID, CompanyID: companyID}, true
}

// mustRequestContext responds 401 and returns false when identity is missing.
func mustRequestContext(c *gin.Context) (domain.RequestContext, bool) {
	rc, ok := requestContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
	}
	return rc, ok
}

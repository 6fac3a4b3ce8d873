package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Stable machine-readable error codes surfaced to API callers.
const (
	codeValidationError           = "validation_error"
	codeAuthenticationError       = "authentication_error"
	codeProviderUnavailable       = "provider_unavailable"
	codeProviderError             = "provider_error"
	codeMalformedProviderResponse = "malformed_provider_response"
	codeInternalError             = "internal_error"
)

type jsendResponse struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

func success(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, jsendResponse{
		Status: "success",
		Data:   data,
	})
}

func fail(c echo.Context, status int, code, message string) error {
	return c.JSON(status, jsendResponse{
		Status:  "fail",
		Code:    code,
		Message: message,
	})
}

func failValidation(c echo.Context, message string) error {
	return fail(c, http.StatusBadRequest, codeValidationError, message)
}

func failAuthentication(c echo.Context, message string) error {
	return fail(c, http.StatusUnauthorized, codeAuthenticationError, message)
}

func serverError(c echo.Context, code, message string) error {
	return c.JSON(http.StatusInternalServerError, jsendResponse{
		Status:  "error",
		Code:    code,
		Message: message,
	})
}

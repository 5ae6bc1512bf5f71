package common

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"
)

type contextKey string

const (
	TenantKeyKey contextKey = "tenant_key"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// CreateErrorResponse creates a standardized error response
func CreateErrorResponse(code string, message string, details map[string]string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Details = details
	return &resp
}

// SendValidationError sends a validation error response
func SendValidationError(c echo.Context, field, message string) error {
	details := map[string]string{
		field: message,
	}
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("VALIDATION_ERROR", "Validation failed", details))
}

// SendServerError sends a server error response
func SendServerError(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, CreateErrorResponse("SERVER_ERROR", message, nil))
}

// SendNotFoundError sends a not found error response
func SendNotFoundError(c echo.Context, resource string) error {
	return c.JSON(http.StatusNotFound, CreateErrorResponse("NOT_FOUND", fmt.Sprintf("%s not found", resource), nil))
}

// TooManyRequestsResponse is the body written when a client is rate limited
func TooManyRequestsResponse() *ErrorResponse {
	return CreateErrorResponse("RATE_LIMITED", "Too many requests", nil)
}

var tenantKeyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,62}$`)

// ValidateTenantKey checks that key looks like a subdomain label.
func ValidateTenantKey(key string) (string, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return "", fmt.Errorf("hsid is required")
	}
	if !tenantKeyPattern.MatchString(key) {
		return "", fmt.Errorf("hsid must contain only letters, digits and hyphens")
	}
	return key, nil
}

// WithTenantKey stores the resolved tenant key on ctx.
func WithTenantKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, TenantKeyKey, key)
}

// GetTenantKeyFromContext returns the tenant key resolved from the Host header.
func GetTenantKeyFromContext(ctx context.Context) (string, bool) {
	key, ok := ctx.Value(TenantKeyKey).(string)
	return key, ok && key != ""
}

package server

import (
	"errors"
	"net/http"
	"strings"

	advertiserdomain "github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/advertiser/domain"
	articledomain "github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/article/domain"
	authdomain "github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/auth/domain"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/billing"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/billing/pix"
	settingsdomain "github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/settings/domain"
	ticketdomain "github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/ticket/domain"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("conflict")
	ErrInternal       = errors.New("internal_error")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidCredentials),
		errors.Is(err, authdomain.ErrInvalidSession),
		errors.Is(err, authdomain.ErrSessionExpired),
		errors.Is(err, authdomain.ErrSessionRevoked):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case errors.Is(err, ErrConflict),
		errors.Is(err, authdomain.ErrUserExists):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "conflict",
		}
	case errors.Is(err, ticketdomain.ErrTicketClosed):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "ticket is closed",
		}
	case errors.Is(err, advertiserdomain.ErrNoContactEmail):
		return http.StatusUnprocessableEntity, errorPayload{
			Type:    "no_contact_email",
			Message: "advertiser has no contact email",
		}
	case errors.Is(err, pix.ErrMissingKey),
		errors.Is(err, settingsdomain.ErrPixNotConfigured):
		return http.StatusUnprocessableEntity, errorPayload{
			Type:    "pix_not_configured",
			Message: "pix merchant account is not configured",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, ErrInternal):
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, advertiserdomain.ErrInvalidID),
		errors.Is(err, advertiserdomain.ErrInvalidName),
		errors.Is(err, advertiserdomain.ErrTooManyInstallments),
		errors.Is(err, articledomain.ErrInvalidID),
		errors.Is(err, articledomain.ErrInvalidTitle),
		errors.Is(err, ticketdomain.ErrInvalidID),
		errors.Is(err, ticketdomain.ErrInvalidSubject),
		errors.Is(err, ticketdomain.ErrEmptyBody),
		errors.Is(err, settingsdomain.ErrInvalidPortalName),
		errors.Is(err, authdomain.ErrWeakPassword),
		errors.Is(err, billing.ErrInvalidCycle),
		errors.Is(err, billing.ErrNegativeBaseValue),
		errors.Is(err, billing.ErrNegativeInterestRate),
		errors.Is(err, billing.ErrInvalidDuration),
		errors.Is(err, billing.ErrInvalidInstallments):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, advertiserdomain.ErrNotFound),
		errors.Is(err, articledomain.ErrNotFound),
		errors.Is(err, ticketdomain.ErrNotFound),
		errors.Is(err, authdomain.ErrUserNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	if errors.Is(err, ErrInvalidRequest) {
		return "invalid_request"
	}
	return err.Error()
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	if strings.HasPrefix(code, "negative_") {
		return strings.TrimPrefix(code, "negative_")
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	case "too_many_installments":
		return "installment count exceeds the configured maximum"
	default:
		return "invalid value"
	}
}

// classifyErrorForLog resolves the error type and code the request log
// records for a handled error.
func classifyErrorForLog(err error) (string, string) {
	_, payload := mapError(err)
	code := payload.Type
	if len(payload.Errors) > 0 {
		code = payload.Errors[0].Code
	}
	return payload.Type, code
}

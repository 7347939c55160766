package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/gin-gonic/gin"
)

// ErrorCategory defines the type of error for proper handling
type ErrorCategory string

const (
	CategoryValidation    ErrorCategory = "validation"
	CategoryConflict      ErrorCategory = "conflict"
	CategoryStore         ErrorCategory = "store"
	CategoryAuth          ErrorCategory = "auth"
	CategoryRateLimit     ErrorCategory = "rate_limit"
	CategoryInternal      ErrorCategory = "internal"
	CategoryConfiguration ErrorCategory = "configuration"
)

// Reason is the stable rejection code surfaced to callers. Submission
// rejections are caller-recoverable: the caller re-prompts the user.
type Reason string

const (
	ReasonMissingRequiredField Reason = "MISSING_REQUIRED_FIELD"
	ReasonInvalidDomainRanking Reason = "INVALID_DOMAIN_RANKING"
	ReasonDuplicateEmail       Reason = "DUPLICATE_EMAIL"
	ReasonSubmissionsClosed    Reason = "SUBMISSIONS_CLOSED"
	ReasonStoreUnavailable     Reason = "STORE_UNAVAILABLE"
	ReasonUnauthorized         Reason = "UNAUTHORIZED"
	ReasonRateLimited          Reason = "RATE_LIMIT_EXCEEDED"
	ReasonValidation           Reason = "VALIDATION_ERROR"
	ReasonConfiguration        Reason = "CONFIGURATION_ERROR"
	ReasonInternal             Reason = "INTERNAL_ERROR"
)

// AppError wraps an errbuilder error with the category, rejection reason
// and HTTP mapping used by the handlers.
type AppError struct {
	*errbuilder.ErrBuilder
	Category   ErrorCategory `json:"category"`
	Reason     Reason        `json:"reason"`
	HTTPStatus int           `json:"http_status"`
	Timestamp  time.Time     `json:"timestamp"`
	RequestID  string        `json:"request_id,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Reason, e.ErrBuilder.Msg)
}

// Unwrap returns the underlying cause
func (e *AppError) Unwrap() error {
	return e.ErrBuilder.Unwrap()
}

// NewAppError creates an AppError from errbuilder with additional context
func NewAppError(builder *errbuilder.ErrBuilder, category ErrorCategory, reason Reason, httpStatus int) *AppError {
	return &AppError{
		ErrBuilder: builder,
		Category:   category,
		Reason:     reason,
		HTTPStatus: httpStatus,
		Timestamp:  time.Now(),
	}
}

// NewMissingFieldError reports a required form field that was empty after
// trimming.
func NewMissingFieldError(field string) *AppError {
	errorMap := errbuilder.ErrorMap{}
	errorMap.Set("field", errors.New(field))

	builder := errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("required field %q is empty", field)).
		WithDetails(errbuilder.NewErrDetails(errorMap))

	return NewAppError(builder, CategoryValidation, ReasonMissingRequiredField, http.StatusBadRequest)
}

// NewInvalidRankingError reports a domain ranking that is not a permutation
// of the three domains.
func NewInvalidRankingError(message string) *AppError {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(message)

	return NewAppError(builder, CategoryValidation, ReasonInvalidDomainRanking, http.StatusBadRequest)
}

// NewDuplicateEmailError reports a submission whose normalized email already
// exists in the record store. This is a warn-and-block, not a data
// corruption: the caller may surface it as a soft warning.
func NewDuplicateEmailError(email string) *AppError {
	errorMap := errbuilder.ErrorMap{}
	errorMap.Set("email", errors.New(email))

	builder := errbuilder.New().
		WithCode(errbuilder.CodeAlreadyExists).
		WithMsg("an application with this email already exists").
		WithDetails(errbuilder.NewErrDetails(errorMap))

	return NewAppError(builder, CategoryConflict, ReasonDuplicateEmail, http.StatusConflict)
}

// NewSubmissionsClosedError reports a submission after the configured
// closing time.
func NewSubmissionsClosedError(deadline time.Time) *AppError {
	errorMap := errbuilder.ErrorMap{}
	errorMap.Set("deadline", errors.New(deadline.Format(time.RFC3339)))

	builder := errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg("the application form is closed").
		WithDetails(errbuilder.NewErrDetails(errorMap))

	return NewAppError(builder, CategoryValidation, ReasonSubmissionsClosed, http.StatusForbidden)
}

// NewStoreUnavailableError reports a record-store failure. These are
// surfaced for operator remediation rather than retried by the core.
func NewStoreUnavailableError(message string, cause error) *AppError {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeUnavailable).
		WithMsg(message)

	if cause != nil {
		builder = builder.WithCause(cause)
	}

	return NewAppError(builder, CategoryStore, ReasonStoreUnavailable, http.StatusServiceUnavailable)
}

// NewUnauthorizedError reports a failed admin login or a missing/invalid
// session token.
func NewUnauthorizedError(message string) *AppError {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeUnauthenticated).
		WithMsg(message)

	return NewAppError(builder, CategoryAuth, ReasonUnauthorized, http.StatusUnauthorized)
}

// NewRateLimitError creates a rate limit error
func NewRateLimitError(retryAfter string) *AppError {
	errorMap := errbuilder.ErrorMap{}
	errorMap.Set("retry_after", errors.New(retryAfter))

	builder := errbuilder.New().
		WithCode(errbuilder.CodeResourceExhausted).
		WithMsg("Rate limit exceeded").
		WithDetails(errbuilder.NewErrDetails(errorMap))

	return NewAppError(builder, CategoryRateLimit, ReasonRateLimited, http.StatusTooManyRequests)
}

// NewValidationError creates a generic validation error
func NewValidationError(message string) *AppError {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(message)

	return NewAppError(builder, CategoryValidation, ReasonValidation, http.StatusBadRequest)
}

// NewConfigurationError creates a configuration error. Header-schema
// mismatches in the record store land here: they are a deployment problem,
// not a per-submission one.
func NewConfigurationError(message string, cause error) *AppError {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(message)

	if cause != nil {
		builder = builder.WithCause(cause)
	}

	return NewAppError(builder, CategoryConfiguration, ReasonConfiguration, http.StatusInternalServerError)
}

// NewInternalError creates an internal server error
func NewInternalError(message string, cause error) *AppError {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(message)

	if cause != nil {
		builder = builder.WithCause(cause)
	}

	return NewAppError(builder, CategoryInternal, ReasonInternal, http.StatusInternalServerError)
}

// ReasonOf extracts the rejection reason from an error, or ReasonInternal
// for anything that is not an AppError.
func ReasonOf(err error) Reason {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Reason
	}
	return ReasonInternal
}

// IsDuplicateEmail reports whether err is a duplicate-email rejection.
func IsDuplicateEmail(err error) bool {
	return ReasonOf(err) == ReasonDuplicateEmail
}

// IsMissingField reports whether err is a missing-required-field rejection.
func IsMissingField(err error) bool {
	return ReasonOf(err) == ReasonMissingRequiredField
}

// IsInvalidRanking reports whether err is an invalid-domain-ranking
// rejection.
func IsInvalidRanking(err error) bool {
	return ReasonOf(err) == ReasonInvalidDomainRanking
}

// ErrorHandler is a Gin middleware that provides centralized error handling
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err

			appErr := ToAppError(err)
			LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}
	}
}

// RecoveryHandler provides panic recovery with structured error responses
func RecoveryHandler() gin.HandlerFunc {
	return gin.RecoveryWithWriter(nil, func(c *gin.Context, err interface{}) {
		appErr := NewInternalError(
			fmt.Sprintf("Panic recovered: %v", err),
			fmt.Errorf("%v", err),
		)

		LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
	})
}

// ToAppError converts any error to an AppError
func ToAppError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	if ebErr, ok := err.(*errbuilder.ErrBuilder); ok {
		return NewAppError(ebErr, CategoryInternal, ReasonInternal, http.StatusInternalServerError)
	}

	errMsg := err.Error()

	// Store connectivity problems
	if strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "database is locked") ||
		strings.Contains(errMsg, "no such host") {
		return NewStoreUnavailableError("record store unavailable", err)
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return NewStoreUnavailableError("request cancelled or timed out", err)
	}

	return NewInternalError("An unexpected error occurred", err)
}

// LogError logs an error with appropriate level and context
func LogError(c *gin.Context, err *AppError) {
	logEntry := slog.With(
		"error_category", err.Category,
		"reason", err.Reason,
		"http_status", err.HTTPStatus,
		"ip", c.ClientIP(),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"request_id", c.GetHeader("X-Request-ID"),
	)

	msg := err.ErrBuilder.Msg

	switch err.Category {
	case CategoryValidation, CategoryConflict, CategoryRateLimit, CategoryAuth:
		logEntry.Warn(msg)
	case CategoryStore, CategoryConfiguration:
		if cause := err.ErrBuilder.Unwrap(); cause != nil {
			logEntry.Error(msg, "cause", cause)
		} else {
			logEntry.Error(msg)
		}
	default:
		if cause := err.ErrBuilder.Unwrap(); cause != nil {
			logEntry.Error(msg, "cause", cause)
		} else {
			logEntry.Error(msg)
		}
	}
}

// IsRetryableError checks if an error should trigger a retry. Submission
// rejections never are; only store-adapter failures qualify.
func IsRetryableError(err error) bool {
	return ToAppError(err).Category == CategoryStore
}

// WrapError wraps an error with additional context
func WrapError(err error, message string, args ...interface{}) error {
	if err == nil {
		return nil
	}

	contextMsg := fmt.Sprintf(message, args...)
	return fmt.Errorf("%s: %w", contextMsg, err)
}

// SafeClose safely closes a resource and logs any errors
func SafeClose(closer interface{ Close() error }, resourceName string) {
	if closer == nil {
		return
	}

	if err := closer.Close(); err != nil {
		slog.Warn("Failed to close resource",
			"resource", resourceName,
			"error", err)
	}
}

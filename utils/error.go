package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorKind is the machine-checkable category carried by every error the API returns.
type ErrorKind string

const (
	KindUnauthorized     ErrorKind = "Unauthorized"
	KindValidation       ErrorKind = "ValidationError"
	KindSlotUnavailable  ErrorKind = "SlotUnavailable"
	KindNotFound         ErrorKind = "NotFound"
	KindForbidden        ErrorKind = "Forbidden"
	KindConflict         ErrorKind = "Conflict"
	KindExpired          ErrorKind = "Expired"
	KindTamperedOrForged ErrorKind = "TamperedOrForged"
	KindInternal         ErrorKind = "InternalError"
)

// AppError is a classified error. Message is safe to show to callers; Err is the
// underlying cause and is only ever logged.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

func newAppError(kind ErrorKind, format string, args ...any) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(format string, args ...any) error {
	return newAppError(KindUnauthorized, format, args...)
}

func Validation(format string, args ...any) error {
	return newAppError(KindValidation, format, args...)
}

func SlotUnavailable(format string, args ...any) error {
	return newAppError(KindSlotUnavailable, format, args...)
}

func NotFound(format string, args ...any) error {
	return newAppError(KindNotFound, format, args...)
}

func Forbidden(format string, args ...any) error {
	return newAppError(KindForbidden, format, args...)
}

func Conflict(format string, args ...any) error {
	return newAppError(KindConflict, format, args...)
}

func Expired(format string, args ...any) error {
	return newAppError(KindExpired, format, args...)
}

func TamperedOrForged(format string, args ...any) error {
	return newAppError(KindTamperedOrForged, format, args...)
}

// Internal wraps a storage or infrastructure failure.
func Internal(err error, format string, args ...any) error {
	e := newAppError(KindInternal, format, args...)
	e.Err = err
	return e
}

// KindOf reports the kind of err. Unclassified errors are internal.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

// StatusFor maps an error kind onto an HTTP status code.
func StatusFor(kind ErrorKind) int {
	switch kind {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindValidation:
		return http.StatusBadRequest
	case KindSlotUnavailable, KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindExpired, KindTamperedOrForged:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Error   ErrorKind `json:"error"`
	Message string    `json:"message"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Error:   KindInternal,
					Message: "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}

// RespondError writes err as a structured JSON error. Internal causes are logged, never returned.
func RespondError(c *gin.Context, err error) {
	logger := GetLogger()
	kind := KindOf(err)
	message := "Internal Server Error"

	var appErr *AppError
	if errors.As(err, &appErr) && kind != KindInternal {
		message = appErr.Message
		logger.Warn(message, zap.String("kind", string(kind)), zap.String("path", c.FullPath()))
	} else {
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(StatusFor(kind), ErrorResponse{Error: kind, Message: message})
}

// JSONError sends a standardized JSON error response for a known kind.
func JSONError(c *gin.Context, kind ErrorKind, message string) {
	GetLogger().Warn(message, zap.String("kind", string(kind)))
	c.JSON(StatusFor(kind), ErrorResponse{Error: kind, Message: message})
}

package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorKind classifies failures for the HTTP boundary.
type ErrorKind string

const (
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindValidation   ErrorKind = "validation"
	KindNotFound     ErrorKind = "not_found"
	KindDomain       ErrorKind = "domain"
	KindInternal     ErrorKind = "internal"
)

// GenericErrorMessage is what callers see when something unexpected fails.
const GenericErrorMessage = "Something went wrong. Please try again later."

// ErrUnauthenticated is returned when an operation needs a signed-in user.
var ErrUnauthenticated = NewUnauthorized("You must be signed in")

// AppError is a user-facing failure with a stable message.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func NewUnauthorized(msg string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: msg}
}

func NewForbidden(msg string) *AppError {
	return &AppError{Kind: KindForbidden, Message: msg}
}

func NewValidation(msg string) *AppError {
	return &AppError{Kind: KindValidation, Message: msg}
}

func NewNotFound(msg string) *AppError {
	return &AppError{Kind: KindNotFound, Message: msg}
}

func NewDomain(msg string) *AppError {
	return &AppError{Kind: KindDomain, Message: msg}
}

// NewInternal wraps an unexpected error. The cause is logged, never shown.
func NewInternal(msg string, err error) *AppError {
	return &AppError{Kind: KindInternal, Message: msg, Err: err}
}

// IsKind reports whether err is an *AppError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// ErrorResponse is the failure half of the {success, error} envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err), zap.String("path", c.FullPath()))
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Success: false,
					Error:   GenericErrorMessage,
				})
			}
		}()
		c.Next()
	}
}

func statusFor(kind ErrorKind) int {
	switch kind {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindDomain:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RespondError maps err onto the {success:false, error} envelope.
func RespondError(c *gin.Context, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = NewInternal(GenericErrorMessage, err)
	}

	status := statusFor(appErr.Kind)
	message := appErr.Message
	if status == http.StatusInternalServerError {
		GetLogger().Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("message", appErr.Message),
			zap.Error(appErr.Err))
		message = GenericErrorMessage
	}
	c.JSON(status, ErrorResponse{Success: false, Error: message})
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string) {
	GetLogger().Warn(message, zap.Int("status", status), zap.String("path", c.FullPath()))
	c.JSON(status, ErrorResponse{Success: false, Error: message})
}

// RespondOK writes {success:true, ...payload}.
func RespondOK(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

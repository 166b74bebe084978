package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error kinds. Services wrap one of these in an *Error so callers can match
// with errors.Is while the HTTP layer keeps the status code and message.
var (
	ErrNotFound          = stderrors.New("not found")
	ErrInsufficientStock = stderrors.New("insufficient stock")
	ErrEmptyCart         = stderrors.New("empty cart")
	ErrValidation        = stderrors.New("validation error")
)

// Error represents an application error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// JSON returns the error as the response envelope
func (e *Error) JSON() string {
	b, _ := json.Marshal(envelope(e))
	return string(b)
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NotFound builds a 404 error of kind ErrNotFound.
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message, ErrNotFound)
}

// Validation builds a 400 error of kind ErrValidation.
func Validation(message string) *Error {
	return New(http.StatusBadRequest, message, ErrValidation)
}

// EmptyCart builds a 400 error of kind ErrEmptyCart.
func EmptyCart(message string) *Error {
	return New(http.StatusBadRequest, message, ErrEmptyCart)
}

// Internal wraps an unexpected failure. The message is what clients see.
func Internal(message string, err error) *Error {
	return New(http.StatusInternalServerError, message, err)
}

// StockError carries the context of a failed stock check.
type StockError struct {
	ProductID   string
	ProductName string
	Available   int
	Requested   int
	InCart      int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: available=%d requested=%d in_cart=%d",
		e.ProductID, e.Available, e.Requested, e.InCart)
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }

// InsufficientStock builds a 400 error whose chain contains both the
// StockError and ErrInsufficientStock.
func InsufficientStock(message string, detail *StockError) *Error {
	return New(http.StatusBadRequest, message, detail)
}

// Common error types
var (
	ErrBadRequest         = New(http.StatusBadRequest, "Bad request", nil)
	ErrUnauthorized       = New(http.StatusUnauthorized, "Unauthorized", nil)
	ErrForbidden          = New(http.StatusForbidden, "Forbidden", nil)
	ErrInternalServer     = New(http.StatusInternalServerError, "Internal server error", nil)
	ErrServiceUnavailable = New(http.StatusServiceUnavailable, "Service unavailable", nil)
)

// As extracts an *Error from err, falling back to a 500 that wraps it.
func As(err error) *Error {
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return New(ErrInternalServer.Code, ErrInternalServer.Message, err)
}

// Response is the envelope every handler writes.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func envelope(e *Error) Response {
	return Response{Success: false, Message: e.Message, Data: nil}
}

// HandleError writes err to a plain http.ResponseWriter.
func HandleError(w http.ResponseWriter, err error) {
	appErr := As(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Code)
	w.Write([]byte(appErr.JSON()))
}

// ErrorMiddleware renders the last error attached with c.Error.
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			appErr := As(c.Errors.Last().Err)
			c.AbortWithStatusJSON(appErr.Code, envelope(appErr))
		}
	}
}

package cerr

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

const (
	CodeNotFound         = "NOT_FOUND"
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeUploadFailed     = "UPLOAD_FAILED"
	CodeStoreUnavailable = "STORE_UNAVAILABLE"
	CodeInternalError    = "INTERNAL_ERROR"
)

var (
	// ErrNotFound is returned when the target record does not exist.
	ErrNotFound = New(fiber.StatusNotFound, CodeNotFound, "component not found with given id")

	// ErrInvalidReq is returned when a request is invalid.
	ErrInvalidReq = New(fiber.StatusBadRequest, CodeInvalidRequest, "invalid request: some or all request parameters are invalid")

	// ErrUploadFailed is returned when the media host rejected the payload or was unreachable.
	ErrUploadFailed = New(fiber.StatusBadGateway, CodeUploadFailed, "media upload failed")

	// ErrStoreUnavailable is returned when the database could not be reached after retries.
	ErrStoreUnavailable = New(fiber.StatusServiceUnavailable, CodeStoreUnavailable, "record store is unavailable")

	// ErrInternalError is returned when an unexpected error occurs.
	ErrInternalError = New(fiber.StatusInternalServerError, CodeInternalError, "internal server error occurred")
)

type Extras map[string]interface{}

type ComponentryError struct {
	StatusCode int    `example:"400"`
	ErrorCode  string `example:"INVALID_REQUEST"`
	Message    string `example:"invalid request: some or all request parameters are invalid"`
	Extras     *Extras
}

func New(statusCode int, errorCode string, message string) *ComponentryError {
	return &ComponentryError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

func (e ComponentryError) Msg(format string, parts ...interface{}) *ComponentryError {
	e.Message = fmt.Sprintf(format, parts...)
	return &e
}

func (e ComponentryError) WithExtras(extras Extras) *ComponentryError {
	e.Extras = &extras
	return &e
}

func NewInvalidViolations(violations interface{}) *ComponentryError {
	// copy ErrInvalidReq as e
	e := *ErrInvalidReq
	e.Extras = &Extras{
		"violations": violations,
	}
	return &e
}

func (e *ComponentryError) Error() string {
	return fmt.Sprintf("%s: %s", e.ErrorCode, e.Message)
}

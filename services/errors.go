package services

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrorKind classifies a domain failure. Every kind maps to exactly one
// HTTP status at the handler boundary.
type ErrorKind int

const (
	KindNotFound ErrorKind = iota + 1
	KindValidation
	KindDuplicate
	KindClosed
	KindAuthorization
	KindState
)

// Error is a domain error raised at the point of detection and propagated
// unmodified to the boundary.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

func NotFoundError(msg string) *Error      { return &Error{Kind: KindNotFound, Message: msg} }
func ValidationError(msg string) *Error    { return &Error{Kind: KindValidation, Message: msg} }
func DuplicateError(msg string) *Error     { return &Error{Kind: KindDuplicate, Message: msg} }
func ClosedError(msg string) *Error        { return &Error{Kind: KindClosed, Message: msg} }
func AuthorizationError(msg string) *Error { return &Error{Kind: KindAuthorization, Message: msg} }
func StateError(msg string) *Error         { return &Error{Kind: KindState, Message: msg} }

// ErrorStatus returns the HTTP status code for a domain error.
// Unknown errors are treated as internal.
func ErrorStatus(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return fiber.StatusInternalServerError
	}
	switch e.Kind {
	case KindNotFound:
		return fiber.StatusNotFound
	case KindValidation, KindClosed, KindState:
		return fiber.StatusBadRequest
	case KindDuplicate:
		return fiber.StatusConflict
	case KindAuthorization:
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes the standard error body for a failed service call.
func respondError(c *fiber.Ctx, err error) error {
	status := ErrorStatus(err)
	if status == fiber.StatusInternalServerError {
		return c.Status(status).JSON(fiber.Map{"error": "internal error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

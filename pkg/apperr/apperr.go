// Package apperr defines the error kinds surfaced by the service layer and
// their mapping to HTTP status codes.
//
// Services return *apperr.Error values; the HTTP boundary calls HTTPStatus
// (usually through response.FromError) and never inspects messages:
//
//	if err != nil {
//	    return models.Order{}, apperr.New(apperr.OrderNotFound, "order not found")
//	}
package apperr

import (
	"fmt"
	"net/http"

	"github.com/go-faster/errors"
)

// Kind classifies a failure.
type Kind uint8

const (
	Internal Kind = iota
	InvalidPayload
	MissingCustomer
	UnknownCustomer
	InvalidQuantity
	UnknownProduct
	ProductNotFound
	InvalidProduct
	InvalidStatus
	Forbidden
	OrderNotFound
	InvalidID
	NotFound
	Conflict
	Validation
	InvalidCredentials
)

var kindNames = [...]string{
	Internal:           "internal",
	InvalidPayload:     "invalid_payload",
	MissingCustomer:    "missing_customer",
	UnknownCustomer:    "unknown_customer",
	InvalidQuantity:    "invalid_quantity",
	UnknownProduct:     "unknown_product",
	ProductNotFound:    "product_not_found",
	InvalidProduct:     "invalid_product",
	InvalidStatus:      "invalid_status",
	Forbidden:          "forbidden",
	OrderNotFound:      "order_not_found",
	InvalidID:          "invalid_id",
	NotFound:           "not_found",
	Conflict:           "conflict",
	Validation:         "validation",
	InvalidCredentials: "invalid_credentials",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// HTTPStatus maps the kind to the status code written at the boundary.
func (k Kind) HTTPStatus() int {
	switch k {
	case InvalidPayload, InvalidQuantity, UnknownProduct, InvalidProduct, InvalidStatus, InvalidID:
		return http.StatusBadRequest
	case MissingCustomer, Forbidden, InvalidCredentials:
		return http.StatusForbidden
	case UnknownCustomer, ProductNotFound, OrderNotFound, NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case Validation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified failure. Fields is only set for Validation.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// New returns an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf is New with a format string.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies err. The message is what the client sees; err is kept for
// logs and errors.Is.
func Wrap(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Invalid returns a Validation error carrying field-level messages.
func Invalid(fields map[string]string) *Error {
	return &Error{Kind: Validation, Message: "Validation failed", Fields: fields}
}

// KindOf returns the kind of the first *Error in err's chain, or Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// As extracts the *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Package errors defines typed failures raised by web handlers and maps them,
// along with platform domain errors, onto HTTP statuses.
package errors

import (
	stderrors "errors"
	"net/http"
	"strings"

	platformerrors "github.com/louisbranch/inpact/internal/platform/errors"
)

// Kind classifies a failure for HTTP mapping.
type Kind string

const (
	KindUnknown      Kind = "unknown"
	KindInvalidInput Kind = "invalid_input"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindTooLarge     Kind = "too_large"
	KindUnavailable  Kind = "unavailable"
)

var kindStatus = map[Kind]int{
	KindInvalidInput: http.StatusBadRequest,
	KindUnauthorized: http.StatusUnauthorized,
	KindForbidden:    http.StatusForbidden,
	KindNotFound:     http.StatusNotFound,
	KindConflict:     http.StatusConflict,
	KindTooLarge:     http.StatusRequestEntityTooLarge,
	KindUnavailable:  http.StatusServiceUnavailable,
}

// Error is a typed web failure. Key, when set, is a catalog key for the
// user-facing message.
type Error struct {
	Kind    Kind
	Key     string
	Message string
	Cause   error
}

func (e Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

func (e Error) Unwrap() error {
	return e.Cause
}

// E builds a typed Error.
func E(kind Kind, message string) error {
	return Error{Kind: kind, Message: message}
}

// EK builds a typed Error with a localization key.
func EK(kind Kind, key string, message string) error {
	return Error{Kind: kind, Key: strings.TrimSpace(key), Message: message}
}

// Wrap builds a typed Error that keeps cause for logging and errors.Is.
func Wrap(kind Kind, message string, cause error) error {
	return Error{Kind: kind, Message: message, Cause: cause}
}

// LocalizationKey returns the catalog key carried by err, if any.
func LocalizationKey(err error) string {
	var appErr Error
	if err == nil || !stderrors.As(err, &appErr) {
		return ""
	}
	return strings.TrimSpace(appErr.Key)
}

// HTTPStatus maps err to a status. Typed web errors win; otherwise the
// platform error code decides, and anything else is a 500.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var appErr Error
	if stderrors.As(err, &appErr) {
		if status, ok := kindStatus[appErr.Kind]; ok {
			return status
		}
		return http.StatusInternalServerError
	}
	if code := platformerrors.CodeOf(err); code != platformerrors.CodeUnknown {
		return code.HTTPStatus()
	}
	return http.StatusInternalServerError
}

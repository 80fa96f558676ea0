package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")
)

// ErrorKind classifies a tagged domain error.
type ErrorKind int

const (
	KindEntryDelete ErrorKind = iota + 1
	KindProjectNameMissing
	KindProjectImportFailed
	KindInvalidCredentials
	KindForbidden
	KindGeocoderFailed
	KindValidation
)

// Error is a tagged domain failure. Key is the field/bucket the code is
// reported under (e.g. "entry_delete"), Code is the catalogue code used to
// look up the user-facing message. Err keeps the underlying cause for logs.
type Error struct {
	Kind ErrorKind
	Key  string
	Code string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Key, e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Key, e.Code)
}

func (e *Error) Unwrap() error { return e.Err }

// Errors returns the error in the {key: [code]} shape used by API bodies and flash bags.
func (e *Error) Errors() map[string][]string {
	return map[string][]string{e.Key: {e.Code}}
}

// Message resolves the human-readable message for the error's code.
func (e *Error) Message() string { return Message(e.Code) }

func newError(kind ErrorKind, key, code string, cause error) *Error {
	return &Error{Kind: kind, Key: key, Code: code, Err: cause}
}

func EntryDeleteFailed(cause error) *Error {
	return newError(KindEntryDelete, "entry_delete", CodeEntryDeleteFailed, cause)
}

func ProjectNameMissing() *Error {
	return newError(KindProjectNameMissing, "project", CodeProjectNameMissing, nil)
}

func ProjectImportFailed(cause error) *Error {
	return newError(KindProjectImportFailed, "project", CodeProjectImportFailed, cause)
}

func InvalidCredentials(cause error) *Error {
	return newError(KindInvalidCredentials, "login", CodeInvalidCredentials, cause)
}

func Forbidden(key string) *Error {
	return newError(KindForbidden, key, CodeMissingPermission, ErrForbidden)
}

func GeocoderFailed(cause error) *Error {
	return newError(KindGeocoderFailed, "geocoder", CodeGeocoderFailed, cause)
}

func ValidationFailed(key, code string) *Error {
	return newError(KindValidation, key, code, ErrBadRequest)
}

// AsError extracts a tagged *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// IsKind reports whether err carries a tagged error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	de, ok := AsError(err)
	return ok && de.Kind == kind
}

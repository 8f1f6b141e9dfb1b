package fetcherr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInvalidURL Kind = iota + 1
	KindUnsupportedScheme
	KindForbiddenHost
	KindHTTP
	KindHTML
)

var (
	ErrInvalidURL        = errors.New("invalid URL")
	ErrUnsupportedScheme = errors.New("unsupported URL scheme")
	ErrForbiddenHost     = errors.New("access to internal/local networks is not allowed")
	ErrHTTP              = errors.New("HTTP request failed")
	ErrHTML              = errors.New("HTML parsing failed")
)

var kindSentinels = map[Kind]error{
	KindInvalidURL:        ErrInvalidURL,
	KindUnsupportedScheme: ErrUnsupportedScheme,
	KindForbiddenHost:     ErrForbiddenHost,
	KindHTTP:              ErrHTTP,
	KindHTML:              ErrHTML,
}

var kindNames = map[Kind]string{
	KindInvalidURL:        "InvalidUrl",
	KindUnsupportedScheme: "UnsupportedScheme",
	KindForbiddenHost:     "ForbiddenHost",
	KindHTTP:              "HttpError",
	KindHTML:              "HtmlError",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Retryable reports whether retrying the same input may succeed.
// Only transport failures are transient.
func (k Kind) Retryable() bool {
	return k == KindHTTP
}

// Error is the single error type surfaced by title fetching. Detail holds the
// offending scheme, the offending host or a short diagnostic; Err is the
// underlying library error, if any.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Detail
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}

	prefix := "unknown error"
	if sentinel, ok := kindSentinels[e.Kind]; ok {
		prefix = sentinel.Error()
	}

	if msg == "" {
		return prefix
	}
	return prefix + ": " + msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels, so errors.Is(err, ErrForbiddenHost) works
// without errors.As.
func (e *Error) Is(target error) bool {
	sentinel, ok := kindSentinels[e.Kind]
	return ok && sentinel == target
}

func InvalidURL(err error) *Error {
	return &Error{Kind: KindInvalidURL, Err: err}
}

func UnsupportedScheme(scheme string) *Error {
	return &Error{Kind: KindUnsupportedScheme, Detail: scheme}
}

func ForbiddenHost(host string) *Error {
	return &Error{Kind: KindForbiddenHost, Detail: host}
}

func HTTP(err error) *Error {
	return &Error{Kind: KindHTTP, Err: err}
}

func HTML(err error) *Error {
	return &Error{Kind: KindHTML, Err: err}
}

// KindOf returns the kind carried by err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}

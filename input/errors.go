package input

import (
	"fmt"

	"github.com/pkg/errors"
)

// Every error in this package is terminal: the caller prints one message
// and exits non-zero. They are distinct types so that callers can tell CLI
// misuse (which additionally prints usage) from the other failures, and so
// tests can assert which stage rejected the input via errors.Cause.

// UsageError reports command line misuse.
type UsageError string

func (e *UsageError) Error() string {
	return string(*e)
}

func newUsageError(message string) error {
	u := UsageError(message)
	return errors.WithStack(&u)
}

// ParseError reports a malformed request item.
type ParseError string

func (e *ParseError) Error() string {
	return string(*e)
}

func newParseError(format string, a ...interface{}) error {
	p := ParseError(fmt.Sprintf(format, a...))
	return errors.WithStack(&p)
}

// ConflictError reports mutually exclusive body sources.
type ConflictError string

func (e *ConflictError) Error() string {
	return string(*e)
}

func newConflictError(message string) error {
	c := ConflictError(message)
	return errors.WithStack(&c)
}

// TypeError reports a body field used with the wrong body mode.
type TypeError string

func (e *TypeError) Error() string {
	return string(*e)
}

func newTypeError(format string, a ...interface{}) error {
	t := TypeError(fmt.Sprintf(format, a...))
	return errors.WithStack(&t)
}

// URLError reports an unparsable or hostless URL.
type URLError string

func (e *URLError) Error() string {
	return string(*e)
}

func newURLError(format string, a ...interface{}) error {
	u := URLError(fmt.Sprintf(format, a...))
	return errors.WithStack(&u)
}

// IOError reports a stdin read failure.
type IOError string

func (e *IOError) Error() string {
	return string(*e)
}

func newIOError(format string, a ...interface{}) error {
	i := IOError(fmt.Sprintf(format, a...))
	return errors.WithStack(&i)
}

// JSONError reports a malformed JSON literal in a typed field.
type JSONError string

func (e *JSONError) Error() string {
	return string(*e)
}

func newJSONError(format string, a ...interface{}) error {
	j := JSONError(fmt.Sprintf(format, a...))
	return errors.WithStack(&j)
}

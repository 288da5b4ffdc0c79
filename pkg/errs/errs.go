// Package errs provides the error type used across the SDK to carry
// server-side diagnostics along with a short summary.
package errs

import (
	"fmt"
	"strings"
)

type Verbose interface {
	Verbose() string
}

// DetailedError is an error with a short summary (Error) and an expanded
// diagnostic view (Verbose) holding whatever the remote service responded.
type DetailedError interface {
	error
	Verbose
}

type detailedError struct {
	summary string
	detail  string
	verbose string
	base    error
}

func (de *detailedError) Unwrap() error {
	return de.base
}

func (de *detailedError) Error() string {
	if de.detail == "" {
		return de.summary
	}
	return de.summary + "\n" + de.detail
}

func (de *detailedError) Verbose() string {
	message := []string{de.Error()}
	if de.verbose != "" {
		message = append(message, " ("+de.verbose+") ")
	}

	switch base := de.base.(type) {
	case nil:
		// no-op
	case Verbose:
		message = append(message, "caused by: ", base.Verbose())
	default:
		message = append(message, "caused by: ", base.Error())
	}
	return strings.Join(message, "\n")
}

type Option func(de *detailedError) *detailedError

func New(summary string, options ...Option) DetailedError {
	err := &detailedError{summary: summary}
	for _, o := range options {
		err = o(err)
	}
	return err
}

// WithDetail attaches a payload (typically the server response body) shown
// after the summary.
func WithDetail(detail string) Option {
	return func(de *detailedError) *detailedError {
		de.detail = detail
		return de
	}
}

func WithVerbose(verbose string) Option {
	return func(de *detailedError) *detailedError {
		de.verbose = verbose
		return de
	}
}

func WithCause(err error) Option {
	return func(de *detailedError) *detailedError {
		de.base = err
		return de
	}
}

// Wrapf is a shorthand for a DetailedError wrapping base with a formatted
// summary.
func Wrapf(base error, format string, args ...any) DetailedError {
	return New(fmt.Sprintf(format, args...), WithCause(base))
}

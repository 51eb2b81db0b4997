package errs

import (
	cr "github.com/cockroachdb/errors"
)

func New(msg string) error {
	return cr.New(msg)
}

func Newf(format string, args ...any) error {
	return cr.Newf(format, args...)
}

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

// Mark attaches markErr as a reference so errors.Is(err, markErr) holds,
// while preserving the original cause chain.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return &markedError{cause: cr.Mark(err, markErr), mark: markErr}
}

// markedError exposes the mark through stdlib Unwrap so errors.Is sees it;
// cr.Mark alone is only visible to cockroachdb's own Is.
type markedError struct {
	cause error
	mark  error
}

func (m *markedError) Error() string   { return m.cause.Error() }
func (m *markedError) Unwrap() []error { return []error{m.cause, m.mark} }

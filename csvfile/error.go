package csvfile

import (
	"errors"
	"fmt"
)

var (
	ErrClosed            = errors.New("csvfile: handle is closed")
	ErrWrongMode         = errors.New("csvfile: operation not allowed in this mode")
	ErrUnterminatedQuote = errors.New("csvfile: unterminated quoted field")
	ErrBareQuote         = errors.New("csvfile: bare quote in non-quoted field")
	ErrQuoteTrailer      = errors.New("csvfile: unexpected data after quoted field")
)

// OpenError is returned when the underlying file cannot be opened in the
// requested mode. The handle is not usable afterwards.
type OpenError struct {
	Path string
	Mode Mode
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("csvfile: open %s for %s: %v", e.Path, e.Mode, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// InvalidOperationError reports a call that is not legal for the handle's
// mode, or any call made after Close.
type InvalidOperationError struct {
	Op   string
	Mode Mode
	Err  error
}

func (e *InvalidOperationError) Error() string {
	return fmt.Sprintf("csvfile: %s on %s handle: %v", e.Op, e.Mode, e.Err)
}

func (e *InvalidOperationError) Unwrap() error {
	return e.Err
}

// MalformedRowError contains location information for a record that cannot
// be decoded. Line is the physical line the problem was found on.
type MalformedRowError struct {
	Line   int
	Column int
	Err    error
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("csvfile: malformed row on line %d, column %d: %v", e.Line, e.Column, e.Err)
}

func (e *MalformedRowError) Unwrap() error {
	return e.Err
}

package message

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField is wrapped by DecodeError when src, dest, body or type
	// is absent.
	ErrMissingField = errors.New("message: missing field")

	// ErrUnknownType is wrapped by DecodeError when the body's type does not
	// match any registered variant.
	ErrUnknownType = errors.New("message: unknown payload type")
)

const maxQuotedLine = 256

// DecodeError reports a line that could not be turned into a Message.
type DecodeError struct {
	Line string
	Err  error
}

func newDecodeError(line []byte, err error) *DecodeError {
	return &DecodeError{
		Line: string(line),
		Err:  err,
	}
}

// Error implements the error interface
func (e *DecodeError) Error() string {
	line := e.Line
	if len(line) > maxQuotedLine {
		line = line[:maxQuotedLine] + "..."
	}
	return fmt.Sprintf("message: cannot decode %q: %v", line, e.Err)
}

// Unwrap returns the underlying cause.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsDecodeError checks whether err is, or wraps, a DecodeError.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

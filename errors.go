package ljson

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedValue = errors.New("ljson: value is unsupported type")
	ErrUnsupportedKey   = errors.New("ljson: key is unsupported type")
	ErrDepthExceeded    = errors.New("ljson: nesting too deep")
	ErrMalformedInput   = errors.New("ljson: malformed input")
	ErrWriteFailure     = errors.New("ljson: write failed")
	ErrKeyCollision     = errors.New("ljson: duplicate object key after normalization")
)

// Error describes a failed Encode or Decode call.
// Err wraps one of the sentinel errors above and, for parser or writer
// failures, the underlying library error.
type Error struct {
	Op   string // "encode" or "decode"
	Path string // location of the offending value, e.g. $.items[3]; may be empty
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" || e.Path == "$" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// pathError accumulates the location of an encode failure while the
// recursion unwinds. Segments are prepended by each enclosing table.
type pathError struct {
	segs []string
	err  error
}

func (p *pathError) Error() string { return p.err.Error() }
func (p *pathError) Unwrap() error { return p.err }

func within(err error, seg string) error {
	var pe *pathError
	if errors.As(err, &pe) {
		pe.segs = append(pe.segs, seg)
		return pe
	}
	return &pathError{segs: []string{seg}, err: err}
}

func newError(op string, err error) *Error {
	e := &Error{Op: op, Path: "$", Err: err}
	var pe *pathError
	if errors.As(err, &pe) {
		path := "$"
		for i := len(pe.segs) - 1; i >= 0; i-- {
			path += pe.segs[i]
		}
		e.Path, e.Err = path, pe.err
	}
	return e
}

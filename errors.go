package irb

import (
	"errors"
	"fmt"
)

// ErrorKind identifies a decode failure class.
type ErrorKind int

const (
	// KindUnknown is any error not produced by this package.
	KindUnknown ErrorKind = iota
	// KindInvalidHeader is a binary magic mismatch.
	KindInvalidHeader
	// KindInteriorNulByte is a fixed-length string with data after its terminator.
	KindInteriorNulByte
	// KindImageWidth is a data row with the wrong number of values.
	KindImageWidth
	// KindImageHeight is a data matrix with the wrong number of rows.
	KindImageHeight
	// KindImageLength is a sample buffer that does not hold width*height values.
	KindImageLength
	// KindMissingWidth is a text header without ImageWidth.
	KindMissingWidth
	// KindMissingHeight is a text header without ImageHeight.
	KindMissingHeight
	// KindMissingEqualsSign is a header declaration without "=".
	KindMissingEqualsSign
	// KindParseNumeric is a token that is not a valid number.
	KindParseNumeric
	// KindIO is a failed open, read or seek.
	KindIO
	// KindConsumed is a second pixel read from the same decoder.
	KindConsumed
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidHeader:
		return "invalid header"
	case KindInteriorNulByte:
		return "interior nul byte"
	case KindImageWidth:
		return "image width"
	case KindImageHeight:
		return "image height"
	case KindImageLength:
		return "image length"
	case KindMissingWidth:
		return "missing width"
	case KindMissingHeight:
		return "missing height"
	case KindMissingEqualsSign:
		return "missing equals sign"
	case KindParseNumeric:
		return "parse numeric"
	case KindIO:
		return "io"
	case KindConsumed:
		return "consumed"
	default:
		return "unknown"
	}
}

var (
	// ErrMissingWidth is returned when a text header has no ImageWidth line.
	ErrMissingWidth = errors.New("text header: missing ImageWidth")
	// ErrMissingHeight is returned when a text header has no ImageHeight line.
	ErrMissingHeight = errors.New("text header: missing ImageHeight")
	// ErrConsumed is returned when pixel data is read twice from the same decoder.
	ErrConsumed = errors.New("pixel data already consumed")
)

// InvalidHeaderError reports binary magic bytes that do not match.
type InvalidHeaderError struct {
	Actual [magicSize]byte
}

func (e *InvalidHeaderError) Error() string {
	return fmt.Sprintf("invalid header: % x", e.Actual[:])
}

// InteriorNulByteError reports a fixed-length string with data after its terminator.
type InteriorNulByteError struct {
	Bytes []byte
}

func (e *InteriorNulByteError) Error() string {
	return fmt.Sprintf("interior nul byte in fixed-length string: % x", e.Bytes)
}

// DimensionError reports a row width, row count or buffer length mismatch.
type DimensionError struct {
	Kind     ErrorKind // KindImageWidth, KindImageHeight or KindImageLength.
	Actual   int
	Expected int
	Line     int // 1-based input line, 0 if unknown.
}

func (e *DimensionError) Error() string {
	msg := fmt.Sprintf("%s mismatch: got %d, want %d", e.Kind, e.Actual, e.Expected)
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	return msg
}

// OverflowError reports dimensions whose sample count does not fit in an int.
type OverflowError struct {
	Width  int
	Height int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("image length overflow: %dx%d", e.Width, e.Height)
}

// MissingEqualsSignError reports a header declaration without "=".
type MissingEqualsSignError struct {
	Line string
}

func (e *MissingEqualsSignError) Error() string {
	return fmt.Sprintf("text header: missing '=' in %q", e.Line)
}

// ParseNumericError reports a token that is not a valid number.
type ParseNumericError struct {
	Token string
	Err   error
	Line  int // 1-based input line, 0 if unknown.
}

func (e *ParseNumericError) Error() string {
	msg := fmt.Sprintf("parse %q: %v", e.Token, e.Err)
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	return msg
}

func (e *ParseNumericError) Unwrap() error { return e.Err }

// IOError wraps a failed open, read or seek.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error { return e.Err }

func ioErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Op: op, Err: err}
}

// KindOf returns the kind of the first decode error found in err's chain.
func KindOf(err error) ErrorKind {
	var (
		ih *InvalidHeaderError
		in *InteriorNulByteError
		de *DimensionError
		oe *OverflowError
		me *MissingEqualsSignError
		pe *ParseNumericError
		ie *IOError
	)
	switch {
	case err == nil:
		return KindUnknown
	case errors.As(err, &ih):
		return KindInvalidHeader
	case errors.As(err, &in):
		return KindInteriorNulByte
	case errors.As(err, &de):
		return de.Kind
	case errors.As(err, &oe):
		return KindImageLength
	case errors.Is(err, ErrMissingWidth):
		return KindMissingWidth
	case errors.Is(err, ErrMissingHeight):
		return KindMissingHeight
	case errors.As(err, &me):
		return KindMissingEqualsSign
	case errors.As(err, &pe):
		return KindParseNumeric
	case errors.Is(err, ErrConsumed):
		return KindConsumed
	case errors.As(err, &ie):
		return KindIO
	default:
		return KindUnknown
	}
}

package irb

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"testing"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		want ErrorKind
	}{
		{err: nil, want: KindUnknown},
		{err: errors.New("other"), want: KindUnknown},
		{err: &InvalidHeaderError{}, want: KindInvalidHeader},
		{err: &InteriorNulByteError{}, want: KindInteriorNulByte},
		{err: &DimensionError{Kind: KindImageWidth}, want: KindImageWidth},
		{err: &DimensionError{Kind: KindImageHeight}, want: KindImageHeight},
		{err: &DimensionError{Kind: KindImageLength}, want: KindImageLength},
		{err: ErrMissingWidth, want: KindMissingWidth},
		{err: ErrMissingHeight, want: KindMissingHeight},
		{err: &MissingEqualsSignError{}, want: KindMissingEqualsSign},
		{err: &ParseNumericError{Err: strconv.ErrSyntax}, want: KindParseNumeric},
		{err: &IOError{Op: "read", Err: io.EOF}, want: KindIO},
		{err: ErrConsumed, want: KindConsumed},
		{err: fmt.Errorf("wrapped: %w", &DimensionError{Kind: KindImageHeight}), want: KindImageHeight},
	}
	for _, tc := range cases {
		if got := KindOf(tc.err); got != tc.want {
			t.Fatalf("KindOf(%v): got %s want %s", tc.err, got, tc.want)
		}
	}
}

func TestErrorMessages(t *testing.T) {
	cases := map[string]error{
		"invalid header: ff 49 52 42 01":             &InvalidHeaderError{Actual: [5]byte{0xFF, 'I', 'R', 'B', 1}},
		"image width mismatch: got 3, want 2":        &DimensionError{Kind: KindImageWidth, Actual: 3, Expected: 2},
		`text header: missing '=' in "ImageWidth 2"`: &MissingEqualsSignError{Line: "ImageWidth 2"},
		"read pixels: unexpected EOF":                &IOError{Op: "read pixels", Err: io.ErrUnexpectedEOF},
	}
	for want, err := range cases {
		if err.Error() != want {
			t.Fatalf("got %q want %q", err.Error(), want)
		}
	}
	if !errors.Is(&IOError{Op: "x", Err: io.EOF}, io.EOF) {
		t.Fatalf("IOError should unwrap")
	}
	if !errors.Is(&ParseNumericError{Token: "x", Err: strconv.ErrSyntax}, strconv.ErrSyntax) {
		t.Fatalf("ParseNumericError should unwrap")
	}
}

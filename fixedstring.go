package irb

import (
	"bytes"
	"io"

	"golang.org/x/text/encoding/charmap"
)

// FixedLengthString is a null-padded text field of a declared size.
type FixedLengthString []byte

// NewFixedLengthString allocates a zeroed field of length n.
func NewFixedLengthString(n int) FixedLengthString {
	return make(FixedLengthString, n)
}

// Fill reads exactly len(s) bytes from r into the field.
func (s FixedLengthString) Fill(r io.Reader) error {
	_, err := io.ReadFull(r, s)
	return err
}

// Decode returns the text before the first null byte.
//
// Every byte after the first null must also be null, otherwise an
// *InteriorNulByteError with the raw field is returned. Bytes are mapped one to one
// (ISO 8859-1), not decoded as UTF-8.
func (s FixedLengthString) Decode() (string, error) {
	end := bytes.IndexByte(s, 0)
	if end < 0 {
		end = len(s)
	}
	for _, b := range s[end:] {
		if b != 0 {
			return "", &InteriorNulByteError{Bytes: append([]byte(nil), s...)}
		}
	}
	text, err := charmap.ISO8859_1.NewDecoder().Bytes(s[:end])
	if err != nil {
		return "", err
	}
	return string(text), nil
}

// DecodeFixedLengthString decodes buf as a FixedLengthString.
func DecodeFixedLengthString(buf []byte) (string, error) {
	return FixedLengthString(buf).Decode()
}

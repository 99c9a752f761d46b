package irb

import (
	"errors"
	"io"
	"os"
	"path/filepath"
)

// Decoder reads one image from an opened IRB file.
type Decoder interface {
	Format() Format
	Width() int
	Height() int
	ReadImage() (*Image, error)
	Close() error
}

var (
	_ Decoder = (*BinaryDecoder)(nil)
	_ Decoder = (*TextDecoder)(nil)
)

// DetectFormat reads the first bytes of r and reports FormatBinary if they are the
// binary magic, FormatText otherwise.
func DetectFormat(r io.Reader) (Format, error) {
	var magic [magicSize]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return FormatText, nil
		}
		return FormatUnknown, ioErr("read magic", err)
	}
	if magic == binaryMagic {
		return FormatBinary, nil
	}
	return FormatText, nil
}

// Open opens an IRB file with the decoder matching its content.
func Open(path string, opts ...func(o *DecodeOptions)) (Decoder, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, ioErr("open", err)
	}
	d, err := newDecoder(f, opts)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return d, nil
}

func newDecoder(f *os.File, opts []func(o *DecodeOptions)) (Decoder, error) {
	format, err := DetectFormat(f)
	if err != nil {
		return nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, ioErr("seek", err)
	}
	if format == FormatBinary {
		d, err := NewBinaryDecoder(f)
		if err != nil {
			return nil, err
		}
		d.closer = f
		return d, nil
	}
	d, err := NewTextDecoder(f, opts...)
	if err != nil {
		return nil, err
	}
	d.closer = f
	return d, nil
}

// Decode reads the image stored at path in either encoding.
func Decode(path string, opts ...func(o *DecodeOptions)) (*Image, error) {
	d, err := Open(path, opts...)
	if err != nil {
		return nil, err
	}
	defer d.Close()
	return d.ReadImage()
}

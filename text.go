package irb

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/vearutop/irb/internal/textio"
)

// LineSource yields lines of a text export, without terminators.
type LineSource interface {
	Next() bool
	Bytes() []byte
	Err() error
}

// TextDecoder reads a text IRB export.
//
// The header is parsed on creation and the line source is left at the first data
// line. Pixel data can be read once.
type TextDecoder struct {
	lines    *textio.Lines
	closer   io.Closer
	header   TextHeader
	opt      DecodeOptions
	consumed bool
}

// OpenText opens a text export and parses its header.
// Files compressed with gzip or zstd are decompressed transparently.
func OpenText(path string, opts ...func(o *DecodeOptions)) (*TextDecoder, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, ioErr("open", err)
	}
	d, err := NewTextDecoder(f, opts...)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	d.closer = f
	return d, nil
}

// NewTextDecoder parses the text header from r.
func NewTextDecoder(r io.Reader, opts ...func(o *DecodeOptions)) (*TextDecoder, error) {
	opt := newDecodeOptions(opts)
	lines, err := textio.NewLines(r, opt.MaxLineSize)
	if err != nil {
		return nil, ioErr("open text stream", err)
	}
	h, err := ParseTextHeader(lines)
	if err != nil {
		_ = lines.Close()
		return nil, err
	}
	return &TextDecoder{lines: lines, header: h, opt: opt}, nil
}

// Header returns the parsed header.
func (d *TextDecoder) Header() TextHeader {
	return d.header
}

// ReadImage reads the data matrix into an Image.
// It fails with ErrConsumed on a second call.
func (d *TextDecoder) ReadImage() (*Image, error) {
	if d.consumed {
		return nil, ErrConsumed
	}
	d.consumed = true

	w, h := int(d.header.Width), int(d.header.Height)
	data, err := ReadMatrix(d.lines, w, h, d.opt.SkipBlankLines)
	if err != nil {
		return nil, err
	}
	return NewImage(data, w, h)
}

// Close releases the decompressor and the underlying file, if the decoder opened one.
func (d *TextDecoder) Close() error {
	err := d.lines.Close()
	if d.closer != nil {
		if cerr := d.closer.Close(); err == nil {
			err = cerr
		}
		d.closer = nil
	}
	return err
}

// ParseTextHeader scans header lines up to and including the "[Data]" marker.
//
// Lines that are not valid UTF-8 are skipped. When both dimensions are missing,
// ErrMissingWidth is reported.
func ParseTextHeader(lines LineSource) (TextHeader, error) {
	var (
		h                   TextHeader
		hasWidth, hasHeight bool
	)
	for lines.Next() {
		raw := lines.Bytes()
		if !utf8.Valid(raw) {
			continue
		}
		line := string(raw)
		if line == textDataLine {
			break
		}

		var (
			dst *uint
			has *bool
		)
		switch {
		case strings.HasPrefix(line, textWidthKey):
			dst, has = &h.Width, &hasWidth
		case strings.HasPrefix(line, textHeightKey):
			dst, has = &h.Height, &hasHeight
		default:
			continue
		}

		v, err := headerValue(line)
		if err != nil {
			return TextHeader{}, err
		}
		*dst, *has = v, true
	}
	if err := lines.Err(); err != nil {
		return TextHeader{}, ioErr("read header", err)
	}

	if !hasWidth {
		return TextHeader{}, ErrMissingWidth
	}
	if !hasHeight {
		return TextHeader{}, ErrMissingHeight
	}
	return h, nil
}

func headerValue(line string) (uint, error) {
	_, value, found := strings.Cut(line, "=")
	if !found {
		return 0, &MissingEqualsSignError{Line: line}
	}
	value = strings.TrimSpace(value)
	v, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, &ParseNumericError{Token: value, Err: err}
	}
	return uint(v), nil
}

// Format returns FormatText.
func (d *TextDecoder) Format() Format { return FormatText }

// Width returns the declared image width.
func (d *TextDecoder) Width() int { return int(d.header.Width) }

// Height returns the declared image height.
func (d *TextDecoder) Height() int { return int(d.header.Height) }

// Compression reports whether the export was stored compressed.
func (d *TextDecoder) Compression() string { return d.lines.Compression().String() }

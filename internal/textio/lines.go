// Package textio reads line-oriented text streams, optionally gzip or zstd compressed.
package textio

import (
	"bufio"
	"bytes"
	"errors"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Compression identifies the stream compression detected by NewLines.
type Compression int

const (
	// CompressionNone is a plain stream.
	CompressionNone Compression = iota
	// CompressionGzip is a gzip stream.
	CompressionGzip
	// CompressionZstd is a zstd frame.
	CompressionZstd
)

func (c Compression) String() string {
	switch c {
	case CompressionGzip:
		return "gzip"
	case CompressionZstd:
		return "zstd"
	default:
		return "none"
	}
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

const initialBufSize = 64 * 1024

// Lines iterates over the lines of a stream.
// Line terminators, including a trailing '\r', are stripped.
type Lines struct {
	sc          *bufio.Scanner
	closer      io.Closer
	compression Compression
	n           int
}

// NewLines wraps r, decompressing it when it starts with a gzip or zstd frame.
// maxLineSize bounds the length of a single line.
func NewLines(r io.Reader, maxLineSize int) (*Lines, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(zstdMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	l := &Lines{}
	var src io.Reader = br
	switch {
	case bytes.HasPrefix(head, gzipMagic):
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		src, l.closer, l.compression = gz, gz, CompressionGzip
	case bytes.HasPrefix(head, zstdMagic):
		zd, err := zstd.NewReader(br,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(true),
		)
		if err != nil {
			return nil, err
		}
		rc := zd.IOReadCloser()
		src, l.closer, l.compression = rc, rc, CompressionZstd
	}

	bufSize := initialBufSize
	if maxLineSize < bufSize {
		bufSize = maxLineSize
	}
	l.sc = bufio.NewScanner(src)
	l.sc.Buffer(make([]byte, 0, bufSize), maxLineSize)
	return l, nil
}

// Next advances to the next line.
func (l *Lines) Next() bool {
	if !l.sc.Scan() {
		return false
	}
	l.n++
	return true
}

// Bytes returns the current line. The slice is valid until the next call to Next.
func (l *Lines) Bytes() []byte {
	return bytes.TrimSuffix(l.sc.Bytes(), []byte{'\r'})
}

// Number returns the 1-based number of the current line.
func (l *Lines) Number() int {
	return l.n
}

// Compression returns the compression detected on the stream.
func (l *Lines) Compression() Compression {
	return l.compression
}

// Err returns the first non-EOF error encountered.
func (l *Lines) Err() error {
	return l.sc.Err()
}

// Close releases the decompressor, if any. It does not close the source reader.
func (l *Lines) Close() error {
	if l.closer == nil {
		return nil
	}
	err := l.closer.Close()
	l.closer = nil
	return err
}

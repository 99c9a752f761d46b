package irb

import (
	"encoding/binary"
	"io"
	"math"
	"os"
	"path/filepath"
)

// BinaryDecoder reads a binary IRB file.
//
// The header is parsed on creation and the stream is left at the pixel payload.
// Pixel data can be read once.
type BinaryDecoder struct {
	r        io.ReadSeeker
	closer   io.Closer
	header   BinaryHeader
	consumed bool
}

// OpenBinary opens a binary IRB file and parses its header.
func OpenBinary(path string) (*BinaryDecoder, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, ioErr("open", err)
	}
	d, err := NewBinaryDecoder(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	d.closer = f
	return d, nil
}

// NewBinaryDecoder parses the binary header from r.
func NewBinaryDecoder(r io.ReadSeeker) (*BinaryDecoder, error) {
	h, err := DecodeBinaryHeader(r)
	if err != nil {
		return nil, err
	}
	return &BinaryDecoder{r: r, header: *h}, nil
}

// DecodeBinaryHeader reads the binary header from the start of r and seeks r to the
// start of the pixel payload.
func DecodeBinaryHeader(r io.ReadSeeker) (*BinaryHeader, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, ioErr("seek header", err)
	}

	var magic [magicSize]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, ioErr("read magic", err)
	}
	if magic != binaryMagic {
		return nil, &InvalidHeaderError{Actual: magic}
	}

	sw := NewFixedLengthString(softwareVersionSize)
	if err := sw.Fill(r); err != nil {
		return nil, ioErr("read software version", err)
	}
	software, err := sw.Decode()
	if err != nil {
		return nil, err
	}

	h := &BinaryHeader{SoftwareVersion: software}
	if h.Version.Major, err = readU32(r); err != nil {
		return nil, ioErr("read version", err)
	}
	if h.Version.Minor, err = readU32(r); err != nil {
		return nil, ioErr("read version", err)
	}
	// Total index count, exposed only through the vendor library.
	if _, err := readU32(r); err != nil {
		return nil, ioErr("read index count", err)
	}

	if _, err := r.Seek(offsetDimensions, io.SeekStart); err != nil {
		return nil, ioErr("seek dimensions", err)
	}
	if h.Width, err = readU16(r); err != nil {
		return nil, ioErr("read width", err)
	}
	if h.Height, err = readU16(r); err != nil {
		return nil, ioErr("read height", err)
	}

	if _, err := r.Seek(offsetPixels, io.SeekStart); err != nil {
		return nil, ioErr("seek pixels", err)
	}
	return h, nil
}

// Header returns the parsed header.
func (d *BinaryDecoder) Header() BinaryHeader {
	return d.header
}

// ReadImage reads the raw float32 payload into an Image.
//
// Values are returned as stored. It fails with ErrConsumed on a second call.
func (d *BinaryDecoder) ReadImage() (*Image, error) {
	if d.consumed {
		return nil, ErrConsumed
	}
	d.consumed = true

	w, h := int(d.header.Width), int(d.header.Height)

	// Read row by row: memory grows with the payload actually present, not
	// with the dimensions the header declares.
	row := make([]byte, w*4)
	data := make([]float32, 0, min(w*h, maxPrealloc))
	for y := 0; y < h; y++ {
		if _, err := io.ReadFull(d.r, row); err != nil {
			return nil, ioErr("read pixels", err)
		}
		for x := 0; x < w; x++ {
			data = append(data, math.Float32frombits(binary.LittleEndian.Uint32(row[x*4:])))
		}
	}
	return NewImage(data, w, h)
}

// Close releases the underlying file, if the decoder opened one.
func (d *BinaryDecoder) Close() error {
	if d.closer == nil {
		return nil
	}
	err := d.closer.Close()
	d.closer = nil
	return err
}

func readU32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func readU16(r io.Reader) (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

// Format returns FormatBinary.
func (d *BinaryDecoder) Format() Format { return FormatBinary }

// Width returns the declared image width.
func (d *BinaryDecoder) Width() int { return int(d.header.Width) }

// Height returns the declared image height.
func (d *BinaryDecoder) Height() int { return int(d.header.Height) }

// Package acs wraps the vendor IRB access library behind a capability interface.
//
// The native library is not linked by this module. Callers provide a Library
// implementation (for example a cgo binding) and get scoped handles with
// guaranteed release.
package acs

import (
	"errors"
	"fmt"
	"math"

	"github.com/vearutop/irb"
)

// Handle is an opaque file handle issued by a Library.
type Handle uintptr

// Parameter identifiers understood by Library.Param.
const (
	ParamImageWidth  = 0
	ParamImageHeight = 1
)

// maxPrealloc bounds the sample buffer reserved before any temperature is read.
const maxPrealloc = 1 << 20

// Library is the set of vendor calls the reader relies on.
//
// Status-returning calls report failure with ok=false. Counts and temperatures use
// zero as the failure sentinel.
type Library interface {
	Version() (main, sub int32, ok bool)
	Load(path string) Handle
	Unload(h Handle)
	Param(h Handle, what int32) (value float64, ok bool)
	FrameCount(h Handle) int32
	IndexCount(h Handle) int32
	TempXY(h Handle, col, row int32) float64
	TempBBXY(h Handle, col, row int32) float64
}

// CallError reports a failed vendor call. The library gives no detail beyond failure.
type CallError struct {
	Call string
}

func (e *CallError) Error() string {
	return "acs: " + e.Call + " failed"
}

// ErrClosed is returned by File methods after Close.
var ErrClosed = errors.New("acs: file closed")

// LibraryVersion is the version reported by the vendor library.
type LibraryVersion struct {
	Main int32
	Sub  int32
}

// Version returns the vendor library version.
func Version(lib Library) (LibraryVersion, error) {
	main, sub, ok := lib.Version()
	if !ok {
		return LibraryVersion{}, &CallError{Call: "version"}
	}
	return LibraryVersion{Main: main, Sub: sub}, nil
}

// File is an IRB file opened through the vendor library.
type File struct {
	lib    Library
	handle Handle
	closed bool
}

// Open loads path through lib. A failed load leaves nothing to release.
func Open(lib Library, path string) (*File, error) {
	h := lib.Load(path)
	if h == 0 {
		return nil, &CallError{Call: fmt.Sprintf("loadIRB(%s)", path)}
	}
	return &File{lib: lib, handle: h}, nil
}

// With opens path, calls fn and releases the handle on every exit path.
func With(lib Library, path string, fn func(f *File) error) (err error) {
	f, err := Open(lib, path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(f)
}

// Close releases the handle. Subsequent calls are no-ops.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	f.lib.Unload(f.handle)
	return nil
}

// ImageWidth returns the image width reported by the library.
func (f *File) ImageWidth() (int, error) {
	return f.dimension(ParamImageWidth)
}

// ImageHeight returns the image height reported by the library.
func (f *File) ImageHeight() (int, error) {
	return f.dimension(ParamImageHeight)
}

// dimension reads a size parameter, which must be a whole number in the int32 range
// accepted by the per-pixel calls.
func (f *File) dimension(what int32) (int, error) {
	v, err := f.param(what)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) || v < 0 || v > math.MaxInt32 {
		return 0, fmt.Errorf("acs: invalid dimension %v for getParam(%d)", v, what)
	}
	return int(v), nil
}

// FrameCount returns the number of frames in the file.
func (f *File) FrameCount() (int, error) {
	if f.closed {
		return 0, ErrClosed
	}
	n := f.lib.FrameCount(f.handle)
	if n == 0 {
		return 0, &CallError{Call: "getFrameCount"}
	}
	return int(n), nil
}

// IndexCount returns the number of IRB indices in the file.
func (f *File) IndexCount() (int, error) {
	if f.closed {
		return 0, ErrClosed
	}
	n := f.lib.IndexCount(f.handle)
	if n == 0 {
		return 0, &CallError{Call: "getIRBIndices"}
	}
	return int(n), nil
}

// Temperature returns the calibrated temperature at (col, row), in Kelvin.
func (f *File) Temperature(col, row int) (float64, error) {
	if f.closed {
		return 0, ErrClosed
	}
	t := f.lib.TempXY(f.handle, int32(col), int32(row))
	if t == 0 {
		return 0, &CallError{Call: fmt.Sprintf("getTempXY(%d, %d)", col, row)}
	}
	return t, nil
}

// BlackbodyTemperature returns the blackbody temperature at (col, row), in Kelvin.
func (f *File) BlackbodyTemperature(col, row int) (float64, error) {
	if f.closed {
		return 0, ErrClosed
	}
	t := f.lib.TempBBXY(f.handle, int32(col), int32(row))
	if t == 0 {
		return 0, &CallError{Call: fmt.Sprintf("getTempBBXY(%d, %d)", col, row)}
	}
	return t, nil
}

// ReadImage queries every pixel temperature and assembles an irb.Image in Kelvin.
func (f *File) ReadImage() (*irb.Image, error) {
	w, err := f.ImageWidth()
	if err != nil {
		return nil, err
	}
	h, err := f.ImageHeight()
	if err != nil {
		return nil, err
	}
	n := maxPrealloc
	if h == 0 || w <= maxPrealloc/h {
		n = w * h
	}
	data := make([]float32, 0, n)
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			t, err := f.Temperature(col, row)
			if err != nil {
				return nil, err
			}
			data = append(data, float32(t))
		}
	}
	return irb.NewImage(data, w, h)
}

func (f *File) param(what int32) (float64, error) {
	if f.closed {
		return 0, ErrClosed
	}
	v, ok := f.lib.Param(f.handle, what)
	if !ok {
		return 0, &CallError{Call: fmt.Sprintf("getParam(%d)", what)}
	}
	return v, nil
}

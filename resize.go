package irb

import (
	"image"

	"github.com/nfnt/resize"
)

// Interpolation selects the resampling kernel used for previews.
type Interpolation int

const (
	// InterpolationNearest is nearest-neighbor sampling.
	InterpolationNearest Interpolation = iota
	// InterpolationBilinear is linear sampling.
	InterpolationBilinear
	// InterpolationBicubic is cubic sampling.
	InterpolationBicubic
	// InterpolationMitchellNetravali is Mitchell-Netravali sampling.
	InterpolationMitchellNetravali
	// InterpolationLanczos2 is Lanczos sampling with a=2.
	InterpolationLanczos2
	// InterpolationLanczos3 is Lanczos sampling with a=3.
	InterpolationLanczos3
)

func (i Interpolation) kernel() resize.InterpolationFunction {
	switch i {
	case InterpolationBilinear:
		return resize.Bilinear
	case InterpolationBicubic:
		return resize.Bicubic
	case InterpolationMitchellNetravali:
		return resize.MitchellNetravali
	case InterpolationLanczos2:
		return resize.Lanczos2
	case InterpolationLanczos3:
		return resize.Lanczos3
	default:
		return resize.NearestNeighbor
	}
}

// PreviewOptions controls the grayscale rendition of an Image.
type PreviewOptions struct {
	// Width and Height of the preview. Zero keeps the aspect ratio, both zero keep
	// the original size.
	Width  uint
	Height uint
	// Min and Max set the sample range mapped to black and white.
	// When both are zero the range of the image is used.
	Min float32
	Max float32

	Interpolation Interpolation
}

// Gray16 renders the image as 16-bit grayscale, mapping lo to black and hi to white.
func (m *Image) Gray16(lo, hi float32) *image.Gray16 {
	out := image.NewGray16(image.Rect(0, 0, m.width, m.height))
	for i, v := range m.data {
		g := uint16(unitScale(v, lo, hi)*65535 + 0.5)
		out.Pix[2*i] = uint8(g >> 8)
		out.Pix[2*i+1] = uint8(g)
	}
	return out
}

// Preview renders a scaled grayscale view of the image.
func Preview(m *Image, opts ...func(o *PreviewOptions)) image.Image {
	opt := PreviewOptions{}
	for _, applyOpt := range opts {
		applyOpt(&opt)
	}

	lo, hi := opt.Min, opt.Max
	if lo == 0 && hi == 0 {
		s := m.Stats()
		lo, hi = s.Min, s.Max
	}

	gray := m.Gray16(lo, hi)
	if opt.Width == 0 && opt.Height == 0 {
		return gray
	}
	return resize.Resize(opt.Width, opt.Height, gray, opt.Interpolation.kernel())
}

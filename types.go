package irb

// Format identifies an IRB encoding.
type Format int

const (
	// FormatUnknown is returned when detection fails.
	FormatUnknown Format = iota
	// FormatBinary is the proprietary binary layout.
	FormatBinary
	// FormatText is the key=value plus matrix text export.
	FormatText
)

func (f Format) String() string {
	switch f {
	case FormatBinary:
		return "binary"
	case FormatText:
		return "text"
	default:
		return "unknown"
	}
}

// Version is the pair of version numbers stored in a binary header.
type Version struct {
	Major uint32 `json:"major" yaml:"major"`
	Minor uint32 `json:"minor" yaml:"minor"`
}

// BinaryHeader holds the metadata read from the start of a binary IRB file.
type BinaryHeader struct {
	SoftwareVersion string
	Version         Version
	Width           uint16
	Height          uint16
}

// TextHeader holds the dimensions declared by a text export.
type TextHeader struct {
	Width  uint
	Height uint
}

// DecodeOptions controls text decoding.
type DecodeOptions struct {
	// SkipBlankLines ignores data lines that are empty after trimming whitespace.
	SkipBlankLines bool
	// MaxLineSize limits the length of a single line, in bytes.
	MaxLineSize int
}

func newDecodeOptions(opts []func(o *DecodeOptions)) DecodeOptions {
	opt := DecodeOptions{
		SkipBlankLines: true,
		MaxLineSize:    defaultMaxLineSize,
	}
	for _, applyOpt := range opts {
		applyOpt(&opt)
	}
	if opt.MaxLineSize <= 0 {
		opt.MaxLineSize = defaultMaxLineSize
	}
	return opt
}

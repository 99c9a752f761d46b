package irb

const (
	magicSize           = 5
	softwareVersionSize = 15

	// Absolute offsets in the binary layout.
	offsetDimensions = 6059
	offsetPixels     = 6119
)

var binaryMagic = [magicSize]byte{0xFF, 'I', 'R', 'B', 0x00}

const (
	textWidthKey  = "ImageWidth"
	textHeightKey = "ImageHeight"
	textDataLine  = "[Data]"
)

const (
	defaultMaxLineSize = 1 << 20
)

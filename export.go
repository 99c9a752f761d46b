package irb

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// ExportTIFFFile decodes the IRB file at inPath and writes a 16-bit grayscale TIFF
// preview to outPath.
func ExportTIFFFile(inPath, outPath string, opts ...func(o *PreviewOptions)) error {
	img, err := Decode(inPath)
	if err != nil {
		return err
	}
	return WriteTIFFFile(img, outPath, opts...)
}

// WriteTIFFFile writes a 16-bit grayscale TIFF preview of img to path.
func WriteTIFFFile(img *Image, path string, opts ...func(o *PreviewOptions)) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err := EncodeTIFF(bw, Preview(img, opts...)); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode tiff: %w", err)
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

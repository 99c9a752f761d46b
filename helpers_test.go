package irb

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// buildBinary assembles a binary IRB file with the given header fields and payload.
func buildBinary(software string, major, minor uint32, w, h uint16, data []float32) []byte {
	buf := make([]byte, offsetPixels+len(data)*4)
	copy(buf, binaryMagic[:])
	copy(buf[magicSize:magicSize+softwareVersionSize], software)
	binary.LittleEndian.PutUint32(buf[20:], major)
	binary.LittleEndian.PutUint32(buf[24:], minor)
	binary.LittleEndian.PutUint32(buf[28:], 1)
	binary.LittleEndian.PutUint16(buf[offsetDimensions:], w)
	binary.LittleEndian.PutUint16(buf[offsetDimensions+2:], h)
	for i, v := range data {
		binary.LittleEndian.PutUint32(buf[offsetPixels+i*4:], math.Float32bits(v))
	}
	return buf
}

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func near(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

package irb

import (
	"bytes"
	"strings"
	"testing"
)

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		want Format
	}{
		{name: "binary", in: buildBinary("", 0, 0, 0, 0, nil), want: FormatBinary},
		{name: "text", in: []byte("ImageWidth=1\n"), want: FormatText},
		{name: "short", in: []byte{0xFF, 'I'}, want: FormatText},
		{name: "empty", in: nil, want: FormatText},
		{name: "near miss", in: []byte{0xFF, 'I', 'R', 'B', 1}, want: FormatText},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DetectFormat(bytes.NewReader(tc.in))
			if err != nil {
				t.Fatalf("detect: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %s want %s", got, tc.want)
			}
		})
	}
}

func TestDecodeDispatch(t *testing.T) {
	bin := writeTemp(t, "image.irb", buildBinary("IRBACS", 1, 2, 2, 1, []float32{1.25, 2.5}))
	txt := writeTemp(t, "image.txt", []byte("ImageWidth=2\nImageHeight=1\n[Data]\n1,25\t2,5\n"))

	for _, p := range []string{bin, txt} {
		img, err := Decode(p)
		if err != nil {
			t.Fatalf("decode %s: %v", p, err)
		}
		if img.At(0, 0) != 1.25 || img.At(1, 0) != 2.5 {
			t.Fatalf("%s: samples mismatch %v", p, img.Values())
		}
	}

	d, err := Open(bin)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer d.Close()
	if d.Format() != FormatBinary || d.Width() != 2 || d.Height() != 1 {
		t.Fatalf("decoder mismatch: %s %dx%d", d.Format(), d.Width(), d.Height())
	}
}

func TestDecodeTextErrors(t *testing.T) {
	p := writeTemp(t, "bad.txt", []byte("ImageWidth=2\n[Data]\n1 2\n"))
	if _, err := Decode(p); KindOf(err) != KindMissingHeight {
		t.Fatalf("expected missing height, got %v", err)
	}
	p = writeTemp(t, "bad2.txt", []byte(strings.Repeat("junk\n", 3)))
	if _, err := Decode(p); KindOf(err) != KindMissingWidth {
		t.Fatalf("expected missing width, got %v", err)
	}
}

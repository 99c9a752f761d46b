package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vearutop/irb"
	"gopkg.in/yaml.v2"
)

var log = logrus.New()

func main() {
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.InfoLevel)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	if err := run(os.Args[1], os.Args[2:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			usage()
			os.Exit(2)
		}
		fail(err)
	}
}

var errUsage = errors.New("usage")

func run(cmd string, args []string, stdout io.Writer) error {
	switch cmd {
	case "pixel":
		return runPixel(args, stdout)
	case "info":
		return runInfo(args, stdout)
	case "export":
		return runExport(args)
	case "detect":
		return runDetect(args, stdout)
	default:
		return errUsage
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: irbtool <command> [args]")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  pixel  -in image.irb -x 10 -y 20 [-expr 'celsius(value)']")
	fmt.Fprintln(os.Stderr, "  info   -in image.irb [-format json|yaml]")
	fmt.Fprintln(os.Stderr, "  export -in image.irb -out preview.tiff [-w 320] [-h 240] [-min 0 -max 100]")
	fmt.Fprintln(os.Stderr, "  detect -in image.irb")
	fmt.Fprintln(os.Stderr, "All commands accept -v for debug logging.")
}

func newFlagSet(name string) (*flag.FlagSet, *string, *bool) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	inPath := fs.String("in", "", "input IRB file (binary or text export)")
	verbose := fs.Bool("v", false, "debug logging")
	return fs, inPath, verbose
}

func parse(fs *flag.FlagSet, args []string, verbose *bool) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return nil
}

// openImage decodes the file and logs what was found.
func openImage(path string) (irb.Decoder, *irb.Image, error) {
	start := time.Now()
	d, err := irb.Open(filepath.Clean(path))
	if err != nil {
		return nil, nil, err
	}
	defer d.Close()

	log.WithFields(logrus.Fields{
		"format": d.Format(),
		"width":  d.Width(),
		"height": d.Height(),
	}).Debug("header parsed")

	img, err := d.ReadImage()
	if err != nil {
		return nil, nil, err
	}
	log.WithField("elapsed", time.Since(start)).Debug("image decoded")
	return d, img, nil
}

func runPixel(args []string, stdout io.Writer) error {
	fs, inPath, verbose := newFlagSet("pixel")
	x := fs.Int("x", -1, "column")
	y := fs.Int("y", -1, "row")
	exprSrc := fs.String("expr", "", "transform applied to the value, e.g. 'celsius(value)'")
	if err := parse(fs, args, verbose); err != nil {
		return err
	}
	if *inPath == "" {
		return errors.New("missing required arguments")
	}

	var expr *irb.Expression
	if *exprSrc != "" {
		var err error
		if expr, err = irb.CompileExpression(*exprSrc); err != nil {
			return err
		}
	}

	_, img, err := openImage(*inPath)
	if err != nil {
		return err
	}
	v, ok := img.Get(*x, *y)
	if !ok {
		return fmt.Errorf("coordinates (%d, %d) out of range for %dx%d image", *x, *y, img.Width(), img.Height())
	}
	if expr != nil {
		if v, err = expr.Eval(*x, *y, v); err != nil {
			return err
		}
		log.WithField("expr", expr.String()).Debug("value transformed")
	}
	_, err = fmt.Fprintln(stdout, v)
	return err
}

func runInfo(args []string, stdout io.Writer) error {
	fs, inPath, verbose := newFlagSet("info")
	format := fs.String("format", "json", "output format: json or yaml")
	if err := parse(fs, args, verbose); err != nil {
		return err
	}
	if *inPath == "" {
		return errors.New("missing required arguments")
	}

	d, img, err := openImage(*inPath)
	if err != nil {
		return err
	}
	info, err := irb.BuildInfo(d, img)
	if err != nil {
		return err
	}

	var payload []byte
	switch *format {
	case "json":
		payload, err = json.MarshalIndent(info, "", "  ")
		payload = append(payload, '\n')
	case "yaml":
		payload, err = yaml.Marshal(info)
	default:
		return fmt.Errorf("unsupported format %q", *format)
	}
	if err != nil {
		return err
	}
	_, err = stdout.Write(payload)
	return err
}

func runExport(args []string) error {
	fs, inPath, verbose := newFlagSet("export")
	outPath := fs.String("out", "", "output TIFF")
	width := fs.Uint("w", 0, "preview width, 0 keeps aspect ratio")
	height := fs.Uint("h", 0, "preview height, 0 keeps aspect ratio")
	lo := fs.Float64("min", 0, "value mapped to black")
	hi := fs.Float64("max", 0, "value mapped to white")
	if err := parse(fs, args, verbose); err != nil {
		return err
	}
	if *inPath == "" || *outPath == "" {
		return errors.New("missing required arguments")
	}

	_, img, err := openImage(*inPath)
	if err != nil {
		return err
	}
	if err := irb.WriteTIFFFile(img, *outPath, func(o *irb.PreviewOptions) {
		o.Width = *width
		o.Height = *height
		o.Min = float32(*lo)
		o.Max = float32(*hi)
		o.Interpolation = irb.InterpolationLanczos2
	}); err != nil {
		return err
	}
	log.WithField("out", *outPath).Debug("preview written")
	return nil
}

func runDetect(args []string, stdout io.Writer) error {
	fs, inPath, verbose := newFlagSet("detect")
	if err := parse(fs, args, verbose); err != nil {
		return err
	}
	if *inPath == "" {
		return errors.New("missing required arguments")
	}
	f, err := os.Open(filepath.Clean(*inPath))
	if err != nil {
		return err
	}
	defer f.Close()
	format, err := irb.DetectFormat(f)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, format)
	return err
}

func fail(err error) {
	log.Debugf("failed: %+v", err)
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}

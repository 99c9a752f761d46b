package irb

import (
	"bytes"
	"strconv"
	"strings"
)

const maxPrealloc = 1 << 20

// ReadMatrix reads height rows of width values each from lines.
//
// ';' is treated as whitespace and ',' as the decimal separator. A row with the
// wrong number of values fails immediately with an image width *DimensionError.
// Rows beyond height are counted but not parsed, and a final row count other than
// height fails with an image height *DimensionError. With skipBlank, lines that are
// empty after trimming are ignored. If lines also reports line numbers, row errors
// carry the failing line.
func ReadMatrix(lines LineSource, width, height int, skipBlank bool) ([]float32, error) {
	n, err := imageLen(width, height)
	if err != nil {
		return nil, err
	}
	numbered, _ := lines.(lineNumberer)

	data := make([]float32, 0, min(n, maxPrealloc))
	rows := 0
	for lines.Next() {
		line := lines.Bytes()
		if skipBlank && len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		rows++
		if rows > height {
			continue
		}

		if data, err = appendRow(data, string(line), width); err != nil {
			if numbered != nil {
				setLine(err, numbered.Number())
			}
			return nil, err
		}
	}
	if err := lines.Err(); err != nil {
		return nil, ioErr("read data", err)
	}
	if rows != height {
		return nil, &DimensionError{Kind: KindImageHeight, Actual: rows, Expected: height}
	}
	return data, nil
}

type lineNumberer interface {
	Number() int
}

func setLine(err error, line int) {
	switch e := err.(type) {
	case *DimensionError:
		e.Line = line
	case *ParseNumericError:
		e.Line = line
	}
}

func appendRow(dst []float32, line string, width int) ([]float32, error) {
	fields := strings.Fields(strings.ReplaceAll(line, ";", " "))
	if len(fields) != width {
		return nil, &DimensionError{Kind: KindImageWidth, Actual: len(fields), Expected: width}
	}
	for _, tok := range fields {
		v, err := parseDecimal(tok)
		if err != nil {
			return nil, err
		}
		dst = append(dst, v)
	}
	return dst, nil
}

// parseDecimal parses a float32 accepting either ',' or '.' as decimal separator.
func parseDecimal(tok string) (float32, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(tok, ",", "."), 32)
	if err != nil {
		return 0, &ParseNumericError{Token: tok, Err: err}
	}
	return float32(v), nil
}

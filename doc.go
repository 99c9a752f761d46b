// Package irb provides a pure-Go reader for InfraTec IRB thermal image files.
//
// Two encodings are supported: the proprietary binary layout (magic header, fixed
// metadata offsets, raw little-endian float32 payload) and the text export
// (key=value header followed by a decimal-comma numeric matrix). Both produce an
// immutable Image addressed as (col, row).
//
// The binary layout was reverse-engineered from sample files. Offsets are only known
// to hold for the format version seen so far and the payload is returned as stored,
// without any calibration.
package irb

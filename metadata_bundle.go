package irb

import "errors"

const infoBundleFormat = "irb-info-1"

// Info summarizes a decoded IRB file for display or export as JSON/YAML.
type Info struct {
	Format          string   `json:"format" yaml:"format"`
	Encoding        string   `json:"encoding" yaml:"encoding"`
	Width           int      `json:"width" yaml:"width"`
	Height          int      `json:"height" yaml:"height"`
	SoftwareVersion string   `json:"software_version,omitempty" yaml:"software_version,omitempty"`
	Version         *Version `json:"version,omitempty" yaml:"version,omitempty"`
	Compression     string   `json:"compression,omitempty" yaml:"compression,omitempty"`
	Stats           *Stats   `json:"stats,omitempty" yaml:"stats,omitempty"`
}

// BuildInfo collects header fields from d and, if img is not nil, sample statistics.
func BuildInfo(d Decoder, img *Image) (*Info, error) {
	if d == nil {
		return nil, errors.New("decoder missing")
	}
	info := &Info{
		Format:   infoBundleFormat,
		Encoding: d.Format().String(),
		Width:    d.Width(),
		Height:   d.Height(),
	}
	switch d := d.(type) {
	case *BinaryDecoder:
		h := d.Header()
		info.SoftwareVersion = h.SoftwareVersion
		info.Version = &h.Version
	case *TextDecoder:
		if c := d.Compression(); c != "none" {
			info.Compression = c
		}
	}
	if img != nil {
		s := img.Stats()
		info.Stats = &s
	}
	if err := info.Validate(); err != nil {
		return nil, err
	}
	return info, nil
}

// Validate checks that the info is consistent.
func (i *Info) Validate() error {
	if i == nil {
		return errors.New("info is nil")
	}
	if i.Format != infoBundleFormat {
		return errors.New("unsupported info format")
	}
	if i.Width < 0 || i.Height < 0 {
		return errors.New("negative dimensions")
	}
	if i.Stats != nil && i.Stats.Count > i.Width*i.Height {
		return errors.New("stats cover more samples than the image holds")
	}
	return nil
}

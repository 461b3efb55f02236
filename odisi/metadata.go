package odisi

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Header keys consumed from the export's metadata block.
const (
	keyChannel   = "Channel"
	keyRate      = "Measurement Rate per Channel"
	keyGagePitch = "Gage Pitch (mm)"
)

// Errors returned by metadata parsing.
var (
	ErrMissingMetadata = errors.New("odisi: missing metadata key")
	ErrBadMetadata     = errors.New("odisi: malformed metadata value")
)

// Metadata holds the parsed per-channel instrument settings.
//
// Channel and GagePitch are fixed at construction. Rate starts as the
// instrument's measurement rate in Hz and is the one field alignment
// overwrites: after [Result.Align] it holds the spacing in seconds between
// the first two aligned rows, matching the source system's behavior.
type Metadata struct {
	Channel   int
	Rate      float64
	GagePitch float64
}

// ParseMetadata extracts the typed instrument settings from the raw header
// key/value table. The rate value carries a " Hz" suffix in the export.
func ParseMetadata(header map[string]string) (Metadata, error) {
	var meta Metadata

	raw, ok := header[keyChannel]
	if !ok {
		return Metadata{}, fmt.Errorf("%w: %q", ErrMissingMetadata, keyChannel)
	}

	channel, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return Metadata{}, fmt.Errorf("%w: %q = %q", ErrBadMetadata, keyChannel, raw)
	}

	meta.Channel = channel

	raw, ok = header[keyRate]
	if !ok {
		return Metadata{}, fmt.Errorf("%w: %q", ErrMissingMetadata, keyRate)
	}

	rate, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "Hz")), 64)
	if err != nil {
		return Metadata{}, fmt.Errorf("%w: %q = %q", ErrBadMetadata, keyRate, raw)
	}

	meta.Rate = rate

	raw, ok = header[keyGagePitch]
	if !ok {
		return Metadata{}, fmt.Errorf("%w: %q", ErrMissingMetadata, keyGagePitch)
	}

	pitch, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return Metadata{}, fmt.Errorf("%w: %q = %q", ErrBadMetadata, keyGagePitch, raw)
	}

	meta.GagePitch = pitch

	return meta, nil
}

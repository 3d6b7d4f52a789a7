package azgaar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidColorFormat is returned when a biome color string is not a
// 6-digit hex color.
var ErrInvalidColorFormat = errors.New("invalid color format: expected 6 hex digits")

// RGBA is a normalized color with each channel in [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// DefaultColor is substituted for biome colors that fail to decode.
var DefaultColor = RGBA{R: 0.5, G: 0.5, B: 0.5, A: 1}

// DecodeColor converts a hex color string such as "#3a7d22" into a
// normalized RGBA value. A single leading '#' marker is optional; the
// remainder must be exactly 6 hex digits. Alpha is always 1 (Azgaar biome
// palettes carry no transparency).
func DecodeColor(s string) (RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColorFormat, s)
	}

	var channels [3]float64
	for i := range channels {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColorFormat, s)
		}
		channels[i] = float64(v) / 255
	}

	return RGBA{R: channels[0], G: channels[1], B: channels[2], A: 1}, nil
}

// DecodePalette decodes a list of hex color strings, substituting
// DefaultColor for entries that fail to decode. It returns the decoded
// palette and the number of substitutions made.
func DecodePalette(colors []string) ([]RGBA, int) {
	palette := make([]RGBA, len(colors))
	invalid := 0
	for i, s := range colors {
		c, err := DecodeColor(s)
		if err != nil {
			c = DefaultColor
			invalid++
		}
		palette[i] = c
	}
	return palette, invalid
}

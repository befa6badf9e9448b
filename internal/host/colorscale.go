package host

import (
	"fmt"
	"strconv"
	"strings"
)

// ScalePoint is one stop of a color scale.
type ScalePoint struct {
	// Type is "min", "max", "num", "percent" or "percentile".
	Type  string
	Value string
	// Color is a hex RGB color such as "#F8696B".
	Color string
}

// ColorScale is a three-point color-scale conditional format.
type ColorScale struct {
	Min ScalePoint
	Mid ScalePoint
	Max ScalePoint
}

// DefaultColorScale returns the host's stock red-yellow-green scale.
func DefaultColorScale() ColorScale {
	return ColorScale{
		Min: ScalePoint{Type: "min", Color: "#F8696B"},
		Mid: ScalePoint{Type: "percentile", Value: "50", Color: "#FFEB84"},
		Max: ScalePoint{Type: "max", Color: "#63BE7B"},
	}
}

// Validate checks point types and colors.
func (c ColorScale) Validate() error {
	for _, p := range []struct {
		label string
		point ScalePoint
	}{{"min", c.Min}, {"mid", c.Mid}, {"max", c.Max}} {
		switch p.point.Type {
		case "min", "max":
		case "num", "percent", "percentile":
			if p.point.Value == "" {
				return fmt.Errorf("color scale %s point of type %s needs a value", p.label, p.point.Type)
			}
		default:
			return fmt.Errorf("color scale %s point has unknown type %q", p.label, p.point.Type)
		}
		if _, _, _, err := ParseHexColor(p.point.Color); err != nil {
			return fmt.Errorf("color scale %s point: %w", p.label, err)
		}
	}
	return nil
}

// ParseHexColor parses "#RRGGBB" (leading # optional) into its components.
func ParseHexColor(s string) (r, g, b uint8, err error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid color %q", s)
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}

// Package com drives a desktop Excel instance over COM automation. It is
// only functional on Windows; elsewhere Start reports ErrUnsupported.
package com

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"easyExcel/internal/host"
)

// ErrUnsupported is returned by Start on platforms without COM.
var ErrUnsupported = errors.New("COM automation is only available on Windows")

// Excel automation constants.
const (
	xlGeneral = 1
	xlLeft    = -4131
	xlCenter  = -4108
	xlRight   = -4152

	xlConditionValueNumber       = 0
	xlConditionValueLowestValue  = 1
	xlConditionValueHighestValue = 2
	xlConditionValuePercent      = 3
	xlConditionValuePercentile   = 5

	// DISP_E_UNKNOWNNAME, raised when a cached binding no longer matches
	// the application's type library.
	dispUnknownName = 0x80020006
)

// DefaultCacheDir returns %LOCALAPPDATA%\Temp\gen_py, where generated
// Excel bindings are cached.
func DefaultCacheDir() (string, error) {
	base := os.Getenv("LOCALAPPDATA")
	if base == "" {
		return "", fmt.Errorf("LOCALAPPDATA is not set")
	}
	return filepath.Join(base, "Temp", "gen_py"), nil
}

// removeCache deletes the binding cache directory. A missing directory is
// not an error.
func removeCache(dir string) error {
	if dir == "" {
		return fmt.Errorf("no binding cache directory configured")
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to remove binding cache %s: %w", dir, err)
	}
	return nil
}

func alignmentConstant(align host.HAlign) int {
	switch align {
	case host.AlignLeft:
		return xlLeft
	case host.AlignCenter:
		return xlCenter
	case host.AlignRight:
		return xlRight
	default:
		return xlGeneral
	}
}

func conditionValueType(pointType string) (int, error) {
	switch pointType {
	case "min":
		return xlConditionValueLowestValue, nil
	case "max":
		return xlConditionValueHighestValue, nil
	case "num":
		return xlConditionValueNumber, nil
	case "percent":
		return xlConditionValuePercent, nil
	case "percentile":
		return xlConditionValuePercentile, nil
	}
	return 0, fmt.Errorf("unknown color scale point type %q", pointType)
}

// bgrColor converts "#RRGGBB" to the BGR integer Excel stores colors as.
func bgrColor(hex string) (int, error) {
	r, g, b, err := host.ParseHexColor(hex)
	if err != nil {
		return 0, err
	}
	return int(r) | int(g)<<8 | int(b)<<16, nil
}

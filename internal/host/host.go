// Package host describes the capabilities a spreadsheet host must offer.
// Sessions talk to a host only through these interfaces, so the same code
// drives a live desktop application or a file-backed adapter.
package host

import (
	"errors"
	"fmt"
)

// ErrStaleBinding reports that the host's cached automation binding no
// longer matches the running application. Hosts implementing CacheResetter
// can recover from it.
var ErrStaleBinding = errors.New("stale automation binding")

// Flags control the host application's behaviour for a session.
type Flags struct {
	Visible        bool
	DisplayAlerts  bool
	ScreenUpdating bool
	EnableEvents   bool
}

// Application is a started (or attached) spreadsheet host.
type Application interface {
	// Start launches or attaches to the host and applies flags.
	Start(flags Flags) error
	// Open opens the document at path as a workbook.
	Open(path string) (Workbook, error)
	// Quit releases the host.
	Quit() error
}

// CacheResetter is implemented by hosts that keep an automation binding
// cache which can go stale between runs.
type CacheResetter interface {
	ResetCache() error
}

// Workbook is an open document.
type Workbook interface {
	// SheetNames returns the sheet names in host order.
	SheetNames() ([]string, error)
	// AddSheet creates a worksheet under a host-chosen name and returns
	// that name.
	AddSheet() (string, error)
	RenameSheet(oldName, newName string) error
	DeleteSheet(name string) error
	// Range resolves ref ("A1", "A1:B2" or a defined name) on sheet.
	Range(sheet, ref string) (Range, error)
	Save() error
	// Close closes the workbook, saving first when save is set.
	Close(save bool) error
}

// Range is a resolved rectangular block of cells.
type Range interface {
	Address() string
	AddColorScale(scale ColorScale) error
	Merge() error
	SetBold(bold bool) error
	SetHorizontalAlignment(align HAlign) error
}

// HAlign is a horizontal alignment.
type HAlign int

const (
	AlignGeneral HAlign = iota
	AlignLeft
	AlignCenter
	AlignRight
)

func (a HAlign) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "general"
	}
}

// RangeRef joins a start and optional end address into a range reference.
func RangeRef(start, end string) string {
	if end == "" {
		return start
	}
	return fmt.Sprintf("%s:%s", start, end)
}

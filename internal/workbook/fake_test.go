package workbook

import (
	"errors"
	"fmt"
	"strconv"

	"easyExcel/internal/host"
)

var errNoSuchSheet = errors.New("no such sheet")

// fakeApp is an in-memory host that records every call.
type fakeApp struct {
	startErrs []error
	resetErr  error
	openErr   error

	starts   int
	resets   int
	quits    int
	flags    host.Flags
	workbook *fakeWorkbook
}

func newFakeApp(sheets ...string) *fakeApp {
	return &fakeApp{workbook: &fakeWorkbook{sheets: sheets}}
}

func (a *fakeApp) Start(flags host.Flags) error {
	a.starts++
	a.flags = flags
	if len(a.startErrs) > 0 {
		err := a.startErrs[0]
		a.startErrs = a.startErrs[1:]
		return err
	}
	return nil
}

func (a *fakeApp) Open(path string) (host.Workbook, error) {
	if a.openErr != nil {
		return nil, a.openErr
	}
	a.workbook.path = path
	return a.workbook, nil
}

func (a *fakeApp) Quit() error {
	a.quits++
	return nil
}

func (a *fakeApp) ResetCache() error {
	a.resets++
	return a.resetErr
}

// plainApp hides fakeApp's ResetCache.
type plainApp struct {
	host.Application
}

type fakeWorkbook struct {
	path   string
	sheets []string
	ranges []*fakeRange
	saves  int
	closed []bool
}

func (w *fakeWorkbook) SheetNames() ([]string, error) {
	return append([]string(nil), w.sheets...), nil
}

func (w *fakeWorkbook) AddSheet() (string, error) {
	name := "Sheet" + strconv.Itoa(len(w.sheets)+1)
	w.sheets = append(w.sheets, name)
	return name, nil
}

func (w *fakeWorkbook) RenameSheet(oldName, newName string) error {
	for i, name := range w.sheets {
		if name == oldName {
			w.sheets[i] = newName
			return nil
		}
	}
	return fmt.Errorf("%w: %s", errNoSuchSheet, oldName)
}

func (w *fakeWorkbook) DeleteSheet(name string) error {
	for i, existing := range w.sheets {
		if existing == name {
			w.sheets = append(w.sheets[:i], w.sheets[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", errNoSuchSheet, name)
}

func (w *fakeWorkbook) Range(sheet, ref string) (host.Range, error) {
	found := false
	for _, name := range w.sheets {
		found = found || name == sheet
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", errNoSuchSheet, sheet)
	}
	rng := &fakeRange{sheet: sheet, ref: ref}
	w.ranges = append(w.ranges, rng)
	return rng, nil
}

func (w *fakeWorkbook) Save() error {
	w.saves++
	return nil
}

func (w *fakeWorkbook) Close(save bool) error {
	w.closed = append(w.closed, save)
	return nil
}

type fakeRange struct {
	sheet  string
	ref    string
	scale  *host.ColorScale
	merged bool
	bold   bool
	align  host.HAlign
}

func (r *fakeRange) Address() string { return r.ref }

func (r *fakeRange) AddColorScale(scale host.ColorScale) error {
	r.scale = &scale
	return nil
}

func (r *fakeRange) Merge() error {
	r.merged = true
	return nil
}

func (r *fakeRange) SetBold(bold bool) error {
	r.bold = bold
	return nil
}

func (r *fakeRange) SetHorizontalAlignment(align host.HAlign) error {
	r.align = align
	return nil
}

//go:build windows

package com

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"

	"easyExcel/internal/host"
	"easyExcel/internal/logger"

	ole "github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
)

// App is a running Excel.Application. COM requires every call to come from
// the thread that started it, so Start locks the calling goroutine to its
// OS thread until Quit.
type App struct {
	cacheDir    string
	app         *ole.IDispatch
	initialized bool
}

// NewApp returns an unstarted COM host. An empty cacheDir means
// DefaultCacheDir().
func NewApp(cacheDir string) *App {
	return &App{cacheDir: cacheDir}
}

// Start launches Excel and applies flags.
func (a *App) Start(flags host.Flags) error {
	if err := a.initialize(); err != nil {
		return err
	}
	if a.app != nil {
		a.app.Release()
		a.app = nil
	}

	unknown, err := oleutil.CreateObject("Excel.Application")
	if err != nil {
		return fmt.Errorf("failed to start Excel: %w", err)
	}
	app, err := unknown.QueryInterface(ole.IID_IDispatch)
	unknown.Release()
	if err != nil {
		return fmt.Errorf("failed to bind Excel: %w", err)
	}
	a.app = app

	settings := []struct {
		name  string
		value bool
	}{
		{"Visible", flags.Visible},
		{"DisplayAlerts", flags.DisplayAlerts},
		{"ScreenUpdating", flags.ScreenUpdating},
		{"EnableEvents", flags.EnableEvents},
	}
	for _, s := range settings {
		if _, err := oleutil.PutProperty(app, s.name, s.value); err != nil {
			if isUnknownName(err) {
				return fmt.Errorf("%w: setting %s: %w", host.ErrStaleBinding, s.name, err)
			}
			return fmt.Errorf("failed to set %s: %w", s.name, err)
		}
	}

	logger.Info("Started Excel over COM", "visible", flags.Visible)
	return nil
}

// ResetCache drops the current binding and removes the binding cache.
func (a *App) ResetCache() error {
	if a.app != nil {
		oleutil.CallMethod(a.app, "Quit")
		a.app.Release()
		a.app = nil
	}

	dir := a.cacheDir
	if dir == "" {
		var err error
		if dir, err = DefaultCacheDir(); err != nil {
			return err
		}
	}
	logger.Info("Removing Excel binding cache", "dir", dir)
	return removeCache(dir)
}

// Open opens path (made absolute, as Excel resolves relative paths against
// its own working directory).
func (a *App) Open(path string) (host.Workbook, error) {
	if a.app == nil {
		return nil, fmt.Errorf("excel is not started")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	workbooks, err := getDispatch(a.app, "Workbooks")
	if err != nil {
		return nil, err
	}
	defer workbooks.Release()

	wb, err := callDispatch(workbooks, "Open", abs)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", abs, err)
	}
	return &Workbook{wb: wb}, nil
}

// Quit closes Excel and releases COM.
func (a *App) Quit() error {
	var err error
	if a.app != nil {
		_, err = oleutil.CallMethod(a.app, "Quit")
		a.app.Release()
		a.app = nil
	}
	if a.initialized {
		ole.CoUninitialize()
		runtime.UnlockOSThread()
		a.initialized = false
	}
	return err
}

func (a *App) initialize() error {
	if a.initialized {
		return nil
	}
	runtime.LockOSThread()
	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		var oleErr *ole.OleError
		// S_FALSE: COM was already initialized on this thread.
		if !errors.As(err, &oleErr) || oleErr.Code() != 1 {
			runtime.UnlockOSThread()
			return fmt.Errorf("failed to initialize COM: %w", err)
		}
	}
	a.initialized = true
	return nil
}

// Workbook is an open Excel workbook.
type Workbook struct {
	wb      *ole.IDispatch
	handles []*ole.IDispatch
}

func (w *Workbook) SheetNames() ([]string, error) {
	sheets, err := getDispatch(w.wb, "Sheets")
	if err != nil {
		return nil, err
	}
	defer sheets.Release()

	count, err := oleutil.GetProperty(sheets, "Count")
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, count.Val)
	for i := 1; i <= int(count.Val); i++ {
		sheet, err := getDispatch(sheets, "Item", i)
		if err != nil {
			return nil, err
		}
		name, err := oleutil.GetProperty(sheet, "Name")
		sheet.Release()
		if err != nil {
			return nil, err
		}
		names = append(names, name.ToString())
	}
	return names, nil
}

func (w *Workbook) AddSheet() (string, error) {
	worksheets, err := getDispatch(w.wb, "Worksheets")
	if err != nil {
		return "", err
	}
	defer worksheets.Release()

	sheet, err := callDispatch(worksheets, "Add")
	if err != nil {
		return "", err
	}
	defer sheet.Release()

	name, err := oleutil.GetProperty(sheet, "Name")
	if err != nil {
		return "", err
	}
	return name.ToString(), nil
}

func (w *Workbook) RenameSheet(oldName, newName string) error {
	sheet, err := w.worksheet(oldName)
	if err != nil {
		return err
	}
	defer sheet.Release()

	_, err = oleutil.PutProperty(sheet, "Name", newName)
	return err
}

func (w *Workbook) DeleteSheet(name string) error {
	sheet, err := w.worksheet(name)
	if err != nil {
		return err
	}
	defer sheet.Release()

	_, err = oleutil.CallMethod(sheet, "Delete")
	return err
}

func (w *Workbook) Range(sheet, ref string) (host.Range, error) {
	ws, err := w.worksheet(sheet)
	if err != nil {
		return nil, err
	}
	defer ws.Release()

	rng, err := getDispatch(ws, "Range", ref)
	if err != nil {
		return nil, err
	}
	w.handles = append(w.handles, rng)
	return &Range{rng: rng}, nil
}

func (w *Workbook) Save() error {
	_, err := oleutil.CallMethod(w.wb, "Save")
	return err
}

// Close closes the workbook and releases every range handed out.
func (w *Workbook) Close(save bool) error {
	if w.wb == nil {
		return nil
	}
	_, err := oleutil.CallMethod(w.wb, "Close", save)
	for _, h := range w.handles {
		h.Release()
	}
	w.handles = nil
	w.wb.Release()
	w.wb = nil
	return err
}

func (w *Workbook) worksheet(name string) (*ole.IDispatch, error) {
	worksheets, err := getDispatch(w.wb, "Worksheets")
	if err != nil {
		return nil, err
	}
	defer worksheets.Release()
	return getDispatch(worksheets, "Item", name)
}

// Range is an Excel Range object.
type Range struct {
	rng *ole.IDispatch
}

func (r *Range) Address() string {
	v, err := oleutil.GetProperty(r.rng, "Address", false, false)
	if err != nil {
		return ""
	}
	return v.ToString()
}

func (r *Range) AddColorScale(scale host.ColorScale) error {
	if err := scale.Validate(); err != nil {
		return err
	}

	conditions, err := getDispatch(r.rng, "FormatConditions")
	if err != nil {
		return err
	}
	defer conditions.Release()

	cs, err := callDispatch(conditions, "AddColorScale", 3)
	if err != nil {
		return err
	}
	defer cs.Release()

	for i, point := range []host.ScalePoint{scale.Min, scale.Mid, scale.Max} {
		if err := setScalePoint(cs, i+1, point); err != nil {
			return err
		}
	}
	return nil
}

func (r *Range) Merge() error {
	_, err := oleutil.PutProperty(r.rng, "MergeCells", true)
	return err
}

func (r *Range) SetBold(bold bool) error {
	font, err := getDispatch(r.rng, "Font")
	if err != nil {
		return err
	}
	defer font.Release()

	_, err = oleutil.PutProperty(font, "Bold", bold)
	return err
}

func (r *Range) SetHorizontalAlignment(align host.HAlign) error {
	_, err := oleutil.PutProperty(r.rng, "HorizontalAlignment", alignmentConstant(align))
	return err
}

func setScalePoint(cs *ole.IDispatch, index int, point host.ScalePoint) error {
	kind, err := conditionValueType(point.Type)
	if err != nil {
		return err
	}
	color, err := bgrColor(point.Color)
	if err != nil {
		return err
	}

	criterion, err := getDispatch(cs, "ColorScaleCriteria", index)
	if err != nil {
		return err
	}
	defer criterion.Release()

	if _, err := oleutil.PutProperty(criterion, "Type", kind); err != nil {
		return err
	}
	if point.Value != "" {
		if _, err := oleutil.PutProperty(criterion, "Value", point.Value); err != nil {
			return err
		}
	}

	formatColor, err := getDispatch(criterion, "FormatColor")
	if err != nil {
		return err
	}
	defer formatColor.Release()

	_, err = oleutil.PutProperty(formatColor, "Color", color)
	return err
}

func getDispatch(d *ole.IDispatch, name string, params ...interface{}) (*ole.IDispatch, error) {
	v, err := oleutil.GetProperty(d, name, params...)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", name, err)
	}
	return v.ToIDispatch(), nil
}

func callDispatch(d *ole.IDispatch, name string, params ...interface{}) (*ole.IDispatch, error) {
	v, err := oleutil.CallMethod(d, name, params...)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", name, err)
	}
	return v.ToIDispatch(), nil
}

func isUnknownName(err error) bool {
	var oleErr *ole.OleError
	return errors.As(err, &oleErr) && oleErr.Code() == dispUnknownName
}

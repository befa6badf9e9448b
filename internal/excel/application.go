package excel

import (
	"errors"
	"fmt"

	"easyExcel/internal/host"
	"easyExcel/internal/logger"
)

// App is the file-backed host. There is no application process, so the
// UI flags are recorded but have no effect.
type App struct {
	flags   host.Flags
	started bool
	open    []*Editor
}

// NewApp returns an unstarted excelize host.
func NewApp() *App {
	return &App{}
}

// Start records flags and marks the host ready.
func (a *App) Start(flags host.Flags) error {
	a.flags = flags
	a.started = true
	logger.Debug("Started excelize host",
		"visible", flags.Visible,
		"display_alerts", flags.DisplayAlerts,
		"screen_updating", flags.ScreenUpdating,
		"enable_events", flags.EnableEvents)
	return nil
}

// Flags returns the flags passed to the last Start.
func (a *App) Flags() host.Flags {
	return a.flags
}

// Open opens an existing workbook.
func (a *App) Open(path string) (host.Workbook, error) {
	if !a.started {
		return nil, fmt.Errorf("excelize host not started")
	}
	editor, err := OpenFile(path)
	if err != nil {
		return nil, err
	}
	a.open = append(a.open, editor)
	return editor, nil
}

// Quit closes any workbook still open without saving it.
func (a *App) Quit() error {
	var errs []error
	for _, editor := range a.open {
		if err := editor.Close(false); err != nil {
			errs = append(errs, err)
		}
	}
	a.open = nil
	a.started = false
	return errors.Join(errs...)
}

// Package workbook drives one open workbook on a spreadsheet host: listing
// sheets, formatting ranges, adding sheets, saving and closing.
//
// A Session is not safe for concurrent use. Hosts serialize every call and
// callers must do the same.
package workbook

import (
	"errors"
	"fmt"

	"easyExcel/internal/host"
	"easyExcel/internal/logger"
)

// Options configure a session.
type Options struct {
	Flags host.Flags
	// ColorScale is applied by ApplyColorScale. The zero value means
	// host.DefaultColorScale().
	ColorScale host.ColorScale
	// StrictSheetNames rejects names containing any excluded character.
	StrictSheetNames bool
	// RollbackInvalidSheet deletes the sheet AddSheet created when the
	// requested name fails validation.
	RollbackInvalidSheet bool
}

// Session wraps one workbook opened on a host application.
type Session struct {
	app  host.Application
	wb   host.Workbook
	path string
	opts Options
}

// Initialize starts the host with flags. A stale automation binding is
// cleared and the start retried once when the host supports it.
func Initialize(app host.Application, flags host.Flags) error {
	err := app.Start(flags)
	if err == nil {
		return nil
	}

	resetter, ok := app.(host.CacheResetter)
	if !errors.Is(err, host.ErrStaleBinding) || !ok {
		return err
	}

	logger.Warn("Host binding is stale, resetting cache", "error", err)
	if rerr := resetter.ResetCache(); rerr != nil {
		return fmt.Errorf("failed to reset host binding cache: %w", errors.Join(err, rerr))
	}
	return app.Start(flags)
}

// Open initializes app and opens the workbook at path. If the workbook
// cannot be opened the host is released before returning.
func Open(app host.Application, path string, opts Options) (*Session, error) {
	if err := Initialize(app, opts.Flags); err != nil {
		return nil, err
	}

	wb, err := app.Open(path)
	if err != nil {
		if qerr := app.Quit(); qerr != nil {
			logger.Error("Failed to release host", "error", qerr)
		}
		return nil, err
	}

	if opts.ColorScale == (host.ColorScale{}) {
		opts.ColorScale = host.DefaultColorScale()
	}

	logger.Info("Opened workbook", "path", path)
	return &Session{
		app:  app,
		wb:   wb,
		path: path,
		opts: opts,
	}, nil
}

// With opens a session, runs fn and always closes the session. Close
// errors are joined with fn's error.
func With(app host.Application, path string, opts Options, fn func(*Session) error) error {
	s, err := Open(app, path, opts)
	if err != nil {
		return err
	}
	ferr := fn(s)
	return errors.Join(ferr, s.Close())
}

// Path returns the workbook path the session was opened with.
func (s *Session) Path() string {
	return s.path
}

// SheetNames returns the workbook's sheet names in host order.
func (s *Session) SheetNames() ([]string, error) {
	if s.wb == nil {
		return nil, ErrClosed
	}
	return s.wb.SheetNames()
}

// ApplyColorScale attaches the session's three-point color scale to
// start or start:end on sheet.
func (s *Session) ApplyColorScale(sheet, start, end string, save bool) error {
	rng, err := s.resolve(sheet, start, end)
	if err != nil {
		return err
	}
	if err := rng.AddColorScale(s.opts.ColorScale); err != nil {
		return err
	}
	logger.Debug("Applied color scale", "sheet", sheet, "range", rng.Address())
	return s.saveIf(save)
}

// MergeCells merges start or start:end on sheet. With center set, the
// start cell is centered horizontally.
func (s *Session) MergeCells(sheet, start, end string, center, save bool) error {
	rng, err := s.resolve(sheet, start, end)
	if err != nil {
		return err
	}
	if err := rng.Merge(); err != nil {
		return err
	}

	if center {
		first, err := s.wb.Range(sheet, start)
		if err != nil {
			return err
		}
		if err := first.SetHorizontalAlignment(host.AlignCenter); err != nil {
			return err
		}
	}
	logger.Debug("Merged cells", "sheet", sheet, "range", rng.Address(), "center", center)
	return s.saveIf(save)
}

// BoldCells sets bold on start or start:end on sheet.
func (s *Session) BoldCells(sheet, start, end string, save bool) error {
	rng, err := s.resolve(sheet, start, end)
	if err != nil {
		return err
	}
	if err := rng.SetBold(true); err != nil {
		return err
	}
	logger.Debug("Bolded cells", "sheet", sheet, "range", rng.Address())
	return s.saveIf(save)
}

// AddSheet creates a worksheet and names it.
//
// The worksheet is created before name is checked. When the check fails
// the new sheet keeps the host's default name unless
// Options.RollbackInvalidSheet is set. A name already in the workbook gets
// the new sheet count appended.
func (s *Session) AddSheet(name string, save bool) error {
	if s.wb == nil {
		return ErrClosed
	}

	created, err := s.wb.AddSheet()
	if err != nil {
		return err
	}

	if err := CheckSheetName(name, s.opts.StrictSheetNames); err != nil {
		logger.Warn("Rejected sheet name", "name", name, "created", created, "error", err)
		if s.opts.RollbackInvalidSheet {
			if derr := s.wb.DeleteSheet(created); derr != nil {
				return errors.Join(err, derr)
			}
		}
		return err
	}

	sheets, err := s.wb.SheetNames()
	if err != nil {
		return err
	}

	final := disambiguate(name, sheets)
	if final != created {
		if err := s.wb.RenameSheet(created, final); err != nil {
			return err
		}
	}
	logger.Info("Added sheet", "requested", name, "name", final)
	return s.saveIf(save)
}

// Save persists the workbook in place.
func (s *Session) Save() error {
	if s.wb == nil {
		return ErrClosed
	}
	if err := s.wb.Save(); err != nil {
		return err
	}
	logger.Debug("Saved workbook", "path", s.path)
	return nil
}

// Close saves and closes the workbook and releases the host. The session
// cannot be used afterwards.
func (s *Session) Close() error {
	if s.wb == nil {
		return ErrClosed
	}

	werr := s.wb.Close(true)
	qerr := s.app.Quit()
	s.wb = nil
	s.app = nil

	if err := errors.Join(werr, qerr); err != nil {
		return err
	}
	logger.Info("Closed workbook", "path", s.path)
	return nil
}

func (s *Session) resolve(sheet, start, end string) (host.Range, error) {
	if s.wb == nil {
		return nil, ErrClosed
	}
	return s.wb.Range(sheet, host.RangeRef(start, end))
}

func (s *Session) saveIf(save bool) error {
	if !save {
		return nil
	}
	return s.Save()
}

package excel

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"easyExcel/internal/host"
	"easyExcel/internal/logger"

	"github.com/xuri/excelize/v2"
)

// Editor is an open xlsx workbook. It implements host.Workbook.
type Editor struct {
	file     *excelize.File
	filepath string
	closed   bool
}

// OpenFile opens an existing Excel file
func OpenFile(filepath string) (*Editor, error) {
	file, err := excelize.OpenFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return &Editor{
		file:     file,
		filepath: filepath,
	}, nil
}

// SheetNames returns all sheet names in the workbook
func (e *Editor) SheetNames() ([]string, error) {
	return e.file.GetSheetList(), nil
}

// AddSheet creates a new sheet named SheetN, the first unused N counting
// from the new sheet count, and makes it active.
func (e *Editor) AddSheet() (string, error) {
	sheets := e.file.GetSheetList()
	n := len(sheets) + 1
	name := "Sheet" + strconv.Itoa(n)
	for containsFold(sheets, name) {
		n++
		name = "Sheet" + strconv.Itoa(n)
	}

	idx, err := e.file.NewSheet(name)
	if err != nil {
		return "", err
	}
	e.file.SetActiveSheet(idx)
	logger.Debug("Created sheet", "file", e.filepath, "sheet", name)
	return name, nil
}

// ErrSheetNameTaken is returned when a rename would give two sheets names
// that differ only in case.
var ErrSheetNameTaken = errors.New("a sheet with that name already exists")

// RenameSheet changes a sheet's name. Sheet names are unique ignoring case.
func (e *Editor) RenameSheet(oldName, newName string) error {
	if idx, err := e.file.GetSheetIndex(oldName); err != nil {
		return err
	} else if idx == -1 {
		return excelize.ErrSheetNotExist{SheetName: oldName}
	}
	if !strings.EqualFold(oldName, newName) && containsFold(e.file.GetSheetList(), newName) {
		return fmt.Errorf("rename %q to %q: %w", oldName, newName, ErrSheetNameTaken)
	}
	return e.file.SetSheetName(oldName, newName)
}

// DeleteSheet removes a sheet
func (e *Editor) DeleteSheet(sheetName string) error {
	return e.file.DeleteSheet(sheetName)
}

// Range resolves a cell, a "start:end" block, whole columns ("A:C"), whole
// rows ("1:3") or a defined name on sheet. Whole columns and rows are cut
// to the sheet's used area.
func (e *Editor) Range(sheet, ref string) (host.Range, error) {
	idx, err := e.file.GetSheetIndex(sheet)
	if err != nil {
		return nil, err
	}
	if idx == -1 {
		return nil, excelize.ErrSheetNotExist{SheetName: sheet}
	}

	if !strings.Contains(ref, ":") {
		if _, _, err := excelize.CellNameToCoordinates(ref); err != nil {
			if ref, err = e.resolveDefinedName(sheet, ref); err != nil {
				return nil, err
			}
		}
	}

	ref, err = e.expandLines(sheet, ref)
	if err != nil {
		return nil, err
	}
	return newCellRange(e.file, sheet, ref)
}

// expandLines turns "A:C" into "A1:C<last row>" and "1:3" into
// "A1:<last column>3". Other refs are returned unchanged.
func (e *Editor) expandLines(sheet, ref string) (string, error) {
	start, end, found := strings.Cut(ref, ":")
	if !found {
		return ref, nil
	}
	columns := isAllOf(start, isLetter) && isAllOf(end, isLetter)
	rows := isAllOf(start, isDigit) && isAllOf(end, isDigit)
	if !columns && !rows {
		return ref, nil
	}

	lastCol, lastRow, err := e.usedExtent(sheet)
	if err != nil {
		return "", err
	}
	if columns {
		return start + "1:" + end + strconv.Itoa(lastRow), nil
	}
	colName, err := excelize.ColumnNumberToName(lastCol)
	if err != nil {
		return "", err
	}
	return "A" + start + ":" + colName + end, nil
}

// usedExtent returns the last column and row holding a value, at least 1.
func (e *Editor) usedExtent(sheet string) (int, int, error) {
	rows, err := e.file.GetRows(sheet)
	if err != nil {
		return 0, 0, err
	}
	lastCol, lastRow := 1, max(len(rows), 1)
	for _, row := range rows {
		lastCol = max(lastCol, len(row))
	}
	return lastCol, lastRow, nil
}

func isLetter(r rune) bool { return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') }

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isAllOf(s string, fn func(rune) bool) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !fn(r) {
			return false
		}
	}
	return true
}

// resolveDefinedName looks up a workbook or sheet scoped name and returns
// its cell reference with the sheet prefix and $ anchors removed.
func (e *Editor) resolveDefinedName(sheet, name string) (string, error) {
	for _, dn := range e.file.GetDefinedName() {
		if !strings.EqualFold(dn.Name, name) {
			continue
		}
		if dn.Scope != "" && dn.Scope != "Workbook" && dn.Scope != sheet {
			continue
		}

		refersTo := strings.TrimPrefix(dn.RefersTo, "=")
		if i := strings.LastIndex(refersTo, "!"); i >= 0 {
			owner := strings.Trim(refersTo[:i], "'")
			if owner != sheet {
				return "", fmt.Errorf("name %q refers to sheet %q, not %q", name, owner, sheet)
			}
			refersTo = refersTo[i+1:]
		}
		return strings.ReplaceAll(refersTo, "$", ""), nil
	}
	return "", fmt.Errorf("invalid cell reference %q", name)
}

// Save saves the Excel file to the original filepath
func (e *Editor) Save() error {
	if e.filepath == "" {
		return fmt.Errorf("no filepath specified, use SaveAs instead")
	}
	return e.file.SaveAs(e.filepath)
}

// Close closes the Excel file, saving it first when save is set
func (e *Editor) Close(save bool) error {
	if e.closed {
		return nil
	}
	if save {
		if err := e.Save(); err != nil {
			return err
		}
	}
	e.closed = true
	return e.file.Close()
}

func containsFold(list []string, name string) bool {
	for _, item := range list {
		if strings.EqualFold(item, name) {
			return true
		}
	}
	return false
}

package excel

import (
	"fmt"
	"strings"

	"easyExcel/internal/host"

	"github.com/xuri/excelize/v2"
)

// cellRange is a rectangular block on one sheet, coordinates 1-based.
type cellRange struct {
	file     *excelize.File
	sheet    string
	startCol int
	startRow int
	endCol   int
	endRow   int
}

func newCellRange(file *excelize.File, sheet, ref string) (*cellRange, error) {
	start, end, found := strings.Cut(ref, ":")
	if !found {
		end = start
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(start)
	if err != nil {
		return nil, err
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(end)
	if err != nil {
		return nil, err
	}

	// B2:A1 names the same block as A1:B2
	if endCol < startCol {
		startCol, endCol = endCol, startCol
	}
	if endRow < startRow {
		startRow, endRow = endRow, startRow
	}

	return &cellRange{
		file:     file,
		sheet:    sheet,
		startCol: startCol,
		startRow: startRow,
		endCol:   endCol,
		endRow:   endRow,
	}, nil
}

func (r *cellRange) topLeft() string {
	cell, _ := excelize.CoordinatesToCellName(r.startCol, r.startRow)
	return cell
}

func (r *cellRange) bottomRight() string {
	cell, _ := excelize.CoordinatesToCellName(r.endCol, r.endRow)
	return cell
}

func (r *cellRange) single() bool {
	return r.startCol == r.endCol && r.startRow == r.endRow
}

// Address returns "A1" for a single cell and "A1:B2" otherwise.
func (r *cellRange) Address() string {
	if r.single() {
		return r.topLeft()
	}
	return r.topLeft() + ":" + r.bottomRight()
}

// AddColorScale attaches a three-color-scale conditional format.
func (r *cellRange) AddColorScale(scale host.ColorScale) error {
	if err := scale.Validate(); err != nil {
		return err
	}
	return r.file.SetConditionalFormat(r.sheet, r.Address(), []excelize.ConditionalFormatOptions{{
		Type:     "3_color_scale",
		Criteria: "=",
		MinType:  scale.Min.Type,
		MinValue: scale.Min.Value,
		MinColor: scale.Min.Color,
		MidType:  scale.Mid.Type,
		MidValue: scale.Mid.Value,
		MidColor: scale.Mid.Color,
		MaxType:  scale.Max.Type,
		MaxValue: scale.Max.Value,
		MaxColor: scale.Max.Color,
	}})
}

// Merge merges the block. Merging a single cell leaves the sheet unchanged.
func (r *cellRange) Merge() error {
	if r.single() {
		return nil
	}
	return r.file.MergeCell(r.sheet, r.topLeft(), r.bottomRight())
}

// SetBold sets the font weight of every cell, keeping the rest of each
// cell's style.
func (r *cellRange) SetBold(bold bool) error {
	return r.updateStyle(func(style *excelize.Style) {
		if style.Font == nil {
			style.Font = &excelize.Font{}
		}
		style.Font.Bold = bold
	})
}

// SetHorizontalAlignment aligns every cell, keeping the rest of each
// cell's style.
func (r *cellRange) SetHorizontalAlignment(align host.HAlign) error {
	return r.updateStyle(func(style *excelize.Style) {
		if style.Alignment == nil {
			style.Alignment = &excelize.Alignment{}
		}
		if align == host.AlignGeneral {
			style.Alignment.Horizontal = ""
			return
		}
		style.Alignment.Horizontal = align.String()
	})
}

// updateStyle derives one new style per distinct existing style in the
// block and applies it cell by cell.
func (r *cellRange) updateStyle(edit func(*excelize.Style)) error {
	derived := make(map[int]int)
	for row := r.startRow; row <= r.endRow; row++ {
		for col := r.startCol; col <= r.endCol; col++ {
			cell, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				return err
			}

			styleID, err := r.file.GetCellStyle(r.sheet, cell)
			if err != nil {
				return fmt.Errorf("failed to read style of %s: %w", cell, err)
			}

			newID, ok := derived[styleID]
			if !ok {
				style, err := r.file.GetStyle(styleID)
				if err != nil {
					return fmt.Errorf("failed to read style %d: %w", styleID, err)
				}
				edit(style)
				newID, err = r.file.NewStyle(style)
				if err != nil {
					return fmt.Errorf("failed to create style for %s: %w", cell, err)
				}
				derived[styleID] = newID
			}

			if err := r.file.SetCellStyle(r.sheet, cell, cell, newID); err != nil {
				return fmt.Errorf("failed to apply style to %s: %w", cell, err)
			}
		}
	}
	return nil
}

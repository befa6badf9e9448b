package workbook

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// MaxSheetNameLength is the longest sheet name the host accepts.
const MaxSheetNameLength = 31

// ExcludedCharacters may not appear in a sheet name when strict checking
// is on.
const ExcludedCharacters = `\/?*,[]:.`

// CheckSheetName validates a requested sheet name.
//
// By default only the empty name is rejected here. Any other name goes to
// the host, which refuses the characters it does not accept. With strict
// set, a single excluded character is enough to reject the name.
func CheckSheetName(name string, strict bool) error {
	excluded := name == ""
	if strict {
		excluded = excluded || strings.ContainsAny(name, ExcludedCharacters)
	}
	if excluded {
		return fmt.Errorf("sheet name %q: %w", name, ErrExcludedCharacters)
	}

	if utf8.RuneCountInString(name) > MaxSheetNameLength {
		return fmt.Errorf("sheet name %q: %w", name, ErrCharacterLimit)
	}
	return nil
}

// disambiguate picks the final name for a sheet created while the workbook
// holds sheets. A taken name gets the sheet count appended, so "Sheet1" in a
// workbook of 4 sheets becomes "Sheet14".
func disambiguate(name string, sheets []string) string {
	for _, existing := range sheets {
		if existing == name {
			return name + strconv.Itoa(len(sheets))
		}
	}
	return name
}

package workbook

import "errors"

// ErrExcludedCharacters rejects a sheet name made of characters a sheet
// name may not use.
var ErrExcludedCharacters = errors.New(`worksheet names cannot include \ / ? * , [ ] : .`)

// ErrCharacterLimit rejects a sheet name longer than MaxSheetNameLength.
var ErrCharacterLimit = errors.New("worksheet names are limited to 31 characters")

// ErrClosed is returned by every operation on a closed session.
var ErrClosed = errors.New("workbook session is closed")

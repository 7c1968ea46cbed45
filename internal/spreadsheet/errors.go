package spreadsheet

import "errors"

var (
	ErrOpen    = errors.New("failed to open spreadsheet")
	ErrNoSheet = errors.New("sheet not found")
	ErrWrite   = errors.New("failed to write spreadsheet")

	ErrInvalidOptions = errors.New("invalid read options")
)

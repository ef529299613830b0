package reconciling

import "errors"

var (
	ErrInvalidCSV  = errors.New("invalid fact CSV")
	ErrImportFacts = errors.New("error importing fact rows")
	ErrListFacts   = errors.New("error listing fact rows")
)

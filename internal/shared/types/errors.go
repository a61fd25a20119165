package types

import "errors"

var (
	// ErrEmptyDocument: the document has fewer than two lines, i.e. no data
	// rows at all below the header.
	ErrEmptyDocument = errors.New("usage report is empty: expected a header and at least one data row")

	// ErrNoValidRows: every data row of the document was rejected.
	ErrNoValidRows = errors.New("usage report contains no parseable data rows")
)

package cellar

import "errors"

// Lookup errors. These are always propagated to the caller, never
// defaulted: a query against a closed document or an unknown key is a
// caller bug, not a degraded document.
var (
	ErrDocumentNotOpen      = errors.New("cellar: document not open")
	ErrSheetNotFound        = errors.New("cellar: sheet not found")
	ErrSharedStringNotFound = errors.New("cellar: shared string not found")
)

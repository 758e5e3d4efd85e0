// Package worksheet decodes the workbook, shared-strings, and sheet parts of
// an OOXML spreadsheet package into an in-memory cell model.
package worksheet

import (
	"errors"
	"strconv"
	"strings"
)

// CellType represents the decoded type of a cell value.
type CellType int

const (
	// CellTypeNumber indicates raw numeric text, stored verbatim.
	CellTypeNumber CellType = iota
	// CellTypeSharedString indicates an index into the document's shared
	// strings table.
	CellTypeSharedString
)

// String returns the string representation of the cell type.
func (t CellType) String() string {
	switch t {
	case CellTypeNumber:
		return "number"
	case CellTypeSharedString:
		return "shared-string"
	default:
		return "unknown"
	}
}

// ErrNotSharedString is returned when a shared-string index is requested
// from a cell that does not reference one.
var ErrNotSharedString = errors.New("worksheet: cell is not a shared-string reference")

// Cell is a single cell value as stored in the sheet part.
type Cell struct {
	Type  CellType
	Value string // raw text of the v element, never converted
	// RawType is the verbatim t attribute value when present ("s", "str",
	// "b", ...). The decoder collapses any t attribute to
	// CellTypeSharedString; RawType keeps the original code.
	RawType string
}

// SharedStringIndex returns the cell's value parsed as a shared-string
// table index.
func (c Cell) SharedStringIndex() (int, error) {
	if c.Type != CellTypeSharedString {
		return 0, ErrNotSharedString
	}
	idx, err := strconv.Atoi(strings.TrimSpace(c.Value))
	if err != nil {
		return 0, errors.New("worksheet: shared-string reference is not an integer: " + c.Value)
	}
	return idx, nil
}

// Row maps column keys ("A", "BC") to cells.
type Row map[string]Cell

// Sheet maps declared 1-based row numbers to rows. Row numbers are taken
// from the document and need not be contiguous or start at 1.
type Sheet map[int]Row

// SharedStrings maps 0-based positional indices to string values. Indices
// follow the document order of the sst entries; an entry that failed to
// decode is absent but still consumed its index.
type SharedStrings map[int]string

// ColumnKey derives the column letters from a cell reference by stripping
// every non-alphabetic character: "B12" yields "B", "AA3" yields "AA".
func ColumnKey(ref string) string {
	var b strings.Builder
	for i := 0; i < len(ref); i++ {
		c := ref[i]
		if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') {
			b.WriteByte(c)
		}
	}
	return b.String()
}

package worksheet

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spindleworks/cellar/xmltree"
)

// ExtractSheet walks a parsed sheet tree's row and cell structure into the
// row-to-column-to-cell model.
//
// A row with a missing or non-numeric r attribute is recorded in rep and
// skipped; a cell with no v value element likewise. Extraction never aborts
// on a single bad row. Only a sheet part without a sheetData container
// fails outright.
func ExtractSheet(root *xmltree.Node, rep *Report) (Sheet, error) {
	if root == nil || root.Tag != "worksheet" {
		return nil, errors.New("worksheet: sheet part has no worksheet root element")
	}
	sheetData := root.Child("sheetData")
	if sheetData == nil {
		return nil, errors.New("worksheet: sheet part has no sheetData element")
	}

	sheet := make(Sheet)
	for _, rowNode := range sheetData.Children {
		if rowNode.Tag != "row" {
			continue
		}

		attr, ok := rowNode.Attr("r")
		if !ok {
			rep.RowsSkipped++
			rep.Record("sheetData", "row without r attribute", errAttrNotFound)
			continue
		}
		rowNum, err := strconv.Atoi(attr)
		if err != nil {
			rep.RowsSkipped++
			rep.Record("sheetData", fmt.Sprintf("row %q", attr), errors.New("row index is not numeric"))
			continue
		}

		sheet[rowNum] = extractRow(rowNode, rowNum, rep)
	}

	return sheet, nil
}

var errAttrNotFound = errors.New("worksheet: attribute not found")

// extractRow decodes the c children of one row node. A duplicate column
// reference within the row overwrites the earlier cell.
func extractRow(rowNode *xmltree.Node, rowNum int, rep *Report) Row {
	row := make(Row)
	for _, cellNode := range rowNode.Children {
		if cellNode.Tag != "c" {
			continue
		}

		v := cellNode.Child("v")
		if v == nil {
			rep.CellsSkipped++
			rep.Record("sheetData", fmt.Sprintf("row %d cell without value", rowNum), errors.New("cell has no v element"))
			continue
		}
		ref, ok := cellNode.Attr("r")
		if !ok {
			rep.CellsSkipped++
			rep.Record("sheetData", fmt.Sprintf("row %d cell without reference", rowNum), errAttrNotFound)
			continue
		}

		cell := Cell{Type: CellTypeNumber, Value: v.Text}
		if rawType, ok := cellNode.Attr("t"); ok {
			// Any declared type marks a shared-string reference; the
			// attribute value itself is kept but not interpreted.
			cell.Type = CellTypeSharedString
			cell.RawType = rawType
		}

		row[ColumnKey(ref)] = cell
	}
	return row
}

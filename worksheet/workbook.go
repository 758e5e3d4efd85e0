package worksheet

import (
	"archive/zip"
	"errors"
	"fmt"
	"strconv"

	"github.com/spindleworks/cellar/opc"
	"github.com/spindleworks/cellar/xmltree"
)

const workbookMember = "workbook.xml"

// relationship ids carry a fixed "rId" prefix ahead of the sheet ordinal.
const relIDPrefixLen = 3

// ResolveSheets parses the workbook part, maps each declared sheet name to
// its member file via the relationship id ordinal, and returns the parsed
// tree of every sheet member it could read.
//
// A workbook part that cannot be read or parsed fails the whole call. A
// single sheet whose member is missing or malformed is recorded in rep and
// omitted; its siblings still resolve.
func ResolveSheets(zr *zip.Reader, rep *Report) (map[string]*xmltree.Node, error) {
	data, err := opc.ReadMember(zr, workbookMember)
	if err != nil {
		return nil, fmt.Errorf("reading workbook: %w", err)
	}
	wb, err := xmltree.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing workbook: %w", err)
	}

	sheets := wb.Child("sheets")
	if wb.Tag != "workbook" || sheets == nil {
		return nil, errors.New("worksheet: workbook part has no sheets element")
	}

	trees := make(map[string]*xmltree.Node)
	for _, decl := range sheets.Children {
		if decl.Tag != "sheet" {
			continue
		}

		name, ordinal, err := sheetDeclaration(decl)
		if err != nil {
			rep.SheetsSkipped++
			rep.Record(workbookMember, fmt.Sprintf("sheet %q", name), err)
			continue
		}

		member := fmt.Sprintf("sheet%d.xml", ordinal)
		data, err := opc.ReadMember(zr, member)
		if err != nil {
			rep.SheetsSkipped++
			rep.Record(member, fmt.Sprintf("sheet %q", name), err)
			continue
		}
		tree, err := xmltree.Parse(data)
		if err != nil {
			rep.SheetsSkipped++
			rep.Record(member, fmt.Sprintf("sheet %q", name), err)
			continue
		}

		trees[name] = tree
	}

	return trees, nil
}

// sheetDeclaration extracts the display name and the sheet ordinal from one
// workbook sheet entry. The ordinal is the integer remainder of the
// relationship id after its fixed prefix.
func sheetDeclaration(decl *xmltree.Node) (name string, ordinal int, err error) {
	name, ok := decl.Attr("name")
	if !ok {
		return "", 0, errors.New("sheet entry has no name attribute")
	}
	rid, ok := decl.Attr("r:id")
	if !ok {
		return name, 0, errors.New("sheet entry has no r:id attribute")
	}
	if len(rid) <= relIDPrefixLen {
		return name, 0, fmt.Errorf("relationship id too short: %q", rid)
	}
	ordinal, err = strconv.Atoi(rid[relIDPrefixLen:])
	if err != nil {
		return name, 0, fmt.Errorf("relationship id has no ordinal: %q", rid)
	}
	return name, ordinal, nil
}

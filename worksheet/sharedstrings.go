package worksheet

import (
	"archive/zip"
	"errors"
	"fmt"
	"strings"

	"github.com/spindleworks/cellar/opc"
	"github.com/spindleworks/cellar/xmltree"
)

const sharedStringsMember = "sharedStrings.xml"

// LoadSharedStrings reads and decodes the sharedStrings part of an open
// package. A package with no sharedStrings member yields an empty table: a
// workbook without string cells legitimately omits the part. A member that
// cannot be read or parsed is recorded in rep and likewise yields an empty
// table, so the rest of the document still opens.
func LoadSharedStrings(zr *zip.Reader, rep *Report) SharedStrings {
	data, err := opc.ReadMember(zr, sharedStringsMember)
	if errors.Is(err, opc.ErrMemberNotFound) {
		return make(SharedStrings)
	}
	if err != nil {
		rep.Record(sharedStringsMember, "", err)
		return make(SharedStrings)
	}

	root, err := xmltree.Parse(data)
	if err != nil {
		rep.Record(sharedStringsMember, "", err)
		return make(SharedStrings)
	}
	return BuildSharedStrings(root, rep)
}

// BuildSharedStrings converts a parsed sharedStrings part into the
// index-to-string table.
//
// Entries are assigned sequential indices starting at 0 in document order.
// The counter advances for every entry encountered, decoded or not: cells
// reference shared strings by absolute position in the raw entry list, so a
// malformed entry must consume its index even though its value is omitted.
// Malformed entries are recorded in rep and skipped.
func BuildSharedStrings(root *xmltree.Node, rep *Report) SharedStrings {
	table := make(SharedStrings)

	if root == nil || root.Tag != "sst" {
		rep.Record(sharedStringsMember, "", errors.New("missing sst root element"))
		return table
	}

	index := -1
	for _, entry := range root.Children {
		if entry.Tag != "si" {
			continue
		}
		index++

		value, err := stringEntryText(entry)
		if err != nil {
			rep.SharedStringsSkipped++
			rep.Record(sharedStringsMember, fmt.Sprintf("si %d", index), err)
			continue
		}
		table[index] = value
	}

	return table
}

// stringEntryText extracts the text of one si entry: the single t child for
// a plain entry, or the t text of each r run concatenated in child order
// for rich text.
func stringEntryText(entry *xmltree.Node) (string, error) {
	if entry.HasChild("r") {
		var b strings.Builder
		for _, run := range entry.Children {
			if run.Tag != "r" {
				continue
			}
			t := run.Child("t")
			if t == nil {
				return "", errors.New("rich-text run has no t element")
			}
			b.WriteString(t.Text)
		}
		return b.String(), nil
	}

	t := entry.Child("t")
	if t == nil {
		return "", errors.New("entry has no t element")
	}
	return t.Text, nil
}

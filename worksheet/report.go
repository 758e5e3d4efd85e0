package worksheet

import "fmt"

// Problem describes one absorbed failure encountered while decoding a
// document part.
type Problem struct {
	Part    string // member or sheet name
	Context string // e.g. "si 3", "row 7"
	Err     error
}

func (p Problem) String() string {
	if p.Context != "" {
		return fmt.Sprintf("%s: %s: %v", p.Part, p.Context, p.Err)
	}
	return fmt.Sprintf("%s: %v", p.Part, p.Err)
}

// Report accumulates the failures that were absorbed during a document
// open. A non-empty report means the document is partially populated: the
// entries it counts were skipped, everything else parsed normally.
type Report struct {
	SharedStringsSkipped int
	SheetsSkipped        int
	RowsSkipped          int
	CellsSkipped         int
	Problems             []Problem
}

// Clean reports whether the document decoded without any absorbed failures.
func (r *Report) Clean() bool {
	return len(r.Problems) == 0
}

// Record appends one absorbed failure with its identifying context.
func (r *Report) Record(part, context string, err error) {
	r.Problems = append(r.Problems, Problem{Part: part, Context: context, Err: err})
}

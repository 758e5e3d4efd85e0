package cellar

import (
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/spindleworks/cellar/opc"
	"github.com/spindleworks/cellar/worksheet"
)

// document is the unit of caching: everything parsed from one package.
type document struct {
	shared worksheet.SharedStrings
	sheets map[string]worksheet.Sheet
	report worksheet.Report
}

// Registry caches parsed spreadsheet documents keyed by file path.
//
// One exclusive mutex guards every operation, so all parsing runs while the
// lock is held and a slow Open blocks every other caller for its duration.
// Callers should treat Open as an expensive, contention-prone operation and
// avoid high-frequency concurrent opens under the same registry.
type Registry struct {
	mu   sync.Mutex
	log  logrus.FieldLogger
	docs map[string]*document
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for diagnostics about absorbed decoding
// failures.
func WithLogger(log logrus.FieldLogger) Option {
	return func(r *Registry) {
		r.log = log
	}
}

// NewRegistry returns an empty registry. By default diagnostics go to the
// logrus standard logger.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		log:  logrus.StandardLogger(),
		docs: make(map[string]*document),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Open parses the package at path and registers it. Opening an already
// registered path is a no-op: the stored report is returned and no archive
// I/O happens.
//
// Failure to open the archive or to read the workbook part fails the call
// and leaves the registry unchanged. Failures local to one shared-string
// entry, sheet member, row, or cell are absorbed: they are counted in the
// returned report, logged, and the rest of the document is stored.
func (r *Registry) Open(path string) (worksheet.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if doc, ok := r.docs[path]; ok {
		return doc.report, nil
	}

	zr, err := opc.Open(path)
	if err != nil {
		return worksheet.Report{}, err
	}
	defer zr.Close()

	var rep worksheet.Report
	shared := worksheet.LoadSharedStrings(&zr.Reader, &rep)

	trees, err := worksheet.ResolveSheets(&zr.Reader, &rep)
	if err != nil {
		return worksheet.Report{}, fmt.Errorf("cellar: opening %s: %w", path, err)
	}

	sheets := make(map[string]worksheet.Sheet, len(trees))
	for name, tree := range trees {
		sheet, err := worksheet.ExtractSheet(tree, &rep)
		if err != nil {
			rep.SheetsSkipped++
			rep.Record(name, "extracting sheet", err)
			continue
		}
		sheets[name] = sheet
	}

	r.logProblems(path, &rep)
	r.docs[path] = &document{shared: shared, sheets: sheets, report: rep}
	r.log.WithField("path", path).Debug("document opened")

	return rep, nil
}

// Close evicts all cached state for path. Closing a path that is not open
// is a no-op.
func (r *Registry) Close(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[path]; ok {
		delete(r.docs, path)
		r.log.WithField("path", path).Debug("document closed")
	}
}

// Sheet returns the named sheet of an open document.
func (r *Registry) Sheet(path, sheetName string) (worksheet.Sheet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.docs[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotOpen, path)
	}
	sheet, ok := doc.sheets[sheetName]
	if !ok {
		return nil, fmt.Errorf("%w: %q in %s", ErrSheetNotFound, sheetName, path)
	}
	return sheet, nil
}

// SharedString returns the shared string at index in an open document.
func (r *Registry) SharedString(path string, index int) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.docs[path]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrDocumentNotOpen, path)
	}
	s, ok := doc.shared[index]
	if !ok {
		return "", fmt.Errorf("%w: index %d in %s", ErrSharedStringNotFound, index, path)
	}
	return s, nil
}

// SheetNames returns the display names of every sheet stored for an open
// document, sorted lexicographically.
func (r *Registry) SheetNames(path string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.docs[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotOpen, path)
	}
	names := make([]string, 0, len(doc.sheets))
	for name := range doc.sheets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// logProblems reports every absorbed failure from one open.
func (r *Registry) logProblems(path string, rep *worksheet.Report) {
	for _, p := range rep.Problems {
		r.log.WithFields(logrus.Fields{
			"path":    path,
			"part":    p.Part,
			"context": p.Context,
		}).Warn(p.Err)
	}
}

// Package cellar opens OOXML spreadsheet packages and exposes their cell
// data through an in-memory model cached per file path.
//
// A package is decoded once, on Open: the shared-strings part becomes an
// index-to-string table, and every sheet the workbook declares becomes a
// map of rows to columns to cells. Queries then run against the cache until
// the path is closed. Slightly malformed files open best-effort: failures
// local to one entry, row, or cell are absorbed and surfaced through a
// [worksheet.Report] rather than failing the whole document.
//
// The package-level functions operate on a shared default [Registry];
// construct independent registries with [NewRegistry].
package cellar

import "github.com/spindleworks/cellar/worksheet"

var defaultRegistry = NewRegistry()

// Open parses the package at path into the default registry. It is
// idempotent: reopening an open path does no archive I/O.
func Open(path string) (worksheet.Report, error) {
	return defaultRegistry.Open(path)
}

// Close evicts path from the default registry.
func Close(path string) {
	defaultRegistry.Close(path)
}

// Sheet returns the named sheet of an open document in the default
// registry.
func Sheet(path, sheetName string) (worksheet.Sheet, error) {
	return defaultRegistry.Sheet(path, sheetName)
}

// SharedString returns the shared string at index in an open document in
// the default registry.
func SharedString(path string, index int) (string, error) {
	return defaultRegistry.SharedString(path, index)
}

// SheetNames returns the sorted sheet names of an open document in the
// default registry.
func SheetNames(path string) ([]string, error) {
	return defaultRegistry.SheetNames(path)
}

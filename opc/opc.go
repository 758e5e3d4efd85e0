// Package opc reads member parts out of an OOXML (Open Packaging
// Conventions) zip container.
package opc

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"path"
)

// Archive-related errors.
var (
	ErrArchiveOpen    = errors.New("opc: cannot open package archive")
	ErrMemberNotFound = errors.New("opc: member not found in archive")
	ErrMemberMetadata = errors.New("opc: invalid member metadata")
)

// Open opens a package archive from a path. The caller owns the returned
// handle and must close it.
func Open(filePath string) (*zip.ReadCloser, error) {
	zr, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrArchiveOpen, filePath, err)
	}
	return zr, nil
}

// ReadMember locates the member with the given name, ignoring any directory
// components in the archive ("sheet1.xml" matches "xl/worksheets/sheet1.xml"),
// and returns its full decompressed contents. The archive handle is not
// closed.
func ReadMember(zr *zip.Reader, name string) ([]byte, error) {
	f := findMember(zr, name)
	if f == nil {
		return nil, fmt.Errorf("%w: %s", ErrMemberNotFound, name)
	}

	if f.Name == "" || f.FileInfo().IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrMemberMetadata, name)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening member %s: %w", name, err)
	}
	defer rc.Close()

	// Read exactly the size the header declares. A short member is a
	// corrupt archive, not a partial success.
	data := make([]byte, f.UncompressedSize64)
	if _, err := io.ReadFull(rc, data); err != nil {
		return nil, fmt.Errorf("reading member %s: %w", name, err)
	}
	return data, nil
}

// findMember returns the first member whose base name equals name, or the
// member with an exact path match if one exists.
func findMember(zr *zip.Reader, name string) *zip.File {
	for _, f := range zr.File {
		if f.Name == name {
			return f
		}
	}
	for _, f := range zr.File {
		if path.Base(f.Name) == name {
			return f
		}
	}
	return nil
}

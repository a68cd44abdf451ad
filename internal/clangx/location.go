package clangx

import "github.com/go-clang/clang-v14/clang"

// File is a borrowed handle to one file known to a translation unit. Valid
// only while that translation unit is alive.
type File struct {
	f clang.File
}

// Name returns the file's path as libclang spells it.
func (f File) Name() string {
	return f.f.Name()
}

// Location is a decoded (file, line, column) triple plus the opaque
// libclang location it was built from.
type Location struct {
	loc clang.SourceLocation
}

// FileLocation decodes the location to its file/line/column, matching
// clang_getSpellingLocation.
func (l Location) FileLocation() (File, int, int) {
	file, line, col, _ := l.loc.FileLocation()
	return File{f: file}, int(line), int(col)
}

// IsNull reports whether this location decodes to line 0, column 0, which
// is how libclang's sentinel "no location" value decodes. The file is not
// consulted.
func (l Location) IsNull() bool {
	_, line, col := l.FileLocation()
	return line == 0 && col == 0
}

// Package locate is the symbol-location engine: cursor normalization, the
// kind-dispatched resolution strategies, the cross-TU USR scanner, the
// nearest-cursor fallback, and the virtual-method override scanner.
package locate

import "github.com/daedaleanai/cxls/internal/clangx"

// Result is a located symbol: a description, the file/line/column of its
// cursor, and whether that cursor is itself a definition. The zero Result
// (empty file, line 0, column 0) is the "not found" signal the engine and
// dispatcher both recognize.
type Result struct {
	Desc       string
	File       string
	Line       int
	Column     int
	Definition bool
}

// IsZero reports whether r is the "not found" sentinel.
func (r Result) IsZero() bool {
	return r.File == "" && r.Line == 0 && r.Column == 0
}

// fromCursor builds a Result from a cursor's own location, the shape every
// strategy in this package emits.
func fromCursor(c clangx.Cursor) Result {
	loc := c.Location()
	if loc.IsNull() {
		return Result{}
	}
	file, line, col := loc.FileLocation()
	return Result{
		Desc:       c.KindName() + " ! " + c.Spelling(),
		File:       file.Name(),
		Line:       line,
		Column:     col,
		Definition: c.IsDefinition(),
	}
}

// fromLocation builds a Result anchored at loc but described by cursor desc
// — used by the inclusion-directive strategy, which reports the included
// file's (1,1) location rather than the directive cursor's own location.
func fromLocation(desc clangx.Cursor, loc clangx.Location) Result {
	if loc.IsNull() {
		return Result{}
	}
	file, line, col := loc.FileLocation()
	return Result{
		Desc:       desc.KindName() + " ! " + desc.Spelling(),
		File:       file.Name(),
		Line:       line,
		Column:     col,
		Definition: desc.IsDefinition(),
	}
}

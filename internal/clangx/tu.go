package clangx

import (
	"github.com/go-clang/clang-v14/clang"
	"github.com/pkg/errors"
)

// TranslationUnit is the parsed representation of one source file plus its
// transitive includes. Owned by exactly one slot of one Project.
type TranslationUnit struct {
	tu clang.TranslationUnit
}

// Dispose releases the translation unit. After this call the receiver must
// not be used again.
func (t *TranslationUnit) Dispose() {
	t.tu.Dispose()
}

// Reparse reparses in place against the given overlay set. On failure the
// translation unit is left unusable; the caller must Dispose it and rebuild
// from scratch on the next query, per the TU lifecycle in the core spec.
func (t *TranslationUnit) Reparse(unsaved []UnsavedFile) error {
	code := t.tu.ReparseTranslationUnit(toClangUnsaved(unsaved), t.tu.DefaultReparseOptions())
	if code != clang.Error_Success {
		return errors.Errorf("reparsing translation unit: %s", code.Spelling())
	}
	return nil
}

// RootCursor returns the translation unit's root cursor, the starting point
// for every whole-TU traversal (USR scan, override scan, namespace scan).
func (t *TranslationUnit) RootCursor() Cursor {
	return Cursor{c: t.tu.TranslationUnitCursor()}
}

// File resolves path to the libclang file handle used by this translation
// unit. An unknown path yields a null file handle; Location and CursorAt
// propagate that nullness down to a null Cursor rather than needing a
// separate not-found signal here.
func (t *TranslationUnit) File(path string) File {
	return File{f: t.tu.File(path)}
}

// CursorAt maps a (file, line, column) triple to the most specific cursor
// describing the entity there, or the null Cursor if none exists.
func (t *TranslationUnit) CursorAt(loc Location) Cursor {
	return Cursor{c: t.tu.Cursor(loc.loc)}
}

// Location builds a source location for a 1-based line/column in the given
// file, valid only for cursor lookups against this translation unit.
func (t *TranslationUnit) Location(file File, line, column int) Location {
	return Location{loc: t.tu.Location(file.f, uint32(line), uint32(column))}
}

// Diagnostics returns the formatted diagnostic messages for the current
// parse, in libclang's own reporting order.
func (t *TranslationUnit) Diagnostics() []string {
	diags := t.tu.Diagnostics()
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.Spelling()
	}
	return out
}

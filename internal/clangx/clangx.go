// Package clangx is the parser facade: the thin capability boundary this
// repository places over libclang. Every other package talks to the parser
// only through the types declared here, never through
// github.com/go-clang/clang-v14/clang directly — that keeps the
// symbol-location engine ignorant of the C ABI underneath it.
package clangx

import (
	"github.com/go-clang/clang-v14/clang"
	"github.com/pkg/errors"
)

// Index owns a set of translation units produced by one libclang index.
// A Project (see internal/project) owns exactly one Index for its lifetime.
type Index struct {
	idx clang.Index
}

// NewIndex creates a parser index with declarations from precompiled
// headers included and diagnostics suppressed (the server formats its own).
func NewIndex() *Index {
	return &Index{idx: clang.NewIndex(0, 0)}
}

// Dispose releases the underlying libclang index. Must be called exactly
// once, after every TranslationUnit built from it has itself been disposed.
func (ix *Index) Dispose() {
	ix.idx.Dispose()
}

// UnsavedFile is an in-memory buffer substituted for a path's on-disk
// contents during parse/reparse.
type UnsavedFile struct {
	Filename string
	Contents []byte
}

func toClangUnsaved(files []UnsavedFile) []clang.UnsavedFile {
	if len(files) == 0 {
		return nil
	}
	out := make([]clang.UnsavedFile, len(files))
	for i, f := range files {
		out[i] = clang.NewUnsavedFile(f.Filename, string(f.Contents))
	}
	return out
}

// ParseTranslationUnit parses path with the given argument vector and
// overlays, using the options every TU in this repository is built with:
// a detailed preprocessing record (needed to resolve InclusionDirective and
// MacroDefinition/MacroExpansion cursors) plus a precompiled preamble (to
// make the first reparse cheap).
func (ix *Index) ParseTranslationUnit(path string, args []string, unsaved []UnsavedFile) (*TranslationUnit, error) {
	var tu clang.TranslationUnit
	opts := uint32(clang.TranslationUnit_DetailedPreprocessingRecord | clang.TranslationUnit_PrecompiledPreamble)
	code := ix.idx.ParseTranslationUnit2(path, args, toClangUnsaved(unsaved), opts, &tu)
	if code != clang.Error_Success {
		return nil, errors.Errorf("parsing translation unit %q: %s", path, code.Spelling())
	}
	return &TranslationUnit{tu: tu}, nil
}

//go:build clang

package locate

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/daedaleanai/cxls/internal/clangx"
	"github.com/stretchr/testify/assert"
)

// fixtureDir locates testdata/locate relative to this file, independent of
// the working directory `go test` is invoked from.
func fixtureDir(t *testing.T) string {
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("runtime.Caller failed")
	}
	dir, err := filepath.Abs(filepath.Join(filepath.Dir(thisFile), "..", "..", "testdata", "locate"))
	assert.NoError(t, err)
	return dir
}

// tuSet is a bare TUSet of real translation units, for exercising the
// cross-TU scanners against more than one file without pulling in
// internal/project.
type tuSet []*clangx.TranslationUnit

func (s tuSet) Len() int { return len(s) }

func (s tuSet) RootCursor(slot int) (clangx.Cursor, bool) {
	if slot < 0 || slot >= len(s) || s[slot] == nil {
		return clangx.Cursor{}, false
	}
	return s[slot].RootCursor(), true
}

func buildFixtureTUs(t *testing.T) (dir string, idx *clangx.Index, a, b *clangx.TranslationUnit) {
	dir = fixtureDir(t)
	idx = clangx.NewIndex()
	t.Cleanup(idx.Dispose)

	args := []string{"-std=c++17"}

	var err error
	a, err = idx.ParseTranslationUnit(filepath.Join(dir, "a.cpp"), args, nil)
	if !assert.NoError(t, err) {
		t.FailNow()
	}
	t.Cleanup(a.Dispose)

	b, err = idx.ParseTranslationUnit(filepath.Join(dir, "b.cpp"), args, nil)
	if !assert.NoError(t, err) {
		t.FailNow()
	}
	t.Cleanup(b.Dispose)

	return dir, idx, a, b
}

func TestLocate_IncludeDirective_ResolvesToHeaderStart(t *testing.T) {
	dir, _, a, _ := buildFixtureTUs(t)
	aPath := filepath.Join(dir, "a.cpp")

	results, unhandled := Locate(a, tuSet{a}, aPath, 1, 12)
	assert.Empty(t, unhandled)
	if assert.Len(t, results, 1) {
		assert.Equal(t, "b.h", filepath.Base(results[0].File))
		assert.Equal(t, 1, results[0].Line)
		assert.Equal(t, 1, results[0].Column)
	}
}

func TestLocate_NearestCursorFallback_InsideComment(t *testing.T) {
	dir, _, a, _ := buildFixtureTUs(t)
	aPath := filepath.Join(dir, "a.cpp")

	// Row 5 is a line comment; no cursor exists there, so the engine falls
	// back to the last top-level declaration at or before it.
	results, unhandled := Locate(a, tuSet{a}, aPath, 5, 10)
	assert.Empty(t, unhandled)
	if assert.Len(t, results, 1) {
		assert.Contains(t, results[0].Desc, "main")
		assert.Equal(t, 3, results[0].Line)
	}
}

func TestLocate_CallExpr_ResolvesAcrossTranslationUnits(t *testing.T) {
	dir, _, a, b := buildFixtureTUs(t)
	aPath := filepath.Join(dir, "a.cpp")

	all := tuSet{a, b}
	results, unhandled := Locate(a, all, aPath, 4, 7)
	assert.Empty(t, unhandled)
	assert.NotEmpty(t, results)
	assert.LessOrEqual(t, len(results), maxUSRMatches)
	for _, r := range results {
		assert.Contains(t, r.Desc, "helperFunction")
	}
}

func TestLocate_EnumDecl_EmitsDeclarationThenEnumerators(t *testing.T) {
	dir, _, a, _ := buildFixtureTUs(t)
	bHeader := filepath.Join(dir, "b.h")

	results, unhandled := Locate(a, tuSet{a}, bHeader, 19, 7)
	assert.Empty(t, unhandled)
	if assert.Len(t, results, 4) {
		assert.Contains(t, results[0].Desc, "Color")
		assert.Contains(t, results[1].Desc, "Red")
		assert.Contains(t, results[2].Desc, "Green")
		assert.Contains(t, results[3].Desc, "Blue")
	}
}

func TestLocate_MacroDefinition_EmitsItself(t *testing.T) {
	dir, _, a, _ := buildFixtureTUs(t)
	bHeader := filepath.Join(dir, "b.h")

	results, unhandled := Locate(a, tuSet{a}, bHeader, 25, 10)
	assert.Empty(t, unhandled)
	if assert.Len(t, results, 1) {
		assert.Contains(t, results[0].Desc, "SAMPLE_LIMIT")
	}
}

func TestLocate_Namespace_EmitsEveryNamespaceBlockInEveryTU(t *testing.T) {
	dir, _, a, b := buildFixtureTUs(t)
	bHeader := filepath.Join(dir, "b.h")

	// b.h's sample_ns is reached from both TUs; b.cpp reopens sample_ns on
	// line 6, which only b.cpp's TU sees.
	all := tuSet{a, b}
	results, unhandled := Locate(a, all, bHeader, 5, 12)
	assert.Empty(t, unhandled)
	assert.Len(t, results, 3)
	inHeader := 0
	for _, r := range results {
		assert.Contains(t, r.Desc, "sample_ns")
		if filepath.Base(r.File) == "b.h" {
			assert.Equal(t, 5, r.Line)
			inHeader++
		} else {
			assert.Equal(t, "b.cpp", filepath.Base(r.File))
			assert.Equal(t, 6, r.Line)
		}
	}
	assert.Equal(t, 2, inHeader)
}

func TestLocate_CXXMethod_OverrideScanMatchesBySpelling(t *testing.T) {
	dir, _, a, b := buildFixtureTUs(t)
	bHeader := filepath.Join(dir, "b.h")

	all := tuSet{a, b}
	results, unhandled := Locate(a, all, bHeader, 14, 10)
	assert.Empty(t, unhandled)
	assert.GreaterOrEqual(t, len(results), 2)
	assert.LessOrEqual(t, len(results), maxUSRMatches)
	for _, r := range results {
		assert.Contains(t, r.Desc, "run")
	}
}

func TestLocate_UnknownKind_ReturnsKindNameNotResults(t *testing.T) {
	dir, _, a, _ := buildFixtureTUs(t)
	aPath := filepath.Join(dir, "a.cpp")

	// Row 6, "    return 0;", lands on the return statement, a cursor kind
	// the dispatch table has no strategy for.
	results, unhandled := Locate(a, tuSet{a}, aPath, 6, 5)
	assert.Empty(t, results)
	assert.NotEmpty(t, unhandled)
}

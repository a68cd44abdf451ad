//go:build clang

package project

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func fixtureDir(t *testing.T) string {
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("runtime.Caller failed")
	}
	dir, err := filepath.Abs(filepath.Join(filepath.Dir(thisFile), "..", "..", "testdata", "locate"))
	assert.NoError(t, err)
	return dir
}

func TestProject_AddSource_BuildsRealTranslationUnit(t *testing.T) {
	var r Registry
	p, err := r.New()
	assert.NoError(t, err)
	t.Cleanup(p.Close)

	p.Options([]string{"-std=c++17"})

	dir := fixtureDir(t)
	aPath := filepath.Join(dir, "a.cpp")

	slot, err := p.AddSource(aPath)
	assert.NoError(t, err)
	assert.Equal(t, 0, slot)
	assert.Equal(t, 0, p.FindSource(aPath))

	root, ok := p.RootCursor(slot)
	assert.True(t, ok)
	assert.False(t, root.IsNull())
}

func TestProject_Locate_AddsUnknownPathAsNewSource(t *testing.T) {
	var r Registry
	p, err := r.New()
	assert.NoError(t, err)
	t.Cleanup(p.Close)

	p.Options([]string{"-std=c++17"})

	dir := fixtureDir(t)
	aPath := filepath.Join(dir, "a.cpp")
	bHeader := filepath.Join(dir, "b.h")

	_, err = p.AddSource(aPath)
	assert.NoError(t, err)

	// b.h was never added directly; Locate must add it as a standalone
	// source before resolving against it.
	assert.Equal(t, -1, p.FindSource(bHeader))
	results, unhandled, err := p.Locate(bHeader, 19, 7)
	assert.NoError(t, err)
	assert.Empty(t, unhandled)
	assert.NotEmpty(t, results)
	assert.GreaterOrEqual(t, p.FindSource(bHeader), 0)
}

func TestProject_EnsureActiveTU_ReparsesBuiltSlot(t *testing.T) {
	var r Registry
	p, err := r.New()
	assert.NoError(t, err)
	t.Cleanup(p.Close)

	p.Options([]string{"-std=c++17"})

	dir := fixtureDir(t)
	aPath := filepath.Join(dir, "a.cpp")

	slot, err := p.AddSource(aPath)
	assert.NoError(t, err)
	p.SetActive(slot)

	tu1, err := p.EnsureActiveTU()
	assert.NoError(t, err)
	assert.NotNil(t, tu1)

	// Second call reparses the existing TU in place rather than rebuilding.
	tu2, err := p.EnsureActiveTU()
	assert.NoError(t, err)
	assert.Same(t, tu1, tu2)
}

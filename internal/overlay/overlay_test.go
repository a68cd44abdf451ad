package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_LastWriteWins(t *testing.T) {
	var s Store
	s.Put("/t/a.cpp", []byte("first"))
	s.Put("/t/a.cpp", []byte("second"))
	s.Put("/t/a.cpp", []byte("third"))

	snap := s.Snapshot()
	assert.Len(t, snap, 1)
	assert.Equal(t, "/t/a.cpp", snap[0].Filename)
	assert.Equal(t, []byte("third"), snap[0].Contents)
}

func TestStore_MultipleFilesIndependent(t *testing.T) {
	var s Store
	s.Put("/t/a.cpp", []byte("a"))
	s.Put("/t/b.cpp", []byte("b"))

	snap := s.Snapshot()
	byName := make(map[string]string)
	for _, f := range snap {
		byName[f.Filename] = string(f.Contents)
	}
	assert.Equal(t, "a", byName["/t/a.cpp"])
	assert.Equal(t, "b", byName["/t/b.cpp"])
}

func TestNewBuffer_GrowsToAtLeastTwiceRequested(t *testing.T) {
	SetInitialBufferCapacity(4096)

	buf := NewBuffer(10000)
	assert.Equal(t, 32768, cap(buf)) // 4096 doubled three times covers 2x10000
	assert.GreaterOrEqual(t, cap(buf), 2*10000)
}

func TestStore_EmptySnapshotIsNil(t *testing.T) {
	var s Store
	assert.Nil(t, s.Snapshot())
}

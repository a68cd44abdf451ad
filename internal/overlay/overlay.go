// Package overlay is the unsaved-buffer store: per project, a mapping from
// absolute file path to an in-memory buffer substituted for the on-disk
// file whenever that project parses or reparses.
package overlay

import "github.com/daedaleanai/cxls/internal/clangx"

var initialBufferCapacity = 4096

// SetInitialBufferCapacity overrides the starting allocation size for
// NewBuffer, configurable at startup (see internal/config).
func SetInitialBufferCapacity(n int) {
	initialBufferCapacity = n
}

// Store is a path-keyed set of in-memory buffers. The zero value is ready
// to use. Not safe for concurrent use; the server is single-threaded per
// the core concurrency model.
type Store struct {
	files map[string][]byte
}

// Put upserts the buffer for path, replacing any previous contents
// (last-write-wins).
func (s *Store) Put(path string, contents []byte) {
	if s.files == nil {
		s.files = make(map[string][]byte)
	}
	buf := make([]byte, len(contents))
	copy(buf, contents)
	s.files[path] = buf
}

// NewBuffer allocates a buffer sized to hold n bytes, growing geometrically
// from the store's initial capacity the way a freshly malloc'd source
// buffer would, rounding up to at least 2x the requested length when n
// exceeds the default.
func NewBuffer(n int) []byte {
	size := initialBufferCapacity
	if n > size {
		for size < 2*n {
			size *= 2
		}
	}
	return make([]byte, 0, size)
}

// Snapshot returns the overlay set as the facade's unsaved-file list, in
// map iteration order; order has no effect on parse semantics.
func (s *Store) Snapshot() []clangx.UnsavedFile {
	if len(s.files) == 0 {
		return nil
	}
	out := make([]clangx.UnsavedFile, 0, len(s.files))
	for path, buf := range s.files {
		out = append(out, clangx.UnsavedFile{Filename: path, Contents: buf})
	}
	return out
}

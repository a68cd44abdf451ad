// Package session is the single-file completion session: one source file,
// one translation unit, reparsed in place as the editor edits, driving
// code completion and diagnostics for that one file. Grounded on the
// original completion server's session object, which predates — and is
// structurally simpler than — the multi-file project registry in
// internal/project.
package session

import (
	"github.com/daedaleanai/cxls/internal/clangx"
	"github.com/daedaleanai/cxls/internal/locate"
	"github.com/daedaleanai/cxls/internal/overlay"
	"github.com/pkg/errors"
)

// Session owns exactly one translation unit for exactly one source file.
type Session struct {
	index    *clangx.Index
	tu       *clangx.TranslationUnit
	filename string
	args     []string
	buffer   []byte
}

// New parses filename with args and an initial source buffer, building the
// translation unit a completion session keeps alive for its lifetime.
func New(filename string, args []string, buffer []byte) (*Session, error) {
	idx := clangx.NewIndex()
	s := &Session{index: idx, filename: filename, args: args, buffer: buffer}

	tu, err := idx.ParseTranslationUnit(filename, args, s.unsaved())
	if err != nil {
		idx.Dispose()
		return nil, errors.Wrap(err, "starting completion session")
	}
	s.tu = tu
	return s, nil
}

func (s *Session) unsaved() []clangx.UnsavedFile {
	if s.buffer == nil {
		return nil
	}
	return []clangx.UnsavedFile{{Filename: s.filename, Contents: s.buffer}}
}

// SetSource replaces the in-memory source buffer the next reparse will use.
// The backing buffer only grows, never shrinks: mirrors
// completion_readSourcefile's realloc-on-overflow policy, which reallocates
// session->src_buffer only when the incoming source_length exceeds its
// current buffer_capacity, rather than reallocating on every update.
func (s *Session) SetSource(buffer []byte) {
	if s.buffer == nil || cap(s.buffer) < len(buffer) {
		s.buffer = overlay.NewBuffer(len(buffer))
	}
	s.buffer = s.buffer[:len(buffer)]
	copy(s.buffer, buffer)
}

// SetArgs replaces the argument vector and rebuilds the translation unit
// from scratch against it: libclang's reparse call takes no argument
// vector of its own, so a command-line change can only take effect by
// disposing the old translation unit and parsing a fresh one, exactly as
// completion_doCmdlineArgs does in the original server before priming the
// preamble with one more reparse.
func (s *Session) SetArgs(args []string) error {
	s.args = args

	s.tu.Dispose()
	tu, err := s.index.ParseTranslationUnit(s.filename, s.args, s.unsaved())
	if err != nil {
		return errors.Wrap(err, "rebuilding translation unit for new command-line arguments")
	}
	s.tu = tu
	return s.Reparse()
}

// Reparse reparses the session's sole translation unit against its current
// buffer. On failure the session's TU is left in place (unlike a project's
// TU lifecycle, a single-file session has nowhere else to fall back to):
// the caller reports the failure and the session keeps serving stale state
// until the next successful reparse.
func (s *Session) Reparse() error {
	return s.tu.Reparse(s.unsaved())
}

// Diagnostics returns the current parse's diagnostic messages.
func (s *Session) Diagnostics() []string {
	return s.tu.Diagnostics()
}

// CompleteAt returns the completion candidates at (line, col), in the
// parser's own sorted order (alphabetical, not by priority).
func (s *Session) CompleteAt(line, col int) []clangx.CompletionItem {
	return s.tu.CodeCompleteAt(s.filename, line, col, s.unsaved())
}

// Locate resolves the symbol at (line, col) within this session's own file,
// treating it as a single-TU project for the engine's cross-TU scanners.
func (s *Session) Locate(line, col int) ([]locate.Result, string) {
	return locate.Locate(s.tu, s, s.filename, line, col)
}

// Len and RootCursor satisfy locate.TUSet with this session's single slot,
// so the engine's cross-TU scanners degrade correctly to "scan just this
// file" for a session that owns only one translation unit.
func (s *Session) Len() int { return 1 }

func (s *Session) RootCursor(slot int) (clangx.Cursor, bool) {
	if slot != 0 {
		return clangx.Cursor{}, false
	}
	return s.tu.RootCursor(), true
}

// Close tears down the session's translation unit and index. Part of the
// ordered SHUTDOWN teardown: dispose active TU, dispose session index.
func (s *Session) Close() {
	s.tu.Dispose()
	s.index.Dispose()
}

package clangx

import "github.com/go-clang/clang-v14/clang"

// completeAtOptions mirrors the original session's CXCodeComplete_IncludeMacros
// default: macro completions are useful enough in C/C++ editing to always include.
const completeAtOptions = uint32(clang.CodeComplete_IncludeMacros)

// CompletionItem is one ranked completion candidate: its typed-text chunk
// (what gets inserted) and libclang's own priority for it, lower is better.
type CompletionItem struct {
	Text     string
	Priority uint32
}

// CodeCompleteAt asks the parser for completions at (line, col) against
// the given overlay, and returns them in the order libclang's
// clang_sortCodeCompletionResults leaves them (case-insensitive alphabetical,
// not by priority).
func (t *TranslationUnit) CodeCompleteAt(path string, line, col int, unsaved []UnsavedFile) []CompletionItem {
	res := t.tu.CodeCompleteAt(path, uint32(line), uint32(col), toClangUnsaved(unsaved), completeAtOptions)
	if res == nil {
		return nil
	}
	defer res.Dispose()

	res.Sort()

	n := int(res.NumResults())
	out := make([]CompletionItem, 0, n)
	for i := 0; i < n; i++ {
		r := res.Result(i)
		cs := r.CompletionString()
		text := completionTypedText(cs)
		if text == "" {
			continue
		}
		out = append(out, CompletionItem{Text: text, Priority: cs.Priority()})
	}
	return out
}

// completionTypedText extracts the chunk of a completion string that would
// actually be inserted into the buffer (CXCompletionChunk_TypedText).
func completionTypedText(cs clang.CompletionString) string {
	n := int(cs.NumChunks())
	for i := 0; i < n; i++ {
		if cs.ChunkKind(uint32(i)) == clang.CompletionChunk_TypedText {
			return cs.ChunkText(uint32(i))
		}
	}
	return ""
}

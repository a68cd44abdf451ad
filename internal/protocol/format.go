package protocol

import (
	"bufio"
	"fmt"

	"github.com/daedaleanai/cxls/internal/locate"
)

// sentinel terminates every response: a line containing only "$" followed
// by a flush, the marker the editor polls the pipe for.
const sentinel = "$\n"

func endResponse(w *bufio.Writer) error {
	if _, err := w.WriteString(sentinel); err != nil {
		return err
	}
	return w.Flush()
}

// writePrjLocate writes one PRJ_LOCATE block in the fixed key:value order
// the transport contract requires.
func writePrjLocate(w *bufio.Writer, r locate.Result) {
	fmt.Fprintf(w, "PRJ_LOCATE:\ndesc:%s\nfile:%s\nline:%d\ncolumn:%d\ndefinition:%t\n",
		r.Desc, r.File, r.Line, r.Column, r.Definition)
}

func writePrjLocateAll(w *bufio.Writer, results []locate.Result) {
	for _, r := range results {
		writePrjLocate(w, r)
	}
}

// writeLocate writes the single-file session's LOCATE block, a narrower
// (desc, file, line, column) shape without the definition flag — the
// engine's ancestor on a single-file session, kept distinct from the
// multi-file PRJ_LOCATE framing.
func writeLocate(w *bufio.Writer, r locate.Result) {
	fmt.Fprintf(w, "LOCATE:\ndesc:%s\nfile:%s\nline:%d\ncolumn:%d\n", r.Desc, r.File, r.Line, r.Column)
}

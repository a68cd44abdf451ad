package protocol

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/daedaleanai/cxls/internal/locate"
	"github.com/stretchr/testify/assert"
)

func TestWritePrjLocate(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	writePrjLocate(w, locate.Result{
		Desc:       "FunctionDecl ! foo",
		File:       "/t/a.cpp",
		Line:       3,
		Column:     7,
		Definition: true,
	})
	w.Flush()

	want := "PRJ_LOCATE:\ndesc:FunctionDecl ! foo\nfile:/t/a.cpp\nline:3\ncolumn:7\ndefinition:true\n"
	assert.Equal(t, want, buf.String())
}

func TestEndResponse(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	assert.NoError(t, endResponse(w))
	assert.Equal(t, "$\n", buf.String())
}

package protocol

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReader_Line(t *testing.T) {
	r := newReader(strings.NewReader("NEW\nsecond\n"))
	l, err := r.line()
	assert.NoError(t, err)
	assert.Equal(t, "NEW", l)
	l, err = r.line()
	assert.NoError(t, err)
	assert.Equal(t, "second", l)
}

func TestReader_KV(t *testing.T) {
	r := newReader(strings.NewReader("file:/t/a.cpp\n"))
	k, v, err := r.kv()
	assert.NoError(t, err)
	assert.Equal(t, "file", k)
	assert.Equal(t, "/t/a.cpp", v)
}

func TestReader_KVInt(t *testing.T) {
	r := newReader(strings.NewReader("row:42\n"))
	k, v, err := r.kvInt()
	assert.NoError(t, err)
	assert.Equal(t, "row", k)
	assert.Equal(t, 42, v)
}

func TestReader_KVMalformed(t *testing.T) {
	r := newReader(strings.NewReader("not-a-kv-line\n"))
	_, _, err := r.kv()
	assert.Error(t, err)
}

func TestReader_NBytes(t *testing.T) {
	r := newReader(strings.NewReader("hello world"))
	b, err := r.nBytes(5)
	assert.NoError(t, err)
	assert.Equal(t, "hello", string(b))
}

func TestFields(t *testing.T) {
	assert.Equal(t, []string{"-I/inc", "-DFOO"}, fields("-I/inc -DFOO"))
}

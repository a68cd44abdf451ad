package protocol

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// reader wraps the request stream with the small set of line-oriented
// reads every verb header needs: a whole line, a "key:value" pair with
// the value expected to be an int, a "key:value" pair with a string
// value, and a fixed-length raw byte read for source payloads.
type reader struct {
	br *bufio.Reader
}

func newReader(r io.Reader) *reader {
	return &reader{br: bufio.NewReaderSize(r, 64*1024)}
}

// line reads one line, trimming the trailing newline.
func (r *reader) line() (string, error) {
	s, err := r.br.ReadString('\n')
	if err != nil && s == "" {
		return "", err
	}
	return strings.TrimRight(s, "\r\n"), nil
}

// kv reads a line shaped "key:value" and returns its key and value. It does not verify
// that key matches an expected name; malformed headers are a protocol
// error the caller reports, not a panic.
func (r *reader) kv() (key, value string, err error) {
	l, err := r.line()
	if err != nil {
		return "", "", err
	}
	idx := strings.IndexByte(l, ':')
	if idx < 0 {
		return "", "", errors.Errorf("malformed header line %q", l)
	}
	return l[:idx], l[idx+1:], nil
}

// kvInt reads a "key:<int>" line and parses the value.
func (r *reader) kvInt() (key string, value int, err error) {
	k, v, err := r.kv()
	if err != nil {
		return "", 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return "", 0, errors.Wrapf(err, "parsing integer field %q", k)
	}
	return k, n, nil
}

// nBytes reads exactly n raw bytes, as FILE_SRC/SOURCEFILE payloads are
// framed by an explicit preceding length rather than a delimiter.
func (r *reader) nBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.br, buf); err != nil {
		return nil, errors.Wrap(err, "reading source payload")
	}
	return buf, nil
}

// fields splits a whitespace-delimited line into tokens, the framing
// OPTIONS and CMDLINEARGS both use for argument vectors.
func fields(line string) []string {
	return strings.Fields(line)
}

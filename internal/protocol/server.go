// Package protocol is the request dispatcher: newline-framed ASCII verbs
// in on a pipe, synchronous handling against the session and project
// registry, a response terminated by a bare "$" line and a flush, then
// back to reading the next verb. One request is ever in flight.
package protocol

import (
	"bufio"
	"fmt"
	"io"

	"github.com/daedaleanai/cxls/internal/config"
	"github.com/daedaleanai/cxls/internal/locate"
	"github.com/daedaleanai/cxls/internal/overlay"
	"github.com/daedaleanai/cxls/internal/project"
	"github.com/daedaleanai/cxls/internal/session"
	"github.com/pkg/errors"
)

// Server is the whole request/response loop: the single-file completion
// session every non-PROJECT verb operates on, plus the project registry
// PROJECT's subcommands operate on.
type Server struct {
	sess *session.Session
	reg  project.Registry
}

// NewServer starts the completion session against filename with the given
// argument vector, mirroring the original server's "launch and preparse"
// startup — an editor attaches to an already-live session for its first
// buffer before ever sending PROJECT NEW. cfg's match cap and initial buffer
// capacity are applied process-wide before the session is built; its
// project limit is applied to this server's registry afterwards.
func NewServer(filename string, args []string, cfg config.Config) (*Server, error) {
	locate.SetMaxMatches(cfg.MaxUSRMatches)
	overlay.SetInitialBufferCapacity(cfg.InitialBufferCap)

	sess, err := session.New(filename, args, nil)
	if err != nil {
		return nil, err
	}
	s := &Server{sess: sess}
	s.reg.SetCapacity(cfg.MaxProjects)
	return s, nil
}

// errShutdown unwinds the Run loop cleanly on a SHUTDOWN request.
var errShutdown = fmt.Errorf("shutdown requested")

// Run reads verbs from in and writes responses to out until SHUTDOWN or
// the input stream ends. It returns nil on an orderly SHUTDOWN.
func (s *Server) Run(in io.Reader, out io.Writer) error {
	r := newReader(in)
	w := bufio.NewWriter(out)

	for {
		verb, err := r.line()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if verb == "" {
			continue
		}

		if err := s.dispatch(verb, r, w); err != nil {
			if err == errShutdown {
				return nil
			}
			if cause := errors.Cause(err); cause == io.EOF || cause == io.ErrUnexpectedEOF {
				return err
			}
			// A malformed request is reported on the reply channel and
			// terminated like any other response; the loop carries on.
			fmt.Fprintf(w, "%s\n", err)
			if err := endResponse(w); err != nil {
				return err
			}
		}
	}
}

func (s *Server) dispatch(verb string, r *reader, w *bufio.Writer) error {
	switch verb {
	case "COMPLETION":
		return s.doCompletion(r, w)
	case "REPARSE":
		return s.doReparse(r, w)
	case "SOURCEFILE":
		return s.doSourcefile(r, w)
	case "CMDLINEARGS":
		return s.doCmdlineArgs(r, w)
	case "FILECHANGED":
		return s.doFileChanged(r, w)
	case "SYNTAXCHECK":
		return s.doSyntaxCheck(r, w)
	case "LOCATE":
		return s.doLocate(r, w)
	case "PROJECT":
		return handleProject(r, w, &s.reg)
	case "SHUTDOWN":
		s.reg.Close()
		s.sess.Close()
		return errShutdown
	default:
		fmt.Fprintf(w, "Unknown request verb: %s\n", verb)
		return endResponse(w)
	}
}

func readSourcePayload(r *reader) ([]byte, error) {
	_, n, err := r.kvInt()
	if err != nil {
		return nil, err
	}
	return r.nBytes(n)
}

func (s *Server) doCompletion(r *reader, w *bufio.Writer) error {
	_, row, err := r.kvInt()
	if err != nil {
		return err
	}
	_, col, err := r.kvInt()
	if err != nil {
		return err
	}
	prefix, err := r.line() // "prefix:<text>", unused for filtering: libclang already ranks by context
	if err != nil {
		return err
	}
	_ = prefix

	buf, err := readSourcePayload(r)
	if err != nil {
		return err
	}
	s.sess.SetSource(buf)

	for _, item := range s.sess.CompleteAt(row, col) {
		fmt.Fprintf(w, "%s\n", item.Text)
	}
	fmt.Fprintln(w)
	return endResponse(w)
}

func (s *Server) doReparse(_ *reader, w *bufio.Writer) error {
	if err := s.sess.Reparse(); err != nil {
		fmt.Fprintf(w, "%s\n", err)
	}
	return endResponse(w)
}

func (s *Server) doSourcefile(r *reader, w *bufio.Writer) error {
	buf, err := readSourcePayload(r)
	if err != nil {
		return err
	}
	s.sess.SetSource(buf)
	return endResponse(w)
}

func (s *Server) doCmdlineArgs(r *reader, w *bufio.Writer) error {
	_, n, err := r.kvInt()
	if err != nil {
		return err
	}
	argLine, err := r.line()
	if err != nil {
		return err
	}
	args := fields(argLine)
	if len(args) > n {
		args = args[:n]
	}
	if err := s.sess.SetArgs(args); err != nil {
		fmt.Fprintf(w, "%s\n", err)
	}
	return endResponse(w)
}

func (s *Server) doFileChanged(r *reader, w *bufio.Writer) error {
	_, filename, err := r.kv()
	if err != nil {
		return err
	}
	_, n, err := r.kvInt()
	if err != nil {
		return err
	}
	argLine, err := r.line()
	if err != nil {
		return err
	}
	args := fields(argLine)
	if len(args) > n {
		args = args[:n]
	}

	s.sess.Close()
	newSess, err := session.New(filename, args, nil)
	if err != nil {
		fmt.Fprintf(w, "%s\n", err)
		return endResponse(w)
	}
	s.sess = newSess
	return endResponse(w)
}

func (s *Server) doSyntaxCheck(r *reader, w *bufio.Writer) error {
	buf, err := readSourcePayload(r)
	if err != nil {
		return err
	}
	s.sess.SetSource(buf)
	if err := s.sess.Reparse(); err != nil {
		fmt.Fprintf(w, "%s\n", err)
		return endResponse(w)
	}
	for _, d := range s.sess.Diagnostics() {
		fmt.Fprintf(w, "%s\n", d)
	}
	return endResponse(w)
}

func (s *Server) doLocate(r *reader, w *bufio.Writer) error {
	_, row, err := r.kvInt()
	if err != nil {
		return err
	}
	_, col, err := r.kvInt()
	if err != nil {
		return err
	}
	prefix, err := r.line()
	if err != nil {
		return err
	}
	_ = prefix

	buf, err := readSourcePayload(r)
	if err != nil {
		return err
	}
	s.sess.SetSource(buf)
	if err := s.sess.Reparse(); err != nil {
		fmt.Fprintf(w, "%s\n", err)
		return endResponse(w)
	}

	results, _ := s.sess.Locate(row, col)
	if len(results) > 0 {
		writeLocate(w, results[0])
	}
	return endResponse(w)
}

package protocol

import (
	"bufio"
	"fmt"

	"github.com/daedaleanai/cxls/internal/project"
	"github.com/pkg/errors"
)

// handleProject reads the PROJECT subcommand header and dispatches to the
// project registry, the multi-file half of the core engine.
func handleProject(r *reader, w *bufio.Writer, reg *project.Registry) error {
	sub, err := r.line()
	if err != nil {
		return err
	}

	switch sub {
	case "NEW":
		return projectNew(w, reg)
	case "FIND_ID":
		return projectFindID(r, w, reg)
	case "ADD_SRC":
		return projectAddSrc(r, w, reg)
	case "OPTIONS":
		return projectOptions(r, w, reg)
	case "FILE_SRC":
		return projectFileSrc(r, w, reg)
	case "LOCATE":
		return projectLocate(r, w, reg)
	default:
		fmt.Fprintf(w, "Unknown PROJECT subcommand: %s\n", sub)
		return endResponse(w)
	}
}

func projectNew(w *bufio.Writer, reg *project.Registry) error {
	p, err := reg.New()
	if err != nil {
		fmt.Fprintf(w, "%s\n", err)
		return endResponse(w)
	}
	fmt.Fprintf(w, "PROJECTID:%d\n", p.ID())
	return endResponse(w)
}

func projectFindID(r *reader, w *bufio.Writer, reg *project.Registry) error {
	path, err := r.line()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "PROJECTID:%d\n", reg.FindID(path))
	return endResponse(w)
}

func readProjectID(r *reader) (int, error) {
	_, id, err := r.kvInt()
	if err != nil {
		return 0, errors.Wrap(err, "reading PROJECTID header")
	}
	return id, nil
}

func projectAddSrc(r *reader, w *bufio.Writer, reg *project.Registry) error {
	id, err := readProjectID(r)
	if err != nil {
		return err
	}
	path, err := r.line()
	if err != nil {
		return err
	}
	p, ok := reg.Get(id)
	if !ok {
		fmt.Fprintf(w, "unknown project id %d\n", id)
		return endResponse(w)
	}
	if _, err := p.AddSource(path); err != nil {
		fmt.Fprintf(w, "%s\n", err)
	}
	return endResponse(w)
}

func projectOptions(r *reader, w *bufio.Writer, reg *project.Registry) error {
	id, err := readProjectID(r)
	if err != nil {
		return err
	}
	line, err := r.line()
	if err != nil {
		return err
	}
	p, ok := reg.Get(id)
	if !ok {
		fmt.Fprintf(w, "unknown project id %d\n", id)
		return endResponse(w)
	}
	p.Options(fields(line))
	return endResponse(w)
}

func projectFileSrc(r *reader, w *bufio.Writer, reg *project.Registry) error {
	id, err := readProjectID(r)
	if err != nil {
		return err
	}
	_, path, err := r.kv()
	if err != nil {
		return err
	}
	_, length, err := r.kvInt()
	if err != nil {
		return err
	}
	buf, err := r.nBytes(length)
	if err != nil {
		return err
	}
	p, ok := reg.Get(id)
	if !ok {
		fmt.Fprintf(w, "unknown project id %d\n", id)
		return endResponse(w)
	}
	p.SetOverlay(path, buf)
	return endResponse(w)
}

func projectLocate(r *reader, w *bufio.Writer, reg *project.Registry) error {
	id, err := readProjectID(r)
	if err != nil {
		return err
	}
	_, src, err := r.kv()
	if err != nil {
		return err
	}
	_, row, err := r.kvInt()
	if err != nil {
		return err
	}
	_, col, err := r.kvInt()
	if err != nil {
		return err
	}
	if _, _, err := r.kv(); err != nil { // prefix:<text>, unused by the engine itself
		return err
	}

	p, ok := reg.Get(id)
	if !ok {
		fmt.Fprintf(w, "unknown project id %d\n", id)
		return endResponse(w)
	}

	results, unhandled, err := p.Locate(src, row, col)
	if err != nil {
		fmt.Fprintf(w, "%s\n", err)
		return endResponse(w)
	}
	if unhandled != "" {
		fmt.Fprintf(w, "Unhandled Cursor Dispatch case: %s\n", unhandled)
	}
	writePrjLocateAll(w, results)
	return endResponse(w)
}

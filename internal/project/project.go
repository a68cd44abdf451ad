// Package project is the project registry: a fixed-capacity table of
// Projects, each owning a parser index, its source list, a parallel,
// lazily-built translation-unit list, an argument vector, and an overlay
// store.
package project

import (
	"github.com/daedaleanai/cxls/internal/clangx"
	"github.com/daedaleanai/cxls/internal/overlay"
	"github.com/pkg/errors"
)

// MaxProjects is the registry's fixed slot count.
const MaxProjects = 64

// Project owns one parser index and the translation units built against
// it. Source positions are stable for the project's lifetime: sources are
// append-only and tunits is always the same length as sources.
type Project struct {
	id          int
	index       *clangx.Index
	args        []string
	compDB      *clangx.CompilationDatabase
	sources     []string
	tunits      []*clangx.TranslationUnit
	activeTunit int
	overlays    overlay.Store
}

// ID returns the project's registry slot.
func (p *Project) ID() int { return p.id }

// Len reports the number of sources (and TU slots) owned by the project.
// Satisfies locate.TUSet.
func (p *Project) Len() int { return len(p.tunits) }

// RootCursor returns the root cursor of the TU at slot, or false if that
// slot has never been built.
func (p *Project) RootCursor(slot int) (clangx.Cursor, bool) {
	if slot < 0 || slot >= len(p.tunits) || p.tunits[slot] == nil {
		return clangx.Cursor{}, false
	}
	return p.tunits[slot].RootCursor(), true
}

// Options replaces the project's argument vector wholesale. It does not
// rebuild any existing TU; the next parse or reparse sees the new args.
//
// A `-p <dir>` pair (the same convention clang's own command-line tools use
// to point at a compile_commands.json directory) is recognized and pulled
// out of the vector: the project loads that compilation database and, from
// then on, prefers its per-file compile command over the plain argument
// vector whenever one matches the source being built, the way
// parseSingleFile in reqtraq's Clang parser prefers a matched
// CompileCommand over the caller-supplied compilerArgs.
func (p *Project) Options(argv []string) {
	args := make([]string, 0, len(argv))
	var dbDir string
	for i := 0; i < len(argv); i++ {
		if argv[i] == "-p" && i+1 < len(argv) {
			dbDir = argv[i+1]
			i++
			continue
		}
		args = append(args, argv[i])
	}
	p.args = args

	if p.compDB != nil {
		p.compDB.Dispose()
		p.compDB = nil
	}
	if dbDir != "" {
		if db, err := clangx.LoadCompilationDatabase(dbDir); err == nil {
			p.compDB = db
		}
	}
}

// argsFor returns the compile command this project would build path with:
// the compilation database's command when one matches, else the plain
// argument vector from the last OPTIONS.
func (p *Project) argsFor(path string) []string {
	if p.compDB != nil {
		if args := p.compDB.ArgsFor(path); args != nil {
			return args
		}
	}
	return p.args
}

// FindSource returns the slot index of path among the project's sources,
// or -1 if absent.
func (p *Project) FindSource(path string) int {
	for i, s := range p.sources {
		if s == path {
			return i
		}
	}
	return -1
}

// AddSource appends path to the project, immediately builds its TU with
// the project's current args and overlays, and returns the new slot. A
// build failure is not rolled back: the source stays recorded and the TU
// slot stays nil, to be retried on the next LOCATE against it.
func (p *Project) AddSource(path string) (slot int, err error) {
	slot = len(p.sources)
	p.sources = append(p.sources, path)
	p.tunits = append(p.tunits, nil)

	tu, buildErr := p.index.ParseTranslationUnit(path, p.argsFor(path), p.overlays.Snapshot())
	if buildErr != nil {
		return slot, errors.Wrapf(buildErr, "building translation unit for %s", path)
	}
	p.tunits[slot] = tu
	return slot, nil
}

// SetOverlay upserts path's in-memory contents; it does not rebuild any TU.
func (p *Project) SetOverlay(path string, contents []byte) {
	p.overlays.Put(path, contents)
}

// SetActive selects the TU slot the next Locate call resolves against.
func (p *Project) SetActive(slot int) {
	p.activeTunit = slot
}

// Active returns the currently selected TU slot.
func (p *Project) Active() int { return p.activeTunit }

// EnsureActiveTU applies the translation-unit lifecycle to the active
// slot: build it if never built, else reparse it in place against the
// current overlay set. On a reparse failure the slot is disposed and
// nulled so the next query rebuilds from scratch.
func (p *Project) EnsureActiveTU() (*clangx.TranslationUnit, error) {
	i := p.activeTunit
	if i < 0 || i >= len(p.tunits) {
		return nil, errors.Errorf("active translation unit slot %d out of range", i)
	}

	if p.tunits[i] == nil {
		tu, err := p.index.ParseTranslationUnit(p.sources[i], p.argsFor(p.sources[i]), p.overlays.Snapshot())
		if err != nil {
			return nil, errors.Wrap(err, "creating translation unit")
		}
		p.tunits[i] = tu
		return tu, nil
	}

	tu := p.tunits[i]
	if err := tu.Reparse(p.overlays.Snapshot()); err != nil {
		tu.Dispose()
		p.tunits[i] = nil
		return nil, errors.Wrap(err, "reparsing translation unit")
	}
	return tu, nil
}

// Close disposes every built TU, the project's compilation database if one
// was loaded, and the project's index. Called once, on SHUTDOWN or process
// exit.
func (p *Project) Close() {
	for _, tu := range p.tunits {
		if tu != nil {
			tu.Dispose()
		}
	}
	if p.compDB != nil {
		p.compDB.Dispose()
	}
	p.index.Dispose()
}

// Registry is the fixed-capacity table of live Projects. The zero value
// is ready to use, with a capacity of MaxProjects; call SetCapacity before
// the first New to use a different limit (see internal/config).
type Registry struct {
	projects []*Project
	capacity int
}

// SetCapacity overrides the registry's slot count. Must be called before
// the first New.
func (r *Registry) SetCapacity(n int) {
	r.capacity = n
}

func (r *Registry) limit() int {
	if r.capacity <= 0 {
		return MaxProjects
	}
	return r.capacity
}

// New allocates the next free project slot. Fails once every slot up to
// the registry's capacity is in use.
func (r *Registry) New() (*Project, error) {
	if len(r.projects) >= r.limit() {
		return nil, errors.Errorf("project registry full: max %d projects", r.limit())
	}
	p := &Project{
		id:          len(r.projects),
		index:       clangx.NewIndex(),
		activeTunit: -1,
	}
	r.projects = append(r.projects, p)
	return p, nil
}

// Get returns the project at id, or false if id is out of range or unused.
func (r *Registry) Get(id int) (*Project, bool) {
	if id < 0 || id >= len(r.projects) || r.projects[id] == nil {
		return nil, false
	}
	return r.projects[id], true
}

// FindID returns the id of the first project whose sources contain path by
// exact string equality, or -1 if none matches.
func (r *Registry) FindID(path string) int {
	for i, p := range r.projects {
		if p == nil {
			continue
		}
		if p.FindSource(path) >= 0 {
			return i
		}
	}
	return -1
}

// Close tears down every live project. Used on SHUTDOWN.
func (r *Registry) Close() {
	for _, p := range r.projects {
		if p != nil {
			p.Close()
		}
	}
}

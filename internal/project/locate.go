package project

import "github.com/daedaleanai/cxls/internal/locate"

// Locate runs the symbol-location engine against path at (line, col),
// adding path as a new source first if the project doesn't already know
// it — it may be an include brought in by another translation unit. It
// applies the TU lifecycle (build-or-reparse) to the selected slot before
// resolving, per the engine's per-query contract.
func (p *Project) Locate(path string, line, col int) ([]locate.Result, string, error) {
	slot := p.FindSource(path)
	if slot < 0 {
		var err error
		slot, err = p.AddSource(path)
		if err != nil {
			return nil, "", err
		}
	}
	p.SetActive(slot)

	tu, err := p.EnsureActiveTU()
	if err != nil {
		return nil, "", err
	}

	results, unhandled := locate.Locate(tu, p, path, line, col)
	return results, unhandled, nil
}

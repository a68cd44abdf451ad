package locate

import "github.com/daedaleanai/cxls/internal/clangx"

// maxUSRMatches bounds how many locations one run of the cross-TU USR
// scanner may emit. Every scan starts from a fresh budget, so a
// FieldDecl/ClassDecl query, which runs two scans, can emit up to twice this
// many; the override scanner checks its budget but never spends it, so its
// emissions are not bounded by this value. Overridable at startup from
// configuration; defaults to the original engine's cap.
var maxUSRMatches = 255

// SetMaxMatches overrides the per-query emission cap used by every
// resolution strategy that runs a cross-TU scan.
func SetMaxMatches(n int) {
	maxUSRMatches = n
}

// TUSet is the slice of a project the cross-TU scanners need: its
// translation units in slot order. A slot with no built TU is skipped,
// exactly as the single-threaded registry would skip a null handle.
type TUSet interface {
	Len() int
	RootCursor(slot int) (clangx.Cursor, bool)
}

// usrScan visits every TU's root cursor, recursively, and calls emit for
// every cursor whose USR equals target. It does not descend into a match
// (the matched symbol's own children cannot also carry that USR). The scan
// stops globally once budget reaches zero, across every TU it visits.
func usrScan(tus TUSet, target string, budget *int, emit func(clangx.Cursor)) {
	if *budget <= 0 {
		return
	}
	for slot := 0; slot < tus.Len(); slot++ {
		root, ok := tus.RootCursor(slot)
		if !ok || root.IsNull() {
			continue
		}
		root.Visit(func(c clangx.Cursor) clangx.VisitResult {
			if c.USR() == target {
				emit(c)
				*budget--
			} else {
				return clangx.VisitRecurse
			}
			if *budget <= 0 {
				return clangx.VisitBreak
			}
			return clangx.VisitContinue
		})
		if *budget <= 0 {
			return
		}
	}
}

// overrideScan visits every TU's root cursor and, for every CXXMethod
// cursor found, compares its overridden-method set against query by
// spelling (not USR — an intentionally preserved quirk of the original
// engine). Each match emits both the overriding method and the override
// that matched it.
func overrideScan(tus TUSet, query clangx.Cursor, budget *int, emit func(clangx.Cursor)) {
	wantSpelling := query.Spelling()
	for slot := 0; slot < tus.Len(); slot++ {
		if *budget <= 0 {
			return
		}
		root, ok := tus.RootCursor(slot)
		if !ok || root.IsNull() {
			continue
		}
		root.Visit(func(c clangx.Cursor) clangx.VisitResult {
			if c.Kind() != clangx.KindCXXMethod {
				return clangx.VisitRecurse
			}
			for _, o := range c.Overrides() {
				if o.Spelling() == wantSpelling {
					emit(o)
					emit(c)
				}
			}
			return clangx.VisitContinue
		})
	}
}

// nearestCursor walks root's direct children looking for the last one on
// the requested file whose line is at or before the requested line,
// stopping as soon as a child's line runs past it. Children are assumed to
// appear in source order, so the first child past the target line proves
// no later child can be nearer.
func nearestCursor(root clangx.Cursor, file string, line int) clangx.Cursor {
	best := clangx.NullCursor
	root.Visit(func(c clangx.Cursor) clangx.VisitResult {
		loc := c.Location()
		cfile, cline, _ := loc.FileLocation()
		if cfile.Name() != file {
			return clangx.VisitContinue
		}
		if cline <= line {
			best = c
			return clangx.VisitContinue
		}
		return clangx.VisitBreak
	})
	return best
}

package locate

import "github.com/daedaleanai/cxls/internal/clangx"

// Locate resolves the symbol at (file, line, col) in tu, consulting every
// TU in all for the cross-file strategies. It returns the located results
// plus, when the cursor's kind has no strategy, the unhandled kind's name
// for the one-line diagnostic the dispatcher prints.
func Locate(tu *clangx.TranslationUnit, all TUSet, file string, line, col int) (results []Result, unhandledKind string) {
	f := tu.File(file)
	loc := tu.Location(f, line, col)
	cursor := tu.CursorAt(loc)
	if cursor.IsNull() {
		return nil, ""
	}

	if clangx.IsInvalidKind(cursor.Kind()) {
		best := nearestCursor(tu.RootCursor(), file, line)
		if best.IsNull() {
			return []Result{{Line: 1, Column: 1}}, ""
		}
		return []Result{fromCursor(best)}, ""
	}

	for clangx.IsReference(cursor.Kind()) {
		cursor = cursor.Referenced()
	}
	if clangx.IsReferenceRange(cursor.Kind()) {
		cursor = cursor.Referenced()
	}

	return dispatch(tu, all, cursor)
}

func dispatch(tu *clangx.TranslationUnit, all TUSet, cursor clangx.Cursor) ([]Result, string) {
	switch cursor.Kind() {
	case clangx.KindInclusionDirective:
		return includeStrategy(tu, cursor), ""

	case clangx.KindParmDecl, clangx.KindVarDecl, clangx.KindTypedefDecl:
		return typedefStrategy(cursor), ""

	case clangx.KindNamespace, clangx.KindNamespaceRef:
		return namespaceStrategy(all), ""

	case clangx.KindMacroDefinition:
		return childEmitStrategy(cursor), ""

	case clangx.KindEnumDecl:
		return childEmitStrategy(cursor), ""

	case clangx.KindMacroExpansion, clangx.KindCallExpr, clangx.KindDeclRefExpr:
		return declRefStrategy(all, cursor, true), ""

	case clangx.KindMemberRefExpr:
		return memberRefStrategy(all, cursor), ""

	case clangx.KindClassTemplate:
		return classTemplateStrategy(all, cursor), ""

	case clangx.KindFunctionDecl:
		return declRefStrategy(all, cursor, true), ""

	case clangx.KindFieldDecl, clangx.KindClassDecl:
		// Intentional fall-through preserved from the original engine: a
		// field or class declaration is located both as itself and as the
		// constructor/class-template strategy on the same cursor.
		out := declRefStrategy(all, cursor, false)
		out = append(out, classTemplateStrategy(all, cursor)...)
		return out, ""

	case clangx.KindConstructor:
		return classTemplateStrategy(all, cursor), ""

	case clangx.KindCXXMethod:
		return cxxMethodStrategy(all, cursor), ""

	default:
		return nil, cursor.KindName()
	}
}

func includeStrategy(tu *clangx.TranslationUnit, cursor clangx.Cursor) []Result {
	f := cursor.IncludedFile()
	loc := tu.Location(f, 1, 1)
	incCursor := tu.CursorAt(loc)
	r := fromLocation(incCursor, loc)
	if r.IsZero() {
		return nil
	}
	return []Result{r}
}

func typedefStrategy(cursor clangx.Cursor) []Result {
	target := cursor.TypeDeclaration()
	return emitOne(target)
}

// namespaceStrategy visits every TU root and emits every reachable
// Namespace cursor, following a NamespaceRef to its referent before the
// kind test. The query cursor plays no further part in the match: the
// original engine computes a referent for it but never consults that
// value inside the visitor, so every namespace in the project surfaces.
func namespaceStrategy(all TUSet) []Result {
	var out []Result
	for slot := 0; slot < all.Len(); slot++ {
		root, ok := all.RootCursor(slot)
		if !ok || root.IsNull() {
			continue
		}
		root.Visit(func(c clangx.Cursor) clangx.VisitResult {
			if c.Kind() == clangx.KindNamespaceRef {
				c = c.Referenced()
			}
			if c.Kind() != clangx.KindNamespace {
				return clangx.VisitRecurse
			}
			out = append(out, fromCursor(c))
			return clangx.VisitContinue
		})
	}
	return out
}

// childEmitStrategy emits cursor itself, then every direct child's
// location (one level, no further recursion — matching the original
// macro-definition/enum-decl print visitors).
func childEmitStrategy(cursor clangx.Cursor) []Result {
	out := emitOne(cursor)
	cursor.Visit(func(c clangx.Cursor) clangx.VisitResult {
		out = append(out, fromCursor(c))
		return clangx.VisitContinue
	})
	return out
}

// declRefStrategy normalizes cursor to its referenced entity (falling back
// to its type's declaration when unreferenced), emits that location, and,
// when gated, runs the cross-TU USR scan only for externally linked
// targets.
func declRefStrategy(all TUSet, cursor clangx.Cursor, linkageGate bool) []Result {
	target := cursor.Referenced()
	if target.IsNull() {
		target = cursor.TypeDeclaration()
	}
	out := emitOne(target)
	if linkageGate && !target.HasExternalLinkage() {
		return out
	}
	budget := maxUSRMatches
	usrScan(all, target.USR(), &budget, func(c clangx.Cursor) {
		out = append(out, fromCursor(c))
	})
	return out
}

func memberRefStrategy(all TUSet, cursor clangx.Cursor) []Result {
	target := cursor.Referenced()
	if target.IsNull() {
		target = cursor.TypeDeclaration()
	}
	out := emitOne(target)
	if target.Kind() == clangx.KindCXXMethod {
		out = append(out, cxxMethodStrategy(all, target)...)
	}
	return out
}

// classTemplateStrategy emits cursor (not its definition) but scans for the
// definition's USR when one exists, ungated by linkage.
func classTemplateStrategy(all TUSet, cursor clangx.Cursor) []Result {
	target := cursor
	if def := cursor.Definition(); !def.IsNull() {
		target = def
	}
	out := emitOne(cursor)
	budget := maxUSRMatches
	usrScan(all, target.USR(), &budget, func(c clangx.Cursor) {
		out = append(out, fromCursor(c))
	})
	return out
}

func cxxMethodStrategy(all TUSet, cursor clangx.Cursor) []Result {
	var out []Result
	if cursor.IsVirtualMethod() {
		budget := maxUSRMatches
		overrideScan(all, cursor, &budget, func(c clangx.Cursor) {
			out = append(out, fromCursor(c))
		})
	}
	out = append(out, classTemplateStrategy(all, cursor)...)
	return out
}

func emitOne(cursor clangx.Cursor) []Result {
	r := fromCursor(cursor)
	if r.IsZero() {
		return nil
	}
	return []Result{r}
}

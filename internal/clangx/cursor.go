package clangx

import "github.com/go-clang/clang-v14/clang"

// VisitResult controls traversal after a visitor inspects one cursor.
type VisitResult int

const (
	VisitContinue VisitResult = iota // skip this cursor's children, carry on with siblings
	VisitRecurse                     // descend into this cursor's children
	VisitBreak                       // stop the traversal entirely
)

func (r VisitResult) toClang() clang.ChildVisitResult {
	switch r {
	case VisitRecurse:
		return clang.ChildVisit_Recurse
	case VisitBreak:
		return clang.ChildVisit_Break
	default:
		return clang.ChildVisit_Continue
	}
}

// Kind is a cursor's syntactic category. It is a direct alias of the
// libclang cursor-kind tag: the classifier's "invalid" and "reference"
// ranges below are range checks on this tag, not a reimplementation of
// libclang's own classification.
type Kind = clang.CursorKind

// Re-exported kind constants the classifier and strategies switch on.
const (
	KindInclusionDirective = clang.Cursor_InclusionDirective
	KindParmDecl           = clang.Cursor_ParmDecl
	KindVarDecl            = clang.Cursor_VarDecl
	KindTypedefDecl        = clang.Cursor_TypedefDecl
	KindNamespace          = clang.Cursor_Namespace
	KindNamespaceRef       = clang.Cursor_NamespaceRef
	KindMacroDefinition    = clang.Cursor_MacroDefinition
	KindEnumDecl           = clang.Cursor_EnumDecl
	KindMacroExpansion     = clang.Cursor_MacroExpansion
	KindCallExpr           = clang.Cursor_CallExpr
	KindDeclRefExpr        = clang.Cursor_DeclRefExpr
	KindMemberRefExpr      = clang.Cursor_MemberRefExpr
	KindClassTemplate      = clang.Cursor_ClassTemplate
	KindFunctionDecl       = clang.Cursor_FunctionDecl
	KindFieldDecl          = clang.Cursor_FieldDecl
	KindClassDecl          = clang.Cursor_ClassDecl
	KindConstructor        = clang.Cursor_Constructor
	KindCXXMethod          = clang.Cursor_CXXMethod
)

// IsInvalidKind reports whether kind falls in libclang's reserved
// error/placeholder range (CXCursor_FirstInvalid..CXCursor_LastInvalid).
func IsInvalidKind(kind Kind) bool {
	return kind >= clang.Cursor_FirstInvalid && kind <= clang.Cursor_LastInvalid
}

// IsReferenceRange reports whether kind falls in libclang's reference range
// (CXCursor_FirstRef..CXCursor_LastRef). Distinct from IsReference, which
// asks libclang's own clang_isReference predicate for the same question on
// an individual kind value encountered mid-unwrap; the core spec calls for
// both checks at different points in cursor normalization and this facade
// preserves that distinction rather than collapsing it into one helper.
func IsReferenceRange(kind Kind) bool {
	return kind >= clang.Cursor_FirstRef && kind <= clang.Cursor_LastRef
}

// IsReference wraps clang_isReference.
func IsReference(kind Kind) bool {
	return clang.IsReference(uint32(kind)) != 0
}

// Cursor is a borrowed view into a node of a translation unit's AST. Valid
// only while that translation unit exists.
type Cursor struct {
	c clang.Cursor
}

// NullCursor is the zero Cursor, matching clang_getNullCursor.
var NullCursor = Cursor{}

func (c Cursor) IsNull() bool          { return c.c.IsNull() }
func (c Cursor) Kind() Kind            { return c.c.Kind() }
func (c Cursor) KindName() string      { return c.c.Kind().Spelling() }
func (c Cursor) Spelling() string      { return c.c.Spelling() }
func (c Cursor) USR() string           { return c.c.USR() }
func (c Cursor) IsDefinition() bool    { return c.c.IsDefinition() }
func (c Cursor) Location() Location    { return Location{loc: c.c.Location()} }
func (c Cursor) IsVirtualMethod() bool { return c.c.CXXMethod_IsVirtual() }

// Referenced returns the entity this cursor refers to (clang_getCursorReferenced).
func (c Cursor) Referenced() Cursor {
	return Cursor{c: c.c.Referenced()}
}

// Definition returns this cursor's definition cursor, or the null cursor
// if the entity has a declaration only.
func (c Cursor) Definition() Cursor {
	return Cursor{c: c.c.Definition()}
}

// TypeDeclaration returns the cursor that declares this cursor's type,
// i.e. clang_getTypeDeclaration(clang_getCursorType(cursor)).
func (c Cursor) TypeDeclaration() Cursor {
	return Cursor{c: c.c.Type().Declaration()}
}

// IncludedFile returns the file a Cursor_InclusionDirective cursor names.
func (c Cursor) IncludedFile() File {
	return File{f: c.c.IncludedFile()}
}

// HasExternalLinkage reports whether the cursor's linkage is stronger than
// internal, the gate the decl-ref strategies use before paying for a
// cross-TU USR scan.
func (c Cursor) HasExternalLinkage() bool {
	return c.c.Linkage() > clang.Linkage_Internal
}

// Overrides returns the set of methods this CXXMethod cursor overrides.
func (c Cursor) Overrides() []Cursor {
	raw := c.c.OverriddenCursors()
	out := make([]Cursor, len(raw))
	for i, o := range raw {
		out[i] = Cursor{c: o}
	}
	return out
}

// Visit walks c's direct children, calling fn on each and following its
// VisitResult exactly as clang_visitChildren would.
func (c Cursor) Visit(fn func(cursor Cursor) VisitResult) {
	c.c.Visit(func(cur, _ clang.Cursor) clang.ChildVisitResult {
		return fn(Cursor{c: cur}).toClang()
	})
}

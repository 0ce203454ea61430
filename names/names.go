// Package names provides the term/type-name distinction, the reserved
// synthetic names, the modifier flag set, and the operator-precedence
// derivation the parser core relies on.
//
// This is the "name/modifier facade" component: a thin, stdlib-only
// layer over what would be an identifier table and a modifier bitset in
// a full compiler. Both are out of this core's scope (spec.md §1 lists
// "name/identifier tables" and "modifier/flag bitsets" as external
// collaborators); what the parser itself needs is the small set of
// operations below.
package names

import (
	"strconv"
	"strings"
)

// TermName and TypeName distinguish the two name spaces the Language
// keeps separate: a value binding named `x` and a type binding named
// `x` never collide.
type TermName string
type TypeName string

// ToTypeName and ToTermName convert between the two name spaces, used
// e.g. when a ClassDef's term name must also appear as a companion
// module's type.
func (n TermName) ToTypeName() TypeName { return TypeName(n) }
func (n TypeName) ToTermName() TermName { return TermName(n) }

func (n TermName) String() string { return string(n) }
func (n TypeName) String() string { return string(n) }

// Reserved synthetic/keyword names the parser and AST builders refer to
// by identity rather than spelling them out at each use site.
const (
	Wildcard     TermName = "_"
	Constructor  TermName = "<init>"
	ErrorName    TermName = "<error>"
	EmptyTerm    TermName = ""
	This         TermName = "this"
	Super        TermName = "super"
	Underscore   TypeName = "_"
	EmptyType    TypeName = ""
	WildcardStar TermName = "_*" // the `_*` repeated-argument marker
)

// IsVarPattern reports whether name could start a pattern-matching
// variable binding: the Language requires pattern variables to begin
// with a lower-case letter or underscore.
func IsVarPattern(name string) bool {
	if name == "" {
		return false
	}
	r := []rune(name)[0]
	return r == '_' || (r >= 'a' && r <= 'z')
}

// Flags is a modifier bitset. The concrete bit assignment is an
// implementation detail private to this core; downstream consumers
// only ever test/combine flags through the named constants and the
// Has/With/Without helpers.
type Flags uint32

const (
	FlagImplicit Flags = 1 << iota
	FlagLazy
	FlagAbstract
	FlagFinal
	FlagSealed
	FlagPrivate
	FlagProtected
	FlagOverride
	FlagCase
	FlagTrait
	FlagParam
	FlagPresuper // early-initializer member
	FlagMutable  // `var` rather than `val`
	FlagDeferred // body-less member (abstract/unimplemented)
	FlagMacro
	FlagSynthetic
	FlagMacroIdent // `macro` body is a reference, not code
)

func (f Flags) Has(flag Flags) bool    { return f&flag != 0 }
func (f Flags) With(flag Flags) Flags  { return f | flag }
func (f Flags) Without(flag Flags) Flags { return f &^ flag }

func (f Flags) HasAny(flags Flags) bool { return f&flags != 0 }

// String renders the set flags in a stable order, for error messages
// and debug dumps.
func (f Flags) String() string {
	if f == 0 {
		return ""
	}
	names := []struct {
		flag Flags
		name string
	}{
		{FlagImplicit, "implicit"}, {FlagLazy, "lazy"}, {FlagAbstract, "abstract"},
		{FlagFinal, "final"}, {FlagSealed, "sealed"}, {FlagPrivate, "private"},
		{FlagProtected, "protected"}, {FlagOverride, "override"}, {FlagCase, "case"},
		{FlagTrait, "trait"}, {FlagParam, "param"}, {FlagPresuper, "presuper"},
		{FlagMutable, "mutable"}, {FlagDeferred, "deferred"}, {FlagMacro, "macro"},
		{FlagSynthetic, "synthetic"}, {FlagMacroIdent, "macroIdent"},
	}
	var parts []string
	for _, n := range names {
		if f.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, " ")
}

// Precedence levels, lowest to highest, following spec.md §4.2's prose
// ordering. Alphanumeric operators (an identifier used infix, e.g.
// `a max b`) get the maximum level here, rather than the low, fixed
// level real Scala assigns them.
const (
	PrecAssignment = iota
	PrecPipe
	PrecCaret
	PrecAmp
	PrecEquality
	PrecComparison
	PrecColon
	PrecAdditive
	PrecMultiplicative
	PrecOther
	PrecAlphanumeric
)

// assignmentOps are the compound-assignment spellings; bare `=` is
// handled by the parser directly and never reaches the operator stack.
var assignmentOps = map[string]bool{
	"+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"|=": true, "^=": true, "&=": true, "<<=": true, ">>=": true, ">>>=": true,
}

// PrecedenceOf derives an operator's binding power purely from its
// spelling, per spec.md §4.2. The function is total over non-empty
// operator names.
func PrecedenceOf(op string) int {
	if op == "" {
		return PrecOther
	}
	if assignmentOps[op] {
		return PrecAssignment
	}
	head := rune(op[0])
	if isLetterStart(head) {
		return PrecAlphanumeric
	}
	switch head {
	case '|':
		return PrecPipe
	case '^':
		return PrecCaret
	case '&':
		return PrecAmp
	case '=', '!':
		return PrecEquality
	case '<', '>':
		return PrecComparison
	case ':':
		return PrecColon
	case '+', '-':
		return PrecAdditive
	case '*', '/', '%':
		return PrecMultiplicative
	default:
		return PrecOther
	}
}

// IsRightAssoc reports whether op associates to the right: by spec.md
// §4.2, exactly those operators whose spelling ends in ':'.
func IsRightAssoc(op string) bool {
	return op != "" && op[len(op)-1] == ':'
}

func isLetterStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// FreshNameSource generates collision-free synthetic names within one
// compilation unit. Deterministic given a starting counter, per
// spec.md §5's ordering guarantee.
type FreshNameSource struct {
	counter int
}

func NewFreshNameSource() *FreshNameSource { return &FreshNameSource{} }

func (f *FreshNameSource) next(prefix string) string {
	f.counter++
	return prefix + "$" + strconv.Itoa(f.counter)
}

func (f *FreshNameSource) FreshTermName(prefix string) TermName {
	return TermName(f.next(prefix))
}

func (f *FreshNameSource) FreshTypeName(prefix string) TypeName {
	return TypeName(f.next(prefix))
}

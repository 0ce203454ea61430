package ast

import (
	"fmt"
	"strings"

	"github.com/corelang/corelang/names"
	"github.com/corelang/corelang/token"
)

// Tree is the single sum type every AST node belongs to.
type Tree interface {
	Position() token.Position
	String() string
}

type Base struct {
	Pos token.Position
}

func (t Base) Position() token.Position { return t.Pos }

// Empty is the canonical "no tree" sentinel: an empty ValDef type tree
// means inferred, an empty DefDef body means abstract/deferred, and so
// on, matching spec.md §3's "possibly empty ≡ ..." invariants.
var Empty = &EmptyTree{}

func IsEmpty(t Tree) bool {
	if t == nil {
		return true
	}
	_, ok := t.(*EmptyTree)
	return ok
}

type EmptyTree struct{ Base }

func (e *EmptyTree) String() string { return "<empty>" }

// ---- paths and application ----

type Ident struct {
	Base
	Name string
}

func (i *Ident) String() string { return i.Name }

type Select struct {
	Base
	Qualifier Tree
	Name      string
}

func (s *Select) String() string { return s.Qualifier.String() + "." + s.Name }

type Apply struct {
	Base
	Fun  Tree
	Args []Tree
}

func (a *Apply) String() string {
	return a.Fun.String() + "(" + joinTrees(a.Args) + ")"
}

type TypeApply struct {
	Base
	Fun  Tree
	Args []Tree
}

func (t *TypeApply) String() string {
	return t.Fun.String() + "[" + joinTrees(t.Args) + "]"
}

// ---- literals and self-references ----

// Literal carries a pre-parsed value; Kind says which token produced it
// (token.INT, token.STRING, token.TRUE/FALSE, token.NULL, ...).
type Literal struct {
	Base
	Kind  token.Type
	Value any
}

func (l *Literal) String() string {
	if l.Kind == token.NULL {
		return "null"
	}
	if l.Kind == token.STRING || l.Kind == token.CHAR {
		return fmt.Sprintf("%q", l.Value)
	}
	return fmt.Sprint(l.Value)
}

type This struct {
	Base
	Qualifier string // empty means the innermost enclosing class
}

func (t *This) String() string {
	if t.Qualifier == "" {
		return "this"
	}
	return t.Qualifier + ".this"
}

type Super struct {
	Base
	Qualifier string
	Mix       string // the `with Mix` target of a qualified super call
}

func (s *Super) String() string {
	out := "super"
	if s.Mix != "" {
		out += "[" + s.Mix + "]"
	}
	return out
}

// ---- ascriptions ----

type Typed struct {
	Base
	Expr Tree
	Type Tree
}

func (t *Typed) String() string { return t.Expr.String() + ": " + t.Type.String() }

type Annotated struct {
	Base
	Annot Tree
	Arg   Tree
}

func (a *Annotated) String() string { return a.Arg.String() + " @" + a.Annot.String() }

// ---- functions and blocks ----

type Function struct {
	Base
	Params []*ValDef
	Body   Tree
}

func (f *Function) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = paramString(p)
	}
	return "(" + strings.Join(parts, ", ") + ") => " + f.Body.String()
}

type Block struct {
	Base
	Stats []Tree
	Expr  Tree
}

func (b *Block) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for _, s := range b.Stats {
		sb.WriteString(s.String())
		sb.WriteString("; ")
	}
	if b.Expr != nil {
		sb.WriteString(b.Expr.String())
	}
	sb.WriteString("}")
	return sb.String()
}

// ---- control flow ----

type If struct {
	Base
	Cond Tree
	Then Tree
	Else Tree
}

func (i *If) String() string {
	out := "if (" + i.Cond.String() + ") " + i.Then.String()
	if !IsEmpty(i.Else) {
		out += " else " + i.Else.String()
	}
	return out
}

type CaseDef struct {
	Base
	Pattern Tree
	Guard   Tree // Empty if no `if` guard
	Body    Tree
}

func (c *CaseDef) String() string {
	out := "case " + c.Pattern.String()
	if !IsEmpty(c.Guard) {
		out += " if " + c.Guard.String()
	}
	return out + " => " + c.Body.String()
}

type Match struct {
	Base
	Selector Tree
	Cases    []*CaseDef
}

func (m *Match) String() string {
	var sb strings.Builder
	sb.WriteString(m.Selector.String())
	sb.WriteString(" match {")
	for _, c := range m.Cases {
		sb.WriteString(c.String())
		sb.WriteString(" ")
	}
	sb.WriteString("}")
	return sb.String()
}

type Try struct {
	Base
	Block     Tree
	Catches   []*CaseDef
	Finalizer Tree // Empty if no finally
}

func (t *Try) String() string {
	out := "try " + t.Block.String()
	if len(t.Catches) > 0 {
		out += " catch { ... }"
	}
	if !IsEmpty(t.Finalizer) {
		out += " finally " + t.Finalizer.String()
	}
	return out
}

type Throw struct {
	Base
	Expr Tree
}

func (t *Throw) String() string { return "throw " + t.Expr.String() }

type Return struct {
	Base
	Expr Tree
}

func (r *Return) String() string {
	if IsEmpty(r.Expr) {
		return "return"
	}
	return "return " + r.Expr.String()
}

// LabelDef is the AST shape while/do-while loops desugar to: a
// self-recursive, parameter-less label, per spec.md §4.5.
type LabelDef struct {
	Base
	Name   string
	Params []Tree
	Rhs    Tree
}

func (l *LabelDef) String() string { return "label " + l.Name + " = " + l.Rhs.String() }

// ---- object construction ----

type New struct {
	Base
	Template *Template
}

func (n *New) String() string { return "new " + n.Template.String() }

type Assign struct {
	Base
	Lhs Tree
	Rhs Tree
}

func (a *Assign) String() string { return a.Lhs.String() + " = " + a.Rhs.String() }

// NamedArg is `name = expr` in call-argument position (spec.md §4.5),
// distinct from Assign: it names a parameter rather than reassigning a
// variable, and only appears inside an Apply's Args.
type NamedArg struct {
	Base
	Name string
	Rhs  Tree
}

func (n *NamedArg) String() string { return n.Name + " = " + n.Rhs.String() }

// ---- patterns ----

type Bind struct {
	Base
	Name string
	Body Tree // Empty when this is a bare variable pattern
}

func (b *Bind) String() string {
	if IsEmpty(b.Body) {
		return b.Name
	}
	return b.Name + " @ " + b.Body.String()
}

type Star struct {
	Base
	Elem Tree
}

func (s *Star) String() string { return s.Elem.String() + "*" }

type Alternative struct {
	Base
	Alts []Tree
}

func (a *Alternative) String() string { return joinTreesSep(a.Alts, " | ") }

// ---- imports ----

type ImportSelector struct {
	Base
	Name       string
	Rename     string // empty if not renamed
	IsWildcard bool
}

func (s *ImportSelector) String() string {
	if s.IsWildcard {
		return "_"
	}
	if s.Rename != "" {
		return s.Name + " => " + s.Rename
	}
	return s.Name
}

type Import struct {
	Base
	Expr      Tree
	Selectors []*ImportSelector
}

func (i *Import) String() string {
	parts := make([]string, len(i.Selectors))
	for j, s := range i.Selectors {
		parts[j] = s.String()
	}
	return "import " + i.Expr.String() + ".{" + strings.Join(parts, ", ") + "}"
}

// ---- definitions ----

type ValDef struct {
	Base
	Mods     names.Flags
	Name     string
	TypeTree Tree // Empty if inferred
	Rhs      Tree // Empty means abstract/deferred
}

// paramString renders a ValDef the way a parameter list spells it —
// `name` or `name: Type`, without the `val`/`var` keyword a top-level
// binding carries.
func paramString(v *ValDef) string {
	if IsEmpty(v.TypeTree) {
		return v.Name
	}
	return v.Name + ": " + v.TypeTree.String()
}

func (v *ValDef) String() string {
	kw := "val"
	if v.Mods.Has(names.FlagMutable) {
		kw = "var"
	}
	out := kw + " " + v.Name
	if !IsEmpty(v.TypeTree) {
		out += ": " + v.TypeTree.String()
	}
	if !IsEmpty(v.Rhs) {
		out += " = " + v.Rhs.String()
	}
	return out
}

type DefDef struct {
	Base
	Mods       names.Flags
	Name       string
	TypeParams []*TypeDef
	ParamLists [][]*ValDef
	ReturnType Tree // Empty if inferred
	Rhs        Tree // Empty means abstract/deferred
}

func (d *DefDef) String() string {
	var sb strings.Builder
	sb.WriteString("def ")
	sb.WriteString(d.Name)
	if len(d.TypeParams) > 0 {
		parts := make([]string, len(d.TypeParams))
		for i, tp := range d.TypeParams {
			parts[i] = tp.String()
		}
		sb.WriteString("[" + strings.Join(parts, ", ") + "]")
	}
	for _, params := range d.ParamLists {
		parts := make([]string, len(params))
		for i, p := range params {
			parts[i] = p.String()
		}
		sb.WriteString("(" + strings.Join(parts, ", ") + ")")
	}
	if !IsEmpty(d.ReturnType) {
		sb.WriteString(": " + d.ReturnType.String())
	}
	if !IsEmpty(d.Rhs) {
		sb.WriteString(" = " + d.Rhs.String())
	}
	return sb.String()
}

type TypeBoundsTree struct {
	Base
	Lo Tree // Empty means Nothing
	Hi Tree // Empty means Any
}

func (t *TypeBoundsTree) String() string {
	out := ""
	if !IsEmpty(t.Lo) {
		out += " >: " + t.Lo.String()
	}
	if !IsEmpty(t.Hi) {
		out += " <: " + t.Hi.String()
	}
	return out
}

type TypeDef struct {
	Base
	Mods       names.Flags
	Name       string
	TypeParams []*TypeDef
	Bounds     *TypeBoundsTree // non-nil for abstract type members/type params
	Rhs        Tree            // Empty for abstract, else the alias type
}

func (t *TypeDef) String() string {
	out := "type " + t.Name
	if len(t.TypeParams) > 0 {
		parts := make([]string, len(t.TypeParams))
		for i, tp := range t.TypeParams {
			parts[i] = tp.String()
		}
		out += "[" + strings.Join(parts, ", ") + "]"
	}
	if t.Bounds != nil {
		out += t.Bounds.String()
	}
	if !IsEmpty(t.Rhs) {
		out += " = " + t.Rhs.String()
	}
	return out
}

// ---- templates and the definitions that carry one ----

type Template struct {
	Base
	Parents []Tree
	Self    *ValDef // nil means no self-type declaration
	Early   []Tree  // PRESUPER-flagged ValDef/TypeDef
	Body    []Tree
}

func (t *Template) String() string {
	var sb strings.Builder
	if len(t.Early) > 0 {
		sb.WriteString("{ ")
		sb.WriteString(joinTreesSep(t.Early, "; "))
		sb.WriteString(" } with ")
	}
	sb.WriteString(joinTreesSep(t.Parents, " with "))
	sb.WriteString(" {")
	if t.Self != nil {
		sb.WriteString(t.Self.Name + " => ")
	}
	sb.WriteString(joinTreesSep(t.Body, "; "))
	sb.WriteString("}")
	return sb.String()
}

type ClassDef struct {
	Base
	Mods       names.Flags
	Name       string
	TypeParams []*TypeDef
	Ctor       *DefDef // primary constructor (param lists + mods)
	Tmpl       *Template
}

func (c *ClassDef) String() string {
	kw := "class"
	if c.Mods.Has(names.FlagTrait) {
		kw = "trait"
	}
	out := kw + " " + c.Name
	if len(c.TypeParams) > 0 {
		parts := make([]string, len(c.TypeParams))
		for i, tp := range c.TypeParams {
			parts[i] = tp.String()
		}
		out += "[" + strings.Join(parts, ", ") + "]"
	}
	for _, params := range c.Ctor.ParamLists {
		parts := make([]string, len(params))
		for i, p := range params {
			parts[i] = p.String()
		}
		out += "(" + strings.Join(parts, ", ") + ")"
	}
	return out + " extends " + c.Tmpl.String()
}

type ModuleDef struct {
	Base
	Mods names.Flags
	Name string
	Tmpl *Template
}

func (m *ModuleDef) String() string {
	return "object " + m.Name + " extends " + m.Tmpl.String()
}

type PackageDef struct {
	Base
	Pid   Tree // Empty for the root/empty package
	Stats []Tree
}

func (p *PackageDef) String() string {
	var sb strings.Builder
	if !IsEmpty(p.Pid) {
		sb.WriteString("package " + p.Pid.String() + "\n")
	}
	sb.WriteString(joinTreesSep(p.Stats, "\n"))
	return sb.String()
}

// ---- type trees ----

type CompoundTypeTree struct {
	Base
	Parents    []Tree
	Refinement []Tree
}

func (c *CompoundTypeTree) String() string {
	out := joinTreesSep(c.Parents, " with ")
	if len(c.Refinement) > 0 {
		out += " {" + joinTreesSep(c.Refinement, "; ") + "}"
	}
	return out
}

type AppliedTypeTree struct {
	Base
	Tpt  Tree
	Args []Tree
}

func (a *AppliedTypeTree) String() string {
	return a.Tpt.String() + "[" + joinTrees(a.Args) + "]"
}

type SingletonTypeTree struct {
	Base
	Ref Tree
}

func (s *SingletonTypeTree) String() string { return s.Ref.String() + ".type" }

type SelectFromTypeTree struct {
	Base
	Qualifier Tree
	Name      string
}

func (s *SelectFromTypeTree) String() string { return s.Qualifier.String() + "#" + s.Name }

type ExistentialTypeTree struct {
	Base
	Tpt          Tree
	WhereClauses []Tree
}

func (e *ExistentialTypeTree) String() string {
	return e.Tpt.String() + " forSome {" + joinTreesSep(e.WhereClauses, "; ") + "}"
}

type Parens struct {
	Base
	Exprs []Tree
}

func (p *Parens) String() string { return "(" + joinTrees(p.Exprs) + ")" }

// ---- small formatting helpers ----

func joinTrees(ts []Tree) string { return joinTreesSep(ts, ", ") }

func joinTreesSep(ts []Tree, sep string) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, sep)
}

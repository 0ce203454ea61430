package placeholder

import (
	"github.com/corelang/corelang/ast"
	"github.com/corelang/corelang/names"
	"github.com/corelang/corelang/token"
)

// exprFrame accumulates the synthetic value parameters that `_`
// placeholders within one expression boundary rewrite into.
type exprFrame struct {
	params []*ast.ValDef
}

// typeFrame accumulates the synthetic existential type parameters
// that `_` wildcards within one type boundary rewrite into.
type typeFrame struct {
	params []*ast.TypeDef
}

// Tracker holds the two independently boundary-scoped frame stacks the
// parser pushes and pops as it enters and leaves placeholder-bearing
// constructs.
type Tracker struct {
	fresh     *names.FreshNameSource
	exprStack []*exprFrame
	typeStack []*typeFrame
}

func New(fresh *names.FreshNameSource) *Tracker {
	return &Tracker{fresh: fresh}
}

// PushExprBoundary opens a new placeholder scope, entered whenever the
// parser starts parsing an expression that could close over `_`: a
// full statement, an argument, a parenthesized sub-expression.
func (t *Tracker) PushExprBoundary() {
	t.exprStack = append(t.exprStack, &exprFrame{})
}

// PopExprBoundary closes the innermost expression scope. If any `_`
// occurred within it, the caller should wrap the parsed tree in an
// ast.Function over the returned parameters (spec.md §4.3); an empty
// result means no placeholder was seen and the tree is unchanged.
func (t *Tracker) PopExprBoundary() []*ast.ValDef {
	n := len(t.exprStack)
	top := t.exprStack[n-1]
	t.exprStack = t.exprStack[:n-1]
	return top.params
}

// InExprBoundary reports whether at least one expression boundary is
// currently open, i.e. whether a bare `_` is legal at all.
func (t *Tracker) InExprBoundary() bool { return len(t.exprStack) > 0 }

// NextExprPlaceholder records one more `_` occurrence in the innermost
// open expression scope and returns the Ident that stands in for it.
func (t *Tracker) NextExprPlaceholder(pos token.Position) *ast.Ident {
	top := t.exprStack[len(t.exprStack)-1]
	name := string(t.fresh.FreshTermName("x"))
	top.params = append(top.params, &ast.ValDef{
		Base:     ast.Base{Pos: pos},
		Mods:     names.FlagParam | names.FlagSynthetic,
		Name:     name,
		TypeTree: ast.Empty,
		Rhs:      ast.Empty,
	})
	return &ast.Ident{Base: ast.Base{Pos: pos}, Name: name}
}

// PushTypeBoundary opens a new wildcard scope, entered when the parser
// starts parsing a type that could contain `_` existential shorthand,
// e.g. the argument list of a type application.
func (t *Tracker) PushTypeBoundary() {
	t.typeStack = append(t.typeStack, &typeFrame{})
}

// PopTypeBoundary closes the innermost wildcard scope and returns the
// synthetic abstract TypeDefs its `_` wildcards stand for; the caller
// wraps the parsed type in an ast.ExistentialTypeTree over them when
// non-empty.
func (t *Tracker) PopTypeBoundary() []*ast.TypeDef {
	n := len(t.typeStack)
	top := t.typeStack[n-1]
	t.typeStack = t.typeStack[:n-1]
	return top.params
}

func (t *Tracker) InTypeBoundary() bool { return len(t.typeStack) > 0 }

// NextTypePlaceholder records one more `_` wildcard and returns the
// Ident referencing the fresh existential type it stands for.
func (t *Tracker) NextTypePlaceholder(pos token.Position, bounds *ast.TypeBoundsTree) *ast.Ident {
	top := t.typeStack[len(t.typeStack)-1]
	name := string(t.fresh.FreshTypeName("_$"))
	if bounds == nil {
		bounds = &ast.TypeBoundsTree{Base: ast.Base{Pos: pos}, Lo: ast.Empty, Hi: ast.Empty}
	}
	top.params = append(top.params, &ast.TypeDef{
		Base:   ast.Base{Pos: pos},
		Mods:   names.FlagSynthetic,
		Name:   name,
		Bounds: bounds,
		Rhs:    ast.Empty,
	})
	return &ast.Ident{Base: ast.Base{Pos: pos}, Name: name}
}

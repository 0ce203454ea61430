package ast

import (
	"testing"

	"github.com/corelang/corelang/names"
	"github.com/corelang/corelang/token"
)

func TestMkWhileDesugarsToLabelDef(t *testing.T) {
	fresh := names.NewFreshNameSource()
	cond := &Ident{Name: "x"}
	body := &Ident{Name: "y"}
	tree := MkWhile(fresh, cond, body, token.Position{})

	label, ok := tree.(*LabelDef)
	if !ok {
		t.Fatalf("expected *LabelDef, got %T", tree)
	}
	ifExpr, ok := label.Rhs.(*If)
	if !ok {
		t.Fatalf("expected label body to be *If, got %T", label.Rhs)
	}
	if ifExpr.Cond != cond {
		t.Error("expected label's If to guard on the original condition")
	}
}

func TestMkAssignToApplyDesugarsToUpdate(t *testing.T) {
	lhs := &Apply{
		Fun:  &Ident{Name: "a"},
		Args: []Tree{&Literal{Kind: token.INT, Value: int64(0)}},
	}
	rhs := &Literal{Kind: token.INT, Value: int64(5)}
	tree := MkAssign(lhs, rhs, token.Position{})

	app, ok := tree.(*Apply)
	if !ok {
		t.Fatalf("expected *Apply, got %T", tree)
	}
	sel, ok := app.Fun.(*Select)
	if !ok || sel.Name != "update" {
		t.Fatalf("expected a.update(...) call, got %s", app.String())
	}
	if len(app.Args) != 2 {
		t.Fatalf("expected index + value args, got %d", len(app.Args))
	}
}

func TestMkAssignToPlainLhsIsAssign(t *testing.T) {
	lhs := &Ident{Name: "x"}
	rhs := &Literal{Kind: token.INT, Value: int64(1)}
	tree := MkAssign(lhs, rhs, token.Position{})
	if _, ok := tree.(*Assign); !ok {
		t.Fatalf("expected *Assign, got %T", tree)
	}
}

func TestMkPatDefsSimpleBinding(t *testing.T) {
	fresh := names.NewFreshNameSource()
	pat := &Ident{Name: "x"}
	rhs := &Literal{Kind: token.INT, Value: int64(1)}
	stats := MkPatDefs(fresh, 0, pat, rhs, []string{"x"}, token.Position{})
	if len(stats) != 1 {
		t.Fatalf("expected 1 statement for a simple binding, got %d", len(stats))
	}
	vd, ok := stats[0].(*ValDef)
	if !ok || vd.Name != "x" {
		t.Fatalf("expected val x = ..., got %v", stats[0])
	}
}

func TestMkPatDefsTupleSplicesProjections(t *testing.T) {
	fresh := names.NewFreshNameSource()
	pat := &Parens{Exprs: []Tree{&Ident{Name: "a"}, &Ident{Name: "b"}}}
	rhs := &Ident{Name: "p"}
	stats := MkPatDefs(fresh, 0, pat, rhs, []string{"a", "b"}, token.Position{})

	// one synthetic match-bound temp plus one projection per name
	if len(stats) != 3 {
		t.Fatalf("expected 3 spliced statements, got %d", len(stats))
	}
	names := []string{stats[1].(*ValDef).Name, stats[2].(*ValDef).Name}
	if names[0] != "a" || names[1] != "b" {
		t.Errorf("expected projections named a, b in order; got %v", names)
	}
}

func TestMkForYieldDesugarsToMap(t *testing.T) {
	fresh := names.NewFreshNameSource()
	gen := &Generator{Pat: &Ident{Name: "x"}, Rhs: &Ident{Name: "xs"}}
	body := &Ident{Name: "x"}
	tree := MkFor(fresh, []Enumerator{gen}, body, true, token.Position{})

	apply, ok := tree.(*Apply)
	if !ok {
		t.Fatalf("expected *Apply, got %T", tree)
	}
	sel, ok := apply.Fun.(*Select)
	if !ok || sel.Name != "map" {
		t.Fatalf("expected a map call, got %s", tree.String())
	}
}

func TestMkForWithoutYieldDesugarsToForeach(t *testing.T) {
	fresh := names.NewFreshNameSource()
	gen := &Generator{Pat: &Ident{Name: "x"}, Rhs: &Ident{Name: "xs"}}
	body := &Ident{Name: "x"}
	tree := MkFor(fresh, []Enumerator{gen}, body, false, token.Position{})

	apply, ok := tree.(*Apply)
	if !ok {
		t.Fatalf("expected *Apply, got %T", tree)
	}
	sel, ok := apply.Fun.(*Select)
	if !ok || sel.Name != "foreach" {
		t.Fatalf("expected a foreach call, got %s", tree.String())
	}
}

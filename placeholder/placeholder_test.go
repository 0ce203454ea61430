package placeholder

import (
	"testing"

	"github.com/corelang/corelang/names"
	"github.com/corelang/corelang/token"
)

func TestExprBoundaryAccumulatesParams(t *testing.T) {
	tr := New(names.NewFreshNameSource())
	tr.PushExprBoundary()
	if !tr.InExprBoundary() {
		t.Fatal("expected an open expression boundary")
	}
	p1 := tr.NextExprPlaceholder(dummyPos())
	p2 := tr.NextExprPlaceholder(dummyPos())
	if p1.Name == p2.Name {
		t.Fatalf("expected distinct synthetic names, got %q twice", p1.Name)
	}
	params := tr.PopExprBoundary()
	if len(params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(params))
	}
	if params[0].Name != p1.Name || params[1].Name != p2.Name {
		t.Fatalf("params out of order: %v", params)
	}
}

func TestNestedExprBoundariesAreIndependent(t *testing.T) {
	tr := New(names.NewFreshNameSource())
	tr.PushExprBoundary()
	tr.NextExprPlaceholder(dummyPos())
	tr.PushExprBoundary()
	tr.NextExprPlaceholder(dummyPos())
	inner := tr.PopExprBoundary()
	outer := tr.PopExprBoundary()
	if len(inner) != 1 || len(outer) != 1 {
		t.Fatalf("expected 1 param per boundary, got inner=%d outer=%d", len(inner), len(outer))
	}
}

func TestTypeBoundaryWildcards(t *testing.T) {
	tr := New(names.NewFreshNameSource())
	tr.PushTypeBoundary()
	if !tr.InTypeBoundary() {
		t.Fatal("expected an open type boundary")
	}
	tr.NextTypePlaceholder(dummyPos(), nil)
	params := tr.PopTypeBoundary()
	if len(params) != 1 {
		t.Fatalf("expected 1 synthetic type param, got %d", len(params))
	}
}

func dummyPos() token.Position {
	return token.Position{}
}

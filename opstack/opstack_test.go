package opstack

import (
	"testing"

	"github.com/corelang/corelang/ast"
	"github.com/corelang/corelang/token"
)

func ident(name string) ast.Tree {
	return &ast.Ident{Name: name}
}

func binOp(top OpInfo, rhs ast.Tree) ast.Tree {
	return &ast.Apply{
		Fun:  &ast.Select{Qualifier: top.Operand, Name: top.Op},
		Args: []ast.Tree{rhs},
	}
}

func TestLeftAssociativeSamePrecedence(t *testing.T) {
	// 1 + 2 + 3  =>  (1 + 2) + 3
	s := New(binOp)
	s.Push(ident("1"), "+", nil, token.Position{})
	s.Push(ident("2"), "+", nil, token.Position{})
	got := s.Finish(ident("3"))

	want := "1.+(2).+(3)"
	if got.String() != want {
		t.Fatalf("got %q, want %q", got.String(), want)
	}
}

func TestMultiplicationBindsTighterThanAddition(t *testing.T) {
	// 1 + 2 * 3  =>  1 + (2 * 3)
	s := New(binOp)
	s.Push(ident("1"), "+", nil, token.Position{})
	s.Push(ident("2"), "*", nil, token.Position{})
	got := s.Finish(ident("3"))

	want := "1.+(2.*(3))"
	if got.String() != want {
		t.Fatalf("got %q, want %q", got.String(), want)
	}
}

func TestRightAssociativeColonOperator(t *testing.T) {
	// a :: b :: c  =>  a :: (b :: c)
	s := New(binOp)
	s.Push(ident("a"), "::", nil, token.Position{})
	s.Push(ident("b"), "::", nil, token.Position{})
	got := s.Finish(ident("c"))

	want := "a.::(b.::(c))"
	if got.String() != want {
		t.Fatalf("got %q, want %q", got.String(), want)
	}
}

func TestAssocConflictReportedOnceOnMixedAssociativity(t *testing.T) {
	// "+:" is right-associative, "+" is not; both fall in the additive
	// precedence class, so combining them is a reported conflict.
	var conflicts int
	s := New(binOp).WithAssocConflictReporter(func(topOp, op string, pos token.Position) {
		conflicts++
	})
	s.Push(ident("1"), "+:", nil, token.Position{})
	s.Push(ident("2"), "+", nil, token.Position{})
	s.Finish(ident("3"))

	if conflicts != 1 {
		t.Fatalf("expected exactly 1 reported conflict, got %d", conflicts)
	}
}

func TestAlphanumericOperatorBindsTightest(t *testing.T) {
	// 1 + 2 max 3  =>  1 + (2 max 3)
	s := New(binOp)
	s.Push(ident("1"), "+", nil, token.Position{})
	s.Push(ident("2"), "max", nil, token.Position{})
	got := s.Finish(ident("3"))

	want := "1.+(2.max(3))"
	if got.String() != want {
		t.Fatalf("got %q, want %q", got.String(), want)
	}
}

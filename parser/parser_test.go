package parser

import (
	"testing"

	"github.com/corelang/corelang/ast"
	"github.com/corelang/corelang/names"
)

func parseExprString(t *testing.T, src string) string {
	t.Helper()
	p := New(src)
	tree := p.parseExpr()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parse %q: unexpected errors: %v", src, errs)
	}
	return tree.String()
}

func TestOperatorPrecedence(t *testing.T) {
	cases := []struct{ src, want string }{
		{"1 + 2 * 3", "1.+(2.*(3))"},
		{"1 + 2 + 3", "1.+(2).+(3)"},
		{"1 + 2 max 3", "1.+(2.max(3))"},
	}
	for _, c := range cases {
		if got := parseExprString(t, c.src); got != c.want {
			t.Errorf("parse(%q) = %q, want %q", c.src, got, c.want)
		}
	}
}

func TestRightAssociativeColonOperator(t *testing.T) {
	got := parseExprString(t, "a :: b :: Nil")
	want := "Nil.::(b).::(a)"
	if got != want {
		t.Errorf("parse(a :: b :: Nil) = %q, want %q", got, want)
	}
}

func TestMixedAssociativityReportsOneError(t *testing.T) {
	p := New("1 +: 2 + 3")
	p.parseExpr()
	errs := p.Errors()
	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 error, got %d: %v", len(errs), errs)
	}
	want := "left- and right-associative operators with same precedence may not be mixed"
	if errs[0].Message != want {
		t.Errorf("error message = %q, want %q", errs[0].Message, want)
	}
}

func TestUpperCaseTypedPatternVariableRejected(t *testing.T) {
	p := New("x match { case X: Int => x }")
	p.ParseStats()
	errs := p.Errors()
	if len(errs) == 0 {
		t.Fatal("expected an error for upper-case pattern variable")
	}
	want := "Pattern variables must start with a lower-case letter"
	found := false
	for _, e := range errs {
		if e.Message == want {
			found = true
		}
	}
	if !found {
		t.Errorf("expected error %q, got %v", want, errs)
	}
}

func TestNewWithoutExtendsParsesParent(t *testing.T) {
	got := parseExprString(t, "new Foo(1, 2)")
	want := "new Foo(1, 2) {}"
	if got != want {
		t.Errorf("parse(new Foo(1, 2)) = %q, want %q", got, want)
	}
}

func TestNewWithMultipleParents(t *testing.T) {
	got := parseExprString(t, "new A with B { def y = 2 }")
	want := "new A with B {def y = 2}"
	if got != want {
		t.Errorf("parse(new A with B {...}) = %q, want %q", got, want)
	}
}

func TestNewWithEarlyInitializers(t *testing.T) {
	p := New("new { val x = 1 } with A with B { def y = 2 }")
	tree := p.parseExpr()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	n, ok := tree.(*ast.New)
	if !ok {
		t.Fatalf("expected *ast.New, got %T", tree)
	}
	if len(n.Template.Early) != 1 {
		t.Fatalf("expected 1 early-initializer statement, got %d", len(n.Template.Early))
	}
	vd, ok := n.Template.Early[0].(*ast.ValDef)
	if !ok {
		t.Fatalf("expected *ast.ValDef, got %T", n.Template.Early[0])
	}
	if !vd.Mods.Has(names.FlagPresuper) {
		t.Error("expected early val to be flagged PRESUPER")
	}
	if len(n.Template.Parents) != 2 {
		t.Fatalf("expected 2 parents, got %d", len(n.Template.Parents))
	}
}

func TestNewBareBodyIsAnonymousTemplate(t *testing.T) {
	// No parent, no early defs and no `with` after `{...}`: the whole
	// `{...}` is an ordinary template body.
	p := New("new { def y = 2 }")
	tree := p.parseExpr()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	n, ok := tree.(*ast.New)
	if !ok {
		t.Fatalf("expected *ast.New, got %T", tree)
	}
	if len(n.Template.Early) != 0 {
		t.Errorf("expected no early-initializer statements, got %d", len(n.Template.Early))
	}
	if len(n.Template.Parents) != 1 || n.Template.Parents[0].String() != "AnyRef" {
		t.Errorf("expected the default AnyRef parent, got %v", n.Template.Parents)
	}
	if len(n.Template.Body) != 1 {
		t.Errorf("expected 1 body statement, got %d", len(n.Template.Body))
	}
}

func TestNamedArgumentInCallPosition(t *testing.T) {
	got := parseExprString(t, "f(x = 1, y)")
	want := "f(x = 1, y)"
	if got != want {
		t.Errorf("parse(f(x = 1, y)) = %q, want %q", got, want)
	}
}

func TestDoubleEqualsIsNotNamedArgument(t *testing.T) {
	got := parseExprString(t, "f(x == 1)")
	want := "f(x.==(1))"
	if got != want {
		t.Errorf("parse(f(x == 1)) = %q, want %q", got, want)
	}
}

func TestProcedureSyntaxDeprecationGatedOnFuture(t *testing.T) {
	src := "def f() { println(1) }"

	plain := New(src)
	plain.ParseStats()
	for _, e := range plain.Errors() {
		if e.Code == CodeDeprecated {
			t.Errorf("unexpected deprecation warning without WithFuture: %v", e)
		}
	}

	p := NewBuilder(nil).WithFuture(true).Build(src)
	p.ParseStats()
	found := false
	for _, e := range p.Errors() {
		if e.Code == CodeDeprecated {
			found = true
		}
	}
	if !found {
		t.Error("expected a deprecation warning for procedure syntax with WithFuture(true)")
	}
}

func TestPlaceholderBecomesFunction(t *testing.T) {
	p := New("_ + 1")
	tree := p.parseExpr()
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected errors: %v", p.Errors())
	}
	fn, ok := tree.(*ast.Function)
	if !ok {
		t.Fatalf("expected *ast.Function, got %T", tree)
	}
	if len(fn.Params) != 1 {
		t.Fatalf("expected 1 synthetic param, got %d", len(fn.Params))
	}
}

func TestValDefSimple(t *testing.T) {
	p := New("val x = 1")
	stats := p.ParseStats()
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected errors: %v", p.Errors())
	}
	if len(stats) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stats))
	}
}

func TestPatternValDefSplicesMultipleBindings(t *testing.T) {
	p := New("val (x, y) = p")
	stats := p.ParseStats()
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected errors: %v", p.Errors())
	}
	// one synthetic match-bound temp plus one projection per name
	if len(stats) != 3 {
		t.Fatalf("expected 3 spliced statements, got %d: %v", len(stats), stats)
	}
}

func TestForComprehensionDesugarsToMapWithFilter(t *testing.T) {
	got := parseExprString(t, "for (x <- xs if x > 0) yield x * 2")
	want := "xs.withFilter((x) => x.>(0)).map((x) => x.*(2))"
	if got != want {
		t.Errorf("for-comprehension = %q, want %q", got, want)
	}
}

func TestWhileDesugarsToLabelDef(t *testing.T) {
	p := New("while (x) y")
	tree := p.parseExpr()
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected errors: %v", p.Errors())
	}
	if _, ok := tree.(*ast.LabelDef); !ok {
		t.Fatalf("expected *ast.LabelDef, got %T", tree)
	}
	if tree.String() == "" {
		t.Fatal("expected non-empty label-def rendering")
	}
}

func TestIfElse(t *testing.T) {
	got := parseExprString(t, "if (x) 1 else 2")
	want := "if (x) 1 else 2"
	if got != want {
		t.Errorf("if/else = %q, want %q", got, want)
	}
}

func TestMatchExpression(t *testing.T) {
	got := parseExprString(t, "x match { case 1 => \"one\" case _ => \"other\" }")
	want := `x match {case 1 => {"one"} case _ => {"other"} }`
	if got != want {
		t.Errorf("match = %q, want %q", got, want)
	}
}

func TestLambdaParamsBacktrackToParenExpr(t *testing.T) {
	// (x) is not followed by `=>`, so it must backtrack to a plain
	// parenthesized expression rather than a nullary-ish lambda.
	got := parseExprString(t, "(x)")
	if got != "x" {
		t.Errorf("(x) = %q, want %q", got, "x")
	}
}

func TestLambdaParamsRecognized(t *testing.T) {
	got := parseExprString(t, "(x, y) => x + y")
	want := "(x, y) => x.+(y)"
	if got != want {
		t.Errorf("lambda = %q, want %q", got, want)
	}
}

func TestContextBoundSynthesizesEvidenceParam(t *testing.T) {
	p := New("class C[T: Ord](x: T)")
	stats := p.ParseStats()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(stats) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stats))
	}
	cd, ok := stats[0].(*ast.ClassDef)
	if !ok {
		t.Fatalf("expected *ast.ClassDef, got %T", stats[0])
	}
	paramLists := cd.Ctor.ParamLists
	if len(paramLists) != 2 {
		t.Fatalf("expected 2 parameter lists (value + evidence), got %d", len(paramLists))
	}
	evidence := paramLists[1]
	if len(evidence) != 1 {
		t.Fatalf("expected 1 evidence parameter, got %d", len(evidence))
	}
	if !evidence[0].Mods.Has(names.FlagImplicit) {
		t.Error("expected evidence parameter to be flagged implicit")
	}
	want := "Ord[T]"
	if got := evidence[0].TypeTree.String(); got != want {
		t.Errorf("evidence parameter type = %q, want %q", got, want)
	}
}

func TestClassDefWithExtends(t *testing.T) {
	p := New("class Point(x: Int, y: Int) extends AnyRef")
	stats := p.ParseStats()
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected errors: %v", p.Errors())
	}
	if len(stats) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stats))
	}
}

func TestImportSelectors(t *testing.T) {
	p := New("import scala.collection.{mutable, immutable => im}")
	stats := p.ParseStats()
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected errors: %v", p.Errors())
	}
	if len(stats) != 1 {
		t.Fatalf("expected 1 import statement, got %d", len(stats))
	}
}

func TestErrorRecoveryContinuesPastSyntaxError(t *testing.T) {
	p := New("val x = \nval y = 2")
	stats := p.ParseStats()
	if len(p.Errors()) == 0 {
		t.Fatal("expected at least one diagnostic")
	}
	if len(stats) < 1 {
		t.Fatal("expected recovery to continue parsing remaining statements")
	}
}

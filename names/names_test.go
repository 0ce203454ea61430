package names

import "testing"

func TestPrecedenceOfOrdering(t *testing.T) {
	cases := []struct{ lower, higher string }{
		{"|", "^"},
		{"^", "&"},
		{"==", "<"},
		{"<", "::"},
		{"::", "+"},
		{"+", "*"},
		{"*", "max"},
	}
	for _, c := range cases {
		if PrecedenceOf(c.lower) >= PrecedenceOf(c.higher) {
			t.Errorf("PrecedenceOf(%q) should be lower than PrecedenceOf(%q)", c.lower, c.higher)
		}
	}
}

func TestPrecedenceOfCompoundAssignment(t *testing.T) {
	if PrecedenceOf("+=") != PrecAssignment {
		t.Errorf("+= should bind at assignment precedence")
	}
}

func TestIsRightAssocColonSuffix(t *testing.T) {
	if !IsRightAssoc("::") {
		t.Error("operators ending in ':' should be right-associative")
	}
	if IsRightAssoc("+") {
		t.Error("+ should not be right-associative")
	}
}

func TestFreshNameSourceIsDeterministicAndUnique(t *testing.T) {
	fresh := NewFreshNameSource()
	a := fresh.FreshTermName("x")
	b := fresh.FreshTermName("x")
	if a == b {
		t.Errorf("expected distinct fresh names, got %q twice", a)
	}

	fresh2 := NewFreshNameSource()
	a2 := fresh2.FreshTermName("x")
	if string(a) != string(a2) {
		t.Errorf("expected deterministic naming from a fresh counter, got %q vs %q", a, a2)
	}
}

func TestIsVarPattern(t *testing.T) {
	if !IsVarPattern("x") {
		t.Error("lowercase identifier should be a variable pattern")
	}
	if IsVarPattern("X") {
		t.Error("uppercase identifier should not be a variable pattern (treated as a stable-id pattern)")
	}
}

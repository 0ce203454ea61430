package parser

import "testing"

// FuzzParse feeds arbitrary input through the full statement-sequence
// entry point. The parser is tolerant by default, so the only failure
// mode worth catching here is a panic or an infinite loop, never a
// reported diagnostic.
func FuzzParse(f *testing.F) {
	seeds := []string{
		"val x = 5",
		"def add(a: Int, b: Int) = a + b",
		"class Point(x: Int, y: Int) extends AnyRef",
		"x match { case 1 => \"one\" case _ => \"other\" }",
		"for (n <- numbers if n > 1) yield n * n",
		"(x, y) => x + y",
		"import scala.collection.{mutable, immutable => im}",
		"",
		"(",
		"val x = \nval y = 2",
		"class Tree[A]",
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, input string) {
		p := New(input)
		p.ParseStats()
	})
}

// Package corelang provides a lexer and recursive-descent parser for a
// small Scala-like object-functional core language: pattern matching,
// for-comprehensions, placeholder lambdas, and spelling-derived
// operator precedence, desugared to a compact AST as they parse.
//
// Example usage:
//
//	package main
//
//	import (
//		"fmt"
//		"github.com/corelang/corelang"
//	)
//
//	func main() {
//		stats, errs := corelang.ParseStats("val x = 1 + 2 * 3")
//		if len(errs) > 0 {
//			fmt.Println(errs)
//			return
//		}
//		for _, s := range stats {
//			fmt.Println(s.String())
//		}
//	}
package corelang

import (
	"github.com/corelang/corelang/ast"
	"github.com/corelang/corelang/parser"
)

// Parse lexes and parses a single compilation unit, returning either a
// package declaration or a top-level block of statements.
func Parse(input string) (ast.Tree, []parser.ParserError) {
	p := parser.New(input)
	tree := p.ParseStatsOrPackages()
	return tree, p.Errors()
}

// ParseStats lexes and parses input as a bare statement sequence,
// without package-clause handling — the shape a REPL or a fragment
// evaluator wants.
func ParseStats(input string) ([]ast.Tree, []parser.ParserError) {
	p := parser.New(input)
	stats := p.ParseStats()
	return stats, p.Errors()
}

// Version is the current version of corelang.
const Version = "0.1.0"

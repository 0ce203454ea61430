// Package debug provides formatted inspection helpers for AST trees,
// used by tests and the corelc CLI's -dump flag.
package debug

import (
	"github.com/corelang/corelang/ast"
	"github.com/davecgh/go-spew/spew"
)

var cfg = &spew.ConfigState{
	Indent:                  "   ",
	DisableMethods:          true,
	DisablePointerAddresses: true,
	ContinueOnMethod:        false,
}

// ToString renders a tree the way its own String() method spells it.
func ToString(node ast.Tree) string {
	return node.String()
}

// Print dumps a tree's full struct shape, field by field, for debugging
// a parse result that doesn't render the way you expect.
func Print(node ast.Tree) {
	cfg.Dump(node)
}

// Sdump is the non-printing form of Print, for assembling diagnostics.
func Sdump(node ast.Tree) string {
	return cfg.Sdump(node)
}

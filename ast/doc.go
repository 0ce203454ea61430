/*
Package ast defines the Abstract Syntax Tree nodes the parser core
builds and the desugaring helpers that construct canonical shapes for
pattern definitions, for-comprehensions, loops, assignments, and
templates.

Unlike a statement/expression split, the Language's tree is a single
sum type: a ValDef can appear as a template member or as a for-loop
enumerator's left side, a Block can hold any Tree as a statement. Every
concrete node here implements Tree.

All node constructors are plain struct literals; the desugaring
helpers (MkFor, MkNew, MkAssign, ...) live in builders.go and are the
only place construction logic beyond "fill in the fields" belongs.
*/
package ast

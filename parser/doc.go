/*
Package parser implements the recursive-descent core: single-token
lookahead with one token of pushback, speculative backtracking via the
lexer's snapshot/restore, and the operator-precedence engine in
opstack for infix expressions. Infix-operator patterns are not
parsed, and infix types are folded left to right without precedence.

Parse produces a Tree (usually a *ast.PackageDef or *ast.Block of
top-level statements) plus whatever syntax errors were collected along
the way; the parser never panics on malformed input. ErrorSink
accumulates ParserErrors and the parser does its best to keep going
past one, tolerant by default.
*/
package parser

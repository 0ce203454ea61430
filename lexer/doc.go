/*
Package lexer implements the scanner the parser core drives: a single
current token plus the snapshot/restore pair the parser uses to back
out of a speculative parse, per spec.md §4.1.

The scanner classifies operator identifiers by spelling alone, the way
the rest of the core derives precedence and associativity: any run of
ASCII operator punctuation or Unicode Sm/So symbol characters is one
operator token, regardless of what it happens to spell.

Newline-insertion heuristics proper are out of scope (spec.md §1 treats
them as an external collaborator's concern); the scanner here applies
the pragmatic subset needed to make NEWLINE/NEWLINES/SEMI observable
for testing: a line break while no parenthesis or square bracket is
open is reported as a statement separator, whatever token precedes
it. Open braces do not suppress it.
*/
package lexer

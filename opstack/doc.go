/*
Package opstack implements the precedence-climbing stack used for infix
expressions (spec.md §4.2, §4.6). Only expression parsing uses it: the
parser has no infix-operator patterns, and infix types are folded left
to right with no precedence levels.

An operator's binding power comes purely from its spelling (see the
names package); the reduction engine is parameterized by a Reducer
callback that turns (lhs, op, rhs) into a tree.
*/
package opstack

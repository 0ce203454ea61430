/*
Package token defines the token kinds and position types shared by the
lexer and the parser core.

The Language's grammar is ambiguous at the token level, so the parser
leans on more than a bare kind: a Token also carries whatever payload
the scanner recognized (an interned Name, a literal value, an Offset)
plus the flags the parser needs to disambiguate backquoted identifiers
and string-interpolation parts.

Position and Range carry source coordinates. Positions are offsets
plus a derived line/column pair; the core never needs more than that
(spec Non-goals exclude IDE-grade ranges).
*/
package token

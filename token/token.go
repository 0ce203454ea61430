// Package token defines the token kinds and position types used by the
// lexer and parser core.
package token

import "fmt"

// Type identifies the lexical category of a Token.
type Type int

const (
	ILLEGAL Type = iota
	EOF

	// identifiers and literals
	IDENT            // regular identifier
	BACKQUOTED_IDENT // `an identifier`
	INT
	LONG
	FLOAT
	DOUBLE
	CHAR
	STRING
	STRING_PART      // one segment of an interpolated string
	INTERPOLATION_ID // the id$ prefix of an interpolated string
	SYMBOL           // 'symbol
	TRUE
	FALSE
	NULL

	// statement separators
	NEWLINE
	NEWLINES
	SEMI

	// punctuation
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	COMMA
	DOT
	COLON
	EQUALS
	ARROW     // =>
	LARROW    // <-
	SUBTYPE   // <:
	SUPERTYPE // >:
	VIEWBOUND // <%
	HASH      // #
	AT        // @
	USCORE    // _
	STAR      // *
	PIPE      // |

	// keywords
	IF
	ELSE
	WHILE
	DO
	FOR
	YIELD
	TRY
	CATCH
	FINALLY
	THROW
	RETURN
	NEW
	MATCH
	CASE
	THIS
	SUPER
	IMPORT
	PACKAGE
	OBJECT
	CLASS
	TRAIT
	VAL
	VAR
	DEF
	TYPE
	EXTENDS
	IMPLICIT
	LAZY
	ABSTRACT
	FINAL
	SEALED
	PRIVATE
	PROTECTED
	OVERRIDE
	WITH
	FORSOME
	MACRO

	// markup literal hand-off; the scanner never produces this token
	// and no parser production consumes it
	XMLSTART
)

var typeNames = map[Type]string{
	ILLEGAL: "ILLEGAL", EOF: "EOF",
	IDENT: "IDENT", BACKQUOTED_IDENT: "BACKQUOTED_IDENT",
	INT: "INT", LONG: "LONG", FLOAT: "FLOAT", DOUBLE: "DOUBLE", CHAR: "CHAR",
	STRING: "STRING", STRING_PART: "STRING_PART", INTERPOLATION_ID: "INTERPOLATION_ID",
	SYMBOL: "SYMBOL", TRUE: "TRUE", FALSE: "FALSE", NULL: "NULL",
	NEWLINE: "NEWLINE", NEWLINES: "NEWLINES", SEMI: "SEMI",
	LPAREN: "LPAREN", RPAREN: "RPAREN", LBRACE: "LBRACE", RBRACE: "RBRACE",
	LBRACKET: "LBRACKET", RBRACKET: "RBRACKET", COMMA: "COMMA", DOT: "DOT",
	COLON: "COLON", EQUALS: "EQUALS", ARROW: "ARROW", LARROW: "LARROW",
	SUBTYPE: "SUBTYPE", SUPERTYPE: "SUPERTYPE", VIEWBOUND: "VIEWBOUND",
	HASH: "HASH", AT: "AT", USCORE: "USCORE", STAR: "STAR", PIPE: "PIPE",
	IF: "IF", ELSE: "ELSE", WHILE: "WHILE", DO: "DO", FOR: "FOR", YIELD: "YIELD",
	TRY: "TRY", CATCH: "CATCH", FINALLY: "FINALLY", THROW: "THROW", RETURN: "RETURN",
	NEW: "NEW", MATCH: "MATCH", CASE: "CASE", THIS: "THIS", SUPER: "SUPER",
	IMPORT: "IMPORT", PACKAGE: "PACKAGE", OBJECT: "OBJECT", CLASS: "CLASS",
	TRAIT: "TRAIT", VAL: "VAL", VAR: "VAR", DEF: "DEF", TYPE: "TYPE",
	EXTENDS: "EXTENDS", IMPLICIT: "IMPLICIT", LAZY: "LAZY", ABSTRACT: "ABSTRACT",
	FINAL: "FINAL", SEALED: "SEALED", PRIVATE: "PRIVATE", PROTECTED: "PROTECTED",
	OVERRIDE: "OVERRIDE", WITH: "WITH", FORSOME: "FORSOME", MACRO: "MACRO",
	XMLSTART: "XMLSTART",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "UNKNOWN"
}

// Keywords maps reserved words to their token type. LookupIdent consults
// this to distinguish a keyword from a plain identifier.
var Keywords = map[string]Type{
	"if": IF, "else": ELSE, "while": WHILE, "do": DO, "for": FOR, "yield": YIELD,
	"try": TRY, "catch": CATCH, "finally": FINALLY, "throw": THROW, "return": RETURN,
	"new": NEW, "match": MATCH, "case": CASE, "this": THIS, "super": SUPER,
	"import": IMPORT, "package": PACKAGE, "object": OBJECT, "class": CLASS,
	"trait": TRAIT, "val": VAL, "var": VAR, "def": DEF, "type": TYPE,
	"extends": EXTENDS, "implicit": IMPLICIT, "lazy": LAZY, "abstract": ABSTRACT,
	"final": FINAL, "sealed": SEALED, "private": PRIVATE, "protected": PROTECTED,
	"override": OVERRIDE, "with": WITH, "forSome": FORSOME, "macro": MACRO,
	"true": TRUE, "false": FALSE, "null": NULL,
}

// LookupIdent reports whether ident is a reserved keyword, returning IDENT
// otherwise.
func LookupIdent(ident string) Type {
	if t, ok := Keywords[ident]; ok {
		return t
	}
	return IDENT
}

// Position is a source location: a byte offset plus the derived line and
// column it falls on. Offsets are authoritative; Line/Column are a
// convenience the scanner fills in as it advances.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Range spans from Start to End.
type Range struct {
	Start Position
	End   Position
}

// Token is one lexical unit. Name carries the payload for identifiers and
// operators; literal values are carried in the typed *Val fields so the
// parser never has to re-parse a literal's text.
type Token struct {
	Type Type
	Name string // identifier/operator spelling, keyword literal, raw literal text
	Pos  Position

	IntVal   int64
	FloatVal float64

	Backquoted bool // Name was written `like this`
	// InterpPart marks STRING_PART tokens that sit between two
	// interpolation splices, e.g. the "b" in s"a${x}b${y}c".
	InterpPart bool
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Type, t.Name, t.Pos)
}

// IsStatSep reports whether t can separate two statements.
func (t Token) IsStatSep() bool {
	return t.Type == NEWLINE || t.Type == NEWLINES || t.Type == SEMI
}

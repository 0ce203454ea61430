package parser

import (
	"github.com/corelang/corelang/ast"
	"github.com/corelang/corelang/lexer"
	"github.com/corelang/corelang/names"
	"github.com/corelang/corelang/placeholder"
	"github.com/corelang/corelang/token"
	"github.com/sirupsen/logrus"
)

// Parser is the recursive-descent core. It holds a single current
// token (cur) and at most one token of pushback (peek), the lookahead
// budget spec.md §4.1 allows; anything needing more works by
// snapshotting the lexer and backtracking if the speculative parse
// doesn't pan out.
type Parser struct {
	lex *lexer.Lexer

	cur     token.Token
	peek    token.Token
	hasPeek bool

	errs  ErrorSink
	fresh *names.FreshNameSource
	ph    *placeholder.Tracker

	contextStack []ContextType

	// assumedClosingParens is not read or updated by any production:
	// expect reports a missing closing delimiter and assumes it
	// without counting it, and a later genuine closer is not treated
	// specially.
	assumedClosingParens int

	future      bool
	methodInfer bool
	virtClasses bool
	tolerant    bool
	tracer      logrus.FieldLogger
}

// trace emits one Debug-level entry for a production entered, when a
// trace logger was attached via Builder.WithTraceLogger. A nil tracer
// (the default) makes this a single-branch no-op.
func (p *Parser) trace(production string) {
	if p.tracer == nil {
		return
	}
	p.tracer.WithFields(logrus.Fields{
		"production": production,
		"token":      p.cur.Type.String(),
		"offset":     p.cur.Pos.Offset,
	}).Debug("parser: entering production")
}

// New builds a Parser with default options.
func New(input string) *Parser {
	return NewBuilder(nil).Build(input)
}

func (p *Parser) Errors() []ParserError { return p.errs.Errors() }

// Parse parses a full compilation unit: an optional sequence of
// package clauses followed by top-level statements, per spec.md §3.
func (p *Parser) Parse() ast.Tree {
	return p.parseTopLevel()
}

// ParseStats parses input as a bare sequence of statements (a script
// or a REPL-style fragment), without requiring package/object
// wrapping.
func (p *Parser) ParseStats() []ast.Tree {
	return p.parseStatSeq(token.EOF)
}

// ParseStatsOrPackages parses either a sequence of package clauses or
// a bare statement sequence, whichever the input starts with.
func (p *Parser) ParseStatsOrPackages() ast.Tree {
	return p.parseTopLevel()
}

// ---- token stream ----

func (p *Parser) rawNext() token.Token {
	return p.lex.NextToken()
}

func (p *Parser) advance() {
	if p.hasPeek {
		p.cur = p.peek
		p.hasPeek = false
		return
	}
	p.cur = p.rawNext()
}

func (p *Parser) peekTok() token.Token {
	if !p.hasPeek {
		p.peek = p.rawNext()
		p.hasPeek = true
	}
	return p.peek
}

// skipSeparators consumes any run of NEWLINE/NEWLINES/SEMI tokens,
// used at points the grammar allows (but does not require) a
// statement separator, e.g. just inside `{`.
func (p *Parser) skipSeparators() {
	for p.cur.IsStatSep() {
		p.advance()
	}
}

// skipNewlines consumes NEWLINE/NEWLINES only, used mid-expression
// after a token that cannot end a statement (an infix operator, `(`,
// `=>`, ...), where a following line break is never significant.
func (p *Parser) skipNewlines() {
	for p.cur.Type == token.NEWLINE || p.cur.Type == token.NEWLINES {
		p.advance()
	}
}

func (p *Parser) at(t token.Type) bool { return p.cur.Type == t }

// accept consumes and returns true if the current token has type t,
// otherwise leaves the stream untouched and returns false.
func (p *Parser) accept(t token.Type) bool {
	if p.cur.Type == t {
		p.advance()
		return true
	}
	return false
}

// expect consumes a token of type t, reporting a syntax error (and
// assuming the token was there) if it wasn't.
func (p *Parser) expect(t token.Type, what string) token.Token {
	if p.cur.Type == t {
		tok := p.cur
		p.advance()
		return tok
	}
	p.syntaxError("expected "+what+", found "+p.cur.Type.String())
	return token.Token{Type: t, Pos: p.cur.Pos}
}

func (p *Parser) syntaxError(msg string) {
	p.addError(msg, CodeSyntaxError)
}

func (p *Parser) addError(msg string, code string) {
	if p.cur.Type == token.EOF {
		code = CodeIncomplete
	}
	p.errs.Add(ParserError{
		Message: msg,
		Range:   token.Range{Start: p.cur.Pos, End: p.cur.Pos},
		Code:    code,
	})
}

// addErrorAt reports a diagnostic anchored to pos rather than the
// current token, for violations noticed after the parser has already
// moved past the token they concern (e.g. an associativity conflict,
// only apparent once the next operator has been read).
func (p *Parser) addErrorAt(pos token.Position, msg string, code string) {
	p.errs.Add(ParserError{
		Message: msg,
		Range:   token.Range{Start: pos, End: pos},
		Code:    code,
	})
}

// deprecationWarning reports use of a legacy construct (procedure
// syntax, view bounds, `val` in a for-comprehension generator) the
// spec keeps accepting for compatibility. Only surfaced when the
// future toggle is on (Builder.WithFuture), per spec.md §6.
func (p *Parser) deprecationWarning(pos token.Position, msg string) {
	if !p.future {
		return
	}
	p.addErrorAt(pos, msg, CodeDeprecated)
}

// recoverToSeparator advances past tokens until a statement separator,
// a closing brace, or EOF. No production calls it; parseStatSeq
// instead skips one token when a statement consumed nothing.
func (p *Parser) recoverToSeparator() {
	for !p.cur.IsStatSep() && p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
		p.advance()
	}
}

package lexer

import (
	"unicode"
	"unicode/utf8"

	"github.com/corelang/corelang/token"
)

// Interceptor lets a caller observe or rewrite tokens as they come off
// the base scanner, operating on the richer token.Token shape this
// core's Token carries.
type Interceptor func(l *Lexer, next func() token.Token) token.Token

// Builder configures a Lexer before construction, the same fluent
// shape the parser.Builder uses.
type Builder struct {
	interceptors []Interceptor
}

func NewBuilder() *Builder { return &Builder{} }

// UseTokenInterceptor appends a middleware to the scan pipeline. The
// first interceptor added sits closest to the raw scanner; each later
// one wraps those added before it.
func (lb *Builder) UseTokenInterceptor(ic Interceptor) *Builder {
	lb.interceptors = append(lb.interceptors, ic)
	return lb
}

func (lb *Builder) Build(input string) *Lexer {
	return newWithOptions(input, lb.interceptors...)
}

// State is an opaque snapshot of scan position, returned by Snapshot
// and consumed by Restore. The parser uses this pair to back out of a
// speculative parse that turned out not to match, per spec.md §4.1.
type State struct {
	offset       int
	rdOffset     int
	line         int
	column       int
	ch           rune
	chWidth      int
	parenBalance int
	afterNewline bool
}

// Lexer scans one Language source file into a stream of tokens.
type Lexer struct {
	input string

	ch       rune
	chWidth  int
	offset   int // byte offset of ch
	rdOffset int // byte offset of the rune after ch
	line     int
	column   int

	// parenBalance counts unmatched ( and [ : a newline inside a
	// parenthesized/bracketed expression never separates statements.
	parenBalance int

	// afterNewline is set once skipWhitespace has crossed at least one
	// line break since the last token, and cleared when a token is
	// emitted; baseNextToken consults it to decide whether to report a
	// NEWLINE/NEWLINES token ahead of the next real token.
	afterNewline bool
	blankLines   bool

	nextToken func(l *Lexer) token.Token
}

func New(input string) *Lexer { return newWithOptions(input) }

func newWithOptions(input string, interceptors ...Interceptor) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.nextToken = baseNextToken
	for _, ic := range interceptors {
		l.installInterceptor(ic)
	}
	l.readRune()
	return l
}

func (l *Lexer) installInterceptor(ic Interceptor) {
	next := l.nextToken
	l.nextToken = func(lx *Lexer) token.Token {
		return ic(lx, func() token.Token { return next(lx) })
	}
}

// NextToken scans and returns the next token.
func (l *Lexer) NextToken() token.Token {
	return l.nextToken(l)
}

// Snapshot captures the scanner's current position so it can later be
// restored by Restore, for speculative lookahead that may fail.
func (l *Lexer) Snapshot() State {
	return State{
		offset: l.offset, rdOffset: l.rdOffset, line: l.line, column: l.column,
		ch: l.ch, chWidth: l.chWidth, parenBalance: l.parenBalance, afterNewline: l.afterNewline,
	}
}

// Restore rewinds the scanner to a previously captured State.
func (l *Lexer) Restore(s State) {
	l.offset, l.rdOffset, l.line, l.column = s.offset, s.rdOffset, s.line, s.column
	l.ch, l.chWidth, l.parenBalance, l.afterNewline = s.ch, s.chWidth, s.parenBalance, s.afterNewline
}

func (l *Lexer) pos() token.Position {
	return token.Position{Offset: l.offset, Line: l.line, Column: l.column}
}

// readRune advances ch to the rune starting at rdOffset.
func (l *Lexer) readRune() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.rdOffset >= len(l.input) {
		l.offset = len(l.input)
		l.ch = 0
		l.chWidth = 0
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.rdOffset:])
	l.offset = l.rdOffset
	l.rdOffset += w
	l.ch = r
	l.chWidth = w
	l.column++
}

func (l *Lexer) peekRune() rune {
	if l.rdOffset >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.rdOffset:])
	return r
}

func (l *Lexer) peekAt(offset int) rune {
	if offset >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[offset:])
	return r
}

// skipWhitespace consumes spaces, tabs, comments, and line breaks,
// tracking whether at least one (afterNewline) or at least two
// (blankLines) line breaks were crossed, and whether parenBalance
// permits that newline to matter at all.
func (l *Lexer) skipWhitespace() {
	l.afterNewline = false
	l.blankLines = false
	newlines := 0
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r':
			l.readRune()
		case l.ch == '\n':
			newlines++
			l.readRune()
		case l.ch == '/' && l.peekRune() == '/':
			l.skipLineComment()
		case l.ch == '/' && l.peekRune() == '*':
			l.skipBlockComment()
		default:
			if newlines > 0 && l.parenBalance == 0 {
				l.afterNewline = true
				l.blankLines = newlines > 1
			}
			return
		}
	}
}

func (l *Lexer) skipLineComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readRune()
	}
}

func (l *Lexer) skipBlockComment() {
	l.readRune() // consume '/'
	l.readRune() // consume '*'
	depth := 1
	for depth > 0 && l.ch != 0 {
		if l.ch == '/' && l.peekRune() == '*' {
			l.readRune()
			l.readRune()
			depth++
			continue
		}
		if l.ch == '*' && l.peekRune() == '/' {
			l.readRune()
			l.readRune()
			depth--
			continue
		}
		l.readRune()
	}
}

func isLetterStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isLetterStart(r) || unicode.IsDigit(r)
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

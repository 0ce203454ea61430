package parser

import (
	"github.com/corelang/corelang/lexer"
	"github.com/corelang/corelang/names"
	"github.com/corelang/corelang/placeholder"
	"github.com/sirupsen/logrus"
)

// Builder configures a Parser before construction, the same fluent
// shape the lexer.Builder uses. Of its toggles only future changes
// what the parser reports; methodInfer, virtClasses and tolerant are
// copied onto the Parser, but no production reads them.
type Builder struct {
	lexerBuilder *lexer.Builder
	future       bool // report deprecation warnings (CodeDeprecated)
	methodInfer  bool // stored only; does not change parsing
	virtClasses  bool // stored only; does not change parsing
	tolerant     bool // stored only; parsing always continues past a syntax error
	tracer       logrus.FieldLogger
}

func NewBuilder(lb *lexer.Builder) *Builder {
	if lb == nil {
		lb = lexer.NewBuilder()
	}
	return &Builder{lexerBuilder: lb, tolerant: true}
}

func (b *Builder) WithFuture(v bool) *Builder       { b.future = v; return b }
func (b *Builder) WithMethodInfer(v bool) *Builder   { b.methodInfer = v; return b }
func (b *Builder) WithVirtualClasses(v bool) *Builder { b.virtClasses = v; return b }
func (b *Builder) WithTolerantMode(v bool) *Builder  { b.tolerant = v; return b }

// WithTraceLogger attaches a structured logger that receives one Debug
// entry (grammar rule name, token, offset) each time one of the traced
// productions is entered: top level, statement, expression, pattern
// and type. A nil logger (the default) disables tracing with no
// overhead beyond a nil check.
func (b *Builder) WithTraceLogger(l logrus.FieldLogger) *Builder { b.tracer = l; return b }

func (b *Builder) Build(input string) *Parser {
	lx := b.lexerBuilder.Build(input)
	p := &Parser{
		lex:         lx,
		errs:        NewCollectingSink(),
		fresh:       names.NewFreshNameSource(),
		ph:          nil,
		future:      b.future,
		methodInfer: b.methodInfer,
		virtClasses: b.virtClasses,
		tolerant:    b.tolerant,
		tracer:      b.tracer,
	}
	p.ph = placeholder.New(p.fresh)
	p.advance()
	return p
}

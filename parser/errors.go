package parser

import "github.com/corelang/corelang/token"

// ParserError is one diagnostic: a message, the source range it
// concerns, and a stable code a caller can switch on without matching
// message text.
type ParserError struct {
	Message string
	Range   token.Range
	Code    string
}

func (e ParserError) String() string {
	return e.Range.Start.String() + ": " + e.Message
}

// Diagnostic codes. Kept stable so callers (e.g. an editor
// integration) can distinguish "recovered from a syntax error" from
// "input ended mid-construct" without parsing Message text.
const (
	CodeSyntaxError  = "syntax-error"
	CodeIncomplete   = "incomplete-input"
	CodeDeprecated   = "deprecation-warning"
	CodeSemanticPre  = "semantic-pre-check"
)

// ErrorSink collects diagnostics as the parser encounters them.
type ErrorSink interface {
	Add(err ParserError)
	Errors() []ParserError
}

// CollectingSink is the default ErrorSink: it appends every error,
// dropping any whose offset doesn't advance past the last reported
// one so the report stream stays monotonically non-decreasing and one
// bad token doesn't produce a cascade of identical complaints.
type CollectingSink struct {
	errs           []ParserError
	lastOffset     int
	haveLastOffset bool
}

func NewCollectingSink() *CollectingSink { return &CollectingSink{} }

func (s *CollectingSink) Add(err ParserError) {
	if s.haveLastOffset && err.Range.Start.Offset <= s.lastOffset {
		return
	}
	s.lastOffset = err.Range.Start.Offset
	s.haveLastOffset = true
	s.errs = append(s.errs, err)
}

func (s *CollectingSink) Errors() []ParserError { return s.errs }

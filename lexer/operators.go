package lexer

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// asciiOperatorChars are the ASCII punctuation runes that may appear
// in an operator spelling, beyond the symbol characters Unicode
// already classifies as Sm/So.
const asciiOperatorChars = "!#%&*+-/:<=>?@\\^|~"

// operatorSymbols merges the Unicode "Math Symbol" and "Other Symbol"
// categories, the classes a Language operator identifier may draw its
// non-ASCII characters from (spec.md §4.2's "operator character"
// notion generalizes beyond ASCII punctuation).
var operatorSymbols = rangetable.Merge(unicode.Sm, unicode.So)

func isOperatorChar(r rune) bool {
	if strings.ContainsRune(asciiOperatorChars, r) {
		return true
	}
	return unicode.Is(operatorSymbols, r)
}

// readOperator consumes a maximal run of operator characters starting
// at the current rune and returns its spelling.
func (l *Lexer) readOperator() string {
	var sb strings.Builder
	for isOperatorChar(l.ch) {
		sb.WriteRune(l.ch)
		l.readRune()
	}
	return sb.String()
}

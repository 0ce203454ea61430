package parser

import (
	"github.com/corelang/corelang/ast"
	"github.com/corelang/corelang/names"
	"github.com/corelang/corelang/token"
)

// parsePattern parses a full pattern, including top-level alternatives
// joined by `|`.
func (p *Parser) parsePattern() ast.Tree {
	p.trace("pattern")
	pat := p.parsePattern1()
	if p.cur.Type != token.PIPE {
		return pat
	}
	alts := []ast.Tree{pat}
	for p.accept(token.PIPE) {
		p.skipNewlines()
		alts = append(alts, p.parsePattern1())
	}
	return &ast.Alternative{Base: ast.Base{Pos: pat.Position()}, Alts: alts}
}

// parsePattern1 handles a type ascription `varid: Type` or `_: Type`.
// The ascribed variable must start with a lower-case letter (or be the
// wildcard); an upper-case identifier is rejected, since it would
// otherwise be mistaken for a stable identifier pattern.
func (p *Parser) parsePattern1() ast.Tree {
	pat := p.parsePattern2()
	if p.cur.Type != token.COLON {
		return pat
	}
	if id, ok := pat.(*ast.Ident); ok && !names.IsVarPattern(id.Name) {
		p.syntaxError("Pattern variables must start with a lower-case letter")
	}
	pos := p.cur.Pos
	p.advance()
	typ := p.parseType()
	return &ast.Typed{Base: ast.Base{Pos: pos}, Expr: pat, Type: typ}
}

// parsePattern2 handles a binding `name @ pattern`.
func (p *Parser) parsePattern2() ast.Tree {
	pat := p.parsePattern3()
	id, ok := pat.(*ast.Ident)
	if !ok || !names.IsVarPattern(id.Name) || p.cur.Type != token.AT {
		return pat
	}
	pos := p.cur.Pos
	p.advance()
	body := p.parsePattern3()
	return &ast.Bind{Base: ast.Base{Pos: pos}, Name: id.Name, Body: body}
}

// parsePattern3 parses a primary pattern: a wildcard (optionally
// followed by `*` for a repeated-argument pattern), a parenthesized or
// tuple pattern, a literal, or a bare/extractor identifier pattern.
func (p *Parser) parsePattern3() ast.Tree {
	pos := p.cur.Pos
	switch p.cur.Type {
	case token.USCORE:
		p.advance()
		if p.cur.Type == token.STAR {
			p.advance()
			return &ast.Star{
				Base: ast.Base{Pos: pos},
				Elem: &ast.Ident{Base: ast.Base{Pos: pos}, Name: string(names.Wildcard)},
			}
		}
		return &ast.Ident{Base: ast.Base{Pos: pos}, Name: string(names.Wildcard)}
	case token.LPAREN:
		p.advance()
		p.skipNewlines()
		if p.cur.Type == token.RPAREN {
			p.advance()
			return &ast.Literal{Base: ast.Base{Pos: pos}, Kind: token.NULL, Value: nil}
		}
		pats := []ast.Tree{p.parsePattern()}
		p.skipNewlines()
		for p.accept(token.COMMA) {
			p.skipNewlines()
			pats = append(pats, p.parsePattern())
			p.skipNewlines()
		}
		p.expect(token.RPAREN, "')'")
		if len(pats) == 1 {
			return pats[0]
		}
		return &ast.Parens{Base: ast.Base{Pos: pos}, Exprs: pats}
	case token.IDENT, token.BACKQUOTED_IDENT:
		name := p.cur.Name
		p.advance()
		id := ast.Tree(&ast.Ident{Base: ast.Base{Pos: pos}, Name: name})
		for p.cur.Type == token.DOT {
			p.advance()
			sel := p.identName()
			id = &ast.Select{Base: ast.Base{Pos: pos}, Qualifier: id, Name: sel}
		}
		if p.cur.Type == token.LPAREN {
			args := p.parsePatternArgs()
			return &ast.Apply{Base: ast.Base{Pos: pos}, Fun: id, Args: args}
		}
		return id
	case token.INT, token.LONG, token.FLOAT, token.DOUBLE, token.CHAR, token.STRING,
		token.TRUE, token.FALSE, token.NULL, token.SYMBOL:
		return p.parseLiteral()
	default:
		p.syntaxError("illegal start of pattern")
		p.advance()
		return &ast.Ident{Base: ast.Base{Pos: pos}, Name: string(names.ErrorName)}
	}
}

func (p *Parser) parsePatternArgs() []ast.Tree {
	p.expect(token.LPAREN, "'('")
	p.skipNewlines()
	var args []ast.Tree
	if p.cur.Type != token.RPAREN {
		args = append(args, p.parsePattern())
		p.skipNewlines()
		for p.accept(token.COMMA) {
			p.skipNewlines()
			args = append(args, p.parsePattern())
			p.skipNewlines()
		}
	}
	p.expect(token.RPAREN, "')'")
	return args
}

// patternBoundNames collects the variable names a pattern binds, in
// left-to-right order, for MkPatDefs to project out of a matched
// scrutinee in a `val pat = rhs` definition.
func patternBoundNames(pat ast.Tree) []string {
	var found []string
	var walk func(t ast.Tree)
	walk = func(t ast.Tree) {
		switch n := t.(type) {
		case *ast.Ident:
			if n.Name != string(names.Wildcard) && names.IsVarPattern(n.Name) {
				found = append(found, n.Name)
			}
		case *ast.Bind:
			found = append(found, n.Name)
			walk(n.Body)
		case *ast.Typed:
			walk(n.Expr)
		case *ast.Apply:
			for _, a := range n.Args {
				walk(a)
			}
		case *ast.Parens:
			for _, e := range n.Exprs {
				walk(e)
			}
		case *ast.Star:
			walk(n.Elem)
		}
	}
	walk(pat)
	return found
}

func simpleValName(pat ast.Tree) (string, bool) {
	id, ok := pat.(*ast.Ident)
	if !ok {
		return "", false
	}
	return id.Name, true
}

package parser

import (
	"github.com/corelang/corelang/ast"
	"github.com/corelang/corelang/token"
)

// parseType parses a full type: a function type `(A, B) => C`, an
// infix/compound type, or an existential `T forSome { ... }`.
func (p *Parser) parseType() ast.Tree {
	p.trace("type")
	if p.cur.Type == token.LPAREN {
		return p.parseFunctionOrTupleType()
	}
	t := p.parseInfixType()
	switch p.cur.Type {
	case token.ARROW:
		p.advance()
		ret := p.parseType()
		return &ast.AppliedTypeTree{
			Base: ast.Base{Pos: t.Position()},
			Tpt:  &ast.Ident{Base: ast.Base{Pos: t.Position()}, Name: "Function1"},
			Args: []ast.Tree{t, ret},
		}
	case token.FORSOME:
		p.advance()
		p.expect(token.LBRACE, "'{'")
		p.skipSeparators()
		clauses := p.parseStatSeq(token.RBRACE)
		p.expect(token.RBRACE, "'}'")
		return &ast.ExistentialTypeTree{Base: ast.Base{Pos: t.Position()}, Tpt: t, WhereClauses: clauses}
	}
	return t
}

// parseFunctionOrTupleType handles the three shapes that can start
// with `(`: a parenthesized single type, a tuple type `(A, B)`, and a
// function type `(A, B) => C`.
func (p *Parser) parseFunctionOrTupleType() ast.Tree {
	pos := p.cur.Pos
	p.advance()
	p.ph.PushTypeBoundary()
	var elems []ast.Tree
	if p.cur.Type != token.RPAREN {
		elems = append(elems, p.parseType())
		for p.accept(token.COMMA) {
			elems = append(elems, p.parseType())
		}
	}
	p.expect(token.RPAREN, "')'")
	wildcards := p.ph.PopTypeBoundary()

	if p.cur.Type == token.ARROW {
		p.advance()
		ret := p.parseType()
		args := append(append([]ast.Tree{}, elems...), ret)
		fn := ast.Tree(&ast.AppliedTypeTree{
			Base: ast.Base{Pos: pos},
			Tpt:  &ast.Ident{Base: ast.Base{Pos: pos}, Name: funcTypeName(len(elems))},
			Args: args,
		})
		return wrapExistential(fn, wildcards, pos)
	}
	if len(elems) == 1 {
		return wrapExistential(elems[0], wildcards, pos)
	}
	tuple := ast.Tree(&ast.AppliedTypeTree{
		Base: ast.Base{Pos: pos},
		Tpt:  &ast.Ident{Base: ast.Base{Pos: pos}, Name: tupleTypeName(len(elems))},
		Args: elems,
	})
	return wrapExistential(tuple, wildcards, pos)
}

func wrapExistential(t ast.Tree, wildcards []*ast.TypeDef, pos token.Position) ast.Tree {
	if len(wildcards) == 0 {
		return t
	}
	clauses := make([]ast.Tree, len(wildcards))
	for i, w := range wildcards {
		clauses[i] = w
	}
	return &ast.ExistentialTypeTree{Base: ast.Base{Pos: pos}, Tpt: t, WhereClauses: clauses}
}

func funcTypeName(n int) string { return "Function" + smallInt(n) }
func tupleTypeName(n int) string { return "Tuple" + smallInt(n) }

func smallInt(n int) string {
	const digits = "0123456789"
	if n >= 0 && n < len(digits) {
		return string(digits[n])
	}
	return "N"
}

// parseInfixType parses compound types joined by an identifier type
// operator (alphanumeric or symbolic), e.g. `A Map B`, left-associating since actual type-level
// precedence/associativity is out of this core's scope.
func (p *Parser) parseInfixType() ast.Tree {
	t := p.parseCompoundType()
	for p.cur.Type == token.IDENT {
		op := p.cur.Name
		pos := p.cur.Pos
		p.advance()
		rhs := p.parseCompoundType()
		t = &ast.AppliedTypeTree{
			Base: ast.Base{Pos: pos},
			Tpt:  &ast.Ident{Base: ast.Base{Pos: pos}, Name: op},
			Args: []ast.Tree{t, rhs},
		}
	}
	return t
}

// parseCompoundType parses `A with B with C { refinement }`.
func (p *Parser) parseCompoundType() ast.Tree {
	t := p.parseSimpleType()
	if p.cur.Type != token.WITH && p.cur.Type != token.LBRACE {
		return t
	}
	parents := []ast.Tree{t}
	for p.accept(token.WITH) {
		parents = append(parents, p.parseSimpleType())
	}
	var refinement []ast.Tree
	if p.cur.Type == token.LBRACE {
		p.advance()
		p.skipSeparators()
		refinement = p.parseStatSeq(token.RBRACE)
		p.expect(token.RBRACE, "'}'")
	}
	return &ast.CompoundTypeTree{Base: ast.Base{Pos: t.Position()}, Parents: parents, Refinement: refinement}
}

// parseSimpleType parses a type reference with its trailing `.`, `#`,
// and `[...]` suffixes: `a.b.C[D]#E`, `x.type`, `this.type`, or a bare
// wildcard `_` (optionally bounded when used as a type argument).
func (p *Parser) parseSimpleType() ast.Tree {
	pos := p.cur.Pos
	var t ast.Tree
	switch p.cur.Type {
	case token.USCORE:
		p.advance()
		if p.ph.InTypeBoundary() {
			var bounds *ast.TypeBoundsTree
			if p.cur.Type == token.SUPERTYPE || p.cur.Type == token.SUBTYPE {
				bounds = &ast.TypeBoundsTree{Base: ast.Base{Pos: pos}, Lo: ast.Empty, Hi: ast.Empty}
				if p.accept(token.SUPERTYPE) {
					bounds.Lo = p.parseType()
				}
				if p.accept(token.SUBTYPE) {
					bounds.Hi = p.parseType()
				}
			}
			t = p.ph.NextTypePlaceholder(pos, bounds)
		} else {
			t = &ast.Ident{Base: ast.Base{Pos: pos}, Name: "_"}
		}
	case token.THIS:
		p.advance()
		p.expect(token.DOT, "'.'")
		p.expect(token.TYPE, "'type'")
		t = &ast.SingletonTypeTree{Base: ast.Base{Pos: pos}, Ref: &ast.This{Base: ast.Base{Pos: pos}}}
	default:
		name := p.identName()
		t = &ast.Ident{Base: ast.Base{Pos: pos}, Name: name}
	}

	for {
		switch p.cur.Type {
		case token.DOT:
			p.advance()
			if p.cur.Type == token.TYPE {
				p.advance()
				t = &ast.SingletonTypeTree{Base: ast.Base{Pos: pos}, Ref: t}
				continue
			}
			name := p.identName()
			t = &ast.SelectFromTypeTree{Base: ast.Base{Pos: pos}, Qualifier: t, Name: name}
		case token.HASH:
			p.advance()
			name := p.identName()
			t = &ast.SelectFromTypeTree{Base: ast.Base{Pos: pos}, Qualifier: t, Name: name}
		case token.LBRACKET:
			targs, wildcards := p.parseTypeArgs()
			app := ast.Tree(&ast.AppliedTypeTree{Base: ast.Base{Pos: pos}, Tpt: t, Args: targs})
			t = wrapExistential(app, wildcards, pos)
		default:
			return t
		}
	}
}

// parseTypeArgs parses a bracketed type-argument list, returning both
// the arguments and any fresh existential TypeDefs minted for bare `_`
// wildcards directly inside it (spec.md §4.3's type-boundary rule).
func (p *Parser) parseTypeArgs() ([]ast.Tree, []*ast.TypeDef) {
	p.expect(token.LBRACKET, "'['")
	p.ph.PushTypeBoundary()
	var args []ast.Tree
	args = append(args, p.parseType())
	for p.accept(token.COMMA) {
		args = append(args, p.parseType())
	}
	p.expect(token.RBRACKET, "']'")
	return args, p.ph.PopTypeBoundary()
}

package parser

import (
	"github.com/corelang/corelang/ast"
	"github.com/corelang/corelang/lexer"
	"github.com/corelang/corelang/names"
	"github.com/corelang/corelang/opstack"
	"github.com/corelang/corelang/token"
)

var unaryOps = map[string]bool{"-": true, "+": true, "!": true, "~": true}

func (p *Parser) parseExpr() ast.Tree {
	p.trace("expression")
	return p.parseAssign()
}

func (p *Parser) parseAssign() ast.Tree {
	lhs := p.parseBinary()
	if p.cur.Type == token.EQUALS {
		pos := p.cur.Pos
		p.advance()
		p.skipNewlines()
		rhs := p.parseExpr()
		return ast.MkAssign(lhs, rhs, pos)
	}
	return lhs
}

// isInfixOperator reports whether the current token can continue a
// binary expression as an infix operator: a symbolic operator
// identifier, an alphanumeric identifier used infix (`a max b`), or
// one of the few fixed-spelling operator tokens (`:`, `*`, `|`).
func (p *Parser) isInfixOperator() bool {
	switch p.cur.Type {
	case token.IDENT, token.COLON, token.STAR, token.PIPE:
		return true
	}
	return false
}

// reportAssocMixing reports the one-error-per-conflict diagnostic
// spec.md §4.2 requires when two operators sharing a precedence level
// disagree on associativity (e.g. `1 +: 2 + 3`, where `+:` is
// right-associative and `+` is not).
func (p *Parser) reportAssocMixing(topOp, op string, pos token.Position) {
	p.addErrorAt(pos, "left- and right-associative operators with same precedence may not be mixed", CodeSemanticPre)
}

// reduceInfix swaps operand and receiver for a right-associative
// operator (`a :: b` desugars to `b.::(a)`, matching the real
// language's method-dispatch rule rather than a literal left-to-right
// rewrite) — see DESIGN.md's Open Question decisions for why this is
// kept over a non-swapping `binop(lhs, op, rhs)` shape.
func (p *Parser) reduceInfix(top opstack.OpInfo, rhs ast.Tree) ast.Tree {
	if names.IsRightAssoc(top.Op) {
		return &ast.Apply{
			Base: ast.Base{Pos: top.Pos},
			Fun:  &ast.Select{Base: ast.Base{Pos: top.Pos}, Qualifier: rhs, Name: top.Op},
			Args: []ast.Tree{top.Operand},
		}
	}
	return &ast.Apply{
		Base: ast.Base{Pos: top.Pos},
		Fun:  &ast.Select{Base: ast.Base{Pos: top.Pos}, Qualifier: top.Operand, Name: top.Op},
		Args: []ast.Tree{rhs},
	}
}

// parseBinary runs the precedence-climbing engine over a chain of
// infix operators, then — if any `_` placeholder occurred directly
// within this expression — wraps the result in the synthetic Function
// the placeholder desugars to, per spec.md §4.3.
func (p *Parser) parseBinary() ast.Tree {
	p.ph.PushExprBoundary()
	lhs := p.parseUnary()
	stack := opstack.New(p.reduceInfix).WithAssocConflictReporter(p.reportAssocMixing)
	for p.isInfixOperator() {
		op := p.cur.Name
		opPos := p.cur.Pos
		p.advance()
		p.skipNewlines()
		stack.Push(lhs, op, nil, opPos)
		lhs = p.parseUnary()
	}
	result := stack.Finish(lhs)
	params := p.ph.PopExprBoundary()
	if len(params) > 0 {
		return &ast.Function{Base: ast.Base{Pos: result.Position()}, Params: params, Body: result}
	}
	return result
}

func (p *Parser) parseUnary() ast.Tree {
	if p.cur.Type == token.IDENT && unaryOps[p.cur.Name] {
		op := p.cur.Name
		pos := p.cur.Pos
		p.advance()
		operand := p.parseUnary()
		return &ast.Apply{
			Base: ast.Base{Pos: pos},
			Fun:  &ast.Select{Base: ast.Base{Pos: pos}, Qualifier: operand, Name: "unary_" + op},
		}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.Tree {
	t := p.parsePrimary()
	for {
		switch p.cur.Type {
		case token.DOT:
			pos := p.cur.Pos
			p.advance()
			name := p.identName()
			t = &ast.Select{Base: ast.Base{Pos: pos}, Qualifier: t, Name: name}
		case token.LPAREN:
			args := p.parseArgs()
			t = &ast.Apply{Base: ast.Base{Pos: t.Position()}, Fun: t, Args: args}
		case token.LBRACKET:
			targs, wildcards := p.parseTypeArgs()
			app := ast.Tree(&ast.TypeApply{Base: ast.Base{Pos: t.Position()}, Fun: t, Args: targs})
			t = wrapExistential(app, wildcards, t.Position())
		case token.MATCH:
			p.advance()
			cases := p.parseCases()
			t = &ast.Match{Base: ast.Base{Pos: t.Position()}, Selector: t, Cases: cases}
		default:
			return t
		}
	}
}

func (p *Parser) identName() string {
	if p.cur.Type == token.IDENT || p.cur.Type == token.BACKQUOTED_IDENT {
		name := p.cur.Name
		p.advance()
		return name
	}
	p.syntaxError("expected identifier, found " + p.cur.Type.String())
	return string(names.ErrorName)
}

func (p *Parser) parseArgs() []ast.Tree {
	p.expect(token.LPAREN, "'('")
	p.skipNewlines()
	var args []ast.Tree
	if p.cur.Type != token.RPAREN {
		args = append(args, p.parseArg())
		p.skipNewlines()
		for p.accept(token.COMMA) {
			p.skipNewlines()
			args = append(args, p.parseArg())
			p.skipNewlines()
		}
	}
	p.expect(token.RPAREN, "')'")
	return args
}

// parseArg parses one call-argument position. `id = expr` names the
// argument rather than assigning to it (spec.md §4.5); the `=` here is
// always the reserved EQUALS token, never the `==` operator identifier,
// so one token of lookahead past the identifier disambiguates it from
// an ordinary expression.
func (p *Parser) parseArg() ast.Tree {
	if p.cur.Type == token.IDENT && p.peekTok().Type == token.EQUALS {
		pos := p.cur.Pos
		name := p.cur.Name
		p.advance()
		p.advance()
		p.skipNewlines()
		return &ast.NamedArg{Base: ast.Base{Pos: pos}, Name: name, Rhs: p.parseExpr()}
	}
	return p.parseExpr()
}

func (p *Parser) parseLiteral() *ast.Literal {
	pos := p.cur.Pos
	tok := p.cur
	var lit *ast.Literal
	switch tok.Type {
	case token.INT, token.LONG:
		lit = &ast.Literal{Base: ast.Base{Pos: pos}, Kind: tok.Type, Value: tok.IntVal}
	case token.FLOAT, token.DOUBLE:
		lit = &ast.Literal{Base: ast.Base{Pos: pos}, Kind: tok.Type, Value: tok.FloatVal}
	case token.CHAR:
		var v rune
		if r := []rune(tok.Name); len(r) > 0 {
			v = r[0]
		}
		lit = &ast.Literal{Base: ast.Base{Pos: pos}, Kind: tok.Type, Value: v}
	case token.STRING, token.SYMBOL:
		lit = &ast.Literal{Base: ast.Base{Pos: pos}, Kind: tok.Type, Value: tok.Name}
	case token.TRUE:
		lit = &ast.Literal{Base: ast.Base{Pos: pos}, Kind: tok.Type, Value: true}
	case token.FALSE:
		lit = &ast.Literal{Base: ast.Base{Pos: pos}, Kind: tok.Type, Value: false}
	default: // token.NULL
		lit = &ast.Literal{Base: ast.Base{Pos: pos}, Kind: token.NULL, Value: nil}
	}
	p.advance()
	return lit
}

func (p *Parser) parsePrimary() ast.Tree {
	pos := p.cur.Pos
	switch p.cur.Type {
	case token.USCORE:
		p.advance()
		if p.ph.InExprBoundary() {
			return p.ph.NextExprPlaceholder(pos)
		}
		p.syntaxError("'_' not allowed here")
		return &ast.Ident{Base: ast.Base{Pos: pos}, Name: string(names.Wildcard)}
	case token.INT, token.LONG, token.FLOAT, token.DOUBLE, token.CHAR, token.STRING,
		token.TRUE, token.FALSE, token.NULL, token.SYMBOL:
		return p.parseLiteral()
	case token.THIS:
		p.advance()
		return &ast.This{Base: ast.Base{Pos: pos}}
	case token.SUPER:
		p.advance()
		sup := &ast.Super{Base: ast.Base{Pos: pos}}
		if p.accept(token.LBRACKET) {
			sup.Mix = p.identName()
			p.expect(token.RBRACKET, "']'")
		}
		return sup
	case token.IDENT, token.BACKQUOTED_IDENT:
		name := p.cur.Name
		p.advance()
		return &ast.Ident{Base: ast.Base{Pos: pos}, Name: name}
	case token.LPAREN:
		return p.parseParensOrLambda(pos)
	case token.LBRACE:
		return p.parseBlockExpr()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.DO:
		return p.parseDoWhile()
	case token.FOR:
		return p.parseFor()
	case token.TRY:
		return p.parseTry()
	case token.THROW:
		p.advance()
		return &ast.Throw{Base: ast.Base{Pos: pos}, Expr: p.parseExpr()}
	case token.RETURN:
		p.advance()
		if p.cur.IsStatSep() || p.cur.Type == token.RBRACE || p.cur.Type == token.EOF {
			return &ast.Return{Base: ast.Base{Pos: pos}, Expr: ast.Empty}
		}
		return &ast.Return{Base: ast.Base{Pos: pos}, Expr: p.parseExpr()}
	case token.NEW:
		p.advance()
		parents, early := p.parseNewParentsAndEarly()
		tmpl := p.parseTemplateBody(parents, early)
		return ast.MkNew(tmpl, pos)
	default:
		p.syntaxError("illegal start of expression")
		p.advance()
		return &ast.Ident{Base: ast.Base{Pos: pos}, Name: string(names.ErrorName)}
	}
}

// snapshot captures everything needed to backtrack a speculative
// parse: the lexer's scan position plus the parser's own one-token
// lookahead buffer.
type snapshot struct {
	lex     lexer.State
	cur     token.Token
	peek    token.Token
	hasPeek bool
}

func (p *Parser) snapshot() snapshot {
	return snapshot{lex: p.lex.Snapshot(), cur: p.cur, peek: p.peek, hasPeek: p.hasPeek}
}

func (p *Parser) restore(s snapshot) {
	p.lex.Restore(s.lex)
	p.cur, p.peek, p.hasPeek = s.cur, s.peek, s.hasPeek
}

func (p *Parser) parseParensOrLambda(pos token.Position) ast.Tree {
	save := p.snapshot()

	if params, ok := p.tryParseLambdaParams(); ok {
		p.advance() // consume '=>'
		p.skipNewlines()
		body := p.parseExpr()
		return &ast.Function{Base: ast.Base{Pos: pos}, Params: params, Body: body}
	}
	p.restore(save)

	p.advance() // consume '('
	p.ph.PushExprBoundary()
	p.skipNewlines()
	if p.cur.Type == token.RPAREN {
		p.advance()
		p.ph.PopExprBoundary()
		return &ast.Literal{Base: ast.Base{Pos: pos}, Kind: token.NULL, Value: nil}
	}
	exprs := []ast.Tree{p.parseExpr()}
	p.skipNewlines()
	for p.accept(token.COMMA) {
		p.skipNewlines()
		exprs = append(exprs, p.parseExpr())
		p.skipNewlines()
	}
	p.expect(token.RPAREN, "')'")
	params := p.ph.PopExprBoundary()

	var result ast.Tree
	if len(exprs) == 1 {
		result = exprs[0]
	} else {
		result = &ast.Parens{Base: ast.Base{Pos: pos}, Exprs: exprs}
	}
	if len(params) > 0 {
		return &ast.Function{Base: ast.Base{Pos: pos}, Params: params, Body: result}
	}
	return result
}

// tryParseLambdaParams speculatively consumes `(name (: Type)?, ...)`
// followed by `=>`, reporting failure (without restoring — the caller
// owns the snapshot) if the shape doesn't match.
func (p *Parser) tryParseLambdaParams() ([]*ast.ValDef, bool) {
	if !p.accept(token.LPAREN) {
		return nil, false
	}
	p.skipNewlines()
	var params []*ast.ValDef
	if p.cur.Type != token.RPAREN {
		for {
			if p.cur.Type != token.IDENT && p.cur.Type != token.BACKQUOTED_IDENT && p.cur.Type != token.USCORE {
				return nil, false
			}
			ppos := p.cur.Pos
			name := p.cur.Name
			if p.cur.Type == token.USCORE {
				name = string(names.Wildcard)
			}
			p.advance()
			typ := ast.Tree(ast.Empty)
			if p.accept(token.COLON) {
				typ = p.parseType()
			}
			params = append(params, &ast.ValDef{
				Base: ast.Base{Pos: ppos}, Mods: names.FlagParam, Name: name, TypeTree: typ, Rhs: ast.Empty,
			})
			if !p.accept(token.COMMA) {
				break
			}
			p.skipNewlines()
		}
		if !p.accept(token.RPAREN) {
			return nil, false
		}
	} else {
		p.advance()
	}
	return params, p.cur.Type == token.ARROW
}

func (p *Parser) parseBlockExpr() ast.Tree {
	pos := p.cur.Pos
	p.expect(token.LBRACE, "'{'")
	p.pushContext(BlockContext)
	stats := p.parseStatSeq(token.RBRACE)
	p.popContext()
	p.expect(token.RBRACE, "'}'")
	return blockFromStats(stats, pos)
}

func (p *Parser) parseIf() ast.Tree {
	pos := p.cur.Pos
	p.advance()
	p.expect(token.LPAREN, "'('")
	p.skipNewlines()
	cond := p.parseExpr()
	p.skipNewlines()
	p.expect(token.RPAREN, "')'")
	p.skipNewlines()
	then := p.parseExpr()

	elseBranch := ast.Tree(ast.Empty)
	save := p.snapshot()
	p.skipSeparators()
	if p.cur.Type == token.ELSE {
		p.advance()
		p.skipNewlines()
		elseBranch = p.parseExpr()
	} else {
		p.restore(save)
	}
	return &ast.If{Base: ast.Base{Pos: pos}, Cond: cond, Then: then, Else: elseBranch}
}

func (p *Parser) parseWhile() ast.Tree {
	pos := p.cur.Pos
	p.advance()
	p.expect(token.LPAREN, "'('")
	p.skipNewlines()
	cond := p.parseExpr()
	p.skipNewlines()
	p.expect(token.RPAREN, "')'")
	p.skipNewlines()
	body := p.parseExpr()
	return ast.MkWhile(p.fresh, cond, body, pos)
}

func (p *Parser) parseDoWhile() ast.Tree {
	pos := p.cur.Pos
	p.advance()
	p.skipNewlines()
	body := p.parseExpr()
	p.skipSeparators()
	p.expect(token.WHILE, "'while'")
	p.expect(token.LPAREN, "'('")
	p.skipNewlines()
	cond := p.parseExpr()
	p.skipNewlines()
	p.expect(token.RPAREN, "')'")
	return ast.MkDoWhile(p.fresh, body, cond, pos)
}

func (p *Parser) parseTry() ast.Tree {
	pos := p.cur.Pos
	p.advance()
	block := p.parseExpr()
	var catches []*ast.CaseDef
	if p.cur.Type == token.CATCH {
		p.advance()
		catches = p.parseCases()
	}
	finalizer := ast.Tree(ast.Empty)
	if p.cur.Type == token.FINALLY {
		p.advance()
		finalizer = p.parseExpr()
	}
	return &ast.Try{Base: ast.Base{Pos: pos}, Block: block, Catches: catches, Finalizer: finalizer}
}

func (p *Parser) parseFor() ast.Tree {
	pos := p.cur.Pos
	p.advance()
	var closeType token.Type
	if p.cur.Type == token.LBRACE {
		p.advance()
		closeType = token.RBRACE
	} else {
		p.expect(token.LPAREN, "'(' or '{'")
		closeType = token.RPAREN
	}
	p.skipSeparators()
	enums := []ast.Enumerator{p.parseEnumerator()}
	for {
		p.skipSeparators()
		if p.cur.Type == closeType {
			break
		}
		p.accept(token.SEMI)
		p.skipSeparators()
		if p.cur.Type == closeType {
			break
		}
		enums = append(enums, p.parseEnumerator())
	}
	p.expect(closeType, "closing delimiter")
	p.skipNewlines()
	isYield := false
	if p.cur.Type == token.YIELD {
		isYield = true
		p.advance()
	}
	p.skipNewlines()
	body := p.parseExpr()
	return ast.MkFor(p.fresh, enums, body, isYield, pos)
}

func (p *Parser) parseEnumerator() ast.Enumerator {
	pos := p.cur.Pos
	if p.cur.Type == token.IF {
		p.advance()
		return &ast.Filter{Pos: pos, Cond: p.parseExpr()}
	}
	if p.cur.Type == token.VAL {
		p.deprecationWarning(pos, "`val` before a for-comprehension generator is deprecated")
		p.advance()
	}
	pat := p.parsePattern()
	switch p.cur.Type {
	case token.LARROW:
		p.advance()
		p.skipNewlines()
		return &ast.Generator{Pos: pos, Pat: pat, Rhs: p.parseExpr()}
	case token.EQUALS:
		p.advance()
		p.skipNewlines()
		return &ast.ForAssign{Pos: pos, Pat: pat, Rhs: p.parseExpr()}
	default:
		p.syntaxError("'<-' or '=' expected in for-comprehension")
		return &ast.Filter{Pos: pos, Cond: ast.Empty}
	}
}

func (p *Parser) parseCases() []*ast.CaseDef {
	p.expect(token.LBRACE, "'{'")
	p.skipSeparators()
	var cases []*ast.CaseDef
	for p.cur.Type == token.CASE {
		cases = append(cases, p.parseCaseDef())
		p.skipSeparators()
	}
	p.expect(token.RBRACE, "'}'")
	return cases
}

func (p *Parser) parseCaseDef() *ast.CaseDef {
	pos := p.cur.Pos
	p.advance() // 'case'
	pat := p.parsePattern()
	guard := ast.Tree(ast.Empty)
	if p.cur.Type == token.IF {
		p.advance()
		guard = p.parseExpr()
	}
	p.expect(token.ARROW, "'=>'")
	p.skipSeparators()
	var stats []ast.Tree
	for p.cur.Type != token.CASE && p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
		stats = append(stats, p.parseStatMulti()...)
		p.skipSeparators()
	}
	return &ast.CaseDef{Base: ast.Base{Pos: pos}, Pattern: pat, Guard: guard, Body: blockFromStats(stats, pos)}
}

func blockFromStats(stats []ast.Tree, pos token.Position) ast.Tree {
	if len(stats) == 0 {
		return &ast.Block{Base: ast.Base{Pos: pos}, Stats: nil, Expr: ast.Empty}
	}
	return &ast.Block{Base: ast.Base{Pos: pos}, Stats: stats[:len(stats)-1], Expr: stats[len(stats)-1]}
}

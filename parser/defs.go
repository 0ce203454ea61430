package parser

import (
	"github.com/corelang/corelang/ast"
	"github.com/corelang/corelang/names"
	"github.com/corelang/corelang/token"
)

// parseTopLevel parses a full compilation unit: an optional package
// clause followed by top-level statements, per spec.md §3.
func (p *Parser) parseTopLevel() ast.Tree {
	p.trace("topLevel")
	pos := p.cur.Pos
	p.skipSeparators()
	if p.cur.Type == token.PACKAGE {
		return p.parsePackage()
	}
	stats := p.parseStatSeq(token.EOF)
	return &ast.Block{Base: ast.Base{Pos: pos}, Stats: stats, Expr: ast.Empty}
}

// parseStatSeq parses statements, each via parseStatMulti (a
// production that may splice more than one Tree, e.g. a pattern
// ValDef), until stop or EOF.
func (p *Parser) parseStatSeq(stop token.Type) []ast.Tree {
	var stats []ast.Tree
	p.skipSeparators()
	for p.cur.Type != stop && p.cur.Type != token.EOF {
		before := p.cur.Pos.Offset
		stats = append(stats, p.parseStatMulti()...)
		if p.cur.Type != stop && p.cur.Type != token.EOF && !p.cur.IsStatSep() {
			p.syntaxError("';' or newline expected")
			if p.cur.Pos.Offset == before {
				p.advance() // guarantee progress past an unparseable token
			}
		}
		p.skipSeparators()
	}
	return stats
}

// parseStatMulti parses one statement. Most productions yield exactly
// one Tree; a pattern ValDef (`val (x, y) = e`) can splice several
// sibling definitions into the enclosing sequence.
func (p *Parser) parseStatMulti() []ast.Tree {
	p.trace("statement")
	switch p.cur.Type {
	case token.IMPORT:
		return p.parseImportMulti()
	case token.PACKAGE:
		return []ast.Tree{p.parsePackage()}
	}
	mods := p.parseModifiers()
	switch p.cur.Type {
	case token.VAL, token.VAR:
		return p.parseValVarDefMulti(mods)
	case token.DEF:
		return []ast.Tree{p.parseDefDef(mods)}
	case token.TYPE:
		return []ast.Tree{p.parseTypeDef(mods)}
	case token.CLASS, token.TRAIT:
		return []ast.Tree{p.parseClassDef(mods)}
	case token.OBJECT:
		return []ast.Tree{p.parseObjectDef(mods)}
	default:
		if mods != 0 {
			p.syntaxError("expected a definition after modifiers")
		}
		return []ast.Tree{p.parseExpr()}
	}
}

func (p *Parser) parseModifiers() names.Flags {
	var mods names.Flags
	for {
		switch p.cur.Type {
		case token.IMPLICIT:
			mods = mods.With(names.FlagImplicit)
		case token.LAZY:
			mods = mods.With(names.FlagLazy)
		case token.ABSTRACT:
			mods = mods.With(names.FlagAbstract)
		case token.FINAL:
			mods = mods.With(names.FlagFinal)
		case token.SEALED:
			mods = mods.With(names.FlagSealed)
		case token.PRIVATE:
			mods = mods.With(names.FlagPrivate)
		case token.PROTECTED:
			mods = mods.With(names.FlagProtected)
		case token.OVERRIDE:
			mods = mods.With(names.FlagOverride)
		case token.CASE:
			mods = mods.With(names.FlagCase)
		default:
			return mods
		}
		p.advance()
	}
}

func (p *Parser) parseValVarDefMulti(mods names.Flags) []ast.Tree {
	pos := p.cur.Pos
	if p.cur.Type == token.VAR {
		mods = mods.With(names.FlagMutable)
	}
	p.advance()
	pat := p.parsePattern()
	typ := ast.Tree(ast.Empty)
	if p.accept(token.COLON) {
		typ = p.parseType()
	}
	if !p.accept(token.EQUALS) {
		name, ok := simpleValName(pat)
		if !ok {
			name = string(names.ErrorName)
		}
		return []ast.Tree{&ast.ValDef{
			Base: ast.Base{Pos: pos}, Mods: mods.With(names.FlagDeferred), Name: name, TypeTree: typ, Rhs: ast.Empty,
		}}
	}
	p.skipNewlines()
	rhs := p.parseExpr()
	if name, ok := simpleValName(pat); ok {
		return []ast.Tree{&ast.ValDef{Base: ast.Base{Pos: pos}, Mods: mods, Name: name, TypeTree: typ, Rhs: rhs}}
	}
	return ast.MkPatDefs(p.fresh, mods, pat, rhs, patternBoundNames(pat), pos)
}

func (p *Parser) parseDefDef(mods names.Flags) ast.Tree {
	pos := p.cur.Pos
	p.advance() // 'def'
	name := p.identName()
	var typeParams []*ast.TypeDef
	var evidence []*ast.ValDef
	if p.cur.Type == token.LBRACKET {
		typeParams, evidence = p.parseTypeParams()
	}
	var paramLists [][]*ast.ValDef
	for p.cur.Type == token.LPAREN {
		paramLists = append(paramLists, p.parseValueParams())
	}
	if len(evidence) > 0 {
		paramLists = append(paramLists, evidence)
	}
	retType := ast.Tree(ast.Empty)
	if p.accept(token.COLON) {
		retType = p.parseType()
	}
	rhs := ast.Tree(ast.Empty)
	switch {
	case p.accept(token.EQUALS):
		p.skipNewlines()
		p.pushContext(FunctionContext)
		rhs = p.parseExpr()
		p.popContext()
	case p.cur.Type == token.LBRACE:
		p.deprecationWarning(pos, "procedure syntax is deprecated; use an explicit `: Unit =` body")
		if ast.IsEmpty(retType) {
			retType = &ast.Ident{Base: ast.Base{Pos: pos}, Name: "Unit"}
		}
		p.pushContext(FunctionContext)
		rhs = p.parseBlockExpr()
		p.popContext()
	default:
		mods = mods.With(names.FlagDeferred)
	}
	return &ast.DefDef{
		Base: ast.Base{Pos: pos}, Mods: mods, Name: name,
		TypeParams: typeParams, ParamLists: paramLists, ReturnType: retType, Rhs: rhs,
	}
}

func (p *Parser) parseValueParams() []*ast.ValDef {
	p.expect(token.LPAREN, "'('")
	p.skipNewlines()
	var params []*ast.ValDef
	if p.cur.Type != token.RPAREN {
		params = append(params, p.parseValueParam())
		for p.accept(token.COMMA) {
			p.skipNewlines()
			params = append(params, p.parseValueParam())
		}
	}
	p.skipNewlines()
	p.expect(token.RPAREN, "')'")
	return params
}

func (p *Parser) parseValueParam() *ast.ValDef {
	pos := p.cur.Pos
	mods := names.FlagParam
	switch {
	case p.accept(token.VAL):
	case p.accept(token.VAR):
		mods = mods.With(names.FlagMutable)
	}
	name := p.identName()
	typ := ast.Tree(ast.Empty)
	if p.accept(token.COLON) {
		typ = p.parseType()
	}
	rhs := ast.Tree(ast.Empty)
	if p.accept(token.EQUALS) {
		rhs = p.parseExpr()
	}
	return &ast.ValDef{Base: ast.Base{Pos: pos}, Mods: mods, Name: name, TypeTree: typ, Rhs: rhs}
}

// parseTypeParams parses a bracketed type-parameter clause, returning
// both the parameters themselves and any implicit evidence parameters
// context bounds among them synthesized (spec.md §4.7).
func (p *Parser) parseTypeParams() ([]*ast.TypeDef, []*ast.ValDef) {
	p.expect(token.LBRACKET, "'['")
	var params []*ast.TypeDef
	var evidence []*ast.ValDef
	param, ev := p.parseTypeParam()
	params = append(params, param)
	evidence = append(evidence, ev...)
	for p.accept(token.COMMA) {
		param, ev := p.parseTypeParam()
		params = append(params, param)
		evidence = append(evidence, ev...)
	}
	p.expect(token.RBRACKET, "']'")
	return params, evidence
}

// parseTypeParam parses one type parameter along with its upper/lower
// bounds. A context bound `T: B` synthesizes a trailing implicit
// evidence parameter of type `B[T]` per bound, returned separately so
// the caller can append them to the enclosing parameter lists (spec.md
// §4.7, the `class C[T: Ord](x: T)` scenario).
func (p *Parser) parseTypeParam() (*ast.TypeDef, []*ast.ValDef) {
	pos := p.cur.Pos
	name := p.identName()
	bounds := &ast.TypeBoundsTree{Base: ast.Base{Pos: pos}, Lo: ast.Empty, Hi: ast.Empty}
	if p.accept(token.SUBTYPE) {
		bounds.Hi = p.parseType()
	}
	if p.accept(token.SUPERTYPE) {
		bounds.Lo = p.parseType()
	}
	var evidence []*ast.ValDef
	for p.accept(token.COLON) {
		boundPos := p.cur.Pos
		boundType := p.parseType()
		evType := &ast.AppliedTypeTree{
			Base: ast.Base{Pos: boundPos},
			Tpt:  boundType,
			Args: []ast.Tree{&ast.Ident{Base: ast.Base{Pos: pos}, Name: name}},
		}
		evidence = append(evidence, &ast.ValDef{
			Base:     ast.Base{Pos: boundPos},
			Mods:     names.FlagImplicit.With(names.FlagParam).With(names.FlagSynthetic),
			Name:     string(p.fresh.FreshTermName("evidence")),
			TypeTree: evType,
			Rhs:      ast.Empty,
		})
	}
	// View bounds (`T <% U`) desugar to an implicit conversion parameter
	// in full Scala; evidence-parameter synthesis for that legacy form
	// is out of this core's scope, so the clause is consumed but dropped.
	for p.accept(token.VIEWBOUND) {
		p.deprecationWarning(pos, "view bounds are deprecated; use a context bound or an implicit parameter")
		p.parseType()
	}
	return &ast.TypeDef{Base: ast.Base{Pos: pos}, Name: name, TypeParams: nil, Bounds: bounds, Rhs: ast.Empty}, evidence
}

func (p *Parser) parseTypeDef(mods names.Flags) ast.Tree {
	pos := p.cur.Pos
	p.advance()
	name := p.identName()
	var typeParams []*ast.TypeDef
	if p.cur.Type == token.LBRACKET {
		typeParams, _ = p.parseTypeParams()
	}
	if p.accept(token.EQUALS) {
		rhs := p.parseType()
		return &ast.TypeDef{Base: ast.Base{Pos: pos}, Mods: mods, Name: name, TypeParams: typeParams, Rhs: rhs}
	}
	bounds := &ast.TypeBoundsTree{Base: ast.Base{Pos: pos}, Lo: ast.Empty, Hi: ast.Empty}
	if p.accept(token.SUPERTYPE) {
		bounds.Lo = p.parseType()
	}
	if p.accept(token.SUBTYPE) {
		bounds.Hi = p.parseType()
	}
	return &ast.TypeDef{
		Base: ast.Base{Pos: pos}, Mods: mods.With(names.FlagDeferred), Name: name,
		TypeParams: typeParams, Bounds: bounds, Rhs: ast.Empty,
	}
}

func (p *Parser) parseClassDef(mods names.Flags) ast.Tree {
	pos := p.cur.Pos
	isTrait := p.cur.Type == token.TRAIT
	p.advance()
	if isTrait {
		mods = mods.With(names.FlagTrait)
	}
	name := p.identName()
	var typeParams []*ast.TypeDef
	var evidence []*ast.ValDef
	if p.cur.Type == token.LBRACKET {
		typeParams, evidence = p.parseTypeParams()
	}
	ctorMods := names.Flags(0)
	var paramLists [][]*ast.ValDef
	if !isTrait {
		ctorMods = p.parseModifiers()
		for p.cur.Type == token.LPAREN {
			paramLists = append(paramLists, p.parseValueParams())
		}
		if len(evidence) > 0 {
			paramLists = append(paramLists, evidence)
		}
	}
	p.pushContext(ClassContext)
	parents, early := p.parseParentsAndEarly()
	tmpl := p.parseTemplateBody(parents, early)
	p.popContext()
	return ast.MkClassDef(mods, name, typeParams, ctorMods, paramLists, tmpl, pos)
}

func (p *Parser) parseObjectDef(mods names.Flags) ast.Tree {
	pos := p.cur.Pos
	p.advance()
	name := p.identName()
	p.pushContext(ClassContext)
	parents, early := p.parseParentsAndEarly()
	tmpl := p.parseTemplateBody(parents, early)
	p.popContext()
	return &ast.ModuleDef{Base: ast.Base{Pos: pos}, Mods: mods, Name: name, Tmpl: tmpl}
}

// parseParentsAndEarly parses an `extends`/`with` clause, including an
// early-initializer block (`extends { early-defs } with Parent`).
func (p *Parser) parseParentsAndEarly() ([]ast.Tree, []ast.Tree) {
	var parents []ast.Tree
	var early []ast.Tree
	if p.cur.Type != token.EXTENDS {
		return parents, early
	}
	p.advance()
	if p.cur.Type == token.LBRACE {
		p.advance()
		p.skipSeparators()
		early = p.markPresuper(p.parseStatSeq(token.RBRACE))
		p.expect(token.RBRACE, "'}'")
		p.expect(token.WITH, "'with'")
	}
	parents = append(parents, p.parseOneParent())
	for p.cur.Type == token.WITH {
		p.advance()
		parents = append(parents, p.parseOneParent())
	}
	return parents, early
}

// parseNewParentsAndEarly parses the parent/early-initializer clause
// directly following `new`, which has no leading `extends` keyword:
// `new Parent(args) with Parent2`, `new { early } with Parent`, or a
// bare `new { body }` (no parent, no early defs — an anonymous
// structural instance). The `{`-first shape is ambiguous with a plain
// template body, so the early-initializer reading is only taken when
// a `with` follows the matching `}`; otherwise the snapshot is
// restored and the caller's parseTemplateBody re-reads the `{...}` as
// an ordinary body.
func (p *Parser) parseNewParentsAndEarly() ([]ast.Tree, []ast.Tree) {
	var early []ast.Tree
	hadEarly := false
	if p.cur.Type == token.LBRACE {
		save := p.snapshot()
		p.advance()
		p.skipSeparators()
		stats := p.parseStatSeq(token.RBRACE)
		if p.cur.Type != token.RBRACE {
			p.restore(save)
			return nil, nil
		}
		p.advance()
		if p.cur.Type != token.WITH {
			p.restore(save)
			return nil, nil
		}
		p.advance()
		early = p.markPresuper(stats)
		hadEarly = true
	}
	if !hadEarly && p.cur.Type != token.IDENT && p.cur.Type != token.BACKQUOTED_IDENT {
		return nil, early
	}
	var parents []ast.Tree
	parents = append(parents, p.parseOneParent())
	for p.cur.Type == token.WITH {
		p.advance()
		parents = append(parents, p.parseOneParent())
	}
	return parents, early
}

// markPresuper flags early-initializer statements PRESUPER, the
// marker template assembly and any later semantic pass use to
// distinguish them from ordinary body members (spec.md §4.7: only
// concrete val/type members are legal there, and an early type
// definition is itself deprecated).
func (p *Parser) markPresuper(stats []ast.Tree) []ast.Tree {
	for _, s := range stats {
		switch d := s.(type) {
		case *ast.ValDef:
			d.Mods = d.Mods.With(names.FlagPresuper)
		case *ast.TypeDef:
			d.Mods = d.Mods.With(names.FlagPresuper)
			p.deprecationWarning(d.Position(), "early type definitions are deprecated")
		}
	}
	return stats
}

func (p *Parser) parseOneParent() ast.Tree {
	pos := p.cur.Pos
	name := p.identName()
	t := ast.Tree(&ast.Ident{Base: ast.Base{Pos: pos}, Name: name})
	for p.cur.Type == token.DOT {
		p.advance()
		t = &ast.Select{Base: ast.Base{Pos: pos}, Qualifier: t, Name: p.identName()}
	}
	if p.cur.Type == token.LBRACKET {
		targs, wildcards := p.parseTypeArgs()
		app := ast.Tree(&ast.AppliedTypeTree{Base: ast.Base{Pos: pos}, Tpt: t, Args: targs})
		t = wrapExistential(app, wildcards, pos)
	}
	if p.cur.Type == token.LPAREN {
		args := p.parseArgs()
		t = &ast.Apply{Base: ast.Base{Pos: pos}, Fun: t, Args: args}
	}
	return t
}

func (p *Parser) parseTemplateBody(parents []ast.Tree, early []ast.Tree) *ast.Template {
	pos := p.cur.Pos
	var self *ast.ValDef
	var body []ast.Tree
	if p.cur.Type == token.LBRACE {
		p.advance()
		p.pushContext(TemplateContext)
		p.skipSeparators()
		if p.looksLikeSelfType() {
			self = p.parseSelfType()
		}
		body = p.parseStatSeq(token.RBRACE)
		p.popContext()
		p.expect(token.RBRACE, "'}'")
	}
	return ast.MkTemplate(parents, self, early, body, pos)
}

// looksLikeSelfType speculatively checks for `ident (: Type)? =>` at
// the top of a template body, restoring the scan position regardless
// of the outcome — the caller re-parses it for real via parseSelfType.
func (p *Parser) looksLikeSelfType() bool {
	if p.cur.Type != token.IDENT && p.cur.Type != token.THIS {
		return false
	}
	save := p.snapshot()
	defer p.restore(save)

	p.advance()
	if p.accept(token.COLON) {
		p.parseType()
	}
	return p.cur.Type == token.ARROW
}

func (p *Parser) parseSelfType() *ast.ValDef {
	pos := p.cur.Pos
	name := "this"
	if p.cur.Type == token.IDENT {
		name = p.cur.Name
	}
	p.advance()
	typ := ast.Tree(ast.Empty)
	if p.accept(token.COLON) {
		typ = p.parseType()
	}
	p.expect(token.ARROW, "'=>'")
	p.skipSeparators()
	return &ast.ValDef{Base: ast.Base{Pos: pos}, Name: name, TypeTree: typ, Rhs: ast.Empty}
}

func (p *Parser) parseImportMulti() []ast.Tree {
	p.advance() // 'import'
	imports := []ast.Tree{p.parseOneImport()}
	for p.accept(token.COMMA) {
		imports = append(imports, p.parseOneImport())
	}
	return imports
}

func (p *Parser) parseOneImport() ast.Tree {
	pos := p.cur.Pos
	qualifier := ast.Tree(&ast.Ident{Base: ast.Base{Pos: pos}, Name: p.identName()})
	for p.cur.Type == token.DOT {
		p.advance()
		if p.cur.Type == token.LBRACE {
			return p.parseImportSelectors(qualifier, pos)
		}
		if p.cur.Type == token.USCORE {
			p.advance()
			return &ast.Import{
				Base: ast.Base{Pos: pos}, Expr: qualifier,
				Selectors: []*ast.ImportSelector{{Base: ast.Base{Pos: pos}, IsWildcard: true}},
			}
		}
		qualifier = &ast.Select{Base: ast.Base{Pos: pos}, Qualifier: qualifier, Name: p.identName()}
	}
	return &ast.Import{Base: ast.Base{Pos: pos}, Expr: qualifier, Selectors: nil}
}

func (p *Parser) parseImportSelectors(qualifier ast.Tree, pos token.Position) ast.Tree {
	p.advance() // '{'
	var sels []*ast.ImportSelector
	for {
		spos := p.cur.Pos
		if p.cur.Type == token.USCORE {
			p.advance()
			sels = append(sels, &ast.ImportSelector{Base: ast.Base{Pos: spos}, IsWildcard: true})
		} else {
			name := p.identName()
			rename := ""
			if p.accept(token.ARROW) {
				if p.cur.Type == token.USCORE {
					p.advance()
					rename = "_"
				} else {
					rename = p.identName()
				}
			}
			sels = append(sels, &ast.ImportSelector{Base: ast.Base{Pos: spos}, Name: name, Rename: rename})
		}
		if !p.accept(token.COMMA) {
			break
		}
	}
	p.expect(token.RBRACE, "'}'")
	return &ast.Import{Base: ast.Base{Pos: pos}, Expr: qualifier, Selectors: sels}
}

func (p *Parser) parsePackage() ast.Tree {
	pos := p.cur.Pos
	p.advance()
	pid := ast.Tree(&ast.Ident{Base: ast.Base{Pos: pos}, Name: p.identName()})
	for p.cur.Type == token.DOT {
		p.advance()
		pid = &ast.Select{Base: ast.Base{Pos: pos}, Qualifier: pid, Name: p.identName()}
	}
	if p.cur.Type == token.LBRACE {
		p.advance()
		p.skipSeparators()
		stats := p.parseStatSeq(token.RBRACE)
		p.expect(token.RBRACE, "'}'")
		return &ast.PackageDef{Base: ast.Base{Pos: pos}, Pid: pid, Stats: stats}
	}
	p.skipSeparators()
	stats := p.parseStatSeq(token.EOF)
	return &ast.PackageDef{Base: ast.Base{Pos: pos}, Pid: pid, Stats: stats}
}

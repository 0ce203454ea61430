package ast

import (
	"github.com/corelang/corelang/names"
	"github.com/corelang/corelang/token"
)

// Enumerator is one clause of a for-comprehension: `pat <- rhs`,
// `if cond`, or `pat = rhs`.
type Enumerator interface{ enumerator() }

type Generator struct {
	Pos token.Position
	Pat Tree
	Rhs Tree
}

type Filter struct {
	Pos  token.Position
	Cond Tree
}

// ForAssign is the `pat = rhs` enumerator clause. Named to avoid
// colliding with the Assign tree node, which this desugars into.
type ForAssign struct {
	Pos token.Position
	Pat Tree
	Rhs Tree
}

func (*Generator) enumerator() {}
func (*Filter) enumerator()    {}
func (*ForAssign) enumerator() {}

// mkSyntheticParam builds the single-identifier ValDef a desugared
// function uses when its source pattern needs guarding by a Match
// rather than binding directly.
func mkSyntheticParam(pos token.Position, name string) *ValDef {
	return &ValDef{
		Base: Base{Pos: pos},
		Mods:     names.FlagParam | names.FlagSynthetic,
		Name:     name,
		TypeTree: Empty,
		Rhs:      Empty,
	}
}

// isSimpleBinding reports whether pat is just a bare identifier (or
// wildcard), the only pattern shape that desugars to a plain function
// parameter instead of a synthetic-parameter-plus-match.
func isSimpleBinding(pat Tree) (string, bool) {
	switch p := pat.(type) {
	case *Ident:
		return p.Name, true
	case *Bind:
		if IsEmpty(p.Body) {
			return p.Name, true
		}
	}
	return "", false
}

// MkCaseFunction builds the function a generator's body becomes: for a
// plain identifier pattern, a one-parameter Function; for anything
// richer (tuples, extractors, literals), a Function over a synthetic
// parameter whose body is a one-case Match, so a non-matching element
// raises MatchError the same way an explicit match would.
func MkCaseFunction(fresh *names.FreshNameSource, pat Tree, body Tree, pos token.Position) *Function {
	if name, ok := isSimpleBinding(pat); ok {
		return &Function{
			Base: Base{Pos: pos},
			Params:   []*ValDef{mkSyntheticParam(pos, name)},
			Body:     body,
		}
	}
	paramName := string(fresh.FreshTermName("x"))
	param := mkSyntheticParam(pos, paramName)
	selector := &Ident{Base: Base{Pos: pos}, Name: paramName}
	caseDef := &CaseDef{Base: Base{Pos: pos}, Pattern: pat, Guard: Empty, Body: body}
	match := &Match{Base: Base{Pos: pos}, Selector: selector, Cases: []*CaseDef{caseDef}}
	return &Function{Base: Base{Pos: pos}, Params: []*ValDef{param}, Body: match}
}

// MkFor desugars a for-comprehension into nested combinator calls, per
// spec.md §4.4:
//
//	for (pat <- rhs; rest...) yield body   => rhs.map(pat => for(rest) yield body)        [last generator]
//	for (pat <- rhs; rest...) yield body   => rhs.flatMap(pat => for(rest) yield body)     [non-last generator]
//	for (pat <- rhs; rest...) body         => rhs.foreach(pat => for(rest) body)
//	for (if cond; rest...) ...             => (... rhs.withFilter(cond => for(rest) ...))
//	for (pat = rhs; rest...) ...           => handled by wrapping the continuation in a
//	                                           Block that binds pat first
//
// isYield distinguishes a yielding for (uses map/flatMap) from a
// foreach-style for (uses foreach only, result discarded).
func MkFor(fresh *names.FreshNameSource, enums []Enumerator, body Tree, isYield bool, pos token.Position) Tree {
	return mkForRec(fresh, enums, body, isYield, pos)
}

func mkForRec(fresh *names.FreshNameSource, enums []Enumerator, body Tree, isYield bool, pos token.Position) Tree {
	if len(enums) == 0 {
		return body
	}
	head := enums[0]
	rest := enums[1:]

	switch e := head.(type) {
	case *Filter:
		// A filter directly after a generator is folded into that
		// generator's withFilter call below, so a bare Filter only
		// reaches here after some other clause (e.g. `pat = rhs`).
		// Treat it as a guarded If around the rest of the sequence.
		return &If{
			Base: Base{Pos: e.Pos},
			Cond:     e.Cond,
			Then:     mkForRec(fresh, rest, body, isYield, pos),
			Else:     Empty,
		}

	case *ForAssign:
		bound := &ValDef{
			Base: Base{Pos: e.Pos},
			Mods:     names.FlagSynthetic,
			Name:     bindName(e.Pat),
			TypeTree: Empty,
			Rhs:      e.Rhs,
		}
		continuation := mkForRec(fresh, rest, body, isYield, pos)
		return &Block{Base: Base{Pos: e.Pos}, Stats: []Tree{bound}, Expr: continuation}

	case *Generator:
		// A generator immediately followed by a Filter folds the
		// filter into a withFilter call on this generator's source,
		// per the standard comprehension desugaring.
		source := e.Rhs
		tail := rest
		for len(tail) > 0 {
			f, ok := tail[0].(*Filter)
			if !ok {
				break
			}
			guard := MkCaseFunction(fresh, clonePattern(e.Pat), f.Cond, f.Pos)
			source = &Apply{
				Base: Base{Pos: f.Pos},
				Fun:      &Select{Base: Base{Pos: f.Pos}, Qualifier: source, Name: "withFilter"},
				Args:     []Tree{guard},
			}
			tail = tail[1:]
		}

		if len(tail) == 0 {
			combinator := "foreach"
			if isYield {
				combinator = "map"
			}
			fn := MkCaseFunction(fresh, e.Pat, body, pos)
			return &Apply{
				Base: Base{Pos: e.Pos},
				Fun:      &Select{Base: Base{Pos: e.Pos}, Qualifier: source, Name: combinator},
				Args:     []Tree{fn},
			}
		}

		inner := mkForRec(fresh, tail, body, isYield, pos)
		combinator := "foreach"
		if isYield {
			combinator = "flatMap"
		}
		fn := MkCaseFunction(fresh, e.Pat, inner, e.Pos)
		return &Apply{
			Base: Base{Pos: e.Pos},
			Fun:      &Select{Base: Base{Pos: e.Pos}, Qualifier: source, Name: combinator},
			Args:     []Tree{fn},
		}
	}
	return body
}

func bindName(pat Tree) string {
	if name, ok := isSimpleBinding(pat); ok {
		return name
	}
	return string(names.Wildcard)
}

// clonePattern returns pat unchanged: patterns built by the parser are
// never mutated in place, so reuse across a withFilter guard and the
// generator's own case function is safe.
func clonePattern(pat Tree) Tree { return pat }

// MkPatDefs desugars `val pat = rhs` for a non-trivial pattern into a
// synthetic val bound to a one-case match plus one projecting val per
// name the pattern binds, per spec.md §4.3's pattern-ValDef rule.
func MkPatDefs(fresh *names.FreshNameSource, mods names.Flags, pat Tree, rhs Tree, boundNames []string, pos token.Position) []Tree {
	if name, ok := isSimpleBinding(pat); ok {
		return []Tree{&ValDef{Base: Base{Pos: pos}, Mods: mods, Name: name, TypeTree: Empty, Rhs: rhs}}
	}

	tmpName := string(fresh.FreshTermName("pat"))
	caseDef := &CaseDef{Base: Base{Pos: pos}, Pattern: pat, Guard: Empty,
		Body: mkTupleOf(boundNames, pos)}
	selector := rhs
	match := &Match{Base: Base{Pos: pos}, Selector: selector, Cases: []*CaseDef{caseDef}}
	tmp := &ValDef{Base: Base{Pos: pos}, Mods: names.FlagSynthetic, Name: tmpName, TypeTree: Empty, Rhs: match}

	out := []Tree{tmp}
	if len(boundNames) == 1 {
		out = append(out, &ValDef{
			Base: Base{Pos: pos}, Mods: mods, Name: boundNames[0], TypeTree: Empty,
			Rhs: &Ident{Base: Base{Pos: pos}, Name: tmpName},
		})
		return out
	}
	for i, n := range boundNames {
		proj := &Select{Base: Base{Pos: pos},
			Qualifier: &Ident{Base: Base{Pos: pos}, Name: tmpName},
			Name:      tupleAccessor(i),
		}
		out = append(out, &ValDef{Base: Base{Pos: pos}, Mods: mods, Name: n, TypeTree: Empty, Rhs: proj})
	}
	return out
}

func tupleAccessor(i int) string {
	digits := "_123456789"
	if i+1 < len(digits) {
		return "_" + string(digits[i+1])
	}
	return "_N"
}

func mkTupleOf(names_ []string, pos token.Position) Tree {
	if len(names_) == 1 {
		return &Ident{Base: Base{Pos: pos}, Name: names_[0]}
	}
	args := make([]Tree, len(names_))
	for i, n := range names_ {
		args[i] = &Ident{Base: Base{Pos: pos}, Name: n}
	}
	tupleName := "Tuple" + tupleArity(len(names_))
	return &Apply{Base: Base{Pos: pos}, Fun: &Ident{Base: Base{Pos: pos}, Name: tupleName}, Args: args}
}

func tupleArity(n int) string {
	digits := "0123456789"
	if n < len(digits) {
		return string(digits[n])
	}
	return "N"
}

// MkWhile desugars `while (cond) body` into the self-recursive
// LabelDef shape, per spec.md §4.5:
//
//	while$() = if (cond) { body; while$() } else ()
func MkWhile(fresh *names.FreshNameSource, cond Tree, body Tree, pos token.Position) Tree {
	label := string(fresh.FreshTermName("while"))
	call := &Apply{Base: Base{Pos: pos}, Fun: &Ident{Base: Base{Pos: pos}, Name: label}, Args: nil}
	loopBody := &Block{Base: Base{Pos: pos}, Stats: []Tree{body}, Expr: call}
	ifExpr := &If{Base: Base{Pos: pos}, Cond: cond, Then: loopBody, Else: &Literal{Base: Base{Pos: pos}, Kind: token.NULL, Value: nil}}
	return &LabelDef{Base: Base{Pos: pos}, Name: label, Params: nil, Rhs: ifExpr}
}

// MkDoWhile desugars `do body while (cond)` into:
//
//	doWhile$() = { body; if (cond) doWhile$() else () }
func MkDoWhile(fresh *names.FreshNameSource, body Tree, cond Tree, pos token.Position) Tree {
	label := string(fresh.FreshTermName("doWhile"))
	call := &Apply{Base: Base{Pos: pos}, Fun: &Ident{Base: Base{Pos: pos}, Name: label}, Args: nil}
	ifExpr := &If{Base: Base{Pos: pos}, Cond: cond, Then: call, Else: &Literal{Base: Base{Pos: pos}, Kind: token.NULL, Value: nil}}
	loopBody := &Block{Base: Base{Pos: pos}, Stats: []Tree{body}, Expr: ifExpr}
	return &LabelDef{Base: Base{Pos: pos}, Name: label, Params: nil, Rhs: loopBody}
}

// MkNew wraps a parsed Template in a New node.
func MkNew(tmpl *Template, pos token.Position) *New {
	return &New{Base: Base{Pos: pos}, Template: tmpl}
}

// MkAssign builds a plain assignment, or — when lhs is itself an
// Apply (`a(i) = v`) — the `update` call Scala-style assignable
// application desugars to.
func MkAssign(lhs Tree, rhs Tree, pos token.Position) Tree {
	if app, ok := lhs.(*Apply); ok {
		args := append(append([]Tree{}, app.Args...), rhs)
		return &Apply{
			Base: Base{Pos: pos},
			Fun:      &Select{Base: Base{Pos: pos}, Qualifier: app.Fun, Name: "update"},
			Args:     args,
		}
	}
	return &Assign{Base: Base{Pos: pos}, Lhs: lhs, Rhs: rhs}
}

// MkParents normalizes a class/object/trait's `extends`/`with` clause
// into a parent list, defaulting to AnyRef when no parent was written.
func MkParents(explicit []Tree, pos token.Position) []Tree {
	if len(explicit) > 0 {
		return explicit
	}
	return []Tree{&Ident{Base: Base{Pos: pos}, Name: "AnyRef"}}
}

// MkTemplate assembles a Template from parts the caller has already
// separated: early-initialized members, self, and body are stored as
// given, and parents go through MkParents.
func MkTemplate(parents []Tree, self *ValDef, early []Tree, body []Tree, pos token.Position) *Template {
	return &Template{Base: Base{Pos: pos}, Parents: MkParents(parents, pos), Self: self, Early: early, Body: body}
}

// MkClassDef assembles a ClassDef, synthesizing the primary
// constructor DefDef from the parsed parameter lists.
func MkClassDef(mods names.Flags, name string, typeParams []*TypeDef, ctorMods names.Flags, paramLists [][]*ValDef, tmpl *Template, pos token.Position) *ClassDef {
	ctor := &DefDef{
		Base:   Base{Pos: pos},
		Mods:       ctorMods,
		Name:       string(names.Constructor),
		ParamLists: paramLists,
		ReturnType: Empty,
		Rhs:        Empty,
	}
	return &ClassDef{Base: Base{Pos: pos}, Mods: mods, Name: name, TypeParams: typeParams, Ctor: ctor, Tmpl: tmpl}
}

// MkPackageObject wraps obj itself as the single statement of a
// PackageDef named pkgName, the desugaring `package object` applies
// per spec.md §3's package-object note.
func MkPackageObject(pkgName string, obj *ModuleDef, pos token.Position) *PackageDef {
	pid := &Ident{Base: Base{Pos: pos}, Name: pkgName}
	return &PackageDef{Base: Base{Pos: pos}, Pid: pid, Stats: []Tree{obj}}
}

// MkGenerator builds a Generator enumerator clause.
func MkGenerator(pat Tree, rhs Tree, pos token.Position) *Generator {
	return &Generator{Pos: pos, Pat: pat, Rhs: rhs}
}

// Copyright 2026 The Jsonnet-Go Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package parser implements a recursive-descent parser for Jsonnet source
// text, producing the AST defined in the sibling ast package. The parser
// and scanner are deliberately kept independent of the evaluator: the
// evaluator consumes only the ast package's node types.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jsonnet-go/jsonnet/syntax/ast"
	"github.com/jsonnet-go/jsonnet/syntax/errors"
	"github.com/jsonnet-go/jsonnet/syntax/literal"
	"github.com/jsonnet-go/jsonnet/syntax/scanner"
	"github.com/jsonnet-go/jsonnet/syntax/token"
)

// ParseFile parses the named source and returns its top-level expression.
func ParseFile(name string, src []byte) (ast.Expr, error) {
	return parse(name, src)
}

// ParseSnippet parses source text attributed to displayName, for use with
// in-memory (non-file) Jsonnet snippets.
func ParseSnippet(displayName string, src []byte) (ast.Expr, error) {
	return parse(displayName, src)
}

func parse(name string, src []byte) (ast.Expr, error) {
	file := token.NewFile(name, len(src))
	var errs errorList
	var s scanner.Scanner
	s.Init(file, src, func(pos token.Pos, msg string) {
		errs = append(errs, errors.New(errors.ParseError, pos, nil, "%s", msg))
	})
	p := &parser{scan: &s, file: file}
	p.next()
	p.next()
	expr := p.parseExpr()
	p.expect(token.EOF)
	errs = append(errs, p.errs...)
	if len(errs) > 0 {
		return nil, errs
	}
	return expr, nil
}

type errorList []error

func (e errorList) Error() string {
	var b strings.Builder
	for i, err := range e {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(err.Error())
	}
	return b.String()
}

type parser struct {
	scan *scanner.Scanner
	file *token.File

	pos token.Pos
	tok token.Token
	lit string

	// pos2/tok2/lit2 buffer the token after the current one, so
	// constructs like `f(x, y=1)` can be told apart from `f(x, y)` without
	// backtracking: peeking at tok2 answers "is this IDENT followed by
	// ASSIGN" before the identifier is consumed.
	pos2 token.Pos
	tok2 token.Token
	lit2 string

	errs []error
}

// next shifts the buffered lookahead token into the current position and
// scans a fresh lookahead token.
func (p *parser) next() {
	p.pos, p.tok, p.lit = p.pos2, p.tok2, p.lit2
	p.pos2, p.tok2, p.lit2 = p.scan.Scan()
}

func (p *parser) errorf(pos token.Pos, format string, args ...any) {
	p.errs = append(p.errs, errors.New(errors.ParseError, pos, nil, format, args...))
}

func (p *parser) expect(tok token.Token) token.Pos {
	pos := p.pos
	if p.tok != tok {
		p.errorf(p.pos, "expected %s, found %s", tok, describe(p.tok, p.lit))
	} else {
		p.next()
	}
	return pos
}

func describe(tok token.Token, lit string) string {
	if tok == token.IDENT || tok == token.NUMBER || tok == token.STRING {
		return fmt.Sprintf("%s %q", tok, lit)
	}
	return tok.String()
}

func (p *parser) accept(tok token.Token) bool {
	if p.tok == tok {
		p.next()
		return true
	}
	return false
}

// --- expression entry point ---------------------------------------------

// parseExpr parses any Jsonnet expression, including the prefix forms
// (local/if/function/assert/error/import) that are valid wherever an
// expression is expected, not only at statement position (Jsonnet has no
// statements).
func (p *parser) parseExpr() ast.Expr {
	switch p.tok {
	case token.LOCAL:
		return p.parseLocal()
	case token.IF:
		return p.parseIf()
	case token.FUNCTION:
		return p.parseFunctionLit()
	case token.ASSERT:
		return p.parseAssertExpr()
	case token.ERROR:
		pos := p.pos
		p.next()
		e := p.parseExpr()
		return &ast.Error{Base: ast.NewBase(pos), Expr: e}
	case token.IMPORT, token.IMPORTSTR, token.IMPORTBIN:
		return p.parseImport()
	default:
		return p.parseNullCoalesce()
	}
}

func (p *parser) parseLocal() ast.Expr {
	pos := p.pos
	p.next() // 'local'
	binds := p.parseBindList()
	p.expect(token.SEMI)
	body := p.parseExpr()
	return &ast.Local{Base: ast.NewBase(pos), Binds: binds, Body: body}
}

func (p *parser) parseBindList() []ast.LocalBind {
	var binds []ast.LocalBind
	for {
		binds = append(binds, p.parseBind())
		if !p.accept(token.COMMA) {
			break
		}
	}
	return binds
}

func (p *parser) parseBind() ast.LocalBind {
	name := ast.Identifier(p.expectIdentText())
	if p.tok == token.LPAREN {
		params := p.parseParams()
		p.expect(token.ASSIGN)
		body := p.parseExpr()
		fn := &ast.Function{Base: ast.NewBase(p.pos), Params: params, Body: body}
		return ast.LocalBind{Name: name, Body: fn}
	}
	p.expect(token.ASSIGN)
	body := p.parseExpr()
	return ast.LocalBind{Name: name, Body: body}
}

func (p *parser) expectIdentText() string {
	if p.tok != token.IDENT {
		p.errorf(p.pos, "expected identifier, found %s", describe(p.tok, p.lit))
		return ""
	}
	lit := p.lit
	p.next()
	return lit
}

func (p *parser) parseIf() ast.Expr {
	pos := p.pos
	p.next()
	cond := p.parseExpr()
	p.expect(token.THEN)
	then := p.parseExpr()
	var els ast.Expr
	if p.accept(token.ELSE) {
		els = p.parseExpr()
	}
	return &ast.If{Base: ast.NewBase(pos), Cond: cond, Then: then, Else: els}
}

func (p *parser) parseAssertExpr() ast.Expr {
	pos := p.pos
	a := p.parseAssert()
	p.expect(token.SEMI)
	rest := p.parseExpr()
	a.Rest = rest
	_ = pos
	return a
}

func (p *parser) parseAssert() *ast.Assert {
	pos := p.pos
	p.next() // 'assert'
	cond := p.parseExpr()
	var msg ast.Expr
	if p.accept(token.COLON) {
		msg = p.parseExpr()
	}
	return &ast.Assert{Base: ast.NewBase(pos), Cond: cond, Msg: msg}
}

func (p *parser) parseImport() ast.Expr {
	pos := p.pos
	var kind ast.ImportKind
	switch p.tok {
	case token.IMPORT:
		kind = ast.ImportJsonnet
	case token.IMPORTSTR:
		kind = ast.ImportString
	case token.IMPORTBIN:
		kind = ast.ImportBinary
	}
	p.next()
	if p.tok != token.STRING {
		p.errorf(p.pos, "expected string literal after import")
		return &ast.Import{Base: ast.NewBase(pos), Kind: kind}
	}
	path := p.parseStringLiteral()
	return &ast.Import{Base: ast.NewBase(pos), Kind: kind, Path: path.Value}
}

func (p *parser) parseFunctionLit() ast.Expr {
	pos := p.pos
	p.next() // 'function'
	params := p.parseParams()
	body := p.parseExpr()
	return &ast.Function{Base: ast.NewBase(pos), Params: params, Body: body}
}

func (p *parser) parseParams() []ast.Param {
	p.expect(token.LPAREN)
	var params []ast.Param
	for p.tok != token.RPAREN && p.tok != token.EOF {
		name := ast.Identifier(p.expectIdentText())
		var def ast.Expr
		if p.accept(token.ASSIGN) {
			def = p.parseExpr()
		}
		params = append(params, ast.Param{Name: name, Default: def})
		if !p.accept(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	return params
}

// --- binary-operator precedence ladder ------------------------------------

func (p *parser) parseNullCoalesce() ast.Expr {
	left := p.parseOr()
	for p.tok == token.NULCOAL {
		pos := p.pos
		p.next()
		right := p.parseOr()
		left = &ast.Binary{Base: ast.NewBase(pos), Left: left, Op: ast.OpNullCoalesce, Right: right}
	}
	return left
}

func (p *parser) parseOr() ast.Expr {
	left := p.parseAnd()
	for p.tok == token.OR {
		pos := p.pos
		p.next()
		right := p.parseAnd()
		left = &ast.Binary{Base: ast.NewBase(pos), Left: left, Op: ast.OpOr, Right: right}
	}
	return left
}

func (p *parser) parseAnd() ast.Expr {
	left := p.parseBitOr()
	for p.tok == token.AND {
		pos := p.pos
		p.next()
		right := p.parseBitOr()
		left = &ast.Binary{Base: ast.NewBase(pos), Left: left, Op: ast.OpAnd, Right: right}
	}
	return left
}

func (p *parser) parseBitOr() ast.Expr {
	left := p.parseBitXor()
	for p.tok == token.BOR {
		pos := p.pos
		p.next()
		right := p.parseBitXor()
		left = &ast.Binary{Base: ast.NewBase(pos), Left: left, Op: ast.OpBitOr, Right: right}
	}
	return left
}

func (p *parser) parseBitXor() ast.Expr {
	left := p.parseBitAnd()
	for p.tok == token.BXOR {
		pos := p.pos
		p.next()
		right := p.parseBitAnd()
		left = &ast.Binary{Base: ast.NewBase(pos), Left: left, Op: ast.OpBitXor, Right: right}
	}
	return left
}

func (p *parser) parseBitAnd() ast.Expr {
	left := p.parseEquality()
	for p.tok == token.BAND {
		pos := p.pos
		p.next()
		right := p.parseEquality()
		left = &ast.Binary{Base: ast.NewBase(pos), Left: left, Op: ast.OpBitAnd, Right: right}
	}
	return left
}

func (p *parser) parseEquality() ast.Expr {
	left := p.parseRelational()
	for p.tok == token.EQ || p.tok == token.NE {
		pos, tok := p.pos, p.tok
		p.next()
		right := p.parseRelational()
		op := ast.OpEq
		if tok == token.NE {
			op = ast.OpNe
		}
		left = &ast.Binary{Base: ast.NewBase(pos), Left: left, Op: op, Right: right}
	}
	return left
}

func (p *parser) parseRelational() ast.Expr {
	left := p.parseShift()
	for {
		var op ast.BinaryOp
		switch p.tok {
		case token.LT:
			op = ast.OpLt
		case token.LE:
			op = ast.OpLe
		case token.GT:
			op = ast.OpGt
		case token.GE:
			op = ast.OpGe
		case token.IN:
			op = ast.OpIn
		default:
			return left
		}
		pos := p.pos
		p.next()
		right := p.parseShift()
		left = &ast.Binary{Base: ast.NewBase(pos), Left: left, Op: op, Right: right}
	}
}

func (p *parser) parseShift() ast.Expr {
	left := p.parseAdditive()
	for p.tok == token.SHL || p.tok == token.SHR {
		pos, tok := p.pos, p.tok
		p.next()
		right := p.parseAdditive()
		op := ast.OpShl
		if tok == token.SHR {
			op = ast.OpShr
		}
		left = &ast.Binary{Base: ast.NewBase(pos), Left: left, Op: op, Right: right}
	}
	return left
}

func (p *parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for p.tok == token.ADD || p.tok == token.SUB {
		pos, tok := p.pos, p.tok
		p.next()
		right := p.parseMultiplicative()
		op := ast.OpAdd
		if tok == token.SUB {
			op = ast.OpSub
		}
		left = &ast.Binary{Base: ast.NewBase(pos), Left: left, Op: op, Right: right}
	}
	return left
}

func (p *parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()
	for p.tok == token.MUL || p.tok == token.QUO || p.tok == token.REM {
		pos, tok := p.pos, p.tok
		p.next()
		right := p.parseUnary()
		var op ast.BinaryOp
		switch tok {
		case token.MUL:
			op = ast.OpMul
		case token.QUO:
			op = ast.OpDiv
		case token.REM:
			op = ast.OpMod
		}
		left = &ast.Binary{Base: ast.NewBase(pos), Left: left, Op: op, Right: right}
	}
	return left
}

func (p *parser) parseUnary() ast.Expr {
	switch p.tok {
	case token.SUB, token.NOT, token.BNOT, token.ADD:
		pos, tok := p.pos, p.tok
		p.next()
		operand := p.parseUnary()
		var op ast.UnaryOp
		switch tok {
		case token.SUB:
			op = ast.OpNeg
		case token.NOT:
			op = ast.OpNot
		case token.BNOT:
			op = ast.OpBitNot
		case token.ADD:
			op = ast.OpPos
		}
		return &ast.Unary{Base: ast.NewBase(pos), Op: op, Operand: operand}
	default:
		return p.parsePostfix()
	}
}

// --- postfix: calls, indexing, slicing, object-apply ----------------------

func (p *parser) parsePostfix() ast.Expr {
	e := p.parsePrimary()
	for {
		switch p.tok {
		case token.DOT:
			pos := p.pos
			p.next()
			name := p.expectIdentText()
			e = p.indexField(e, pos, name, false)
		case token.LBRACK:
			pos := p.pos
			p.next()
			e = p.parseIndexOrSlice(e, pos, false)
		case token.LPAREN:
			e = p.parseCall(e)
		case token.LBRACE:
			// e { ... } sugar for e + { ... }
			pos := p.pos
			obj := p.parseObjectLit(pos)
			e = &ast.Binary{Base: ast.NewBase(pos), Left: e, Op: ast.OpAdd, Right: obj}
		default:
			return e
		}
	}
}

func (p *parser) indexField(target ast.Expr, pos token.Pos, name string, optional bool) ast.Expr {
	key := &ast.String{Base: ast.NewBase(pos), Value: name, Kind: ast.StringDouble}
	return &ast.Index{Base: ast.NewBase(pos), Target: target, Index: key, Optional: optional}
}

func (p *parser) parseIndexOrSlice(target ast.Expr, pos token.Pos, optional bool) ast.Expr {
	// already consumed '['
	var begin, end, step ast.Expr
	isSlice := false
	if p.tok != token.COLON && p.tok != token.RBRACK {
		begin = p.parseExpr()
	}
	if p.accept(token.COLON) {
		isSlice = true
		if p.tok != token.COLON && p.tok != token.RBRACK {
			end = p.parseExpr()
		}
		if p.accept(token.COLON) {
			if p.tok != token.RBRACK {
				step = p.parseExpr()
			}
		}
	}
	p.expect(token.RBRACK)
	if isSlice {
		return &ast.Slice{Base: ast.NewBase(pos), Target: target, BeginIndex: begin, EndIndex: end, Step: step}
	}
	return &ast.Index{Base: ast.NewBase(pos), Target: target, Index: begin, Optional: optional}
}

func (p *parser) parseCall(fn ast.Expr) ast.Expr {
	pos := p.pos
	p.next() // '('
	var args []ast.Arg
	seenNamed := false
	for p.tok != token.RPAREN && p.tok != token.EOF {
		if p.tok == token.IDENT && p.peekIsAssign() {
			name := ast.Identifier(p.lit)
			p.next()
			p.expect(token.ASSIGN)
			args = append(args, ast.Arg{Name: name, Expr: p.parseExpr()})
			seenNamed = true
		} else {
			if seenNamed {
				p.errorf(p.pos, "positional argument after named argument")
			}
			args = append(args, ast.Arg{Expr: p.parseExpr()})
		}
		if !p.accept(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	tailstrict := false
	if p.tok == token.TAILSTRICT {
		tailstrict = true
		p.next()
	}
	return &ast.Call{Base: ast.NewBase(pos), Fn: fn, Args: args, TailStrict: tailstrict}
}

// peekIsAssign reports whether the token after the current IDENT is '=',
// distinguishing a named call argument (`f(x=1)`) from a positional one
// that happens to be a bare variable reference (`f(x)`).
func (p *parser) peekIsAssign() bool {
	return p.tok2 == token.ASSIGN
}

// --- primary expressions ---------------------------------------------------

func (p *parser) parsePrimary() ast.Expr {
	pos := p.pos
	switch p.tok {
	case token.NULL:
		p.next()
		return &ast.Null{Base: ast.NewBase(pos)}
	case token.TRUE:
		p.next()
		return &ast.Bool{Base: ast.NewBase(pos), Value: true}
	case token.FALSE:
		p.next()
		return &ast.Bool{Base: ast.NewBase(pos), Value: false}
	case token.SELF:
		p.next()
		return &ast.Self{Base: ast.NewBase(pos)}
	case token.DOLLAR:
		p.next()
		return &ast.Dollar{Base: ast.NewBase(pos)}
	case token.SUPER:
		p.next()
		switch p.tok {
		case token.DOT:
			p.next()
			name := p.expectIdentText()
			key := &ast.String{Base: ast.NewBase(pos), Value: name, Kind: ast.StringDouble}
			return &ast.Index{Base: ast.NewBase(pos), Super: true, Index: key}
		case token.LBRACK:
			p.next()
			idx := p.parseExpr()
			p.expect(token.RBRACK)
			return &ast.Index{Base: ast.NewBase(pos), Super: true, Index: idx}
		default:
			p.errorf(p.pos, "expected . or [ after super, found %s", describe(p.tok, p.lit))
			return &ast.Null{Base: ast.NewBase(pos)}
		}
	case token.NUMBER:
		lit := p.lit
		p.next()
		v, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			p.errorf(pos, "invalid number literal %q: %s", lit, err)
		}
		return &ast.Number{Base: ast.NewBase(pos), Value: v, Text: lit}
	case token.STRING:
		return p.parseStringLiteral()
	case token.IDENT:
		name := p.lit
		p.next()
		return &ast.Var{Base: ast.NewBase(pos), Name: ast.Identifier(name)}
	case token.LPAREN:
		p.next()
		e := p.parseExpr()
		p.expect(token.RPAREN)
		return e
	case token.LBRACK:
		return p.parseArrayOrComp()
	case token.LBRACE:
		return p.parseObjectLit(pos)
	default:
		p.errorf(pos, "unexpected %s", describe(p.tok, p.lit))
		p.next()
		return &ast.Null{Base: ast.NewBase(pos)}
	}
}

// parseStringLiteral parses the current STRING token (quoted, verbatim, or
// block-string form) into its decoded value.
func (p *parser) parseStringLiteral() *ast.String {
	pos := p.pos
	lit := p.lit
	if p.tok != token.STRING {
		p.errorf(pos, "expected string literal, found %s", describe(p.tok, p.lit))
		p.next()
		return &ast.String{Base: ast.NewBase(pos)}
	}
	p.next()

	switch {
	case len(lit) > 0 && lit[0] == '@':
		// verbatim: @'...' or @"...", doubled delimiter is the only escape.
		body := lit[1:]
		quote := body[0]
		inner := body[1 : len(body)-1]
		inner = strings.ReplaceAll(inner, string(quote)+string(quote), string(quote))
		kind := ast.StringDouble
		if quote == '\'' {
			kind = ast.StringSingle
		}
		return &ast.String{Base: ast.NewBase(pos), Value: inner, Kind: kind}
	case len(lit) > 0 && (lit[0] == '"' || lit[0] == '\''):
		v, err := literal.Unquote(lit)
		if err != nil {
			p.errorf(pos, "%s", err)
		}
		kind := ast.StringDouble
		if lit[0] == '\'' {
			kind = ast.StringSingle
		}
		return &ast.String{Base: ast.NewBase(pos), Value: v, Kind: kind}
	default:
		// text block: the scanner hands back the already-joined raw lines.
		var lines []string
		if lit != "" {
			lines = strings.Split(lit, "\n")
		}
		return &ast.String{Base: ast.NewBase(pos), Value: literal.UnquoteBlock(lines), Kind: ast.StringBlock}
	}
}

// --- arrays and array comprehensions ---------------------------------------

func (p *parser) parseArrayOrComp() ast.Expr {
	pos := p.pos
	p.next() // '['
	if p.tok == token.RBRACK {
		p.next()
		return &ast.Array{Base: ast.NewBase(pos)}
	}
	first := p.parseExpr()
	if p.tok == token.FOR {
		clauses := p.parseCompClauses()
		p.expect(token.RBRACK)
		return &ast.ArrayComp{Base: ast.NewBase(pos), Body: first, Clauses: clauses}
	}
	elems := []ast.Expr{first}
	for p.accept(token.COMMA) {
		if p.tok == token.RBRACK {
			break
		}
		elems = append(elems, p.parseExpr())
	}
	p.expect(token.RBRACK)
	return &ast.Array{Base: ast.NewBase(pos), Elements: elems}
}

// parseCompClauses parses the `for x in e [if cond] ...` tail shared by
// array and object comprehensions. The caller has not consumed the leading
// 'for'.
func (p *parser) parseCompClauses() []ast.CompClause {
	var clauses []ast.CompClause
	for p.tok == token.FOR || p.tok == token.IF {
		if p.tok == token.FOR {
			p.next()
			name := ast.Identifier(p.expectIdentText())
			p.expect(token.IN)
			e := p.parseExpr()
			clauses = append(clauses, ast.CompClause{For: &ast.ForClause{Var: name, Expr: e}})
		} else {
			p.next()
			cond := p.parseExpr()
			clauses = append(clauses, ast.CompClause{If: &ast.IfClause{Cond: cond}})
		}
	}
	return clauses
}

// --- objects and object comprehensions --------------------------------------

// parseObjectLit parses an object literal or object comprehension, starting
// at the unconsumed '{'.
func (p *parser) parseObjectLit(pos token.Pos) ast.Expr {
	p.expect(token.LBRACE)
	var locals []ast.LocalBind
	var fields []ast.Field
	var asserts []ast.Assert
	for p.tok != token.RBRACE && p.tok != token.EOF {
		switch p.tok {
		case token.LOCAL:
			p.next()
			locals = append(locals, p.parseBind())
		case token.ASSERT:
			a := p.parseAssert()
			asserts = append(asserts, *a)
		default:
			field, isComp, clauses := p.parseField()
			if isComp {
				p.expect(token.RBRACE)
				return &ast.ObjectComp{Base: ast.NewBase(pos), Locals: locals, Field: field, Clauses: clauses}
			}
			fields = append(fields, field)
		}
		if !p.accept(token.COMMA) {
			break
		}
	}
	p.expect(token.RBRACE)
	return &ast.Object{Base: ast.NewBase(pos), Locals: locals, Fields: fields, Asserts: asserts}
}

// parseField parses one object member of field form (name separator body),
// including method-sugar (`name(params): body`) and, when the name is a
// computed `[e]` key, the trailing comprehension clauses if present.
func (p *parser) parseField() (ast.Field, bool, []ast.CompClause) {
	pos := p.pos
	var nameExpr ast.Expr
	nameIsExpr := false
	switch p.tok {
	case token.IDENT:
		name := p.lit
		p.next()
		nameExpr = &ast.String{Base: ast.NewBase(pos), Value: name, Kind: ast.StringDouble}
	case token.STRING:
		nameExpr = p.parseStringLiteral()
	case token.LBRACK:
		p.next()
		nameExpr = p.parseExpr()
		p.expect(token.RBRACK)
		nameIsExpr = true
	default:
		p.errorf(pos, "expected field name, found %s", describe(p.tok, p.lit))
		p.next()
		nameExpr = &ast.String{Base: ast.NewBase(pos)}
	}

	var params []ast.Param
	isMethod := false
	if p.tok == token.LPAREN {
		params = p.parseParams()
		isMethod = true
	}

	additive := false
	vis := ast.VisInherit
	switch p.tok {
	case token.PLUSCOLON:
		additive = true
		p.next()
	case token.COLON:
		p.next()
	case token.DCOLON:
		vis = ast.VisHidden
		p.next()
	case token.TCOLON:
		vis = ast.VisForced
		p.next()
	default:
		p.errorf(p.pos, "expected object field separator, found %s", describe(p.tok, p.lit))
	}

	bodyPos := p.pos
	body := p.parseExpr()
	if isMethod {
		body = &ast.Function{Base: ast.NewBase(bodyPos), Params: params, Body: body}
	}

	field := ast.Field{Name: nameExpr, NameIsExpr: nameIsExpr, Visibility: vis, Additive: additive, Body: body}
	if nameIsExpr && p.tok == token.FOR {
		clauses := p.parseCompClauses()
		return field, true, clauses
	}
	return field, false, nil
}

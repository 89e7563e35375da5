package parser

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"cool-frontend/ast"
	"cool-frontend/lexer"
	"cool-frontend/utils"
)

// Config controls optional parser behaviour.
type Config struct {
	// InjectBasicClasses prepends Object, IO, Int, String and Bool to
	// the parsed program.
	InjectBasicClasses bool
}

// Parser implements a recursive descent parser for COOL. The syntax tree
// is built bottom-up through the constructors of an ast.Tree, siblings in
// source order.
type Parser struct {
	l      *lexer.Lexer
	tree   *ast.Tree
	cfg    Config
	errs   *utils.ErrorLog
	logger *slog.Logger

	curToken  lexer.Token
	peekToken lexer.Token

	// err is the tree error that stopped the parse, such as running out
	// of memory. Syntax errors go to errs and do not stop it.
	err error
}

// NewParser creates a new Parser instance and primes the token stream.
func NewParser(l *lexer.Lexer, tree *ast.Tree, errs *utils.ErrorLog, logger *slog.Logger, cfg Config) *Parser {
	if logger == nil {
		logger = utils.Discard()
	}
	if errs == nil {
		errs = utils.NewErrorLog(logger)
	}
	p := &Parser{l: l, tree: tree, cfg: cfg, errs: errs, logger: logger}
	p.nextToken()
	p.nextToken()
	p.logger.Debug("initialized parser", "tree", tree.ID())
	return p
}

// nextToken advances the tokens.
func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

// error reports a syntax error at the current token.
func (p *Parser) error(msg string) {
	p.errs.Report("Parser", p.curToken.Line, p.curToken.Column, msg+" at token '"+p.curToken.Literal+"'")
}

// expect consumes a token of type tt or reports msg.
func (p *Parser) expect(tt lexer.TokenType, msg string) bool {
	if p.curToken.Type != tt {
		p.error(msg)
		return false
	}
	p.nextToken()
	return true
}

// check records a failed tree operation; the parse stops at the first one.
func (p *Parser) check(err error) bool {
	if err == nil {
		return true
	}
	if p.err == nil {
		p.err = err
		p.logger.Error("parse aborted", "err", err)
	}
	return false
}

// built passes a constructed expression through, recording err.
func (p *Parser) built(e ast.Expr, err error) ast.Expr {
	if !p.check(err) {
		return nil
	}
	return e
}

// drop releases partial results that will not be linked anywhere.
func (p *Parser) drop(exprs ...ast.Expr) {
	for _, e := range exprs {
		_ = p.tree.ReleaseExpr(e)
	}
}

// appendTo appends elem with add, releasing elem if the list refuses it.
func appendTo[L, E any](p *Parser, list L, elem E, add func(L, E) (L, error), release func(E) error) L {
	next, err := add(list, elem)
	if !p.check(err) {
		_ = release(elem)
		return list
	}
	return next
}

// ParseProgram parses the entire program and returns its class list. A
// non-nil error means the parse was aborted; the tree may then hold
// orphaned nodes and should be released as a whole.
func (p *Parser) ParseProgram() (*ast.ClassList, error) {
	p.logger.Debug("starting ParseProgram")
	var classes *ast.ClassList
	if p.cfg.InjectBasicClasses {
		var err error
		if classes, err = InjectBasicClasses(p.tree, classes); err != nil {
			_ = p.tree.ReleaseClassList(classes)
			return nil, err
		}
	}
	for p.curToken.Type != lexer.EOF && p.err == nil {
		if p.curToken.Type != lexer.CLASS {
			p.error("Expected 'class' keyword")
			p.nextToken()
			p.skipClass()
			continue
		}
		cls := p.parseClass()
		if cls == nil {
			p.skipClass()
			continue
		}
		classes = appendTo(p, classes, cls, p.tree.AppendClass, p.tree.ReleaseClass)
	}
	if p.err != nil {
		_ = p.tree.ReleaseClassList(classes)
		return nil, p.err
	}
	p.logger.Debug("finished ParseProgram", "classes", classes.Len())
	return classes, nil
}

// skipClass moves to the next 'class' keyword.
func (p *Parser) skipClass() {
	for p.curToken.Type != lexer.CLASS && p.curToken.Type != lexer.EOF {
		p.nextToken()
	}
}

// skipFeature moves past the ';' ending the current feature, stopping at
// the '}' that closes the class.
func (p *Parser) skipFeature() {
	depth := 0
	for p.curToken.Type != lexer.EOF {
		switch p.curToken.Type {
		case lexer.LBRACE:
			depth++
		case lexer.RBRACE:
			if depth == 0 {
				return
			}
			depth--
		case lexer.SEMI:
			if depth == 0 {
				p.nextToken()
				return
			}
		}
		p.nextToken()
	}
}

// parseClass parses a single class declaration.
func (p *Parser) parseClass() *ast.Class {
	p.nextToken() // class
	if p.curToken.Type != lexer.TYPEID {
		p.error("Expected class name")
		return nil
	}
	nameTok := p.curToken
	p.nextToken()
	var parent string
	if p.curToken.Type == lexer.INHERITS {
		p.nextToken()
		if p.curToken.Type != lexer.TYPEID {
			p.error("Expected parent class name after 'inherits'")
			return nil
		}
		parent = p.curToken.Literal
		p.nextToken()
	}
	if !p.expect(lexer.LBRACE, "Expected '{' after class name") {
		return nil
	}
	p.logger.Debug("parsing class", "name", nameTok.Literal, "parent", parent)

	var features *ast.FeatureList
	for p.curToken.Type != lexer.RBRACE && p.curToken.Type != lexer.EOF && p.err == nil {
		f := p.parseFeature()
		if f == nil {
			p.skipFeature()
			continue
		}
		features = appendTo(p, features, f, p.tree.AppendFeature, p.tree.ReleaseFeature)
	}
	if p.err != nil || !p.expect(lexer.RBRACE, "Expected '}' after class features") {
		_ = p.tree.ReleaseFeatureList(features)
		return nil
	}
	p.expect(lexer.SEMI, "Expected ';' after class declaration")

	cls, err := p.tree.NewClass(nameTok.Literal, parent, features)
	if err != nil {
		if errors.Is(err, ast.ErrInvalidHierarchy) {
			p.errs.Report("Parser", nameTok.Line, nameTok.Column, "Class "+nameTok.Literal+" cannot inherit from itself")
		} else {
			p.check(err)
		}
		_ = p.tree.ReleaseFeatureList(features)
		return nil
	}
	return cls
}

func (p *Parser) parseFeature() *ast.Feature {
	if p.curToken.Type != lexer.OBJECTID {
		p.error("Expected feature name")
		return nil
	}
	name := p.curToken.Literal
	p.nextToken()
	switch p.curToken.Type {
	case lexer.LPAREN:
		return p.parseMethod(name)
	case lexer.COLON:
		return p.parseAttribute(name)
	}
	p.error("Expected '(' (method) or ':' (attribute)")
	return nil
}

// parseAttribute parses name : Type [<- expr];
func (p *Parser) parseAttribute(name string) *ast.Feature {
	p.nextToken() // :
	if p.curToken.Type != lexer.TYPEID {
		p.error("Expected attribute type")
		return nil
	}
	typ := p.curToken.Literal
	p.nextToken()
	var init ast.Expr
	if p.curToken.Type == lexer.ASSIGN {
		p.nextToken()
		if init = p.parseExpression(); init == nil {
			return nil
		}
	}
	if !p.expect(lexer.SEMI, "Expected ';' after attribute") {
		p.drop(init)
		return nil
	}
	attr, err := p.tree.NewAttribute(name, typ, init)
	if !p.check(err) {
		return nil
	}
	return attr
}

// parseMethod parses name(formals) : Type { expr };
func (p *Parser) parseMethod(name string) *ast.Feature {
	p.nextToken() // (
	formals, ok := p.parseFormalList()
	if !ok {
		return nil
	}
	fail := func(body ast.Expr) *ast.Feature {
		_ = p.tree.ReleaseFormalList(formals)
		p.drop(body)
		return nil
	}
	if !p.expect(lexer.RPAREN, "Expected ')' after formal list in method declaration") ||
		!p.expect(lexer.COLON, "Expected ':' after method parameters") {
		return fail(nil)
	}
	if p.curToken.Type != lexer.TYPEID {
		p.error("Expected method return type")
		return fail(nil)
	}
	typ := p.curToken.Literal
	p.nextToken()
	if !p.expect(lexer.LBRACE, "Expected '{' to start method body") {
		return fail(nil)
	}
	body := p.parseExpression()
	if body == nil {
		return fail(nil)
	}
	if !p.expect(lexer.RBRACE, "Expected '}' after method body") ||
		!p.expect(lexer.SEMI, "Expected ';' after method") {
		return fail(body)
	}
	m, err := p.tree.NewMethod(name, formals, typ, body)
	if !p.check(err) {
		return nil
	}
	return m
}

// parseFormalList parses a comma-separated list of formal parameters up
// to, but not including, the closing ')'.
func (p *Parser) parseFormalList() (*ast.FormalList, bool) {
	var formals *ast.FormalList
	if p.curToken.Type == lexer.RPAREN {
		return nil, true
	}
	for {
		if p.curToken.Type != lexer.OBJECTID {
			p.error("Expected identifier in formal")
			break
		}
		name := p.curToken.Literal
		p.nextToken()
		if !p.expect(lexer.COLON, "Expected ':' in formal") {
			break
		}
		if p.curToken.Type != lexer.TYPEID {
			p.error("Expected type in formal")
			break
		}
		typ := p.curToken.Literal
		p.nextToken()
		f, err := p.tree.NewFormal(name, typ)
		if !p.check(err) {
			break
		}
		if formals = appendTo(p, formals, f, p.tree.AppendFormal, p.tree.ReleaseFormal); p.err != nil {
			break
		}
		if p.curToken.Type != lexer.COMMA {
			return formals, true
		}
		p.nextToken()
	}
	_ = p.tree.ReleaseFormalList(formals)
	return nil, false
}

// parseExpression parses an expression.
func (p *Parser) parseExpression() ast.Expr {
	return p.parseAssign()
}

// parseAssign parses id <- expr, which is right associative and binds
// loosest of all.
func (p *Parser) parseAssign() ast.Expr {
	if p.curToken.Type == lexer.OBJECTID && p.peekToken.Type == lexer.ASSIGN {
		name := p.curToken.Literal
		p.nextToken()
		p.nextToken()
		value := p.parseAssign()
		if value == nil {
			return nil
		}
		return p.built(p.tree.NewAssign(name, value))
	}
	return p.parseNot()
}

func (p *Parser) parseNot() ast.Expr {
	if p.curToken.Type != lexer.NOT {
		return p.parseCompare()
	}
	p.nextToken()
	operand := p.parseNot()
	if operand == nil {
		return nil
	}
	return p.built(p.tree.NewNot(operand))
}

var (
	compareOps = map[lexer.TokenType]ast.BinaryOp{lexer.LT: ast.Less, lexer.LE: ast.LessEqual, lexer.EQ: ast.Equal}
	addOps     = map[lexer.TokenType]ast.BinaryOp{lexer.PLUS: ast.Plus, lexer.MINUS: ast.Minus}
	mulOps     = map[lexer.TokenType]ast.BinaryOp{lexer.TIMES: ast.Times, lexer.DIVIDE: ast.Divide}
)

func (p *Parser) parseCompare() ast.Expr { return p.parseBinary(compareOps, p.parseAddSub) }
func (p *Parser) parseAddSub() ast.Expr  { return p.parseBinary(addOps, p.parseMulDiv) }
func (p *Parser) parseMulDiv() ast.Expr  { return p.parseBinary(mulOps, p.parseIsVoid) }

// parseBinary parses a left associative chain of the operators in ops.
func (p *Parser) parseBinary(ops map[lexer.TokenType]ast.BinaryOp, operand func() ast.Expr) ast.Expr {
	left := operand()
	for left != nil {
		op, ok := ops[p.curToken.Type]
		if !ok {
			return left
		}
		p.nextToken()
		right := operand()
		if right == nil {
			p.drop(left)
			return nil
		}
		left = p.built(p.tree.NewBinary(op, left, right))
	}
	return nil
}

func (p *Parser) parseIsVoid() ast.Expr {
	if p.curToken.Type != lexer.ISVOID {
		return p.parseNeg()
	}
	p.nextToken()
	operand := p.parseIsVoid()
	if operand == nil {
		return nil
	}
	return p.built(p.tree.NewIsVoid(operand))
}

func (p *Parser) parseNeg() ast.Expr {
	if p.curToken.Type != lexer.NEG {
		return p.parseDispatch()
	}
	p.nextToken()
	operand := p.parseNeg()
	if operand == nil {
		return nil
	}
	return p.built(p.tree.NewNeg(operand))
}

// parseDispatch parses dispatch expressions (static and dynamic).
func (p *Parser) parseDispatch() ast.Expr {
	expr := p.parsePrimary()
	for expr != nil {
		switch p.curToken.Type {
		case lexer.AT:
			p.nextToken()
			if p.curToken.Type != lexer.TYPEID {
				p.error("Expected type after '@'")
				p.drop(expr)
				return nil
			}
			typ := p.curToken.Literal
			p.nextToken()
			if !p.expect(lexer.DOT, "Expected '.' after '@Type'") {
				p.drop(expr)
				return nil
			}
			method, args, ok := p.parseCall()
			if !ok {
				p.drop(expr)
				return nil
			}
			expr = p.built(p.tree.NewStaticDispatch(expr, typ, method, args))
		case lexer.DOT:
			p.nextToken()
			method, args, ok := p.parseCall()
			if !ok {
				p.drop(expr)
				return nil
			}
			expr = p.built(p.tree.NewDispatch(expr, method, args))
		default:
			return expr
		}
	}
	return nil
}

// parseCall parses method(args) after a '.'.
func (p *Parser) parseCall() (string, *ast.ExprList, bool) {
	if p.curToken.Type != lexer.OBJECTID {
		p.error("Expected method name in dispatch")
		return "", nil, false
	}
	method := p.curToken.Literal
	p.nextToken()
	if !p.expect(lexer.LPAREN, "Expected '(' in dispatch") {
		return "", nil, false
	}
	args, ok := p.parseArgs()
	return method, args, ok
}

// parseArgs parses a comma-separated list of expressions and the ')'
// that ends it.
func (p *Parser) parseArgs() (*ast.ExprList, bool) {
	if p.curToken.Type == lexer.RPAREN {
		p.nextToken()
		return nil, true
	}
	var args *ast.ExprList
	for {
		e := p.parseExpression()
		if e == nil {
			break
		}
		if args = appendTo(p, args, e, p.tree.AppendExpr, p.tree.ReleaseExpr); p.err != nil {
			break
		}
		if p.curToken.Type == lexer.COMMA {
			p.nextToken()
			continue
		}
		if p.expect(lexer.RPAREN, "Expected ')' after arguments") {
			return args, true
		}
		break
	}
	_ = p.tree.ReleaseExprList(args)
	return nil, false
}

// parsePrimary parses primary expressions.
func (p *Parser) parsePrimary() ast.Expr {
	switch p.curToken.Type {
	case lexer.LPAREN:
		p.nextToken()
		ex := p.parseExpression()
		if ex == nil {
			return nil
		}
		if !p.expect(lexer.RPAREN, "Expected ')' after expression") {
			p.drop(ex)
			return nil
		}
		return ex
	case lexer.LBRACE:
		return p.parseBlock()
	case lexer.IF:
		return p.parseIf()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.LET:
		return p.parseLet()
	case lexer.CASE:
		return p.parseCase()
	case lexer.NEW:
		p.nextToken()
		if p.curToken.Type != lexer.TYPEID {
			p.error("Expected type after 'new'")
			return nil
		}
		typ := p.curToken.Literal
		p.nextToken()
		return p.built(p.tree.NewNew(typ))
	case lexer.BOOL_CONST:
		val := strings.EqualFold(p.curToken.Literal, "true")
		p.nextToken()
		return p.built(p.tree.NewBool(val))
	case lexer.INT_CONST:
		num, err := strconv.Atoi(p.curToken.Literal)
		if err != nil {
			p.error("Invalid integer constant")
			return nil
		}
		p.nextToken()
		return p.built(p.tree.NewInt(num))
	case lexer.STR_CONST:
		s := p.curToken.Literal
		p.nextToken()
		return p.built(p.tree.NewString(s))
	case lexer.OBJECTID:
		name := p.curToken.Literal
		p.nextToken()
		if p.curToken.Type != lexer.LPAREN {
			return p.built(p.tree.NewObject(name))
		}
		p.nextToken()
		args, ok := p.parseArgs()
		if !ok {
			return nil
		}
		self := p.built(p.tree.NewObject("self"))
		if self == nil {
			return nil
		}
		return p.built(p.tree.NewDispatch(self, name, args))
	default:
		p.error("Unexpected token in expression")
		return nil
	}
}

// parseBlock parses { expr; ... }.
func (p *Parser) parseBlock() ast.Expr {
	p.nextToken() // {
	var body *ast.ExprList
	for p.curToken.Type != lexer.RBRACE {
		e := p.parseExpression()
		if e == nil {
			_ = p.tree.ReleaseExprList(body)
			return nil
		}
		if body = appendTo(p, body, e, p.tree.AppendExpr, p.tree.ReleaseExpr); p.err != nil {
			return nil
		}
		if !p.expect(lexer.SEMI, "Expected ';' after expression in block") {
			_ = p.tree.ReleaseExprList(body)
			return nil
		}
	}
	if body == nil {
		p.error("Empty block")
		return nil
	}
	p.nextToken() // }
	return p.built(p.tree.NewBlock(body))
}

// parseIf parses if cond then expr else expr fi.
func (p *Parser) parseIf() ast.Expr {
	p.nextToken()
	cond := p.parseExpression()
	if cond == nil {
		return nil
	}
	if !p.expect(lexer.THEN, "Expected 'then' in if") {
		p.drop(cond)
		return nil
	}
	thenPart := p.parseExpression()
	if thenPart == nil {
		p.drop(cond)
		return nil
	}
	if !p.expect(lexer.ELSE, "Expected 'else' in if") {
		p.drop(cond, thenPart)
		return nil
	}
	elsePart := p.parseExpression()
	if elsePart == nil {
		p.drop(cond, thenPart)
		return nil
	}
	if !p.expect(lexer.FI, "Expected 'fi' at end of if") {
		p.drop(cond, thenPart, elsePart)
		return nil
	}
	return p.built(p.tree.NewIf(cond, thenPart, elsePart))
}

// parseWhile parses while cond loop expr pool.
func (p *Parser) parseWhile() ast.Expr {
	p.nextToken()
	cond := p.parseExpression()
	if cond == nil {
		return nil
	}
	if !p.expect(lexer.LOOP, "Expected 'loop' in while") {
		p.drop(cond)
		return nil
	}
	body := p.parseExpression()
	if body == nil {
		p.drop(cond)
		return nil
	}
	if !p.expect(lexer.POOL, "Expected 'pool' after while body") {
		p.drop(cond, body)
		return nil
	}
	return p.built(p.tree.NewWhile(cond, body))
}

type letBinding struct {
	name, typ string
	init      ast.Expr
}

// parseLet parses let id : T [<- expr], ... in expr. Each binding becomes
// one LetExpr nested in the previous one.
func (p *Parser) parseLet() ast.Expr {
	p.nextToken()
	var bindings []letBinding
	fail := func() ast.Expr {
		for _, b := range bindings {
			p.drop(b.init)
		}
		return nil
	}
	for {
		if p.curToken.Type != lexer.OBJECTID {
			p.error("Expected identifier in let binding")
			return fail()
		}
		b := letBinding{name: p.curToken.Literal}
		p.nextToken()
		if !p.expect(lexer.COLON, "Expected ':' in let binding") {
			return fail()
		}
		if p.curToken.Type != lexer.TYPEID {
			p.error("Expected type in let binding")
			return fail()
		}
		b.typ = p.curToken.Literal
		p.nextToken()
		if p.curToken.Type == lexer.ASSIGN {
			p.nextToken()
			if b.init = p.parseExpression(); b.init == nil {
				return fail()
			}
		}
		bindings = append(bindings, b)
		if p.curToken.Type != lexer.COMMA {
			break
		}
		p.nextToken()
	}
	if !p.expect(lexer.IN, "Expected 'in' after let bindings") {
		return fail()
	}
	body := p.parseExpression()
	if body == nil {
		return fail()
	}
	for i := len(bindings) - 1; i >= 0 && body != nil; i-- {
		b := bindings[i]
		body = p.built(p.tree.NewLet(b.name, b.typ, b.init, body))
	}
	return body
}

// parseCase parses case expr of branches esac.
func (p *Parser) parseCase() ast.Expr {
	p.nextToken()
	scrutinee := p.parseExpression()
	if scrutinee == nil {
		return nil
	}
	if !p.expect(lexer.OF, "Expected 'of' in case") {
		p.drop(scrutinee)
		return nil
	}
	branches, ok := p.parseBranchList()
	if !ok {
		p.drop(scrutinee)
		return nil
	}
	if !p.expect(lexer.ESAC, "Expected 'esac' after branch list") {
		p.drop(scrutinee)
		_ = p.tree.ReleaseCaseList(branches)
		return nil
	}
	return p.built(p.tree.NewCaseExpr(scrutinee, branches))
}

// parseBranchList parses one or more id : Type => expr; branches.
func (p *Parser) parseBranchList() (*ast.CaseList, bool) {
	var branches *ast.CaseList
	for {
		if p.curToken.Type != lexer.OBJECTID {
			p.error("Expected case branch")
			break
		}
		name := p.curToken.Literal
		p.nextToken()
		if !p.expect(lexer.COLON, "Expected ':' in case branch") {
			break
		}
		if p.curToken.Type != lexer.TYPEID {
			p.error("Expected type in case branch")
			break
		}
		typ := p.curToken.Literal
		p.nextToken()
		if !p.expect(lexer.DARROW, "Expected '=>' in case branch") {
			break
		}
		body := p.parseExpression()
		if body == nil {
			break
		}
		if !p.expect(lexer.SEMI, "Expected ';' after case branch") {
			p.drop(body)
			break
		}
		c, err := p.tree.NewCase(name, typ, body)
		if !p.check(err) {
			break
		}
		if branches = appendTo(p, branches, c, p.tree.AppendCase, p.tree.ReleaseCase); p.err != nil {
			break
		}
		if p.curToken.Type == lexer.ESAC {
			return branches, true
		}
	}
	_ = p.tree.ReleaseCaseList(branches)
	return nil, false
}

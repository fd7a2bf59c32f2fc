package main

import "fmt"

// Parser is recursive-descent for declarations and statements, with
// precedence-climbing for expressions. It never returns a partial AST:
// on a mismatched token it reports the error in the reference's format
// and terminates the process immediately.
type Parser struct {
	lexer  *Lexer
	arena  *Arena
	path   string
	source string
}

func NewParser(arena *Arena, path, source string) *Parser {
	return &Parser{lexer: NewLexer(source), arena: arena, path: path, source: source}
}

func (p *Parser) lineAt(loc Loc) string {
	end := loc.Bol
	for end < len(p.source) && p.source[end] != '\n' {
		end++
	}
	return p.source[loc.Bol:end]
}

func (p *Parser) fail(tok Token, expected string) {
	err := syntaxErrorAt(p.path, tok.Loc, p.lineAt(tok.Loc),
		"got '%s' token but expected %s", tok.Text, expected)
	fmt.Fprintln(stderrWriter, err.Format())
	osExit(1)
}

func (p *Parser) failf(loc Loc, format string, args ...any) {
	err := syntaxErrorAt(p.path, loc, p.lineAt(loc), format, args...)
	fmt.Fprintln(stderrWriter, err.Format())
	osExit(1)
}

func (p *Parser) expect(kind TokenKind) Token {
	tok := p.lexer.Next()
	if tok.Kind != kind {
		p.fail(tok, fmt.Sprintf("<%s>", kind))
	}
	return tok
}

func (p *Parser) skipLineFeeds() {
	for p.lexer.Peek().Kind == TokLineFeed {
		p.lexer.Next()
	}
}

// ParseTranslationUnit parses the whole file: zero or more function
// definitions up to EOF.
func (p *Parser) ParseTranslationUnit() *TranslationUnit {
	unit := newTranslationUnit(p.arena, Loc{})
	p.skipLineFeeds()
	for p.lexer.Peek().Kind != TokEOF {
		unit.Decls.Append(p.parseFnDef())
		p.skipLineFeeds()
	}
	return unit
}

func (p *Parser) parseFnDef() *FnDef {
	fnTok := p.expect(TokFn)
	p.skipLineFeeds()
	id := p.expect(TokIdentifier)
	p.skipLineFeeds()
	p.expect(TokOParen)
	p.skipLineFeeds()
	params := p.parseParams()
	p.expect(TokCParen)
	p.skipLineFeeds()
	p.expect(TokColon)
	p.skipLineFeeds()
	returnType := p.parseType()
	p.skipLineFeeds()
	body := p.parseBlock()
	return newFnDef(p.arena, fnTok.Loc, id.Text, params, returnType, body)
}

func (p *Parser) parseParams() *List[*Param] {
	params := NewList[*Param](p.arena)
	if p.lexer.Peek().Kind == TokCParen {
		return params
	}
	for {
		p.skipLineFeeds()
		idTok := p.expect(TokIdentifier)
		p.expect(TokColon)
		typ := p.parseType()
		params.Append(newParam(p.arena, idTok.Loc, idTok.Text, typ))
		p.skipLineFeeds()
		if p.lexer.Peek().Kind != TokComma {
			break
		}
		p.lexer.Next()
	}
	return params
}

// parseType parses `ID { '*' }`: a named type optionally followed by
// one or more pointer markers, built innermost-first so `u32**` reads
// as pointer-to-pointer-to-u32.
func (p *Parser) parseType() *Type {
	idTok := p.expect(TokIdentifier)
	typ := newUnknownType(p.arena, idTok.Text)
	for p.lexer.Peek().Kind == TokStar {
		p.lexer.Next()
		typ = newPointerType(p.arena, typ)
	}
	return typ
}

func (p *Parser) parseBlock() *Block {
	oc := p.expect(TokOCurly)
	block := newBlock(p.arena, oc.Loc)
	p.skipLineFeeds()
	for p.lexer.Peek().Kind != TokCCurly {
		stmt := p.parseStmt()
		block.Nodes.Append(stmt)
		if p.lexer.Peek().Kind != TokCCurly {
			p.expect(TokLineFeed)
			p.skipLineFeeds()
		}
	}
	p.expect(TokCCurly)
	return block
}

func (p *Parser) parseStmt() Node {
	switch p.lexer.Peek().Kind {
	case TokReturn:
		return p.parseReturnStmt()
	case TokIf:
		return p.parseIfStmt()
	case TokWhile:
		return p.parseWhileStmt()
	case TokVar:
		return p.parseVarDef()
	case TokIdentifier:
		if p.lexer.Lookahead(2).Kind == TokEq {
			return p.parseVarAssign()
		}
		return p.parseExpr()
	default:
		return p.parseExpr()
	}
}

func (p *Parser) parseReturnStmt() Node {
	tok := p.expect(TokReturn)
	expr := p.parseExpr()
	return newReturnStmt(p.arena, tok.Loc, expr)
}

func (p *Parser) parseIfStmt() Node {
	tok := p.expect(TokIf)
	cond := p.parseExpr()
	p.skipLineFeeds()
	then := p.parseBlock()

	if p.lexer.Peek().Kind != TokElse {
		return newIfStmt(p.arena, tok.Loc, cond, then, nil)
	}

	p.lexer.Next()
	p.skipLineFeeds()
	if p.lexer.Peek().Kind == TokIf {
		return newIfStmt(p.arena, tok.Loc, cond, then, p.parseIfStmt())
	}
	return newIfStmt(p.arena, tok.Loc, cond, then, p.parseBlock())
}

func (p *Parser) parseWhileStmt() Node {
	tok := p.expect(TokWhile)
	cond := p.parseExpr()
	p.skipLineFeeds()
	body := p.parseBlock()
	return newWhileStmt(p.arena, tok.Loc, cond, body)
}

func (p *Parser) parseVarDef() Node {
	tok := p.expect(TokVar)
	idTok := p.expect(TokIdentifier)
	p.expect(TokColon)
	typ := p.parseType()
	p.expect(TokEq)
	init := p.parseExpr()
	return newVarDef(p.arena, tok.Loc, idTok.Text, typ, init)
}

func (p *Parser) parseVarAssign() Node {
	idTok := p.expect(TokIdentifier)
	ref := newRef(p.arena, idTok.Loc, idTok.Text)
	eqTok := p.expect(TokEq)
	value := p.parseExpr()
	return newVarAssign(p.arena, eqTok.Loc, ref, value)
}

// Precedence levels, low to high; all left-associative.
var binOpPrecedence = map[TokenKind]int{
	TokLogicalOr:  1,
	TokLogicalAnd: 2,
	TokPipe:       3,
	TokCaret:      4,
	TokAmp:        5,
	TokCmpEq:      6,
	TokCmpNeq:     6,
	TokLt:         7,
	TokCmpLeq:     7,
	TokGt:         7,
	TokCmpGeq:     7,
	TokShl:        8,
	TokShr:        8,
	TokPlus:       9,
	TokDash:       9,
	TokStar:       10,
	TokSlash:      10,
	TokPercent:    10,
}

func (p *Parser) parseExpr() Node {
	return p.parseBinary(p.parseUnary(), 1)
}

// parseBinary implements precedence climbing: lhs has already been
// parsed; it consumes operators with precedence >= minPrec.
func (p *Parser) parseBinary(lhs Node, minPrec int) Node {
	for {
		tok := p.lexer.Peek()
		prec, isOp := binOpPrecedence[tok.Kind]
		if !isOp || prec < minPrec {
			return lhs
		}
		opTok := p.lexer.Next()
		rhs := p.parseUnary()
		for {
			nextTok := p.lexer.Peek()
			nextPrec, nextIsOp := binOpPrecedence[nextTok.Kind]
			if !nextIsOp || nextPrec <= prec {
				break
			}
			rhs = p.parseBinary(rhs, prec+1)
		}
		lhs = newBinaryOp(p.arena, opTok.Loc, binaryOpKindFromToken(opTok.Kind), lhs, rhs)
	}
}

func (p *Parser) parseUnary() Node {
	tok := p.lexer.Peek()
	var op UnaryOpKind
	switch tok.Kind {
	case TokPlus:
		op = UnaryPlus
	case TokDash:
		op = UnaryMinus
	case TokTilde:
		op = UnaryNot
	case TokBang:
		op = UnaryLNot
	case TokAmp:
		op = UnaryAddrOf
	case TokStar:
		op = UnaryDeref
	default:
		return p.parseFactor()
	}
	p.lexer.Next()
	operand := p.parseUnary()
	return newUnaryOp(p.arena, tok.Loc, op, operand)
}

func (p *Parser) parseFactor() Node {
	tok := p.lexer.Peek()
	switch tok.Kind {
	case TokNumber:
		p.lexer.Next()
		return newLiteralU32(p.arena, tok.Loc, parseU32(tok.Text))

	case TokIdentifier:
		if p.lexer.Lookahead(2).Kind == TokOParen {
			return p.parseCall()
		}
		p.lexer.Next()
		return newRef(p.arena, tok.Loc, tok.Text)

	case TokOParen:
		p.lexer.Next()
		inner := p.parseExpr()
		p.expect(TokCParen)
		return inner

	default:
		p.fail(tok, "an expression")
		return nil
	}
}

func (p *Parser) parseCall() Node {
	idTok := p.expect(TokIdentifier)
	p.expect(TokOParen)
	args := NewList[Node](p.arena)
	p.skipLineFeeds()
	if p.lexer.Peek().Kind != TokCParen {
		for {
			p.skipLineFeeds()
			args.Append(p.parseExpr())
			p.skipLineFeeds()
			if p.lexer.Peek().Kind != TokComma {
				break
			}
			p.lexer.Next()
		}
	}
	p.skipLineFeeds()
	p.expect(TokCParen)
	return newFnCall(p.arena, idTok.Loc, idTok.Text, args)
}

// parseU32 decodes a decimal digit run into a uint32, matching the
// lexer's guarantee that a TokNumber's text is exactly [0-9]+.
func parseU32(text string) uint32 {
	var v uint64
	for i := 0; i < len(text); i++ {
		v = v*10 + uint64(text[i]-'0')
	}
	return uint32(v)
}

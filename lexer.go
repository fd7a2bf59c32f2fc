package main

// Lexer is a pure byte-cursor state machine over a source buffer; it
// has no token buffer of its own. n-token lookahead is implemented by
// saving the cursor, scanning n tokens, and restoring it.
type Lexer struct {
	source string
	offset int
	row    int
	bol    int
}

// NewLexer initializes a Lexer over source.
func NewLexer(source string) *Lexer {
	return &Lexer{source: source}
}

// lexerState is the saved cursor used by lookahead.
type lexerState struct {
	offset, row, bol int
}

func (lx *Lexer) save() lexerState {
	return lexerState{lx.offset, lx.row, lx.bol}
}

func (lx *Lexer) restore(s lexerState) {
	lx.offset, lx.row, lx.bol = s.offset, s.row, s.bol
}

func (lx *Lexer) isEOF() bool {
	return lx.offset >= len(lx.source)
}

func (lx *Lexer) current() byte {
	return lx.source[lx.offset]
}

// skip advances the cursor by one byte, tracking row/bol on newline.
func (lx *Lexer) skip() {
	if lx.current() == '\n' {
		lx.row++
		lx.offset++
		lx.bol = lx.offset
		return
	}
	lx.offset++
}

func isSpaceNotLF(c byte) bool {
	return c != '\n' && (c == ' ' || c == '\t' || c == '\r' || c == '\v' || c == '\f')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlnum(c byte) bool { return isAlpha(c) || isDigit(c) }

func (lx *Lexer) charToken(kind TokenKind) Token {
	loc := Loc{Offset: lx.offset, Row: lx.row, Bol: lx.bol}
	text := lx.source[lx.offset : lx.offset+1]
	lx.skip()
	return Token{Kind: kind, Text: text, Loc: loc}
}

func (lx *Lexer) strToken(kind TokenKind, start int) Token {
	loc := Loc{Offset: start, Row: lx.row, Bol: lx.bol}
	return Token{Kind: kind, Text: lx.source[start:lx.offset], Loc: loc}
}

func (lx *Lexer) eofToken() Token {
	return Token{Kind: TokEOF, Text: "", Loc: Loc{Offset: lx.offset, Row: lx.row, Bol: lx.bol}}
}

// two consumes and returns a two-byte punctuator if the lookahead byte
// matches next, recognizing multi-character punctuators maximally.
func (lx *Lexer) two(start int, next byte, twoKind, oneKind TokenKind) Token {
	if !lx.isEOF() && lx.current() == next {
		lx.skip()
		return lx.strToken(twoKind, start)
	}
	return lx.strToken(oneKind, start)
}

// Next advances the cursor and returns the next token.
func (lx *Lexer) Next() Token {
	for !lx.isEOF() && isSpaceNotLF(lx.current()) {
		lx.skip()
	}

	if !lx.isEOF() && lx.current() == '#' {
		for !lx.isEOF() && lx.current() != '\n' {
			lx.skip()
		}
		for !lx.isEOF() && isSpaceNotLF(lx.current()) {
			lx.skip()
		}
	}

	if lx.isEOF() {
		return lx.eofToken()
	}

	c := lx.current()
	start := lx.offset

	switch {
	case isAlpha(c):
		for !lx.isEOF() && isAlnum(lx.current()) {
			lx.skip()
		}
		text := lx.source[start:lx.offset]
		if kind, ok := keywords[text]; ok {
			return lx.strToken(kind, start)
		}
		return lx.strToken(TokIdentifier, start)

	case isDigit(c):
		for !lx.isEOF() && isDigit(lx.current()) {
			lx.skip()
		}
		return lx.strToken(TokNumber, start)
	}

	switch c {
	case '\n':
		return lx.charToken(TokLineFeed)
	case '(':
		return lx.charToken(TokOParen)
	case ')':
		return lx.charToken(TokCParen)
	case ':':
		return lx.charToken(TokColon)
	case ',':
		return lx.charToken(TokComma)
	case '{':
		return lx.charToken(TokOCurly)
	case '}':
		return lx.charToken(TokCCurly)
	case '+':
		return lx.charToken(TokPlus)
	case '-':
		return lx.charToken(TokDash)
	case '*':
		return lx.charToken(TokStar)
	case '/':
		return lx.charToken(TokSlash)
	case '%':
		return lx.charToken(TokPercent)
	case '~':
		return lx.charToken(TokTilde)
	case '^':
		return lx.charToken(TokCaret)
	case '=':
		lx.skip()
		return lx.two(start, '=', TokCmpEq, TokEq)
	case '!':
		lx.skip()
		return lx.two(start, '=', TokCmpNeq, TokBang)
	case '&':
		lx.skip()
		return lx.two(start, '&', TokLogicalAnd, TokAmp)
	case '|':
		lx.skip()
		return lx.two(start, '|', TokLogicalOr, TokPipe)
	case '<':
		lx.skip()
		if !lx.isEOF() && lx.current() == '<' {
			lx.skip()
			return lx.strToken(TokShl, start)
		}
		return lx.two(start, '=', TokCmpLeq, TokLt)
	case '>':
		lx.skip()
		if !lx.isEOF() && lx.current() == '>' {
			lx.skip()
			return lx.strToken(TokShr, start)
		}
		return lx.two(start, '=', TokCmpGeq, TokGt)
	default:
		return lx.charToken(TokUnknown)
	}
}

// Peek returns the next token without advancing the cursor.
func (lx *Lexer) Peek() Token {
	return lx.Lookahead(1)
}

// Lookahead returns the nth token from the current cursor (n=1 is the
// same as Peek) without advancing it.
func (lx *Lexer) Lookahead(n int) Token {
	saved := lx.save()
	var tok Token
	for i := 0; i < n; i++ {
		tok = lx.Next()
	}
	lx.restore(saved)
	return tok
}

// LineOf returns the full source line containing loc, for diagnostics.
func (lx *Lexer) LineOf(loc Loc) string {
	end := loc.Bol
	for end < len(lx.source) && lx.source[end] != '\n' {
		end++
	}
	return lx.source[loc.Bol:end]
}

package lkml

import "strings"

type tokenType int

const (
	tokEOF tokenType = iota
	tokIdent
	tokString
	tokExpr
	tokColon
	tokLBrace
	tokRBrace
	tokLBracket
	tokRBracket
	tokComma
	tokError
)

func (t tokenType) String() string {
	switch t {
	case tokEOF:
		return "end of input"
	case tokIdent:
		return "identifier"
	case tokString:
		return "string"
	case tokExpr:
		return "expression block"
	case tokColon:
		return "':'"
	case tokLBrace:
		return "'{'"
	case tokRBrace:
		return "'}'"
	case tokLBracket:
		return "'['"
	case tokRBracket:
		return "']'"
	case tokComma:
		return "','"
	default:
		return "error"
	}
}

type lexToken struct {
	typ  tokenType
	text string
	line int
}

// lexer tokenizes LookML input.
type lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // current line number (1-based)

	lastIdent string // most recent identifier, for expression key detection
	exprNext  bool   // next token is a raw expression terminated by ";;"
}

func newLexer(input string) *lexer {
	l := &lexer{input: input, line: 1}
	l.readChar()
	return l
}

// readChar advances to the next character.
func (l *lexer) readChar() {
	if l.ch == '\n' {
		l.line++
	}
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
}

// isExprKey reports whether a key introduces a raw expression terminated
// by ";;". LookML uses a prefix convention for these keys.
func isExprKey(key string) bool {
	return strings.HasPrefix(key, "sql") || strings.HasPrefix(key, "html")
}

func (l *lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n':
			l.readChar()
		case l.ch == '#':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		default:
			return
		}
	}
}

// nextToken returns the next token.
func (l *lexer) nextToken() lexToken {
	if l.exprNext {
		l.exprNext = false
		return l.readExpr()
	}

	l.skipWhitespaceAndComments()
	line := l.line

	switch l.ch {
	case 0:
		return lexToken{typ: tokEOF, line: line}
	case ':':
		l.readChar()
		if isExprKey(l.lastIdent) {
			l.exprNext = true
		}
		return lexToken{typ: tokColon, text: ":", line: line}
	case '{':
		l.readChar()
		return lexToken{typ: tokLBrace, text: "{", line: line}
	case '}':
		l.readChar()
		return lexToken{typ: tokRBrace, text: "}", line: line}
	case '[':
		l.readChar()
		return lexToken{typ: tokLBracket, text: "[", line: line}
	case ']':
		l.readChar()
		return lexToken{typ: tokRBracket, text: "]", line: line}
	case ',':
		l.readChar()
		return lexToken{typ: tokComma, text: ",", line: line}
	case '"', '\'':
		return l.readString()
	default:
		return l.readWord()
	}
}

// readExpr captures raw text up to the ";;" terminator.
func (l *lexer) readExpr() lexToken {
	l.skipWhitespaceAndComments()
	line := l.line
	start := l.pos

	for {
		if l.ch == 0 {
			return lexToken{typ: tokError, text: "unterminated expression block, expected \";;\"", line: line}
		}
		if l.ch == ';' && l.readPos < len(l.input) && l.input[l.readPos] == ';' {
			text := strings.TrimSpace(l.input[start:l.pos])
			l.readChar() // first ';'
			l.readChar() // second ';'
			return lexToken{typ: tokExpr, text: text, line: line}
		}
		l.readChar()
	}
}

func (l *lexer) readString() lexToken {
	quote := l.ch
	line := l.line
	l.readChar()
	var sb strings.Builder
	for l.ch != quote {
		if l.ch == 0 || l.ch == '\n' {
			return lexToken{typ: tokError, text: "unterminated string literal", line: line}
		}
		if l.ch == '\\' && l.readPos < len(l.input) {
			l.readChar()
		}
		sb.WriteByte(l.ch)
		l.readChar()
	}
	l.readChar() // closing quote
	return lexToken{typ: tokString, text: sb.String(), line: line}
}

func isWordChar(ch byte) bool {
	switch ch {
	case 0, ' ', '\t', '\r', '\n', ':', '{', '}', '[', ']', ',', '"', '\'', '#':
		return false
	default:
		return true
	}
}

func (l *lexer) readWord() lexToken {
	line := l.line
	start := l.pos
	for isWordChar(l.ch) {
		l.readChar()
	}
	if l.pos == start {
		ch := l.ch
		l.readChar()
		return lexToken{typ: tokError, text: "unexpected character " + string(ch), line: line}
	}
	word := l.input[start:l.pos]
	l.lastIdent = word
	return lexToken{typ: tokIdent, text: word, line: line}
}

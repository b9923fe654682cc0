package lkml

import "fmt"

// Parse parses LookML source text into a syntax tree.
func Parse(source string) (*Document, error) {
	p := newParser(source)
	return p.parseDocument()
}

// parser builds the syntax tree from the token stream.
type parser struct {
	lex  *lexer
	cur  lexToken
	peek lexToken
}

func newParser(source string) *parser {
	p := &parser{lex: newLexer(source)}
	// Prime cur and peek.
	p.advance()
	p.advance()
	return p
}

func (p *parser) advance() {
	p.cur = p.peek
	p.peek = p.lex.nextToken()
}

func (p *parser) errorf(line int, format string, args ...any) error {
	return &ParseError{Line: line, Message: fmt.Sprintf(format, args...)}
}

func (p *parser) parseDocument() (*Document, error) {
	var items []Node
	for p.cur.typ != tokEOF {
		item, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return &Document{Root: &Container{Items: items}}, nil
}

// parseItem parses one "key: ..." entry: a pair, a list or a block.
func (p *parser) parseItem() (Node, error) {
	if p.cur.typ == tokError {
		return nil, p.errorf(p.cur.line, "%s", p.cur.text)
	}
	if p.cur.typ != tokIdent {
		return nil, p.errorf(p.cur.line, "unexpected %s, expected identifier", p.cur.typ)
	}
	key := p.cur.text
	line := p.cur.line
	p.advance()

	if p.cur.typ != tokColon {
		return nil, p.errorf(p.cur.line, "unexpected %s after %q, expected ':'", p.cur.typ, key)
	}
	p.advance()

	switch p.cur.typ {
	case tokExpr, tokString:
		pair := &Pair{Key: key, Val: p.cur.text, LineNum: line}
		p.advance()
		return pair, nil
	case tokLBracket:
		return p.parseList(key, line)
	case tokLBrace:
		return p.parseBlock(key, "", line)
	case tokIdent:
		if p.peek.typ == tokLBrace {
			name := p.cur.text
			p.advance()
			return p.parseBlock(key, name, line)
		}
		pair := &Pair{Key: key, Val: p.cur.text, LineNum: line}
		p.advance()
		return pair, nil
	case tokError:
		return nil, p.errorf(p.cur.line, "%s", p.cur.text)
	default:
		return nil, p.errorf(p.cur.line, "unexpected %s after %q", p.cur.typ, key)
	}
}

// parseBlock parses the braced body of "kind: name { ... }".
// The caller has consumed up to the opening brace, which is the current token.
func (p *parser) parseBlock(kind, name string, line int) (Node, error) {
	p.advance() // consume '{'
	var items []Node
	for p.cur.typ != tokRBrace {
		if p.cur.typ == tokEOF {
			return nil, p.errorf(line, "unclosed block %q, expected '}'", kind)
		}
		item, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	p.advance() // consume '}'
	return &Block{
		BlockType: kind,
		BlockName: name,
		Body:      &Container{Items: items},
		LineNum:   line,
	}, nil
}

// parseList parses "key: [a, b, c]". The current token is the opening bracket.
func (p *parser) parseList(key string, line int) (Node, error) {
	p.advance() // consume '['
	var items []*Token
	for p.cur.typ != tokRBracket {
		switch p.cur.typ {
		case tokIdent, tokString:
			items = append(items, &Token{Text: p.cur.text, LineNum: p.cur.line})
			p.advance()
		case tokComma:
			p.advance()
		case tokEOF:
			return nil, p.errorf(line, "unclosed list %q, expected ']'", key)
		case tokError:
			return nil, p.errorf(p.cur.line, "%s", p.cur.text)
		default:
			return nil, p.errorf(p.cur.line, "unexpected %s in list %q", p.cur.typ, key)
		}
	}
	p.advance() // consume ']'
	return &List{Key: key, Items: items, LineNum: line}, nil
}

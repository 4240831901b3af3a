package parser

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

const (
	keywordUnit   = "unit"
	closingPrefix = "get_"
)

type Parser struct {
	file     string
	lexer    *Lexer
	buf      []Token
	comments []Comment
	errors   []error
}

func NewParser(file, input string) *Parser {
	return &Parser{
		file:  file,
		lexer: NewLexer(input),
	}
}

// ParseFile reads and parses a declaration file from disk.
func ParseFile(path string) (*File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewParser(path, string(content)).Parse()
}

func (p *Parser) addError(tok Token, msg string) {
	text := tok.Value
	if tok.Type == TokenEOF {
		text = ""
	}
	p.errors = append(p.errors, &Error{File: p.file, Position: tok.Position, Text: text, Msg: msg})
}

func (p *Parser) next() Token {
	if len(p.buf) > 0 {
		t := p.buf[0]
		p.buf = p.buf[1:]
		return t
	}
	return p.fetchToken()
}

func (p *Parser) peek() Token {
	return p.peekN(0)
}

func (p *Parser) peekN(n int) Token {
	for len(p.buf) <= n {
		p.buf = append(p.buf, p.fetchToken())
	}
	return p.buf[n]
}

func (p *Parser) fetchToken() Token {
	for {
		tok := p.lexer.NextToken()
		if tok.Type == TokenComment {
			p.comments = append(p.comments, Comment{Position: tok.Position, Text: tok.Value})
			continue
		}
		return tok
	}
}

// Parse consumes the whole input. All errors found are returned joined; the
// units that parsed cleanly are returned alongside them.
func (p *Parser) Parse() (*File, error) {
	file := &File{Name: p.file}
	for {
		tok := p.peek()
		if tok.Type == TokenEOF {
			break
		}
		switch {
		case tok.Type == TokenIdentifier && tok.Value == keywordUnit:
			if u, ok := p.parseUnit(); ok {
				file.Units = append(file.Units, u)
			} else {
				p.synchronize()
			}
		case tok.Type == TokenRBrace && isClosingMarker(p.peekN(1)):
			p.next()
			marker := p.next()
			p.addError(marker, fmt.Sprintf("closing marker %s without matching unit signature", marker.Value))
			if p.peek().Type == TokenSemicolon {
				p.next()
			}
		default:
			p.next()
			p.addError(tok, fmt.Sprintf("unexpected %s, expected %q", tok.Type, keywordUnit))
			p.synchronize()
		}
	}
	file.Comments = p.comments
	return file, errors.Join(p.errors...)
}

// synchronize skips tokens up to the next unit keyword so one bad
// declaration does not hide errors in the following ones.
func (p *Parser) synchronize() {
	for {
		tok := p.peek()
		if tok.Type == TokenEOF || (tok.Type == TokenIdentifier && tok.Value == keywordUnit) {
			return
		}
		p.next()
	}
}

func (p *Parser) expect(t TokenType, context string) (Token, bool) {
	tok := p.next()
	if tok.Type != t {
		p.addError(tok, fmt.Sprintf("expected %s %s, got %s", t, context, tok.Type))
		return tok, false
	}
	return tok, true
}

func (p *Parser) parseUnit() (Unit, bool) {
	start := p.next() // unit
	u := Unit{File: p.file, Position: start.Position}

	groupTok := p.next()
	group, ok := ParseGroup(groupTok.Value)
	if groupTok.Type != TokenIdentifier || !ok {
		p.addError(groupTok, fmt.Sprintf("expected unit group (%s)", strings.Join(groupNames, ", ")))
		return u, false
	}
	u.Group = group

	// Peeking the brace pulls the label comment, if any, off the lexer.
	p.peek()
	label, ok := p.takeLabel(start.Position.Line)
	if !ok {
		p.addError(groupTok, "missing label comment after unit group")
		return u, false
	}
	u.Label = label

	if _, ok := p.expect(TokenLBrace, "to open the unit"); !ok {
		return u, false
	}
	inputs, ok := p.parseSignature()
	if !ok {
		return u, false
	}
	u.Inputs = inputs
	if _, ok := p.expect(TokenRBrace, "to close the unit"); !ok {
		return u, false
	}

	marker := p.next()
	if !isClosingMarker(marker) {
		p.addError(marker, "expected closing marker get_<name>")
		return u, false
	}
	u.Name = strings.TrimPrefix(marker.Value, closingPrefix)

	end, ok := p.expect(TokenSemicolon, "after closing marker")
	if !ok {
		return u, false
	}
	u.EndPosition = end.Position
	return u, true
}

func (p *Parser) parseSignature() ([]Input, bool) {
	if _, ok := p.expect(TokenLParen, "to open the signature"); !ok {
		return nil, false
	}
	inputs := []Input{}
	if p.peek().Type == TokenRParen {
		p.next()
		return inputs, true
	}
	for {
		tag := p.next()
		var access Access
		switch tag.Type {
		case TokenStar:
			access = AccessArray
		case TokenAmpersand:
			access = AccessScalar
		default:
			p.addError(tag, "parameter must be tagged with * (array) or & (scalar)")
			return nil, false
		}
		name, ok := p.expect(TokenIdentifier, "as parameter name")
		if !ok {
			return nil, false
		}
		inputs = append(inputs, Input{Position: tag.Position, Name: name.Value, Access: access})

		sep := p.next()
		switch sep.Type {
		case TokenComma:
			continue
		case TokenRParen:
			return inputs, true
		default:
			p.addError(sep, "expected ',' or ')' in signature")
			return nil, false
		}
	}
}

// takeLabel removes and returns the comment that sits on the given line.
func (p *Parser) takeLabel(line int) (string, bool) {
	for i := len(p.comments) - 1; i >= 0; i-- {
		c := p.comments[i]
		if c.Position.Line < line {
			break
		}
		if c.Position.Line == line {
			p.comments = append(p.comments[:i], p.comments[i+1:]...)
			text := strings.TrimSpace(strings.TrimPrefix(c.Text, "//"))
			return text, text != ""
		}
	}
	return "", false
}

func isClosingMarker(tok Token) bool {
	return tok.Type == TokenIdentifier &&
		strings.HasPrefix(tok.Value, closingPrefix) &&
		len(tok.Value) > len(closingPrefix)
}

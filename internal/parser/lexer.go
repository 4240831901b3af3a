package parser

import (
	"unicode"
	"unicode/utf8"
)

type TokenType int

const (
	TokenError TokenType = iota
	TokenEOF
	TokenIdentifier
	TokenStar      // *
	TokenAmpersand // &
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenComma
	TokenSemicolon
	TokenComment
)

var tokenNames = map[TokenType]string{
	TokenError:      "invalid token",
	TokenEOF:        "end of file",
	TokenIdentifier: "identifier",
	TokenStar:       "'*'",
	TokenAmpersand:  "'&'",
	TokenLParen:     "'('",
	TokenRParen:     "')'",
	TokenLBrace:     "'{'",
	TokenRBrace:     "'}'",
	TokenComma:      "','",
	TokenSemicolon:  "';'",
	TokenComment:    "comment",
}

func (t TokenType) String() string {
	if s, ok := tokenNames[t]; ok {
		return s
	}
	return "unknown token"
}

type Token struct {
	Type     TokenType
	Value    string
	Position Position
}

type Lexer struct {
	input     string
	start     int
	pos       int
	width     int
	line      int
	lineStart int
	prevStart int // lineStart before the last newline consumed by next
	startLine int
	startCol  int
}

func NewLexer(input string) *Lexer {
	return &Lexer{
		input:     input,
		line:      1,
		startLine: 1,
		startCol:  1,
	}
}

func (l *Lexer) next() rune {
	if l.pos >= len(l.input) {
		l.width = 0
		return -1
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.width = w
	l.pos += l.width
	if r == '\n' {
		l.line++
		l.prevStart = l.lineStart
		l.lineStart = l.pos
	}
	return r
}

func (l *Lexer) backup() {
	if l.width == 0 {
		return
	}
	l.pos -= l.width
	if l.input[l.pos] == '\n' {
		l.line--
		l.lineStart = l.prevStart
	}
	l.width = 0
}

func (l *Lexer) peek() rune {
	r := l.next()
	l.backup()
	return r
}

// mark records the start of the next token.
func (l *Lexer) mark() {
	l.start = l.pos
	l.startLine = l.line
	l.startCol = l.pos - l.lineStart + 1
}

func (l *Lexer) emit(t TokenType) Token {
	tok := Token{
		Type:  t,
		Value: l.input[l.start:l.pos],
		Position: Position{
			Line:   l.startLine,
			Column: l.startCol,
		},
	}
	l.mark()
	return tok
}

func (l *Lexer) NextToken() Token {
	l.mark()
	for {
		r := l.next()
		if r == -1 {
			return l.emit(TokenEOF)
		}

		if unicode.IsSpace(r) {
			l.mark()
			continue
		}

		switch r {
		case '*':
			return l.emit(TokenStar)
		case '&':
			return l.emit(TokenAmpersand)
		case '(':
			return l.emit(TokenLParen)
		case ')':
			return l.emit(TokenRParen)
		case '{':
			return l.emit(TokenLBrace)
		case '}':
			return l.emit(TokenRBrace)
		case ',':
			return l.emit(TokenComma)
		case ';':
			return l.emit(TokenSemicolon)
		case '/':
			return l.lexComment()
		}

		if unicode.IsLetter(r) || r == '_' {
			return l.lexIdentifier()
		}

		return l.emit(TokenError)
	}
}

func (l *Lexer) lexIdentifier() Token {
	for {
		r := l.next()
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			continue
		}
		l.backup()
		return l.emit(TokenIdentifier)
	}
}

func (l *Lexer) lexComment() Token {
	if l.next() != '/' {
		l.backup()
		return l.emit(TokenError)
	}
	for {
		r := l.next()
		if r == '\n' {
			l.backup()
			return l.emit(TokenComment)
		}
		if r == -1 {
			return l.emit(TokenComment)
		}
	}
}

package parser

import (
	"errors"
	"fmt"
)

// ErrMalformedDeclaration is matched by every error the parser reports.
var ErrMalformedDeclaration = errors.New("malformed declaration")

// Error is a parse failure at a specific place in a declaration file.
type Error struct {
	File     string
	Position Position
	Text     string // offending token text, may be empty at EOF
	Msg      string
}

func (e *Error) Error() string {
	loc := e.Position.String()
	if e.File != "" {
		loc = e.File + ":" + loc
	}
	if e.Text == "" {
		return fmt.Sprintf("%s: %s", loc, e.Msg)
	}
	return fmt.Sprintf("%s: %s (near %q)", loc, e.Msg, e.Text)
}

func (e *Error) Unwrap() error { return ErrMalformedDeclaration }

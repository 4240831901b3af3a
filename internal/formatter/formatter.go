package formatter

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/marte-community/scorer-dev-tools/internal/parser"
)

type Insertable struct {
	Position parser.Position
	Text     string
}

type Formatter struct {
	insertables []Insertable
	cursor      int
	writer      io.Writer
}

// Format writes file in canonical layout: one blank line between units,
// the signature on its own tab-indented line, and free comments kept where
// they were relative to the units.
func Format(file *parser.File, w io.Writer) {
	ins := []Insertable{}
	for _, c := range file.Comments {
		ins = append(ins, Insertable{Position: c.Position, Text: fixComment(c.Text)})
	}
	sort.Slice(ins, func(i, j int) bool {
		if ins[i].Position.Line != ins[j].Position.Line {
			return ins[i].Position.Line < ins[j].Position.Line
		}
		return ins[i].Position.Column < ins[j].Position.Column
	})

	f := &Formatter{
		insertables: ins,
		writer:      w,
	}
	f.formatFile(file)
}

func fixComment(text string) string {
	if strings.HasPrefix(text, "//") && len(text) > 2 && text[2] != ' ' && text[2] != '/' {
		return "// " + text[2:]
	}
	return strings.TrimRight(text, " \t")
}

func (f *Formatter) formatFile(file *parser.File) {
	lastLine := 0
	for i := range file.Units {
		u := &file.Units[i]
		if lastLine > 0 {
			fmt.Fprintln(f.writer)
		}
		f.flushCommentsBefore(u.Position)
		lastLine = f.formatUnit(u)
		if f.hasTrailingComment(lastLine) {
			fmt.Fprintf(f.writer, " %s", f.popComment())
		}
		fmt.Fprintln(f.writer)
	}
	if lastLine > 0 && f.cursor < len(f.insertables) {
		fmt.Fprintln(f.writer)
	}
	f.flushRemainingComments()
}

func (f *Formatter) formatUnit(u *parser.Unit) int {
	fmt.Fprintf(f.writer, "unit %s // %s\n", u.Group, u.Label)
	fmt.Fprintln(f.writer, "{")
	// Comments inside the braces stay inside.
	for f.cursor < len(f.insertables) && before(f.insertables[f.cursor].Position, u.EndPosition) &&
		f.insertables[f.cursor].Position.Line != u.EndPosition.Line {
		fmt.Fprintf(f.writer, "\t%s\n", f.popComment())
	}
	fmt.Fprintf(f.writer, "\t%s\n", u.Signature())
	fmt.Fprintf(f.writer, "} get_%s;", u.Name)
	return u.EndPosition.Line
}

func before(a, b parser.Position) bool {
	return a.Line < b.Line || (a.Line == b.Line && a.Column < b.Column)
}

// flushCommentsBefore writes the comments that precede pos. A gap in the
// source between a comment block and the unit is kept as one blank line.
func (f *Formatter) flushCommentsBefore(pos parser.Position) {
	last := 0
	for f.cursor < len(f.insertables) {
		c := f.insertables[f.cursor]
		if !before(c.Position, pos) {
			break
		}
		if last > 0 && c.Position.Line > last+1 {
			fmt.Fprintln(f.writer)
		}
		fmt.Fprintf(f.writer, "%s\n", c.Text)
		last = c.Position.Line
		f.cursor++
	}
	if last > 0 && pos.Line > last+1 {
		fmt.Fprintln(f.writer)
	}
}

func (f *Formatter) flushRemainingComments() {
	for f.cursor < len(f.insertables) {
		fmt.Fprintf(f.writer, "%s\n", f.popComment())
	}
}

func (f *Formatter) hasTrailingComment(line int) bool {
	if f.cursor >= len(f.insertables) {
		return false
	}
	return f.insertables[f.cursor].Position.Line == line
}

func (f *Formatter) popComment() string {
	if f.cursor >= len(f.insertables) {
		return ""
	}
	c := f.insertables[f.cursor]
	f.cursor++
	return c.Text
}

package resolver

import "github.com/marte-community/scorer-dev-tools/internal/parser"

type produced struct {
	group parser.Group
	stage int
}

// Context records which units earlier stages have produced. It is a value:
// With returns an extended copy and never changes the receiver.
type Context struct {
	done map[string]produced
}

func NewContext() Context {
	return Context{done: map[string]produced{}}
}

// With returns a context that additionally holds the units of one stage.
func (c Context) With(stage int, units []parser.Unit) Context {
	next := make(map[string]produced, len(c.done)+len(units))
	for k, v := range c.done {
		next[k] = v
	}
	for _, u := range units {
		next[u.Name] = produced{group: u.Group, stage: stage}
	}
	return Context{done: next}
}

// Lookup returns the group and stage of an already produced unit.
func (c Context) Lookup(name string) (parser.Group, int, bool) {
	p, ok := c.done[name]
	return p.group, p.stage, ok
}

func (c Context) Len() int { return len(c.done) }

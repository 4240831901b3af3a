package parser

import (
	"fmt"
	"strings"
)

type Node interface {
	Pos() Position
}

type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// File is one parsed declaration file.
type File struct {
	Name     string
	Units    []Unit
	Comments []Comment
}

// Access tells how a unit consumes one of its inputs.
type Access int

const (
	AccessScalar Access = iota // passed by value, "&name"
	AccessArray                // passed by reference, "*name"
)

func (a Access) String() string {
	if a == AccessArray {
		return "array"
	}
	return "scalar"
}

// Tag is the declaration prefix for the access kind.
func (a Access) Tag() string {
	if a == AccessArray {
		return "*"
	}
	return "&"
}

// Group is the declared category of a unit. It decides how the unit's
// output is stored and whether it is printed.
type Group int

const (
	GroupCommon Group = iota
	GroupClass
	GroupMatrix
	GroupOverall
)

var groupNames = []string{"common", "class", "matrix", "overall"}

func (g Group) String() string {
	if int(g) < len(groupNames) {
		return groupNames[g]
	}
	return fmt.Sprintf("group(%d)", int(g))
}

// PerClass reports whether the unit produces one value per class.
func (g Group) PerClass() bool {
	return g != GroupOverall
}

// Printed reports whether the unit shows up in the printed statistics.
func (g Group) Printed() bool {
	return g != GroupMatrix
}

// Storage is the access kind consumers must use for the unit's output.
func (g Group) Storage() Access {
	if g.PerClass() {
		return AccessArray
	}
	return AccessScalar
}

func ParseGroup(s string) (Group, bool) {
	for i, name := range groupNames {
		if name == s {
			return Group(i), true
		}
	}
	return 0, false
}

// GroupNames lists the accepted group keywords in declaration order.
func GroupNames() []string {
	return append([]string(nil), groupNames...)
}

type Input struct {
	Position Position
	Name     string
	Access   Access
}

func (i Input) Pos() Position { return i.Position }

func (i Input) String() string { return i.Access.Tag() + i.Name }

// Unit is one metric unit: a named computation whose output carries the
// unit's name.
type Unit struct {
	File        string
	Position    Position
	EndPosition Position
	Name        string
	Group       Group
	Label       string
	Inputs      []Input
}

func (u *Unit) Pos() Position { return u.Position }

// InputNames returns the declared input names in order.
func (u *Unit) InputNames() []string {
	names := make([]string, len(u.Inputs))
	for i, in := range u.Inputs {
		names[i] = in.Name
	}
	return names
}

// Location formats file:line:col for diagnostics.
func (u *Unit) Location() string {
	if u.File == "" {
		return u.Position.String()
	}
	return u.File + ":" + u.Position.String()
}

// Signature renders the parameter list as written in a declaration.
func (u *Unit) Signature() string {
	parts := make([]string, len(u.Inputs))
	for i, in := range u.Inputs {
		parts[i] = in.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

type Comment struct {
	Position Position
	Text     string
}

func (c *Comment) Pos() Position { return c.Position }

package resolver

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// GoName turns a unit name into an exported Go identifier:
// overall_accuracy -> OverallAccuracy, PC_PI -> PCPI, dInd -> DInd.
func GoName(name string) string {
	var b strings.Builder
	for _, part := range strings.Split(name, "_") {
		if part == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(part)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(part[size:])
	}
	return b.String()
}

// FuncName is the formula implementing a unit, derived from its closing
// marker get_<name>.
func FuncName(name string) string {
	return "Get" + GoName(name)
}

package builder

const engineSource = `// Code generated by scorergen{{if .Sources}} from {{range $i, $s := .Sources}}{{if $i}}, {{end}}{{$s}}{{end}}{{end}}. DO NOT EDIT.

package {{.Package}}

import (
	"fmt"
	"io"
	"os"
{{- if .DeriveClasses}}
	"sort"
{{- end}}
{{- if .Steps}}

	"golang.org/x/sync/errgroup"
{{- end}}
{{- if .UsesFormulas}}

	{{.FormulaName}} "{{.FormulaImport}}"
{{- end}}
)

// Fatal reports a precondition failure of Compute. It prints msg to stderr
// and exits with status 1.
var Fatal = func(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}

// {{.TypeName}} holds every statistic of one Compute call.
type {{.TypeName}} struct {
	// Classes is the sorted list of label codes.
	Classes []float64
	Nclass  int
{{range .Fields}}
	// {{.GoName}} is {{.Label}}.
	{{.GoName}} {{goType .Group}}
{{- end}}
}

func New() *{{.TypeName}} {
	return &{{.TypeName}}{}
}

// Compute evaluates every statistic for the given encoded labels. Units of
// one stage run concurrently; a stage starts once the previous one is done.
func (s *{{.TypeName}}) Compute(lblTrue, lblPred []int) {
	if len(lblTrue) != len(lblPred) {
		Fatal(fmt.Sprintf("label arrays differ in length: %d true, %d predicted", len(lblTrue), len(lblPred)))
		return
	}
{{- range .Locals}}
	{{.Name}} := {{.Value}}
{{- end}}
{{- if .DeriveClasses}}
	s.Classes = classesOf(lblTrue, lblPred)
{{template "nclass"}}
{{- end}}
{{- range $i, $st := .Steps}}

	// stage {{$i}}: {{$st.Names}}
	{{if eq $i 0}}g := {{else}}g = {{end}}new(errgroup.Group)
{{- if $.Parallelism}}
	g.SetLimit({{$.Parallelism}})
{{- end}}
{{- range $st.Calls}}
	g.Go(func() error {
		{{.Target}} = {{$.FormulaName}}.{{.Func}}({{.Args}})
		return nil
	})
{{- end}}
	_ = g.Wait()
{{- if and (eq $i 0) (not $.DeriveClasses)}}
{{template "nclass"}}
{{- end}}
{{- end}}
}

// PrintClassStats writes one row per class statistic.
func (s *{{.TypeName}}) PrintClassStats(w io.Writer) {
	writeRow(w, "Classes", s.Classes)
{{- range .ClassFields}}
	writeRow(w, {{printf "%q" .Label}}, s.{{.GoName}})
{{- end}}
}

// PrintOverallStats writes one row per overall statistic.
func (s *{{.TypeName}}) PrintOverallStats(w io.Writer) {
{{- range .OverallFields}}
	fmt.Fprintf(w, "%-40s%-20v\n", {{printf "%q" .Label}}, s.{{.GoName}})
{{- end}}
}

// Print writes class and overall statistics to stdout.
func (s *{{.TypeName}}) Print() {
	s.PrintClassStats(os.Stdout)
	fmt.Fprintln(os.Stdout)
	s.PrintOverallStats(os.Stdout)
}

// Dump writes path.cl_stats and path.overall_stats.
func (s *{{.TypeName}}) Dump(path string) error {
	if err := dumpFile(path+".cl_stats", "stats,", s.PrintClassStats); err != nil {
		return err
	}
	return dumpFile(path+".overall_stats", "stats,score", s.PrintOverallStats)
}

// Encode maps values to dense integer codes in order of first appearance.
func Encode[T comparable](values []T) []int {
	codes := make(map[T]int)
	out := make([]int, len(values))
	for i, v := range values {
		c, ok := codes[v]
		if !ok {
			c = len(codes)
			codes[v] = c
		}
		out[i] = c
	}
	return out
}

func writeRow(w io.Writer, label string, values []float64) {
	fmt.Fprintf(w, "%-40s", label)
	for _, v := range values {
		fmt.Fprintf(w, "%-20v ", v)
	}
	fmt.Fprintln(w)
}

func dumpFile(path, header string, print func(io.Writer)) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	fmt.Fprintln(f, header)
	print(f)
	return f.Close()
}
{{- if .DeriveClasses}}

func classesOf(lblTrue, lblPred []int) []float64 {
	seen := make(map[int]struct{})
	for _, l := range lblTrue {
		seen[l] = struct{}{}
	}
	for _, l := range lblPred {
		seen[l] = struct{}{}
	}
	classes := make([]float64, 0, len(seen))
	for l := range seen {
		classes = append(classes, float64(l))
	}
	sort.Float64s(classes)
	return classes
}
{{- end}}
{{define "nclass"}}
	s.Nclass = len(s.Classes)
	if s.Nclass < 2 {
		Fatal(fmt.Sprintf("Nclass must be greater than 1, got %d", s.Nclass))
		return
	}
{{- end}}
`

package check

import (
	"bytes"
	"text/template"

	"github.com/tanema/semc/src/ast"
	"github.com/tanema/semc/src/scope"
)

const resultTemplate = `{{.Filename}} ({{.Globals | len}} globals, {{.Builtins | len}} built-ins)
{{- range .Globals}}
	{{.Name}}	{{.}}
{{- end}}
{{- if .ShowBuiltins}}
{{- range .Builtins}}
	{{.Name}}	{{.}}
{{- end}}
{{- end}}
`

var resultTmpl = template.Must(template.New("result").Parse(resultTemplate))

// Result is a successfully checked program.
type Result struct {
	Filename string
	Program  *ast.Program
	// Globals are the declarations made by the program at the top level.
	Globals []*scope.Ident
	// Builtins are the declarations that came from the prelude.
	Builtins []*scope.Ident
}

func newResult(filename string, prog *ast.Program, global scope.Scope) *Result {
	res := &Result{Filename: filename, Program: prog, Globals: []*scope.Ident{}, Builtins: []*scope.Ident{}}
	for _, id := range global.Idents() {
		if id.BuiltIn {
			res.Builtins = append(res.Builtins, id)
		} else {
			res.Globals = append(res.Globals, id)
		}
	}
	return res
}

// String lists the global declarations of the program.
func (res *Result) String() string { return res.render(false) }

// Verbose lists the global declarations including the built-ins.
func (res *Result) Verbose() string { return res.render(true) }

func (res *Result) render(builtins bool) string {
	var buf bytes.Buffer
	data := struct {
		*Result
		ShowBuiltins bool
	}{Result: res, ShowBuiltins: builtins}
	if err := resultTmpl.Execute(&buf, data); err != nil {
		panic(err)
	}
	return buf.String()
}

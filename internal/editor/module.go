package editor

import (
	"go/ast"
	"go/parser"
	"go/token"
	"sort"
	"strconv"
	"strings"
)

type Import struct {
	Path     string
	Resolved string
	Line     int
	Column   int
	EndLine  int
	EndCol   int
}

// Module is an authored source after alias rewriting.
type Module struct {
	Source    string
	Package   string
	Imports   []Import
	HasEntry  bool
	Forbidden []Import
}

// Prepare parses src, checks its imports against the allow-list and rewrites
// aliased import paths. Syntax errors are returned as a scanner.ErrorList.
func (c *Config) Prepare(filename, src string) (*Module, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.SkipObjectResolution)
	if err != nil {
		return nil, err
	}

	m := &Module{
		Package:  file.Name.Name,
		HasEntry: declares(file, c.options.Entry),
	}

	type splice struct {
		start, end int
		text       string
	}
	var splices []splice

	for _, spec := range file.Imports {
		p, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		start := fset.Position(spec.Path.Pos())
		end := fset.Position(spec.Path.End())

		imp := Import{
			Path:     p,
			Resolved: c.ResolveImport(p),
			Line:     start.Line,
			Column:   start.Column,
			EndLine:  end.Line,
			EndCol:   end.Column,
		}
		m.Imports = append(m.Imports, imp)

		if !c.ImportAllowed(p) {
			m.Forbidden = append(m.Forbidden, imp)
		}
		if imp.Resolved != p {
			splices = append(splices, splice{
				start: start.Offset,
				end:   end.Offset,
				text:  strconv.Quote(imp.Resolved),
			})
		}
	}

	sort.Slice(splices, func(i, j int) bool { return splices[i].start < splices[j].start })

	var b strings.Builder
	last := 0
	for _, s := range splices {
		b.WriteString(src[last:s.start])
		b.WriteString(s.text)
		last = s.end
	}
	b.WriteString(src[last:])
	m.Source = b.String()

	return m, nil
}

// Rewrite returns src with aliased import paths replaced.
func (c *Config) Rewrite(src string) (string, error) {
	m, err := c.Prepare("preview.go", src)
	if err != nil {
		return "", err
	}
	return m.Source, nil
}

func declares(file *ast.File, name string) bool {
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if d.Recv == nil && d.Name.Name == name {
				return true
			}
		case *ast.GenDecl:
			if d.Tok != token.VAR {
				continue
			}
			for _, spec := range d.Specs {
				vs, ok := spec.(*ast.ValueSpec)
				if !ok {
					continue
				}
				for _, n := range vs.Names {
					if n.Name == name {
						return true
					}
				}
			}
		}
	}
	return false
}

package editor

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/scanner"
	"go/token"
	"go/types"
	"sort"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"go.uber.org/zap"

	"github.com/3-lines-studio/vitrine/internal/core"
	"github.com/3-lines-studio/vitrine/internal/ui"
)

// Service is the language service behind the editor: syntax and type
// diagnostics plus member listings for completion. Calls are serialized.
type Service struct {
	cfg    *Config
	logger *zap.Logger

	mu      sync.Mutex
	parser  *sitter.Parser
	fset    *token.FileSet
	std     types.Importer
	virtual map[string]*types.Package
}

type Member struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Detail string `json:"detail"`
}

func NewService(cfg *Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	fset := token.NewFileSet()
	return &Service{
		cfg:     cfg,
		logger:  logger,
		parser:  sitter.NewParser(),
		fset:    fset,
		std:     importer.ForCompiler(fset, "source", nil),
		virtual: make(map[string]*types.Package),
	}
}

func (s *Service) Config() *Config {
	return s.cfg
}

func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parser.Close()
}

// Check returns diagnostics for one authored file. Syntax errors stop the
// check before type checking.
func (s *Service) Check(ctx context.Context, filename, src string) []core.Diagnostic {
	s.mu.Lock()
	defer s.mu.Unlock()

	diags, err := syntaxDiagnostics(ctx, s.parser, []byte(src))
	if err != nil {
		s.logger.Debug("syntax parse cancelled", zap.Error(err))
		return nil
	}
	if len(diags) > 0 {
		return diags
	}

	mod, err := s.cfg.Prepare(filename, src)
	if err != nil {
		return parseDiagnostics(err)
	}

	for _, imp := range mod.Forbidden {
		diags = append(diags, core.Diagnostic{
			Line:      imp.Line,
			Column:    imp.Column,
			EndLine:   imp.EndLine,
			EndColumn: imp.EndCol,
			Severity:  core.SeverityError,
			Source:    "imports",
			Message:   fmt.Sprintf("import %q is not available in the preview", imp.Path),
		})
	}

	opts := s.cfg.options
	if mod.Package != opts.Package {
		diags = append(diags, core.Diagnostic{
			Line:     1,
			Column:   1,
			Severity: core.SeverityWarning,
			Source:   "vitrine",
			Message:  fmt.Sprintf("package should be %q", opts.Package),
		})
	}

	diags = append(diags, s.typeCheck(filename, mod)...)

	s.logger.Debug("checked source",
		zap.String("file", filename),
		zap.Int("diagnostics", len(diags)),
	)
	return diags
}

func (s *Service) typeCheck(filename string, mod *Module) []core.Diagnostic {
	file, err := parser.ParseFile(s.fset, filename, mod.Source, parser.SkipObjectResolution)
	if file != nil {
		// The authored file changes on every check; only library files stay.
		if tf := s.fset.File(file.Pos()); tf != nil {
			defer s.fset.RemoveFile(tf)
		}
	}
	if err != nil {
		return parseDiagnostics(err)
	}

	var diags []core.Diagnostic
	conf := types.Config{
		GoVersion: s.cfg.options.GoVersion,
		Importer:  virtualImporter{s},
		Error: func(err error) {
			var terr types.Error
			if !errors.As(err, &terr) {
				return
			}
			pos := terr.Fset.Position(terr.Pos)
			sev := core.SeverityError
			if terr.Soft {
				sev = core.SeverityWarning
			}
			diags = append(diags, core.Diagnostic{
				Line:      pos.Line,
				Column:    pos.Column,
				EndLine:   pos.Line,
				EndColumn: pos.Column,
				Severity:  sev,
				Source:    "types",
				Message:   terr.Msg,
			})
		},
	}

	pkg, _ := conf.Check(mod.Package, s.fset, []*ast.File{file}, nil)
	if pkg == nil {
		return diags
	}

	if d, ok := s.entryDiagnostic(pkg); ok {
		diags = append(diags, d)
	}
	return diags
}

func (s *Service) entryDiagnostic(pkg *types.Package) (core.Diagnostic, bool) {
	entry := s.cfg.options.Entry
	obj := pkg.Scope().Lookup(entry)
	if obj == nil {
		return core.Diagnostic{
			Line:     1,
			Column:   1,
			Severity: core.SeverityWarning,
			Source:   "vitrine",
			Message:  fmt.Sprintf("no %s function; the preview will stay empty", entry),
		}, true
	}

	want := "func() *" + ui.ImportPath + ".Node"
	if got := types.TypeString(obj.Type(), nil); got != want {
		pos := s.fset.Position(obj.Pos())
		return core.Diagnostic{
			Line:      pos.Line,
			Column:    pos.Column,
			EndLine:   pos.Line,
			EndColumn: pos.Column + len(entry),
			Severity:  core.SeverityError,
			Source:    "vitrine",
			Message:   fmt.Sprintf("%s must be func() *ui.Node, got %s", entry, qualified(obj.Type())),
		}, true
	}
	return core.Diagnostic{}, false
}

// Members lists the exported declarations of a virtual package.
func (s *Service) Members(importPath string) ([]Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pkg, err := s.virtualPackage(s.cfg.ResolveImport(importPath))
	if err != nil {
		return nil, err
	}

	var members []Member
	for _, name := range pkg.Scope().Names() {
		obj := pkg.Scope().Lookup(name)
		if !obj.Exported() {
			continue
		}
		members = append(members, Member{
			Name:   name,
			Kind:   objectKind(obj),
			Detail: types.ObjectString(obj, types.RelativeTo(pkg)),
		})
	}
	return members, nil
}

func (s *Service) virtualPackage(path string) (*types.Package, error) {
	if pkg, ok := s.virtual[path]; ok {
		return pkg, nil
	}

	paths, ok := s.cfg.library.Packages()[path]
	if !ok {
		return nil, fmt.Errorf("package %q not found", path)
	}

	files := make([]*ast.File, 0, len(paths))
	for _, p := range paths {
		f, err := parser.ParseFile(s.fset, p, s.cfg.library[p], parser.SkipObjectResolution)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", p, err)
		}
		files = append(files, f)
	}

	conf := types.Config{
		GoVersion: s.cfg.options.GoVersion,
		Importer:  virtualImporter{s},
	}
	pkg, err := conf.Check(path, s.fset, files, nil)
	if err != nil {
		return nil, fmt.Errorf("check %s: %w", path, err)
	}

	s.virtual[path] = pkg
	return pkg, nil
}

type virtualImporter struct {
	s *Service
}

func (v virtualImporter) Import(path string) (*types.Package, error) {
	if _, ok := v.s.cfg.library.Packages()[path]; ok {
		return v.s.virtualPackage(path)
	}
	if !v.s.cfg.allowed[path] {
		return nil, fmt.Errorf("import %q is not available in the preview", path)
	}
	return v.s.std.Import(path)
}

func parseDiagnostics(err error) []core.Diagnostic {
	var list scanner.ErrorList
	if !errors.As(err, &list) {
		return []core.Diagnostic{{Line: 1, Column: 1, Severity: core.SeverityError, Source: "syntax", Message: err.Error()}}
	}

	diags := make([]core.Diagnostic, 0, len(list))
	for _, e := range list {
		diags = append(diags, core.Diagnostic{
			Line:      e.Pos.Line,
			Column:    e.Pos.Column,
			EndLine:   e.Pos.Line,
			EndColumn: e.Pos.Column,
			Severity:  core.SeverityError,
			Source:    "syntax",
			Message:   e.Msg,
		})
	}
	return diags
}

func objectKind(obj types.Object) string {
	switch obj.(type) {
	case *types.Func:
		return "func"
	case *types.TypeName:
		return "type"
	case *types.Const:
		return "const"
	case *types.Var:
		return "var"
	default:
		return "other"
	}
}

func qualified(t types.Type) string {
	return types.TypeString(t, func(p *types.Package) string { return p.Name() })
}

// SortDiagnostics orders diagnostics by position.
func SortDiagnostics(diags []core.Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].Line != diags[j].Line {
			return diags[i].Line < diags[j].Line
		}
		return diags[i].Column < diags[j].Column
	})
}

package symbol

import (
	"errors"
	"fmt"
	"go/ast"
	"go/build"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

var (
	_ Resolver  = (*ASTResolver)(nil)
	_ Describer = (*ASTResolver)(nil)
)

// ErrNoGoFiles is returned by Describe for a directory without non-test Go files.
var ErrNoGoFiles = errors.New("no Go files")

// ASTResolver resolves symbol names to source locations using go/ast.
type ASTResolver struct {
	rootPath string
}

func NewASTResolver(rootPath string) *ASTResolver {
	return &ASTResolver{rootPath: rootPath}
}

// FindSymbol walks the whole tree under the root and returns every top-level
// function, method, type, var or const named name. Unparsable files are skipped.
func (r *ASTResolver) FindSymbol(name string) ([]SymbolLocation, error) {
	var results []SymbolLocation
	fset := token.NewFileSet()

	err := filepath.WalkDir(r.rootPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}

		if d.IsDir() {
			if path != r.rootPath && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if !isSourceFile(path) {
			return nil
		}

		f, err := parser.ParseFile(fset, path, nil, 0)
		if err != nil {
			return nil
		}

		for _, decl := range topLevel(fset, f, r.rootPath) {
			if decl.Name == name {
				results = append(results, decl.Location)
			}
		}
		return nil
	})

	return results, err
}

// Describe parses the non-test Go files of dir (not recursively) that build
// for the current platform and returns their top-level declarations keyed by
// name. Files declaring a package other than the first one parsed are
// skipped. Methods are not included.
func (r *ASTResolver) Describe(dir string) (map[string]Declaration, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	fset := token.NewFileSet()
	decls := make(map[string]Declaration)
	pkgName := ""
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if !isSourceFile(path) {
			continue
		}
		if ok, err := build.Default.MatchFile(dir, e.Name()); err != nil {
			return nil, fmt.Errorf("build constraints %s: %w", path, err)
		} else if !ok {
			continue
		}
		f, err := parser.ParseFile(fset, path, nil, 0)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		if pkgName == "" {
			pkgName = f.Name.Name
		} else if f.Name.Name != pkgName {
			continue
		}
		for _, decl := range topLevel(fset, f, r.rootPath) {
			if decl.Receiver != "" {
				continue
			}
			decls[decl.Name] = decl
		}
	}
	if pkgName == "" {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoGoFiles)
	}
	return decls, nil
}

// Names returns the sorted names of decls.
func Names(decls map[string]Declaration) []string {
	names := make([]string, 0, len(decls))
	for name := range decls {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func skipDir(base string) bool {
	switch base {
	case "vendor", ".git", "node_modules", "testdata":
		return true
	}
	return strings.HasPrefix(base, "_") || strings.HasPrefix(base, ".")
}

func isSourceFile(path string) bool {
	return strings.HasSuffix(path, ".go") && !strings.HasSuffix(path, "_test.go")
}

// topLevel collects the file-scope declarations of f, methods included.
func topLevel(fset *token.FileSet, f *ast.File, root string) []Declaration {
	var out []Declaration
	for _, d := range f.Decls {
		switch node := d.(type) {
		case *ast.FuncDecl:
			decl := Declaration{
				Name:     node.Name.Name,
				Kind:     DeclFunc,
				Type:     types.ExprString(node.Type),
				Location: location(fset, node.Name.Pos(), root),
			}
			if node.Recv != nil && len(node.Recv.List) > 0 {
				decl.Receiver = types.ExprString(node.Recv.List[0].Type)
			}
			out = append(out, decl)
		case *ast.GenDecl:
			var last *ast.ValueSpec
			for i, spec := range node.Specs {
				switch s := spec.(type) {
				case *ast.TypeSpec:
					out = append(out, Declaration{
						Name:     s.Name.Name,
						Kind:     DeclType,
						Type:     types.ExprString(s.Type),
						Location: location(fset, s.Name.Pos(), root),
					})
				case *ast.ValueSpec:
					if node.Tok == token.CONST {
						// A bare name in a const group repeats the previous type and values.
						if s.Type == nil && len(s.Values) == 0 && last != nil {
							s = &ast.ValueSpec{Names: s.Names, Type: last.Type, Values: last.Values}
						} else {
							last = s
						}
					}
					out = append(out, valueDecls(fset, node.Tok, s, i, root)...)
				}
			}
		}
	}
	return out
}

// valueDecls describes the names of one value spec. index is the spec's
// position in its group, the value of iota.
func valueDecls(fset *token.FileSet, tok token.Token, s *ast.ValueSpec, index int, root string) []Declaration {
	kind := DeclVar
	if tok == token.CONST {
		kind = DeclConst
	}
	var typ string
	if s.Type != nil {
		typ = types.ExprString(s.Type)
	}

	out := make([]Declaration, 0, len(s.Names))
	for i, ident := range s.Names {
		if ident.Name == "_" {
			continue
		}
		decl := Declaration{
			Name:     ident.Name,
			Kind:     kind,
			Type:     typ,
			Location: location(fset, ident.Pos(), root),
		}
		if len(s.Values) == len(s.Names) {
			switch v := s.Values[i].(type) {
			case *ast.BasicLit:
				decl.Literal = v.Value
				decl.LiteralKind = v.Kind
			case *ast.Ident:
				switch {
				case v.Name == "true" || v.Name == "false":
					decl.Literal = v.Name
					decl.LiteralKind = token.IDENT
				case v.Name == "iota" && kind == DeclConst:
					decl.Literal = strconv.Itoa(index)
					decl.LiteralKind = token.INT
				}
			case *ast.FuncLit:
				decl.FuncValue = true
				if decl.Type == "" {
					decl.Type = types.ExprString(v.Type)
				}
			}
		}
		out = append(out, decl)
	}
	return out
}

func location(fset *token.FileSet, pos token.Pos, root string) SymbolLocation {
	p := fset.Position(pos)
	relPath, err := filepath.Rel(root, p.Filename)
	if err != nil {
		relPath = p.Filename
	}
	return SymbolLocation{
		FilePath:  relPath,
		Line:      p.Line,
		Character: p.Column,
	}
}

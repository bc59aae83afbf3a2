package loader

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/arangokit/modelgen/internal/model"
)

// directivePrefix marks doc-comment directive lines on types and fields.
const directivePrefix = "//arango:"

// directiveTag is the struct tag key carrying field-level directives.
const directiveTag = "arango"

var (
	ErrNoPackage    = errors.New("no Go package found")
	errLoadFailed   = errors.New("package load failed")
	errNoModulePath = errors.New("no go.mod found")
)

// Loader reads one models package from disk and extracts the annotated type
// definitions together with their raw directive tokens. Option validation is
// the compiler's job; the loader only tokenizes.
type Loader struct {
	Dir string

	fset *token.FileSet
}

// Unit is one loaded compilation unit: the package identity plus its type
// definitions in declaration order.
type Unit struct {
	PkgName     string
	PkgPath     string
	Definitions []*model.TypeDefinition
}

// Definition returns the definition with the given name, or nil.
func (u *Unit) Definition(name string) *model.TypeDefinition {
	for _, d := range u.Definitions {
		if d.Name == name {
			return d
		}
	}
	return nil
}

func New(dir string) *Loader {
	return &Loader{Dir: dir, fset: token.NewFileSet()}
}

// Load parses the package in l.Dir and collects every top-level struct and
// enum-like type as a TypeDefinition.
func (l *Loader) Load() (*Unit, error) {
	pkgs, err := packages.Load(&packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax,
		Dir:  l.Dir,
		Fset: l.fset,
	}, ".")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errLoadFailed, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoPackage, l.Dir)
	}

	pkg := pkgs[0]
	unit := &Unit{
		PkgName: pkg.Name,
		PkgPath: pkg.PkgPath,
	}
	if unit.PkgPath == "" {
		if p, err := modulePackagePath(l.Dir); err == nil {
			unit.PkgPath = p
		}
	}

	// First pass: type declarations.
	enumCandidates := make(map[string]*model.TypeDefinition)
	for _, file := range pkg.Syntax {
		imports := collectImports(file)
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}
			for _, spec := range gen.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok || ts.Assign.IsValid() {
					continue
				}

				doc := ts.Doc
				if doc == nil {
					doc = gen.Doc
				}

				switch t := ts.Type.(type) {
				case *ast.StructType:
					def := l.structDefinition(ts, t, doc, imports, unit.PkgPath)
					unit.Definitions = append(unit.Definitions, def)
				case *ast.Ident:
					// Candidate enum: a named string/int type. Variants come
					// from its const block in the second pass.
					if t.Name == "string" || strings.HasPrefix(t.Name, "int") || strings.HasPrefix(t.Name, "uint") {
						def := &model.TypeDefinition{
							Name:       ts.Name.Name,
							Kind:       model.KindEnum,
							PkgPath:    unit.PkgPath,
							Doc:        commentText(doc),
							Directives: l.docDirectives(doc),
						}
						enumCandidates[def.Name] = def
						unit.Definitions = append(unit.Definitions, def)
					}
				}
			}
		}
	}

	// Second pass: const blocks populate enum variants.
	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.CONST {
				continue
			}
			l.collectEnumVariants(gen, enumCandidates)
		}
	}

	// Drop enum candidates that gained no variants; they are plain named
	// types, not models.
	kept := unit.Definitions[:0]
	for _, def := range unit.Definitions {
		if def.Kind == model.KindEnum && len(def.Fields) == 0 {
			continue
		}
		kept = append(kept, def)
	}
	unit.Definitions = kept

	return unit, nil
}

func (l *Loader) structDefinition(ts *ast.TypeSpec, st *ast.StructType, doc *ast.CommentGroup, imports map[string]string, pkgPath string) *model.TypeDefinition {
	def := &model.TypeDefinition{
		Name:       ts.Name.Name,
		Kind:       model.KindStruct,
		PkgPath:    pkgPath,
		Doc:        commentText(doc),
		Directives: l.docDirectives(doc),
	}

	for _, fld := range st.Fields.List {
		typ := resolveTypeExpr(fld.Type, imports)
		dirs := l.fieldDirectives(fld)
		if len(fld.Names) == 0 {
			// Embedded field. Promote it under its type name, matching the
			// identifier Go gives the field itself.
			leaf := typ.Leaf()
			if leaf == nil || leaf.Name == "" {
				continue
			}
			def.Fields = append(def.Fields, &model.FieldDefinition{
				Name:       leaf.Name,
				Type:       typ.Clone(),
				Doc:        commentText(fld.Doc),
				Directives: dirs,
			})
			continue
		}
		for _, id := range fld.Names {
			def.Fields = append(def.Fields, &model.FieldDefinition{
				Name:       id.Name,
				Type:       typ.Clone(),
				Doc:        commentText(fld.Doc),
				Directives: dirs,
			})
		}
	}

	return def
}

func (l *Loader) collectEnumVariants(gen *ast.GenDecl, candidates map[string]*model.TypeDefinition) {
	var current *model.TypeDefinition
	for _, spec := range gen.Specs {
		vs, ok := spec.(*ast.ValueSpec)
		if !ok {
			continue
		}
		if id, ok := vs.Type.(*ast.Ident); ok {
			current = candidates[id.Name]
		} else if vs.Type != nil {
			current = nil
		}
		if current == nil {
			continue
		}
		for i, name := range vs.Names {
			if name.Name == "_" {
				continue
			}
			current.Fields = append(current.Fields, &model.FieldDefinition{
				Name:       name.Name,
				Value:      constValue(vs, i),
				Doc:        commentText(vs.Doc),
				Directives: l.docDirectives(vs.Doc),
			})
		}
	}
}

// constValue extracts the declared literal of one const in a ValueSpec.
// String literals are unquoted; other literals keep their source text.
func constValue(vs *ast.ValueSpec, i int) string {
	if i >= len(vs.Values) {
		return ""
	}
	lit, ok := vs.Values[i].(*ast.BasicLit)
	if !ok {
		return ""
	}
	if lit.Kind == token.STRING {
		if s, err := strconv.Unquote(lit.Value); err == nil {
			return s
		}
	}
	return lit.Value
}

// docDirectives extracts `//arango:` lines from a doc comment.
func (l *Loader) docDirectives(doc *ast.CommentGroup) []model.Directive {
	if doc == nil {
		return nil
	}
	var out []model.Directive
	for _, c := range doc.List {
		if !strings.HasPrefix(c.Text, directivePrefix) {
			continue
		}
		out = append(out, model.Directive{
			Text: strings.TrimSpace(strings.TrimPrefix(c.Text, directivePrefix)),
			Pos:  l.pos(c.Pos()),
		})
	}
	return out
}

// fieldDirectives merges a field's `arango` struct tag tokens with its
// `//arango:` doc lines. Tag tokens split on commas that are outside
// parentheses, so attr groups survive intact.
func (l *Loader) fieldDirectives(fld *ast.Field) []model.Directive {
	out := l.docDirectives(fld.Doc)
	if fld.Tag == nil {
		return out
	}
	raw := strings.Trim(fld.Tag.Value, "`")
	val, ok := reflect.StructTag(raw).Lookup(directiveTag)
	if !ok {
		return out
	}
	pos := l.pos(fld.Tag.Pos())
	for _, tok := range splitTopLevel(val, ',') {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		out = append(out, model.Directive{Text: tok, Pos: pos})
	}
	return out
}

func (l *Loader) pos(p token.Pos) string {
	pos := l.fset.Position(p)
	return fmt.Sprintf("%s:%d", filepath.Base(pos.Filename), pos.Line)
}

// splitTopLevel splits s on sep, ignoring separators nested inside
// parentheses.
func splitTopLevel(s string, sep byte) []string {
	var out []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	out = append(out, s[start:])
	return out
}

func collectImports(file *ast.File) map[string]string {
	m := make(map[string]string, len(file.Imports))
	for _, imp := range file.Imports {
		path := strings.Trim(imp.Path.Value, `"`)
		alias := filepath.Base(path)
		if imp.Name != nil && imp.Name.Name != "_" && imp.Name.Name != "." {
			alias = imp.Name.Name
		}
		m[alias] = path
	}
	return m
}

// resolveTypeExpr converts an ast type expression into a TypeRef graph.
// Anything beyond identifiers, selectors, pointers and slices is kept as an
// opaque leaf named by its source text shape.
func resolveTypeExpr(expr ast.Expr, imports map[string]string) *model.TypeRef {
	switch t := expr.(type) {
	case *ast.Ident:
		return &model.TypeRef{Name: t.Name}
	case *ast.StarExpr:
		return &model.TypeRef{IsPtr: true, Elem: resolveTypeExpr(t.X, imports)}
	case *ast.ArrayType:
		return &model.TypeRef{IsSlice: true, Elem: resolveTypeExpr(t.Elt, imports)}
	case *ast.SelectorExpr:
		ref := &model.TypeRef{Name: t.Sel.Name}
		if id, ok := t.X.(*ast.Ident); ok {
			if path, ok := imports[id.Name]; ok {
				ref.PkgPath = path
			} else {
				ref.PkgPath = id.Name
			}
		}
		return ref
	default:
		return &model.TypeRef{Name: "any"}
	}
}

func commentText(cg *ast.CommentGroup) string {
	if cg == nil {
		return ""
	}
	var b strings.Builder
	for _, c := range cg.List {
		if strings.HasPrefix(c.Text, directivePrefix) {
			continue
		}
		txt := strings.TrimSpace(strings.Trim(strings.TrimPrefix(strings.TrimPrefix(c.Text, "//"), "/*"), "*/"))
		if txt == "" {
			continue
		}
		b.WriteString(txt)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

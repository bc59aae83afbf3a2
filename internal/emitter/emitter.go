package emitter

import (
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/arangokit/modelgen/internal/model"
	"github.com/arangokit/modelgen/internal/naming"
)

const documentSuffix = "Document"

// Options control how resolved variants are rendered.
type Options struct {
	// PackageName is the package clause of the generated file.
	PackageName string

	// ModelsImportPath qualifies cross-references to sibling model types
	// when a definition does not request relative imports.
	ModelsImportPath string
}

// Emitter renders compiled types into a single generated file. Emission is a
// pure function of the resolved variants; no directive is re-interpreted at
// this stage.
type Emitter struct {
	opts Options
}

func New(opts Options) *Emitter {
	if opts.PackageName == "" {
		opts.PackageName = "models"
	}
	return &Emitter{opts: opts}
}

// File renders all compiled types, in the order given, into one jen.File.
func (e *Emitter) File(compiled []*model.CompiledType) *jen.File {
	f := jen.NewFile(e.opts.PackageName)
	f.HeaderComment("Code generated by modelgen. DO NOT EDIT.")

	if anyBinding(compiled) {
		e.emitSyncScope(f)
	}

	for _, ct := range compiled {
		e.emitType(f, ct)
	}

	return f
}

func anyBinding(compiled []*model.CompiledType) bool {
	for _, ct := range compiled {
		if ct.Binding != nil {
			return true
		}
	}
	return false
}

// emitSyncScope declares the shared sync-scope type once per file.
func (e *Emitter) emitSyncScope(f *jen.File) {
	f.Comment("SyncScope is the granularity of generated synchronization hooks.")
	f.Type().Id("SyncScope").Uint8()
	f.Const().Defs(
		jen.Id("SyncScopeDocument").Id("SyncScope").Op("=").Lit(1).Op("<<").Id("iota"),
		jen.Id("SyncScopeCollection"),
	)
}

func (e *Emitter) emitType(f *jen.File, ct *model.CompiledType) {
	for _, v := range ct.Variants {
		switch ct.Definition.Kind {
		case model.KindEnum:
			e.emitEnumVariant(f, ct, v)
		default:
			e.emitStructVariant(f, ct, v)
		}
		if !ct.Definition.Options.SkipDefault && ct.Definition.Kind == model.KindStruct {
			e.emitConstructor(f, v)
		}
	}

	if len(ct.FieldEnum) > 0 {
		e.emitFieldEnum(f, ct)
	}
	if ct.Binding != nil {
		e.emitBinding(f, ct)
	}
}

func (e *Emitter) emitStructVariant(f *jen.File, ct *model.CompiledType, v *model.ModelVariant) {
	def := ct.Definition

	role := fmt.Sprintf("the %s build model", v.VariantName)
	if v.IsDatabaseVariant {
		role = "the database model"
	}
	f.Commentf("%s is %s derived from %s.", v.TypeName, role, def.Name)
	for _, attr := range v.Attrs {
		f.Comment(attr)
	}

	f.Type().Id(v.TypeName).StructFunc(func(g *jen.Group) {
		for _, rf := range v.Fields {
			stat := g.Id(rf.Source.Name)
			e.writeFieldType(stat, ct, v, rf)

			tags := map[string]string{"json": rf.EffectiveName}
			var comments []string
			for _, attr := range rf.Attrs {
				if k, val, ok := parseTagAttr(attr); ok {
					tags[k] = val
				} else {
					comments = append(comments, attr)
				}
			}
			stat.Tag(tags)
			if len(comments) > 0 {
				stat.Comment(strings.Join(comments, " "))
			}
		}
	})
}

// emitEnumVariant renders an enum definition as a named string type plus one
// constant per retained variant, valued by the variant's effective name.
func (e *Emitter) emitEnumVariant(f *jen.File, ct *model.CompiledType, v *model.ModelVariant) {
	def := ct.Definition

	f.Commentf("%s is derived from the %s enum.", v.TypeName, def.Name)
	f.Type().Id(v.TypeName).String()
	f.Const().DefsFunc(func(g *jen.Group) {
		for _, rf := range v.Fields {
			g.Id(enumConstName(v.TypeName, def.Name, rf.Source.Name)).Id(v.TypeName).Op("=").Lit(rf.EffectiveName)
		}
	})
}

func (e *Emitter) emitConstructor(f *jen.File, v *model.ModelVariant) {
	f.Commentf("New%s returns an empty %s.", v.TypeName, v.TypeName)
	f.Func().Id("New" + v.TypeName).Params().Op("*").Id(v.TypeName).Block(
		jen.Return(jen.Op("&").Id(v.TypeName).Values()),
	)
}

func (e *Emitter) emitFieldEnum(f *jen.File, ct *model.CompiledType) {
	docName := ct.Variant(model.DatabaseModel).TypeName
	enumName := docName + "Field"

	f.Commentf("%s names one column of the %s collection document.", enumName, docName)
	f.Type().Id(enumName).String()

	f.Const().DefsFunc(func(g *jen.Group) {
		for _, entry := range ct.FieldEnum {
			g.Id(enumName + entry.LogicalName).Id(enumName).Op("=").Lit(entry.DatabaseName)
		}
	})

	f.Commentf("%sFields lists every column in declaration order.", docName)
	f.Func().Id(docName + "Fields").Params().Index().Id(enumName).Block(
		jen.Return(jen.Index().Id(enumName).ValuesFunc(func(g *jen.Group) {
			for _, entry := range ct.FieldEnum {
				g.Id(enumName + entry.LogicalName)
			}
		})),
	)
}

func (e *Emitter) emitBinding(f *jen.File, ct *model.CompiledType) {
	def := ct.Definition
	b := ct.Binding
	docName := ct.Variant(model.DatabaseModel).TypeName
	recv := jen.Id(docName)

	f.Commentf("CollectionName is the database collection backing %s.", docName)
	f.Func().Params(recv.Clone()).Id("CollectionName").Params().String().Block(
		jen.Return(jen.Lit(b.CollectionName)),
	)

	f.Commentf("CollectionKind reports the %s value for this collection.", b.CollectionType)
	f.Func().Params(recv.Clone()).Id("CollectionKind").Params().
		Add(e.modelRef(def, b.CollectionType)).
		Block(jen.Return(e.modelRef(def, b.CollectionKind)))

	f.Comment("SyncScope reports which synchronization hooks are generated.")
	f.Func().Params(recv.Clone()).Id("SyncScope").Params().Id("SyncScope").Block(
		jen.Return(syncScopeExpr(b)),
	)

	if b.DocumentSync {
		f.Comment("LockColumn is the reserved column claimed by document-level sync.")
		f.Func().Params(recv.Clone()).Id("LockColumn").Params().String().Block(
			jen.Return(jen.Lit(b.LockFieldName)),
		)
	}
	if b.CollectionSync {
		f.Commentf("%s names the column holding the document key.", b.KeyMethodName)
		f.Func().Params(recv.Clone()).Id(b.KeyMethodName).Params().String().Block(
			jen.Return(jen.Lit("_key")),
		)
	}
}

func syncScopeExpr(b *model.DatabaseBinding) *jen.Statement {
	switch {
	case b.DocumentSync && b.CollectionSync:
		return jen.Id("SyncScopeDocument").Op("|").Id("SyncScopeCollection")
	case b.CollectionSync:
		return jen.Id("SyncScopeCollection")
	default:
		return jen.Id("SyncScopeDocument")
	}
}

// writeFieldType renders a resolved field type, walking pointer and slice
// wrappers down to the leaf. Leaves referencing sibling sub-models are
// rewritten to the nested model's variant type; relative_imports decides
// whether that reference is a bare identifier or a qualified one.
func (e *Emitter) writeFieldType(stat *jen.Statement, ct *model.CompiledType, v *model.ModelVariant, rf *model.ResolvedField) {
	ref := rf.EffectiveType
	for ref != nil {
		switch {
		case ref.IsSlice:
			stat.Index()
		case ref.IsPtr:
			stat.Op("*")
		default:
			e.writeLeaf(stat, ct, v, rf, ref)
			return
		}
		ref = ref.Elem
	}
}

func (e *Emitter) writeLeaf(stat *jen.Statement, ct *model.CompiledType, v *model.ModelVariant, rf *model.ResolvedField, leaf *model.TypeRef) {
	if leaf.PkgPath != "" {
		stat.Qual(leaf.PkgPath, leaf.Name)
		return
	}

	if nested := findNested(ct, leaf.Name); nested != nil && rf.Source.Options.InnerModel != model.InnerData {
		// A sub-model that does not declare the current build model falls
		// back to its database variant.
		variant := v.VariantName
		if nested.Variant(variant) == nil {
			variant = model.DatabaseModel
		}
		name := variantTypeName(leaf.Name, variant)
		if ct.Definition.Options.RelativeImports || e.opts.ModelsImportPath == "" {
			stat.Id(name)
		} else {
			stat.Qual(e.opts.ModelsImportPath, name)
		}
		return
	}

	// Unit-local data leaves live in the input package; qualified output
	// must reference them there or the generated file does not resolve.
	if builtinTypes[leaf.Name] || ct.Definition.Options.RelativeImports || e.opts.ModelsImportPath == "" {
		stat.Id(leaf.Name)
		return
	}
	stat.Qual(e.opts.ModelsImportPath, leaf.Name)
}

var builtinTypes = map[string]bool{
	"any": true, "bool": true, "byte": true, "complex64": true,
	"complex128": true, "error": true, "float32": true, "float64": true,
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"rune": true, "string": true, "uint": true, "uint8": true,
	"uint16": true, "uint32": true, "uint64": true, "uintptr": true,
}

// modelRef references a user-declared model-package type such as the
// collection kind enum, qualified unless relative imports were requested.
func (e *Emitter) modelRef(def *model.TypeDefinition, name string) *jen.Statement {
	if def.Options.RelativeImports || e.opts.ModelsImportPath == "" {
		return jen.Id(name)
	}
	return jen.Qual(e.opts.ModelsImportPath, name)
}

func findNested(ct *model.CompiledType, name string) *model.CompiledType {
	for _, n := range ct.Nested {
		if n.Definition.Name == name {
			return n
		}
	}
	return nil
}

// enumConstName joins the variant type with one constant's name, avoiding a
// doubled prefix when the source const already starts with the enum name:
// RoleAdmin on Role becomes RoleDocumentAdmin, not RoleDocumentRoleAdmin.
func enumConstName(typeName, enumName, constName string) string {
	suffix := strings.TrimPrefix(constName, enumName)
	if suffix == "" {
		suffix = constName
	}
	return typeName + suffix
}

func variantTypeName(typeName, variant string) string {
	if variant == model.DatabaseModel {
		return typeName + documentSuffix
	}
	return typeName + naming.Pascal(variant)
}

// parseTagAttr splits a passthrough attribute of the form key:"value" into
// its tag key and value. Anything else is handed back to the caller as an
// opaque comment.
func parseTagAttr(attr string) (key, value string, ok bool) {
	i := strings.Index(attr, `:"`)
	if i <= 0 || !strings.HasSuffix(attr, `"`) {
		return "", "", false
	}
	key = strings.TrimSpace(attr[:i])
	value = attr[i+2 : len(attr)-1]
	if key == "" || strings.ContainsAny(key, " \t") {
		return "", "", false
	}
	return key, value, true
}

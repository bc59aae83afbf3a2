package compiler

import (
	"strings"

	"github.com/arangokit/modelgen/internal/model"
	"github.com/arangokit/modelgen/internal/naming"
)

const documentSuffix = "Document"

// variantTypeName computes the emitted identifier for one variant of a
// definition: User -> UserDocument for "db", UserAPI for build model "api".
func variantTypeName(def *model.TypeDefinition, variant string) string {
	if variant == model.DatabaseModel {
		return def.Name + documentSuffix
	}
	return def.Name + naming.Pascal(variant)
}

// resolveVariant decides, for every declared field, inclusion, effective
// name, and effective type in the named variant.
//
// Renames are a database-only concern: db_name applies to "db" and nothing
// else. Type overrides are the inverse: inner_type_<model> applies to build
// variants and is ignored for "db". An override attached to a field that is
// skipped in the same variant is a no-op, since inclusion is decided first.
func resolveVariant(def *model.TypeDefinition, variant string) *model.ModelVariant {
	isDB := variant == model.DatabaseModel

	v := &model.ModelVariant{
		VariantName:       variant,
		TypeName:          variantTypeName(def, variant),
		IsDatabaseVariant: isDB,
		Attrs:             variantAttrs(def.Options.Attrs, def.Options.ModelAttrs, variant),
	}

	for _, f := range def.Fields {
		if f.Options.SkippedIn(variant) {
			continue
		}

		name := naming.CamelToSnake(f.Name)
		if def.Kind == model.KindEnum {
			// Enum variants serialize as their declared constant value, so
			// stored data and generated constants agree.
			name = f.Value
			if name == "" {
				name = naming.CamelToSnake(strings.TrimPrefix(f.Name, def.Name))
			}
		}
		typ := f.Type
		if isDB {
			if f.Options.DBName != "" {
				name = f.Options.DBName
			}
		} else if override, ok := f.Options.InnerTypeByModel[variant]; ok {
			typ = override
		}

		v.Fields = append(v.Fields, &model.ResolvedField{
			Source:        f,
			EffectiveName: name,
			EffectiveType: typ,
			Attrs:         variantAttrs(f.Options.Attrs, f.Options.ModelAttrs, variant),
		})
	}

	return v
}

func variantAttrs(common []string, byModel map[string][]string, variant string) []string {
	scoped := byModel[variant]
	if len(common) == 0 && len(scoped) == 0 {
		return nil
	}
	out := make([]string, 0, len(common)+len(scoped))
	out = append(out, common...)
	out = append(out, scoped...)
	return out
}

// nestedFieldTypes returns, in declaration order, the names of unit-local
// types referenced by fields classified as struct/enum sub-models. Fields
// marked inner_model=data are opaque leaves and never traversed.
func nestedFieldTypes(def *model.TypeDefinition, unit map[string]*model.TypeDefinition) []string {
	var out []string
	seen := make(map[string]bool)
	for _, f := range def.Fields {
		if f.Options.InnerModel == model.InnerData {
			continue
		}
		leaf := f.Type.Leaf()
		if leaf == nil || leaf.PkgPath != "" {
			continue
		}
		if _, ok := unit[leaf.Name]; !ok {
			continue
		}
		if !seen[leaf.Name] {
			seen[leaf.Name] = true
			out = append(out, leaf.Name)
		}
	}
	return out
}

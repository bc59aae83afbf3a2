package compiler

import (
	"strconv"
	"strings"

	"github.com/arangokit/modelgen/internal/model"
)

// Directive language, struct level.
const (
	relativeImportsOption = "relative_imports"
	skipImplOption        = "skip_impl"
	skipFieldsOption      = "skip_fields"
	skipDefaultOption     = "skip_default"
	syncLevelOption       = "sync_level"
	syncKeyMethodOption   = "sync_collection_key_method"
	collectionNameOption  = "collection_name"
	collectionTypeOption  = "collection_type"
	collectionKindOption  = "collection_kind"
	buildPrefix           = "build_"
)

// Directive language, field level.
const (
	dbNameOption     = "db_name"
	innerModelOption = "inner_model"
	skipInPrefix     = "skip_in_"
	innerTypePrefix  = "inner_type_"
	attrOption       = "attr"
	attrSuffix       = "_attr"
)

var syncLevelValues = map[string]model.SyncLevel{
	"document":                model.SyncDocument,
	"collection":              model.SyncCollection,
	"document_and_collection": model.SyncDocumentAndCollection,
}

var innerModelValues = map[string]model.InnerModelKind{
	"data":   model.InnerData,
	"struct": model.InnerStruct,
	"enum":   model.InnerEnum,
}

// token is one decomposed directive: name, optional =value, optional (args).
type token struct {
	name    string
	value   string
	hasVal  bool
	args    string
	hasArgs bool
	raw     string
	pos     string
}

func splitDirective(d model.Directive) token {
	t := token{raw: d.Text, pos: d.Pos}
	text := strings.TrimSpace(d.Text)

	if i := strings.IndexByte(text, '('); i >= 0 && strings.HasSuffix(text, ")") {
		t.name = text[:i]
		t.args = text[i+1 : len(text)-1]
		t.hasArgs = true
		return t
	}
	if i := strings.IndexByte(text, '='); i >= 0 {
		t.name = strings.TrimSpace(text[:i])
		t.value = strings.Trim(strings.TrimSpace(text[i+1:]), `"`)
		t.hasVal = true
		return t
	}
	t.name = text
	return t
}

// parseStructOptions validates the type-level directive tokens against the
// closed option table and produces a populated StructOptions. Per-model
// segments (build_<model>, <model>_attr) are captured free-form here and
// validated against the registry later.
func parseStructOptions(def *model.TypeDefinition) (*model.StructOptions, error) {
	opts := &model.StructOptions{
		ModelAttrs: make(map[string][]string),
	}
	seen := make(map[string]bool)

	for _, d := range def.Directives {
		t := splitDirective(d)

		derr := func(reason string) error {
			return &DirectiveError{TypeName: def.Name, Option: t.raw, Pos: t.pos, Reason: reason}
		}

		if t.hasArgs {
			if t.name == attrOption {
				opts.Attrs = append(opts.Attrs, t.args)
				continue
			}
			if m, ok := strings.CutSuffix(t.name, attrSuffix); ok && m != "" {
				opts.ModelAttrs[m] = append(opts.ModelAttrs[m], t.args)
				continue
			}
			return nil, derr("unrecognized option")
		}

		if m, ok := strings.CutPrefix(t.name, buildPrefix); ok && m != "" {
			if t.hasVal {
				return nil, derr("build_<model> takes no value")
			}
			opts.BuildModels = append(opts.BuildModels, m)
			continue
		}

		switch t.name {
		case relativeImportsOption, skipImplOption, skipFieldsOption, skipDefaultOption:
			if seen[t.name] {
				return nil, derr("duplicate option")
			}
			seen[t.name] = true
			v, err := boolValue(t)
			if err != nil {
				return nil, derr(err.Error())
			}
			switch t.name {
			case relativeImportsOption:
				opts.RelativeImports = v
			case skipImplOption:
				opts.SkipImpl = v
			case skipFieldsOption:
				opts.SkipFields = v
			case skipDefaultOption:
				opts.SkipDefault = v
			}

		case syncLevelOption:
			if seen[t.name] {
				return nil, derr("duplicate option")
			}
			seen[t.name] = true
			if !t.hasVal {
				return nil, derr("expected sync_level=document|collection|document_and_collection")
			}
			lvl, ok := syncLevelValues[t.value]
			if !ok {
				return nil, derr("invalid sync_level value " + strconv.Quote(t.value))
			}
			opts.SyncLevel = lvl

		case syncKeyMethodOption, collectionNameOption, collectionTypeOption, collectionKindOption:
			if seen[t.name] {
				return nil, derr("duplicate option")
			}
			seen[t.name] = true
			if !t.hasVal || t.value == "" {
				return nil, derr("expected a non-empty value")
			}
			switch t.name {
			case syncKeyMethodOption:
				opts.SyncCollectionKeyMethod = t.value
			case collectionNameOption:
				opts.CollectionName = t.value
			case collectionTypeOption:
				opts.CollectionType = t.value
			case collectionKindOption:
				opts.CollectionKind = t.value
			}

		default:
			return nil, derr("unrecognized option")
		}
	}

	return opts, nil
}

// parseFieldOptions validates one field's directive tokens. Fields of enum
// definitions default to inner_model=struct, matching how enum variants
// reference sub-models.
func parseFieldOptions(def *model.TypeDefinition, field *model.FieldDefinition) (*model.FieldOptions, error) {
	opts := &model.FieldOptions{
		SkipInModel:      make(map[string]bool),
		InnerTypeByModel: make(map[string]*model.TypeRef),
		ModelAttrs:       make(map[string][]string),
	}
	if def.Kind == model.KindEnum {
		opts.InnerModel = model.InnerStruct
	}
	seen := make(map[string]bool)

	for _, d := range field.Directives {
		t := splitDirective(d)

		derr := func(reason string) error {
			return &DirectiveError{
				TypeName:  def.Name,
				FieldName: field.Name,
				Option:    t.raw,
				Pos:       t.pos,
				Reason:    reason,
			}
		}

		if t.hasArgs {
			if t.name == attrOption {
				opts.Attrs = append(opts.Attrs, t.args)
				continue
			}
			if m, ok := strings.CutSuffix(t.name, attrSuffix); ok && m != "" {
				opts.ModelAttrs[m] = append(opts.ModelAttrs[m], t.args)
				continue
			}
			return nil, derr("unrecognized option")
		}

		if m, ok := strings.CutPrefix(t.name, skipInPrefix); ok && m != "" {
			if t.hasVal {
				return nil, derr("skip_in_<model> takes no value")
			}
			opts.SkipInModel[m] = true
			continue
		}

		if m, ok := strings.CutPrefix(t.name, innerTypePrefix); ok && m != "" {
			if !t.hasVal || t.value == "" {
				return nil, derr("expected inner_type_<model>=TypeName")
			}
			ref, err := parseTypeRef(t.value)
			if err != nil {
				return nil, derr(err.Error())
			}
			opts.InnerTypeByModel[m] = ref
			continue
		}

		switch t.name {
		case dbNameOption:
			if seen[t.name] {
				return nil, derr("duplicate option")
			}
			seen[t.name] = true
			if !t.hasVal || t.value == "" {
				return nil, derr("expected db_name=name")
			}
			opts.DBName = t.value

		case innerModelOption:
			if seen[t.name] {
				return nil, derr("duplicate option")
			}
			seen[t.name] = true
			if !t.hasVal {
				return nil, derr("expected inner_model=data|struct|enum")
			}
			kind, ok := innerModelValues[t.value]
			if !ok {
				return nil, derr("invalid inner_model value " + strconv.Quote(t.value))
			}
			opts.InnerModel = kind

		default:
			return nil, derr("unrecognized option")
		}
	}

	return opts, nil
}

// parseTypeRef parses an inner_type override value: optional []/* wrappers
// around an optionally package-qualified type name.
func parseTypeRef(s string) (*model.TypeRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errEmptyTypeRef
	}
	switch {
	case strings.HasPrefix(s, "[]"):
		elem, err := parseTypeRef(s[2:])
		if err != nil {
			return nil, err
		}
		return &model.TypeRef{IsSlice: true, Elem: elem}, nil
	case strings.HasPrefix(s, "*"):
		elem, err := parseTypeRef(s[1:])
		if err != nil {
			return nil, err
		}
		return &model.TypeRef{IsPtr: true, Elem: elem}, nil
	}
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		pkg, name := s[:i], s[i+1:]
		if pkg == "" || name == "" {
			return nil, errMalformedTypeRef
		}
		return &model.TypeRef{PkgPath: pkg, Name: name}, nil
	}
	return &model.TypeRef{Name: s}, nil
}

func boolValue(t token) (bool, error) {
	if !t.hasVal {
		return true, nil
	}
	switch t.value {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, errBoolLiteral
}

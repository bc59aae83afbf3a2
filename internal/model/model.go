package model

import "strings"

// Kind discriminates the shape of a type definition.
type Kind int

const (
	KindInvalid Kind = iota
	KindStruct
	KindEnum
)

// DatabaseModel is the name of the implicit database variant. It always
// exists and is always resolved first.
const DatabaseModel = "db"

// Directive is one raw option token attached to a type or field, exactly as
// the host syntax supplied it. Validation happens in the compiler, not here.
type Directive struct {
	Text string // e.g. `sync_level=document`, `db_name=nm`, `api_attr(json:"-")`
	Pos  string // source location, file:line
}

// TypeDefinition is the subject type of one compilation. It is constructed
// once by the loader and not mutated afterwards; Options is populated by the
// directive parser in a single pass before resolution starts.
type TypeDefinition struct {
	Name       string
	Kind       Kind
	PkgPath    string
	Doc        string
	Directives []Directive
	Fields     []*FieldDefinition // variant definitions when Kind == KindEnum

	Options *StructOptions
}

// Field returns the field with the given declared name, or nil.
func (d *TypeDefinition) Field(name string) *FieldDefinition {
	for _, f := range d.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// FieldDefinition is one declared field (or enum variant) of the subject
// type.
type FieldDefinition struct {
	Name       string
	Type       *TypeRef
	Doc        string
	Directives []Directive

	// Value is the declared constant value of an enum variant, empty for
	// struct fields and for variants without an explicit literal.
	Value string

	Options *FieldOptions
}

// SyncLevel is the granularity at which generated database bindings track
// change synchronization.
type SyncLevel int

const (
	SyncNone SyncLevel = iota
	SyncDocument
	SyncCollection
	SyncDocumentAndCollection
)

func (s SyncLevel) DocumentActive() bool {
	return s == SyncDocument || s == SyncDocumentAndCollection
}

func (s SyncLevel) CollectionActive() bool {
	return s == SyncCollection || s == SyncDocumentAndCollection
}

func (s SyncLevel) Active() bool {
	return s != SyncNone
}

func (s SyncLevel) String() string {
	switch s {
	case SyncDocument:
		return "document"
	case SyncCollection:
		return "collection"
	case SyncDocumentAndCollection:
		return "document_and_collection"
	default:
		return "none"
	}
}

// InnerModelKind classifies how a nested field type is treated when the
// field's owner is re-derived: as an opaque leaf (data) or as a sub-model
// requiring its own variant derivation (struct/enum).
type InnerModelKind int

const (
	InnerData InnerModelKind = iota
	InnerStruct
	InnerEnum
)

func (k InnerModelKind) String() string {
	switch k {
	case InnerStruct:
		return "struct"
	case InnerEnum:
		return "enum"
	default:
		return "data"
	}
}

// StructOptions holds the parsed struct-level directives.
type StructOptions struct {
	RelativeImports         bool
	BuildModels             []string // declaration order, never contains "db"
	SkipImpl                bool
	SkipFields              bool
	SkipDefault             bool
	SyncLevel               SyncLevel
	SyncCollectionKeyMethod string
	CollectionName          string
	CollectionType          string
	CollectionKind          string

	// Attrs are model-independent passthrough tokens; ModelAttrs are scoped
	// to one variant. Both are opaque to the compiler.
	Attrs      []string
	ModelAttrs map[string][]string
}

// FieldOptions holds the parsed field-level directives.
type FieldOptions struct {
	SkipInModel      map[string]bool
	DBName           string
	InnerModel       InnerModelKind
	InnerTypeByModel map[string]*TypeRef

	Attrs      []string
	ModelAttrs map[string][]string
}

// SkippedIn reports whether the field is absent from the named variant.
func (o *FieldOptions) SkippedIn(model string) bool {
	return o != nil && o.SkipInModel[model]
}

// TypeRef describes a (possibly pointer/slice wrapped) reference to a type.
type TypeRef struct {
	PkgPath string // "" for builtins and same-unit types
	Name    string
	IsPtr   bool
	IsSlice bool
	Elem    *TypeRef // for Ptr or Slice
}

// Leaf returns the innermost named type of the reference chain.
func (t *TypeRef) Leaf() *TypeRef {
	cur := t
	for cur != nil && cur.Elem != nil {
		cur = cur.Elem
	}
	return cur
}

func (t *TypeRef) String() string {
	if t == nil {
		return ""
	}
	var b strings.Builder
	cur := t
	for cur != nil {
		switch {
		case cur.IsSlice:
			b.WriteString("[]")
		case cur.IsPtr:
			b.WriteString("*")
		default:
			if cur.PkgPath != "" {
				b.WriteString(cur.PkgPath)
				b.WriteString(".")
			}
			b.WriteString(cur.Name)
		}
		cur = cur.Elem
	}
	return b.String()
}

// Clone deep-copies a TypeRef graph.
func (t *TypeRef) Clone() *TypeRef {
	if t == nil {
		return nil
	}
	c := &TypeRef{
		PkgPath: t.PkgPath,
		Name:    t.Name,
		IsPtr:   t.IsPtr,
		IsSlice: t.IsSlice,
	}
	if t.Elem != nil {
		c.Elem = t.Elem.Clone()
	}
	return c
}

package model

// ModelVariant is one fully resolved output model for a type definition.
type ModelVariant struct {
	VariantName       string // "db" or a build-model name
	TypeName          string // emitted type identifier, e.g. UserDocument, UserAPI
	IsDatabaseVariant bool
	Fields            []*ResolvedField
	Attrs             []string // struct-level passthrough tokens for this variant
}

// Field returns the resolved field with the given effective name, or nil.
func (v *ModelVariant) Field(name string) *ResolvedField {
	for _, f := range v.Fields {
		if f.EffectiveName == name {
			return f
		}
	}
	return nil
}

// ResolvedField is one field of a ModelVariant. Source points back to the
// declaring FieldDefinition; it is never owned here.
type ResolvedField struct {
	Source        *FieldDefinition
	EffectiveName string
	EffectiveType *TypeRef
	Attrs         []string
}

// FieldEnumEntry pairs a logical field name with its database column name.
// The entry set is the only sanctioned source of column names downstream.
type FieldEnumEntry struct {
	LogicalName  string
	DatabaseName string
}

// DatabaseBinding carries the collection metadata and sync scope emitted for
// a type. Present only when sync_level is active and skip_impl is unset.
type DatabaseBinding struct {
	CollectionName string
	CollectionType string
	CollectionKind string
	KeyMethodName  string
	DocumentSync   bool
	CollectionSync bool

	// LockFieldName is the reserved mutex column claimed by document-level
	// sync, empty otherwise.
	LockFieldName string
}

// CompiledType is the complete result of compiling one type definition.
type CompiledType struct {
	Definition *TypeDefinition
	Variants   []*ModelVariant
	FieldEnum  []FieldEnumEntry
	Binding    *DatabaseBinding

	// Nested holds sub-models derived through inner_model=struct/enum
	// fields, in first-reference order.
	Nested []*CompiledType
}

// Variant returns the resolved variant with the given name, or nil.
func (c *CompiledType) Variant(name string) *ModelVariant {
	for _, v := range c.Variants {
		if v.VariantName == name {
			return v
		}
	}
	return nil
}

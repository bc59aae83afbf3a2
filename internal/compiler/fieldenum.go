package compiler

import (
	"github.com/arangokit/modelgen/internal/model"
)

// Reserved database columns. The revision column belongs to the database
// itself; the lock column is claimed by document-level synchronization.
const (
	revisionColumn = "_rev"
	lockColumn     = "_lock"
)

// checkColumnNames rejects database variants in which two fields resolve to
// the same column, or a field claims a reserved column. It runs regardless
// of skip_fields: an ambiguous column is broken even when no field
// enumeration is generated.
func checkColumnNames(def *model.TypeDefinition, db *model.ModelVariant) error {
	reserved := map[string]bool{revisionColumn: true}
	if !def.Options.SkipImpl && def.Options.SyncLevel.DocumentActive() {
		reserved[lockColumn] = true
	}

	byColumn := make(map[string]string, len(db.Fields))
	for _, f := range db.Fields {
		col := f.EffectiveName
		if reserved[col] {
			return &AmbiguousColumnNameError{
				TypeName:     def.Name,
				DatabaseName: col,
				FirstField:   f.Source.Name,
			}
		}
		if first, ok := byColumn[col]; ok {
			return &AmbiguousColumnNameError{
				TypeName:     def.Name,
				DatabaseName: col,
				FirstField:   first,
				SecondField:  f.Source.Name,
			}
		}
		byColumn[col] = f.Source.Name
	}
	return nil
}

// buildFieldEnum produces one entry per field retained in the database
// variant, pairing the declared field name with its column name. Returns nil
// when skip_fields is set.
func buildFieldEnum(def *model.TypeDefinition, db *model.ModelVariant) []model.FieldEnumEntry {
	if def.Options.SkipFields {
		return nil
	}
	entries := make([]model.FieldEnumEntry, 0, len(db.Fields))
	for _, f := range db.Fields {
		entries = append(entries, model.FieldEnumEntry{
			LogicalName:  f.Source.Name,
			DatabaseName: f.EffectiveName,
		})
	}
	return entries
}

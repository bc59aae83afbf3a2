package compiler

import (
	"github.com/arangokit/modelgen/internal/model"
	"github.com/arangokit/modelgen/internal/naming"
)

const (
	defaultCollectionType = "CollectionKind"
	defaultKeyMethod      = "DocumentKey"
)

// buildBinding resolves the collection metadata and sync scope for a
// definition. It returns nil when skip_impl is set or no sync level was
// requested; collection options on their own never produce a binding.
func buildBinding(def *model.TypeDefinition) (*model.DatabaseBinding, error) {
	opts := def.Options

	if opts.SyncLevel == model.SyncDocument && opts.SyncCollectionKeyMethod != "" {
		return nil, &ConflictingSyncConfigError{
			TypeName: def.Name,
			Reason:   "sync_collection_key_method requires collection-level sync, got sync_level=document",
		}
	}

	if opts.SkipImpl || !opts.SyncLevel.Active() {
		return nil, nil
	}

	b := &model.DatabaseBinding{
		CollectionName: opts.CollectionName,
		CollectionType: opts.CollectionType,
		CollectionKind: opts.CollectionKind,
		KeyMethodName:  opts.SyncCollectionKeyMethod,
		DocumentSync:   opts.SyncLevel.DocumentActive(),
		CollectionSync: opts.SyncLevel.CollectionActive(),
	}
	if b.CollectionName == "" {
		b.CollectionName = naming.DefaultCollectionName(def.Name)
	}
	if b.CollectionType == "" {
		b.CollectionType = defaultCollectionType
	}
	if b.CollectionKind == "" {
		b.CollectionKind = b.CollectionName
	}
	if b.KeyMethodName == "" {
		b.KeyMethodName = defaultKeyMethod
	}
	if b.DocumentSync {
		b.LockFieldName = lockColumn
	}

	return b, nil
}

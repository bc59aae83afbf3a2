package compiler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arangokit/modelgen/internal/model"
)

func parsedDef(t *testing.T, def *model.TypeDefinition) *model.TypeDefinition {
	t.Helper()
	opts, err := parseStructOptions(def)
	require.NoError(t, err)
	def.Options = opts
	return def
}

func TestBuildBindingDefaults(t *testing.T) {
	def := parsedDef(t, testDef("User", model.KindStruct, []string{"sync_level=collection"}))

	b, err := buildBinding(def)
	require.NoError(t, err)
	require.NotNil(t, b)
	require.Equal(t, "Users", b.CollectionName)
	require.Equal(t, "CollectionKind", b.CollectionType)
	require.Equal(t, "Users", b.CollectionKind)
	require.Equal(t, "DocumentKey", b.KeyMethodName)
	require.True(t, b.CollectionSync)
	require.False(t, b.DocumentSync)
	require.Empty(t, b.LockFieldName)
}

func TestBuildBindingExplicitOptions(t *testing.T) {
	def := parsedDef(t, testDef("User", model.KindStruct, []string{
		"sync_level=document_and_collection",
		"sync_collection_key_method=LookupKey",
		"collection_name=Accounts",
		"collection_type=StoreKind",
		"collection_kind=AccountStore",
	}))

	b, err := buildBinding(def)
	require.NoError(t, err)
	require.Equal(t, "Accounts", b.CollectionName)
	require.Equal(t, "StoreKind", b.CollectionType)
	require.Equal(t, "AccountStore", b.CollectionKind)
	require.Equal(t, "LookupKey", b.KeyMethodName)
	require.True(t, b.DocumentSync)
	require.True(t, b.CollectionSync)
	require.Equal(t, "_lock", b.LockFieldName)
}

func TestCollectionOptionsAloneProduceNoBinding(t *testing.T) {
	def := parsedDef(t, testDef("User", model.KindStruct, []string{"collection_name=Accounts"}))

	b, err := buildBinding(def)
	require.NoError(t, err)
	require.Nil(t, b)
}

func TestSkipImplProducesNoBinding(t *testing.T) {
	def := parsedDef(t, testDef("User", model.KindStruct, []string{"skip_impl", "sync_level=collection"}))

	b, err := buildBinding(def)
	require.NoError(t, err)
	require.Nil(t, b)
}

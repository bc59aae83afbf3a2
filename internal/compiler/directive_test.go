package compiler

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/arangokit/modelgen/internal/model"
)

func testDef(name string, kind model.Kind, directives []string, fields ...*model.FieldDefinition) *model.TypeDefinition {
	d := &model.TypeDefinition{Name: name, Kind: kind, Fields: fields}
	for _, t := range directives {
		d.Directives = append(d.Directives, model.Directive{Text: t})
	}
	return d
}

func testField(name string, typ *model.TypeRef, directives ...string) *model.FieldDefinition {
	f := &model.FieldDefinition{Name: name, Type: typ}
	for _, t := range directives {
		f.Directives = append(f.Directives, model.Directive{Text: t})
	}
	return f
}

func named(n string) *model.TypeRef { return &model.TypeRef{Name: n} }

func TestSplitDirective(t *testing.T) {
	tests := []struct {
		text string
		want token
	}{
		{"skip_impl", token{name: "skip_impl"}},
		{"sync_level=document", token{name: "sync_level", value: "document", hasVal: true}},
		{`collection_name="Users"`, token{name: "collection_name", value: "Users", hasVal: true}},
		{`api_attr(json:"-")`, token{name: "api_attr", args: `json:"-"`, hasArgs: true}},
		{"db_name = nm", token{name: "db_name", value: "nm", hasVal: true}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := splitDirective(model.Directive{Text: tt.text})
			tt.want.raw = tt.text
			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(token{})); diff != "" {
				t.Fatalf("unexpected token (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseStructOptions(t *testing.T) {
	t.Run("full option set", func(t *testing.T) {
		def := testDef("User", model.KindStruct, []string{
			"relative_imports",
			"build_api",
			"build_json",
			"skip_default=true",
			"sync_level=document_and_collection",
			"sync_collection_key_method=LookupKey",
			"collection_name=Accounts",
			"collection_type=CollectionKind",
			"collection_kind=AccountCollection",
			`attr(validate:"required")`,
			`api_attr(json:"-")`,
		})
		opts, err := parseStructOptions(def)
		require.NoError(t, err)
		require.True(t, opts.RelativeImports)
		require.Equal(t, []string{"api", "json"}, opts.BuildModels)
		require.True(t, opts.SkipDefault)
		require.False(t, opts.SkipImpl)
		require.Equal(t, model.SyncDocumentAndCollection, opts.SyncLevel)
		require.Equal(t, "LookupKey", opts.SyncCollectionKeyMethod)
		require.Equal(t, "Accounts", opts.CollectionName)
		require.Equal(t, "AccountCollection", opts.CollectionKind)
		require.Equal(t, []string{`validate:"required"`}, opts.Attrs)
		require.Equal(t, []string{`json:"-"`}, opts.ModelAttrs["api"])
	})

	t.Run("duplicate option", func(t *testing.T) {
		def := testDef("User", model.KindStruct, []string{"sync_level=document", "sync_level=collection"})
		_, err := parseStructOptions(def)
		var derr *DirectiveError
		require.ErrorAs(t, err, &derr)
		require.Equal(t, "User", derr.TypeName)
	})

	t.Run("invalid sync level", func(t *testing.T) {
		def := testDef("User", model.KindStruct, []string{"sync_level=galaxy"})
		_, err := parseStructOptions(def)
		var derr *DirectiveError
		require.ErrorAs(t, err, &derr)
		require.Contains(t, err.Error(), `"galaxy"`)
	})

	t.Run("invalid value is escaped in the diagnostic", func(t *testing.T) {
		def := testDef("User", model.KindStruct, []string{`sync_level=ga"laxy`})
		_, err := parseStructOptions(def)
		var derr *DirectiveError
		require.ErrorAs(t, err, &derr)
		require.Contains(t, err.Error(), `"ga\"laxy"`)
	})

	t.Run("unrecognized option", func(t *testing.T) {
		def := testDef("User", model.KindStruct, []string{"sink_level=document"})
		_, err := parseStructOptions(def)
		var derr *DirectiveError
		require.ErrorAs(t, err, &derr)
	})

	t.Run("build takes no value", func(t *testing.T) {
		def := testDef("User", model.KindStruct, []string{"build_api=yes"})
		_, err := parseStructOptions(def)
		var derr *DirectiveError
		require.ErrorAs(t, err, &derr)
	})

	t.Run("bool literal", func(t *testing.T) {
		def := testDef("User", model.KindStruct, []string{"skip_impl=maybe"})
		_, err := parseStructOptions(def)
		var derr *DirectiveError
		require.ErrorAs(t, err, &derr)
	})
}

func TestParseFieldOptions(t *testing.T) {
	t.Run("field option set", func(t *testing.T) {
		def := testDef("User", model.KindStruct, nil)
		f := testField("Name", named("string"),
			"db_name=nm",
			"skip_in_json",
			"inner_model=data",
			"inner_type_api=*APIName",
			`attr(validate:"min=1")`,
		)
		opts, err := parseFieldOptions(def, f)
		require.NoError(t, err)
		require.Equal(t, "nm", opts.DBName)
		require.True(t, opts.SkippedIn("json"))
		require.False(t, opts.SkippedIn("api"))
		require.Equal(t, model.InnerData, opts.InnerModel)
		require.Equal(t, "*APIName", opts.InnerTypeByModel["api"].String())
		require.Equal(t, []string{`validate:"min=1"`}, opts.Attrs)
	})

	t.Run("enum fields default to struct inner model", func(t *testing.T) {
		def := testDef("Role", model.KindEnum, nil)
		opts, err := parseFieldOptions(def, testField("Admin", nil))
		require.NoError(t, err)
		require.Equal(t, model.InnerStruct, opts.InnerModel)
	})

	t.Run("skip_in takes no value", func(t *testing.T) {
		def := testDef("User", model.KindStruct, nil)
		_, err := parseFieldOptions(def, testField("Name", named("string"), "skip_in_api=true"))
		var derr *DirectiveError
		require.ErrorAs(t, err, &derr)
		require.Equal(t, "Name", derr.FieldName)
	})

	t.Run("invalid inner model", func(t *testing.T) {
		def := testDef("User", model.KindStruct, nil)
		_, err := parseFieldOptions(def, testField("Name", named("string"), "inner_model=graph"))
		var derr *DirectiveError
		require.ErrorAs(t, err, &derr)
	})

	t.Run("duplicate db_name", func(t *testing.T) {
		def := testDef("User", model.KindStruct, nil)
		_, err := parseFieldOptions(def, testField("Name", named("string"), "db_name=a", "db_name=b"))
		var derr *DirectiveError
		require.ErrorAs(t, err, &derr)
	})
}

func TestParseTypeRef(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "string", want: "string"},
		{in: "*Profile", want: "*Profile"},
		{in: "[]*Entry", want: "[]*Entry"},
		{in: "time.Time", want: "time.Time"},
		{in: "", wantErr: true},
		{in: ".Oops", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ref, err := parseTypeRef(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, ref.String())
		})
	}
}

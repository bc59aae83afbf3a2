package compiler

import (
	"sort"

	"github.com/arangokit/modelgen/internal/model"
)

// Registry is the resolved set of variant names for one type definition:
// "db" first, then the declared build models in declaration order.
type Registry struct {
	names []string
	set   map[string]bool
}

func buildRegistry(def *model.TypeDefinition) (*Registry, error) {
	opts := def.Options
	r := &Registry{
		names: make([]string, 0, len(opts.BuildModels)+1),
		set:   make(map[string]bool, len(opts.BuildModels)+1),
	}
	r.names = append(r.names, model.DatabaseModel)
	r.set[model.DatabaseModel] = true

	for _, m := range opts.BuildModels {
		if r.set[m] {
			reason := "duplicate build model declaration"
			if m == model.DatabaseModel {
				reason = "the database model is implicit and cannot be declared with build_db"
			}
			return nil, &DirectiveError{
				TypeName: def.Name,
				Option:   buildPrefix + m,
				Reason:   reason,
			}
		}
		r.names = append(r.names, m)
		r.set[m] = true
	}

	if err := r.validateReferences(def); err != nil {
		return nil, err
	}

	return r, nil
}

// Variants returns the variant names in resolution order.
func (r *Registry) Variants() []string {
	return r.names
}

// Contains reports whether name is a known variant.
func (r *Registry) Contains(name string) bool {
	return r.set[name]
}

// validateReferences checks every per-model directive key against the
// registry. This runs after all build models are known, so declaration order
// between a build_<model> directive and the directives referencing it does
// not matter.
func (r *Registry) validateReferences(def *model.TypeDefinition) error {
	for _, m := range sortedKeys(def.Options.ModelAttrs) {
		if !r.set[m] {
			return &UnknownModelReferenceError{
				TypeName: def.Name,
				Option:   m + attrSuffix,
				Model:    m,
			}
		}
	}

	for _, f := range def.Fields {
		opts := f.Options
		for _, m := range sortedKeys(opts.SkipInModel) {
			if !r.set[m] {
				return &UnknownModelReferenceError{
					TypeName:  def.Name,
					FieldName: f.Name,
					Option:    skipInPrefix + m,
					Model:     m,
				}
			}
		}
		for _, m := range sortedKeys(opts.InnerTypeByModel) {
			if !r.set[m] {
				return &UnknownModelReferenceError{
					TypeName:  def.Name,
					FieldName: f.Name,
					Option:    innerTypePrefix + m,
					Model:     m,
				}
			}
		}
		for _, m := range sortedKeys(opts.ModelAttrs) {
			if !r.set[m] {
				return &UnknownModelReferenceError{
					TypeName:  def.Name,
					FieldName: f.Name,
					Option:    m + attrSuffix,
					Model:     m,
				}
			}
		}
	}

	return nil
}

// sortedKeys keeps validation failures deterministic across runs.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

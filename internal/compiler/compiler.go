package compiler

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/arangokit/modelgen/internal/model"
)

// Compiler derives model variants for every type definition in one
// compilation unit. Definitions share no mutable state once their directives
// are parsed, so they compile in parallel; results are collected in
// declaration order.
type Compiler struct {
	defs []*model.TypeDefinition
	unit map[string]*model.TypeDefinition

	// parseErrs records per-definition directive failures so that a
	// definition nesting a broken one fails with context instead of a nil
	// dereference.
	parseErrs map[string]error
}

// Result pairs one definition with its compiled output or its error. A
// failed definition never affects its siblings.
type Result struct {
	Definition *model.TypeDefinition
	Compiled   *model.CompiledType
	Err        error
}

// New builds a Compiler over the definitions of one compilation unit.
func New(defs []*model.TypeDefinition) *Compiler {
	unit := make(map[string]*model.TypeDefinition, len(defs))
	for _, d := range defs {
		unit[d.Name] = d
	}
	return &Compiler{
		defs:      defs,
		unit:      unit,
		parseErrs: make(map[string]error),
	}
}

// Compile runs the whole unit: directive parsing first (populating the
// immutable option structures), then parallel per-definition derivation.
func (c *Compiler) Compile(ctx context.Context) []Result {
	for _, def := range c.defs {
		if err := c.parseDefinition(def); err != nil {
			c.parseErrs[def.Name] = err
		}
	}

	results := make([]Result, len(c.defs))
	g, ctx := errgroup.WithContext(ctx)
	for i, def := range c.defs {
		i, def := i, def
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = Result{Definition: def, Err: err}
				return nil
			}
			compiled, err := c.compileOne(def)
			results[i] = Result{Definition: def, Compiled: compiled, Err: err}
			return nil
		})
	}
	// Goroutines report through their result slot, never through the group.
	_ = g.Wait()

	return results
}

func (c *Compiler) parseDefinition(def *model.TypeDefinition) error {
	opts, err := parseStructOptions(def)
	if err != nil {
		return err
	}
	def.Options = opts

	for _, f := range def.Fields {
		fopts, err := parseFieldOptions(def, f)
		if err != nil {
			return err
		}
		f.Options = fopts
	}

	return nil
}

func (c *Compiler) compileOne(def *model.TypeDefinition) (*model.CompiledType, error) {
	if err := c.parseErrs[def.Name]; err != nil {
		return nil, err
	}
	return c.derive(def, []string{def.Name}, map[string]bool{def.Name: true})
}

// derive resolves every variant of def and recurses into sub-model fields.
// The visiting stack doubles as the cycle diagnostic; visited gives O(1)
// membership so a recursive type graph fails instead of expanding forever.
func (c *Compiler) derive(def *model.TypeDefinition, visiting []string, visited map[string]bool) (*model.CompiledType, error) {
	reg, err := buildRegistry(def)
	if err != nil {
		return nil, err
	}

	out := &model.CompiledType{Definition: def}
	for _, name := range reg.Variants() {
		out.Variants = append(out.Variants, resolveVariant(def, name))
	}

	db := out.Variant(model.DatabaseModel)
	if err := checkColumnNames(def, db); err != nil {
		return nil, err
	}
	out.FieldEnum = buildFieldEnum(def, db)

	out.Binding, err = buildBinding(def)
	if err != nil {
		return nil, err
	}

	for _, name := range nestedFieldTypes(def, c.unit) {
		if visited[name] {
			return nil, &CyclicDefinitionError{Chain: append(append([]string{}, visiting...), name)}
		}
		sub := c.unit[name]
		if perr := c.parseErrs[name]; perr != nil {
			return nil, fmt.Errorf("%s: nested model %s: %w", def.Name, name, perr)
		}

		visited[name] = true
		nested, err := c.derive(sub, append(visiting, name), visited)
		delete(visited, name)
		if err != nil {
			return nil, err
		}
		out.Nested = append(out.Nested, nested)
	}

	return out, nil
}

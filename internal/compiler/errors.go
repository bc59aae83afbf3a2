package compiler

import (
	"errors"
	"fmt"
	"strings"
)

var (
	errBoolLiteral      = errors.New("expected true or false")
	errEmptyTypeRef     = errors.New("empty type reference")
	errMalformedTypeRef = errors.New("malformed type reference")
)

// DirectiveError reports a malformed or unrecognized option token.
type DirectiveError struct {
	TypeName  string
	FieldName string // "" for struct-level directives
	Option    string // offending token text
	Pos       string
	Reason    string
}

func (e *DirectiveError) Error() string {
	loc := e.TypeName
	if e.FieldName != "" {
		loc += "." + e.FieldName
	}
	if e.Pos != "" {
		loc += " (" + e.Pos + ")"
	}
	return fmt.Sprintf("%s: directive %q: %s", loc, e.Option, e.Reason)
}

// UnknownModelReferenceError reports a per-model directive naming a model
// that is not "db" and was never declared with build_<model>.
type UnknownModelReferenceError struct {
	TypeName  string
	FieldName string
	Option    string
	Model     string
}

func (e *UnknownModelReferenceError) Error() string {
	loc := e.TypeName
	if e.FieldName != "" {
		loc += "." + e.FieldName
	}
	return fmt.Sprintf("%s: directive %q references undeclared build model %q", loc, e.Option, e.Model)
}

// CyclicDefinitionError reports a structurally recursive inner_model chain.
type CyclicDefinitionError struct {
	Chain []string // type names, first repeated last
}

func (e *CyclicDefinitionError) Error() string {
	return fmt.Sprintf("cyclic model definition: %s", strings.Join(e.Chain, " -> "))
}

// AmbiguousColumnNameError reports two fields resolving to the same database
// column, or a field claiming a reserved column.
type AmbiguousColumnNameError struct {
	TypeName     string
	DatabaseName string
	FirstField   string
	SecondField  string // "" when colliding with a reserved column
}

func (e *AmbiguousColumnNameError) Error() string {
	if e.SecondField == "" {
		return fmt.Sprintf("%s: field %q maps to reserved database column %q",
			e.TypeName, e.FirstField, e.DatabaseName)
	}
	return fmt.Sprintf("%s: fields %q and %q both map to database column %q",
		e.TypeName, e.FirstField, e.SecondField, e.DatabaseName)
}

// ConflictingSyncConfigError reports semantically inconsistent sync options.
type ConflictingSyncConfigError struct {
	TypeName string
	Reason   string
}

func (e *ConflictingSyncConfigError) Error() string {
	return fmt.Sprintf("%s: conflicting sync configuration: %s", e.TypeName, e.Reason)
}

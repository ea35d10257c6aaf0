// Package command implements the resolution and execution pipeline for
// prefix-triggered chat commands: tokenization, alias resolution, schema
// validation and handler dispatch.
package command

import (
	"context"

	"gabbot/internal/core/domain"
)

// ParamType is one of the closed set of primitive parameter types.
type ParamType string

const (
	TypeString ParamType = "string"
	TypeChar   ParamType = "char"
	TypeInt    ParamType = "int"
	TypeNumber ParamType = "number"
	TypeAny    ParamType = "any"
)

// Param declares one positional parameter. A value is accepted when it
// satisfies at least one of the listed types.
type Param struct {
	Name        string
	Types       []ParamType
	Description string
}

// Handler is the fixed calling convention for all command bodies. Arguments
// arrive validated against the declared schema; out writes directly to the
// invocation's chat for handlers that stream their own output.
type Handler func(ctx context.Context, inv *domain.Invocation, out domain.Sink) (domain.Result, error)

// Definition is one immutable catalog entry.
type Definition struct {
	Name        string
	Description string
	Params      []Param
	// Defaults counts trailing parameters that carry default values; the
	// arity lower bound is len(Params) - Defaults.
	Defaults   int
	Permission domain.Permission
	Aliases    []string
	// Update marks commands that mutate channel variables; the executor
	// refreshes the invoking channel's cache after they succeed.
	Update  bool
	Handler Handler
}

// MinArgs is the number of arguments a caller must supply.
func (d *Definition) MinArgs() int {
	return len(d.Params) - d.Defaults
}

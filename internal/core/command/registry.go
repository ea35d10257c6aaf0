package command

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// Registry is the static command catalog. It is populated once at startup
// and read-only afterwards; registration fails fast on any name or alias
// collision so ambiguous keywords cannot reach the resolver.
type Registry struct {
	commands map[string]*Definition
	aliases  map[string]string
	order    []string
}

func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]*Definition),
		aliases:  make(map[string]string),
	}
}

func (r *Registry) Register(def *Definition) error {
	if def.Name == "" {
		return fmt.Errorf("command with empty name")
	}

	if def.Handler == nil {
		return fmt.Errorf("command %q has no handler", def.Name)
	}

	if def.Defaults > len(def.Params) {
		return fmt.Errorf("command %q declares %d defaults for %d params", def.Name, def.Defaults, len(def.Params))
	}

	if _, exists := r.commands[def.Name]; exists {
		return fmt.Errorf("duplicate command name %q", def.Name)
	}

	if owner, taken := r.aliases[def.Name]; taken {
		return fmt.Errorf("command name %q collides with an alias of %q", def.Name, owner)
	}

	for _, alias := range def.Aliases {
		if _, exists := r.commands[alias]; exists {
			return fmt.Errorf("alias %q of %q collides with a command name", alias, def.Name)
		}

		if owner, taken := r.aliases[alias]; taken {
			return fmt.Errorf("alias %q of %q already belongs to %q", alias, def.Name, owner)
		}
	}

	for _, alias := range def.Aliases {
		r.aliases[alias] = def.Name
	}

	r.commands[def.Name] = def
	r.order = append(r.order, def.Name)

	log.Info().Str("command", def.Name).Strs("aliases", def.Aliases).Msg("adding command to registry")

	return nil
}

// Get returns the definition for a canonical command name.
func (r *Registry) Get(name string) (*Definition, bool) {
	def, ok := r.commands[name]
	return def, ok
}

// ResolveAlias maps a statically declared alias to its canonical command name.
func (r *Registry) ResolveAlias(alias string) (string, bool) {
	name, ok := r.aliases[alias]
	return name, ok
}

// All returns every definition in registration order.
func (r *Registry) All() []*Definition {
	defs := make([]*Definition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.commands[name])
	}

	return defs
}

package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"gabbot/internal/core/command"
	"gabbot/internal/core/domain"
	"gabbot/internal/core/port"
)

// AliasReader exposes the cached per-channel custom alias map.
type AliasReader interface {
	Aliases(ctx context.Context, channelID int64) (map[string][]string, error)
}

// Vars groups the commands that mutate channel variables. Their definitions
// carry the update flag, so the executor refreshes the channel cache after
// each successful run.
type Vars struct {
	store    port.VariableStore
	registry *command.Registry
	aliases  AliasReader
}

func NewVars(store port.VariableStore, registry *command.Registry, aliases AliasReader) *Vars {
	return &Vars{store: store, registry: registry, aliases: aliases}
}

func (v *Vars) SetPrefix(ctx context.Context, inv *domain.Invocation, _ domain.Sink) (domain.Result, error) {
	prefix := inv.Args[0].String()

	if err := v.store.Set(ctx, inv.Message.ChatID, port.VarPrefix, prefix); err != nil {
		return domain.Result{}, fmt.Errorf("storing prefix: %w", err)
	}

	return domain.TextResult(fmt.Sprintf("Command prefix set to %s", prefix)), nil
}

func (v *Vars) SetAlias(ctx context.Context, inv *domain.Invocation, _ domain.Sink) (domain.Result, error) {
	// The tokenizer lowercases incoming keywords, so anything stored with
	// upper case in it could never match. Fold both ends here.
	target := strings.ToLower(inv.Args[0].String())
	alias := strings.ToLower(inv.Args[1].String())

	if _, ok := v.registry.Get(target); !ok {
		return domain.TextResult(fmt.Sprintf("Unknown command %q", target)), nil
	}

	if _, ok := v.registry.Get(alias); ok {
		return domain.TextResult(fmt.Sprintf("%q is already a command name", alias)), nil
	}

	if owner, ok := v.registry.ResolveAlias(alias); ok {
		return domain.TextResult(fmt.Sprintf("%q is already an alias of %s", alias, owner)), nil
	}

	current, err := v.aliases.Aliases(ctx, inv.Message.ChatID)
	if err != nil {
		return domain.Result{}, fmt.Errorf("loading aliases: %w", err)
	}

	updated := make(map[string][]string, len(current)+1)
	for name, list := range current {
		updated[name] = list
		for _, a := range list {
			if a == alias {
				return domain.TextResult(fmt.Sprintf("%q is already an alias of %s here", alias, name)), nil
			}
		}
	}

	updated[target] = append(updated[target], alias)

	encoded, err := json.Marshal(updated)
	if err != nil {
		return domain.Result{}, fmt.Errorf("encoding aliases: %w", err)
	}

	if err := v.store.Set(ctx, inv.Message.ChatID, port.VarAliases, string(encoded)); err != nil {
		return domain.Result{}, fmt.Errorf("storing aliases: %w", err)
	}

	return domain.TextResult(fmt.Sprintf("Alias %q registered for command %s", alias, target)), nil
}

package command

import (
	"context"
	"fmt"

	"gabbot/internal/core/domain"

	"github.com/rs/zerolog/log"
)

// VarRefresher re-fetches a channel's cached variables from persistent
// storage after a command that mutates them.
type VarRefresher interface {
	Refresh(ctx context.Context, channelID int64) error
}

const staleWarning = "Warning: channel settings could not be refreshed and may be stale."

// Executor runs one resolved invocation through the gate sequence: help
// short-circuit, permission, arity, type check, handler call, post-update.
type Executor struct {
	registry *Registry
	vars     VarRefresher
	ownerID  int64
}

func NewExecutor(registry *Registry, vars VarRefresher, ownerID int64) *Executor {
	return &Executor{registry: registry, vars: vars, ownerID: ownerID}
}

// Execute returns the lines to show the user. Permission, arity and type
// failures come back as user-facing lines with a nil error; a non-nil error
// means the handler itself failed and the caller should show a generic
// notice instead of crashing the dispatch loop.
func (e *Executor) Execute(ctx context.Context, inv *domain.Invocation, prefix string, out domain.Sink) ([]string, error) {
	def, ok := e.registry.Get(inv.Command)
	if !ok {
		// Unreachable through the tokenizer; indicates a catalog defect.
		return nil, fmt.Errorf("no definition for resolved command %q", inv.Command)
	}

	l := log.With().
		Str("command", def.Name).
		Int64("chatId", inv.Message.ChatID).
		Int64("userId", inv.Message.UserID).
		Logger()

	// Zero arguments against a parameterized command is the inline way to
	// ask for help, not an arity error.
	if len(inv.Args) == 0 && len(def.Params) > 0 {
		return Describe(prefix, def), nil
	}

	if line, ok := e.checkPermission(def, inv.Message); !ok {
		l.Debug().Msg("permission denied")
		return []string{line}, nil
	}

	if minArgs := def.MinArgs(); len(inv.Args) < minArgs {
		l.Debug().Int("supplied", len(inv.Args)).Msg("too few arguments")
		return []string{fmt.Sprintf("The command %s requires at least %d arguments; received %d.",
			def.Name, minArgs, len(inv.Args))}, nil
	}

	if typeErr := ValidateArgs(def.Params, inv.Args); typeErr != nil {
		l.Debug().Str("param", typeErr.Param).Msg("argument type mismatch")
		return []string{typeErr.Error()}, nil
	}

	l.Info().Msg("executing command")

	result, err := e.invoke(ctx, def, inv, out)
	if err != nil {
		return nil, fmt.Errorf("command %s: %w", def.Name, err)
	}

	lines := result.Lines()

	if def.Update {
		if err := e.vars.Refresh(ctx, inv.Message.ChatID); err != nil {
			// The command itself succeeded; surface the stale cache instead
			// of swallowing the refresh failure.
			l.Warn().Err(err).Msg("post-command variable refresh failed")
			lines = append(lines, staleWarning)
		}
	}

	return lines, nil
}

// invoke calls the handler with a panic backstop so a defective command body
// cannot take down the dispatcher.
func (e *Executor) invoke(ctx context.Context, def *Definition, inv *domain.Invocation, out domain.Sink) (result domain.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()

	return def.Handler(ctx, inv, out)
}

func (e *Executor) checkPermission(def *Definition, msg *domain.Message) (string, bool) {
	switch def.Permission {
	case domain.PermissionAdmin:
		if !msg.IsAdmin && msg.UserID != e.ownerID {
			return fmt.Sprintf("The command %s requires administrator privileges.", def.Name), false
		}
	case domain.PermissionOwner:
		if msg.UserID != e.ownerID {
			return fmt.Sprintf("The command %s is restricted to the bot owner.", def.Name), false
		}
	}

	return "", true
}

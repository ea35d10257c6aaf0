package commands

import (
	"context"
	"fmt"

	"gabbot/internal/core/command"
	"gabbot/internal/core/domain"
)

type Help struct {
	registry *command.Registry
}

func NewHelp(registry *command.Registry) *Help {
	return &Help{registry: registry}
}

// Run lists every registered command with its description. Per-command usage
// comes from invoking a command with no arguments.
func (h *Help) Run(_ context.Context, _ *domain.Invocation, _ domain.Sink) (domain.Result, error) {
	defs := h.registry.All()

	lines := make([]string, 0, len(defs)+1)
	lines = append(lines, "Available commands (run one without arguments for usage):")

	for _, def := range defs {
		lines = append(lines, fmt.Sprintf("%s - %s", def.Name, def.Description))
	}

	return domain.LinesResult(lines...), nil
}

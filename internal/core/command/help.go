package command

import (
	"fmt"
	"strings"
)

// Describe renders the usage text for one command: positional signature with
// types, description, per-parameter docs and the alias list.
func Describe(prefix string, def *Definition) []string {
	var usage strings.Builder
	usage.WriteString(prefix + def.Name)

	for _, p := range def.Params {
		names := make([]string, len(p.Types))
		for i, t := range p.Types {
			names[i] = string(t)
		}

		fmt.Fprintf(&usage, " <%s:%s>", p.Name, strings.Join(names, "|"))
	}

	lines := []string{usage.String(), def.Description + "\n"}

	for _, p := range def.Params {
		lines = append(lines, p.Name+": "+p.Description)
	}

	if len(def.Aliases) > 0 {
		lines = append(lines, "\nAlias(es): "+strings.Join(def.Aliases, ", "))
	}

	return lines
}

package command

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"gabbot/internal/core/domain"
)

// argPattern treats a double-quoted run (escaped quotes and backslashes
// allowed inside) as one token and otherwise splits on whitespace.
var argPattern = regexp.MustCompile(`"(?:\\"|\\\\|[^"])*"|\S+`)

// AliasSource supplies the per-channel custom alias map, keyed by canonical
// command name.
type AliasSource interface {
	Aliases(ctx context.Context, channelID int64) (map[string][]string, error)
}

// Tokenizer splits a raw message into a resolved command name and typed
// positional arguments. Static aliases win over per-channel custom ones.
type Tokenizer struct {
	registry *Registry
	aliases  AliasSource
}

func NewTokenizer(registry *Registry, aliases AliasSource) *Tokenizer {
	return &Tokenizer{registry: registry, aliases: aliases}
}

// Tokenize parses content into an invocation. The caller has already checked
// that content starts with prefix. An unresolvable command name yields an
// error wrapping domain.ErrUnknownCommand; that is expected user input, not
// a pipeline fault.
func (t *Tokenizer) Tokenize(ctx context.Context, channelID int64, content, prefix string) (*domain.Invocation, error) {
	body := content[len(prefix):]

	name := body
	rest := ""

	if i := strings.Index(body, " "); i != -1 {
		name = body[:i]
		rest = body[i:]
	}

	name = strings.ToLower(name)

	resolved, err := t.resolve(ctx, channelID, name)
	if err != nil {
		return nil, err
	}

	def, ok := t.registry.Get(resolved)
	if !ok {
		return nil, fmt.Errorf("%w %q", domain.ErrUnknownCommand, name)
	}

	args := tokenizeArgs(rest)

	// Excess tokens are folded into the last declared parameter so trailing
	// free text survives as a single argument. Zero-parameter commands keep
	// their argument list as-is.
	if n := len(def.Params); n > 0 && len(args) > n {
		folded := make([]string, 0, len(args)-n+1)
		for _, v := range args[n-1:] {
			folded = append(folded, v.String())
		}

		args = append(args[:n-1], domain.TextValue(strings.Join(folded, " ")))
	}

	return &domain.Invocation{Command: resolved, Args: args}, nil
}

func (t *Tokenizer) resolve(ctx context.Context, channelID int64, name string) (string, error) {
	if _, ok := t.registry.Get(name); ok {
		return name, nil
	}

	if canonical, ok := t.registry.ResolveAlias(name); ok {
		return canonical, nil
	}

	custom, err := t.aliases.Aliases(ctx, channelID)
	if err != nil {
		return "", fmt.Errorf("loading custom aliases: %w", err)
	}

	for canonical, aliases := range custom {
		for _, alias := range aliases {
			if alias == name {
				return canonical, nil
			}
		}
	}

	return "", fmt.Errorf("%w %q", domain.ErrUnknownCommand, name)
}

func tokenizeArgs(rest string) []domain.Value {
	tokens := argPattern.FindAllString(rest, -1)

	args := make([]domain.Value, 0, len(tokens))
	for _, token := range tokens {
		if len(token) >= 2 && token[0] == '"' && token[len(token)-1] == '"' {
			token = token[1 : len(token)-1]
		}

		args = append(args, domain.ParseValue(token))
	}

	return args
}

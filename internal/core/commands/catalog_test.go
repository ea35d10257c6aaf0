package commands

import (
	"testing"
	"time"

	"gabbot/internal/core/command"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogFixture(t *testing.T) *command.Registry {
	t.Helper()

	r := command.NewRegistry()
	h := &Handlers{
		Basic:     NewBasic(),
		Lookup:    NewLookup(new(MockSearcher), new(MockRates)),
		Translate: NewTranslate(new(MockTranslator)),
		Vars:      NewVars(new(MockVarStore), r, staticAliases{}),
		Poll:      NewPollHandler(99),
		Hangman:   NewHangmanHandler(new(MockSender), time.Minute),
		Help:      NewHelp(r),
	}

	require.NoError(t, Register(r, h))

	return r
}

func TestRegister_CatalogLoads(t *testing.T) {
	r := catalogFixture(t)

	for _, name := range []string{
		"ping", "roll", "onerm", "caesar", "wp", "cconvert",
		"translate", "setprefix", "setalias", "poll", "hangman", "help",
	} {
		_, ok := r.Get(name)
		assert.True(t, ok, name)
	}

	name, ok := r.ResolveAlias("1rm")
	require.True(t, ok)
	assert.Equal(t, "onerm", name)
}

func TestHelp_ListsEveryCommand(t *testing.T) {
	r := catalogFixture(t)

	res, err := NewHelp(r).Run(t.Context(), invocation(nil), noSink)
	require.NoError(t, err)

	lines := res.Lines()
	require.Len(t, lines, len(r.All())+1)
	assert.Equal(t, "Available commands (run one without arguments for usage):", lines[0])
	assert.Equal(t, "ping - Measures how far behind the bot is running.", lines[1])
}

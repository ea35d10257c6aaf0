package commands

import (
	"gabbot/internal/core/command"
	"gabbot/internal/core/domain"
)

// Handlers bundles the constructed handler groups for catalog registration.
type Handlers struct {
	Basic     *Basic
	Lookup    *Lookup
	Translate *Translate
	Vars      *Vars
	Poll      *PollHandler
	Hangman   *HangmanHandler
	Help      *Help
}

// Register loads the static command catalog into the registry. Registration
// order is the display order for help output; any name or alias collision
// fails the whole load.
func Register(r *command.Registry, h *Handlers) error {
	defs := []*command.Definition{
		{
			Name:        "ping",
			Description: "Measures how far behind the bot is running.",
			Handler:     h.Basic.Ping,
		},
		{
			Name:        "roll",
			Description: "Rolls one or more dice.",
			Params: []command.Param{
				{Name: "sides", Types: []command.ParamType{command.TypeInt}, Description: "number of faces on each die"},
				{Name: "dice", Types: []command.ParamType{command.TypeInt}, Description: "number of dice to roll (default 1)"},
			},
			Defaults: 1,
			Aliases:  []string{"dice", "r"},
			Handler:  h.Basic.Roll,
		},
		{
			Name:        "onerm",
			Description: "Estimates a one rep max from a lighter set.",
			Params: []command.Param{
				{Name: "weight", Types: []command.ParamType{command.TypeNumber}, Description: "weight lifted"},
				{Name: "reps", Types: []command.ParamType{command.TypeNumber}, Description: "reps performed"},
			},
			Aliases: []string{"1rm"},
			Handler: h.Basic.OneRM,
		},
		{
			Name:        "caesar",
			Description: "Applies a Caesar cipher to a piece of text.",
			Params: []command.Param{
				{Name: "shift", Types: []command.ParamType{command.TypeInt}, Description: "how far to shift each letter"},
				{Name: "text", Types: []command.ParamType{command.TypeString}, Description: "the text to encipher"},
			},
			Aliases: []string{"cipher"},
			Handler: h.Basic.Caesar,
		},
		{
			Name:        "wp",
			Description: "Looks up a Wikipedia article.",
			Params: []command.Param{
				{Name: "article", Types: []command.ParamType{command.TypeString}, Description: "the article to search for"},
				{Name: "lang", Types: []command.ParamType{command.TypeString}, Description: "two-letter language code (default en)"},
			},
			Defaults: 1,
			Aliases:  []string{"wiki"},
			Handler:  h.Lookup.Wikipedia,
		},
		{
			Name:        "cconvert",
			Description: "Converts an amount of one currency into another.",
			Params: []command.Param{
				{Name: "amount", Types: []command.ParamType{command.TypeNumber}, Description: "the amount to convert"},
				{Name: "from", Types: []command.ParamType{command.TypeString}, Description: "currency code to convert from"},
				{Name: "to", Types: []command.ParamType{command.TypeString}, Description: "currency code to convert to"},
			},
			Aliases: []string{"currency"},
			Handler: h.Lookup.Convert,
		},
		{
			Name:        "translate",
			Description: "Translates text between two languages.",
			Params: []command.Param{
				{Name: "from", Types: []command.ParamType{command.TypeString}, Description: "language to translate from"},
				{Name: "into", Types: []command.ParamType{command.TypeString}, Description: "language to translate into"},
				{Name: "text", Types: []command.ParamType{command.TypeString}, Description: "the text to translate"},
			},
			Aliases: []string{"tr"},
			Handler: h.Translate.Run,
		},
		{
			Name:        "setprefix",
			Description: "Changes the command prefix for this channel.",
			Params: []command.Param{
				{Name: "prefix", Types: []command.ParamType{command.TypeString}, Description: "the new prefix"},
			},
			Permission: domain.PermissionAdmin,
			Update:     true,
			Handler:    h.Vars.SetPrefix,
		},
		{
			Name:        "setalias",
			Description: "Registers a channel-local alias for a command.",
			Params: []command.Param{
				{Name: "command", Types: []command.ParamType{command.TypeString}, Description: "the command to alias"},
				{Name: "alias", Types: []command.ParamType{command.TypeString}, Description: "the new alias"},
			},
			Permission: domain.PermissionAdmin,
			Update:     true,
			Handler:    h.Vars.SetAlias,
		},
		{
			Name:        "poll",
			Description: "Runs a channel poll: create, open, close, delete, vote, show.",
			Params: []command.Param{
				{Name: "action", Types: []command.ParamType{command.TypeString}, Description: "create, open, close, delete, vote or show"},
				{Name: "input", Types: []command.ParamType{command.TypeAny}, Description: "semicolon-separated options for create, option number for vote"},
			},
			Defaults: 1,
			Handler:  h.Poll.Run,
		},
		{
			Name:        "hangman",
			Description: "Runs a game of hangman: start, guess, hint.",
			Params: []command.Param{
				{Name: "action", Types: []command.ParamType{command.TypeString}, Description: "start, guess or hint"},
				{Name: "letter", Types: []command.ParamType{command.TypeChar, command.TypeInt}, Description: "the letter to guess"},
			},
			Defaults: 1,
			Aliases:  []string{"hm"},
			Handler:  h.Hangman.Run,
		},
		{
			Name:        "help",
			Description: "Lists all commands.",
			Aliases:     []string{"commands"},
			Handler:     h.Help.Run,
		},
	}

	for _, def := range defs {
		if err := r.Register(def); err != nil {
			return err
		}
	}

	return nil
}

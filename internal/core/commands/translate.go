package commands

import (
	"context"

	"gabbot/internal/core/domain"
	"gabbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

type Translate struct {
	translator port.Translator
}

func NewTranslate(translator port.Translator) *Translate {
	return &Translate{translator: translator}
}

func (t *Translate) Run(ctx context.Context, inv *domain.Invocation, _ domain.Sink) (domain.Result, error) {
	from := inv.Args[0].String()
	to := inv.Args[1].String()
	text := inv.Args[2].String()

	out, err := t.translator.Translate(ctx, from, to, text)
	if err != nil {
		log.Error().Err(err).Str("from", from).Str("to", to).Msg("translation failed")
		return domain.TextResult("Something went wrong translating that."), nil
	}

	return domain.TextResult(out), nil
}

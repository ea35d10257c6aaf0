package commands

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gabbot/internal/core/domain"
	"gabbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

// Lookup groups the commands backed by outbound HTTP lookups. Failures of
// the external calls are converted to output text here; they never bubble
// past the executor as faults.
type Lookup struct {
	search port.ArticleSearcher
	rates  port.RateProvider
}

func NewLookup(search port.ArticleSearcher, rates port.RateProvider) *Lookup {
	return &Lookup{search: search, rates: rates}
}

func (l *Lookup) Wikipedia(ctx context.Context, inv *domain.Invocation, _ domain.Sink) (domain.Result, error) {
	article := inv.Args[0].String()

	lang := "en"
	if len(inv.Args) > 1 {
		lang = inv.Args[1].String()
	}

	link, err := l.search.Search(ctx, article, lang)
	if errors.Is(err, domain.ErrNoResults) {
		return domain.TextResult(fmt.Sprintf("No search results found for %q", article)), nil
	}

	if err != nil {
		log.Error().Err(err).Str("article", article).Msg("wikipedia search failed")
		return domain.TextResult("Something went wrong searching for that article."), nil
	}

	return domain.TextResult("Wikipedia link: " + link), nil
}

func (l *Lookup) Convert(ctx context.Context, inv *domain.Invocation, _ domain.Sink) (domain.Result, error) {
	amount, _ := inv.Args[0].Float()
	from := inv.Args[1].String()
	to := inv.Args[2].String()

	rate, err := l.rates.Rate(ctx, from, to)
	if err != nil {
		log.Error().Err(err).Str("from", from).Str("to", to).Msg("rate lookup failed")
		return domain.TextResult("Something went wrong fetching the conversion rate."), nil
	}

	converted := math.Round(amount*rate*100) / 100

	return domain.TextResult(fmt.Sprintf("%v %s = %v %s", amount, from, converted, to)), nil
}

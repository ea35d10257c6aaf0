package port

import "context"

type ArticleSearcher interface {
	// Search returns a link to the best-matching encyclopedia article, or
	// domain.ErrNoResults if the search comes up empty.
	Search(ctx context.Context, article, lang string) (string, error)
}

type RateProvider interface {
	// Rate returns the conversion rate between two currencies.
	Rate(ctx context.Context, from, to string) (float64, error)
}

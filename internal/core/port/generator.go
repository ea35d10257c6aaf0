package port

import "context"

type Translator interface {
	// Translate renders text from one language into another.
	Translate(ctx context.Context, from, to, text string) (string, error)
}

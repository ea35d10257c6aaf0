package port

import "context"

// Channel variable names accepted by the store. Anything else is rejected
// with domain.ErrUnknownVariable rather than silently persisted.
const (
	VarPrefix  = "prefix"
	VarAliases = "aliases"
)

type VariableStore interface {
	// Get returns the stored value of a channel variable, or the empty string
	// if the channel has no value for it yet. A blank record is created on
	// first access for an unseen channel.
	Get(ctx context.Context, channelID int64, variable string) (string, error)
	// Set persists a channel variable.
	Set(ctx context.Context, channelID int64, variable string, value string) error
}

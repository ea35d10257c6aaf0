package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"gabbot/internal/core/port"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

type channelVars struct {
	prefix  string
	aliases map[string][]string
}

// VarCache keeps one in-memory variable bag per channel so that each message
// does not cost a round trip to persistent storage. A channel is loaded once
// per process lifetime; concurrent first accesses share a single fetch, and
// the entry only changes through an explicit Refresh after a
// variable-updating command.
type VarCache struct {
	store    port.VariableStore
	defaults DefaultsProvider

	mu      sync.RWMutex
	entries map[int64]*channelVars
	group   singleflight.Group
}

func NewVarCache(store port.VariableStore, defaults DefaultsProvider) *VarCache {
	return &VarCache{
		store:    store,
		defaults: defaults,
		entries:  make(map[int64]*channelVars),
	}
}

// Prefix returns the channel's command prefix, falling back to the
// configured default when the store has no (or an empty) value.
func (c *VarCache) Prefix(ctx context.Context, channelID int64) (string, error) {
	vars, err := c.get(ctx, channelID)
	if err != nil {
		return "", err
	}

	return vars.prefix, nil
}

// Aliases returns the channel's custom alias map, keyed by canonical
// command name.
func (c *VarCache) Aliases(ctx context.Context, channelID int64) (map[string][]string, error) {
	vars, err := c.get(ctx, channelID)
	if err != nil {
		return nil, err
	}

	return vars.aliases, nil
}

// Refresh re-fetches the channel's variables from the store, overwriting the
// cache entry.
func (c *VarCache) Refresh(ctx context.Context, channelID int64) error {
	vars, err := c.fetch(ctx, channelID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.entries[channelID] = vars
	c.mu.Unlock()

	log.Debug().Int64("chatId", channelID).Str("prefix", vars.prefix).Msg("refreshed channel variables")

	return nil
}

func (c *VarCache) get(ctx context.Context, channelID int64) (*channelVars, error) {
	c.mu.RLock()
	vars, ok := c.entries[channelID]
	c.mu.RUnlock()

	if ok {
		return vars, nil
	}

	// Single-flight the first load so back-to-back messages for a brand-new
	// channel do not race duplicate fetches.
	v, err, _ := c.group.Do(strconv.FormatInt(channelID, 10), func() (interface{}, error) {
		fetched, err := c.fetch(ctx, channelID)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[channelID] = fetched
		c.mu.Unlock()

		return fetched, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*channelVars), nil
}

func (c *VarCache) fetch(ctx context.Context, channelID int64) (*channelVars, error) {
	prefix, err := c.store.Get(ctx, channelID, port.VarPrefix)
	if err != nil {
		return nil, fmt.Errorf("fetching prefix: %w", err)
	}

	if prefix == "" {
		prefix = c.defaults.Default(port.VarPrefix)
	}

	raw, err := c.store.Get(ctx, channelID, port.VarAliases)
	if err != nil {
		return nil, fmt.Errorf("fetching aliases: %w", err)
	}

	aliases := make(map[string][]string)
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &aliases); err != nil {
			return nil, fmt.Errorf("decoding aliases: %w", err)
		}
	}

	return &channelVars{prefix: prefix, aliases: aliases}, nil
}

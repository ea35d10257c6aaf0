// Package store persists channel variables in a JSON-file-backed key/value
// store. One record per channel; a blank record is created the first time a
// channel is seen.
package store

import (
	"context"
	"fmt"
	"sync"

	"gabbot/internal/core/domain"
	"gabbot/internal/core/port"

	"github.com/keshon/datastore"
	"github.com/rs/zerolog/log"
)

var allowedVariables = map[string]bool{
	port.VarPrefix:  true,
	port.VarAliases: true,
}

type ChannelVars struct {
	ds *datastore.DataStore
	// The datastore locks individual operations; this guards the
	// read-modify-write cycle in Set.
	mu sync.Mutex
}

func New(ctx context.Context, path string) (*ChannelVars, error) {
	ds, err := datastore.New(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("opening channel variable store: %w", err)
	}

	return &ChannelVars{ds: ds}, nil
}

func (s *ChannelVars) Get(_ context.Context, channelID int64, variable string) (string, error) {
	if !allowedVariables[variable] {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownVariable, variable)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, found, err := s.record(channelID)
	if err != nil {
		return "", err
	}

	if !found {
		if err := s.ds.Set(recordKey(channelID), map[string]any{}); err != nil {
			return "", fmt.Errorf("creating channel record: %w", err)
		}

		return "", nil
	}

	value, _ := record[variable].(string)

	return value, nil
}

func (s *ChannelVars) Set(_ context.Context, channelID int64, variable string, value string) error {
	if !allowedVariables[variable] {
		return fmt.Errorf("%w: %q", domain.ErrUnknownVariable, variable)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, _, err := s.record(channelID)
	if err != nil {
		return err
	}

	if record == nil {
		record = map[string]any{}
	}

	record[variable] = value

	if err := s.ds.Set(recordKey(channelID), record); err != nil {
		return fmt.Errorf("storing channel record: %w", err)
	}

	log.Debug().Int64("chatId", channelID).Str("variable", variable).Msg("stored channel variable")

	return nil
}

func (s *ChannelVars) Close() error {
	return s.ds.Close()
}

func (s *ChannelVars) record(channelID int64) (map[string]any, bool, error) {
	var record map[string]any

	found, err := s.ds.Get(recordKey(channelID), &record)
	if err != nil {
		return nil, false, fmt.Errorf("reading channel record: %w", err)
	}

	return record, found, nil
}

func recordKey(channelID int64) string {
	return fmt.Sprintf("channel:%d", channelID)
}

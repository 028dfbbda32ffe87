package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mkallio/fridgechef/internal/domain"
	"github.com/redis/go-redis/v9"
)

const settingsKeyPrefix = "settings:"

// SettingsStore persists user settings in Redis, keyed by client ID. Stored
// settings survive restarts; there is no TTL.
type SettingsStore struct {
	client *Client
}

// NewSettingsStore creates a new settings store
func NewSettingsStore(client *Client) *SettingsStore {
	return &SettingsStore{client: client}
}

// Get retrieves stored settings for a client. A client with no stored
// settings returns (nil, nil).
func (s *SettingsStore) Get(ctx context.Context, clientID string) (*domain.UserSettings, error) {
	data, err := s.client.rdb.Get(ctx, settingsKeyPrefix+clientID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	var settings domain.UserSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	return &settings, nil
}

// Set stores settings for a client
func (s *SettingsStore) Set(ctx context.Context, clientID string, settings *domain.UserSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	return s.client.rdb.Set(ctx, settingsKeyPrefix+clientID, data, 0).Err()
}

// Delete removes stored settings for a client
func (s *SettingsStore) Delete(ctx context.Context, clientID string) error {
	return s.client.rdb.Del(ctx, settingsKeyPrefix+clientID).Err()
}

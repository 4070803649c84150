// internal/domain/session/persist.go
package session

import (
	"context"
	"encoding/json"
	"fmt"
)

// Storage keys of the three persisted slices
const (
	KeyUser   = "nova_user"
	KeyCart   = "nova_cart"
	KeyOrders = "nova_orders"
)

// SchemaVersion is written into every persisted envelope
const SchemaVersion = 1

type envelope struct {
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
}

func encode(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	out, err := json.Marshal(envelope{Version: SchemaVersion, Data: data})
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func decode(raw string, dest any) error {
	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return fmt.Errorf("malformed envelope: %w", err)
	}
	if env.Version != SchemaVersion {
		return fmt.Errorf("unsupported schema version %d", env.Version)
	}
	if err := json.Unmarshal(env.Data, dest); err != nil {
		return fmt.Errorf("malformed data: %w", err)
	}
	return nil
}

// load reads one slice; ok is false when the key is absent or unreadable
func (s *Store) load(ctx context.Context, key string, dest any) (bool, error) {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := decode(raw, dest); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("Discarding persisted slice")
		return false, nil
	}
	return true, nil
}

// persist writes one slice. Failures are logged and counted, never returned.
func (s *Store) persist(key string, v any) {
	ctx, cancel := context.WithTimeout(context.Background(), s.persistTimeout)
	defer cancel()

	raw, err := encode(v)
	if err == nil {
		err = s.kv.Set(ctx, key, raw)
	}
	if err != nil {
		s.persistFailures++
		s.log.WithError(err).WithField("key", key).Warn("Failed to persist session slice")
	}
}

func (s *Store) remove(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.persistTimeout)
	defer cancel()

	if err := s.kv.Delete(ctx, key); err != nil {
		s.persistFailures++
		s.log.WithError(err).WithField("key", key).Warn("Failed to delete session slice")
	}
}

func (s *Store) persistUser() {
	if s.user == nil {
		s.remove(KeyUser)
		return
	}
	s.persist(KeyUser, s.user)
}

func (s *Store) persistCart() {
	s.persist(KeyCart, s.cart.Snapshot())
}

func (s *Store) persistOrders() {
	s.persist(KeyOrders, s.orders)
}

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/reflectlab/JournalPipe/internal/models"
)

// DefaultKeyPrefix namespaces all keys written by a RedisStore.
const DefaultKeyPrefix = "journalpipe"

// RedisStore keeps session records as JSON values in Redis. Records for a
// participant are tracked in a set so they can be listed without scanning.
type RedisStore struct {
	client *redis.Client
	prefix string
	cfg    Opts
}

// NewRedisStore connects to the configured Redis instance.
func NewRedisStore(opts ...Option) (*RedisStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("RedisStore.NewRedisStore: creating Redis store", "addr", cfg.Addr, "db", cfg.DB)

	if cfg.Addr == "" {
		slog.Error("RedisStore address not set")
		return nil, fmt.Errorf("redis address not set")
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultKeyPrefix
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		slog.Error("RedisStore.NewRedisStore: ping failed", "error", err)
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	slog.Info("RedisStore ready", "addr", cfg.Addr, "prefix", cfg.KeyPrefix)
	return &RedisStore{client: client, prefix: cfg.KeyPrefix, cfg: cfg}, nil
}

func (s *RedisStore) sessionKey(id string) string {
	return fmt.Sprintf("%s:session:%s", s.prefix, id)
}

func (s *RedisStore) participantKey(participantID string) string {
	return fmt.Sprintf("%s:participant:%s", s.prefix, participantID)
}

// SaveSession writes the record and indexes it under its participant.
func (s *RedisStore) SaveSession(ctx context.Context, rec models.SessionRecord) error {
	slog.Debug("RedisStore.SaveSession: saving record", "id", rec.ID, "participant", rec.Participant)

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.client.Set(ctx, s.sessionKey(rec.ID), data, s.cfg.TTL).Err(); err != nil {
		slog.Error("RedisStore.SaveSession: set failed", "error", err, "id", rec.ID)
		return fmt.Errorf("failed to save session: %w", err)
	}
	if err := s.client.SAdd(ctx, s.participantKey(rec.Participant), rec.ID).Err(); err != nil {
		return fmt.Errorf("failed to index session: %w", err)
	}
	return nil
}

// GetSession returns the record with the given id.
func (s *RedisStore) GetSession(ctx context.Context, id string) (models.SessionRecord, error) {
	data, err := s.client.Get(ctx, s.sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.SessionRecord{}, ErrNotFound
	}
	if err != nil {
		return models.SessionRecord{}, fmt.Errorf("failed to get session: %w", err)
	}
	var rec models.SessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return models.SessionRecord{}, fmt.Errorf("failed to decode session: %w", err)
	}
	return rec, nil
}

// ListSessions returns a participant's records ordered by start time.
func (s *RedisStore) ListSessions(ctx context.Context, participantID string) ([]models.SessionRecord, error) {
	ids, err := s.client.SMembers(ctx, s.participantKey(participantID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	records := make([]models.SessionRecord, 0, len(ids))
	for _, id := range ids {
		rec, err := s.GetSession(ctx, id)
		if errors.Is(err, ErrNotFound) {
			// Value expired but the index entry survived; drop it.
			s.client.SRem(ctx, s.participantKey(participantID), id)
			continue
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	sortSessionsByStart(records)
	return records, nil
}

// DeleteSession removes a record and its participant index entry.
func (s *RedisStore) DeleteSession(ctx context.Context, id string) error {
	rec, err := s.GetSession(ctx, id)
	if err != nil {
		return err
	}
	if err := s.client.Del(ctx, s.sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if err := s.client.SRem(ctx, s.participantKey(rec.Participant), id).Err(); err != nil {
		return fmt.Errorf("failed to unindex session: %w", err)
	}
	return nil
}

// Close closes the underlying client.
func (s *RedisStore) Close() error { return s.client.Close() }

var _ Store = (*RedisStore)(nil)

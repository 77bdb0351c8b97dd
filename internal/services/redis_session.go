package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/agendazap/agendazap-backend/internal/models"
	"github.com/agendazap/agendazap-backend/internal/storage"
)

// RedisSessionStore keeps chat sessions in Redis so webhook deliveries can
// be handled by any instance
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore connects to Redis and verifies the connection
func NewRedisSessionStore(addr, password string, db int) (*RedisSessionStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RedisSessionStore{
		client: client,
		ttl:    defaultSessionTTL,
	}, nil
}

func sessionKey(phone string) string {
	return "chat:session:" + phone
}

func (s *RedisSessionStore) Get(phone string) (*models.ChatSession, error) {
	ctx := context.Background()

	raw, err := s.client.Get(ctx, sessionKey(phone)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, storage.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	var session models.ChatSession
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

func (s *RedisSessionStore) Save(session *models.ChatSession) error {
	ctx := context.Background()

	session.UpdatedAt = time.Now()
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err := s.client.Set(ctx, sessionKey(session.Phone), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Clear(phone string) error {
	if err := s.client.Del(context.Background(), sessionKey(phone)).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

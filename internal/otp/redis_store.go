package otp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"railbooking/internal/models"
)

const keyPrefix = "otp:"

// RedisStore keeps OTP records in Redis with a TTL matching the record's
// expiry, so stale records clean themselves up in long-running deployments.
type RedisStore struct {
	Client *redis.Client
}

// NewRedisStore connects and verifies the Redis instance is reachable.
func NewRedisStore(addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "",
		DB:       0,
		PoolSize: 10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return &RedisStore{Client: client}, nil
}

func (s *RedisStore) Put(record models.OTPRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	ttl := time.Until(record.ExpiresAt)
	if ttl <= 0 {
		ttl = time.Second
	}
	return s.Client.Set(context.Background(), keyPrefix+record.Email, data, ttl).Err()
}

func (s *RedisStore) Get(email string) (models.OTPRecord, bool, error) {
	data, err := s.Client.Get(context.Background(), keyPrefix+email).Result()
	if err == redis.Nil {
		return models.OTPRecord{}, false, nil
	}
	if err != nil {
		return models.OTPRecord{}, false, err
	}
	var record models.OTPRecord
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return models.OTPRecord{}, false, err
	}
	return record, true, nil
}

func (s *RedisStore) Delete(email string) error {
	return s.Client.Del(context.Background(), keyPrefix+email).Err()
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Recorder считает попадания в кэш. Реализуется *metrics.Metrics
type Recorder interface {
	IncCache(kind, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// KeyPrefix общий префикс ключей сервиса и сидера
const KeyPrefix = "hallbooking:"

// Store JSON кэш поверх Redis.
// Ошибки Redis не прерывают запрос: значение просто читается из БД.
type Store struct {
	redis    *redis.Client
	ttl      time.Duration
	prefix   string
	recorder Recorder
	logger   Logger
}

// NewStore создает кэш. nil клиент или ttl <= 0 отключают кэширование
func NewStore(client *redis.Client, ttl time.Duration, prefix string, recorder Recorder, logger Logger) *Store {
	return &Store{
		redis:    client,
		ttl:      ttl,
		prefix:   prefix,
		recorder: recorder,
		logger:   logger,
	}
}

// Enabled включен ли кэш
func (s *Store) Enabled() bool {
	return s != nil && s.redis != nil && s.ttl > 0
}

func (s *Store) key(k string) string {
	return s.prefix + k
}

// read читает значение по ключу в out. Возвращает false при промахе или ошибке
func (s *Store) read(ctx context.Context, kind, key string, out any) bool {
	if !s.Enabled() {
		return false
	}

	val, err := s.redis.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			s.record(kind, "miss")
			return false
		}
		s.record(kind, "error")
		s.logger.Warn("cache: get %s failed: %v", key, err)
		return false
	}

	if err := json.Unmarshal(val, out); err != nil {
		s.record(kind, "error")
		s.logger.Warn("cache: decode %s failed: %v", key, err)
		return false
	}

	s.record(kind, "hit")
	return true
}

// write сохраняет значение с TTL
func (s *Store) write(ctx context.Context, key string, val any) {
	if !s.Enabled() {
		return
	}

	data, err := json.Marshal(val)
	if err != nil {
		s.logger.Warn("cache: encode %s failed: %v", key, err)
		return
	}

	if err := s.redis.Set(ctx, s.key(key), data, s.ttl).Err(); err != nil {
		s.logger.Warn("cache: set %s failed: %v", key, err)
	}
}

// delete удаляет ключи
func (s *Store) delete(ctx context.Context, keys ...string) error {
	if !s.Enabled() || len(keys) == 0 {
		return nil
	}

	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, s.key(k))
	}
	return s.redis.Del(ctx, full...).Err()
}

func (s *Store) record(kind, result string) {
	if s.recorder != nil {
		s.recorder.IncCache(kind, result)
	}
}

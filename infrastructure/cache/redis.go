package cache

import (
	"context"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/investment-projection-api/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(redisCfg config.Redis, ttl time.Duration) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     redisCfg.Addr,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	})

	return NewRedisCacheWithClient(client, ttl)
}

func NewRedisCacheWithClient(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

// Get trata qualquer falha de leitura ou decodificação como ausência
func (r *RedisCache) Get(ctx context.Context, key string) ([]float64, bool) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logrus.WithError(err).WithField("key", key).Warn("Erro ao ler projeção do Redis")
		}
		return nil, false
	}

	var value []float64
	if err := json.Unmarshal(data, &value); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Erro ao decodificar projeção do Redis")
		return nil, false
	}

	return value, true
}

func (r *RedisCache) Set(ctx context.Context, key string, value []float64) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, "marshal projection")
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return errors.Wrapf(err, "redis set %s", key)
	}

	return nil
}

func (r *RedisCache) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return errors.Wrapf(err, "redis del %s", key)
	}
	return nil
}

func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}

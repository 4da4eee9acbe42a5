package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Tiempo límite de cada operación contra Redis. Los llamadores del caché son
// fail-open, así que un Redis lento no debe retener la petición HTTP.
const opTimeout = 2 * time.Second

// CacheRepo implementa repository.CacheRepository sobre Redis.
type CacheRepo struct {
	client *redis.Client
}

// NewCacheRepo crea el repositorio de caché
func NewCacheRepo(client *redis.Client) (*CacheRepo, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client cannot be nil for CacheRepo")
	}
	return &CacheRepo{client: client}, nil
}

func opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}

// Increment incrementa el valor en 1 y devuelve el resultado
func (r *CacheRepo) Increment(key string) (int64, error) {
	ctx, cancel := opContext()
	defer cancel()
	return r.client.Incr(ctx, key).Result()
}

// SetNX escribe el valor sólo si la clave no existe.
// Devuelve true si la clave fue escrita, false si ya existía.
func (r *CacheRepo) SetNX(key string, value interface{}, expiration time.Duration) (bool, error) {
	ctx, cancel := opContext()
	defer cancel()
	return r.client.SetNX(ctx, key, value, expiration).Result()
}

// Expire fija el tiempo de vida de una clave existente
func (r *CacheRepo) Expire(key string, expiration time.Duration) error {
	ctx, cancel := opContext()
	defer cancel()
	return r.client.Expire(ctx, key, expiration).Err()
}

// TTL devuelve el tiempo de vida restante de la clave
func (r *CacheRepo) TTL(key string) (time.Duration, error) {
	ctx, cancel := opContext()
	defer cancel()
	return r.client.TTL(ctx, key).Result()
}

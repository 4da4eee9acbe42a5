package repository

import (
	"time"
)

// CacheRepository define los métodos de trabajo con el caché (Redis).
// Lo usan el enfriamiento de reenvío de códigos y los contadores del rate
// limiter; la superficie se limita a contadores y claves con expiración.
type CacheRepository interface {
	Increment(key string) (int64, error)
	// SetNX escribe sólo si la clave no existe; devuelve true si escribió.
	SetNX(key string, value interface{}, expiration time.Duration) (bool, error)
	Expire(key string, expiration time.Duration) error
	TTL(key string) (time.Duration, error)
}

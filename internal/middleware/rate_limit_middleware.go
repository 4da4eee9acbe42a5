package middleware

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/afiliados-api/internal/domain/repository"
)

// RateLimitConfig contiene los ajustes de limitación de peticiones
type RateLimitConfig struct {
	// MaxRequests — máximo de peticiones dentro de Window
	MaxRequests int
	// Window — ventana temporal de conteo
	Window time.Duration
	// KeyPrefix — prefijo de las claves en Redis
	KeyPrefix string
}

// DefaultPortalRateLimitConfig es el límite general de los endpoints públicos
func DefaultPortalRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		MaxRequests: 30,
		Window:      1 * time.Minute,
		KeyPrefix:   "rl:portal",
	}
}

// StrictOTPRateLimitConfig es el límite estricto de los endpoints que emiten
// o validan códigos de verificación (protección contra fuerza bruta)
func StrictOTPRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		MaxRequests: 5,
		Window:      1 * time.Minute,
		KeyPrefix:   "rl:otp",
	}
}

// RateLimiter crea middleware de limitación sobre el caché compartido
type RateLimiter struct {
	cache repository.CacheRepository
}

// NewRateLimiter crea el limitador
func NewRateLimiter(cache repository.CacheRepository) *RateLimiter {
	return &RateLimiter{cache: cache}
}

// Limit devuelve un middleware de Gin con la configuración dada.
// La clave se forma con IP + ruta del endpoint.
func (rl *RateLimiter) Limit(cfg RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		key := fmt.Sprintf("%s:%s:%s", cfg.KeyPrefix, clientIP, path)

		count, err := rl.cache.Increment(key)
		if err != nil {
			// Con error de Redis dejamos pasar la petición (fail-open), con rastro en el log
			log.Printf("[RateLimiter] Error de Redis para la clave %s: %v. Se permite la petición (fail-open).", key, err)
			c.Next()
			return
		}

		// La primera petición de la ventana fija el TTL
		if count == 1 {
			if err := rl.cache.Expire(key, cfg.Window); err != nil {
				log.Printf("[RateLimiter] No se pudo fijar el TTL de la clave %s: %v", key, err)
			}
		}

		remaining := cfg.MaxRequests - int(count)
		if remaining < 0 {
			remaining = 0
		}

		ttl, _ := rl.cache.TTL(key)
		retryAfter := int(ttl.Seconds())
		if retryAfter < 0 {
			retryAfter = int(cfg.Window.Seconds())
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", cfg.MaxRequests))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", retryAfter))

		if int(count) > cfg.MaxRequests {
			log.Printf("[RateLimiter] Límite superado para IP=%s path=%s. Count=%d, Limit=%d",
				clientIP, path, count, cfg.MaxRequests)

			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "demasiadas peticiones, inténtalo más tarde",
				"retry_after": retryAfter,
			})
			return
		}

		c.Next()
	}
}

package service

import (
	"fmt"
	"log"
	"unicode"

	"github.com/yourusername/afiliados-api/internal/domain/repository"
)

// EsContrasenaFuerte comprueba la política de contraseñas: longitud mínima 8
// con mayúscula, minúscula, dígito y carácter especial.
func EsContrasenaFuerte(password string) bool {
	if len(password) < 8 {
		return false
	}
	var mayus, minus, digito, especial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			mayus = true
		case unicode.IsLower(r):
			minus = true
		case unicode.IsDigit(r):
			digito = true
		default:
			especial = true
		}
	}
	return mayus && minus && digito && especial
}

// compruebaEnfriamientoEnvio aplica el enfriamiento de reenvío de códigos con
// SetNX en Redis. Con caché nulo o error de Redis se permite el envío
// (fail-open): el enfriamiento es una comodidad, no una garantía de seguridad.
func compruebaEnfriamientoEnvio(cache repository.CacheRepository, afiliadoID uint, componente string) error {
	if cache == nil {
		return nil
	}
	key := fmt.Sprintf("otp:enfriamiento:%d", afiliadoID)
	ok, err := cache.SetNX(key, 1, EnfriamientoEnvio)
	if err != nil {
		log.Printf("[%s] Redis no disponible para enfriamiento (se permite el envío): %v", componente, err)
		return nil
	}
	if !ok {
		return ErrReenvioEnEnfriamiento
	}
	return nil
}

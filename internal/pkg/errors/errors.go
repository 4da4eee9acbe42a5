package errors

import "errors"

// Errores comunes de la aplicación
var (
	// ErrNotFound se usa cuando un registro o recurso no existe.
	ErrNotFound = errors.New("record not found")

	// ErrValidation se usa para errores de validación de datos de entrada.
	ErrValidation = errors.New("validation failed")

	// ErrExternalService se usa cuando un servicio externo (captcha, correo)
	// falla y el error debe propagarse al llamador.
	ErrExternalService = errors.New("external service error")
)

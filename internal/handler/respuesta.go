package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/yourusername/afiliados-api/internal/pkg/errors"
	"github.com/yourusername/afiliados-api/internal/service"
)

// respondeBindError devuelve los errores de validación de campos como lista
// estructurada. Para errores de binding que no vienen del validador (JSON
// malformado) se devuelve un único error genérico.
func respondeBindError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		detalles := make([]gin.H, 0, len(validationErrs))
		for _, fe := range validationErrs {
			detalles = append(detalles, gin.H{
				"campo": fe.Field(),
				"regla": fe.Tag(),
			})
		}
		c.JSON(http.StatusBadRequest, gin.H{"errors": detalles})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "datos de la petición no válidos"})
}

// respondeServiceError mapea los errores de los servicios a códigos HTTP y
// mensajes en el idioma del portal. El detalle completo queda en el log del
// servidor; al cliente sólo llega el mensaje de negocio.
func respondeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "usuario no encontrado"})
	case errors.Is(err, service.ErrUsuarioYaRegistrado):
		c.JSON(http.StatusBadRequest, gin.H{"error": "usuario ya registrado"})
	case errors.Is(err, service.ErrCodigoIncorrecto):
		c.JSON(http.StatusBadRequest, gin.H{"error": "código incorrecto"})
	case errors.Is(err, service.ErrCodigoExpirado):
		c.JSON(http.StatusBadRequest, gin.H{"error": "el código ha expirado, solicita uno nuevo"})
	case errors.Is(err, service.ErrCodigoNoSolicitado):
		c.JSON(http.StatusBadRequest, gin.H{"error": "no hay ningún código solicitado para este usuario"})
	case errors.Is(err, service.ErrCuentaInactiva):
		c.JSON(http.StatusBadRequest, gin.H{"error": "la cuenta no está activa"})
	case errors.Is(err, service.ErrRegistroIncompleto):
		c.JSON(http.StatusBadRequest, gin.H{"error": "el usuario no ha completado el registro"})
	case errors.Is(err, service.ErrCaptchaInvalido):
		c.JSON(http.StatusBadRequest, gin.H{"error": "captcha no válido"})
	case errors.Is(err, service.ErrContrasenaComprometida):
		c.JSON(http.StatusBadRequest, gin.H{"error": "la contraseña aparece en filtraciones de datos, elige otra"})
	case errors.Is(err, service.ErrContrasenaDebil):
		c.JSON(http.StatusBadRequest, gin.H{"error": "la contraseña debe tener al menos 8 caracteres con mayúscula, minúscula, número y carácter especial"})
	case errors.Is(err, service.ErrContrasenasNoCoinciden):
		c.JSON(http.StatusBadRequest, gin.H{"error": "las contraseñas no coinciden"})
	case errors.Is(err, service.ErrVentanaDeCambioExpirada):
		c.JSON(http.StatusBadRequest, gin.H{"error": "la ventana para cambiar la contraseña ha expirado, solicita un código nuevo"})
	case errors.Is(err, service.ErrReenvioEnEnfriamiento):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "espera un minuto antes de solicitar otro código"})
	case errors.Is(err, service.ErrConsultaYaRespondida):
		c.JSON(http.StatusBadRequest, gin.H{"error": "la consulta ya tiene respuesta"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrExternalService):
		c.JSON(http.StatusBadGateway, gin.H{"error": "servicio externo no disponible, inténtalo de nuevo"})
	default:
		log.Printf("[Handler] Error interno en %s: %v", c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno del servidor"})
	}
}

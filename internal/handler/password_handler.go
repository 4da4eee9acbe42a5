package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/afiliados-api/internal/service"
)

// PasswordHandler atiende la recuperación de contraseña y el chequeo de
// contraseñas comprometidas
type PasswordHandler struct {
	reset  *service.PasswordResetService
	breach service.BreachChecker
}

// NewPasswordHandler crea el handler de contraseñas
func NewPasswordHandler(reset *service.PasswordResetService, breach service.BreachChecker) *PasswordHandler {
	return &PasswordHandler{reset: reset, breach: breach}
}

// ComprobarRequest es la petición del chequeo de contraseña comprometida
type ComprobarRequest struct {
	Password string `json:"password" binding:"required"`
}

// VerificarCorreoCaptchaRequest inicia la recuperación de contraseña
type VerificarCorreoCaptchaRequest struct {
	Email        string `json:"email" binding:"required,email"`
	CaptchaToken string `json:"captchaToken" binding:"required"`
}

// ValidarCodigoResetRequest valida el código de recuperación
type ValidarCodigoResetRequest struct {
	Email  string `json:"email" binding:"required,email"`
	Codigo string `json:"codigo" binding:"required,len=6,numeric"`
}

// ActualizarContrasenaRequest es el paso final del restablecimiento
type ActualizarContrasenaRequest struct {
	Email             string `json:"email" binding:"required,email"`
	Password          string `json:"password" binding:"required"`
	ConfirmarPassword string `json:"confirmarPassword" binding:"required"`
}

// Comprobar atiende POST /api/password/comprobar.
// El chequeo es fail-open: si el servicio de brechas no responde se contesta
// comprometida=false, dejando constancia en el log de que no se pudo comprobar.
func (h *PasswordHandler) Comprobar(c *gin.Context) {
	var req ComprobarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondeBindError(c, err)
		return
	}

	comprometida, err := h.breach.IsCompromised(c.Request.Context(), req.Password)
	if err != nil {
		log.Printf("[PasswordHandler] Chequeo de brechas no disponible, se asume no comprometida: %v", err)
		c.JSON(http.StatusOK, gin.H{"comprometida": false, "comprobada": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"comprometida": comprometida, "comprobada": true})
}

// VerificarCorreoCaptcha atiende POST /api/password/verificarCorreoCaptcha
func (h *PasswordHandler) VerificarCorreoCaptcha(c *gin.Context) {
	var req VerificarCorreoCaptchaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondeBindError(c, err)
		return
	}

	if err := h.reset.VerificarCorreoCaptcha(c.Request.Context(), req.Email, req.CaptchaToken); err != nil {
		respondeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "código de recuperación enviado al correo"})
}

// ValidarCodigo atiende POST /api/password/validarCodigo
func (h *PasswordHandler) ValidarCodigo(c *gin.Context) {
	var req ValidarCodigoResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondeBindError(c, err)
		return
	}

	if err := h.reset.ValidarCodigo(c.Request.Context(), req.Email, req.Codigo); err != nil {
		respondeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "código verificado correctamente"})
}

// ActualizarContrasena atiende POST /api/password/actualizarContrasena
func (h *PasswordHandler) ActualizarContrasena(c *gin.Context) {
	var req ActualizarContrasenaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondeBindError(c, err)
		return
	}

	if err := h.reset.ActualizarContrasena(c.Request.Context(), req.Email, req.Password, req.ConfirmarPassword); err != nil {
		respondeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "contraseña actualizada correctamente"})
}

package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/afiliados-api/internal/service"
)

// RegistroHandler atiende las peticiones del flujo de registro de afiliados
type RegistroHandler struct {
	registro *service.RegistrationService
}

// NewRegistroHandler crea el handler de registro
func NewRegistroHandler(registro *service.RegistrationService) *RegistroHandler {
	return &RegistroHandler{registro: registro}
}

// EnviarCodigoRequest es la petición de envío de código de registro
type EnviarCodigoRequest struct {
	Email           string `json:"email" binding:"required,email"`
	FechaNacimiento string `json:"fechaNacimiento" binding:"required"` // formato 2006-01-02
}

// ValidarCodigoRequest es la petición de validación del código recibido
type ValidarCodigoRequest struct {
	Email  string `json:"email" binding:"required,email"`
	Codigo string `json:"codigo" binding:"required,len=6,numeric"`
}

// ActualizarUsuarioRequest es la petición del paso final del registro
type ActualizarUsuarioRequest struct {
	Email             string `json:"email" binding:"required,email"`
	Nombre            string `json:"nombre" binding:"required,max=100"`
	Apellidos         string `json:"apellidos" binding:"required,max=150"`
	Telefono          string `json:"telefono" binding:"omitempty,max=20"`
	UniversidadID     *uint  `json:"universidadId" binding:"omitempty"`
	CargoID           *uint  `json:"cargoId" binding:"omitempty"`
	ProgramaID        *uint  `json:"programaId" binding:"omitempty"`
	Password          string `json:"password" binding:"required"`
	ConfirmarPassword string `json:"confirmarPassword" binding:"required"`
}

// EnviarCodigo atiende POST /api/registro/enviarCodigo
func (h *RegistroHandler) EnviarCodigo(c *gin.Context) {
	var req EnviarCodigoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondeBindError(c, err)
		return
	}

	fechaNacimiento, err := time.Parse("2006-01-02", req.FechaNacimiento)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fecha de nacimiento no válida, usa el formato AAAA-MM-DD"})
		return
	}

	if err := h.registro.EnviarCodigo(c.Request.Context(), req.Email, fechaNacimiento); err != nil {
		respondeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "código de verificación enviado al correo"})
}

// ValidarCodigo atiende POST /api/registro/validarCodigo
func (h *RegistroHandler) ValidarCodigo(c *gin.Context) {
	var req ValidarCodigoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondeBindError(c, err)
		return
	}

	if err := h.registro.ValidarCodigo(c.Request.Context(), req.Email, req.Codigo); err != nil {
		respondeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "correo verificado correctamente"})
}

// ActualizarUsuario atiende POST /api/registro/actualizarUsuario
func (h *RegistroHandler) ActualizarUsuario(c *gin.Context) {
	var req ActualizarUsuarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondeBindError(c, err)
		return
	}

	err := h.registro.ActualizarUsuario(c.Request.Context(), service.ActualizarUsuarioInput{
		Email:             req.Email,
		Nombre:            req.Nombre,
		Apellidos:         req.Apellidos,
		Telefono:          req.Telefono,
		UniversidadID:     req.UniversidadID,
		CargoID:           req.CargoID,
		ProgramaID:        req.ProgramaID,
		Password:          req.Password,
		ConfirmarPassword: req.ConfirmarPassword,
	})
	if err != nil {
		respondeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "registro completado correctamente"})
}

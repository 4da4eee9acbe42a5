package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/afiliados-api/internal/service"
)

// ContactoHandler atiende el formulario de contacto
type ContactoHandler struct {
	contacto *service.ContactoService
}

func NewContactoHandler(contacto *service.ContactoService) *ContactoHandler {
	return &ContactoHandler{contacto: contacto}
}

// CrearContactoRequest es la petición de alta de una consulta
type CrearContactoRequest struct {
	Nombre  string `json:"nombre" binding:"required,max=150"`
	Email   string `json:"email" binding:"required,email"`
	Asunto  string `json:"asunto" binding:"required,max=200"`
	Mensaje string `json:"mensaje" binding:"required"`
}

// ResponderContactoRequest es la petición de respuesta a una consulta
type ResponderContactoRequest struct {
	Respuesta string `json:"respuesta" binding:"required"`
}

// Crear atiende POST /api/contacto
func (h *ContactoHandler) Crear(c *gin.Context) {
	var req CrearContactoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondeBindError(c, err)
		return
	}

	contacto, err := h.contacto.Crear(c.Request.Context(), req.Nombre, req.Email, req.Asunto, req.Mensaje)
	if err != nil {
		respondeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "consulta registrada correctamente",
		"folio":   contacto.Folio,
	})
}

// Listar atiende GET /api/contacto
func (h *ContactoHandler) Listar(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil || pageSize < 1 {
		pageSize = 20
	}

	contactos, err := h.contacto.Listar(page, pageSize)
	if err != nil {
		respondeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"contactos": contactos, "page": page, "per_page": pageSize})
}

// Responder atiende POST /api/contacto/:id/responder
func (h *ContactoHandler) Responder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "identificador no válido"})
		return
	}

	var req ResponderContactoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondeBindError(c, err)
		return
	}

	if err := h.contacto.Responder(c.Request.Context(), uint(id), req.Respuesta); err != nil {
		respondeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "respuesta enviada correctamente"})
}

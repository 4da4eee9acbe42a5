package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/afiliados-api/internal/service"
)

// CatalogoHandler atiende las lecturas de catálogos
type CatalogoHandler struct {
	catalogo *service.CatalogoService
}

func NewCatalogoHandler(catalogo *service.CatalogoService) *CatalogoHandler {
	return &CatalogoHandler{catalogo: catalogo}
}

// Universidades atiende GET /api/catalogos/universidades
func (h *CatalogoHandler) Universidades(c *gin.Context) {
	items, err := h.catalogo.Universidades()
	if err != nil {
		respondeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"universidades": items})
}

// Cargos atiende GET /api/catalogos/cargos
func (h *CatalogoHandler) Cargos(c *gin.Context) {
	items, err := h.catalogo.Cargos()
	if err != nil {
		respondeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cargos": items})
}

// Programas atiende GET /api/catalogos/programas
func (h *CatalogoHandler) Programas(c *gin.Context) {
	items, err := h.catalogo.Programas()
	if err != nil {
		respondeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"programas": items})
}

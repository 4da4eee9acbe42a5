package service

import (
	"fmt"

	"github.com/yourusername/afiliados-api/internal/domain/entity"
	"github.com/yourusername/afiliados-api/internal/domain/repository"
)

// CatalogoService expone los catálogos estáticos del portal.
type CatalogoService struct {
	catalogoRepo repository.CatalogoRepository
}

func NewCatalogoService(catalogoRepo repository.CatalogoRepository) (*CatalogoService, error) {
	if catalogoRepo == nil {
		return nil, fmt.Errorf("catalogo repository is required")
	}
	return &CatalogoService{catalogoRepo: catalogoRepo}, nil
}

func (s *CatalogoService) Universidades() ([]entity.Universidad, error) {
	return s.catalogoRepo.ListUniversidades()
}

func (s *CatalogoService) Cargos() ([]entity.Cargo, error) {
	return s.catalogoRepo.ListCargos()
}

func (s *CatalogoService) Programas() ([]entity.Programa, error) {
	return s.catalogoRepo.ListProgramas()
}

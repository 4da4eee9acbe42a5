package repository

import "github.com/yourusername/afiliados-api/internal/domain/entity"

// CatalogoRepository expone las lecturas de los catálogos estáticos.
type CatalogoRepository interface {
	ListUniversidades() ([]entity.Universidad, error)
	ListCargos() ([]entity.Cargo, error)
	ListProgramas() ([]entity.Programa, error)
	ExisteUniversidad(id uint) (bool, error)
	ExisteCargo(id uint) (bool, error)
	ExistePrograma(id uint) (bool, error)
}

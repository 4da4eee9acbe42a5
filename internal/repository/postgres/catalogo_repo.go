package postgres

import (
	"gorm.io/gorm"

	"github.com/yourusername/afiliados-api/internal/domain/entity"
)

// CatalogoRepo implementa repository.CatalogoRepository sobre las tablas
// de catálogo. Sólo lecturas.
type CatalogoRepo struct {
	db *gorm.DB
}

func NewCatalogoRepo(db *gorm.DB) *CatalogoRepo {
	return &CatalogoRepo{db: db}
}

func (r *CatalogoRepo) ListUniversidades() ([]entity.Universidad, error) {
	var items []entity.Universidad
	err := r.db.Order("nombre").Find(&items).Error
	return items, err
}

func (r *CatalogoRepo) ListCargos() ([]entity.Cargo, error) {
	var items []entity.Cargo
	err := r.db.Order("nombre").Find(&items).Error
	return items, err
}

func (r *CatalogoRepo) ListProgramas() ([]entity.Programa, error) {
	var items []entity.Programa
	err := r.db.Order("nombre").Find(&items).Error
	return items, err
}

func (r *CatalogoRepo) ExisteUniversidad(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&entity.Universidad{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *CatalogoRepo) ExisteCargo(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&entity.Cargo{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *CatalogoRepo) ExistePrograma(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&entity.Programa{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/afiliados-api/internal/domain/entity"
	apperrors "github.com/yourusername/afiliados-api/internal/pkg/errors"
)

// ContactoRepo implementa repository.ContactoRepository
type ContactoRepo struct {
	db *gorm.DB
}

func NewContactoRepo(db *gorm.DB) *ContactoRepo {
	return &ContactoRepo{db: db}
}

func (r *ContactoRepo) Create(contacto *entity.Contacto) error {
	return r.db.Create(contacto).Error
}

func (r *ContactoRepo) GetByID(id uint) (*entity.Contacto, error) {
	var contacto entity.Contacto
	err := r.db.First(&contacto, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &contacto, nil
}

// List devuelve las consultas, pendientes primero y dentro de cada estado
// las más recientes al principio.
func (r *ContactoRepo) List(limit, offset int) ([]entity.Contacto, error) {
	var contactos []entity.Contacto
	err := r.db.
		Order("CASE WHEN estado = 'pendiente' THEN 0 ELSE 1 END").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&contactos).Error
	return contactos, err
}

func (r *ContactoRepo) MarcarRespondido(id uint, respuesta string) error {
	now := time.Now()
	result := r.db.Model(&entity.Contacto{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"respuesta":       respuesta,
			"fecha_respuesta": now,
			"estado":          entity.ContactoRespondido,
			"updated_at":      now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

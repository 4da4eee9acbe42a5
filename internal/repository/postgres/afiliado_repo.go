package postgres

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/afiliados-api/internal/domain/entity"
	apperrors "github.com/yourusername/afiliados-api/internal/pkg/errors"
)

// AfiliadoRepo implementa repository.AfiliadoRepository
type AfiliadoRepo struct {
	db *gorm.DB
}

// NewAfiliadoRepo crea un nuevo repositorio de afiliados
func NewAfiliadoRepo(db *gorm.DB) *AfiliadoRepo {
	return &AfiliadoRepo{db: db}
}

// Create inserta un afiliado nuevo (lo usa la importación del padrón)
func (r *AfiliadoRepo) Create(afiliado *entity.Afiliado) error {
	afiliado.Email = entity.NormalizaEmail(afiliado.Email)
	return r.db.Create(afiliado).Error
}

// GetByID devuelve un afiliado por ID
func (r *AfiliadoRepo) GetByID(id uint) (*entity.Afiliado, error) {
	var afiliado entity.Afiliado
	err := r.db.First(&afiliado, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &afiliado, nil
}

// GetByEmail devuelve un afiliado por email (forma normalizada)
func (r *AfiliadoRepo) GetByEmail(email string) (*entity.Afiliado, error) {
	var afiliado entity.Afiliado
	err := r.db.Where("email = ?", entity.NormalizaEmail(email)).First(&afiliado).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &afiliado, nil
}

// GetByEmailYFechaNacimiento busca por la pareja email + fecha de nacimiento.
// Las dos condiciones van en la misma consulta: si cualquiera falla, el
// resultado es el mismo "no encontrado" indistinguible desde fuera.
func (r *AfiliadoRepo) GetByEmailYFechaNacimiento(email string, fechaNacimiento time.Time) (*entity.Afiliado, error) {
	var afiliado entity.Afiliado
	err := r.db.
		Where("email = ? AND fecha_nacimiento = ?", entity.NormalizaEmail(email), fechaNacimiento.Format("2006-01-02")).
		First(&afiliado).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &afiliado, nil
}

// UpdateCampos actualiza sólo los campos indicados
func (r *AfiliadoRepo) UpdateCampos(id uint, campos map[string]interface{}) error {
	// La contraseña nunca se actualiza por esta vía
	delete(campos, "password")
	campos["updated_at"] = time.Now()

	return r.db.Model(&entity.Afiliado{}).Where("id = ?", id).Updates(campos).Error
}

// UpdatePassword guarda el hash de contraseña. El hash se calcula en la capa
// de servicio; aquí sólo se persiste.
func (r *AfiliadoRepo) UpdatePassword(id uint, passwordHash string) error {
	result := r.db.Exec(
		"UPDATE afiliados SET password = ?, updated_at = ? WHERE id = ?",
		passwordHash,
		time.Now(),
		id,
	)
	if result.Error != nil {
		log.Printf("[AfiliadoRepo.UpdatePassword] Error al actualizar contraseña ID=%d: %v", id, result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

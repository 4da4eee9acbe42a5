package repository

import (
	"time"

	"github.com/yourusername/afiliados-api/internal/domain/entity"
)

// AfiliadoRepository define los métodos de acceso al padrón de afiliados.
// Todas las consultas usan parámetros enlazados, nunca interpolación de cadenas.
type AfiliadoRepository interface {
	Create(afiliado *entity.Afiliado) error
	GetByID(id uint) (*entity.Afiliado, error)
	GetByEmail(email string) (*entity.Afiliado, error)
	// GetByEmailYFechaNacimiento busca por la pareja email + fecha de
	// nacimiento; ambas deben coincidir (puerta anti-enumeración del registro).
	GetByEmailYFechaNacimiento(email string, fechaNacimiento time.Time) (*entity.Afiliado, error)
	// UpdateCampos actualiza sólo los campos indicados sin tocar el resto.
	UpdateCampos(id uint, campos map[string]interface{}) error
	// UpdatePassword guarda el hash de contraseña ya calculado.
	UpdatePassword(id uint, passwordHash string) error
}

package entity

import (
	"strings"
	"time"
)

// Estados posibles de un afiliado dentro del padrón
const (
	EstadoActivo   = "activo"
	EstadoInactivo = "inactivo"
)

// Afiliado representa a un miembro del sindicato en el sistema.
// El registro base lo crea la importación del padrón; el propio afiliado
// completa su perfil y contraseña tras verificar su correo.
type Afiliado struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Email           string    `gorm:"size:100;not null;uniqueIndex" json:"email"`
	FechaNacimiento time.Time `gorm:"type:date;not null" json:"fecha_nacimiento"`
	Nombre          string    `gorm:"size:100;not null;default:''" json:"nombre"`
	Apellidos       string    `gorm:"size:150;not null;default:''" json:"apellidos"`
	Telefono        string    `gorm:"size:20;not null;default:''" json:"telefono"`

	// Password es nulo hasta que el afiliado completa el registro.
	// Siempre se guarda el hash bcrypt, nunca el texto plano.
	Password *string `gorm:"size:100" json:"-"`

	RegistroCompletado bool   `gorm:"not null;default:false" json:"registro_completado"`
	Estado             string `gorm:"size:20;not null;default:'activo'" json:"estado"` // activo, inactivo
	Verificado         bool   `gorm:"not null;default:false" json:"verificado"`

	// Desafío OTP vigente. Se guarda el hash del token firmado, nunca el
	// código en claro. Como máximo hay un desafío vivo por afiliado: una
	// nueva emisión sobrescribe la anterior.
	CodigoVerificacion      *string    `gorm:"size:100" json:"-"`
	FechaCodigoVerificacion *time.Time `gorm:"type:timestamp" json:"-"`

	UniversidadID *uint `gorm:"index" json:"universidad_id,omitempty"`
	CargoID       *uint `gorm:"index" json:"cargo_id,omitempty"`
	ProgramaID    *uint `gorm:"index" json:"programa_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName define el nombre de la tabla para GORM
func (Afiliado) TableName() string {
	return "afiliados"
}

// NormalizaEmail convierte el email a su forma canónica de búsqueda
// (minúsculas, sin espacios alrededor).
func NormalizaEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// TieneDesafio indica si el afiliado tiene un desafío OTP almacenado.
func (a *Afiliado) TieneDesafio() bool {
	return a.CodigoVerificacion != nil && a.FechaCodigoVerificacion != nil
}

// EstaActivo indica si la cuenta puede completar un restablecimiento de contraseña.
func (a *Afiliado) EstaActivo() bool {
	return a.Estado == EstadoActivo
}

package entity

import "time"

// Estados de un mensaje de contacto
const (
	ContactoPendiente  = "pendiente"
	ContactoRespondido = "respondido"
)

// Contacto representa una pregunta o consulta enviada desde el portal.
type Contacto struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Folio   string `gorm:"size:36;not null;uniqueIndex" json:"folio"` // UUID para referencia externa
	Nombre  string `gorm:"size:150;not null" json:"nombre"`
	Email   string `gorm:"size:100;not null;index" json:"email"`
	Asunto  string `gorm:"size:200;not null" json:"asunto"`
	Mensaje string `gorm:"type:text;not null" json:"mensaje"`

	Estado         string     `gorm:"size:20;not null;default:'pendiente'" json:"estado"`
	Respuesta      *string    `gorm:"type:text" json:"respuesta,omitempty"`
	FechaRespuesta *time.Time `gorm:"type:timestamp" json:"fecha_respuesta,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Contacto) TableName() string {
	return "contactos"
}

// EstaRespondido indica si la consulta ya tiene respuesta registrada.
func (c *Contacto) EstaRespondido() bool {
	return c.Respuesta != nil
}

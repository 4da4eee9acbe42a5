package repository

import "github.com/yourusername/afiliados-api/internal/domain/entity"

// ContactoRepository persiste las consultas del formulario de contacto.
type ContactoRepository interface {
	Create(contacto *entity.Contacto) error
	GetByID(id uint) (*entity.Contacto, error)
	// List devuelve las consultas, pendientes primero y luego por fecha.
	List(limit, offset int) ([]entity.Contacto, error)
	// MarcarRespondido registra la respuesta y el cambio de estado.
	MarcarRespondido(id uint, respuesta string) error
}

package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/yourusername/afiliados-api/internal/domain/entity"
	"github.com/yourusername/afiliados-api/internal/domain/repository"
	apperrors "github.com/yourusername/afiliados-api/internal/pkg/errors"
)

// ContactoService gestiona las consultas del formulario de contacto y sus
// respuestas.
type ContactoService struct {
	contactoRepo repository.ContactoRepository
	email        EmailService
	plantillas   *Plantillas
}

func NewContactoService(contactoRepo repository.ContactoRepository, email EmailService, plantillas *Plantillas) (*ContactoService, error) {
	if contactoRepo == nil {
		return nil, fmt.Errorf("contacto repository is required")
	}
	if email == nil {
		return nil, fmt.Errorf("email service is required")
	}
	if plantillas == nil {
		plantillas = CargarPlantillas("")
	}
	return &ContactoService{
		contactoRepo: contactoRepo,
		email:        email,
		plantillas:   plantillas,
	}, nil
}

// Crear registra la consulta y envía el acuse de recibo. El acuse es de
// cortesía: si el correo falla, la consulta queda guardada igualmente.
func (s *ContactoService) Crear(ctx context.Context, nombre, email, asunto, mensaje string) (*entity.Contacto, error) {
	contacto := &entity.Contacto{
		Folio:   uuid.NewString(),
		Nombre:  strings.TrimSpace(nombre),
		Email:   entity.NormalizaEmail(email),
		Asunto:  strings.TrimSpace(asunto),
		Mensaje: strings.TrimSpace(mensaje),
		Estado:  entity.ContactoPendiente,
	}
	if contacto.Nombre == "" || contacto.Email == "" || contacto.Asunto == "" || contacto.Mensaje == "" {
		return nil, fmt.Errorf("%w: todos los campos son obligatorios", apperrors.ErrValidation)
	}

	if err := s.contactoRepo.Create(contacto); err != nil {
		return nil, fmt.Errorf("failed to store contact message: %w", err)
	}

	cuerpo := Render(s.plantillas.ContactoAcuse, map[string]string{
		"nombre":  contacto.Nombre,
		"folio":   contacto.Folio,
		"mensaje": contacto.Mensaje,
	})
	if err := s.email.Send(ctx, contacto.Email, "Hemos recibido tu consulta", cuerpo, "contacto:"+contacto.Folio); err != nil {
		log.Printf("[ContactoService] Error al enviar acuse de folio %s: %v", contacto.Folio, err)
	}

	return contacto, nil
}

// Listar devuelve las consultas con paginación, pendientes primero.
func (s *ContactoService) Listar(page, pageSize int) ([]entity.Contacto, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	} else if pageSize > 100 {
		pageSize = 100
	}
	return s.contactoRepo.List(pageSize, (page-1)*pageSize)
}

// Responder registra la respuesta y la envía al correo del remitente.
// Una consulta ya respondida no admite segunda respuesta.
func (s *ContactoService) Responder(ctx context.Context, id uint, respuesta string) error {
	respuesta = strings.TrimSpace(respuesta)
	if respuesta == "" {
		return fmt.Errorf("%w: la respuesta no puede estar vacía", apperrors.ErrValidation)
	}

	contacto, err := s.contactoRepo.GetByID(id)
	if err != nil {
		return err
	}
	if contacto.EstaRespondido() {
		return ErrConsultaYaRespondida
	}

	if err := s.contactoRepo.MarcarRespondido(id, respuesta); err != nil {
		return fmt.Errorf("failed to store reply: %w", err)
	}

	cuerpo := Render(s.plantillas.ContactoRespuesta, map[string]string{
		"nombre":    contacto.Nombre,
		"asunto":    contacto.Asunto,
		"folio":     contacto.Folio,
		"respuesta": respuesta,
	})
	if err := s.email.Send(ctx, contacto.Email, "Respuesta a tu consulta: "+contacto.Asunto, cuerpo, "respuesta:"+contacto.Folio); err != nil {
		// La respuesta ya quedó registrada; el reenvío del correo es manual.
		log.Printf("[ContactoService] Error al enviar respuesta de folio %s: %v", contacto.Folio, err)
		return fmt.Errorf("%w: la respuesta quedó registrada pero el correo falló", apperrors.ErrExternalService)
	}

	return nil
}

package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/afiliados-api/internal/domain/repository"
	apperrors "github.com/yourusername/afiliados-api/internal/pkg/errors"
	"github.com/yourusername/afiliados-api/pkg/hash"
)

// TTLs de los desafíos OTP. La ventana de cambio de contraseña es más laxa
// que la de verificación porque "verificar código" y "enviar contraseña
// nueva" son peticiones separadas con una espera del cliente en medio.
const (
	TTLRegistro       = 10 * time.Minute
	TTLRecuperacion   = 10 * time.Minute
	VentanaCambio     = 15 * time.Minute
	EnfriamientoEnvio = 60 * time.Second
)

// RegistrationService orquesta el alta de afiliados:
// sin registrar → pendiente de verificación → verificado → completado.
// El registro base debe existir de antemano (importación del padrón).
type RegistrationService struct {
	afiliadoRepo repository.AfiliadoRepository
	catalogoRepo repository.CatalogoRepository
	otp          *OTPService
	email        EmailService
	breach       BreachChecker
	hasher       hash.Hasher
	cache        repository.CacheRepository
	plantillas   *Plantillas
}

// NewRegistrationService construye el flujo de registro. El caché es opcional
// (sin Redis no hay enfriamiento de reenvío); el resto es obligatorio.
func NewRegistrationService(
	afiliadoRepo repository.AfiliadoRepository,
	catalogoRepo repository.CatalogoRepository,
	otp *OTPService,
	email EmailService,
	breach BreachChecker,
	hasher hash.Hasher,
	cache repository.CacheRepository,
	plantillas *Plantillas,
) (*RegistrationService, error) {
	if afiliadoRepo == nil {
		return nil, fmt.Errorf("afiliado repository is required")
	}
	if catalogoRepo == nil {
		return nil, fmt.Errorf("catalogo repository is required")
	}
	if otp == nil {
		return nil, fmt.Errorf("otp service is required")
	}
	if email == nil {
		return nil, fmt.Errorf("email service is required")
	}
	if breach == nil {
		return nil, fmt.Errorf("breach checker is required")
	}
	if hasher == nil {
		return nil, fmt.Errorf("hasher is required")
	}
	if plantillas == nil {
		plantillas = CargarPlantillas("")
	}
	return &RegistrationService{
		afiliadoRepo: afiliadoRepo,
		catalogoRepo: catalogoRepo,
		otp:          otp,
		email:        email,
		breach:       breach,
		hasher:       hasher,
		cache:        cache,
		plantillas:   plantillas,
	}, nil
}

// EnviarCodigo inicia el registro: localiza al afiliado por la pareja
// email + fecha de nacimiento, emite un código y lo envía por correo.
// Si cualquiera de los dos datos no coincide el resultado es el mismo
// ErrNotFound, sin distinguir cuál falló.
func (s *RegistrationService) EnviarCodigo(ctx context.Context, email string, fechaNacimiento time.Time) error {
	afiliado, err := s.afiliadoRepo.GetByEmailYFechaNacimiento(email, fechaNacimiento)
	if err != nil {
		return err
	}
	if afiliado.RegistroCompletado {
		return ErrUsuarioYaRegistrado
	}

	if err := compruebaEnfriamientoEnvio(s.cache, afiliado.ID, "RegistrationService"); err != nil {
		return err
	}

	codigo, err := s.otp.Issue(afiliado)
	if err != nil {
		return err
	}

	cuerpo := Render(s.plantillas.Registro, map[string]string{"codigo": codigo})
	idempotencia := fmt.Sprintf("registro:%d:%s", afiliado.ID, uuid.NewString())
	if err := s.email.Send(ctx, afiliado.Email, "Código de verificación de registro", cuerpo, idempotencia); err != nil {
		// El desafío queda almacenado aunque el correo falle: el afiliado
		// puede volver a solicitar un código y la nueva emisión sobrescribe.
		log.Printf("[RegistrationService] Error al enviar código a afiliado ID=%d: %v", afiliado.ID, err)
		return fmt.Errorf("%w: fallo el envío del correo de verificación", apperrors.ErrExternalService)
	}

	log.Printf("[RegistrationService] Código de registro enviado a afiliado ID=%d", afiliado.ID)
	return nil
}

// ValidarCodigo verifica el código de registro. Con resultado Ok marca al
// afiliado como verificado y consume el desafío: el mismo código no vuelve
// a servir.
func (s *RegistrationService) ValidarCodigo(ctx context.Context, email, codigo string) error {
	afiliado, err := s.afiliadoRepo.GetByEmail(email)
	if err != nil {
		return err
	}
	if afiliado.RegistroCompletado {
		return ErrUsuarioYaRegistrado
	}

	resultado, err := s.otp.Verify(afiliado, codigo, TTLRegistro)
	if err != nil {
		return err
	}
	switch resultado {
	case VerifyNotFound:
		return ErrCodigoNoSolicitado
	case VerifyExpired:
		return ErrCodigoExpirado
	case VerifyMismatch:
		return ErrCodigoIncorrecto
	}

	if err := s.afiliadoRepo.UpdateCampos(afiliado.ID, map[string]interface{}{
		"verificado":                true,
		"codigo_verificacion":       nil,
		"fecha_codigo_verificacion": nil,
	}); err != nil {
		return fmt.Errorf("failed to mark afiliado as verified: %w", err)
	}

	log.Printf("[RegistrationService] Afiliado ID=%d verificado", afiliado.ID)
	return nil
}

// ActualizarUsuarioInput son los datos del paso final del registro.
type ActualizarUsuarioInput struct {
	Email             string
	Nombre            string
	Apellidos         string
	Telefono          string
	UniversidadID     *uint
	CargoID           *uint
	ProgramaID        *uint
	Password          string
	ConfirmarPassword string
}

// ActualizarUsuario completa el registro: valida y guarda el perfil y la
// contraseña. El acceso a este paso lo protege el código de 10 minutos del
// paso anterior; el flag verificado no se vuelve a comprobar aquí.
func (s *RegistrationService) ActualizarUsuario(ctx context.Context, in ActualizarUsuarioInput) error {
	afiliado, err := s.afiliadoRepo.GetByEmail(in.Email)
	if err != nil {
		return err
	}
	if afiliado.RegistroCompletado {
		return ErrUsuarioYaRegistrado
	}

	if err := s.validaContrasena(ctx, in.Password, in.ConfirmarPassword); err != nil {
		return err
	}
	if err := s.validaCatalogos(in.UniversidadID, in.CargoID, in.ProgramaID); err != nil {
		return err
	}

	passwordHash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	campos := map[string]interface{}{
		"nombre":              in.Nombre,
		"apellidos":           in.Apellidos,
		"telefono":            in.Telefono,
		"registro_completado": true,
	}
	if in.UniversidadID != nil {
		campos["universidad_id"] = *in.UniversidadID
	}
	if in.CargoID != nil {
		campos["cargo_id"] = *in.CargoID
	}
	if in.ProgramaID != nil {
		campos["programa_id"] = *in.ProgramaID
	}
	if err := s.afiliadoRepo.UpdateCampos(afiliado.ID, campos); err != nil {
		return fmt.Errorf("failed to update afiliado profile: %w", err)
	}
	if err := s.afiliadoRepo.UpdatePassword(afiliado.ID, passwordHash); err != nil {
		return fmt.Errorf("failed to store password: %w", err)
	}

	log.Printf("[RegistrationService] Registro completado para afiliado ID=%d", afiliado.ID)
	return nil
}

// validaContrasena aplica confirmación, fortaleza y chequeo de brechas.
// El chequeo de brechas es fail-open: si el servicio externo no responde se
// asume no comprometida, dejando rastro en el log para no confundirlo con
// un resultado limpio.
func (s *RegistrationService) validaContrasena(ctx context.Context, password, confirmacion string) error {
	if password != confirmacion {
		return ErrContrasenasNoCoinciden
	}
	if !EsContrasenaFuerte(password) {
		return ErrContrasenaDebil
	}

	comprometida, err := s.breach.IsCompromised(ctx, password)
	if err != nil {
		log.Printf("[RegistrationService] Chequeo de brechas no disponible, se asume no comprometida: %v", err)
		return nil
	}
	if comprometida {
		return ErrContrasenaComprometida
	}
	return nil
}

func (s *RegistrationService) validaCatalogos(universidadID, cargoID, programaID *uint) error {
	type comprobacion struct {
		id     *uint
		existe func(uint) (bool, error)
		campo  string
	}
	for _, c := range []comprobacion{
		{universidadID, s.catalogoRepo.ExisteUniversidad, "universidad"},
		{cargoID, s.catalogoRepo.ExisteCargo, "cargo"},
		{programaID, s.catalogoRepo.ExistePrograma, "programa"},
	} {
		if c.id == nil {
			continue
		}
		existe, err := c.existe(*c.id)
		if err != nil {
			return err
		}
		if !existe {
			return fmt.Errorf("%w: %s no válido", apperrors.ErrValidation, c.campo)
		}
	}
	return nil
}

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

// PasswordResetService orquesta la recuperación de contraseña:
// solicitado → código verificado → restablecido.
//
// El paso de verificación NO consume el desafío: el hash almacenado se borra
// sólo al cambiar la contraseña, que es la operación terminal. Entre verificar
// y cambiar hay una segunda ventana de 15 minutos medida desde la misma
// emisión, más laxa que el TTL de verificación, para tolerar la espera del
// cliente entre ambas peticiones.
type PasswordResetService struct {
	afiliadoRepo repository.AfiliadoRepository
	otp          *OTPService
	email        EmailService
	breach       BreachChecker
	captcha      CaptchaVerifier
	hasher       hash.Hasher
	cache        repository.CacheRepository
	plantillas   *Plantillas
}

// NewPasswordResetService construye el flujo de recuperación.
func NewPasswordResetService(
	afiliadoRepo repository.AfiliadoRepository,
	otp *OTPService,
	email EmailService,
	breach BreachChecker,
	captcha CaptchaVerifier,
	hasher hash.Hasher,
	cache repository.CacheRepository,
	plantillas *Plantillas,
) (*PasswordResetService, error) {
	if afiliadoRepo == nil {
		return nil, fmt.Errorf("afiliado repository is required")
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
	if captcha == nil {
		return nil, fmt.Errorf("captcha verifier is required")
	}
	if hasher == nil {
		return nil, fmt.Errorf("hasher is required")
	}
	if plantillas == nil {
		plantillas = CargarPlantillas("")
	}
	return &PasswordResetService{
		afiliadoRepo: afiliadoRepo,
		otp:          otp,
		email:        email,
		breach:       breach,
		captcha:      captcha,
		hasher:       hasher,
		cache:        cache,
		plantillas:   plantillas,
	}, nil
}

// VerificarCorreoCaptcha inicia la recuperación: valida el captcha
// (fail-closed), comprueba que la cuenta está activa con registro completado,
// emite un código y lo envía con la plantilla de recuperación.
func (s *PasswordResetService) VerificarCorreoCaptcha(ctx context.Context, email, captchaToken string) error {
	if err := s.captcha.Verify(ctx, captchaToken); err != nil {
		return err
	}

	afiliado, err := s.afiliadoRepo.GetByEmail(email)
	if err != nil {
		return err
	}
	if !afiliado.EstaActivo() {
		return ErrCuentaInactiva
	}
	if !afiliado.RegistroCompletado {
		return ErrRegistroIncompleto
	}

	if err := compruebaEnfriamientoEnvio(s.cache, afiliado.ID, "PasswordResetService"); err != nil {
		return err
	}

	codigo, err := s.otp.Issue(afiliado)
	if err != nil {
		return err
	}

	cuerpo := Render(s.plantillas.Recuperacion, map[string]string{"codigo": codigo})
	idempotencia := fmt.Sprintf("recuperacion:%d:%s", afiliado.ID, uuid.NewString())
	if err := s.email.Send(ctx, afiliado.Email, "Código para restablecer tu contraseña", cuerpo, idempotencia); err != nil {
		log.Printf("[PasswordResetService] Error al enviar código a afiliado ID=%d: %v", afiliado.ID, err)
		return fmt.Errorf("%w: fallo el envío del correo de recuperación", apperrors.ErrExternalService)
	}

	log.Printf("[PasswordResetService] Código de recuperación enviado a afiliado ID=%d", afiliado.ID)
	return nil
}

// ValidarCodigo verifica el código de recuperación dentro del TTL de 10
// minutos. No consume el desafío: el borrado ocurre en ActualizarContrasena.
func (s *PasswordResetService) ValidarCodigo(ctx context.Context, email, codigo string) error {
	afiliado, err := s.afiliadoRepo.GetByEmail(email)
	if err != nil {
		return err
	}

	resultado, err := s.otp.Verify(afiliado, codigo, TTLRecuperacion)
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
	return nil
}

// ActualizarContrasena es el paso terminal: confirma que sigue dentro de la
// ventana de 15 minutos desde la emisión, valida la contraseña nueva y la
// guarda, borrando el desafío para que el código no pueda reutilizarse.
func (s *PasswordResetService) ActualizarContrasena(ctx context.Context, email, password, confirmacion string) error {
	afiliado, err := s.afiliadoRepo.GetByEmail(email)
	if err != nil {
		return err
	}

	if !afiliado.TieneDesafio() {
		return ErrCodigoNoSolicitado
	}
	if time.Since(*afiliado.FechaCodigoVerificacion) > VentanaCambio {
		return ErrVentanaDeCambioExpirada
	}

	if password != confirmacion {
		return ErrContrasenasNoCoinciden
	}
	if !EsContrasenaFuerte(password) {
		return ErrContrasenaDebil
	}
	comprometida, err := s.breach.IsCompromised(ctx, password)
	if err != nil {
		log.Printf("[PasswordResetService] Chequeo de brechas no disponible, se asume no comprometida: %v", err)
	} else if comprometida {
		return ErrContrasenaComprometida
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.afiliadoRepo.UpdatePassword(afiliado.ID, passwordHash); err != nil {
		return fmt.Errorf("failed to store new password: %w", err)
	}
	if err := s.otp.Consume(afiliado); err != nil {
		return err
	}

	log.Printf("[PasswordResetService] Contraseña restablecida para afiliado ID=%d", afiliado.ID)
	return nil
}

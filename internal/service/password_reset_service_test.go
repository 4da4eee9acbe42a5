package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yourusername/afiliados-api/internal/domain/entity"
	apperrors "github.com/yourusername/afiliados-api/internal/pkg/errors"
	"github.com/yourusername/afiliados-api/pkg/hash"
)

type resetFixture struct {
	svc     *PasswordResetService
	repo    *MockAfiliadoRepository
	email   *MockEmailService
	breach  *MockBreachChecker
	captcha *MockCaptchaVerifier
}

func createTestPasswordResetService(t *testing.T) *resetFixture {
	t.Helper()
	f := &resetFixture{
		repo:    new(MockAfiliadoRepository),
		email:   new(MockEmailService),
		breach:  new(MockBreachChecker),
		captcha: new(MockCaptchaVerifier),
	}

	hasher := hash.NewBcryptHasher(bcrypt.MinCost)
	otp, err := NewOTPService(f.repo, hasher, "secreto-de-pruebas")
	require.NoError(t, err)

	f.svc, err = NewPasswordResetService(f.repo, otp, f.email, f.breach, f.captcha, hasher, nil, nil)
	require.NoError(t, err)
	return f
}

// afiliadoRegistrado devuelve un afiliado activo con registro completado,
// el único estado desde el que se permite recuperar contraseña.
func afiliadoRegistrado() *entity.Afiliado {
	return &entity.Afiliado{
		ID:                 9,
		Email:              "afiliado@example.com",
		Estado:             entity.EstadoActivo,
		Verificado:         true,
		RegistroCompletado: true,
	}
}

func TestPasswordResetService_VerificarCorreoCaptcha_Success(t *testing.T) {
	f := createTestPasswordResetService(t)
	afiliado := afiliadoRegistrado()

	f.captcha.On("Verify", mock.Anything, "token-captcha").Return(nil)
	f.repo.On("GetByEmail", "afiliado@example.com").Return(afiliado, nil)
	f.repo.On("UpdateCampos", uint(9), mock.Anything).Return(nil)
	f.email.On("Send", mock.Anything, "afiliado@example.com", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	err := f.svc.VerificarCorreoCaptcha(context.Background(), "afiliado@example.com", "token-captcha")
	require.NoError(t, err)

	assert.Regexp(t, codigoRegexp, f.email.UltimoCuerpo)
	assert.True(t, afiliado.TieneDesafio())
	f.captcha.AssertExpectations(t)
}

func TestPasswordResetService_VerificarCorreoCaptcha_CaptchaInvalido(t *testing.T) {
	f := createTestPasswordResetService(t)

	// El captcha es fail-closed: sin captcha válido no se consulta ni el
	// padrón ni se emite código alguno.
	f.captcha.On("Verify", mock.Anything, "token-malo").Return(ErrCaptchaInvalido)

	err := f.svc.VerificarCorreoCaptcha(context.Background(), "afiliado@example.com", "token-malo")
	assert.ErrorIs(t, err, ErrCaptchaInvalido)
	f.repo.AssertNotCalled(t, "GetByEmail", mock.Anything)
}

func TestPasswordResetService_VerificarCorreoCaptcha_CuentaInactiva(t *testing.T) {
	f := createTestPasswordResetService(t)
	afiliado := afiliadoRegistrado()
	afiliado.Estado = entity.EstadoInactivo

	f.captcha.On("Verify", mock.Anything, "token-captcha").Return(nil)
	f.repo.On("GetByEmail", "afiliado@example.com").Return(afiliado, nil)

	err := f.svc.VerificarCorreoCaptcha(context.Background(), "afiliado@example.com", "token-captcha")
	assert.ErrorIs(t, err, ErrCuentaInactiva)
}

func TestPasswordResetService_VerificarCorreoCaptcha_RegistroIncompleto(t *testing.T) {
	f := createTestPasswordResetService(t)
	afiliado := afiliadoRegistrado()
	afiliado.RegistroCompletado = false

	f.captcha.On("Verify", mock.Anything, "token-captcha").Return(nil)
	f.repo.On("GetByEmail", "afiliado@example.com").Return(afiliado, nil)

	err := f.svc.VerificarCorreoCaptcha(context.Background(), "afiliado@example.com", "token-captcha")
	assert.ErrorIs(t, err, ErrRegistroIncompleto)
}

func TestPasswordResetService_ValidarCodigo_NoConsumeElDesafio(t *testing.T) {
	f := createTestPasswordResetService(t)
	afiliado := afiliadoRegistrado()

	f.captcha.On("Verify", mock.Anything, "token-captcha").Return(nil)
	f.repo.On("GetByEmail", "afiliado@example.com").Return(afiliado, nil)
	f.repo.On("UpdateCampos", uint(9), mock.Anything).Return(nil)
	f.email.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, f.svc.VerificarCorreoCaptcha(context.Background(), "afiliado@example.com", "token-captcha"))
	codigo := codigoRegexp.FindString(f.email.UltimoCuerpo)
	require.NotEmpty(t, codigo)

	// Verificar el código no lo gasta: el paso terminal es el cambio de
	// contraseña, y hasta entonces el cliente puede reintentar la pantalla.
	for i := 0; i < 2; i++ {
		err := f.svc.ValidarCodigo(context.Background(), "afiliado@example.com", codigo)
		assert.NoError(t, err)
	}
	assert.True(t, afiliado.TieneDesafio())
}

func TestPasswordResetService_ActualizarContrasena_Success(t *testing.T) {
	f := createTestPasswordResetService(t)
	afiliado := afiliadoRegistrado()

	f.captcha.On("Verify", mock.Anything, "token-captcha").Return(nil)
	f.repo.On("GetByEmail", "afiliado@example.com").Return(afiliado, nil)
	f.repo.On("UpdateCampos", uint(9), mock.Anything).Return(nil)
	f.email.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.breach.On("IsCompromised", mock.Anything, "Nueva#2024").Return(false, nil)
	f.repo.On("UpdatePassword", uint(9), mock.MatchedBy(func(hashGuardado string) bool {
		return bcrypt.CompareHashAndPassword([]byte(hashGuardado), []byte("Nueva#2024")) == nil
	})).Return(nil)

	require.NoError(t, f.svc.VerificarCorreoCaptcha(context.Background(), "afiliado@example.com", "token-captcha"))

	err := f.svc.ActualizarContrasena(context.Background(), "afiliado@example.com", "Nueva#2024", "Nueva#2024")
	require.NoError(t, err)

	// El cambio de contraseña es la operación terminal: borra el desafío.
	assert.False(t, afiliado.TieneDesafio())

	err = f.svc.ActualizarContrasena(context.Background(), "afiliado@example.com", "Nueva#2024", "Nueva#2024")
	assert.ErrorIs(t, err, ErrCodigoNoSolicitado, "el mismo desafío no admite un segundo cambio")
	f.repo.AssertExpectations(t)
}

func TestPasswordResetService_ActualizarContrasena_VentanaExpirada(t *testing.T) {
	f := createTestPasswordResetService(t)
	afiliado := afiliadoRegistrado()
	hashDesafio := "$2a$04$abcdefghijklmnopqrstuv"
	fechaVieja := time.Now().Add(-VentanaCambio - time.Minute)
	afiliado.CodigoVerificacion = &hashDesafio
	afiliado.FechaCodigoVerificacion = &fechaVieja

	f.repo.On("GetByEmail", "afiliado@example.com").Return(afiliado, nil)

	err := f.svc.ActualizarContrasena(context.Background(), "afiliado@example.com", "Nueva#2024", "Nueva#2024")
	assert.ErrorIs(t, err, ErrVentanaDeCambioExpirada)
	f.repo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything)
}

func TestPasswordResetService_ActualizarContrasena_SinDesafio(t *testing.T) {
	f := createTestPasswordResetService(t)
	afiliado := afiliadoRegistrado()

	f.repo.On("GetByEmail", "afiliado@example.com").Return(afiliado, nil)

	err := f.svc.ActualizarContrasena(context.Background(), "afiliado@example.com", "Nueva#2024", "Nueva#2024")
	assert.ErrorIs(t, err, ErrCodigoNoSolicitado)
}

func TestPasswordResetService_ActualizarContrasena_Comprometida(t *testing.T) {
	f := createTestPasswordResetService(t)
	afiliado := afiliadoRegistrado()
	hashDesafio := "$2a$04$abcdefghijklmnopqrstuv"
	fechaReciente := time.Now()
	afiliado.CodigoVerificacion = &hashDesafio
	afiliado.FechaCodigoVerificacion = &fechaReciente

	f.repo.On("GetByEmail", "afiliado@example.com").Return(afiliado, nil)
	f.breach.On("IsCompromised", mock.Anything, "Nueva#2024").Return(true, nil)

	err := f.svc.ActualizarContrasena(context.Background(), "afiliado@example.com", "Nueva#2024", "Nueva#2024")
	assert.ErrorIs(t, err, ErrContrasenaComprometida)
	f.repo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything)
	// El desafío sigue vivo: el afiliado puede reintentar con otra contraseña.
	assert.True(t, afiliado.TieneDesafio())
}

func TestPasswordResetService_ValidarCodigo_UsuarioNoExiste(t *testing.T) {
	f := createTestPasswordResetService(t)
	f.repo.On("GetByEmail", "nadie@example.com").Return(nil, apperrors.ErrNotFound)

	err := f.svc.ValidarCodigo(context.Background(), "nadie@example.com", "123456")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

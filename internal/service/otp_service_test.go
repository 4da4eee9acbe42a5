package service

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yourusername/afiliados-api/internal/domain/entity"
	"github.com/yourusername/afiliados-api/pkg/hash"
)

// createTestOTPService crea un OTPService con un mock de repositorio que
// acepta cualquier escritura de campos. El cost mínimo de bcrypt mantiene
// los tests rápidos.
func createTestOTPService(t *testing.T) (*OTPService, *MockAfiliadoRepository) {
	t.Helper()
	mockRepo := new(MockAfiliadoRepository)
	mockRepo.On("UpdateCampos", mock.Anything, mock.Anything).Return(nil)

	otp, err := NewOTPService(mockRepo, hash.NewBcryptHasher(bcrypt.MinCost), "secreto-de-pruebas")
	require.NoError(t, err)
	return otp, mockRepo
}

func TestOTPService_IssueAndVerify_Ok(t *testing.T) {
	otp, _ := createTestOTPService(t)
	afiliado := &entity.Afiliado{ID: 1, Email: "afiliado@example.com"}

	codigo, err := otp.Issue(afiliado)
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), codigo, "el código debe ser de 6 dígitos")
	assert.True(t, afiliado.TieneDesafio(), "el desafío debe quedar almacenado")
	assert.NotEqual(t, codigo, *afiliado.CodigoVerificacion,
		"el código en claro nunca se persiste")
	assert.Contains(t, *afiliado.CodigoVerificacion, "$2a$",
		"lo almacenado es un hash bcrypt del token firmado")

	resultado, err := otp.Verify(afiliado, codigo, TTLRegistro)
	require.NoError(t, err)
	assert.Equal(t, VerifyOk, resultado)
}

func TestOTPService_Verify_CodigoIncorrecto(t *testing.T) {
	otp, _ := createTestOTPService(t)
	afiliado := &entity.Afiliado{ID: 1, Email: "afiliado@example.com"}

	codigo, err := otp.Issue(afiliado)
	require.NoError(t, err)

	otro := "000000"
	if codigo == otro {
		otro = "000001"
	}

	resultado, err := otp.Verify(afiliado, otro, TTLRegistro)
	require.NoError(t, err)
	assert.Equal(t, VerifyMismatch, resultado)
}

func TestOTPService_Verify_SinDesafio(t *testing.T) {
	otp, _ := createTestOTPService(t)
	afiliado := &entity.Afiliado{ID: 1, Email: "afiliado@example.com"}

	resultado, err := otp.Verify(afiliado, "123456", TTLRegistro)
	require.NoError(t, err)
	assert.Equal(t, VerifyNotFound, resultado)
}

func TestOTPService_Verify_Expiracion(t *testing.T) {
	otp, _ := createTestOTPService(t)
	afiliado := &entity.Afiliado{ID: 1, Email: "afiliado@example.com"}

	codigo, err := otp.Issue(afiliado)
	require.NoError(t, err)

	// Justo dentro del TTL el código sigue siendo válido.
	dentro := time.Now().Add(-TTLRegistro + time.Second)
	afiliado.FechaCodigoVerificacion = &dentro
	resultado, err := otp.Verify(afiliado, codigo, TTLRegistro)
	require.NoError(t, err)
	assert.Equal(t, VerifyOk, resultado, "dentro del TTL debe verificar")

	// Pasado el TTL el resultado es expirado, aunque el código sea correcto.
	fuera := time.Now().Add(-TTLRegistro - time.Second)
	afiliado.FechaCodigoVerificacion = &fuera
	resultado, err = otp.Verify(afiliado, codigo, TTLRegistro)
	require.NoError(t, err)
	assert.Equal(t, VerifyExpired, resultado, "pasado el TTL debe expirar")
}

func TestOTPService_Issue_SobrescribeDesafioAnterior(t *testing.T) {
	otp, _ := createTestOTPService(t)
	afiliado := &entity.Afiliado{ID: 1, Email: "afiliado@example.com"}

	primero, err := otp.Issue(afiliado)
	require.NoError(t, err)

	var segundo string
	for {
		segundo, err = otp.Issue(afiliado)
		require.NoError(t, err)
		if segundo != primero {
			break
		}
	}

	resultado, err := otp.Verify(afiliado, primero, TTLRegistro)
	require.NoError(t, err)
	assert.Equal(t, VerifyMismatch, resultado, "la nueva emisión invalida el código anterior")

	resultado, err = otp.Verify(afiliado, segundo, TTLRegistro)
	require.NoError(t, err)
	assert.Equal(t, VerifyOk, resultado)
}

func TestOTPService_Consume_UnSoloUso(t *testing.T) {
	otp, _ := createTestOTPService(t)
	afiliado := &entity.Afiliado{ID: 1, Email: "afiliado@example.com"}

	codigo, err := otp.Issue(afiliado)
	require.NoError(t, err)

	require.NoError(t, otp.Consume(afiliado))
	assert.False(t, afiliado.TieneDesafio(), "consumir borra el desafío")

	resultado, err := otp.Verify(afiliado, codigo, TTLRegistro)
	require.NoError(t, err)
	assert.Equal(t, VerifyNotFound, resultado, "un código consumido no vuelve a servir")
}

func TestOTPService_Verify_NoConsume(t *testing.T) {
	otp, _ := createTestOTPService(t)
	afiliado := &entity.Afiliado{ID: 1, Email: "afiliado@example.com"}

	codigo, err := otp.Issue(afiliado)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		resultado, err := otp.Verify(afiliado, codigo, TTLRegistro)
		require.NoError(t, err)
		assert.Equal(t, VerifyOk, resultado, "Verify no consume el desafío")
	}
}

func TestOTPService_TokenFirmadoSuperaLimiteDeBcrypt(t *testing.T) {
	otp, _ := createTestOTPService(t)
	afiliado := &entity.Afiliado{ID: 1, Email: "afiliado@example.com"}

	codigo, err := otp.Issue(afiliado)
	require.NoError(t, err, "la emisión no puede depender de la longitud del token")

	// El token compacto supera los 72 bytes que bcrypt acepta como entrada;
	// por eso lo que se hashea es su digesto de longitud fija.
	token, err := otp.signCode(codigo)
	require.NoError(t, err)
	assert.Greater(t, len(token), 72)

	_, err = bcrypt.GenerateFromPassword([]byte(token), bcrypt.MinCost)
	assert.Error(t, err, "bcrypt rechaza el token sin digerir")

	challenge, err := otp.deriveChallenge(codigo)
	require.NoError(t, err)
	assert.Len(t, challenge, 64, "el digesto hex SHA-256 tiene longitud fija")

	resultado, err := otp.Verify(afiliado, codigo, TTLRegistro)
	require.NoError(t, err)
	assert.Equal(t, VerifyOk, resultado)
}

func TestNewOTPService_RequiereSecreto(t *testing.T) {
	mockRepo := new(MockAfiliadoRepository)
	_, err := NewOTPService(mockRepo, hash.NewBcryptHasher(bcrypt.MinCost), "")
	assert.Error(t, err)
}

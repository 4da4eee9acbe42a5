package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/yourusername/afiliados-api/internal/domain/entity"
)

// ============================================================================
// Mocks compartidos por los tests de los servicios
// ============================================================================

// MockAfiliadoRepository implementa repository.AfiliadoRepository
type MockAfiliadoRepository struct {
	mock.Mock
}

func (m *MockAfiliadoRepository) Create(afiliado *entity.Afiliado) error {
	args := m.Called(afiliado)
	return args.Error(0)
}

func (m *MockAfiliadoRepository) GetByID(id uint) (*entity.Afiliado, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Afiliado), args.Error(1)
}

func (m *MockAfiliadoRepository) GetByEmail(email string) (*entity.Afiliado, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Afiliado), args.Error(1)
}

func (m *MockAfiliadoRepository) GetByEmailYFechaNacimiento(email string, fechaNacimiento time.Time) (*entity.Afiliado, error) {
	args := m.Called(email, fechaNacimiento)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Afiliado), args.Error(1)
}

func (m *MockAfiliadoRepository) UpdateCampos(id uint, campos map[string]interface{}) error {
	args := m.Called(id, campos)
	return args.Error(0)
}

func (m *MockAfiliadoRepository) UpdatePassword(id uint, passwordHash string) error {
	args := m.Called(id, passwordHash)
	return args.Error(0)
}

// MockCatalogoRepository implementa repository.CatalogoRepository
type MockCatalogoRepository struct {
	mock.Mock
}

func (m *MockCatalogoRepository) ListUniversidades() ([]entity.Universidad, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Universidad), args.Error(1)
}

func (m *MockCatalogoRepository) ListCargos() ([]entity.Cargo, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Cargo), args.Error(1)
}

func (m *MockCatalogoRepository) ListProgramas() ([]entity.Programa, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Programa), args.Error(1)
}

func (m *MockCatalogoRepository) ExisteUniversidad(id uint) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogoRepository) ExisteCargo(id uint) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogoRepository) ExistePrograma(id uint) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

// MockContactoRepository implementa repository.ContactoRepository
type MockContactoRepository struct {
	mock.Mock
}

func (m *MockContactoRepository) Create(contacto *entity.Contacto) error {
	args := m.Called(contacto)
	return args.Error(0)
}

func (m *MockContactoRepository) GetByID(id uint) (*entity.Contacto, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Contacto), args.Error(1)
}

func (m *MockContactoRepository) List(limit, offset int) ([]entity.Contacto, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Contacto), args.Error(1)
}

func (m *MockContactoRepository) MarcarRespondido(id uint, respuesta string) error {
	args := m.Called(id, respuesta)
	return args.Error(0)
}

// MockCacheRepository implementa repository.CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Increment(key string) (int64, error) {
	args := m.Called(key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCacheRepository) SetNX(key string, value interface{}, expiration time.Duration) (bool, error) {
	args := m.Called(key, value, expiration)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) Expire(key string, expiration time.Duration) error {
	args := m.Called(key, expiration)
	return args.Error(0)
}

func (m *MockCacheRepository) TTL(key string) (time.Duration, error) {
	args := m.Called(key)
	return args.Get(0).(time.Duration), args.Error(1)
}

// MockEmailService implementa EmailService y guarda el último cuerpo enviado
// para que los tests puedan extraer el código emitido.
type MockEmailService struct {
	mock.Mock
	UltimoCuerpo  string
	UltimoDestino string
}

func (m *MockEmailService) Send(ctx context.Context, toEmail, subject, htmlBody, idempotencyKey string) error {
	m.UltimoCuerpo = htmlBody
	m.UltimoDestino = toEmail
	args := m.Called(ctx, toEmail, subject, htmlBody, idempotencyKey)
	return args.Error(0)
}

// MockBreachChecker implementa BreachChecker
type MockBreachChecker struct {
	mock.Mock
}

func (m *MockBreachChecker) IsCompromised(ctx context.Context, password string) (bool, error) {
	args := m.Called(ctx, password)
	return args.Bool(0), args.Error(1)
}

// MockCaptchaVerifier implementa CaptchaVerifier
type MockCaptchaVerifier struct {
	mock.Mock
}

func (m *MockCaptchaVerifier) Verify(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

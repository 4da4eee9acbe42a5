package service

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/rand"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/yourusername/afiliados-api/internal/domain/entity"
	"github.com/yourusername/afiliados-api/internal/domain/repository"
	"github.com/yourusername/afiliados-api/pkg/hash"
)

// VerifyResult is the outcome of an OTP verification attempt.
type VerifyResult int

const (
	// VerifyOk means the submitted code matches the live challenge.
	VerifyOk VerifyResult = iota
	// VerifyExpired means a challenge exists but its TTL has elapsed.
	VerifyExpired
	// VerifyMismatch means the challenge is live but the code is wrong.
	VerifyMismatch
	// VerifyNotFound means the affiliate has no stored challenge.
	VerifyNotFound
)

func (r VerifyResult) String() string {
	switch r {
	case VerifyOk:
		return "ok"
	case VerifyExpired:
		return "expired"
	case VerifyMismatch:
		return "mismatch"
	case VerifyNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// OTPService issues and verifies the 6-digit one-time codes used by the
// registration and password-reset flows.
//
// A code never touches the database in plaintext. The code is wrapped in a
// signed token (HS256 over a single claim) so the stored comparison value
// depends on the server secret, then the token's SHA-256 digest is
// bcrypt-hashed. The digest step keeps the bcrypt input at a fixed 64 hex
// characters: bcrypt reads at most 72 bytes and the compact token is longer
// than that. Reading the afiliados table alone yields nothing usable; an
// attacker would also need the signing secret to rebuild a comparable value.
//
// The 6-digit draw uses math/rand, not crypto/rand. This mirrors the original
// system: the signed-token wrapping raises the bar, but it makes the signing
// secret load-bearing. Keep OTP_SECRET long and rotate it like a credential.
type OTPService struct {
	afiliadoRepo repository.AfiliadoRepository
	hasher       hash.Hasher
	secret       []byte
}

// NewOTPService construye el motor de códigos de verificación.
func NewOTPService(afiliadoRepo repository.AfiliadoRepository, hasher hash.Hasher, secret string) (*OTPService, error) {
	if afiliadoRepo == nil {
		return nil, fmt.Errorf("afiliado repository is required")
	}
	if hasher == nil {
		return nil, fmt.Errorf("hasher is required")
	}
	if secret == "" {
		return nil, fmt.Errorf("otp signing secret is required")
	}
	return &OTPService{
		afiliadoRepo: afiliadoRepo,
		hasher:       hasher,
		secret:       []byte(secret),
	}, nil
}

// Issue draws a fresh code, stores its hashed signed form on the affiliate row
// (replacing any previous challenge) and returns the plaintext code for
// delivery. The code itself is never persisted.
func (s *OTPService) Issue(afiliado *entity.Afiliado) (string, error) {
	code := fmt.Sprintf("%06d", 100000+rand.Intn(900000))

	challenge, err := s.deriveChallenge(code)
	if err != nil {
		return "", err
	}

	hashed, err := s.hasher.Hash(challenge)
	if err != nil {
		return "", fmt.Errorf("failed to hash verification token: %w", err)
	}

	now := time.Now()
	if err := s.afiliadoRepo.UpdateCampos(afiliado.ID, map[string]interface{}{
		"codigo_verificacion":       hashed,
		"fecha_codigo_verificacion": now,
	}); err != nil {
		return "", fmt.Errorf("failed to store verification challenge: %w", err)
	}

	// Reflejamos el desafío en la copia en memoria para que el llamador no
	// tenga que releer la fila.
	afiliado.CodigoVerificacion = &hashed
	afiliado.FechaCodigoVerificacion = &now

	return code, nil
}

// Verify checks a submitted code against the affiliate's stored challenge.
// A challenge older than ttl is Expired; exactly ttl old still verifies
// (strict > comparison). Verify never consumes the challenge — clearing it is
// the caller's responsibility.
func (s *OTPService) Verify(afiliado *entity.Afiliado, code string, ttl time.Duration) (VerifyResult, error) {
	if !afiliado.TieneDesafio() {
		return VerifyNotFound, nil
	}

	if time.Since(*afiliado.FechaCodigoVerificacion) > ttl {
		return VerifyExpired, nil
	}

	challenge, err := s.deriveChallenge(code)
	if err != nil {
		return VerifyMismatch, err
	}

	if !s.hasher.Verify(challenge, *afiliado.CodigoVerificacion) {
		return VerifyMismatch, nil
	}
	return VerifyOk, nil
}

// Consume borra el desafío almacenado para que el código no pueda
// reutilizarse (un solo uso).
func (s *OTPService) Consume(afiliado *entity.Afiliado) error {
	if err := s.afiliadoRepo.UpdateCampos(afiliado.ID, map[string]interface{}{
		"codigo_verificacion":       nil,
		"fecha_codigo_verificacion": nil,
	}); err != nil {
		return fmt.Errorf("failed to clear verification challenge: %w", err)
	}
	afiliado.CodigoVerificacion = nil
	afiliado.FechaCodigoVerificacion = nil
	return nil
}

// signCode builds the deterministic signed form of a code. The token carries
// only the code claim so the same code always produces the same token and
// verification reduces to comparing independently derived values.
func (s *OTPService) signCode(code string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"codigo": code,
	})
	return token.SignedString(s.secret)
}

// deriveChallenge reduces the signed token to the fixed-length value handed
// to bcrypt. bcrypt rejects inputs over 72 bytes and the compact token
// exceeds that, so what gets hashed is the hex SHA-256 of the token.
func (s *OTPService) deriveChallenge(code string) (string, error) {
	token, err := s.signCode(code)
	if err != nil {
		return "", fmt.Errorf("failed to sign verification code: %w", err)
	}
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:]), nil
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultCaptchaVerifyURL es el endpoint de verificación de reCAPTCHA.
const DefaultCaptchaVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

// CaptchaVerifier valida tokens de reCAPTCHA contra el verificador remoto.
type CaptchaVerifier interface {
	// Verify devuelve nil si el token es válido. A diferencia del chequeo de
	// brechas, un fallo de red aquí bloquea la operación (fail-closed): el
	// captcha protege la emisión de códigos y no puede asumirse superado.
	Verify(ctx context.Context, token string) error
}

// RecaptchaVerifier implementa CaptchaVerifier con la API siteverify de Google.
type RecaptchaVerifier struct {
	secret    string
	verifyURL string
	client    *http.Client
}

// NewRecaptchaVerifier crea el verificador. Con verifyURL vacío se usa el
// endpoint público de Google.
func NewRecaptchaVerifier(secret, verifyURL string, timeout time.Duration) (*RecaptchaVerifier, error) {
	if secret == "" {
		return nil, fmt.Errorf("captcha secret is required")
	}
	if verifyURL == "" {
		verifyURL = DefaultCaptchaVerifyURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &RecaptchaVerifier{
		secret:    secret,
		verifyURL: verifyURL,
		client:    &http.Client{Timeout: timeout},
	}, nil
}

type recaptchaResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify envía secret+token al verificador y exige success=true.
func (v *RecaptchaVerifier) Verify(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return ErrCaptchaInvalido
	}

	form := url.Values{}
	form.Set("secret", v.secret)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build captcha request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("captcha verifier unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("captcha verifier returned status %d", resp.StatusCode)
	}

	var body recaptchaResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("failed to decode captcha response: %w", err)
	}

	if !body.Success {
		return ErrCaptchaInvalido
	}
	return nil
}

package service

import (
	"bufio"
	"context"
	"crypto/sha1"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DefaultBreachAPIURL is the Pwned Passwords k-anonymity range endpoint.
const DefaultBreachAPIURL = "https://api.pwnedpasswords.com/range"

// BreachChecker reports whether a password appears in known breach corpora.
type BreachChecker interface {
	// IsCompromised returns (true, nil) when the password is known-breached
	// and (false, nil) when it is not. A non-nil error means the service
	// could not be reached; callers are expected to fail open, but the error
	// lets them log "unreachable, assumed safe" instead of conflating it
	// with a clean result.
	IsCompromised(ctx context.Context, password string) (bool, error)
}

// PwnedPasswordChecker consulta la API de rangos de Pwned Passwords.
// Nunca envía la contraseña ni su hash completo: sólo los 5 primeros
// caracteres hex del SHA-1 viajan por la red (consulta k-anónima).
type PwnedPasswordChecker struct {
	baseURL string
	client  *http.Client
}

// NewPwnedPasswordChecker crea el cliente. Con baseURL vacío se usa la API pública.
func NewPwnedPasswordChecker(baseURL string, timeout time.Duration) *PwnedPasswordChecker {
	if baseURL == "" {
		baseURL = DefaultBreachAPIURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &PwnedPasswordChecker{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// IsCompromised calcula el SHA-1 de la contraseña, consulta el rango por el
// prefijo de 5 caracteres y busca el sufijo en la respuesta (líneas
// SUFIJO:CONTADOR). Comparación de sufijos sin distinguir mayúsculas.
func (c *PwnedPasswordChecker) IsCompromised(ctx context.Context, password string) (bool, error) {
	sum := sha1.Sum([]byte(password))
	digest := strings.ToUpper(fmt.Sprintf("%x", sum))
	prefix, suffix := digest[:5], digest[5:]

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+prefix, nil)
	if err != nil {
		return false, fmt.Errorf("failed to build breach API request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("breach API unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("breach API returned status %d", resp.StatusCode)
	}

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		candidate, countStr, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		if !strings.EqualFold(candidate, suffix) {
			continue
		}
		count, convErr := strconv.Atoi(strings.TrimSpace(countStr))
		if convErr != nil {
			continue
		}
		// Un contador a cero significa "eliminado del corpus": no cuenta
		// como comprometida.
		return count > 0, nil
	}
	if err := scanner.Err(); err != nil {
		return false, fmt.Errorf("failed to read breach API response: %w", err)
	}

	return false, nil
}

package hash

import "golang.org/x/crypto/bcrypt"

// Hasher define el contrato de hashing unidireccional usado para contraseñas
// y para los tokens firmados de los códigos de verificación.
type Hasher interface {
	Hash(secret string) (string, error)
	Verify(secret, hashed string) bool
}

// BcryptHasher implementa Hasher con bcrypt y sal aleatoria por llamada.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher crea un hasher con el cost indicado. Con cost <= 0 se usa
// el valor por defecto de bcrypt.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash genera el hash bcrypt del secreto.
func (h *BcryptHasher) Hash(secret string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify comprueba si el secreto corresponde al hash. Un secreto incorrecto
// devuelve false, nunca error.
func (h *BcryptHasher) Verify(secret, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(secret)) == nil
}

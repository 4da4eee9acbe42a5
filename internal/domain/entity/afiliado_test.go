package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizaEmail(t *testing.T) {
	casos := []struct {
		entrada  string
		esperado string
	}{
		{"Afiliado@Example.COM", "afiliado@example.com"},
		{"  afiliado@example.com  ", "afiliado@example.com"},
		{"afiliado@example.com", "afiliado@example.com"},
		{"", ""},
	}
	for _, c := range casos {
		assert.Equal(t, c.esperado, NormalizaEmail(c.entrada))
	}
}

func TestAfiliado_TieneDesafio(t *testing.T) {
	hash := "$2a$10$abcdefghijklmnopqrstuv"
	ahora := time.Now()

	a := &Afiliado{}
	assert.False(t, a.TieneDesafio(), "sin desafío almacenado")

	a.CodigoVerificacion = &hash
	assert.False(t, a.TieneDesafio(), "hash sin fecha no cuenta como desafío")

	a.FechaCodigoVerificacion = &ahora
	assert.True(t, a.TieneDesafio())

	a.CodigoVerificacion = nil
	assert.False(t, a.TieneDesafio(), "fecha sin hash tampoco")
}

func TestAfiliado_EstaActivo(t *testing.T) {
	a := &Afiliado{Estado: EstadoActivo}
	assert.True(t, a.EstaActivo())

	a.Estado = EstadoInactivo
	assert.False(t, a.EstaActivo())
}

func TestContacto_EstaRespondido(t *testing.T) {
	c := &Contacto{Estado: ContactoPendiente}
	assert.False(t, c.EstaRespondido())

	respuesta := "respondido desde el portal"
	c.Respuesta = &respuesta
	assert.True(t, c.EstaRespondido())
}

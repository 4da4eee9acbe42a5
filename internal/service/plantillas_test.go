package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	out := Render("Hola {{nombre}}, tu código es {{codigo}}", map[string]string{
		"nombre": "María",
		"codigo": "123456",
	})
	assert.Equal(t, "Hola María, tu código es 123456", out)
}

func TestRender_MarcadorSinValor(t *testing.T) {
	out := Render("código: {{codigo}}", map[string]string{"otro": "x"})
	assert.Equal(t, "código: {{codigo}}", out, "los marcadores sin valor se dejan tal cual")
}

func TestCargarPlantillas_PorDefecto(t *testing.T) {
	p := CargarPlantillas("")
	assert.Contains(t, p.Registro, "{{codigo}}")
	assert.Contains(t, p.Recuperacion, "{{codigo}}")
	assert.Contains(t, p.ContactoAcuse, "{{folio}}")
	assert.Contains(t, p.ContactoRespuesta, "{{respuesta}}")
}

func TestCargarPlantillas_SobreescribePorArchivo(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "registro.html"), []byte("personalizada {{codigo}}"), 0o644))

	p := CargarPlantillas(dir)
	assert.Equal(t, "personalizada {{codigo}}", p.Registro)
	// Las demás conservan el texto por defecto.
	assert.Contains(t, p.Recuperacion, "Recibimos una solicitud")
}

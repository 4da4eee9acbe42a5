package service

import (
	"fmt"
	"os"
	"strings"
)

// Plantillas HTML de los correos. El texto real vive como recurso externo y
// puede sobreescribirse por archivo; los marcadores {{clave}} se sustituyen
// antes de llamar al notificador.
const (
	plantillaRegistroDefecto = `<p>Hola,</p>
<p>Tu código de verificación para completar el registro en el portal de afiliados es:</p>
<p style="font-size:24px"><strong>{{codigo}}</strong></p>
<p>El código caduca en 10 minutos. Si no solicitaste este registro, ignora este mensaje.</p>`

	plantillaRecuperacionDefecto = `<p>Hola,</p>
<p>Recibimos una solicitud para restablecer tu contraseña. Tu código de verificación es:</p>
<p style="font-size:24px"><strong>{{codigo}}</strong></p>
<p>El código caduca en 10 minutos. Si no fuiste tú, ignora este mensaje y tu contraseña seguirá siendo la misma.</p>`

	plantillaContactoAcuseDefecto = `<p>Hola {{nombre}},</p>
<p>Hemos recibido tu consulta con folio <strong>{{folio}}</strong>:</p>
<blockquote>{{mensaje}}</blockquote>
<p>Te responderemos a este mismo correo.</p>`

	plantillaContactoRespuestaDefecto = `<p>Hola {{nombre}},</p>
<p>Sobre tu consulta <strong>{{asunto}}</strong> (folio {{folio}}):</p>
<blockquote>{{respuesta}}</blockquote>`
)

// Plantillas agrupa las plantillas cargadas con las que trabaja la aplicación.
type Plantillas struct {
	Registro          string
	Recuperacion      string
	ContactoAcuse     string
	ContactoRespuesta string
}

// CargarPlantillas devuelve las plantillas por defecto, sustituyendo cada una
// por el contenido del archivo correspondiente dentro de dir si existe.
func CargarPlantillas(dir string) *Plantillas {
	p := &Plantillas{
		Registro:          plantillaRegistroDefecto,
		Recuperacion:      plantillaRecuperacionDefecto,
		ContactoAcuse:     plantillaContactoAcuseDefecto,
		ContactoRespuesta: plantillaContactoRespuestaDefecto,
	}
	if dir == "" {
		return p
	}

	carga := func(nombre string, destino *string) {
		data, err := os.ReadFile(dir + "/" + nombre)
		if err != nil {
			return // el archivo es opcional, se conserva el texto por defecto
		}
		*destino = string(data)
	}
	carga("registro.html", &p.Registro)
	carga("recuperacion.html", &p.Recuperacion)
	carga("contacto_acuse.html", &p.ContactoAcuse)
	carga("contacto_respuesta.html", &p.ContactoRespuesta)
	return p
}

// Render sustituye los marcadores {{clave}} de la plantilla por los valores dados.
func Render(plantilla string, valores map[string]string) string {
	out := plantilla
	for clave, valor := range valores {
		out = strings.ReplaceAll(out, fmt.Sprintf("{{%s}}", clave), valor)
	}
	return out
}

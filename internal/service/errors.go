package service

import "errors"

// Errores específicos de los flujos de registro y recuperación. Los handlers
// los usan para mapear a códigos HTTP y mensajes estables.
var (
	ErrUsuarioYaRegistrado     = errors.New("usuario_ya_registrado")
	ErrCodigoIncorrecto        = errors.New("codigo_incorrecto")
	ErrCodigoExpirado          = errors.New("codigo_expirado")
	ErrCodigoNoSolicitado      = errors.New("codigo_no_solicitado")
	ErrCuentaInactiva          = errors.New("cuenta_inactiva")
	ErrRegistroIncompleto      = errors.New("registro_incompleto")
	ErrCaptchaInvalido         = errors.New("captcha_invalido")
	ErrContrasenaComprometida  = errors.New("contrasena_comprometida")
	ErrContrasenaDebil         = errors.New("contrasena_debil")
	ErrContrasenasNoCoinciden  = errors.New("contrasenas_no_coinciden")
	ErrVentanaDeCambioExpirada = errors.New("ventana_de_cambio_expirada")
	ErrReenvioEnEnfriamiento   = errors.New("reenvio_en_enfriamiento")
	ErrConsultaYaRespondida    = errors.New("consulta_ya_respondida")
)

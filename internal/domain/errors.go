package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidIdentifier = errors.New("identificador inválido")
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrValidation        = errors.New("entrada inválida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInternal          = errors.New("error interno")
	ErrUsernameTaken     = errors.New("el usuario ya está registrado")
)

// Internal marca un fallo de almacenamiento como ErrInternal conservando la causa para los logs.
func Internal(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrInternal) {
		return err
	}
	return errors.Join(ErrInternal, err)
}

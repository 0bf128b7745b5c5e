package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInvalidRange      = errors.New("rango de fechas inválido: la fecha inicial es posterior a la final")
	ErrInvalidMovement   = errors.New("movimiento inválido: tipo desconocido o cantidad no positiva")
	ErrInactiveReference = errors.New("unidad o grupo no encontrado o inactivo")
)

package entity

import "time"

// Role es el rol de un usuario. Conjunto cerrado: ver access.Can.
type Role string

// Roles válidos para User.
const (
	RoleAdmin    Role = "admin"
	RoleOperador Role = "operador"
	RoleConsulta Role = "consulta"
)

// Valid informa si r es un rol conocido.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOperador, RoleConsulta:
		return true
	}
	return false
}

// User representa un usuario del sistema.
type User struct {
	ID           string
	Username     string // único
	FullName     string
	PasswordHash string // bcrypt hash
	Role         Role
	Active       bool
	LastAccess   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

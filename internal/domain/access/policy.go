// Package access define el control de acceso por rol como una tabla estática
// {rol × módulo × acción}. No consulta la base de datos.
package access

import "github.com/jhoicas/almacen-kardex/internal/domain/entity"

// Module área funcional protegida.
type Module string

// Módulos de la aplicación.
const (
	ModuleProducts  Module = "productos"
	ModuleMovements Module = "movimientos"
	ModuleReports   Module = "reportes"
	ModuleUsers     Module = "usuarios"
	ModuleSettings  Module = "configuracion"
)

// Action tipo de operación sobre un módulo.
type Action string

// Acciones posibles.
const (
	ActionRead  Action = "read"
	ActionWrite Action = "write"
)

type grant struct {
	read, write bool
}

var readOnly = grant{read: true}
var readWrite = grant{read: true, write: true}

// policy admin no aparece: tiene acceso total.
var policy = map[entity.Role]map[Module]grant{
	entity.RoleOperador: {
		ModuleProducts:  readWrite,
		ModuleMovements: readWrite,
		ModuleReports:   readOnly,
	},
	entity.RoleConsulta: {
		ModuleProducts: readOnly,
		ModuleReports:  readOnly,
	},
}

// Can informa si el rol puede ejecutar la acción sobre el módulo.
// Roles desconocidos no tienen acceso a nada.
func Can(role entity.Role, module Module, action Action) bool {
	if role == entity.RoleAdmin {
		return true
	}
	g, ok := policy[role][module]
	if !ok {
		return false
	}
	switch action {
	case ActionRead:
		return g.read
	case ActionWrite:
		return g.write
	}
	return false
}

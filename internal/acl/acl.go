// Package acl models what a role may do: which modules it can open
// (permisos) and which actions it may run inside each one (privilegios).
package acl

import (
	"encoding/json"
	"net/http"
	"slices"
	"sort"
)

// Actions a role can be granted inside a module.
const (
	Ver      = "ver"
	Crear    = "crear"
	Editar   = "editar"
	Eliminar = "eliminar"
)

var Actions = []string{Ver, Crear, Editar, Eliminar}

// Modules are the guarded areas of the application, named after their routes.
var Modules = []string{
	"roles", "usuarios", "vehiculos", "marcas", "tipovehiculos",
	"categoriaservicios", "servicios", "metodospago", "proveedores",
	"productos", "agendacitas", "evaluaciones", "pedidos", "cotizaciones",
}

// ACL is a role's access list.
type ACL struct {
	Permisos    map[string]bool     `json:"permisos"`
	Privilegios map[string][]string `json:"privilegios"`
}

// Empty returns an ACL that grants nothing.
func Empty() ACL {
	return ACL{Permisos: map[string]bool{}, Privilegios: map[string][]string{}}
}

// Full grants every action on every module.
func Full() ACL {
	a := Empty()
	for _, m := range Modules {
		a.Permisos[m] = true
		a.Privilegios[m] = slices.Clone(Actions)
	}
	return a
}

// CanUse reports whether the module is enabled at all.
func (a ACL) CanUse(module string) bool {
	return a.Permisos[module]
}

// Can reports whether action is allowed on module. A module that is not
// enabled allows nothing, whatever its privilege list says.
func (a ACL) Can(module, action string) bool {
	if !a.CanUse(module) {
		return false
	}
	return slices.Contains(a.Privilegios[module], action)
}

// Sanitize drops unknown modules and actions and sorts what remains, so
// stored lists are stable.
func (a ACL) Sanitize() ACL {
	out := Empty()
	for _, m := range Modules {
		if a.Permisos[m] {
			out.Permisos[m] = true
		}
		var acts []string
		for _, act := range a.Privilegios[m] {
			if slices.Contains(Actions, act) && !slices.Contains(acts, act) {
				acts = append(acts, act)
			}
		}
		if len(acts) > 0 {
			sort.Strings(acts)
			out.Privilegios[m] = acts
		}
	}
	return out
}

// Parse decodes a stored ACL. Malformed or missing input yields Empty.
func Parse(data []byte) ACL {
	var a ACL
	if len(data) == 0 || json.Unmarshal(data, &a) != nil {
		return Empty()
	}
	if a.Permisos == nil {
		a.Permisos = map[string]bool{}
	}
	if a.Privilegios == nil {
		a.Privilegios = map[string][]string{}
	}
	return a
}

// Encode is the inverse of Parse.
func (a ACL) Encode() ([]byte, error) {
	return json.Marshal(a)
}

// ActionFor maps an HTTP method to the action it requires.
func ActionFor(method string) string {
	switch method {
	case http.MethodPost:
		return Crear
	case http.MethodPut, http.MethodPatch:
		return Editar
	case http.MethodDelete:
		return Eliminar
	default:
		return Ver
	}
}

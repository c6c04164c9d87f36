package dto

import "tunik/internal/model"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Email      string `json:"email"      validate:"required,email"`
	Contrasena string `json:"contrasena" validate:"required"`
}

// RegisterRequest is the public sign-up form. The role is always Cliente.
type RegisterRequest struct {
	Cedula     string `json:"cedula"     validate:"required,max=20"`
	Nombre     string `json:"nombre"     validate:"required,max=100"`
	Telefono   string `json:"telefono"   validate:"omitempty,max=30"`
	Email      string `json:"email"      validate:"required,email"`
	Contrasena string `json:"contrasena" validate:"required,min=6"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// ACLResponse is the wire form of a role's access list.
type ACLResponse struct {
	Permisos    map[string]bool     `json:"permisos"`
	Privilegios map[string][]string `json:"privilegios"`
}

type LoginResponse struct {
	Ok      bool          `json:"ok"`
	Usuario model.Usuario `json:"usuario"`
	Token   string        `json:"token"`
	ACL     ACLResponse   `json:"acl"`
}

// ACLOption describes one module and the actions it supports, for the role editor.
type ACLOption struct {
	Modulo   string   `json:"modulo"`
	Acciones []string `json:"acciones"`
}

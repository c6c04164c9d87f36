package dto

// RolRequest is the body of POST/PUT /roles.
type RolRequest struct {
	Descripcion string `json:"descripcion" validate:"required,max=60"`
}

// UsuarioRequest is the body of POST/PUT /usuarios.
// Contrasena is mandatory on create and optional on update.
type UsuarioRequest struct {
	Cedula     string `json:"cedula"     validate:"required,max=20"`
	Nombre     string `json:"nombre"     validate:"required,max=100"`
	Telefono   string `json:"telefono"   validate:"omitempty,max=30"`
	Email      string `json:"email"      validate:"required,email"`
	Contrasena string `json:"contrasena" validate:"omitempty,min=6"`
	IDRoles    int    `json:"idroles"    validate:"required,min=1"`
}

// ACLRequest is the body of PUT /roles/:id/acl.
type ACLRequest struct {
	Permisos    map[string]bool     `json:"permisos"`
	Privilegios map[string][]string `json:"privilegios"`
}

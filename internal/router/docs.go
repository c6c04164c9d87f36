package router

import "github.com/swaggo/swag"

// apiDoc is the Swagger 2.0 document served at /swagger/doc.json. Every
// entity under /api shares the same five CRUD routes, so they are described
// once through the {entidad} parameter.
const apiDoc = `{
  "swagger": "2.0",
  "info": {
    "title": "Tunik API",
    "description": "Backend del taller de detailing: catálogo, clientes, pedidos, cotizaciones y agenda.",
    "version": "1.0"
  },
  "basePath": "/api",
  "securityDefinitions": {
    "Bearer": {"type": "apiKey", "name": "Authorization", "in": "header"}
  },
  "paths": {
    "/health": {"get": {"summary": "Estado de la base de datos, Redis y SMTP", "responses": {"200": {"description": "ok"}, "503": {"description": "degradado"}}}},
    "/public/servicios": {"get": {"summary": "Catálogo público de servicios", "responses": {"200": {"description": "ok"}}}},
    "/auth/login": {"post": {"summary": "Inicia sesión con email y contraseña", "responses": {"200": {"description": "ok"}, "401": {"description": "Contraseña incorrecta"}, "404": {"description": "Usuario no encontrado"}}}},
    "/auth/register": {"post": {"summary": "Registro público, siempre con rol Cliente", "responses": {"201": {"description": "creado"}, "409": {"description": "email en uso"}}}},
    "/auth/me": {"get": {"summary": "Usuario y ACL de la sesión", "security": [{"Bearer": []}], "responses": {"200": {"description": "ok"}}}},
    "/{entidad}": {
      "parameters": [{"name": "entidad", "in": "path", "required": true, "type": "string",
        "enum": ["roles", "usuarios", "marcas", "tipovehiculos", "vehiculos", "categoriaservicios", "servicios", "metodospago", "proveedores", "productos", "pedidos", "cotizaciones", "agendacitas", "evaluaciones"]}],
      "get": {"summary": "Lista con q, filtros exactos, page y limit", "security": [{"Bearer": []}], "responses": {"200": {"description": "ok"}}},
      "post": {"summary": "Crea un registro", "security": [{"Bearer": []}], "responses": {"201": {"description": "creado"}, "400": {"description": "validación"}, "409": {"description": "duplicado"}}}
    },
    "/{entidad}/{id}": {
      "parameters": [
        {"name": "entidad", "in": "path", "required": true, "type": "string"},
        {"name": "id", "in": "path", "required": true, "type": "string"}
      ],
      "get": {"summary": "Obtiene un registro", "security": [{"Bearer": []}], "responses": {"200": {"description": "ok"}, "404": {"description": "no encontrado"}}},
      "put": {"summary": "Actualiza un registro", "security": [{"Bearer": []}], "responses": {"200": {"description": "ok"}, "400": {"description": "validación"}}},
      "delete": {"summary": "Elimina un registro", "security": [{"Bearer": []}], "responses": {"200": {"description": "ok"}, "409": {"description": "en uso"}}}
    },
    "/pedidos/export": {"get": {"summary": "Pedidos en XLSX", "security": [{"Bearer": []}], "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"], "responses": {"200": {"description": "ok"}}}},
    "/cotizaciones/{id}/pdf": {"get": {"summary": "Cotización en PDF", "security": [{"Bearer": []}], "produces": ["application/pdf"], "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "responses": {"200": {"description": "ok"}}}},
    "/cotizaciones/{id}/enviar": {"post": {"summary": "Encola el envío por email", "security": [{"Bearer": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "responses": {"202": {"description": "encolado"}, "503": {"description": "cola deshabilitada"}}}}
  }
}`

func init() {
	swag.Register(swag.Name, &swag.Spec{
		InfoInstanceName: swag.Name,
		SwaggerTemplate:  apiDoc,
	})
}

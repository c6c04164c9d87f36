package service

import (
	"errors"

	"gorm.io/gorm"
)

// Kind classifies a service error; handlers map it to an HTTP status.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindUnavailable
)

// Error is a failure the client is allowed to see. Anything that is not an
// *Error is treated as internal.
type Error struct {
	Kind   Kind
	Msg    string
	Fields map[string]string
}

func (e *Error) Error() string { return e.Msg }

func Validation(msg string) *Error   { return &Error{Kind: KindValidation, Msg: msg} }
func Unauthorized(msg string) *Error { return &Error{Kind: KindUnauthorized, Msg: msg} }
func Forbidden(msg string) *Error    { return &Error{Kind: KindForbidden, Msg: msg} }
func NotFound(msg string) *Error     { return &Error{Kind: KindNotFound, Msg: msg} }
func Conflict(msg string) *Error     { return &Error{Kind: KindConflict, Msg: msg} }
func Unavailable(msg string) *Error  { return &Error{Kind: KindUnavailable, Msg: msg} }

// FieldError is a validation error tied to one body field.
func FieldError(field, msg string) *Error {
	return &Error{Kind: KindValidation, Msg: msg, Fields: map[string]string{field: msg}}
}

// AsError unwraps err into an *Error when it is one.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsKind reports whether err is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	e, ok := AsError(err)
	return ok && e.Kind == k
}

// Messages used by translateWrite / translateDelete.
const (
	msgInUse       = "No se puede eliminar: el registro está en uso"
	msgDuplicated  = "Ya existe un registro con esos datos"
	msgInvalidRefs = "Referencia a un registro inexistente"
)

// translateWrite maps driver errors of an insert/update to client errors.
func translateWrite(err error, duplicated string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		if duplicated == "" {
			duplicated = msgDuplicated
		}
		return Conflict(duplicated)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return Validation(msgInvalidRefs)
	}
	return err
}

// translateDelete maps driver errors of a delete to client errors.
func translateDelete(err error, notFound string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound(notFound)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return Conflict(msgInUse)
	}
	return err
}

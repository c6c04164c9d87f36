package handler

import (
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"tunik/internal/apierror"
	"tunik/internal/dto"
	"tunik/internal/repository"
	"tunik/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	// Report fields by their JSON name, which is what the client sent.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return strings.ToLower(fld.Name)
		}
		return name
	})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails;
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON inválido"))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				fields[fe.Field()] = fieldMessage(fe)
			}
		}
		c.JSON(http.StatusBadRequest, apierror.NewValidation(fields))
		return false
	}
	return true
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Campo obligatorio"
	case "email":
		return "Email inválido"
	case "oneof":
		return "Valor no permitido, use uno de: " + fe.Param()
	case "min":
		return "Debe ser al menos " + fe.Param()
	case "max":
		return "Debe ser como máximo " + fe.Param()
	}
	return "Valor inválido (" + fe.Tag() + ")"
}

// statusFor maps a service error kind to its HTTP status.
func statusFor(k service.Kind) int {
	switch k {
	case service.KindValidation:
		return http.StatusBadRequest
	case service.KindUnauthorized:
		return http.StatusUnauthorized
	case service.KindForbidden:
		return http.StatusForbidden
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindConflict:
		return http.StatusConflict
	case service.KindUnavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// respondError writes classified service errors. Anything else is attached to
// the context and answered by middleware.ErrorHandler with a generic 500.
func respondError(c *gin.Context, err error) {
	if e, ok := service.AsError(err); ok {
		status := statusFor(e.Kind)
		if len(e.Fields) > 0 {
			c.JSON(status, &apierror.ValidationError{Ok: false, Msg: e.Msg, Fields: e.Fields})
			return
		}
		c.JSON(status, apierror.New(e.Msg))
		return
	}
	_ = c.Error(err)
}

// parseKey reads a path id. Integer keys must be positive; string keys
// (cedula, placa) only need to be non-blank.
func parseKey[K repository.Key](raw string) (K, bool) {
	var k K
	switch p := any(&k).(type) {
	case *int:
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return k, false
		}
		*p = n
	case *string:
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return k, false
		}
		*p = raw
	default:
		return k, false
	}
	return k, true
}

// listParams binds q/page/limit and keeps every other query parameter as a
// candidate exact filter; the repository ignores columns it does not allow.
func listParams(c *gin.Context) (repository.ListParams, bool) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parámetros de consulta inválidos"))
		return repository.ListParams{}, false
	}
	if q.Page < 0 || q.Limit < 0 || q.Limit > 500 {
		c.JSON(http.StatusBadRequest, apierror.New("Parámetros de paginación inválidos"))
		return repository.ListParams{}, false
	}
	if q.Page > 0 && q.Limit == 0 {
		q.Limit = dto.DefaultLimit
	}

	p := repository.ListParams{Q: strings.TrimSpace(q.Q), Page: q.Page, Limit: q.Limit}
	for k, v := range c.Request.URL.Query() {
		switch k {
		case "q", "page", "limit":
			continue
		}
		if len(v) > 0 {
			if p.Filters == nil {
				p.Filters = make(map[string]string)
			}
			p.Filters[k] = v[0]
		}
	}
	return p, true
}

// respondList writes the list envelope, with pagination when a page was asked.
func respondList[T any](c *gin.Context, p repository.ListParams, items []T, total int64) {
	if items == nil {
		items = []T{}
	}
	resp := dto.ListResponse[T]{Ok: true, Data: items}
	if p.Page > 0 {
		pages := 0
		if p.Limit > 0 {
			pages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
		}
		resp.Pagination = &dto.Pagination{Total: total, Page: p.Page, Limit: p.Limit, Pages: pages}
	}
	c.JSON(http.StatusOK, resp)
}

func respondData[T any](c *gin.Context, status int, data T) {
	c.JSON(status, dto.DataResponse[T]{Ok: true, Data: data})
}

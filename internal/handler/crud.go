package handler

import (
	"net/http"

	"tunik/internal/apierror"
	"tunik/internal/dto"
	"tunik/internal/repository"
	"tunik/internal/service"

	"github.com/gin-gonic/gin"
)

// CrudHandler serves list/get/create/update/delete for one entity.
// deleted is the message returned on a successful DELETE.
type CrudHandler[T any, K repository.Key, Req any] struct {
	svc     service.CrudService[T, K, Req]
	deleted string
}

func NewCrudHandler[T any, K repository.Key, Req any](svc service.CrudService[T, K, Req], deleted string) *CrudHandler[T, K, Req] {
	return &CrudHandler[T, K, Req]{svc: svc, deleted: deleted}
}

// Register mounts the five routes on g, each behind its own middleware.
func (h *CrudHandler[T, K, Req]) Register(g *gin.RouterGroup, mw ...gin.HandlerFunc) {
	g.GET("", chain(mw, h.List)...)
	g.GET("/:id", chain(mw, h.Get)...)
	g.POST("", chain(mw, h.Create)...)
	g.PUT("/:id", chain(mw, h.Update)...)
	g.DELETE("/:id", chain(mw, h.Delete)...)
}

func chain(mw []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(mw)+1)
	return append(append(out, mw...), h)
}

func (h *CrudHandler[T, K, Req]) List(c *gin.Context) {
	p, ok := listParams(c)
	if !ok {
		return
	}
	items, total, err := h.svc.List(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, p, items, total)
}

func (h *CrudHandler[T, K, Req]) Get(c *gin.Context) {
	id, ok := parseKey[K](c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	e, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, e)
}

func (h *CrudHandler[T, K, Req]) Create(c *gin.Context) {
	var req Req
	if !bindAndValidate(c, &req) {
		return
	}
	e, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, e)
}

func (h *CrudHandler[T, K, Req]) Update(c *gin.Context) {
	id, ok := parseKey[K](c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req Req
	if !bindAndValidate(c, &req) {
		return
	}
	e, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, e)
}

func (h *CrudHandler[T, K, Req]) Delete(c *gin.Context) {
	id, ok := parseKey[K](c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MsgResponse{Ok: true, Msg: h.deleted})
}

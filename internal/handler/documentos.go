package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"tunik/internal/apierror"
	"tunik/internal/dto"
	"tunik/internal/service"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type PedidosHandler struct{ svc service.PedidoService }

func NewPedidosHandler(svc service.PedidoService) *PedidosHandler { return &PedidosHandler{svc: svc} }

// Export downloads every order as an XLSX workbook.
func (h *PedidosHandler) Export(c *gin.Context) {
	b, err := h.svc.Export(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	name := fmt.Sprintf("pedidos_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Data(http.StatusOK, xlsxContentType, b)
}

type CotizacionesHandler struct{ svc service.CotizacionService }

func NewCotizacionesHandler(svc service.CotizacionService) *CotizacionesHandler {
	return &CotizacionesHandler{svc: svc}
}

func (h *CotizacionesHandler) PDF(c *gin.Context) {
	id, ok := parseKey[int](c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	b, name, err := h.svc.PDF(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, name))
	c.Data(http.StatusOK, "application/pdf", b)
}

// Enviar queues the quote mail. The body is optional.
func (h *CotizacionesHandler) Enviar(c *gin.Context) {
	id, ok := parseKey[int](c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.EnviarCotizacionRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, apierror.New("JSON inválido"))
			return
		}
		if err := validate.Struct(&req); err != nil {
			c.JSON(http.StatusBadRequest, apierror.NewValidation(map[string]string{"email": "Email inválido"}))
			return
		}
	}
	if err := h.svc.Enviar(c.Request.Context(), id, req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, dto.MsgResponse{Ok: true, Msg: "Cotización en cola de envío"})
}

type CatalogoHandler struct{ svc service.CatalogService }

func NewCatalogoHandler(svc service.CatalogService) *CatalogoHandler { return &CatalogoHandler{svc: svc} }

// Servicios is the public landing catalog.
func (h *CatalogoHandler) Servicios(c *gin.Context) {
	items, err := h.svc.Servicios(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListResponse[dto.ServicioPublico]{Ok: true, Data: items})
}

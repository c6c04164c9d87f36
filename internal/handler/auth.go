package handler

import (
	"net/http"

	"tunik/internal/apierror"
	"tunik/internal/dto"
	"tunik/internal/middleware"
	"tunik/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Login answers 404 for an unknown email and 401 for a wrong password; the
// login screen shows those two messages as they are.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Autenticación requerida"))
		return
	}
	resp, err := h.svc.Me(c.Request.Context(), claims.Cedula)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── ACL ──────────────────────────────────────────────────────────────────────

type ACLHandler struct{ svc service.ACLService }

func NewACLHandler(svc service.ACLService) *ACLHandler { return &ACLHandler{svc: svc} }

func (h *ACLHandler) Options(c *gin.Context) {
	respondData(c, http.StatusOK, h.svc.Options())
}

func (h *ACLHandler) Get(c *gin.Context) {
	id, ok := parseKey[int](c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	a, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, a)
}

func (h *ACLHandler) Set(c *gin.Context) {
	id, ok := parseKey[int](c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.ACLRequest
	if !bindAndValidate(c, &req) {
		return
	}
	a, err := h.svc.Set(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, a)
}

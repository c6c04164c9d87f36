package middleware

import (
	"net/http"
	"strings"

	"tunik/internal/acl"
	"tunik/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ClaimsKey = "claims"
)

// JWTClaims are the custom claims embedded in every session token.
type JWTClaims struct {
	Cedula  string `json:"cedula"`
	Email   string `json:"email"`
	IDRoles int    `json:"idroles"`
	jwt.RegisteredClaims
}

// JWTAuth validates the Bearer token on every protected route. Requests from
// roles other than Administrador carry the caller's cedula as owner scope.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Autenticación requerida"))
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid || claims.Cedula == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Token inválido o expirado"))
			return
		}

		c.Set(ClaimsKey, claims)
		if acl.Scoped(claims.IDRoles) {
			c.Request = c.Request.WithContext(acl.WithOwner(c.Request.Context(), claims.Cedula))
		}
		c.Next()
	}
}

// RequirePermiso checks the caller's role ACL for module. The action comes
// from the HTTP method: GET ver, POST crear, PUT/PATCH editar, DELETE eliminar.
// The ACL is read on every request so edits apply without a new login.
func RequirePermiso(store acl.Store, module string) gin.HandlerFunc {
	return RequireAccion(store, module, "")
}

// RequireAccion checks a fixed action, for routes whose method does not say
// what they do (POST /cotizaciones/:id/enviar). An empty action falls back
// to the method.
func RequireAccion(store acl.Store, module, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		act := action
		if act == "" {
			act = acl.ActionFor(c.Request.Method)
		}
		claims := GetClaims(c)
		if claims == nil || !store.Get(claims.IDRoles).Can(module, act) {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Permisos insuficientes"))
			return
		}
		c.Next()
	}
}

// GetClaims is a helper to retrieve typed claims from the Gin context.
func GetClaims(c *gin.Context) *JWTClaims {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*JWTClaims)
	return claims
}

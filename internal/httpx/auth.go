package httpx

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jgardel/vivero-api/internal/user"
)

const (
	CtxUserID = "auth_user_id"
	CtxEmail  = "auth_email"
	CtxRol    = "auth_rol"
)

// Auth valida el Bearer token y deja id/email/rol en el contexto.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token no proporcionado"})
			return
		}
		claims, err := user.ParseToken(strings.TrimPrefix(h, "Bearer "), secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "token inválido o expirado"})
			return
		}
		c.Set(CtxUserID, claims.Subject)
		c.Set(CtxEmail, claims.Email)
		c.Set(CtxRol, claims.Rol)
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxRol) != user.RolAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "se requiere rol de administrador"})
			return
		}
		c.Next()
	}
}

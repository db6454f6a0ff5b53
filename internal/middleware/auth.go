package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"malaria-intake/pkg/utils"
)

const (
	RoleAdmin = "admin"

	ctxSubject = "subject"
	ctxRole    = "role"
)

// AuthMiddleware exige "Authorization: Bearer <token>" assinado com o JWT_SECRET
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Header Authorization
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.AbortFail(c, http.StatusUnauthorized, "Token não encontrado")
			return
		}

		// 2. Formato "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.AbortFail(c, http.StatusUnauthorized, "Formato de token inválido")
			return
		}

		// 3. Valida assinatura e expiração
		token, err := utils.ValidateToken(secret, parts[1])
		if err != nil || !token.Valid {
			utils.AbortFail(c, http.StatusUnauthorized, "Token inválido")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			utils.AbortFail(c, http.StatusUnauthorized, "Falha ao processar o token")
			return
		}

		subject, _ := claims["sub"].(string)
		role, _ := claims["role"].(string)

		c.Set(ctxSubject, subject)
		c.Set(ctxRole, role)

		c.Next()
	}
}

// AdminOnly: só tokens com role=admin
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ctxRole) != RoleAdmin {
			utils.AbortFail(c, http.StatusForbidden, "Acesso negado")
			return
		}
		c.Next()
	}
}

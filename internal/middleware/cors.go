package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"malaria-intake/pkg/utils"
)

// CORSMiddleware libera o origin configurado e responde o preflight OPTIONS direto
func CORSMiddleware(allowedOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", allowedOrigin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			utils.AbortOk(c, http.StatusOK, "CORS OK")
			return
		}
		c.Next()
	}
}

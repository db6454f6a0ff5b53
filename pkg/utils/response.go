package utils

import (
	"github.com/gin-gonic/gin"
)

// Response é o envelope JSON das rotas /api/v1 (admin, Gemini, ping).
// O formulário HTML não usa: ele redireciona ou devolve texto puro.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Ok(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{Success: true, Message: message, Data: data})
}

// Fail só leva a mensagem pública; o erro real vai pro log de quem chamou
func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, Response{Success: false, Message: message})
}

// AbortOk e AbortFail interrompem a cadeia (uso em middleware)
func AbortOk(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, Response{Success: true, Message: message})
}

func AbortFail(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, Response{Success: false, Message: message})
}

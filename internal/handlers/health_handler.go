package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"malaria-intake/pkg/utils"
)

func Ping(c *gin.Context) {
	utils.Ok(c, http.StatusOK, "Server OK!", nil)
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Home 渲染首页。
func Home(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", templateData(c, nil))
}

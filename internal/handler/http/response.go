// Package http 封装渲染 HTML 视图的 Gin 处理器。
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/necriesa/puso-t-tulong/internal/middleware"
)

// templateData 组装传给视图的公共数据，并合并处理器自己的字段。
// 每个视图都能据此判断当前是否有已登录用户以及用户名。
func templateData(c *gin.Context, extra gin.H) gin.H {
	data := gin.H{
		"IsAuthenticated": middleware.IsAuthenticated(c),
		"CurrentUser":     middleware.Username(c),
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}

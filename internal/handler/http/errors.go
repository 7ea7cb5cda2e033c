package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/necriesa/puso-t-tulong/internal/service"
)

// NotFound 渲染 404 页面。
func NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "error.html", templateData(c, gin.H{
		"Status":  http.StatusNotFound,
		"Message": "Page not found",
	}))
}

// ServerError 记录未预期的错误并渲染 500 页面，细节不回显给客户端。
func ServerError(c *gin.Context, err error) {
	logrus.WithError(err).Error("Unhandled internal server error")
	c.HTML(http.StatusInternalServerError, "error.html", templateData(c, gin.H{
		"Status":  http.StatusInternalServerError,
		"Message": "Something went wrong",
	}))
}

// HandleServiceError 把 Service 层错误映射为对应的 HTTP 响应。
// 校验错误和认证失败在各处理器内就地处理，不走这里。
func HandleServiceError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrPostNotFound) {
		NotFound(c)
		return
	}
	ServerError(c, err)
}

package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/necriesa/puso-t-tulong/internal/forms"
	"github.com/necriesa/puso-t-tulong/internal/middleware"
	"github.com/necriesa/puso-t-tulong/internal/service"
)

// PostHandler 封装论坛帖子和评论的 HTTP 处理逻辑。
type PostHandler struct {
	postService *service.PostService
}

// NewPostHandler 创建 PostHandler 实例
func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// Forum 渲染论坛首页，帖子最新的在前。
func (h *PostHandler) Forum(c *gin.Context) {
	posts, err := h.postService.ListPosts(c.Request.Context())
	if err != nil {
		ServerError(c, err)
		return
	}
	c.HTML(http.StatusOK, "forum.html", templateData(c, gin.H{"Posts": posts}))
}

// ShowAddPost 渲染发帖表单
func (h *PostHandler) ShowAddPost(c *gin.Context) {
	c.HTML(http.StatusOK, "add_post.html", templateData(c, gin.H{"Form": forms.New(nil)}))
}

// AddPost 处理发帖提交。作者取自当前会话的用户名。
func (h *PostHandler) AddPost(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		ServerError(c, err)
		return
	}
	form := forms.New(c.Request.PostForm)
	form.Required("title", "body", "contact_details")
	form.MaxLength("title", 100)
	form.MaxLength("body", 2000)
	form.MaxLength("contact_details", 50)
	if !form.Valid() {
		c.HTML(http.StatusOK, "add_post.html", templateData(c, gin.H{"Form": form}))
		return
	}

	_, err := h.postService.CreatePost(c.Request.Context(),
		middleware.Username(c), form.Get("title"), form.Get("body"), form.Get("contact_details"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/forum")
}

// ViewPost 渲染单条帖子的详情：帖子本体、按时间正序的评论和评论表单。
// 帖子不存在时返回 404。
func (h *PostHandler) ViewPost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		NotFound(c)
		return
	}

	post, comments, err := h.postService.GetPost(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	c.HTML(http.StatusOK, "view_post.html", templateData(c, gin.H{
		"Post":     post,
		"Comments": comments,
		"Form":     forms.New(nil),
	}))
}

// AddComment 处理帖子详情页上的评论提交，成功后重定向回详情页。
func (h *PostHandler) AddComment(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		NotFound(c)
		return
	}

	if err := c.Request.ParseForm(); err != nil {
		ServerError(c, err)
		return
	}
	form := forms.New(c.Request.PostForm)
	form.Required("body")
	form.MaxLength("body", 1000)
	if !form.Valid() {
		// 重新渲染详情页，评论框保留用户输入
		post, comments, err := h.postService.GetPost(c.Request.Context(), id)
		if err != nil {
			HandleServiceError(c, err)
			return
		}
		c.HTML(http.StatusOK, "view_post.html", templateData(c, gin.H{
			"Post":     post,
			"Comments": comments,
			"Form":     form,
		}))
		return
	}

	_, err := h.postService.AddComment(c.Request.Context(), id, middleware.Username(c), form.Get("body"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/forum/view/%d", id))
}

// postID 从路径参数解析帖子 ID，非数字的路径等同于不存在的帖子。
func postID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

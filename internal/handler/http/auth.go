package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/necriesa/puso-t-tulong/internal/forms"
	"github.com/necriesa/puso-t-tulong/internal/middleware"
	"github.com/necriesa/puso-t-tulong/internal/service"
)

// AuthHandler 封装登录、注册和登出的 HTTP 处理逻辑。
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler 创建 AuthHandler 实例
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// ShowLogin 渲染登录表单
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", templateData(c, gin.H{"Form": forms.New(nil)}))
}

// Login 处理登录提交。
// 成功时设置会话 cookie 并重定向到论坛；失败时重新渲染表单，
// “用户不存在”和“密码错误”呈现完全相同，不泄露任何细节。
func (h *AuthHandler) Login(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		ServerError(c, err)
		return
	}
	form := forms.New(c.Request.PostForm)
	form.Required("username", "password")
	if !form.Valid() {
		c.HTML(http.StatusOK, "login.html", templateData(c, gin.H{"Form": form}))
		return
	}

	token, err := h.authService.Login(c.Request.Context(), form.Get("username"), form.Get("password"))
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) {
			form.Errors.Add("generic", "Username or password is incorrect")
			c.HTML(http.StatusOK, "login.html", templateData(c, gin.H{"Form": form}))
			return
		}
		ServerError(c, err)
		return
	}

	c.SetCookie(middleware.SessionCookie, token, h.authService.SessionMaxAge(), "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/forum")
}

// Logout 无条件清除会话 cookie 并重定向到登录页。
func (h *AuthHandler) Logout(c *gin.Context) {
	logrus.WithField("username", middleware.Username(c)).Info("User logged out")
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/login")
}

// ShowRegister 渲染注册表单
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", templateData(c, gin.H{"Form": forms.New(nil)}))
}

// Register 处理注册提交。
// 校验通过后持久化新用户并重定向到登录页；不自动登录。
func (h *AuthHandler) Register(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		ServerError(c, err)
		return
	}
	form := forms.New(c.Request.PostForm)
	form.Required("username", "password", "email")
	form.MinLength("username", 3)
	form.MaxLength("username", 20)
	form.MinLength("password", 8)
	form.MaxLength("password", 72) // bcrypt 的输入上限
	form.MatchesEmail("email")
	form.MaxLength("email", 30)
	form.IntRange("age", 0, 150)
	form.IsDate("birthday")

	// 自定义规则：用户名唯一性，只读查询用户库
	if username := form.Get("username"); username != "" {
		taken, err := h.authService.UsernameTaken(c.Request.Context(), username)
		if err != nil {
			ServerError(c, err)
			return
		}
		form.Check("username", !taken, "Username is already taken")
	}

	if !form.Valid() {
		c.HTML(http.StatusOK, "register.html", templateData(c, gin.H{"Form": form}))
		return
	}

	_, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Username: form.Get("username"),
		Password: form.Get("password"),
		Email:    form.Get("email"),
		Age:      form.GetInt("age"),
		Birthday: form.GetDate("birthday"),
	})
	if err != nil {
		// 包括并发竞争下绕过校验的重复用户名：约束冲突按服务器错误处理
		ServerError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/login")
}

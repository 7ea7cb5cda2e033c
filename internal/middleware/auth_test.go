package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/necriesa/puso-t-tulong/internal/domain"
	"github.com/necriesa/puso-t-tulong/internal/middleware"
	"github.com/necriesa/puso-t-tulong/internal/repository/mocks"
	"github.com/necriesa/puso-t-tulong/internal/service"
)

const testSecret = "test-session-secret"

// newGuardedRouter 搭一个带会话解析和守卫的最小路由
func newGuardedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.CurrentUser(testSecret))
	r.GET("/private", middleware.RequireAuth(), func(c *gin.Context) {
		c.String(http.StatusOK, "%d:%s", middleware.UserID(c), middleware.Username(c))
	})
	return r
}

// loginToken 通过 AuthService 签发一个真实的会话令牌
func loginToken(t *testing.T) string {
	t.Helper()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("pass1234"), bcrypt.DefaultCost)
	mockUserRepo := new(mocks.UserRepository)
	mockUserRepo.On("FindByUsername", context.Background(), "alice").
		Return(&domain.User{ID: 7, Username: "alice", Password: string(hashed)}, nil).Once()

	authService, err := service.NewAuthService(mockUserRepo, testSecret, 1)
	require.NoError(t, err)
	token, err := authService.Login(context.Background(), "alice", "pass1234")
	require.NoError(t, err)
	return token
}

func TestRequireAuth_RedirectsAnonymousToLogin(t *testing.T) {
	router := newGuardedRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/private", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.NotContains(t, w.Body.String(), "alice", "处理器主体不应执行")
}

func TestCurrentUser_ValidTokenEstablishesIdentity(t *testing.T) {
	router := newGuardedRouter()
	token := loginToken(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	// 身份直接来自签名令牌的 claims，不需要再查库
	assert.Equal(t, "7:alice", w.Body.String())
}

func TestCurrentUser_TamperedTokenIsAnonymous(t *testing.T) {
	router := newGuardedRouter()
	token := loginToken(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token + "x"})
	router.ServeHTTP(w, req)

	// 被篡改的 cookie 等同于没有会话：守卫重定向到登录页
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

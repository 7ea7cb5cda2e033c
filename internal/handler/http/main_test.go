package http_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/necriesa/puso-t-tulong/internal/bootstrap"
	"github.com/necriesa/puso-t-tulong/internal/infra/setup"
)

// testApp 是搭在三个内存 SQLite 库上的完整路由，测试可以直接查库断言副作用。
type testApp struct {
	router   *gin.Engine
	postsDB  *gorm.DB
	usersDB  *gorm.DB
	drivesDB *gorm.DB
}

// newTestApp 用内存存储装配一个和生产一样的路由
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logrus.SetLevel(logrus.ErrorLevel) // 测试里压低日志噪音

	openMem := func() *gorm.DB {
		db, err := setup.OpenDB(":memory:")
		require.NoError(t, err)
		return db
	}
	postsDB, usersDB, drivesDB := openMem(), openMem(), openMem()
	require.NoError(t, setup.MigrateAll(postsDB, usersDB, drivesDB))

	cfg := &bootstrap.Config{
		AppEnv:             "development",
		SessionSecret:      "test-session-secret",
		SessionExpiryHours: 1,
		TemplatesGlob:      "../../../web/templates/*.html",
		CORSOrigins:        "*",
	}
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	router, err := bootstrap.NewRouter(cfg, log, postsDB, usersDB, drivesDB)
	require.NoError(t, err)

	return &testApp{router: router, postsDB: postsDB, usersDB: usersDB, drivesDB: drivesDB}
}

// get 发送 GET 请求，可附带会话 cookie
func (a *testApp) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// postForm 发送表单 POST 请求，可附带会话 cookie
func (a *testApp) postForm(path string, values url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// register 提交一份有效的注册表单
func (a *testApp) register(t *testing.T, username, password, email string) *httptest.ResponseRecorder {
	t.Helper()
	return a.postForm("/register", url.Values{
		"username": {username},
		"password": {password},
		"email":    {email},
		"age":      {"30"},
		"birthday": {"2000-01-01"},
	})
}

// login 登录并返回带会话 cookie 的响应
func (a *testApp) login(t *testing.T, username, password string) []*http.Cookie {
	t.Helper()
	w := a.postForm("/login", url.Values{
		"username": {username},
		"password": {password},
	})
	require.Equal(t, http.StatusSeeOther, w.Code, "登录应当成功并重定向")
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "登录成功应设置会话 cookie")
	return cookies
}

// Package bootstrap 负责装配应用：配置、日志、三个存储、依赖注入和路由。
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	httpHandler "github.com/necriesa/puso-t-tulong/internal/handler/http"
	gormpersistence "github.com/necriesa/puso-t-tulong/internal/infra/persistence/gorm"
	"github.com/necriesa/puso-t-tulong/internal/infra/setup"
	"github.com/necriesa/puso-t-tulong/internal/middleware"
	"github.com/necriesa/puso-t-tulong/internal/service"
)

// Config 存储从环境变量 (或 .env 文件) 加载的配置。
type Config struct {
	AppEnv             string `env:"APP_ENV" env-default:"development"`
	ServerPort         string `env:"SERVER_PORT" env-default:"8080"`
	LogLevel           string `env:"LOG_LEVEL" env-default:"info"`
	SessionSecret      string `env:"SESSION_SECRET"` // 签名会话令牌的固定共享密钥，必填
	SessionExpiryHours int    `env:"SESSION_EXPIRY_HOURS" env-default:"24"`
	PostsDBPath        string `env:"POSTS_DB_PATH" env-default:"information.db"`
	UsersDBPath        string `env:"USERS_DB_PATH" env-default:"users.db"`
	DrivesDBPath       string `env:"DRIVES_DB_PATH" env-default:"drives.db"`
	TemplatesGlob      string `env:"TEMPLATES_GLOB" env-default:"web/templates/*.html"`
	CORSOrigins        string `env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
}

// LoadConfig 从环境变量加载配置。优先加载 .env 文件 (如果存在)。
func LoadConfig() (*Config, error) {
	_ = godotenv.Load() // 忽略错误，允许只使用环境变量

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("environment variable SESSION_SECRET must be set")
	}
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		logrus.Warnf("Invalid LOG_LEVEL '%s', using default 'info'", cfg.LogLevel)
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

// App 包含应用的所有组件和配置。
type App struct {
	Config     *Config
	Log        *logrus.Logger
	PostsDB    *gorm.DB
	UsersDB    *gorm.DB
	DrivesDB   *gorm.DB
	HTTPServer *http.Server
}

// NewApp 创建并初始化应用的所有组件。
func NewApp() (*App, error) {
	// 1. 加载配置
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return nil, err
	}

	// 2. 初始化 Logger
	log := logrus.New()
	if cfg.AppEnv == "production" {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, ForceColors: true})
	}
	logLevel, _ := logrus.ParseLevel(cfg.LogLevel) // cfg.LogLevel 已被 LoadConfig 验证
	log.SetLevel(logLevel)
	log.SetOutput(os.Stdout)
	logrus.SetLevel(logLevel) // 包级 logger 与 App logger 保持同级
	log.Info("Configuration loaded successfully")

	// 3. 打开三个存储并迁移。三个库各自独立提交，互相之间没有事务。
	postsDB, err := setup.OpenDB(cfg.PostsDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open posts store: %w", err)
	}
	usersDB, err := setup.OpenDB(cfg.UsersDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open users store: %w", err)
	}
	drivesDB, err := setup.OpenDB(cfg.DrivesDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open drives store: %w", err)
	}
	if err := setup.MigrateAll(postsDB, usersDB, drivesDB); err != nil {
		return nil, fmt.Errorf("failed to migrate stores: %w", err)
	}
	log.Info("Stores opened and migrated")

	// 4. 初始化路由
	router, err := NewRouter(cfg, log, postsDB, usersDB, drivesDB)
	if err != nil {
		return nil, err
	}
	log.Info("Router setup complete")

	// 5. 初始化 HTTP Server
	httpServer := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &App{
		Config:     cfg,
		Log:        log,
		PostsDB:    postsDB,
		UsersDB:    usersDB,
		DrivesDB:   drivesDB,
		HTTPServer: httpServer,
	}, nil
}

// NewRouter 装配 Repository → Service → Handler 的依赖链并注册全部路由。
// 单独暴露出来方便处理器测试用内存存储搭一个完整的路由。
func NewRouter(cfg *Config, log *logrus.Logger, postsDB, usersDB, drivesDB *gorm.DB) (*gin.Engine, error) {
	// Repositories
	userRepo := gormpersistence.NewGormUserRepository(usersDB)
	postRepo := gormpersistence.NewGormPostRepository(postsDB)
	driveRepo := gormpersistence.NewGormDriveRepository(drivesDB)

	// Services
	authService, err := service.NewAuthService(userRepo, cfg.SessionSecret, cfg.SessionExpiryHours)
	if err != nil {
		return nil, fmt.Errorf("failed to create AuthService: %w", err)
	}
	postService := service.NewPostService(postRepo)
	driveService := service.NewDriveService(driveRepo)

	// Handlers
	authHandler := httpHandler.NewAuthHandler(authService)
	postHandler := httpHandler.NewPostHandler(postService)
	driveHandler := httpHandler.NewDriveHandler(driveService)

	// Gin engine
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(log))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.CORSOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Cookie"},
		AllowCredentials: cfg.CORSOrigins != "*",
		MaxAge:           12 * time.Hour,
	}))
	// 每个请求先解析会话 cookie，建立“当前用户”
	router.Use(middleware.CurrentUser(cfg.SessionSecret))

	router.LoadHTMLGlob(cfg.TemplatesGlob)

	// --- 路由 (从上到下求值，先匹配先赢) ---
	router.GET("/", httpHandler.Home)

	// 只对游客开放的页面
	guest := router.Group("/", middleware.RequireGuest())
	{
		guest.GET("/login", authHandler.ShowLogin)
		guest.POST("/login", authHandler.Login)
		guest.GET("/register", authHandler.ShowRegister)
		guest.POST("/register", authHandler.Register)
	}

	// 必须登录的操作
	authed := router.Group("/", middleware.RequireAuth())
	{
		authed.GET("/logout", authHandler.Logout)
		authed.POST("/logout", authHandler.Logout)
		authed.GET("/add_post", postHandler.ShowAddPost)
		authed.POST("/add_post", postHandler.AddPost)
		authed.POST("/forum/view/:id", postHandler.AddComment)
		authed.GET("/drives/add", driveHandler.ShowAddDrive)
		authed.POST("/drives/add", driveHandler.AddDrive)
	}

	// 浏览不需要登录
	router.GET("/forum", postHandler.Forum)
	router.GET("/forum/view/:id", postHandler.ViewPost)
	router.GET("/drives", driveHandler.Drives)

	router.NoRoute(httpHandler.NotFound)

	return router, nil
}

// Start 启动 HTTP 服务器。
func (a *App) Start() {
	go func() {
		a.Log.Infof("HTTP server starting to listen on %s", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Log.Fatalf("Failed to start HTTP server: %v", err)
		}
		a.Log.Info("HTTP server stopped listening.")
	}()
}

// Shutdown 优雅地关闭应用。
func (a *App) Shutdown() {
	a.Log.Info("Shutting down application...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.HTTPServer.Shutdown(ctx); err != nil {
		a.Log.Errorf("Error shutting down HTTP server: %v", err)
	} else {
		a.Log.Info("HTTP server shut down gracefully.")
	}

	// 关闭三个 SQLite 连接
	for name, db := range map[string]*gorm.DB{
		"posts": a.PostsDB, "users": a.UsersDB, "drives": a.DrivesDB,
	} {
		if db == nil {
			continue
		}
		sqlDB, err := db.DB()
		if err != nil {
			continue
		}
		if err := sqlDB.Close(); err != nil {
			a.Log.Errorf("Error closing %s store: %v", name, err)
		}
	}

	a.Log.Info("Application shutdown complete.")
}

// LoggerMiddleware 创建一个 Gin 中间件用于记录请求日志。
func LoggerMiddleware(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		c.Next()
		latency := time.Since(startTime)
		statusCode := c.Writer.Status()
		path := c.Request.URL.Path
		if c.Request.URL.RawQuery != "" {
			path = path + "?" + c.Request.URL.RawQuery
		}

		entry := log.WithFields(logrus.Fields{
			"status_code": statusCode,
			"latency_ms":  latency.Milliseconds(),
			"client_ip":   c.ClientIP(),
			"method":      c.Request.Method,
			"path":        path,
		})

		if errorMessage := c.Errors.ByType(gin.ErrorTypePrivate).String(); errorMessage != "" {
			entry.Error(errorMessage)
		} else if statusCode >= 500 {
			entry.Error("Server error")
		} else if statusCode >= 400 {
			entry.Warn("Client error")
		} else {
			entry.Info("Request handled")
		}
	}
}

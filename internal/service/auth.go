package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/necriesa/puso-t-tulong/internal/domain"
	"github.com/necriesa/puso-t-tulong/internal/repository"
)

// AuthService 负责用户认证相关的业务逻辑：注册、登录和会话令牌签发。
// 会话是一个 HS256 签名的令牌，由浏览器 cookie 携带，服务端不保存会话记录。
type AuthService struct {
	userRepo      repository.UserRepository
	sessionSecret []byte        // 签名密钥，来自进程配置的固定共享密钥
	sessionExpiry time.Duration // 令牌有效期
}

// NewAuthService 创建 AuthService 实例。
// sessionSecretKey 应从安全配置中获取；expiryHours 定义令牌过期的小时数。
func NewAuthService(userRepo repository.UserRepository, sessionSecretKey string, expiryHours int) (*AuthService, error) {
	if userRepo == nil {
		panic("UserRepository cannot be nil for AuthService")
	}
	if sessionSecretKey == "" {
		return nil, fmt.Errorf("session secret key cannot be empty")
	}
	if expiryHours <= 0 {
		expiryHours = 24
	}
	return &AuthService{
		userRepo:      userRepo,
		sessionSecret: []byte(sessionSecretKey),
		sessionExpiry: time.Duration(expiryHours) * time.Hour,
	}, nil
}

// RegisterInput 是注册操作的已校验输入。字段格式校验在 forms 层完成。
type RegisterInput struct {
	Username string
	Password string // 明文，只在本次调用的内存里存在
	Email    string
	Age      int
	Birthday time.Time
}

// Register 处理用户注册：哈希密码并持久化新用户。
// 表单层已经查过用户名唯一性；并发竞争下撞上唯一索引时返回 ErrRegistrationFailed。
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	logCtx := logrus.WithFields(logrus.Fields{"username": in.Username, "email": in.Email})

	hashedPassword, err := hashPassword(in.Password)
	if err != nil {
		logCtx.WithError(err).Error("Failed to hash password during registration")
		return nil, ErrInternalServer
	}

	user := &domain.User{
		Username: in.Username,
		Password: hashedPassword,
		Email:    in.Email,
		Age:      in.Age,
		Birthday: in.Birthday,
	}

	err = s.userRepo.Save(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			logCtx.WithError(err).Warn("Registration failed: username already exists")
			return nil, ErrRegistrationFailed
		}
		logCtx.WithError(err).Error("Database error during user creation")
		return nil, ErrInternalServer
	}

	logCtx.WithField("user_id", user.ID).Info("User registered successfully")
	user.Password = "" // 清除密码哈希再返回
	return user, nil
}

// Login 处理用户登录，成功时返回签名的会话令牌。
// 用户不存在和密码错误走同一条失败路径，避免用户名枚举。
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	logCtx := logrus.WithField("username", username)

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			logCtx.WithError(err).Warn("Login attempt failed: user not found")
		} else {
			logCtx.WithError(err).Warn("Login attempt failed: error finding user")
		}
		return "", ErrAuthenticationFailed
	}
	if user == nil {
		logCtx.Warn("Login attempt failed: repo returned nil user without error")
		return "", ErrAuthenticationFailed
	}

	if !checkPassword(password, user.Password) {
		logCtx.Warn("Login attempt failed: invalid password")
		return "", ErrAuthenticationFailed
	}

	token, err := s.generateSessionToken(user.ID, user.Username)
	if err != nil {
		logCtx.WithError(err).Error("Failed to sign session token during login")
		return "", ErrInternalServer
	}

	logCtx.WithField("user_id", user.ID).Info("User logged in successfully")
	return token, nil
}

// UsernameTaken 报告用户名是否已被占用，供注册表单的唯一性规则查询。只读。
func (s *AuthService) UsernameTaken(ctx context.Context, username string) (bool, error) {
	_, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("check username availability: %w", err)
	}
	return true, nil
}

// SessionMaxAge 返回会话 cookie 应使用的有效期秒数。
func (s *AuthService) SessionMaxAge() int {
	return int(s.sessionExpiry / time.Second)
}

// --- 私有辅助函数 ---

// hashPassword 使用 bcrypt 对密码进行哈希处理
func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to generate hash from password: %w", err)
	}
	return string(bytes), nil
}

// checkPassword 验证提供的密码是否与存储的哈希匹配
func checkPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// generateSessionToken 为指定用户签发会话令牌。
// username 一并放进 claims，请求处理时取当前用户身份不用再查库。
func (s *AuthService) generateSessionToken(userID uint, username string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"exp":      time.Now().Add(s.sessionExpiry).Unix(),
		"iat":      time.Now().Unix(),
	})
	tokenString, err := token.SignedString(s.sessionSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Package middleware 实现会话 cookie 的解析和路由守卫。
package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"
)

// SessionCookie 是承载签名会话令牌的 cookie 名。
const SessionCookie = "ptt_session"

// Gin 上下文里当前用户身份的键
const (
	ctxUserID   = "user_id"
	ctxUsername = "username"
)

// CurrentUser 返回一个 Gin 中间件，在每个请求上解析会话 cookie。
// 令牌有效时把用户 ID 和用户名写入上下文；缺失或无效时按匿名继续，绝不拒绝请求。
// 守卫放行与否由 RequireAuth 决定，这里只负责建立“当前用户”。
func CurrentUser(sessionSecret string) gin.HandlerFunc {
	// 在创建中间件时就进行检查，避免运行时 panic
	if sessionSecret == "" {
		panic("session secret cannot be empty for CurrentUser middleware")
	}

	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(SessionCookie)
		if err != nil || tokenStr == "" {
			c.Next()
			return
		}

		claims, err := validateToken(tokenStr, sessionSecret)
		if err != nil {
			// 过期或被篡改的 cookie 等同于没有会话
			logrus.WithError(err).Debug("CurrentUser: invalid session token, treating as anonymous")
			c.Next()
			return
		}

		userID, username, err := identityFromClaims(claims)
		if err != nil {
			logrus.WithError(err).Warn("CurrentUser: malformed claims in signed token")
			c.Next()
			return
		}

		c.Set(ctxUserID, userID)
		c.Set(ctxUsername, username)
		logrus.WithField("user_id", userID).Debug("CurrentUser: user authenticated via session cookie")

		c.Next()
	}
}

// RequireAuth 守卫需要登录的路由。
// 没有已认证的当前用户时重定向到登录页，处理器主体不执行。
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAuthenticated(c) {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireGuest 把已登录用户从登录/注册页重定向走。
func RequireGuest() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsAuthenticated(c) {
			c.Redirect(http.StatusSeeOther, "/forum")
			c.Abort()
			return
		}
		c.Next()
	}
}

// IsAuthenticated 报告当前请求是否有已认证的用户。
func IsAuthenticated(c *gin.Context) bool {
	_, ok := c.Get(ctxUserID)
	return ok
}

// UserID 返回当前用户的 ID，未登录时返回 0。
func UserID(c *gin.Context) uint {
	v, ok := c.Get(ctxUserID)
	if !ok {
		return 0
	}
	id, ok := v.(uint)
	if !ok {
		return 0
	}
	return id
}

// Username 返回当前用户的用户名，未登录时返回空串。
func Username(c *gin.Context) string {
	v, ok := c.Get(ctxUsername)
	if !ok {
		return ""
	}
	name, ok := v.(string)
	if !ok {
		return ""
	}
	return name
}

// validateToken 解析并验证会话令牌
func validateToken(tokenStr, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		// 只接受 HMAC 签名，防止算法替换
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token or claims type")
}

// identityFromClaims 从 claims 中提取用户 ID 和用户名。
// JWT 数字默认解析为 float64，需要安全转换为 uint。
func identityFromClaims(claims jwt.MapClaims) (uint, string, error) {
	userIDClaim, ok := claims["user_id"]
	if !ok {
		return 0, "", errors.New("'user_id' claim missing in token")
	}
	userIDFloat, ok := userIDClaim.(float64)
	if !ok || userIDFloat <= 0 || userIDFloat != float64(uint(userIDFloat)) {
		return 0, "", fmt.Errorf("'user_id' claim is not a valid positive integer: %v", userIDClaim)
	}

	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return 0, "", errors.New("'username' claim missing in token")
	}

	return uint(userIDFloat), username, nil
}

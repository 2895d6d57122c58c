package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CredentialCookieName 登录后写入浏览器的凭证 Cookie 名
const CredentialCookieName = "token"

// IdentityCookieName 登录后写入浏览器的用户信息 Cookie 名
// 存放 JSON 序列化的用户概要，仅供前端展示，守卫不读取
const IdentityCookieName = "user"

// GuardConfig route guard configuration
// GuardConfig 路由守卫配置
type GuardConfig struct {
	// ProtectedPrefixes 需要登录才能访问的路径前缀
	ProtectedPrefixes []string
	// RedirectTarget 未登录时跳转的路径
	RedirectTarget string
	// CookieName 凭证 Cookie 名，空值使用 CredentialCookieName
	CookieName string
}

// DefaultGuardConfig 默认路由守卫配置
var DefaultGuardConfig = GuardConfig{
	ProtectedPrefixes: []string{"/sharedNotes", "/notes", "/home", "/settings"},
	RedirectTarget:    "/",
}

// RouteGuard 创建页面路由守卫中间件
//
// 仅检查凭证 Cookie 的存在性，不验证其有效性，
// 过期凭证由会话服务的到期注销处理。
// 命中受保护前缀且无凭证时 302 跳转到入口页。
func RouteGuard(cfg GuardConfig) gin.HandlerFunc {
	if cfg.RedirectTarget == "" {
		cfg.RedirectTarget = "/"
	}
	if cfg.CookieName == "" {
		cfg.CookieName = CredentialCookieName
	}
	return func(c *gin.Context) {
		if !isProtected(c.Request.URL.Path, cfg.ProtectedPrefixes) {
			c.Next()
			return
		}

		if token, err := c.Cookie(cfg.CookieName); err != nil || token == "" {
			c.Redirect(http.StatusFound, cfg.RedirectTarget)
			c.Abort()
			return
		}

		c.Next()
	}
}

func isProtected(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

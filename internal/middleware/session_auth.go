package middleware

import (
	"github.com/haierkeys/notes-web-client/pkg/app"
	"github.com/haierkeys/notes-web-client/pkg/code"

	"github.com/gin-gonic/gin"
)

// Authenticated 判断当前是否持有登录会话
type Authenticated interface {
	IsAuthenticated() bool
}

// SessionAuth 会话认证中间件（支持依赖注入）
// 仅保护本地 API，凭证本身的有效性由远端在转发时校验
func SessionAuth(s Authenticated) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.IsAuthenticated() {
			response := app.NewResponse(c)
			response.ToResponse(code.ErrorNotUserAuthToken)
			c.Abort()
			return
		}
		c.Next()
	}
}

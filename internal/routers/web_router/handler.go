// Package web_router 提供 HTTP API 路由处理器
package web_router

import (
	"context"

	"github.com/haierkeys/notes-web-client/internal/app"
	"github.com/haierkeys/notes-web-client/internal/middleware"
	"github.com/haierkeys/notes-web-client/internal/remote"
	pkgapp "github.com/haierkeys/notes-web-client/pkg/app"
	"github.com/haierkeys/notes-web-client/pkg/code"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Handler 基础 Handler 结构体，封装 App Container
// 所有 API Handler 都应该嵌入此结构体以获得依赖注入能力
type Handler struct {
	App *app.App
}

// NewHandler 创建基础 Handler 实例
func NewHandler(a *app.App) *Handler {
	return &Handler{App: a}
}

func (h *Handler) logError(ctx context.Context, method string, err error) {
	traceID := middleware.GetTraceID(ctx)
	h.App.Logger().Error(method,
		zap.Error(err),
		zap.String("traceId", traceID),
	)
}

// respondRemoteError 将携带会话凭证的远端调用错误转换为统一响应
//
// 401/403 视为会话失效：静默强制注销后返回凭证无效码。
// 其余错误使用 fallback 码并携带远端 detail。
// 登录、注册这类尚无凭证的调用须走 respondCredentialError。
func (h *Handler) respondRemoteError(c *gin.Context, err error, fallback *code.Code) {
	response := pkgapp.NewResponse(c)

	var remoteErr *remote.Error
	if errors.As(err, &remoteErr) {
		if remoteErr.IsUnauthorized() {
			if logoutErr := h.App.Session.Logout(c.Request.Context()); logoutErr != nil {
				h.App.Logger().Warn("forced logout failed", zap.Error(logoutErr))
			}
			h.clearCredentialCookie(c)
			response.ToResponse(code.ErrorInvalidUserAuthToken)
			return
		}
		response.ToResponse(fallback.WithDetails(remoteErr.Detail))
		return
	}

	response.ToResponse(code.ErrorRemoteUnreachable.WithDetails(err.Error()))
}

// respondCredentialError 将登录、注册等未携带凭证的远端调用错误转换为统一响应
//
// 此类调用的 401 表示账号或密码错误，不代表本地会话失效，
// 不触发强制注销，统一使用 fallback 码并携带远端 detail。
func (h *Handler) respondCredentialError(c *gin.Context, err error, fallback *code.Code) {
	response := pkgapp.NewResponse(c)

	var remoteErr *remote.Error
	if errors.As(err, &remoteErr) {
		response.ToResponse(fallback.WithDetails(remoteErr.Detail))
		return
	}

	response.ToResponse(code.ErrorRemoteUnreachable.WithDetails(err.Error()))
}

// cookieNames 返回凭证与用户 Cookie 名，配置为空时回退到默认名
func (h *Handler) cookieNames() (string, string) {
	credName := h.App.Config().Session.CookieName
	if credName == "" {
		credName = middleware.CredentialCookieName
	}
	userName := h.App.Config().Session.UserCookieName
	if userName == "" {
		userName = middleware.IdentityCookieName
	}
	return credName, userName
}

// clearCredentialCookie 清除浏览器侧的凭证与用户 Cookie
func (h *Handler) clearCredentialCookie(c *gin.Context) {
	credName, userName := h.cookieNames()
	c.SetCookie(credName, "", -1, "/", "", false, false)
	c.SetCookie(userName, "", -1, "/", "", false, false)
}

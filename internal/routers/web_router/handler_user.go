package web_router

import (
	"time"

	"github.com/haierkeys/notes-web-client/internal/dto"
	pkgapp "github.com/haierkeys/notes-web-client/pkg/app"
	"github.com/haierkeys/notes-web-client/pkg/code"
	"github.com/haierkeys/notes-web-client/pkg/convert"
	apperrors "github.com/haierkeys/notes-web-client/pkg/errors"
	"github.com/haierkeys/notes-web-client/pkg/timex"
	"github.com/haierkeys/notes-web-client/pkg/util"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Login 用户登录
// @Router /api/user/login [post]
func (h *Handler) Login(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	params := &dto.UserLoginRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Warn("login param errs", zap.Any("errs", errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	result, err := h.App.Remote.Login(c.Request.Context(), params.Email, params.Password)
	if err != nil {
		h.logError(c.Request.Context(), "remote.Login", err)
		h.respondCredentialError(c, err, code.ErrorUserLoginFailed)
		return
	}

	if err := h.App.Session.Login(c.Request.Context(), result.User, result.AccessToken); err != nil {
		h.logError(c.Request.Context(), "session.Login", err)
		apperrors.ErrorResponse(c, apperrors.NewAppError(code.ErrorSessionStorage, err))
		return
	}

	h.setCredentialCookie(c, result.AccessToken)
	response.ToResponse(code.Success.WithData(h.sessionDTO()))
}

// Register 用户注册，注册成功后立即进入已登录状态
// @Router /api/user/register [post]
func (h *Handler) Register(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	params := &dto.UserRegisterRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Warn("register param errs", zap.Any("errs", errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	// 用户名格式先在本地校验，避免无效请求打到远端
	if !util.IsValidUsername(params.Username) {
		response.ToResponse(code.ErrorUserUsernameNotValid)
		return
	}

	result, err := h.App.Remote.Register(c.Request.Context(), params.Username, params.Email, params.Password)
	if err != nil {
		h.logError(c.Request.Context(), "remote.Register", err)
		h.respondCredentialError(c, err, code.ErrorUserRegisterFailed)
		return
	}

	if err := h.App.Session.Login(c.Request.Context(), result.User, result.AccessToken); err != nil {
		h.logError(c.Request.Context(), "session.Login", err)
		apperrors.ErrorResponse(c, apperrors.NewAppError(code.ErrorSessionStorage, err))
		return
	}

	h.setCredentialCookie(c, result.AccessToken)
	response.ToResponse(code.Success.WithData(h.sessionDTO()))
}

// Logout 注销当前会话
// @Router /api/user/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	if err := h.App.Session.Logout(c.Request.Context()); err != nil {
		h.logError(c.Request.Context(), "session.Logout", err)
		apperrors.ErrorResponse(c, apperrors.NewAppError(code.ErrorSessionStorage, err))
		return
	}

	h.clearCredentialCookie(c)
	response.ToResponse(code.Success)
}

// Session 返回当前会话状态
// @Router /api/user/session [get]
func (h *Handler) Session(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	response.ToResponse(code.Success.WithData(h.sessionDTO()))
}

// Users 获取可共享的用户列表
// @Router /api/users [get]
func (h *Handler) Users(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	users, err := h.App.Remote.ListUsers(c.Request.Context())
	if err != nil {
		h.logError(c.Request.Context(), "remote.ListUsers", err)
		h.respondRemoteError(c, err, code.ErrorUserListFailed)
		return
	}

	list := make([]dto.UserDTO, 0, len(users))
	for _, u := range users {
		var userDTO dto.UserDTO
		convert.StructAssign(&u, &userDTO)
		list = append(list, userDTO)
	}
	response.ToResponse(code.Success.WithData(list))
}

func (h *Handler) sessionDTO() *dto.SessionDTO {
	s := &dto.SessionDTO{
		Authenticated: h.App.Session.IsAuthenticated(),
	}
	if identity := h.App.Session.Identity(); identity != nil {
		s.User = &dto.UserDTO{}
		convert.StructAssign(identity, s.User)
	}
	if expiresAt := h.App.Session.ExpiresAt(); !expiresAt.IsZero() {
		t := timex.Time(expiresAt)
		s.ExpiresAt = &t
	}
	return s
}

func (h *Handler) setCredentialCookie(c *gin.Context, credential string) {
	maxAge := 0
	if expiresAt := h.App.Session.ExpiresAt(); !expiresAt.IsZero() {
		maxAge = int(time.Until(expiresAt).Seconds())
	}
	secure := h.App.Config().Session.CookieSecure
	credName, userName := h.cookieNames()
	c.SetCookie(credName, credential, maxAge, "/", "", secure, false)

	// 用户概要 Cookie，供前端直接读取展示
	if identity := h.App.Session.Identity(); identity != nil {
		var userDTO dto.UserDTO
		convert.StructAssign(identity, &userDTO)
		raw, err := sonic.Marshal(userDTO)
		// SetCookie 内部会做 URL 转义
		if err == nil {
			c.SetCookie(userName, string(raw), maxAge, "/", "", secure, false)
		}
	}
}

// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import (
	"github.com/haierkeys/notes-web-client/pkg/timex"
)

// UserLoginRequest 用户登录请求参数
type UserLoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

// UserRegisterRequest 用户注册请求参数
type UserRegisterRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

// UserDTO 用户数据传输对象
type UserDTO struct {
	UID      int64  `json:"uid"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// SessionDTO 当前会话数据传输对象
type SessionDTO struct {
	Authenticated bool        `json:"authenticated"`
	User          *UserDTO    `json:"user,omitempty"`
	ExpiresAt     *timex.Time `json:"expiresAt,omitempty"`
}

package domain

import "time"

// Session 本地登录会话领域模型
//
// Credential 为远端服务签发的访问令牌，本服务只保管、不验签。
type Session struct {
	ID         int64
	Credential string
	UID        int64
	Username   string
	Email      string
	ExpiresAt  time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Identity 提取会话中的账号身份
func (s *Session) Identity() *Identity {
	return &Identity{
		UID:      s.UID,
		Username: s.Username,
		Email:    s.Email,
	}
}

// IsExpired 判断会话在给定时刻是否已过期
// 无过期时间的会话视为长期有效
func (s *Session) IsExpired(now time.Time) bool {
	if s.ExpiresAt.IsZero() {
		return false
	}
	return !s.ExpiresAt.After(now)
}

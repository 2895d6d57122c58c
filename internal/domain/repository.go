package domain

import "context"

// SessionRepository 会话仓储接口
//
// 单用户客户端只保留一条会话记录。
type SessionRepository interface {
	// Get 获取当前保存的会话，不存在时返回 (nil, nil)
	Get(ctx context.Context) (*Session, error)

	// Save 保存会话，已存在时覆盖
	Save(ctx context.Context, session *Session) (*Session, error)

	// Delete 删除保存的会话
	Delete(ctx context.Context) error
}

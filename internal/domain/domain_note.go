package domain

import (
	"time"
)

// NoteStatus 定义笔记可见性状态
type NoteStatus string

const (
	NoteStatusPrivate NoteStatus = "private"
	NoteStatusShared  NoteStatus = "shared"
	NoteStatusPublic  NoteStatus = "public"
)

// IsKnown 判断状态是否为已知枚举值
func (s NoteStatus) IsKnown() bool {
	switch s {
	case NoteStatusPrivate, NoteStatusShared, NoteStatusPublic:
		return true
	}
	return false
}

// Note 笔记领域模型
//
// Tags 为逗号分隔字符串，与远端 API 保持一致。
// Owner 由远端在创建时写入，客户端不修改。
type Note struct {
	ID          int64
	Title       string
	Content     string
	Tags        string
	Status      NoteStatus
	Owner       *Identity
	SharedWith  []Identity
	PublicToken string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsSharedWith 判断笔记是否共享给指定用户
func (n *Note) IsSharedWith(uid int64) bool {
	for _, u := range n.SharedWith {
		if u.UID == uid {
			return true
		}
	}
	return false
}

// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import "github.com/haierkeys/notes-web-client/pkg/timex"

// NoteCreateRequest 创建笔记请求参数
// Tags 为逗号分隔字符串
type NoteCreateRequest struct {
	Title      string  `json:"title" form:"title" binding:"required"`
	Content    string  `json:"content" form:"content"`
	Tags       string  `json:"tags" form:"tags"`
	Status     string  `json:"status" form:"status" binding:"omitempty,note_status"`
	SharedWith []int64 `json:"sharedWith" form:"sharedWith"`
}

// NoteUpdateRequest 更新笔记请求参数
// 指针字段用于区分"未提交"与"置空"，未提交的字段不会下发到远端
type NoteUpdateRequest struct {
	Title      *string  `json:"title" form:"title"`
	Content    *string  `json:"content" form:"content"`
	Tags       *string  `json:"tags" form:"tags"`
	Status     *string  `json:"status" form:"status" binding:"omitempty,note_status"`
	SharedWith *[]int64 `json:"sharedWith" form:"sharedWith"`
}

// NoteListRequest 笔记列表请求参数
// Search 与 Status 为过滤条件，空值表示不过滤
type NoteListRequest struct {
	Search string `json:"search" form:"search"`
	Status string `json:"status" form:"status" binding:"omitempty,note_status"`
}

// NoteDTO 笔记数据传输对象
type NoteDTO struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Tags        string     `json:"tags"`
	Status      string     `json:"status"`
	Owner       *UserDTO   `json:"owner,omitempty"`
	SharedWith  []UserDTO  `json:"sharedWith,omitempty"`
	PublicToken string     `json:"publicToken,omitempty"`
	CreatedAt   timex.Time `json:"createdAt"`
	UpdatedAt   timex.Time `json:"updatedAt"`
}

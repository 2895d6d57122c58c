package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/haierkeys/notes-web-client/internal/domain"

	"github.com/pkg/errors"
)

// NotePayload 创建笔记的提交内容
type NotePayload struct {
	Title      string  `json:"title"`
	Content    string  `json:"content"`
	Tags       string  `json:"tags,omitempty"`
	Status     string  `json:"status,omitempty"`
	SharedWith []int64 `json:"shared_with,omitempty"`
}

// NotePatch 部分更新笔记的提交内容
// nil 字段不会出现在请求体中
type NotePatch struct {
	Title      *string  `json:"title,omitempty"`
	Content    *string  `json:"content,omitempty"`
	Tags       *string  `json:"tags,omitempty"`
	Status     *string  `json:"status,omitempty"`
	SharedWith *[]int64 `json:"shared_with,omitempty"`
}

func (b *noteBody) toDomain() *domain.Note {
	if b == nil {
		return nil
	}
	note := &domain.Note{
		ID:          b.ID,
		Title:       b.Title,
		Content:     b.Content,
		Tags:        b.Tags,
		Status:      domain.NoteStatus(b.Status),
		Owner:       b.User.toIdentity(),
		PublicToken: b.PublicToken,
		CreatedAt:   b.CreatedAt.Time(),
		UpdatedAt:   b.UpdatedAt.Time(),
	}
	for i := range b.SharedWith {
		note.SharedWith = append(note.SharedWith, *b.SharedWith[i].toIdentity())
	}
	return note
}

func toDomainList(bodies []noteBody) []domain.Note {
	notes := make([]domain.Note, 0, len(bodies))
	for i := range bodies {
		notes = append(notes, *bodies[i].toDomain())
	}
	return notes
}

// ListNotes 获取用户的笔记列表
// search 与 status 作为查询参数透传，404 视为空列表
func (c *Client) ListNotes(ctx context.Context, uid int64, search, status string) ([]domain.Note, error) {
	query := url.Values{}
	query.Set("user_id", strconv.FormatInt(uid, 10))
	if search != "" {
		query.Set("search", search)
	}
	if status != "" {
		query.Set("status", status)
	}

	var out []noteBody
	err := c.do(ctx, http.MethodGet, "/notes", query, nil, &out, true, "error fetching notes")
	if err != nil {
		var remoteErr *Error
		if errors.As(err, &remoteErr) && remoteErr.IsNotFound() {
			return []domain.Note{}, nil
		}
		return nil, err
	}
	return toDomainList(out), nil
}

// GetNote 获取单条笔记
func (c *Client) GetNote(ctx context.Context, id, uid int64) (*domain.Note, error) {
	query := url.Values{}
	query.Set("user_id", strconv.FormatInt(uid, 10))

	var out noteBody
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/notes/%d", id), query, nil, &out, true, "error fetching note")
	if err != nil {
		return nil, err
	}
	return out.toDomain(), nil
}

// CreateNote 创建笔记，owner 由远端写入
func (c *Client) CreateNote(ctx context.Context, payload *NotePayload) (*domain.Note, error) {
	var out noteBody
	err := c.do(ctx, http.MethodPost, "/notes", nil, payload, &out, true, "error creating note")
	if err != nil {
		return nil, err
	}
	return out.toDomain(), nil
}

// UpdateNote 部分更新笔记
func (c *Client) UpdateNote(ctx context.Context, id int64, patch *NotePatch) (*domain.Note, error) {
	var out noteBody
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/notes/%d", id), nil, patch, &out, true, "error updating note")
	if err != nil {
		return nil, err
	}
	return out.toDomain(), nil
}

// DeleteNote 删除笔记
func (c *Client) DeleteNote(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/notes/%d", id), nil, nil, nil, true, "error deleting note")
}

// ListSharedNotes 获取共享给指定用户的笔记列表
// 与 ListNotes 相同，404 视为空列表
func (c *Client) ListSharedNotes(ctx context.Context, uid int64) ([]domain.Note, error) {
	query := url.Values{}
	query.Set("user_id", strconv.FormatInt(uid, 10))

	var out []noteBody
	err := c.do(ctx, http.MethodGet, "/shared-notes", query, nil, &out, true, "error fetching shared notes")
	if err != nil {
		var remoteErr *Error
		if errors.As(err, &remoteErr) && remoteErr.IsNotFound() {
			return []domain.Note{}, nil
		}
		return nil, err
	}
	return toDomainList(out), nil
}

// Ping 探测远端服务可用性
// 登录注册之外的探测入口，不带授权头
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return errors.Wrap(err, "remote: build request")
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "remote: request failed")
	}
	resp.Body.Close()
	return nil
}

package remote

import (
	"context"
	"net/http"

	"github.com/haierkeys/notes-web-client/internal/domain"
)

// AuthResult 登录或注册成功后远端返回的结果
type AuthResult struct {
	AccessToken string
	User        *domain.Identity
}

// authBody 远端认证响应体
type authBody struct {
	AccessToken string    `json:"access_token"`
	User        *userBody `json:"user"`
}

func (b *userBody) toIdentity() *domain.Identity {
	if b == nil {
		return nil
	}
	return &domain.Identity{
		UID:      b.ID,
		Username: b.Username,
		Email:    b.Email,
	}
}

// Login 以邮箱和密码登录
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}

	var out authBody
	err := c.do(ctx, http.MethodPost, "/login", nil, body, &out, false, "login failed")
	if err != nil {
		return nil, err
	}
	return &AuthResult{AccessToken: out.AccessToken, User: out.User.toIdentity()}, nil
}

// Register 注册新账号，成功后远端直接签发令牌
func (c *Client) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	body := map[string]string{"username": username, "email": email, "password": password}

	var out authBody
	err := c.do(ctx, http.MethodPost, "/register", nil, body, &out, false, "registration failed")
	if err != nil {
		return nil, err
	}
	return &AuthResult{AccessToken: out.AccessToken, User: out.User.toIdentity()}, nil
}

// ListUsers 获取可共享的用户列表
func (c *Client) ListUsers(ctx context.Context) ([]domain.Identity, error) {
	var out []userBody
	err := c.do(ctx, http.MethodGet, "/users", nil, nil, &out, true, "error fetching users")
	if err != nil {
		return nil, err
	}

	users := make([]domain.Identity, 0, len(out))
	for i := range out {
		users = append(users, *out[i].toIdentity())
	}
	return users, nil
}

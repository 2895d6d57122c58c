// Package remote 封装对远端笔记服务的 HTTP 访问
package remote

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/haierkeys/notes-web-client/pkg/timex"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Config remote API configuration
// Config 远端 API 配置
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// CredentialFunc 返回当前访问令牌，未登录时返回空串
type CredentialFunc func() string

// Client 远端笔记服务客户端
//
// 所有请求（除登录注册外）携带 Bearer 授权头，
// 令牌由 credential 回调在每次请求时取得。
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	credential CredentialFunc
	logger     *zap.Logger
}

func NewClient(cfg Config, credential CredentialFunc, logger *zap.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("remote: base url is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, errors.Wrap(err, "remote: invalid base url")
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "notes-web-client"
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
		credential: credential,
		logger:     logger,
	}, nil
}

// userBody 远端用户结构
type userBody struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// noteBody 远端笔记结构
type noteBody struct {
	ID          int64      `json:"id"`
	User        *userBody  `json:"user"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Tags        string     `json:"tags"`
	Status      string     `json:"status"`
	SharedWith  []userBody `json:"shared_with"`
	PublicToken string     `json:"public_token"`
	CreatedAt   timex.Time `json:"created_at"`
	UpdatedAt   timex.Time `json:"updated_at"`
}

// do issues a request and decodes a 2xx JSON body into out
// do 发起请求，2xx 时将 JSON 响应体解码到 out
// 非 2xx 时返回 *Error，detail 字段缺失时使用 fallback 消息
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any, authorized bool, fallback string) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := sonic.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "remote: encode request")
		}
		reqBody = bytes.NewReader(raw)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return errors.Wrap(err, "remote: build request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	// 每个出站请求带独立 ID，便于与远端日志对账
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorized {
		if token := c.credential(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "remote: request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "remote: read response")
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		detail := fallback
		var eb errorBody
		if err := sonic.Unmarshal(raw, &eb); err == nil && eb.Detail != "" {
			detail = eb.Detail
		}
		c.logger.Warn("remote api error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("detail", detail))
		return &Error{StatusCode: resp.StatusCode, Detail: detail}
	}

	if out == nil {
		return nil
	}
	if err := sonic.Unmarshal(raw, out); err != nil {
		return errors.Wrap(err, "remote: decode response")
	}
	return nil
}

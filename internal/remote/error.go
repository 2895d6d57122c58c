package remote

import (
	"fmt"
	"net/http"
)

// Error 远端 API 返回的非 2xx 响应
//
// Detail 取远端响应体的 detail 字段，缺失时为调用方提供的兜底消息。
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	return fmt.Sprintf("remote api: %d %s", e.StatusCode, e.Detail)
}

// IsNotFound 判断是否为 404
func (e *Error) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized 判断是否为 401/403，会话应被强制失效
func (e *Error) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// errorBody 远端错误响应体
type errorBody struct {
	Detail string `json:"detail"`
}

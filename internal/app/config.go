// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/haierkeys/notes-web-client/pkg/util"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// AppConfig 应用配置
type AppConfig struct {
	File     string         `yaml:"-"` // 配置文件路径，不序列化
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Remote   RemoteConfig   `yaml:"remote"`
	Guard    GuardConfig    `yaml:"guard"`
	Session  SessionConfig  `yaml:"session"`
	App      AppSettings    `yaml:"app"`
	Tracer   TracerConfig   `yaml:"tracer"`
}

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别，参见 zapcore.ParseLevel
	Level string `yaml:"level" default:"warn"`
	// File 日志文件路径，默认为 stderr
	File string `yaml:"file" default:"storage/logs/log.log"`
	// Production 是否启用 JSON 输出
	Production bool `yaml:"production" default:"true"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	// RunMode 运行模式
	RunMode string `yaml:"run-mode" default:"release"`
	// HttpPort HTTP 端口
	HttpPort string `yaml:"http-port" default:":9000"`
	// ReadTimeout 读取超时（秒）
	ReadTimeout int `yaml:"read-timeout" default:"60"`
	// WriteTimeout 写入超时（秒）
	WriteTimeout int `yaml:"write-timeout" default:"60"`
	// PrivateHttpListen 私有 HTTP 监听地址
	PrivateHttpListen string `yaml:"private-http-listen" default:":9001"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	// Type 数据库类型
	Type string `yaml:"type" default:"sqlite"`
	// Path SQLite 数据库文件路径
	Path string `yaml:"path" default:"storage/database/db.sqlite3"`
	// TablePrefix 表前缀
	TablePrefix string `yaml:"table-prefix"`
	// MaxIdleConns 最大闲置连接数，默认 10
	MaxIdleConns int `yaml:"max-idle-conns" default:"10"`
	// MaxOpenConns 最大打开连接数，默认 100
	MaxOpenConns int `yaml:"max-open-conns" default:"100"`
}

// RemoteConfig 远端笔记服务配置
type RemoteConfig struct {
	// BaseURL 远端 API 地址
	BaseURL string `yaml:"base-url" default:"http://localhost:8000"`
	// Timeout 单次请求超时，支持格式：15s（秒）、1m（分钟）
	Timeout string `yaml:"timeout" default:"15s"`
	// PingInterval 可用性探测间隔
	PingInterval string `yaml:"ping-interval" default:"5m"`
	// UserAgent 出站请求的 User-Agent 头
	UserAgent string `yaml:"user-agent" default:"notes-web-client"`
}

// GuardConfig 页面路由守卫配置
type GuardConfig struct {
	// ProtectedPrefixes 需要登录才能访问的路径前缀
	ProtectedPrefixes []string `yaml:"protected-prefixes"`
	// RedirectTarget 未登录时跳转的路径
	RedirectTarget string `yaml:"redirect-target" default:"/"`
}

// SessionConfig 会话配置
type SessionConfig struct {
	// CookieName 凭证 Cookie 名
	CookieName string `yaml:"cookie-name" default:"token"`
	// UserCookieName 用户概要 Cookie 名
	UserCookieName string `yaml:"user-cookie-name" default:"user"`
	// CookieSecure 凭证 Cookie 是否仅通过 HTTPS 下发
	CookieSecure bool `yaml:"cookie-secure" default:"false"`
}

// AppSettings 应用设置
type AppSettings struct {
	// DefaultPageSize 默认页面大小
	DefaultPageSize int `yaml:"default-page-size" default:"10"`
	// MaxPageSize 最大页面大小
	MaxPageSize int `yaml:"max-page-size" default:"100"`
	// DefaultContextTimeout 默认上下文超时时间
	DefaultContextTimeout int `yaml:"default-context-timeout" default:"60"`
}

// TracerConfig 请求追踪配置
type TracerConfig struct {
	// Enabled 是否启用追踪
	Enabled bool `yaml:"enabled" default:"true"`
	// Header 追踪 ID 请求头名称，默认 X-Trace-ID
	Header string `yaml:"header" default:"X-Trace-ID"`
}

// LoadConfig 从文件加载配置
// 返回配置实例和配置文件的绝对路径
func LoadConfig(f string) (*AppConfig, string, error) {
	realpath, err := filepath.Abs(f)
	if err != nil {
		return nil, "", err
	}
	realpath = filepath.Clean(realpath)

	c := new(AppConfig)
	c.File = realpath

	// 设置默认值
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "set default config failed")
	}

	file, err := os.ReadFile(realpath)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "read config file failed")
	}

	err = yaml.Unmarshal(file, c)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "parse config file failed")
	}

	// 再次设置默认值，以填充 YAML 中存在但值为空的字段
	// defaults.Set 只有在字段为该类型的零值时才会填充
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "re-set default config failed")
	}

	if len(c.Guard.ProtectedPrefixes) == 0 {
		c.Guard.ProtectedPrefixes = []string{"/sharedNotes", "/notes", "/home", "/settings"}
	}

	return c, realpath, nil
}

// Save 保存配置到文件
func (c *AppConfig) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config failed")
	}

	err = os.WriteFile(c.File, data, 0644)
	if err != nil {
		return errors.Wrap(err, "write config file failed")
	}

	return nil
}

// GetRemoteTimeout 获取远端请求超时时间
func (c *AppConfig) GetRemoteTimeout() time.Duration {
	if timeout, err := util.ParseDuration(c.Remote.Timeout); err == nil {
		return timeout
	}
	return 15 * time.Second
}

// GetRemotePingInterval 获取远端探测间隔
func (c *AppConfig) GetRemotePingInterval() time.Duration {
	if interval, err := util.ParseDuration(c.Remote.PingInterval); err == nil {
		return interval
	}
	return 5 * time.Minute
}

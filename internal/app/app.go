// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"context"
	"fmt"

	"github.com/haierkeys/notes-web-client/internal/dao"
	"github.com/haierkeys/notes-web-client/internal/domain"
	"github.com/haierkeys/notes-web-client/internal/remote"
	"github.com/haierkeys/notes-web-client/internal/session"
	pkgapp "github.com/haierkeys/notes-web-client/pkg/app"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	// Repository 层
	SessionRepo domain.SessionRepository

	// Service 层
	Session *session.Service
	Remote  *remote.Client
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// db: 数据库连接（必须）
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	a := &App{
		config: cfg,
		logger: logger,
		DB:     db,
	}

	// 初始化 DAO
	a.Dao = dao.New(db)

	// 初始化 Repository 层
	a.SessionRepo = dao.NewSessionRepository(a.Dao)

	// 初始化 Service 层（依赖注入）
	a.Session = session.NewService(a.SessionRepo, logger)

	// 远端客户端：每次请求时从会话服务取当前凭证
	remoteClient, err := remote.NewClient(remote.Config{
		BaseURL:   cfg.Remote.BaseURL,
		Timeout:   cfg.GetRemoteTimeout(),
		UserAgent: cfg.Remote.UserAgent,
	}, a.Session.Credential, logger)
	if err != nil {
		return nil, err
	}
	a.Remote = remoteClient

	// 启动时恢复持久化的会话
	a.Session.Restore(context.Background())

	logger.Info("App container initialized successfully",
		zap.String("remote", cfg.Remote.BaseURL),
		zap.Bool("authenticated", a.Session.IsAuthenticated()))

	return a, nil
}

// Close 释放应用容器持有的资源
func (a *App) Close() error {
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		a.logger.Info("Database connection closed")
	}
	return nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Version 获取版本信息
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}

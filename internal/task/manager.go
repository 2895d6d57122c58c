package task

import (
	internalApp "github.com/haierkeys/notes-web-client/internal/app"
	"github.com/haierkeys/notes-web-client/pkg/safe_close"

	"go.uber.org/zap"
)

// Manager 任务管理器,负责创建和管理所有任务
type Manager struct {
	scheduler *Scheduler
	logger    *zap.Logger
	app       *internalApp.App
}

// NewManager 创建任务管理器
func NewManager(logger *zap.Logger, sc *safe_close.SafeClose, app *internalApp.App) *Manager {
	return &Manager{
		scheduler: NewScheduler(logger, sc),
		logger:    logger,
		app:       app,
	}
}

// RegisterTasks 注册所有任务
func (m *Manager) RegisterTasks() error {
	// 远端服务可用性探测
	pingTask := NewRemotePingTask(m.app.Remote, m.logger, m.app.Config().GetRemotePingInterval())
	m.scheduler.AddTask(pingTask)

	return nil
}

// Start 启动所有已注册的任务
func (m *Manager) Start() {
	m.scheduler.Start()
}

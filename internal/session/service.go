// Package session 管理本地登录会话的生命周期
package session

import (
	"context"
	"sync"
	"time"

	"github.com/haierkeys/notes-web-client/internal/domain"
	pkgapp "github.com/haierkeys/notes-web-client/pkg/app"

	"go.uber.org/zap"
)

// ExpireFunc 会话因凭证到期被强制注销时的回调
type ExpireFunc func()

// Service 会话服务
//
// 持有当前会话的内存态，持久化交给注入的仓储。
// 凭证由远端签发，本服务只解析载荷读取过期时间，不验签。
// 到期注销由内部定时器驱动，手动注销或重新登录会取消旧定时器。
type Service struct {
	mu       sync.Mutex
	repo     domain.SessionRepository
	logger   *zap.Logger
	onExpire ExpireFunc

	current *domain.Session
	timer   *time.Timer
	// gen 在每次会话变更时递增。Stop 拦不住已触发的 AfterFunc，
	// 旧定时器可能在被取消前已进入等锁状态，靠代号比对拒掉过期回调。
	gen uint64
}

func NewService(repo domain.SessionRepository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// OnExpire 注册到期回调，需在使用前设置
func (s *Service) OnExpire(f ExpireFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onExpire = f
}

// Restore 从持久化存储恢复会话
//
// 凭证无法解析或已过期时清除存储并保持未登录态，
// 存储读取失败同样视为未登录，不向上传播。
func (s *Service) Restore(ctx context.Context) {
	saved, err := s.repo.Get(ctx)
	if err != nil {
		s.logger.Warn("session restore: storage read failed", zap.Error(err))
		return
	}
	if saved == nil {
		return
	}

	expiry, err := pkgapp.GetTokenExpiry(saved.Credential)
	if err != nil {
		s.logger.Warn("session restore: credential undecodable, clearing", zap.Error(err))
		s.clearStorage(ctx)
		return
	}

	saved.ExpiresAt = expiry

	now := time.Now()
	if saved.IsExpired(now) {
		s.logger.Info("session restore: credential expired, clearing",
			zap.Time("expiry", expiry))
		s.clearStorage(ctx)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.current = saved
	s.scheduleLocked(expiry, now)

	s.logger.Info("session restored",
		zap.Int64("uid", saved.UID),
		zap.String("username", saved.Username))
}

// Login 写入新会话，无条件覆盖旧会话
func (s *Service) Login(ctx context.Context, identity *domain.Identity, credential string) error {
	expiry, _ := pkgapp.GetTokenExpiry(credential)

	sess := &domain.Session{
		Credential: credential,
		UID:        identity.UID,
		Username:   identity.Username,
		Email:      identity.Email,
		ExpiresAt:  expiry,
	}

	saved, err := s.repo.Save(ctx, sess)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelTimerLocked()
	s.gen++
	s.current = saved
	s.scheduleLocked(expiry, time.Now())

	s.logger.Info("session login",
		zap.Int64("uid", identity.UID),
		zap.String("username", identity.Username))
	return nil
}

// Logout 清除会话
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.cancelTimerLocked()
	s.gen++
	s.current = nil
	s.mu.Unlock()

	if err := s.repo.Delete(ctx); err != nil {
		s.logger.Warn("session logout: storage delete failed", zap.Error(err))
		return err
	}
	s.logger.Info("session logout")
	return nil
}

// IsAuthenticated 判断当前是否持有会话
// 仅检查凭证存在性，到期失效由定时器负责
func (s *Service) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil && s.current.Credential != ""
}

// Identity 返回当前会话的账号身份，未登录时返回 nil
func (s *Service) Identity() *domain.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	return s.current.Identity()
}

// Credential 返回当前访问令牌，未登录时返回空串
func (s *Service) Credential() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ""
	}
	return s.current.Credential
}

// ExpiresAt 返回当前会话的到期时间，未登录或长期有效时为零值
func (s *Service) ExpiresAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return time.Time{}
	}
	return s.current.ExpiresAt
}

// scheduleLocked 安排到期注销定时器，调用方需持有锁
// 无到期时间的凭证不设定时器
func (s *Service) scheduleLocked(expiry time.Time, now time.Time) {
	if expiry.IsZero() {
		return
	}
	d := expiry.Sub(now)
	if d < 0 {
		d = 0
	}
	gen := s.gen
	s.timer = time.AfterFunc(d, func() { s.expire(gen) })
}

// cancelTimerLocked 取消旧定时器，避免旧会话的定时器打掉新会话
func (s *Service) cancelTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// expire 定时器触发的强制注销
// gen 与当前代号不符说明会话已被重新登录或注销，回调作废
func (s *Service) expire(gen uint64) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.gen++
	s.timer = nil
	s.current = nil
	onExpire := s.onExpire
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.repo.Delete(ctx); err != nil {
		s.logger.Warn("session expire: storage delete failed", zap.Error(err))
	}
	s.logger.Info("session expired, forced logout")

	if onExpire != nil {
		onExpire()
	}
}

func (s *Service) clearStorage(ctx context.Context) {
	if err := s.repo.Delete(ctx); err != nil {
		s.logger.Warn("session clear: storage delete failed", zap.Error(err))
	}
}

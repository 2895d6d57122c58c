package dao

import (
	"context"
	"sync"
	"time"

	"github.com/haierkeys/notes-web-client/internal/domain"
	"github.com/haierkeys/notes-web-client/pkg/timex"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// 单用户客户端只保留一条会话记录
const sessionRowID = 1

// sessionRepository 实现 domain.SessionRepository 接口
type sessionRepository struct {
	dao     *Dao
	once    sync.Once
	initErr error
}

// NewSessionRepository 创建 SessionRepository 实例
func NewSessionRepository(dao *Dao) domain.SessionRepository {
	return &sessionRepository{dao: dao}
}

// session 获取会话查询对象，首次使用时建表
// 建表失败的错误会被记住并在后续所有调用中返回
func (r *sessionRepository) session(ctx context.Context) (*gorm.DB, error) {
	r.once.Do(func() {
		r.initErr = AutoMigrateSession(r.dao.db)
	})
	if r.initErr != nil {
		return nil, errors.Wrap(r.initErr, "session table migrate")
	}
	return r.dao.db.WithContext(ctx), nil
}

// toDomain 将数据库模型转换为领域模型
func (r *sessionRepository) toDomain(m *Session) *domain.Session {
	if m == nil {
		return nil
	}
	return &domain.Session{
		ID:         m.ID,
		Credential: m.Credential,
		UID:        m.UID,
		Username:   m.Username,
		Email:      m.Email,
		ExpiresAt:  m.ExpiresAt.Time(),
		CreatedAt:  m.CreatedAt.Time(),
		UpdatedAt:  m.UpdatedAt.Time(),
	}
}

// toModel 将领域模型转换为数据库模型
func (r *sessionRepository) toModel(s *domain.Session) *Session {
	if s == nil {
		return nil
	}
	return &Session{
		ID:         sessionRowID,
		Credential: s.Credential,
		UID:        s.UID,
		Username:   s.Username,
		Email:      s.Email,
		ExpiresAt:  timex.Time(s.ExpiresAt),
		CreatedAt:  timex.Time(s.CreatedAt),
		UpdatedAt:  timex.Time(s.UpdatedAt),
	}
}

// Get 获取当前保存的会话，不存在时返回 (nil, nil)
func (r *sessionRepository) Get(ctx context.Context) (*domain.Session, error) {
	db, err := r.session(ctx)
	if err != nil {
		return nil, err
	}

	var m Session
	err = db.Where("id = ?", sessionRowID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Save 保存会话，已存在时覆盖
func (r *sessionRepository) Save(ctx context.Context, session *domain.Session) (*domain.Session, error) {
	db, err := r.session(ctx)
	if err != nil {
		return nil, err
	}

	m := r.toModel(session)
	now := timex.Time(time.Now())
	m.UpdatedAt = now
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}

	if err := db.Save(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// Delete 删除保存的会话
func (r *sessionRepository) Delete(ctx context.Context) error {
	db, err := r.session(ctx)
	if err != nil {
		return err
	}
	return db.Where("id = ?", sessionRowID).Delete(&Session{}).Error
}

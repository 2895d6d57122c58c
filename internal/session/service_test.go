package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/haierkeys/notes-web-client/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memoryRepository 内存会话仓储,测试用
type memoryRepository struct {
	mu      sync.Mutex
	session *domain.Session
}

func (r *memoryRepository) Get(ctx context.Context) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session == nil {
		return nil, nil
	}
	copied := *r.session
	return &copied, nil
}

func (r *memoryRepository) Save(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *s
	r.session = &copied
	return s, nil
}

func (r *memoryRepository) Delete(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.session = nil
	return nil
}

func signToken(t *testing.T, uid int64, expiresAt time.Time) string {
	t.Helper()

	claims := jwt.MapClaims{"uid": uid}
	if !expiresAt.IsZero() {
		claims["exp"] = expiresAt.Unix()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("remote-secret"))
	require.NoError(t, err)
	return signed
}

func alice() *domain.Identity {
	return &domain.Identity{UID: 1, Username: "alice", Email: "alice@example.com"}
}

func TestLoginSetsAuthenticated(t *testing.T) {
	repo := &memoryRepository{}
	s := NewService(repo, zap.NewNop())

	assert.False(t, s.IsAuthenticated())

	token := signToken(t, 1, time.Now().Add(1*time.Hour))
	require.NoError(t, s.Login(context.Background(), alice(), token))

	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, token, s.Credential())
	require.NotNil(t, s.Identity())
	assert.Equal(t, int64(1), s.Identity().UID)
}

func TestLoginPersistsSession(t *testing.T) {
	repo := &memoryRepository{}
	s := NewService(repo, zap.NewNop())

	token := signToken(t, 1, time.Now().Add(1*time.Hour))
	require.NoError(t, s.Login(context.Background(), alice(), token))

	saved, err := repo.Get(context.Background())
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, token, saved.Credential)
	assert.Equal(t, "alice", saved.Username)
}

func TestRestoreAfterLogin(t *testing.T) {
	repo := &memoryRepository{}
	token := signToken(t, 1, time.Now().Add(1*time.Hour))

	first := NewService(repo, zap.NewNop())
	require.NoError(t, first.Login(context.Background(), alice(), token))

	// 模拟进程重启后的恢复
	second := NewService(repo, zap.NewNop())
	second.Restore(context.Background())

	assert.True(t, second.IsAuthenticated())
	assert.Equal(t, token, second.Credential())
	require.NotNil(t, second.Identity())
	assert.Equal(t, "alice", second.Identity().Username)
}

func TestRestoreExpiredCredentialClears(t *testing.T) {
	repo := &memoryRepository{}
	expired := signToken(t, 1, time.Now().Add(-1*time.Minute))
	repo.Save(context.Background(), &domain.Session{Credential: expired, UID: 1, Username: "alice"})

	s := NewService(repo, zap.NewNop())
	s.Restore(context.Background())

	assert.False(t, s.IsAuthenticated())

	saved, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, saved, "expired session should be removed from storage")
}

func TestRestoreUndecodableCredentialClears(t *testing.T) {
	repo := &memoryRepository{}
	repo.Save(context.Background(), &domain.Session{Credential: "garbage", UID: 1})

	s := NewService(repo, zap.NewNop())
	s.Restore(context.Background())

	assert.False(t, s.IsAuthenticated())

	saved, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, saved)
}

func TestRestoreEmptyStorage(t *testing.T) {
	s := NewService(&memoryRepository{}, zap.NewNop())
	s.Restore(context.Background())
	assert.False(t, s.IsAuthenticated())
}

func TestLogoutClearsEverything(t *testing.T) {
	repo := &memoryRepository{}
	s := NewService(repo, zap.NewNop())

	token := signToken(t, 1, time.Now().Add(1*time.Hour))
	require.NoError(t, s.Login(context.Background(), alice(), token))
	require.NoError(t, s.Logout(context.Background()))

	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Credential())
	assert.Nil(t, s.Identity())

	saved, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, saved)
}

func TestExpiryTimerForcesLogout(t *testing.T) {
	repo := &memoryRepository{}
	s := NewService(repo, zap.NewNop())

	expired := make(chan struct{})
	s.OnExpire(func() { close(expired) })

	token := signToken(t, 1, time.Now().Add(50*time.Millisecond))
	require.NoError(t, s.Login(context.Background(), alice(), token))
	assert.True(t, s.IsAuthenticated())

	select {
	case <-expired:
	case <-time.After(2 * time.Second):
		t.Fatal("expiry callback never fired")
	}

	assert.False(t, s.IsAuthenticated())

	saved, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, saved)
}

func TestReloginCancelsPreviousTimer(t *testing.T) {
	repo := &memoryRepository{}
	s := NewService(repo, zap.NewNop())

	var mu sync.Mutex
	var fired int
	s.OnExpire(func() {
		mu.Lock()
		fired++
		mu.Unlock()
	})

	shortToken := signToken(t, 1, time.Now().Add(80*time.Millisecond))
	require.NoError(t, s.Login(context.Background(), alice(), shortToken))

	// 旧定时器到期前重新登录
	longToken := signToken(t, 1, time.Now().Add(1*time.Hour))
	require.NoError(t, s.Login(context.Background(), alice(), longToken))

	time.Sleep(300 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Zero(t, fired, "stale timer must not fire after re-login")
	assert.True(t, s.IsAuthenticated())
}

// AfterFunc 一旦触发就无法被 Stop 拦截：旧定时器可能在重新登录
// 持锁期间已经触发并排队等锁，解锁后才执行。通过直接调用旧代号的
// 到期回调模拟这种时序。
func TestStaleExpiryDoesNotClearNewSession(t *testing.T) {
	repo := &memoryRepository{}
	s := NewService(repo, zap.NewNop())

	var mu sync.Mutex
	var fired int
	s.OnExpire(func() {
		mu.Lock()
		fired++
		mu.Unlock()
	})

	first := signToken(t, 1, time.Now().Add(1*time.Hour))
	require.NoError(t, s.Login(context.Background(), alice(), first))

	s.mu.Lock()
	staleGen := s.gen
	s.mu.Unlock()

	second := signToken(t, 1, time.Now().Add(2*time.Hour))
	require.NoError(t, s.Login(context.Background(), alice(), second))

	s.expire(staleGen)

	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, second, s.Credential())

	saved, err := repo.Get(context.Background())
	require.NoError(t, err)
	require.NotNil(t, saved, "stale expiry must not wipe the new session from storage")
	assert.Equal(t, second, saved.Credential)

	mu.Lock()
	assert.Zero(t, fired, "stale expiry must not invoke the expire callback")
	mu.Unlock()

	// 当前代号的到期回调仍然生效
	s.mu.Lock()
	currentGen := s.gen
	s.mu.Unlock()
	s.expire(currentGen)

	assert.False(t, s.IsAuthenticated())

	mu.Lock()
	assert.Equal(t, 1, fired)
	mu.Unlock()
}

func TestLogoutCancelsTimer(t *testing.T) {
	repo := &memoryRepository{}
	s := NewService(repo, zap.NewNop())

	var mu sync.Mutex
	var fired int
	s.OnExpire(func() {
		mu.Lock()
		fired++
		mu.Unlock()
	})

	token := signToken(t, 1, time.Now().Add(80*time.Millisecond))
	require.NoError(t, s.Login(context.Background(), alice(), token))
	require.NoError(t, s.Logout(context.Background()))

	time.Sleep(300 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Zero(t, fired, "timer must not fire after manual logout")
}

func TestTokenWithoutExpiryStaysValid(t *testing.T) {
	repo := &memoryRepository{}
	s := NewService(repo, zap.NewNop())

	token := signToken(t, 1, time.Time{})
	require.NoError(t, s.Login(context.Background(), alice(), token))

	assert.True(t, s.IsAuthenticated())
	assert.True(t, s.ExpiresAt().IsZero())
}

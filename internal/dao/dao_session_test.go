package dao

import (
	"context"
	"testing"
	"time"

	"github.com/haierkeys/notes-web-client/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) domain.SessionRepository {
	t.Helper()

	db, err := NewDBEngineWithConfig(DatabaseConfig{
		Type:         "sqlite",
		Path:         ":memory:",
		MaxIdleConns: 1,
		MaxOpenConns: 1,
	})
	require.NoError(t, err)

	return NewSessionRepository(New(db))
}

func TestSessionRepositoryGetEmpty(t *testing.T) {
	r := newTestRepository(t)

	got, err := r.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionRepositorySaveAndGet(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()

	expiresAt := time.Now().Add(1 * time.Hour).Truncate(time.Second)
	saved, err := r.Save(ctx, &domain.Session{
		Credential: "token-abc",
		UID:        1001,
		Username:   "alice",
		Email:      "alice@example.com",
		ExpiresAt:  expiresAt,
	})
	require.NoError(t, err)
	assert.Equal(t, "token-abc", saved.Credential)

	got, err := r.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "token-abc", got.Credential)
	assert.Equal(t, int64(1001), got.UID)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.True(t, got.ExpiresAt.Equal(expiresAt), "got %v want %v", got.ExpiresAt, expiresAt)
}

func TestSessionRepositorySaveOverwrites(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()

	_, err := r.Save(ctx, &domain.Session{Credential: "first", UID: 1})
	require.NoError(t, err)

	_, err = r.Save(ctx, &domain.Session{Credential: "second", UID: 2})
	require.NoError(t, err)

	got, err := r.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "second", got.Credential)
	assert.Equal(t, int64(2), got.UID)
}

func TestSessionRepositoryDelete(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()

	_, err := r.Save(ctx, &domain.Session{Credential: "tok", UID: 1})
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx))

	got, err := r.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	// 删除不存在的会话不报错
	assert.NoError(t, r.Delete(ctx))
}

// 首次使用时建表失败的错误必须向调用方传播，而不是被吞掉
func TestSessionRepositoryMigrateFailurePropagates(t *testing.T) {
	db, err := NewDBEngineWithConfig(DatabaseConfig{
		Type:         "sqlite",
		Path:         ":memory:",
		MaxIdleConns: 1,
		MaxOpenConns: 1,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	r := NewSessionRepository(New(db))
	ctx := context.Background()

	_, err = r.Get(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session table migrate")

	// 后续调用同样返回建表错误
	_, err = r.Save(ctx, &domain.Session{Credential: "tok", UID: 1})
	assert.Error(t, err)
	assert.Error(t, r.Delete(ctx))
}

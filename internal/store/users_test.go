package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"ishan/rms-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupUserStore(t *testing.T) (*UserStore, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(model.User{}, model.Request{}))

	return NewUserStore(db), db
}

func strPtr(s string) *string        { return &s }
func timePtr(t time.Time) *time.Time { return &t }

func seedUser(t *testing.T, s *UserStore, username string, mod func(*model.User)) *model.User {
	t.Helper()

	u := &model.User{
		ID:           username + "0000000000",
		Username:     username,
		Email:        username + "@x.com",
		PasswordHash: "hash",
		Role:         model.RoleUser,
	}
	if mod != nil {
		mod(u)
	}

	require.NoError(t, s.Create(context.Background(), u))
	return u
}

func TestCreate_DuplicateIdentity(t *testing.T) {
	ctx := context.Background()
	s, _ := setupUserStore(t)

	seedUser(t, s, "alice", nil)

	err := s.Create(ctx, &model.User{ID: "x1", Username: "alice", Email: "fresh@x.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, ErrDuplicate)

	err = s.Create(ctx, &model.User{ID: "x2", Username: "fresh", Email: "alice@x.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestByIdentifier(t *testing.T) {
	ctx := context.Background()
	s, _ := setupUserStore(t)

	seedUser(t, s, "alice", nil)

	byName, err := s.ByIdentifier(ctx, "alice")
	require.NoError(t, err)
	byMail, err := s.ByIdentifier(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, byName.ID, byMail.ID)

	_, err = s.ByIdentifier(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConsumeVerifyToken(t *testing.T) {
	ctx := context.Background()
	s, db := setupUserStore(t)

	now := time.Now()
	seedUser(t, s, "alice", func(u *model.User) {
		u.VerifyTokenHash = strPtr("hash-a")
		u.VerifyTokenExpiry = timePtr(now.Add(time.Hour))
	})

	// Wrong hash changes nothing
	n, err := s.ConsumeVerifyToken(ctx, "hash-b", now)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = s.ConsumeVerifyToken(ctx, "hash-a", now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	// Verified flag and the token columns move together
	var u model.User
	require.NoError(t, db.Where("username = ?", "alice").First(&u).Error)
	assert.True(t, u.Verified)
	assert.Nil(t, u.VerifyTokenHash)
	assert.Nil(t, u.VerifyTokenExpiry)

	// Replay fails: the hash is gone
	n, err = s.ConsumeVerifyToken(ctx, "hash-a", now)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestConsumeVerifyToken_Expired(t *testing.T) {
	ctx := context.Background()
	s, _ := setupUserStore(t)

	now := time.Now()
	seedUser(t, s, "alice", func(u *model.User) {
		u.VerifyTokenHash = strPtr("hash-a")
		u.VerifyTokenExpiry = timePtr(now.Add(-time.Minute))
	})

	// Matching hash, passed expiry: same zero-rows outcome as not-found
	n, err := s.ConsumeVerifyToken(ctx, "hash-a", now)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestConsumeResetToken(t *testing.T) {
	ctx := context.Background()
	s, db := setupUserStore(t)

	now := time.Now()
	u := seedUser(t, s, "alice", nil)

	require.NoError(t, s.SetResetToken(ctx, u.ID, "reset-hash", now.Add(15*time.Minute)))

	n, err := s.ConsumeResetToken(ctx, "reset-hash", "new-password-hash", now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	var got model.User
	require.NoError(t, db.First(&got, "id = ?", u.ID).Error)
	assert.Equal(t, "new-password-hash", got.PasswordHash)
	assert.Nil(t, got.ResetTokenHash)
	assert.Nil(t, got.ResetTokenExpiry)

	n, err = s.ConsumeResetToken(ctx, "reset-hash", "other", now)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestClearExpiredTokens(t *testing.T) {
	ctx := context.Background()
	s, db := setupUserStore(t)

	now := time.Now()
	seedUser(t, s, "stale", func(u *model.User) {
		u.VerifyTokenHash = strPtr("old-verify")
		u.VerifyTokenExpiry = timePtr(now.Add(-time.Hour))
		u.ResetTokenHash = strPtr("old-reset")
		u.ResetTokenExpiry = timePtr(now.Add(-time.Hour))
	})
	seedUser(t, s, "fresh", func(u *model.User) {
		u.VerifyTokenHash = strPtr("live-verify")
		u.VerifyTokenExpiry = timePtr(now.Add(time.Hour))
	})

	n, err := s.ClearExpiredTokens(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	var stale, fresh model.User
	require.NoError(t, db.Where("username = ?", "stale").First(&stale).Error)
	require.NoError(t, db.Where("username = ?", "fresh").First(&fresh).Error)

	assert.Nil(t, stale.VerifyTokenHash)
	assert.Nil(t, stale.ResetTokenHash)
	require.NotNil(t, fresh.VerifyTokenHash)
	assert.Equal(t, "live-verify", *fresh.VerifyTokenHash)
}

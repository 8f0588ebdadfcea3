package store

import (
	"context"
	"errors"
	"time"

	"ishan/rms-api/internal/model"

	"gorm.io/gorm"
)

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a new user. Uniqueness of username and email is enforced
// by the database constraints, not by a pre-check, so two simultaneous
// registrations with the same identity cannot both succeed.
func (s *UserStore) Create(ctx context.Context, u *model.User) error {
	err := s.db.WithContext(ctx).Create(u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

// ByIdentifier looks a user up by username or email.
func (s *UserStore) ByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	var u model.User

	err := s.db.WithContext(ctx).
		Where("username = ? OR email = ?", identifier, identifier).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (s *UserStore) ByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User

	err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// SetResetToken stores a new reset-token hash and expiry for the user,
// replacing any previous one.
func (s *UserStore) SetResetToken(ctx context.Context, userID, tokenHash string, expiry time.Time) error {
	return s.db.WithContext(ctx).
		Model(model.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"reset_token_hash":   tokenHash,
			"reset_token_expiry": expiry,
		}).Error
}

// ConsumeVerifyToken marks the matching user verified and nulls the token
// columns in one statement, so the token cannot be replayed and there is no
// window where it is spent but the user is still unverified. Zero affected
// rows means the hash didn't match or the token expired; which one is not
// distinguished.
func (s *UserStore) ConsumeVerifyToken(ctx context.Context, tokenHash string, now time.Time) (int64, error) {
	r := s.db.WithContext(ctx).
		Model(model.User{}).
		Where("verify_token_hash = ? AND verify_token_expiry > ?", tokenHash, now).
		Updates(map[string]any{
			"verified":            true,
			"verify_token_hash":   nil,
			"verify_token_expiry": nil,
		})

	return r.RowsAffected, r.Error
}

// ConsumeResetToken sets the new password hash and nulls the reset-token
// columns in the same statement. Same affected-count contract as
// ConsumeVerifyToken.
func (s *UserStore) ConsumeResetToken(ctx context.Context, tokenHash, newPasswordHash string, now time.Time) (int64, error) {
	r := s.db.WithContext(ctx).
		Model(model.User{}).
		Where("reset_token_hash = ? AND reset_token_expiry > ?", tokenHash, now).
		Updates(map[string]any{
			"password_hash":      newPasswordHash,
			"reset_token_hash":   nil,
			"reset_token_expiry": nil,
		})

	return r.RowsAffected, r.Error
}

// ClearExpiredTokens nulls out token hashes whose expiry has passed. The
// tokens are already unusable; this just keeps stale hashes out of the table.
func (s *UserStore) ClearExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	r := s.db.WithContext(ctx).
		Model(model.User{}).
		Where("verify_token_expiry < ?", now).
		Updates(map[string]any{
			"verify_token_hash":   nil,
			"verify_token_expiry": nil,
		})
	if r.Error != nil {
		return r.RowsAffected, r.Error
	}

	cleared := r.RowsAffected

	r = s.db.WithContext(ctx).
		Model(model.User{}).
		Where("reset_token_expiry < ?", now).
		Updates(map[string]any{
			"reset_token_hash":   nil,
			"reset_token_expiry": nil,
		})

	return cleared + r.RowsAffected, r.Error
}

// Package auth implements the credential lifecycle: registration, email
// verification, login and password reset, plus the session claims that
// authorize everything else.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ishan/rms-api/internal/model"
	"ishan/rms-api/internal/service"
	"ishan/rms-api/internal/store"
	"ishan/rms-api/pkg/security"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	verifyTokenTTL = 24 * time.Hour
	resetTokenTTL  = 15 * time.Minute

	idCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	idLength  = 16
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotVerified        = errors.New("email not verified")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

type Service struct {
	Users  *store.UserStore
	Argon  *security.ArgonHash
	Mailer service.Mailer
}

func NewService(users *store.UserStore, argon *security.ArgonHash, mailer service.Mailer) *Service {
	return &Service{
		Users:  users,
		Argon:  argon,
		Mailer: mailer,
	}
}

func verificationRequired() bool {
	return viper.GetBool("app.require_verification")
}

// Register creates a new account. The role input is normalized so anything
// other than MANAGER becomes USER. Duplicate username or email surfaces as
// ErrUserExists via the database's uniqueness constraints. When the
// verification policy is on, a verification link is dispatched best-effort
// after the insert; delivery failure never fails registration.
func (s *Service) Register(ctx context.Context, username, email, password, role string) error {
	hash, err := s.Argon.GenerateFromPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password, %w", err)
	}

	id, err := gonanoid.Generate(idCharset, idLength)
	if err != nil {
		return fmt.Errorf("failed to generate user ID, %w", err)
	}

	u := &model.User{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         model.NormalizeRole(role),
		Verified:     !verificationRequired(),
	}

	var plainToken string

	if verificationRequired() {
		plainToken, err = security.GenerateToken()
		if err != nil {
			return fmt.Errorf("failed to generate verification token, %w", err)
		}

		tokenHash := security.HashToken(plainToken)
		expiry := time.Now().Add(verifyTokenTTL)

		u.VerifyTokenHash = &tokenHash
		u.VerifyTokenExpiry = &expiry
	}

	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return ErrUserExists
		}
		return err
	}

	if plainToken != "" {
		verifyURL := fmt.Sprintf("%s/verify-email?token=%s", viper.GetString("host.frontend_url"), plainToken)
		service.Dispatch(func() error { return s.Mailer.SendVerifyMail(email, verifyURL) }, "verify", email)
	}

	return nil
}

// VerifyEmail consumes a verification token. Not-found and expired collapse
// into the same ErrInvalidToken so a caller cannot probe which occurred.
func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	n, err := s.Users.ConsumeVerifyToken(ctx, security.HashToken(token), time.Now())
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrInvalidToken
	}
	return nil
}

// Login authenticates by username or email. Unknown identity and wrong
// password both return ErrInvalidCredentials. An unverified account whose
// password matched gets the distinct ErrNotVerified, since the account's
// existence is already implied at that point.
func (s *Service) Login(ctx context.Context, identifier, password string) (string, *model.User, error) {
	u, err := s.Users.ByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	ok, err := s.Argon.VerifyPasswd(password, u.PasswordHash)
	if err != nil {
		return "", nil, err
	}
	if !ok {
		return "", nil, ErrInvalidCredentials
	}

	if verificationRequired() && !u.Verified {
		return "", nil, ErrNotVerified
	}

	token, err := MintToken(u)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign session claim, %w", err)
	}

	return token, u, nil
}

// ForgotPassword never tells the caller whether the email exists. When it
// does, a reset token is stored and a link dispatched best-effort; every
// failure past this point is logged and swallowed so the response stays
// identical in all cases.
func (s *Service) ForgotPassword(ctx context.Context, email string) {
	u, err := s.Users.ByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			zap.L().Error("Failed to look up user for password reset", zap.Error(err))
		}
		return
	}

	plainToken, err := security.GenerateToken()
	if err != nil {
		zap.L().Error("Failed to generate reset token", zap.Error(err))
		return
	}

	if err := s.Users.SetResetToken(ctx, u.ID, security.HashToken(plainToken), time.Now().Add(resetTokenTTL)); err != nil {
		zap.L().Error("Failed to store reset token", zap.Error(err))
		return
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", viper.GetString("host.frontend_url"), plainToken)
	service.Dispatch(func() error { return s.Mailer.SendResetMail(email, resetURL) }, "reset", email)
}

// ResetPassword consumes a reset token and installs the new password hash
// in the same statement. Same uniform ErrInvalidToken as verification.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	hash, err := s.Argon.GenerateFromPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password, %w", err)
	}

	n, err := s.Users.ConsumeResetToken(ctx, security.HashToken(token), hash, time.Now())
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrInvalidToken
	}
	return nil
}

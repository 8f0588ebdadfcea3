package service

import (
	"context"
	"time"

	"ishan/rms-api/internal/store"

	"go.uber.org/zap"
)

// TokenCleanup periodically nulls out verify/reset token hashes whose
// expiry has passed. Expired tokens are already rejected at use; this only
// keeps dead hashes from accumulating in the users table.
func TokenCleanup(t time.Duration, users *store.UserStore) {
	ticker := time.NewTicker(t)

	zap.L().Debug("Token cleanup attached", zap.Duration("tick_every", t))

	go func() {
		for range ticker.C {
			n, err := users.ClearExpiredTokens(context.Background(), time.Now())
			if err != nil {
				zap.L().Error("Failed to clear expired tokens", zap.Error(err))
				continue
			}

			if n > 0 {
				zap.L().Debug("Cleared expired tokens", zap.Int64("rows", n))
			}
		}
	}()
}

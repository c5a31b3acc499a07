package auth

import (
	"context"

	"brightevents-backend/internal/repository"
)

// RevocationLedger is the persisted blacklist of access tokens.
type RevocationLedger struct {
	repo repository.RevokedTokenRepository
}

func NewRevocationLedger(repo repository.RevokedTokenRepository) *RevocationLedger {
	return &RevocationLedger{repo: repo}
}

// Revoke blacklists token. Revoking an already revoked token is a no-op and
// reports false.
func (l *RevocationLedger) Revoke(ctx context.Context, token string) (bool, error) {
	return l.repo.Add(ctx, token)
}

func (l *RevocationLedger) IsRevoked(ctx context.Context, token string) (bool, error) {
	return l.repo.Exists(ctx, token)
}

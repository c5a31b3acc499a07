// Package auth implements registration, login, token issuance, token
// revocation and request authentication.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"brightevents-backend/internal/apperr"
	"brightevents-backend/internal/config"
	"brightevents-backend/internal/model"
	"brightevents-backend/internal/repository"
	"brightevents-backend/internal/validate"
)

// RegisterInput is the registration payload. ConfirmPassword is optional.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Service ties the credential store, the token service and the revocation
// ledger together.
type Service struct {
	credentials *CredentialStore
	tokens      *TokenService
	ledger      *RevocationLedger
	logger      *slog.Logger
}

func NewService(users repository.UserRepository, revoked repository.RevokedTokenRepository, cfg *config.Config, logger *slog.Logger) *Service {
	return &Service{
		credentials: NewCredentialStore(users, NewPasswordHasher(cfg.BcryptCost)),
		tokens:      NewTokenService(cfg.SecretKey, cfg.TokenTTL),
		ledger:      NewRevocationLedger(revoked),
		logger:      logger,
	}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if err := validate.NotEmpty(
		validate.Field{Label: "Username", Value: username},
		validate.Field{Label: "Email", Value: email},
		validate.Field{Label: "Password", Value: in.Password},
	); err != nil {
		return nil, err
	}
	if err := validate.MaxLength("Username", username, validate.MaxNameLength); err != nil {
		return nil, err
	}
	if err := validate.MaxLength("Email", email, validate.MaxNameLength); err != nil {
		return nil, err
	}
	if err := validate.Username(username); err != nil {
		return nil, err
	}
	if err := validate.Email(email); err != nil {
		return nil, err
	}
	if err := validate.Password(in.Password, in.ConfirmPassword); err != nil {
		return nil, err
	}

	user, err := s.credentials.Register(ctx, username, email, in.Password)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// Login checks the credentials and issues a new access token.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validate.NotEmpty(
		validate.Field{Label: "Email", Value: email},
		validate.Field{Label: "Password", Value: password},
	); err != nil {
		return "", err
	}

	user, err := s.credentials.FindByEmail(ctx, email)
	if err != nil {
		if apperr.Is(err, apperr.CodeNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if !s.credentials.VerifyPassword(user, password) {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", err
	}
	s.logger.InfoContext(ctx, "user logged in", "user_id", user.ID)
	return token, nil
}

// Logout blacklists token.
func (s *Service) Logout(ctx context.Context, token string) error {
	if _, err := s.ledger.Revoke(ctx, token); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Authenticate resolves token to its user: decode, check the blacklist, then
// load the subject.
func (s *Service) Authenticate(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	userID, err := s.tokens.Decode(token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.ledger.IsRevoked(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if revoked {
		return nil, ErrRevokedToken
	}

	user, err := s.credentials.FindByID(ctx, userID)
	if err != nil {
		if apperr.Is(err, apperr.CodeNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, err
	}
	return user, nil
}

// DeleteAccount removes user with their events and reservations, then
// revokes the token used for the request. The delete is already committed
// when the revoke runs, so a revoke failure is logged and not returned; the
// token names a user that no longer exists and fails authentication anyway.
func (s *Service) DeleteAccount(ctx context.Context, user *model.User, token string) error {
	if err := s.credentials.Delete(ctx, user.ID); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "user deleted", "user_id", user.ID)
	if _, err := s.ledger.Revoke(ctx, token); err != nil {
		s.logger.WarnContext(ctx, "revoke token after account deletion", "user_id", user.ID, "error", err)
	}
	return nil
}

package auth

import (
	"context"
	"errors"
	"fmt"

	"brightevents-backend/internal/apperr"
	"brightevents-backend/internal/model"
	"brightevents-backend/internal/repository"
)

// CredentialStore owns user identities and their password hashes.
type CredentialStore struct {
	users  repository.UserRepository
	hasher *PasswordHasher
}

func NewCredentialStore(users repository.UserRepository, hasher *PasswordHasher) *CredentialStore {
	return &CredentialStore{users: users, hasher: hasher}
}

// Register hashes password and stores the user. A taken username yields
// ErrDuplicateIdentity.
func (s *CredentialStore) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{Username: username, Email: email, Password: hash}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateIdentity
		}
		return nil, fmt.Errorf("register user: %w", err)
	}
	return user, nil
}

func (s *CredentialStore) VerifyPassword(user *model.User, password string) bool {
	return s.hasher.Verify(user.Password, password)
}

func (s *CredentialStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.find(s.users.FindByEmail(ctx, email))
}

func (s *CredentialStore) FindByID(ctx context.Context, id uint) (*model.User, error) {
	return s.find(s.users.FindByID(ctx, id))
}

// Delete removes the user and everything they own.
func (s *CredentialStore) Delete(ctx context.Context, id uint) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.New(apperr.CodeNotFound, "User not found")
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (s *CredentialStore) find(user *model.User, err error) (*model.User, error) {
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Wrap(apperr.CodeNotFound, "User not found", err)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AnshRaj112/aed-backend/internal/models"
	"github.com/AnshRaj112/aed-backend/internal/store"
	"github.com/AnshRaj112/aed-backend/pkg/utils"
	"github.com/rs/zerolog"
)

// AccountService registers users, checks credentials and resolves tokens.
type AccountService struct {
	users  store.UserStore
	tokens *TokenIssuer
	log    zerolog.Logger
}

func NewAccountService(users store.UserStore, tokens *TokenIssuer, log zerolog.Logger) *AccountService {
	return &AccountService{
		users:  users,
		tokens: tokens,
		log:    log.With().Str("component", "accounts").Logger(),
	}
}

// Register creates an account and returns its summary with a fresh token.
func (s *AccountService) Register(ctx context.Context, name, email, password string) (*models.AccountSummary, error) {
	if err := utils.RequireField("name", name, "Name is required"); err != nil {
		return nil, err
	}
	email = utils.NormalizeEmail(email)
	if err := utils.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := utils.RequireField("password", password, "Password is required"); err != nil {
		return nil, err
	}

	existing, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil && existing != nil:
		return nil, ErrDuplicateEmail
	case err != nil && !errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("find user: %w", err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &models.User{Name: name, Email: email, PasswordHash: hash, CreatedAt: now, UpdatedAt: now}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("account registered")
	summary := user.Summary()
	summary.Token = token
	return &summary, nil
}

// Login checks credentials. The returned summary carries the session token
// so the caller can set the cookie; it never says which part was wrong.
func (s *AccountService) Login(ctx context.Context, email, password string) (*models.AccountSummary, error) {
	email = utils.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	ok, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("stored password hash is unreadable")
		return nil, ErrInvalidCredentials
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	summary := user.Summary()
	summary.Token = token
	return &summary, nil
}

// Authenticate resolves a session token to its user, without the hash.
func (s *AccountService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	user.PasswordHash = ""
	return user, nil
}

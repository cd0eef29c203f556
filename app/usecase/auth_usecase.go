package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"bookbazaar/app/domain"
	"bookbazaar/app/port"
	"bookbazaar/app/utils/security"
)

// AuthUseCase implements authentication business logic
type AuthUseCase struct {
	users      port.UserRepository
	tokens     *security.TokenIssuer
	adminEmail string
	logger     *slog.Logger
}

// NewAuthUseCase creates a new AuthUseCase instance. Accounts matching
// adminEmail are created with admin rights.
func NewAuthUseCase(users port.UserRepository, tokens *security.TokenIssuer, adminEmail string, logger *slog.Logger) *AuthUseCase {
	return &AuthUseCase{
		users:      users,
		tokens:     tokens,
		adminEmail: adminEmail,
		logger:     logger.With("component", "auth_usecase"),
	}
}

// Register creates an account and returns a session token for it
func (uc *AuthUseCase) Register(ctx context.Context, username, email, password string) (string, error) {
	hash, err := security.HashPassword(password)
	if err != nil {
		return "", err
	}

	user, err := domain.NewUser(username, email, hash)
	if err != nil {
		return "", err
	}

	if uc.adminEmail != "" && strings.EqualFold(email, uc.adminEmail) {
		user.IsAdmin = true
	}

	if err := uc.users.Create(ctx, user); err != nil {
		return "", err
	}

	uc.logger.Info("user registered", "user_id", user.ID, "username", user.Username)
	return uc.tokens.Issue(user.ID.String(), user.Username, user.Email, user.IsAdmin)
}

// Login verifies credentials and returns a session token. A missing
// account and a wrong password are indistinguishable to the caller.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if !security.CheckPassword(user.PasswordHash, password) {
		return "", domain.ErrInvalidCredentials
	}

	if err := uc.users.RecordLogin(ctx, user.ID, time.Now()); err != nil {
		uc.logger.Warn("failed to record login time", "user_id", user.ID, "error", err)
	}

	return uc.tokens.Issue(user.ID.String(), user.Username, user.Email, user.IsAdmin)
}

// Me returns the user behind a verified token's subject
func (uc *AuthUseCase) Me(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return uc.users.GetByID(ctx, userID)
}

// GenerateAPIKey replaces the user's API key and returns the new one.
// The previous key stops working immediately.
func (uc *AuthUseCase) GenerateAPIKey(ctx context.Context, userID uuid.UUID) (string, error) {
	key, err := security.GenerateAPIKey()
	if err != nil {
		return "", err
	}

	if err := uc.users.SetAPIKey(ctx, userID, key); err != nil {
		return "", err
	}

	uc.logger.Info("api key rotated", "user_id", userID)
	return key, nil
}

// UserByAPIKey resolves the owner of an API key
func (uc *AuthUseCase) UserByAPIKey(ctx context.Context, apiKey string) (*domain.User, error) {
	if apiKey == "" {
		return nil, domain.ErrUnauthorized
	}
	return uc.users.GetByAPIKey(ctx, apiKey)
}

package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"openmic/internal/domain"
	"openmic/internal/domain/entities"
	"openmic/internal/ports/input"
	"openmic/internal/ports/output"
)

var _ input.AuthUseCase = (*AuthService)(nil)

const (
	minPasswordLength = 8
	// bcrypt refuses longer inputs; the limit is in bytes, not characters.
	maxPasswordBytes = 72
)

// AuthService manages accounts, login sessions and password resets. Sessions
// and reset tokens live in the injected SessionStore, keyed by
// "session:<id>" and "reset:<token>", with the user id as value.
type AuthService struct {
	userRepo   output.UserRepository
	sessions   output.SessionStore
	tokens     output.TokenIssuer
	notifier   output.Notifier
	sessionTTL time.Duration
	resetTTL   time.Duration
	bcryptCost int
}

func NewAuthService(
	userRepo output.UserRepository,
	sessions output.SessionStore,
	tokens output.TokenIssuer,
	notifier output.Notifier,
	sessionTTL, resetTTL time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		sessions:   sessions,
		tokens:     tokens,
		notifier:   notifier,
		sessionTTL: sessionTTL,
		resetTTL:   resetTTL,
		bcryptCost: bcrypt.DefaultCost,
	}
}

func sessionKey(id string) string  { return "session:" + id }
func resetKey(token string) string { return "reset:" + token }

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func checkPassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLength)
	}
	if len(password) > maxPasswordBytes {
		return fmt.Errorf("%w: password must not exceed %d bytes", domain.ErrValidation, maxPasswordBytes)
	}
	return nil
}

func (s *AuthService) Register(ctx context.Context, email, displayName, password string) (*entities.User, error) {
	email = normalizeEmail(email)
	displayName = strings.TrimSpace(displayName)
	if email == "" || displayName == "" {
		return nil, fmt.Errorf("%w: email and display name are required", domain.ErrValidation)
	}
	if err := checkPassword(password); err != nil {
		return nil, err
	}
	_, err := s.userRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, domain.ErrEmailTaken
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := time.Now()
	user := &entities.User{
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials, opens a session and returns a signed access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *entities.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("find user by email: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	sessionID := uuid.NewString()
	if err := s.sessions.Put(ctx, sessionKey(sessionID), strconv.FormatUint(uint64(user.ID), 10), s.sessionTTL); err != nil {
		return "", nil, fmt.Errorf("store session: %w", err)
	}
	token, err := s.tokens.Issue(output.TokenClaims{SessionID: sessionID, UserID: user.ID})
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionKey(sessionID)); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Authenticate resolves the caller of an access token. The session must still
// be live; each successful call extends it by the session TTL.
func (s *AuthService) Authenticate(ctx context.Context, token string) (input.Identity, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return input.Identity{}, domain.ErrUnauthorized
	}
	key := sessionKey(claims.SessionID)
	value, err := s.sessions.Get(ctx, key)
	if err != nil {
		if errors.Is(err, output.ErrSessionNotFound) {
			return input.Identity{}, domain.ErrUnauthorized
		}
		return input.Identity{}, fmt.Errorf("get session: %w", err)
	}
	if value != strconv.FormatUint(uint64(claims.UserID), 10) {
		return input.Identity{}, domain.ErrUnauthorized
	}
	if err := s.sessions.Expire(ctx, key, s.sessionTTL); err != nil {
		slog.Warn("session refresh failed", "session_id", claims.SessionID, "error", err)
	}
	return input.Identity{UserID: claims.UserID, SessionID: claims.SessionID}, nil
}

func (s *AuthService) Me(ctx context.Context, userID uint) (*entities.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// ForgotPassword emails a single-use reset token. Unknown addresses succeed
// silently so the endpoint does not reveal which emails are registered.
func (s *AuthService) ForgotPassword(ctx context.Context, email, locale string) error {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("find user by email: %w", err)
	}
	token := uuid.NewString()
	if err := s.sessions.Put(ctx, resetKey(token), strconv.FormatUint(uint64(user.ID), 10), s.resetTTL); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}
	err = s.notifier.Notify(ctx, output.Notification{
		Kind:       output.NotifyPasswordReset,
		Locale:     locale,
		Recipients: []string{user.Email},
		Token:      token,
	})
	if err != nil {
		slog.Warn("password reset notification failed", "user_id", user.ID, "error", err)
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := checkPassword(newPassword); err != nil {
		return err
	}
	value, err := s.sessions.Take(ctx, resetKey(token))
	if err != nil {
		if errors.Is(err, output.ErrSessionNotFound) {
			return domain.ErrInvalidResetToken
		}
		return fmt.Errorf("get reset token: %w", err)
	}
	userID, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return domain.ErrInvalidResetToken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, uint(userID), string(hash)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

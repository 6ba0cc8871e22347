package v1

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"

	"github.com/duynhne/weather-service/internal/core/domain"
	"github.com/duynhne/weather-service/middleware"
)

// PasswordCost is the bcrypt work factor for stored password hashes.
const PasswordCost = 12

// AuthService implements registration, login and profile lookup.
// It depends on repository interfaces (injected via constructor) and
// MUST NOT access the database or SQL directly.
type AuthService struct {
	users    domain.UserRepository
	sessions *SessionManager
}

// NewAuthService creates a new AuthService with the given dependencies.
func NewAuthService(users domain.UserRepository, sessions *SessionManager) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
	}
}

// Register creates an account and issues a session for it.
func (s *AuthService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
	ctx, span := middleware.StartSpan(ctx, "auth.register", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if err := validateStruct(req); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		return nil, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), PasswordCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, &ValidationError{Fields: []FieldError{{Field: "password", Message: "must be at most 72 bytes"}}}
		}
		span.RecordError(err)
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// The unique index on users.email decides races between concurrent registrations.
	row, err := s.users.Create(ctx, req.Email, req.Name, string(passwordHash))
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			span.SetAttributes(attribute.Bool("registration.success", false))
			return nil, fmt.Errorf("register %q: %w", req.Email, ErrUserExists)
		}
		span.RecordError(err)
		return nil, fmt.Errorf("insert user: %w", err)
	}

	response, err := s.newSession(row)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(
		attribute.String("user.id", row.ID),
		attribute.Bool("registration.success", true),
	)
	span.AddEvent("user.registered")

	return response, nil
}

// Login verifies credentials and issues a session.
func (s *AuthService) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error) {
	ctx, span := middleware.StartSpan(ctx, "auth.login", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	req.Email = strings.TrimSpace(req.Email)
	if err := validateStruct(req); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		return nil, err
	}

	row, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query user %q: %w", req.Email, err)
	}
	if row == nil {
		span.SetAttributes(attribute.Bool("auth.success", false))
		span.AddEvent("authentication.failed")
		return nil, fmt.Errorf("authenticate %q: %w", req.Email, ErrInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte(req.Password)); err != nil {
		span.SetAttributes(attribute.Bool("auth.success", false))
		span.AddEvent("authentication.failed")
		return nil, fmt.Errorf("authenticate %q: %w", req.Email, ErrInvalidCredentials)
	}

	response, err := s.newSession(row)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(
		attribute.String("user.id", row.ID),
		attribute.Bool("auth.success", true),
	)
	span.AddEvent("user.authenticated")

	return response, nil
}

// GetMe returns the profile of the session subject.
func (s *AuthService) GetMe(ctx context.Context, userID string) (*domain.User, error) {
	ctx, span := middleware.StartSpan(ctx, "auth.get_me", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("user.id", userID),
	))
	defer span.End()

	row, err := s.users.GetByID(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query user %s: %w", userID, err)
	}
	if row == nil {
		return nil, fmt.Errorf("lookup user %s: %w", userID, ErrUserNotFound)
	}

	user := row.User()
	return &user, nil
}

// VerifySession resolves a session token to its user id.
func (s *AuthService) VerifySession(token string) (string, error) {
	return s.sessions.Verify(token)
}

// SessionMaxAge is the session lifetime in seconds, used as the cookie Max-Age.
func (s *AuthService) SessionMaxAge() int {
	return int(s.sessions.TTL().Seconds())
}

func (s *AuthService) newSession(row *domain.UserRow) (*domain.AuthResponse, error) {
	token, expiresAt, err := s.sessions.Issue(row.ID)
	if err != nil {
		return nil, err
	}

	return &domain.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      row.User(),
	}, nil
}

package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"smartslot/internal/session"
	"smartslot/internal/shared/config"
	"smartslot/internal/upstream"
	"smartslot/pkg/logger"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Result is a completed sign-in: a fresh portal session and the user it
// belongs to.
type Result struct {
	SessionID    string
	SessionToken string
	User         *session.User
}

// Service drives the identity flows: password sign-in, registration, and
// the provider-token variant used after a browser OAuth popup.
type Service interface {
	SignInWithPassword(ctx context.Context, email, password string) (*Result, error)
	RegisterWithPassword(ctx context.Context, email, password, confirm string) (*Result, error)
	SignInWithProvider(ctx context.Context, idToken string) (*Result, error)
	Logout(ctx context.Context, sessionID string) error
}

type service struct {
	provider Provider
	upstream *upstream.Client
	sessions *session.Store
	cfg      *config.Config
	logger   *logger.Logger
}

// NewService creates an identity service
func NewService(provider Provider, up *upstream.Client, sessions *session.Store, cfg *config.Config, log *logger.Logger) Service {
	return &service{
		provider: provider,
		upstream: up,
		sessions: sessions,
		cfg:      cfg,
		logger:   log,
	}
}

func (s *service) SignInWithPassword(ctx context.Context, email, password string) (*Result, error) {
	if email == "" || password == "" {
		return nil, &ProviderError{
			Kind:    FailureValidation,
			Code:    "auth/missing-fields",
			Message: "Email and password are required.",
		}
	}

	idToken, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	return s.exchange(ctx, idToken, "password")
}

func (s *service) RegisterWithPassword(ctx context.Context, email, password, confirm string) (*Result, error) {
	if email == "" || password == "" {
		return nil, &ProviderError{
			Kind:    FailureValidation,
			Code:    "auth/missing-fields",
			Message: "Email and password are required.",
		}
	}
	if password != confirm {
		return nil, &ProviderError{
			Kind:    FailureValidation,
			Code:    "auth/password-mismatch",
			Message: "Passwords do not match.",
		}
	}
	if !CheckPasswordStrength(password).StrongEnough() {
		return nil, &ProviderError{
			Kind:    FailureValidation,
			Code:    "auth/weak-password",
			Message: "Please choose a stronger password.",
		}
	}

	idToken, err := s.provider.Register(ctx, email, password)
	if err != nil {
		return nil, err
	}

	return s.exchange(ctx, idToken, "register")
}

func (s *service) SignInWithProvider(ctx context.Context, idToken string) (*Result, error) {
	if idToken == "" {
		// the browser popup was dismissed before producing a token
		return nil, &ProviderError{
			Kind:    FailureCancelled,
			Code:    "auth/popup-closed-by-user",
			Message: userMessages["auth/popup-closed-by-user"],
		}
	}
	return s.exchange(ctx, idToken, "provider")
}

// exchange trades a provider ID token for an upstream session, persists the
// session record, and mints the portal session JWT. All three sign-in flows
// converge here.
func (s *service) exchange(ctx context.Context, idToken, method string) (*Result, error) {
	info, err := s.upstream.EstablishSession(ctx, idToken)
	if err != nil {
		if errors.Is(err, upstream.ErrAuthExpired) {
			return nil, &ProviderError{
				Kind:    FailureCredential,
				Code:    "auth/invalid-token",
				Message: "Sign-in could not be completed. Please try again.",
			}
		}
		return nil, &ProviderError{
			Kind:    FailureNetwork,
			Code:    "auth/network-request-failed",
			Message: userMessages["auth/network-request-failed"],
		}
	}

	user := &session.User{
		ID:          info.ID,
		Email:       info.Email,
		DisplayName: info.DisplayName,
		Role:        session.Role(info.Role),
	}
	if user.DisplayName == "" {
		// Some providers carry the name only inside the ID token.
		user.DisplayName = peekDisplayName(idToken)
	}
	if !user.Role.IsValid() {
		user.Role = session.RoleUser
	}

	sessionID := uuid.New().String()
	if err := s.sessions.Set(ctx, sessionID, idToken, user); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	token, err := s.mintSessionToken(sessionID, user)
	if err != nil {
		return nil, fmt.Errorf("mint session token: %w", err)
	}

	s.logger.LogAuthSuccess(ctx, user.ID, method)
	return &Result{SessionID: sessionID, SessionToken: token, User: user}, nil
}

func (s *service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessions.Clear(ctx, sessionID)
}

// peekDisplayName reads the name claim from a provider ID token without
// verifying it. Display only; the token was already verified upstream during
// session establishment.
func peekDisplayName(idToken string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(idToken, claims); err != nil {
		return ""
	}
	if name, ok := claims["name"].(string); ok {
		return name
	}
	return ""
}

// mintSessionToken signs the portal session JWT. Claims must line up with
// what the session middleware reads.
func (s *service) mintSessionToken(sessionID string, user *session.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sid":     sessionID,
		"user_id": user.ID,
		"email":   user.Email,
		"role":    string(user.Role),
		"type":    "session",
		"iat":     now.Unix(),
		"exp":     now.Add(s.cfg.JWT.ExpiresIn).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWT.Secret))
}

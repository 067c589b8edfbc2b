package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	userDomain "github.com/seafuel/service-voyage/internal/domain/user"
	"github.com/seafuel/service-voyage/internal/events"
	"github.com/seafuel/service-voyage/internal/platform/apperr"
	"github.com/seafuel/service-voyage/internal/platform/auth"
	"go.uber.org/zap"
)

// Login error messages shown to users.
const (
	MsgCredentialsRequired = "username and password are required"
	MsgInvalidCredentials  = "invalid username or password"
)

// Login channels recorded on events.
const (
	ChannelForm = "form"
	ChannelAPI  = "api"
)

// LoginRequest holds login credentials from a form or JSON body.
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// TokenDTO is returned after a successful login.
type TokenDTO struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	Username    string    `json:"username"`
}

// AuthService checks credentials and issues session tokens.
type AuthService struct {
	users  userDomain.Repository
	jwt    *auth.JWTManager
	events *events.Emitter
	logger *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(users userDomain.Repository, jwtManager *auth.JWTManager, emitter *events.Emitter, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, jwt: jwtManager, events: emitter, logger: logger}
}

// Login verifies the credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, req LoginRequest, channel string) (*TokenDTO, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, apperr.NewValidationError(MsgCredentialsRequired)
	}

	u, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, userDomain.ErrUserNotFound) {
		s.logger.Warn("login failed", zap.String("username", username), zap.String("reason", "unknown user"))
		return nil, apperr.NewUnauthorizedError(MsgInvalidCredentials)
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !auth.CheckPassword(u.PasswordHash(), req.Password) {
		s.logger.Warn("login failed", zap.String("username", username), zap.String("reason", "wrong password"))
		return nil, apperr.NewUnauthorizedError(MsgInvalidCredentials)
	}

	token, expiresAt, err := s.jwt.Generate(u.ID().String(), u.Username())
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	s.logger.Info("user logged in", zap.String("username", u.Username()), zap.String("channel", channel))
	s.events.Emit(ctx, events.UserLoggedIn, events.UserLoggedInEvent{
		UserID:     u.ID().String(),
		Username:   u.Username(),
		Channel:    channel,
		OccurredAt: time.Now().UTC(),
	})

	return &TokenDTO{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		Username:    u.Username(),
	}, nil
}

package application

import (
	"context"
	"testing"
	"time"

	"github.com/seafuel/service-voyage/internal/events"
	"github.com/seafuel/service-voyage/internal/platform/apperr"
	"github.com/seafuel/service-voyage/internal/platform/auth"
	"github.com/seafuel/service-voyage/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(t *testing.T) (*AuthService, *auth.JWTManager, *recordingPublisher) {
	t.Helper()
	users, err := repository.NewStaticUserRepository(map[string]string{"admin": "123456"}, bcrypt.MinCost)
	require.NoError(t, err)
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	emitter, pub := newTestEmitter()
	return NewAuthService(users, jwtManager, emitter, zap.NewNop()), jwtManager, pub
}

func TestAuthService_Login(t *testing.T) {
	s, jwtManager, pub := newTestAuthService(t)

	tok, err := s.Login(context.Background(), LoginRequest{Username: " admin ", Password: "123456"}, ChannelAPI)
	require.NoError(t, err)
	assert.Equal(t, "Bearer", tok.TokenType)
	assert.Equal(t, "admin", tok.Username)

	claims, err := jwtManager.Validate(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, []string{events.UserLoggedIn}, pub.types())
}

func TestAuthService_Login_Rejected(t *testing.T) {
	s, _, pub := newTestAuthService(t)
	ctx := context.Background()

	_, err := s.Login(ctx, LoginRequest{Username: "", Password: "x"}, ChannelForm)
	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, MsgCredentialsRequired, verr.Error())

	_, err = s.Login(ctx, LoginRequest{Username: "admin", Password: "wrong"}, ChannelForm)
	var uerr *apperr.UnauthorizedError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, MsgInvalidCredentials, uerr.Error())

	_, err = s.Login(ctx, LoginRequest{Username: "root", Password: "123456"}, ChannelForm)
	require.ErrorAs(t, err, &uerr)

	assert.Empty(t, pub.events)
}

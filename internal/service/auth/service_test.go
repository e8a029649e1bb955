package auth

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shark062/EridesSouzaStudio/internal/metrics"
	"github.com/shark062/EridesSouzaStudio/internal/model"
	"github.com/shark062/EridesSouzaStudio/internal/repository/memory"
	"github.com/shark062/EridesSouzaStudio/internal/service/account"
	apperrors "github.com/shark062/EridesSouzaStudio/pkg/errors"
	"github.com/shark062/EridesSouzaStudio/pkg/logger"
	"github.com/shark062/EridesSouzaStudio/pkg/security"
)

var testMetrics = metrics.New("auth_test")

// capturingEmail records the last reset token instead of sending mail.
type capturingEmail struct {
	to    string
	token string
}

func (c *capturingEmail) SendPasswordReset(_ context.Context, to, _, token string) error {
	c.to = to
	c.token = token
	return nil
}

func (c *capturingEmail) SendWelcome(context.Context, string, string) error { return nil }

func newTestService(t *testing.T) (*Service, *account.Service, *capturingEmail) {
	t.Helper()
	store, err := memory.Open("")
	require.NoError(t, err)

	log := logger.NewLogger(&logger.Config{
		Level:      logger.ErrorLevel,
		TimeFormat: time.RFC3339,
		Output:     io.Discard,
	})
	hasher := security.NewBcryptHasher(4)
	accounts := account.NewService(store.Users(), store.Bookings(), hasher, nil, log)
	emails := &capturingEmail{}
	svc := NewService(accounts, store.Users(), memory.NewTokenStore(time.Hour),
		emails, hasher, testMetrics, log, "test-secret")
	return svc, accounts, emails
}

func registerUser(t *testing.T, accounts *account.Service) *model.User {
	t.Helper()
	user, err := accounts.Register(context.Background(), &model.RegisterRequest{
		Username: "alice",
		Password: "secret1",
		Name:     "Alice",
		Email:    "alice@example.com",
	})
	require.NoError(t, err)
	return user
}

func TestLoginAndValidate(t *testing.T) {
	ctx := context.Background()
	svc, accounts, _ := newTestService(t)
	user := registerUser(t, accounts)

	resp, err := svc.Login(ctx, "alice", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, user.ID, resp.User.ID)

	claims, err := svc.ValidateToken(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, model.RoleClient, claims.Role)

	_, err = svc.Login(ctx, "alice", "wrong")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrUnauthorized, apperrors.AsAppError(err).Code)
}

func TestValidateRejectsBadToken(t *testing.T) {
	ctx := context.Background()
	svc, accounts, _ := newTestService(t)
	registerUser(t, accounts)

	_, err := svc.ValidateToken(ctx, "not-a-token")
	require.Error(t, err)

	// A token signed with a different secret must not verify.
	other, _, _ := newTestService(t)
	otherUser := &model.User{ID: "x", Username: "mallory", Role: model.RoleClient}
	other.secret = []byte("other-secret")
	forged, err := other.generateToken(otherUser)
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, forged)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrUnauthorized, apperrors.AsAppError(err).Code)
}

func TestLogoutRevokesSession(t *testing.T) {
	ctx := context.Background()
	svc, accounts, _ := newTestService(t)
	registerUser(t, accounts)

	resp, err := svc.Login(ctx, "alice", "secret1")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, resp.Token))

	_, err = svc.ValidateToken(ctx, resp.Token)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrUnauthorized, apperrors.AsAppError(err).Code)

	// Other sessions for the same account stay valid.
	second, err := svc.Login(ctx, "alice", "secret1")
	require.NoError(t, err)
	_, err = svc.ValidateToken(ctx, second.Token)
	require.NoError(t, err)

	// Logging out a garbage token is a no-op.
	require.NoError(t, svc.Logout(ctx, "not-a-token"))
}

func TestPasswordResetFlow(t *testing.T) {
	ctx := context.Background()
	svc, accounts, emails := newTestService(t)
	registerUser(t, accounts)

	require.NoError(t, svc.ForgotPassword(ctx, "alice@example.com"))
	require.NotEmpty(t, emails.token)
	assert.Equal(t, "alice@example.com", emails.to)

	// Wrong token is rejected without consuming anything.
	err := svc.ResetPassword(ctx, "bogus", "newpass1")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrBadRequest, apperrors.AsAppError(err).Code)

	require.NoError(t, svc.ResetPassword(ctx, emails.token, "newpass1"))

	_, err = accounts.Authenticate(ctx, "alice", "secret1")
	require.Error(t, err)
	_, err = accounts.Authenticate(ctx, "alice", "newpass1")
	require.NoError(t, err)

	// Tokens are single use.
	err = svc.ResetPassword(ctx, emails.token, "another1")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrBadRequest, apperrors.AsAppError(err).Code)
}

func TestPasswordResetUnknownEmail(t *testing.T) {
	svc, accounts, emails := newTestService(t)
	registerUser(t, accounts)

	err := svc.ForgotPassword(context.Background(), "nobody@example.com")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrNotFound, apperrors.AsAppError(err).Code)
	assert.Empty(t, emails.token)
}

func TestPasswordResetExpiredToken(t *testing.T) {
	ctx := context.Background()
	svc, accounts, emails := newTestService(t)
	registerUser(t, accounts)

	require.NoError(t, svc.ForgotPassword(ctx, "alice@example.com"))

	// Jump past the token TTL.
	svc.now = func() time.Time { return time.Now().Add(25 * time.Hour) }

	err := svc.ResetPassword(ctx, emails.token, "newpass1")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrExpired, apperrors.AsAppError(err).Code)

	// The expired token was consumed on the way out.
	svc.now = time.Now
	err = svc.ResetPassword(ctx, emails.token, "newpass1")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrBadRequest, apperrors.AsAppError(err).Code)
}

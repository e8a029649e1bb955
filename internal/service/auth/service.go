package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/shark062/EridesSouzaStudio/internal/email"
	"github.com/shark062/EridesSouzaStudio/internal/metrics"
	"github.com/shark062/EridesSouzaStudio/internal/model"
	"github.com/shark062/EridesSouzaStudio/internal/repository"
	"github.com/shark062/EridesSouzaStudio/internal/service/account"
	apperrors "github.com/shark062/EridesSouzaStudio/pkg/errors"
	"github.com/shark062/EridesSouzaStudio/pkg/logger"
	"github.com/shark062/EridesSouzaStudio/pkg/security"
)

const (
	sessionExpiry    = 24 * time.Hour
	resetTokenExpiry = 24 * time.Hour
)

// Service derives the authenticated identity for every request and owns
// the password recovery flow.
type Service struct {
	accounts *account.Service
	users    repository.UserRepository
	tokens   repository.TokenRepository
	emailSvc email.Service
	hasher   security.PasswordHasher
	metrics  *metrics.Metrics
	log      *logger.Logger
	secret   []byte

	now func() time.Time
}

func NewService(accounts *account.Service, users repository.UserRepository,
	tokens repository.TokenRepository, emailSvc email.Service,
	hasher security.PasswordHasher, m *metrics.Metrics,
	log *logger.Logger, jwtSecret string) *Service {
	return &Service{
		accounts: accounts,
		users:    users,
		tokens:   tokens,
		emailSvc: emailSvc,
		hasher:   hasher,
		metrics:  m,
		log:      log,
		secret:   []byte(jwtSecret),
		now:      time.Now,
	}
}

// Login authenticates the credential pair and issues a session token
// carrying the account's identity and role.
func (s *Service) Login(ctx context.Context, username, password string) (*model.TokenResponse, error) {
	user, err := s.accounts.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Info("user logged in", "username", user.Username, "role", user.Role)
	return &model.TokenResponse{Token: token, User: user}, nil
}

// Logout revokes the session until its natural expiry.
func (s *Service) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		// An invalid token carries no session to revoke.
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.tokens.RevokeSession(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// ValidateToken checks signature, expiry and revocation, and returns
// the session identity.
func (s *Service) ValidateToken(ctx context.Context, tokenString string) (*model.TokenClaims, error) {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}

	revoked, err := s.tokens.IsSessionRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check session: %w", err)
	}
	if revoked {
		return nil, apperrors.Unauthorized(errors.New("session revoked"))
	}
	return claims, nil
}

// ForgotPassword issues a recovery token and hands it to the email
// collaborator. The token never travels back to the HTTP caller.
func (s *Service) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("email", err)
		}
		return fmt.Errorf("failed to look up email: %w", err)
	}

	token, err := security.GenerateResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	rt := &model.ResetToken{
		Token:     token,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: s.now(),
	}
	if err := s.tokens.StoreResetToken(ctx, rt, resetTokenExpiry); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	if err := s.emailSvc.SendPasswordReset(ctx, user.Email, user.Name, token); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}

	s.log.Info("password reset requested", "username", user.Username)
	return nil
}

// ResetPassword redeems a recovery token exactly once. A token past its
// TTL is deleted and reported expired.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	rt, err := s.tokens.GetResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.BadRequest("invalid or expired reset token", err)
		}
		return fmt.Errorf("failed to get reset token: %w", err)
	}

	if s.now().Sub(rt.CreatedAt) > resetTokenExpiry {
		_ = s.tokens.DeleteResetToken(ctx, token)
		return apperrors.Expired("reset token has expired", nil)
	}

	user, err := s.users.GetByUsername(ctx, rt.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("user", err)
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return apperrors.BadRequest("invalid password", err)
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.tokens.DeleteResetToken(ctx, token); err != nil {
		return fmt.Errorf("failed to consume reset token: %w", err)
	}

	s.metrics.PasswordResets.Inc()
	s.log.Info("password reset", "username", user.Username)
	return nil
}

func (s *Service) generateToken(user *model.User) (string, error) {
	now := s.now()
	claims := &model.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionExpiry)),
		},
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) parseToken(tokenString string) (*model.TokenClaims, error) {
	claims := &model.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid || claims.ExpiresAt == nil {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

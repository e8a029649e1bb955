package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shark062/EridesSouzaStudio/internal/email"
	"github.com/shark062/EridesSouzaStudio/internal/model"
	"github.com/shark062/EridesSouzaStudio/internal/repository"
	apperrors "github.com/shark062/EridesSouzaStudio/pkg/errors"
	"github.com/shark062/EridesSouzaStudio/pkg/logger"
	"github.com/shark062/EridesSouzaStudio/pkg/security"
)

// Service owns account lifecycle: registration, credential checks,
// profile edits and the admin credential pair.
type Service struct {
	users    repository.UserRepository
	bookings repository.BookingRepository
	hasher   security.PasswordHasher
	emailSvc email.Service
	log      *logger.Logger
}

func NewService(users repository.UserRepository, bookings repository.BookingRepository,
	hasher security.PasswordHasher, emailSvc email.Service, log *logger.Logger) *Service {
	return &Service{
		users:    users,
		bookings: bookings,
		hasher:   hasher,
		emailSvc: emailSvc,
		log:      log,
	}
}

func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.BadRequest("invalid password", err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		PasswordHash: hash,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		BirthDate:    req.BirthDate,
		Role:         model.RoleClient,
		CreatedAt:    time.Now(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, apperrors.Conflict("username already exists", err)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Welcome mail is best-effort and must not block registration.
	if s.emailSvc != nil && user.Email != "" {
		go func() {
			if err := s.emailSvc.SendWelcome(context.Background(), user.Email, user.Name); err != nil {
				s.log.Warn("failed to send welcome email", "username", user.Username)
			}
		}()
	}

	s.log.Info("user registered", "username", user.Username)
	return user, nil
}

// Authenticate verifies the credential pair. Admin and client accounts
// share the one lookup path; the role rides on the account row.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperrors.Unauthorized(errors.New("invalid credentials"))
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, apperrors.Unauthorized(errors.New("invalid credentials"))
	}
	return user, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("user", err)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// UpdateProfile applies any subset of the editable fields. A username
// change moves the store key atomically and refreshes the denormalized
// user_name on that account's bookings.
func (s *Service) UpdateProfile(ctx context.Context, username string, req *model.UpdateProfileRequest) (*model.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("user", err)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if req.NewPassword != nil {
		hash, err := s.hasher.Hash(*req.NewPassword)
		if err != nil {
			return nil, apperrors.BadRequest("invalid password", err)
		}
		user.PasswordHash = hash
	}
	if req.NewEmail != nil {
		user.Email = *req.NewEmail
	}
	if req.NewName != nil {
		user.Name = *req.NewName
	}
	if req.NewPhone != nil {
		user.Phone = *req.NewPhone
	}

	renamed := req.NewUsername != nil && *req.NewUsername != username
	if renamed {
		user.Username = *req.NewUsername
		err = s.users.Rename(ctx, username, user)
	} else {
		err = s.users.Update(ctx, user)
	}
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, apperrors.Conflict("username already exists", err)
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	if renamed || req.NewName != nil {
		if err := s.bookings.UpdateUserName(ctx, user.ID, user.Name); err != nil {
			return nil, fmt.Errorf("failed to refresh booking snapshots: %w", err)
		}
	}

	s.log.Info("profile updated", "username", user.Username)
	return user, nil
}

// SetAdminCredentials replaces the admin credential pair, effective for
// all subsequent logins.
func (s *Service) SetAdminCredentials(ctx context.Context, newUsername, newPassword string) error {
	admin, err := s.getAdmin(ctx)
	if err != nil {
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return apperrors.BadRequest("invalid password", err)
	}

	oldUsername := admin.Username
	admin.Username = newUsername
	admin.PasswordHash = hash

	if oldUsername == newUsername {
		err = s.users.Update(ctx, admin)
	} else {
		err = s.users.Rename(ctx, oldUsername, admin)
	}
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return apperrors.Conflict("username already exists", err)
		}
		return fmt.Errorf("failed to update admin credentials: %w", err)
	}

	s.log.Info("admin credentials changed", "username", newUsername)
	return nil
}

// EnsureAdmin seeds the admin row on first boot. An existing admin row
// is left untouched so credential changes survive restarts.
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) error {
	if _, err := s.getAdmin(ctx); err == nil {
		return nil
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("invalid admin password: %w", err)
	}

	admin := &model.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: hash,
		Name:         username,
		Role:         model.RoleAdmin,
		CreatedAt:    time.Now(),
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}

	s.log.Info("admin account seeded", "username", username)
	return nil
}

func (s *Service) getAdmin(ctx context.Context) (*model.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	for _, user := range users {
		if user.IsAdmin() {
			return user, nil
		}
	}
	return nil, apperrors.NotFound("admin account", nil)
}

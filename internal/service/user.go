package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"saves/internal/config"
	"saves/internal/domain"
	"saves/internal/domain/models"
	"saves/internal/domain/repositories"
	"saves/internal/domain/services"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

type userService struct {
	userRepo repositories.UserRepository
	logger   *slog.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, logger *slog.Logger) services.UserService {
	return &userService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// CreateProfile creates the profile row during onboarding. The username
// unique constraint resolves signup races; no pre-check is made.
func (s *userService) CreateProfile(ctx context.Context, req *services.CreateProfileRequest) (*models.User, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Username,
			validation.Required,
			validation.Length(config.MinUsernameLength, config.MaxUsernameLength),
			validation.Match(usernamePattern).Error("may only contain letters, digits and underscores"),
		),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	user := &models.User{
		ID:       req.UserID,
		Username: strings.ToLower(req.Username),
		Name:     req.Name,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("profile created", "user_id", user.ID, "username", user.Username)

	return user, nil
}

// GetByID retrieves a profile by user ID
func (s *userService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetByUsername retrieves a profile by username
func (s *userService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.userRepo.GetByUsername(ctx, username)
}

// UpdateProfile applies a partial profile update. Fields left nil keep their
// stored value; present-but-blank names and usernames are rejected.
func (s *userService) UpdateProfile(ctx context.Context, userID string, update *repositories.UserUpdate) error {
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", domain.ErrValidation)
	}
	if update.Username != nil {
		username := strings.TrimSpace(*update.Username)
		if username == "" {
			return fmt.Errorf("%w: username cannot be empty", domain.ErrValidation)
		}
		if !usernamePattern.MatchString(username) ||
			len(username) < config.MinUsernameLength ||
			len(username) > config.MaxUsernameLength {
			return fmt.Errorf("%w: invalid username", domain.ErrValidation)
		}
		update.Username = &username
	}

	if err := s.userRepo.Update(ctx, userID, update); err != nil {
		return err
	}

	s.logger.Info("profile updated", "user_id", userID)

	return nil
}

// UsernameAvailable reports whether a username can still be claimed.
// A syntactically invalid username is reported as unavailable rather than
// rejected, matching the availability-check contract.
func (s *userService) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" || !usernamePattern.MatchString(username) {
		return false, nil
	}

	exists, err := s.userRepo.UsernameExists(ctx, username)
	if err != nil {
		return false, err
	}

	return !exists, nil
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mejbahuddintamim/bdrent-server/internal/auth"
	"github.com/mejbahuddintamim/bdrent-server/internal/domain/entity"
	"github.com/mejbahuddintamim/bdrent-server/internal/platform/logger"
	"github.com/mejbahuddintamim/bdrent-server/internal/repository"
)

type UserService interface {
	// UpsertUser saves the profile under its email and issues a session
	// token bound to that email.
	UpsertUser(ctx context.Context, email, name, image string) (*entity.User, string, error)
	// GetUser returns the profile; a user may only fetch their own record.
	GetUser(ctx context.Context, email, requesterEmail string) (*entity.User, error)
	// ConfirmUser reports whether a profile exists for the email.
	ConfirmUser(ctx context.Context, email string) (bool, error)
	SetIdentityImage(ctx context.Context, email string, kind repository.IdentityImageKind, url, requesterEmail string) error
	// ListUsers is admin-only.
	ListUsers(ctx context.Context, requesterEmail string) ([]entity.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenIssuer
	log      logger.Logger
}

func NewUserService(userRepo repository.UserRepository, tokens *auth.TokenIssuer, log logger.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		tokens:   tokens,
		log:      log,
	}
}

func (s *userService) UpsertUser(ctx context.Context, email, name, image string) (*entity.User, string, error) {
	user, err := entity.NewUser(email, name, image)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := s.userRepo.Upsert(ctx, user); err != nil {
		s.log.Errorf("Failed to upsert user %s: %v", email, err)
		return nil, "", fmt.Errorf("failed to save user: %w", err)
	}

	// Re-read so the returned profile carries the stored role and
	// identity-image links, which the upsert never writes.
	stored, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load user %s after upsert: %w", email, err)
	}

	token, err := s.tokens.Issue(email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token for %s: %w", email, err)
	}

	s.log.Infof("User %s upserted and token issued", email)
	return stored, token, nil
}

func (s *userService) GetUser(ctx context.Context, email, requesterEmail string) (*entity.User, error) {
	if email != requesterEmail {
		return nil, ErrForbidden
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve user %s: %w", email, err)
	}
	return user, nil
}

func (s *userService) ConfirmUser(ctx context.Context, email string) (bool, error) {
	if email == "" {
		return false, fmt.Errorf("%w: email is required", ErrValidation)
	}
	exists, err := s.userRepo.Exists(ctx, email)
	if err != nil {
		return false, fmt.Errorf("failed to confirm user %s: %w", email, err)
	}
	return exists, nil
}

func (s *userService) SetIdentityImage(ctx context.Context, email string, kind repository.IdentityImageKind, url, requesterEmail string) error {
	if email != requesterEmail {
		return ErrForbidden
	}
	if url == "" {
		return fmt.Errorf("%w: image url is required", ErrValidation)
	}

	if err := s.userRepo.SetIdentityImage(ctx, email, kind, url); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to set %s image for %s: %w", kind, email, err)
	}

	s.log.Infof("Identity image (%s) updated for user %s", kind, email)
	return nil
}

func (s *userService) ListUsers(ctx context.Context, requesterEmail string) ([]entity.User, error) {
	requester, err := s.userRepo.GetByEmail(ctx, requesterEmail)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrForbidden
		}
		return nil, fmt.Errorf("failed to load user %s: %w", requesterEmail, err)
	}
	if !requester.IsAdmin() {
		return nil, ErrForbidden
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

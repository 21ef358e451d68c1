package service

import (
	"context"
	"testing"
	"time"

	"github.com/mejbahuddintamim/bdrent-server/internal/app/config"
	"github.com/mejbahuddintamim/bdrent-server/internal/auth"
	"github.com/mejbahuddintamim/bdrent-server/internal/domain/entity"
	"github.com/mejbahuddintamim/bdrent-server/internal/platform/logger"
	"github.com/mejbahuddintamim/bdrent-server/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T, repo repository.UserRepository) UserService {
	t.Helper()
	tokens, err := auth.NewTokenIssuer(config.JWTConfig{Secret: "test-secret", TTL: time.Hour})
	require.NoError(t, err)
	return NewUserService(repo, tokens, logger.NoOp())
}

func TestUpsertUser_IssuesToken(t *testing.T) {
	repo := new(MockUserRepository)
	stored := &entity.User{
		Email: "karim@example.com",
		Name:  "Karim",
		Role:  "user",
	}
	repo.On("Upsert", mock.Anything, mock.AnythingOfType("*entity.User")).Return(nil)
	repo.On("GetByEmail", mock.Anything, "karim@example.com").Return(stored, nil)

	svc := newUserService(t, repo)

	user, token, err := svc.UpsertUser(context.Background(), "karim@example.com", "Karim", "")
	require.NoError(t, err)
	assert.Equal(t, stored, user)
	assert.NotEmpty(t, token)

	repo.AssertExpectations(t)
}

func TestUpsertUser_KeepsStoredRole(t *testing.T) {
	repo := new(MockUserRepository)
	stored := &entity.User{
		Email: "admin@example.com",
		Name:  "Admin",
		Role:  entity.RoleAdmin,
	}
	repo.On("Upsert", mock.Anything, mock.AnythingOfType("*entity.User")).Return(nil)
	repo.On("GetByEmail", mock.Anything, "admin@example.com").Return(stored, nil)

	svc := newUserService(t, repo)

	user, _, err := svc.UpsertUser(context.Background(), "admin@example.com", "Admin", "")
	require.NoError(t, err)
	assert.True(t, user.IsAdmin())
}

func TestUpsertUser_RequiresEmail(t *testing.T) {
	svc := newUserService(t, new(MockUserRepository))

	_, _, err := svc.UpsertUser(context.Background(), "", "Karim", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetUser_OwnRecordOnly(t *testing.T) {
	repo := new(MockUserRepository)
	stored := &entity.User{Email: "karim@example.com", Name: "Karim"}
	repo.On("GetByEmail", mock.Anything, "karim@example.com").Return(stored, nil)

	svc := newUserService(t, repo)

	user, err := svc.GetUser(context.Background(), "karim@example.com", "karim@example.com")
	require.NoError(t, err)
	assert.Equal(t, stored, user)

	_, err = svc.GetUser(context.Background(), "karim@example.com", "other@example.com")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGetUser_NotFound(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByEmail", mock.Anything, "missing@example.com").Return(nil, repository.ErrNotFound)

	svc := newUserService(t, repo)

	_, err := svc.GetUser(context.Background(), "missing@example.com", "missing@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConfirmUser(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("Exists", mock.Anything, "karim@example.com").Return(true, nil)
	repo.On("Exists", mock.Anything, "missing@example.com").Return(false, nil)

	svc := newUserService(t, repo)

	exists, err := svc.ConfirmUser(context.Background(), "karim@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = svc.ConfirmUser(context.Background(), "missing@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = svc.ConfirmUser(context.Background(), "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSetIdentityImage(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("SetIdentityImage", mock.Anything, "karim@example.com", repository.IdentityImageNID, "https://cdn.example.com/nid.png").Return(nil)

	svc := newUserService(t, repo)

	err := svc.SetIdentityImage(context.Background(), "karim@example.com", repository.IdentityImageNID, "https://cdn.example.com/nid.png", "karim@example.com")
	assert.NoError(t, err)

	err = svc.SetIdentityImage(context.Background(), "karim@example.com", repository.IdentityImageNID, "https://cdn.example.com/nid.png", "other@example.com")
	assert.ErrorIs(t, err, ErrForbidden)

	err = svc.SetIdentityImage(context.Background(), "karim@example.com", repository.IdentityImagePassport, "", "karim@example.com")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListUsers_AdminOnly(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByEmail", mock.Anything, "admin@example.com").Return(&entity.User{Email: "admin@example.com", Role: entity.RoleAdmin}, nil)
	repo.On("GetByEmail", mock.Anything, "karim@example.com").Return(&entity.User{Email: "karim@example.com"}, nil)
	repo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, repository.ErrNotFound)
	repo.On("List", mock.Anything).Return([]entity.User{{Email: "karim@example.com"}}, nil)

	svc := newUserService(t, repo)

	users, err := svc.ListUsers(context.Background(), "admin@example.com")
	require.NoError(t, err)
	assert.Len(t, users, 1)

	_, err = svc.ListUsers(context.Background(), "karim@example.com")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.ListUsers(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, ErrForbidden)
}

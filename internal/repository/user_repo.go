package repository

import (
	"context"

	"github.com/mejbahuddintamim/bdrent-server/internal/domain/entity"
)

// IdentityImageKind selects which identity-document link to store.
type IdentityImageKind string

const (
	IdentityImageNID      IdentityImageKind = "nid"
	IdentityImagePassport IdentityImageKind = "passport"
)

type UserRepository interface {
	// Upsert creates or replaces the profile fields for the user's email.
	// The role field is never written through this path.
	Upsert(ctx context.Context, user *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Exists(ctx context.Context, email string) (bool, error)
	SetIdentityImage(ctx context.Context, email string, kind IdentityImageKind, url string) error
	List(ctx context.Context) ([]entity.User, error)
}

package entity

import (
	"errors"
	"time"
)

const RoleAdmin = "admin"

// User is keyed by email; the record is upserted on every login so the
// profile always reflects the auth provider's latest claims. Role assignment
// happens out of band.
type User struct {
	Email       string    `json:"email"`
	Name        string    `json:"name,omitempty"`
	Image       string    `json:"image,omitempty"`
	Role        string    `json:"role,omitempty"`
	NIDImage    string    `json:"nidImg,omitempty"`
	PassportImg string    `json:"passportImg,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

func NewUser(email, name, image string) (*User, error) {
	if email == "" {
		return nil, errors.New("user email cannot be empty")
	}
	now := time.Now().UTC()
	return &User{
		Email:     email,
		Name:      name,
		Image:     image,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

package domain

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents an account that owns sleep logs. Name is stored in
// normalized form and is unique across users.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	TimeZone  string    `json:"time_zone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Location resolves the user's IANA timezone.
func (u *User) Location() (*time.Location, error) {
	return time.LoadLocation(u.TimeZone)
}

// UserCreate represents user creation data. The same payload performs a
// full replace on update.
type UserCreate struct {
	Name     string `json:"name" validate:"required,max=50"`
	TimeZone string `json:"time_zone" validate:"omitempty,timezone"`
}

// NormalizeUserName trims and lowercases a display name. Uniqueness is
// enforced on this form.
func NormalizeUserName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	List(ctx context.Context, pagination Pagination) ([]User, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	Update(ctx context.Context, id uuid.UUID, name, timeZone string) (*User, error)
}

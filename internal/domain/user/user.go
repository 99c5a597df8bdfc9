package user

import (
	"fmt"
	"strings"
	"time"
)

// User is an end user of the support portal. The user's identity in the
// remote helpdesk (their contact record) is resolved on demand and cached
// outside this entity.
type User struct {
	id             uint
	email          string
	name           string
	hashedPassword string
	isActive       bool
	createdAt      time.Time
}

func NewUser(email, name, hashedPassword string) (*User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("a valid email is required")
	}
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if hashedPassword == "" {
		return nil, fmt.Errorf("hashed password is required")
	}

	return &User{
		email:          email,
		name:           name,
		hashedPassword: hashedPassword,
		isActive:       true,
		createdAt:      time.Now().UTC(),
	}, nil
}

func ReconstructUser(id uint, email, name, hashedPassword string, isActive bool, createdAt time.Time) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}

	return &User{
		id:             id,
		email:          email,
		name:           name,
		hashedPassword: hashedPassword,
		isActive:       isActive,
		createdAt:      createdAt,
	}, nil
}

func (u *User) ID() uint {
	return u.id
}

func (u *User) Email() string {
	return u.email
}

func (u *User) Name() string {
	return u.name
}

func (u *User) HashedPassword() string {
	return u.hashedPassword
}

func (u *User) IsActive() bool {
	return u.isActive
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

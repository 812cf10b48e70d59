// Package user contains the User entity and its repository contract.
package user

import (
	"fmt"
	"strings"
	"time"

	"dcfagents/internal/domain/permission"
	"dcfagents/internal/shared/constants"
)

// User is an administrable account. Usernames are unique case-insensitively.
type User struct {
	id           uint
	username     string
	passwordHash string
	firstname    string
	lastname     string
	language     string
	roles        []*permission.Role
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser creates a user from an already-hashed password. Language defaults
// to "en" when empty.
func NewUser(username, passwordHash, firstname, lastname, language string) (*User, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if len(username) > 50 {
		return nil, fmt.Errorf("username too long (max 50 characters)")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}
	if language == "" {
		language = constants.DefaultUserLanguage
	}

	now := time.Now()
	return &User{
		username:     username,
		passwordHash: passwordHash,
		firstname:    firstname,
		lastname:     lastname,
		language:     language,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructUser(id uint, username, passwordHash, firstname, lastname, language string, roles []*permission.Role, createdAt, updatedAt time.Time) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}

	return &User{
		id:           id,
		username:     username,
		passwordHash: passwordHash,
		firstname:    firstname,
		lastname:     lastname,
		language:     language,
		roles:        roles,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (u *User) ID() uint {
	return u.id
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

func (u *User) Username() string {
	return u.username
}

func (u *User) PasswordHash() string {
	return u.passwordHash
}

func (u *User) Firstname() string {
	return u.firstname
}

func (u *User) Lastname() string {
	return u.lastname
}

func (u *User) Language() string {
	return u.language
}

func (u *User) Roles() []*permission.Role {
	return u.roles
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

func (u *User) UpdateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if len(username) > 50 {
		return fmt.Errorf("username too long (max 50 characters)")
	}
	u.username = username
	u.updatedAt = time.Now()
	return nil
}

// UpdatePasswordHash replaces the stored hash. Callers must not invoke this
// for blank password input; a blank password on update is a no-op.
func (u *User) UpdatePasswordHash(hash string) error {
	if hash == "" {
		return fmt.Errorf("password hash cannot be empty")
	}
	u.passwordHash = hash
	u.updatedAt = time.Now()
	return nil
}

func (u *User) UpdateFirstname(firstname string) {
	u.firstname = firstname
	u.updatedAt = time.Now()
}

func (u *User) UpdateLastname(lastname string) {
	u.lastname = lastname
	u.updatedAt = time.Now()
}

func (u *User) UpdateLanguage(language string) {
	u.language = language
	u.updatedAt = time.Now()
}

// SetRoles replaces the user's role set.
func (u *User) SetRoles(roles []*permission.Role) {
	u.roles = roles
	u.updatedAt = time.Now()
}

// IsProtected reports whether this user is the protected admin sentinel.
// The check is name-based and case-insensitive: any account named "admin"
// is protected, seeded or not.
func (u *User) IsProtected() bool {
	return IsProtectedUsername(u.username)
}

// IsProtectedUsername reports whether a username collides with the protected
// admin sentinel.
func IsProtectedUsername(username string) bool {
	return strings.EqualFold(username, constants.ProtectedAdminUsername)
}

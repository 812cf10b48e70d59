package user

import "context"

// Filter narrows paginated user listings. Search matches username,
// firstname, and lastname case-insensitively as a substring.
type Filter struct {
	Search   string
	Page     int
	PageSize int
}

// Repository is the persistence contract for users.
// Lookup methods return (nil, nil) when no record matches.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByUsernameIgnoreCase(ctx context.Context, username string) (*User, error)
	ExistsByUsernameIgnoreCase(ctx context.Context, username string) (bool, error)
	FindAll(ctx context.Context) ([]*User, error)
	List(ctx context.Context, filter Filter) ([]*User, int64, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uint) error
	// ReplaceRoles replaces the user's role set in the join table.
	ReplaceRoles(ctx context.Context, userID uint, roleIDs []uint) error
}

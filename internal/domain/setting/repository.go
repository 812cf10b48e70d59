package setting

import "context"

// Repository is the persistence contract for AI settings.
// GetByID returns (nil, nil) when no record matches.
type Repository interface {
	FindAll(ctx context.Context) ([]*AiSettings, error)
	GetByID(ctx context.Context, id uint) (*AiSettings, error)
	Update(ctx context.Context, settings *AiSettings) error
}

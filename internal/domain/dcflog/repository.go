package dcflog

import "context"

// Filter narrows paginated log listings. Entries are always returned newest
// first (creation time descending).
type Filter struct {
	Page     int
	PageSize int
}

// Repository is the persistence contract for the audit log.
type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	List(ctx context.Context, filter Filter) ([]*Entry, int64, error)
	Count(ctx context.Context) (int64, error)
	// CountByValidationStatusContaining counts entries whose validation
	// status contains the term, case-insensitively.
	CountByValidationStatusContaining(ctx context.Context, term string) (int64, error)
	CountDistinctCompanyNames(ctx context.Context) (int64, error)
}

// Package dcflog contains the append-only audit log of DCF analysis runs.
package dcflog

import (
	"fmt"
	"time"
)

// Entry is a single audit record. Entries are create-only: they are never
// updated or deleted through the exposed contract, and the creation
// timestamp is always server-assigned.
type Entry struct {
	id               uint
	createdAt        time.Time
	username         string
	companyName      string
	description      string
	validationStatus string
}

// NewEntry creates an audit entry. The creation timestamp is assigned here,
// never taken from client input.
func NewEntry(username, companyName, description, validationStatus string) (*Entry, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if companyName == "" {
		return nil, fmt.Errorf("company name is required")
	}

	return &Entry{
		createdAt:        time.Now(),
		username:         username,
		companyName:      companyName,
		description:      description,
		validationStatus: validationStatus,
	}, nil
}

func ReconstructEntry(id uint, createdAt time.Time, username, companyName, description, validationStatus string) (*Entry, error) {
	if id == 0 {
		return nil, fmt.Errorf("log entry ID cannot be zero")
	}

	return &Entry{
		id:               id,
		createdAt:        createdAt,
		username:         username,
		companyName:      companyName,
		description:      description,
		validationStatus: validationStatus,
	}, nil
}

func (e *Entry) ID() uint {
	return e.id
}

func (e *Entry) SetID(id uint) error {
	if e.id != 0 {
		return fmt.Errorf("log entry ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("log entry ID cannot be zero")
	}
	e.id = id
	return nil
}

func (e *Entry) CreatedAt() time.Time {
	return e.createdAt
}

func (e *Entry) Username() string {
	return e.username
}

func (e *Entry) CompanyName() string {
	return e.companyName
}

func (e *Entry) Description() string {
	return e.description
}

func (e *Entry) ValidationStatus() string {
	return e.validationStatus
}

// Stats are the aggregate counters served by the audit log.
type Stats struct {
	TotalAnalyses   int64
	ValidatedCount  int64
	UniqueCompanies int64
}

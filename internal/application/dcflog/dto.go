package dcflog

import (
	"time"

	domainDcflog "dcfagents/internal/domain/dcflog"
	"dcfagents/internal/shared/utils"
)

type CreateEntryRequest struct {
	Username         string `json:"username" binding:"required" validate:"required"`
	CompanyName      string `json:"company_name" binding:"required" validate:"required"`
	Description      string `json:"description"`
	ValidationStatus string `json:"validation_status"`
}

// Validate checks the request independently of HTTP binding, for callers
// that construct it directly.
func (r CreateEntryRequest) Validate() error {
	return utils.ValidateStruct(r)
}

type ListEntriesRequest struct {
	Page     int `form:"page"`
	PageSize int `form:"size"`
}

type EntryResponse struct {
	ID               uint      `json:"id"`
	CreatedAt        time.Time `json:"created_at"`
	Username         string    `json:"username"`
	CompanyName      string    `json:"company_name"`
	Description      string    `json:"description"`
	ValidationStatus string    `json:"validation_status"`
}

// StatsResponse serializes in camelCase, unlike the rest of the API, so the
// existing analysis dashboard can consume the stats endpoint unchanged.
type StatsResponse struct {
	TotalAnalyses   int64 `json:"totalAnalyses"`
	ValidatedCount  int64 `json:"validatedCount"`
	UniqueCompanies int64 `json:"uniqueCompanies"`
}

func toEntryResponse(entry *domainDcflog.Entry) *EntryResponse {
	return &EntryResponse{
		ID:               entry.ID(),
		CreatedAt:        entry.CreatedAt(),
		Username:         entry.Username(),
		CompanyName:      entry.CompanyName(),
		Description:      entry.Description(),
		ValidationStatus: entry.ValidationStatus(),
	}
}

func toEntryResponses(entries []*domainDcflog.Entry) []*EntryResponse {
	responses := make([]*EntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, toEntryResponse(entry))
	}
	return responses
}

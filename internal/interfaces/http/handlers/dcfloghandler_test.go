package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dcfagents/internal/application/dcflog"
	"dcfagents/internal/interfaces/http/handlers/testutil"
)

type mockDcfLogService struct {
	listResult   []*dcflog.EntryResponse
	listTotal    int64
	createResult *dcflog.EntryResponse
	statsResult  *dcflog.StatsResponse
	err          error

	lastListRequest   dcflog.ListEntriesRequest
	lastCreateRequest dcflog.CreateEntryRequest
}

func (m *mockDcfLogService) List(ctx context.Context, request dcflog.ListEntriesRequest) ([]*dcflog.EntryResponse, int64, error) {
	m.lastListRequest = request
	return m.listResult, m.listTotal, m.err
}

func (m *mockDcfLogService) Create(ctx context.Context, request dcflog.CreateEntryRequest) (*dcflog.EntryResponse, error) {
	m.lastCreateRequest = request
	return m.createResult, m.err
}

func (m *mockDcfLogService) Stats(ctx context.Context) (*dcflog.StatsResponse, error) {
	return m.statsResult, m.err
}

func TestDcfLogHandler_ListEntries(t *testing.T) {
	svc := &mockDcfLogService{
		listResult: []*dcflog.EntryResponse{{ID: 1, CompanyName: "Acme Corp"}},
		listTotal:  1,
	}
	handler := NewDcfLogHandler(svc, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/dcf-logs", nil)
	testutil.SetQueryParams(c, map[string]string{"page": "3", "size": "15"})

	handler.ListEntries(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, svc.lastListRequest.Page)
	assert.Equal(t, 15, svc.lastListRequest.PageSize)
}

func TestDcfLogHandler_CreateEntry(t *testing.T) {
	t.Run("records an analysis", func(t *testing.T) {
		svc := &mockDcfLogService{createResult: &dcflog.EntryResponse{ID: 1, CompanyName: "Acme Corp"}}
		handler := NewDcfLogHandler(svc, testutil.NewMockLogger())

		c, w := testutil.NewTestContext(http.MethodPost, "/dcf-logs", map[string]interface{}{
			"username":          "alice",
			"company_name":      "Acme Corp",
			"validation_status": "Validated",
		})

		handler.CreateEntry(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "Acme Corp", svc.lastCreateRequest.CompanyName)
	})

	t.Run("company name is required", func(t *testing.T) {
		handler := NewDcfLogHandler(&mockDcfLogService{}, testutil.NewMockLogger())

		c, w := testutil.NewTestContext(http.MethodPost, "/dcf-logs", map[string]interface{}{
			"username": "alice",
		})

		handler.CreateEntry(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDcfLogHandler_GetStats(t *testing.T) {
	svc := &mockDcfLogService{
		statsResult: &dcflog.StatsResponse{TotalAnalyses: 10, ValidatedCount: 4, UniqueCompanies: 7},
	}
	handler := NewDcfLogHandler(svc, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/dcf-logs/stats", nil)
	handler.GetStats(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))

	// The dashboard reads these exact camelCase keys.
	var raw map[string]int64
	require.NoError(t, json.Unmarshal(resp.Data, &raw))
	assert.Equal(t, int64(10), raw["totalAnalyses"])
	assert.Equal(t, int64(4), raw["validatedCount"])
	assert.Equal(t, int64(7), raw["uniqueCompanies"])
}

package analysis_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mullergauthier/HarmattanAI/internal/agent"
	"github.com/mullergauthier/HarmattanAI/internal/agent/mock"
	"github.com/mullergauthier/HarmattanAI/internal/analysis"
	"github.com/mullergauthier/HarmattanAI/internal/cache"
	"github.com/mullergauthier/HarmattanAI/pkg/models"
)

type memCache struct {
	latest map[uuid.UUID]*cache.Analysis
	setErr error
}

func newMemCache() *memCache {
	return &memCache{latest: make(map[uuid.UUID]*cache.Analysis)}
}

func (m *memCache) Set(_ context.Context, _ string, _ []byte, _ time.Duration) error { return nil }
func (m *memCache) Get(_ context.Context, _ string) ([]byte, bool, error)            { return nil, false, nil }
func (m *memCache) Delete(_ context.Context, _ string) error                          { return nil }
func (m *memCache) Ping(_ context.Context) error                                      { return nil }
func (m *memCache) SetLatestAnalysis(_ context.Context, tenantID uuid.UUID, a *cache.Analysis, _ time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.latest[tenantID] = a
	return nil
}
func (m *memCache) GetLatestAnalysis(_ context.Context, tenantID uuid.UUID) (*cache.Analysis, bool, error) {
	a, ok := m.latest[tenantID]
	return a, ok, nil
}
func (m *memCache) IncrWithExpiry(_ context.Context, _ string, _ time.Duration) (int64, error) {
	return 1, nil
}

var _ cache.Cache = (*memCache)(nil)

func newAnalysisService(ca cache.Cache) *analysis.Service {
	agents := agent.NewService(map[string]models.AgentInvoker{"mock": mock.NewMockInvoker()}, 5*time.Second)
	return analysis.NewService(agents, ca, 30*time.Minute)
}

func TestAnalyze_StoresLatestResult(t *testing.T) {
	ca := newMemCache()
	svc := newAnalysisService(ca)
	tenantID := uuid.New()

	result, err := svc.Analyze(context.Background(), analysis.Params{
		TenantID: tenantID,
		Notes:    "fever for 3 days",
		Provider: "mock",
	})
	require.NoError(t, err)
	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, "R50.9", result.Suggestions[0].Code)
	assert.Equal(t, "mock", result.Provider)

	latest, found, err := svc.Latest(context.Background(), tenantID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, result.AnalysisID, latest.ID)
	assert.Equal(t, result.Suggestions, latest.Suggestions)
}

func TestAnalyze_LastWriteWins(t *testing.T) {
	ca := newMemCache()
	svc := newAnalysisService(ca)
	tenantID := uuid.New()

	first, err := svc.Analyze(context.Background(), analysis.Params{
		TenantID: tenantID, Notes: "fever", Provider: "mock",
	})
	require.NoError(t, err)

	second, err := svc.Analyze(context.Background(), analysis.Params{
		TenantID: tenantID, Notes: "headache", Provider: "mock",
	})
	require.NoError(t, err)
	require.NotEqual(t, first.AnalysisID, second.AnalysisID)

	latest, found, err := svc.Latest(context.Background(), tenantID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, second.AnalysisID, latest.ID)
}

func TestAnalyze_CacheFailureDoesNotFailAnalysis(t *testing.T) {
	ca := newMemCache()
	ca.setErr = errors.New("redis down")
	svc := newAnalysisService(ca)

	result, err := svc.Analyze(context.Background(), analysis.Params{
		TenantID: uuid.New(), Notes: "fever", Provider: "mock",
	})
	require.NoError(t, err)
	assert.Len(t, result.Suggestions, 1)
}

func TestAnalyze_DispatcherErrorPropagates(t *testing.T) {
	agents := agent.NewService(map[string]models.AgentInvoker{"mock": mock.NewMockInvoker()}, 5*time.Second)
	svc := analysis.NewService(agents, newMemCache(), 30*time.Minute)

	_, err := svc.Analyze(context.Background(), analysis.Params{
		TenantID: uuid.New(), Notes: "fever", Provider: "unknown",
	})
	assert.ErrorIs(t, err, agent.ErrInvalidProvider)
}

package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cortex-kb/cortex/internal/adapters/driving/tui/messages"
	"github.com/cortex-kb/cortex/internal/core/domain"
)

// MockHealthService implements driving.HealthService for testing.
type MockHealthService struct {
	ReportFunc func(ctx context.Context) domain.HealthReport
}

func (m *MockHealthService) Report(ctx context.Context) domain.HealthReport {
	if m.ReportFunc != nil {
		return m.ReportFunc(ctx)
	}
	return domain.HealthReport{Status: domain.HealthHealthy}
}

// MockStatusService implements driving.StatusService for testing.
type MockStatusService struct {
	StatusFunc func(ctx context.Context) (*domain.StoreStatus, error)
}

func (m *MockStatusService) Status(ctx context.Context) (*domain.StoreStatus, error) {
	if m.StatusFunc != nil {
		return m.StatusFunc(ctx)
	}
	return &domain.StoreStatus{SQLiteVersion: "3.46.0"}, nil
}

// MockProviderService implements driving.ProviderService for testing.
type MockProviderService struct {
	ReportFunc func(ctx context.Context) domain.ProviderReport
}

func (m *MockProviderService) Report(ctx context.Context) domain.ProviderReport {
	if m.ReportFunc != nil {
		return m.ReportFunc(ctx)
	}
	return domain.ProviderReport{Status: domain.ProviderHealthy}
}

func (m *MockProviderService) Models(ctx context.Context) ([]domain.ModelInfo, error) {
	return nil, nil
}

func (m *MockProviderService) Embed(ctx context.Context, text string) ([]float32, error) {
	return nil, nil
}

func (m *MockProviderService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return nil, nil
}

func (m *MockProviderService) Chat(ctx context.Context, msgs []domain.ChatMessage, system string) (string, error) {
	return "", nil
}

func (m *MockProviderService) StreamChat(ctx context.Context, msgs []domain.ChatMessage, system string) (<-chan string, <-chan error) {
	text := make(chan string)
	errs := make(chan error)
	close(text)
	close(errs)
	return text, errs
}

func newTestPorts() *Ports {
	return &Ports{
		Health:   &MockHealthService{},
		Status:   &MockStatusService{},
		Provider: &MockProviderService{},
	}
}

func millisInt64(ms int64) *int64 {
	return &ms
}

func testReport() domain.HealthReport {
	return domain.HealthReport{
		Status:    domain.HealthHealthy,
		Version:   "1.2.3",
		Timestamp: time.Now().UTC(),
		Checks: map[string]domain.ComponentCheck{
			"api":      {Status: domain.HealthHealthy},
			"database": {Status: domain.HealthHealthy, LatencyMillis: millisInt64(2)},
			"ollama":   {Status: domain.HealthHealthy, LatencyMillis: millisInt64(14)},
		},
	}
}

func TestNewApp_Success(t *testing.T) {
	app, err := NewApp(newTestPorts())

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.False(t, app.Ready())
	assert.True(t, app.Loading())
}

func TestNewApp_NilPorts(t *testing.T) {
	app, err := NewApp(nil)

	assert.ErrorIs(t, err, ErrInvalidPorts)
	assert.Nil(t, app)
}

func TestNewApp_MissingHealthService(t *testing.T) {
	ports := newTestPorts()
	ports.Health = nil

	app, err := NewApp(ports)

	assert.ErrorIs(t, err, ErrMissingHealthService)
	assert.Nil(t, app)
}

func TestApp_WithContext(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")
	result := app.WithContext(ctx)

	assert.Equal(t, app, result)
}

func TestApp_Init(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	cmd := app.Init()

	assert.NotNil(t, cmd)
}

func TestApp_Update_WindowSize(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	model, cmd := app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	assert.Equal(t, app, model)
	assert.Nil(t, cmd)
	assert.True(t, app.Ready())
}

func TestApp_Poll(t *testing.T) {
	ports := &Ports{
		Health: &MockHealthService{ReportFunc: func(ctx context.Context) domain.HealthReport {
			return testReport()
		}},
		Status: &MockStatusService{StatusFunc: func(ctx context.Context) (*domain.StoreStatus, error) {
			return &domain.StoreStatus{SQLiteVersion: "3.46.0", ItemCount: 7, ChunkCount: 21}, nil
		}},
		Provider: &MockProviderService{ReportFunc: func(ctx context.Context) domain.ProviderReport {
			return domain.ProviderReport{Status: domain.ProviderHealthy, Models: []string{"llama3.2"}}
		}},
	}
	app, err := NewApp(ports)
	require.NoError(t, err)

	result := app.poll()()

	loaded, ok := result.(messages.StatusLoaded)
	require.True(t, ok)
	assert.Equal(t, domain.HealthHealthy, loaded.Health.Status)
	require.NotNil(t, loaded.Provider)
	assert.Equal(t, []string{"llama3.2"}, loaded.Provider.Models)
	require.NotNil(t, loaded.Store)
	assert.Equal(t, 7, loaded.Store.ItemCount)
	assert.NoError(t, loaded.StoreErr)
}

func TestApp_Poll_StoreNotInitialized(t *testing.T) {
	ports := newTestPorts()
	ports.Status = &MockStatusService{StatusFunc: func(ctx context.Context) (*domain.StoreStatus, error) {
		return nil, fmt.Errorf("inspecting store: %w", domain.ErrStorageUnavailable)
	}}
	app, _ := NewApp(ports)

	result := app.poll()()

	loaded, ok := result.(messages.StatusLoaded)
	require.True(t, ok)
	assert.Nil(t, loaded.Store)
	assert.ErrorIs(t, loaded.StoreErr, domain.ErrStorageUnavailable)
}

func TestApp_Poll_NoProvider(t *testing.T) {
	ports := newTestPorts()
	ports.Provider = nil
	app, _ := NewApp(ports)

	result := app.poll()()

	loaded, ok := result.(messages.StatusLoaded)
	require.True(t, ok)
	assert.Nil(t, loaded.Provider)
}

func TestApp_Update_StatusLoaded(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	report := testReport()
	provider := domain.ProviderReport{Status: domain.ProviderHealthy}
	store := &domain.StoreStatus{SQLiteVersion: "3.46.0"}
	model, cmd := app.Update(messages.StatusLoaded{
		Health:   report,
		Provider: &provider,
		Store:    store,
	})

	assert.Equal(t, app, model)
	assert.NotNil(t, cmd, "a completed poll should schedule the next one")
	assert.False(t, app.Loading())
	require.NotNil(t, app.Health())
	assert.Equal(t, report.Version, app.Health().Version)
	assert.Equal(t, store, app.Store())
}

func TestApp_Update_RefreshTick(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.loading = false

	_, cmd := app.Update(messages.RefreshTick{})

	assert.True(t, app.Loading())
	assert.NotNil(t, cmd)
}

func TestApp_Update_RefreshTick_WhilePolling(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.loading = true

	_, cmd := app.Update(messages.RefreshTick{})

	assert.True(t, app.Loading())
	assert.NotNil(t, cmd, "the schedule must survive an overlapping manual refresh")
}

func TestApp_Update_KeyQuit(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyEsc},
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
	} {
		_, cmd := app.Update(key)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestApp_Update_KeyRefresh(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.loading = false

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})

	assert.True(t, app.Loading())
	assert.NotNil(t, cmd)
}

func TestApp_Update_KeyRefresh_IgnoredWhilePolling(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.loading = true

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})

	assert.Nil(t, cmd)
}

func TestApp_Update_UnknownKey(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.loading = false

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}})

	assert.Nil(t, cmd)
	assert.False(t, app.Loading())
}

func TestApp_View_NotReady(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	assert.Contains(t, app.View(), "Initialising")
}

func TestApp_View_FirstPollPending(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(80, 24)

	output := app.View()

	assert.Contains(t, output, "Cortex")
	assert.Contains(t, output, "Gathering status")
}

func TestApp_View_WithReports(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(100, 40)

	latency := 12.5
	report := testReport()
	app.Update(messages.StatusLoaded{
		Health: report,
		Provider: &domain.ProviderReport{
			Status:        domain.ProviderHealthy,
			BaseURL:       "http://localhost:11434",
			Models:        []string{"llama3.2", "nomic-embed-text"},
			LatencyMillis: &latency,
		},
		Store: &domain.StoreStatus{
			SQLiteVersion: "3.46.0",
			Tables:        []string{"items", "chunks"},
			ItemCount:     7,
			ChunkCount:    21,
		},
	})

	output := app.View()

	assert.Contains(t, output, "Health")
	assert.Contains(t, output, "overall")
	assert.Contains(t, output, "ollama")
	assert.Contains(t, output, "llama3.2")
	assert.Contains(t, output, "sqlite 3.46.0")
	assert.Contains(t, output, "7 items, 21 chunks")
	assert.Contains(t, output, "[r] refresh")
}

func TestApp_View_DegradedCheck(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(100, 40)

	report := testReport()
	report.Status = domain.HealthDegraded
	report.Checks["ollama"] = domain.ComponentCheck{
		Status: domain.HealthUnhealthy,
		Error:  "Ollama not reachable",
	}
	app.Update(messages.StatusLoaded{Health: report})

	output := app.View()

	assert.Contains(t, output, "degraded")
	assert.Contains(t, output, "Ollama not reachable")
}

func TestApp_View_StoreNotInitialized(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(100, 40)

	app.Update(messages.StatusLoaded{
		Health:   testReport(),
		StoreErr: domain.ErrStorageUnavailable,
	})

	output := app.View()

	assert.Contains(t, output, "not initialized")
	assert.Contains(t, output, "cortex init")
}

func TestApp_View_StoreFailure(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(100, 40)

	app.Update(messages.StatusLoaded{
		Health:   testReport(),
		StoreErr: errors.New("disk I/O error"),
	})

	assert.Contains(t, app.View(), "disk I/O error")
}

func TestApp_View_ProviderNotConfigured(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(100, 40)

	app.Update(messages.StatusLoaded{Health: testReport()})

	assert.Contains(t, app.View(), "(not configured)")
}

func TestApp_View_ProviderWithoutModels(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(100, 40)

	app.Update(messages.StatusLoaded{
		Health:   testReport(),
		Provider: &domain.ProviderReport{Status: domain.ProviderHealthy, BaseURL: "http://localhost:11434"},
	})

	assert.Contains(t, app.View(), "(no models pulled)")
}

func TestApp_SetDimensions(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	app.SetDimensions(120, 50)

	assert.True(t, app.Ready())
	assert.Equal(t, 120, app.width)
	assert.Equal(t, 50, app.height)
}

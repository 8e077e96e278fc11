package tui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cortex-kb/cortex/internal/adapters/driving/tui/messages"
	"github.com/cortex-kb/cortex/internal/adapters/driving/tui/styles"
	"github.com/cortex-kb/cortex/internal/core/domain"
)

// refreshInterval is how often the dashboard re-polls the backend.
const refreshInterval = 5 * time.Second

// pollTimeout bounds a single dashboard poll.
const pollTimeout = 10 * time.Second

// App is the root bubbletea model for the status dashboard.
type App struct {
	ports  *Ports
	styles *styles.Styles
	ctx    context.Context

	spinner spinner.Model

	health      *domain.HealthReport
	provider    *domain.ProviderReport
	store       *domain.StoreStatus
	storeErr    error
	lastRefresh time.Time

	width   int
	height  int
	ready   bool
	loading bool
}

// Compile-time check that App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates the dashboard application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil {
		return nil, ErrInvalidPorts
	}
	if err := ports.Validate(); err != nil {
		return nil, err
	}

	s := styles.DefaultStyles()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(s.Theme().Primary)

	return &App{
		ports:   ports,
		styles:  s,
		ctx:     context.Background(),
		spinner: sp,
		loading: true,
	}, nil
}

// WithContext sets the context used for backend calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init starts the spinner and the first poll.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("cortex"),
		a.spinner.Tick,
		a.poll(),
	)
}

// poll returns a command that gathers one dashboard snapshot.
func (a *App) poll() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(a.ctx, pollTimeout)
		defer cancel()

		msg := messages.StatusLoaded{Health: a.ports.Health.Report(ctx)}

		if a.ports.Provider != nil {
			report := a.ports.Provider.Report(ctx)
			msg.Provider = &report
		}

		msg.Store, msg.StoreErr = a.ports.Status.Status(ctx)

		return msg
	}
}

// scheduleRefresh returns a command that fires the next poll tick.
func scheduleRefresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg {
		return messages.RefreshTick{}
	})
}

// Update handles incoming messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return a, tea.Quit
		case "r":
			if !a.loading {
				a.loading = true
				return a, tea.Batch(a.spinner.Tick, a.poll())
			}
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case messages.StatusLoaded:
		a.loading = false
		a.health = &msg.Health
		a.provider = msg.Provider
		a.store = msg.Store
		a.storeErr = msg.StoreErr
		a.lastRefresh = time.Now()
		return a, scheduleRefresh()

	case messages.RefreshTick:
		if a.loading {
			// A manual refresh is already in flight; keep the schedule alive.
			return a, scheduleRefresh()
		}
		a.loading = true
		return a, tea.Batch(a.spinner.Tick, a.poll())
	}

	return a, nil
}

// View renders the dashboard.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(a.styles.Title.Render("Cortex"))
	b.WriteString("  ")
	b.WriteString(a.styles.Muted.Render("local knowledge base"))
	b.WriteString("\n\n")

	if a.health == nil {
		b.WriteString(a.spinner.View())
		b.WriteString(a.styles.Muted.Render(" Gathering status..."))
		b.WriteString("\n\n")
		b.WriteString(a.renderFooter())
		return b.String()
	}

	b.WriteString(a.styles.Panel.Render(a.renderHealth()))
	b.WriteString("\n")
	b.WriteString(a.styles.Panel.Render(a.renderProvider()))
	b.WriteString("\n")
	b.WriteString(a.styles.Panel.Render(a.renderStore()))
	b.WriteString("\n\n")
	b.WriteString(a.renderFooter())

	return b.String()
}

// renderHealth renders the component health panel.
func (a *App) renderHealth() string {
	var b strings.Builder

	b.WriteString(a.styles.Subtitle.Render("Health"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%-10s %s\n", "overall", a.renderStatus(a.health.Status)))

	names := make([]string, 0, len(a.health.Checks))
	for name := range a.health.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		check := a.health.Checks[name]
		b.WriteString(fmt.Sprintf("%-10s %s", name, a.renderStatus(check.Status)))
		if check.LatencyMillis != nil {
			b.WriteString(a.styles.Muted.Render(fmt.Sprintf("  %dms", *check.LatencyMillis)))
		}
		if check.Error != "" {
			b.WriteString("  ")
			b.WriteString(a.styles.Error.Render(check.Error))
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// renderProvider renders the inference provider panel.
func (a *App) renderProvider() string {
	var b strings.Builder

	b.WriteString(a.styles.Subtitle.Render("Provider"))
	b.WriteString("\n")

	if a.provider == nil {
		b.WriteString(a.styles.Muted.Render("(not configured)"))
		return b.String()
	}

	b.WriteString(a.renderStatus(a.provider.Status))
	b.WriteString("  ")
	b.WriteString(a.styles.Muted.Render(a.provider.BaseURL))
	if a.provider.LatencyMillis != nil {
		b.WriteString(a.styles.Muted.Render(fmt.Sprintf("  %.0fms", *a.provider.LatencyMillis)))
	}
	b.WriteString("\n")

	if a.provider.Error != "" {
		b.WriteString(a.styles.Error.Render(a.provider.Error))
		b.WriteString("\n")
	}

	for _, model := range a.provider.Models {
		b.WriteString(a.styles.Normal.Render("  " + model))
		b.WriteString("\n")
	}
	if a.provider.Status == domain.ProviderHealthy && len(a.provider.Models) == 0 {
		b.WriteString(a.styles.Muted.Render("  (no models pulled)"))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// renderStore renders the database panel.
func (a *App) renderStore() string {
	var b strings.Builder

	b.WriteString(a.styles.Subtitle.Render("Database"))
	b.WriteString("\n")

	if a.storeErr != nil {
		if errors.Is(a.storeErr, domain.ErrStorageUnavailable) {
			b.WriteString(a.styles.Warning.Render("not initialized"))
			b.WriteString("\n")
			b.WriteString(a.styles.Muted.Render("run 'cortex init' to create the database"))
		} else {
			b.WriteString(a.styles.Error.Render(a.storeErr.Error()))
		}
		return b.String()
	}

	if a.store == nil {
		b.WriteString(a.styles.Muted.Render("(no report yet)"))
		return b.String()
	}

	b.WriteString(a.styles.Normal.Render(fmt.Sprintf("sqlite %s", a.store.SQLiteVersion)))
	b.WriteString("\n")
	b.WriteString(a.styles.Normal.Render(fmt.Sprintf("%d items, %d chunks", a.store.ItemCount, a.store.ChunkCount)))
	b.WriteString("\n")
	b.WriteString(a.styles.Muted.Render("tables: " + strings.Join(a.store.Tables, ", ")))

	return b.String()
}

// renderStatus colours a status word.
func (a *App) renderStatus(status string) string {
	switch status {
	case domain.HealthHealthy:
		return a.styles.Success.Render(status)
	case domain.HealthDegraded:
		return a.styles.Warning.Render(status)
	default:
		return a.styles.Error.Render(status)
	}
}

// renderFooter renders the refresh indicator and keybinding help.
func (a *App) renderFooter() string {
	var b strings.Builder

	if a.loading {
		b.WriteString(a.spinner.View())
		b.WriteString(a.styles.Muted.Render(" refreshing..."))
	} else if !a.lastRefresh.IsZero() {
		b.WriteString(a.styles.Muted.Render("last refresh " + a.lastRefresh.Format("15:04:05")))
	}
	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render("[r] refresh  [q] quit"))

	return b.String()
}

// Run starts the bubbletea program and blocks until it exits.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Ready reports whether the first window size has arrived.
func (a *App) Ready() bool {
	return a.ready
}

// Loading reports whether a poll is in flight.
func (a *App) Loading() bool {
	return a.loading
}

// Health returns the last health report, or nil before the first poll.
func (a *App) Health() *domain.HealthReport {
	return a.health
}

// Provider returns the last provider report, or nil.
func (a *App) Provider() *domain.ProviderReport {
	return a.provider
}

// Store returns the last database status, or nil.
func (a *App) Store() *domain.StoreStatus {
	return a.store
}

// StoreErr returns the last database status error.
func (a *App) StoreErr() error {
	return a.storeErr
}

// SetDimensions sets the view dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
}

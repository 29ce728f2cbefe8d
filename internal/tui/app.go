// Package tui renders the planboard dashboard: deadline list, workload
// bars, timeline, data table and a diagnostics panel over one aggregated
// task table, with an optional AI status summary.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/planboard/planboard/internal/board"
	"github.com/planboard/planboard/internal/model"
	"github.com/planboard/planboard/internal/views"
)

// Widget identifies the focused dashboard widget
type Widget int

const (
	WidgetDeadlines Widget = iota
	WidgetWorkload
	WidgetTimeline
	WidgetTable
	widgetCount
)

// Summarizer is the optional AI collaborator. It only consumes the
// pre-built digest text.
type Summarizer interface {
	Summarize(ctx context.Context, digest string) (string, error)
}

// Messages
type snapshotLoadedMsg struct {
	snap *board.Snapshot
	err  error
}

type summaryMsg struct {
	text string
	err  error
}

type tickMsg time.Time

// FilterMode cycles none -> person -> project
type FilterMode int

const (
	FilterNone FilterMode = iota
	FilterPerson
	FilterProject
)

// Model is the root Bubble Tea model
type Model struct {
	// Terminal dimensions
	width  int
	height int

	// Collaborators
	provider   board.Provider
	summarizer Summarizer
	viewsCfg   *views.Views

	// Behavior knobs
	lookaheadDays int
	digestTopN    int

	// Data state
	snap     *board.Snapshot
	loading  bool
	fetchErr error

	// View state
	focused    Widget
	selected   int // table row cursor
	showDiags  bool
	diags      DiagnosticsPanel
	keys       KeyMap

	// Filtering
	filterMode  FilterMode
	filterIdx   int // index into the candidate list
	filterValue string

	// Summary state
	summary        string
	summaryErr     error
	summaryLoading bool
	showSummary    bool

	// now is swappable for tests
	now func() time.Time
}

// Config wires a dashboard model
type Config struct {
	Provider      board.Provider
	Summarizer    Summarizer // nil disables the summary view
	Views         *views.Views
	LookaheadDays int
	DigestTopN    int
}

// NewModel creates the dashboard model
func NewModel(cfg Config) Model {
	return Model{
		provider:      cfg.Provider,
		summarizer:    cfg.Summarizer,
		viewsCfg:      cfg.Views,
		lookaheadDays: cfg.LookaheadDays,
		digestTopN:    cfg.DigestTopN,
		loading:       true,
		keys:          DefaultKeyMap(),
		diags:         NewDiagnosticsPanel(),
		now:           time.Now,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadSnapshot(), tick())
}

// loadSnapshot fetches (or reads the cached) snapshot off the UI loop
func (m Model) loadSnapshot() tea.Cmd {
	provider := m.provider
	return func() tea.Msg {
		snap, err := provider.Snapshot(context.Background())
		return snapshotLoadedMsg{snap: snap, err: err}
	}
}

// loadSummary asks the summarizer for a status email body
func (m Model) loadSummary() tea.Cmd {
	if m.summarizer == nil || m.snap == nil {
		return nil
	}
	digest := m.viewsCfg.Digest(m.visibleTable(), m.now(), m.lookaheadDays, m.digestTopN)
	s := m.summarizer
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		text, err := s.Summarize(ctx, digest)
		return summaryMsg{text: text, err: err}
	}
}

// tick keeps the "today" line of date-based widgets honest across
// midnight
func tick() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case snapshotLoadedMsg:
		m.loading = false
		m.fetchErr = msg.err
		if msg.err == nil {
			m.snap = msg.snap
			m.selected = 0
			m.diags.AddLine(fmt.Sprintf("loaded %d rows (%d skips, %d sheet errors)",
				msg.snap.Table.Len(), len(msg.snap.Skips), len(msg.snap.SheetErrs)))
		} else {
			m.diags.AddLine("fetch failed: " + msg.err.Error())
		}
		return m, nil

	case summaryMsg:
		m.summaryLoading = false
		m.summary = msg.text
		m.summaryErr = msg.err
		return m, nil

	case tickMsg:
		return m, tick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Interrupt):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Refresh):
		m.provider.Refresh()
		m.loading = true
		m.diags.AddLine("manual refresh requested")
		return m, m.loadSnapshot()

	case key.Matches(msg, m.keys.Tab):
		m.focused = (m.focused + 1) % widgetCount
		return m, nil

	case key.Matches(msg, m.keys.Diags):
		m.showDiags = !m.showDiags
		return m, nil

	case key.Matches(msg, m.keys.Summary):
		if m.summarizer == nil {
			m.diags.AddLine("summary requested but no API key is configured")
			return m, nil
		}
		m.showSummary = true
		m.summaryLoading = true
		return m, m.loadSummary()

	case key.Matches(msg, m.keys.Escape):
		if m.showSummary {
			m.showSummary = false
			return m, nil
		}
		m.filterMode = FilterNone
		m.filterValue = ""
		m.filterIdx = 0
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		return m.cycleFilter(), nil

	case key.Matches(msg, m.keys.Up):
		if m.focused == WidgetTable && m.selected > 0 {
			m.selected--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.focused == WidgetTable && m.selected < m.visibleTable().Len()-1 {
			m.selected++
		}
		return m, nil
	}
	return m, nil
}

// cycleFilter steps none -> person(1..n) -> project(1..n) -> none,
// walking the candidate lists of the current table
func (m Model) cycleFilter() Model {
	if m.snap == nil {
		return m
	}
	people := m.snap.Table.Assignees()
	projects := m.snap.Table.Projects()

	switch m.filterMode {
	case FilterNone:
		if len(people) > 0 {
			m.filterMode = FilterPerson
			m.filterIdx = 0
			m.filterValue = people[0]
		}
	case FilterPerson:
		m.filterIdx++
		if m.filterIdx < len(people) {
			m.filterValue = people[m.filterIdx]
		} else if len(projects) > 0 {
			m.filterMode = FilterProject
			m.filterIdx = 0
			m.filterValue = projects[0]
		} else {
			m.filterMode = FilterNone
			m.filterValue = ""
		}
	case FilterProject:
		m.filterIdx++
		if m.filterIdx < len(projects) {
			m.filterValue = projects[m.filterIdx]
		} else {
			m.filterMode = FilterNone
			m.filterValue = ""
			m.filterIdx = 0
		}
	}
	m.selected = 0
	return m
}

// visibleTable applies the active filter to the snapshot table
func (m Model) visibleTable() model.Table {
	if m.snap == nil {
		return model.Table{}
	}
	switch m.filterMode {
	case FilterPerson:
		return views.ByAssignee(m.snap.Table, m.filterValue)
	case FilterProject:
		return views.ByProject(m.snap.Table, m.filterValue)
	default:
		return m.snap.Table
	}
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString(DimStyle.Render("Fetching sheets..."))
	case m.fetchErr != nil && m.snap == nil:
		b.WriteString(ErrorStyle.Render("No data: " + m.fetchErr.Error()))
	case m.showSummary:
		b.WriteString(m.summaryView())
	default:
		b.WriteString(m.dashboardView())
	}

	b.WriteString("\n")
	b.WriteString(m.statusBarView())
	return b.String()
}

func (m Model) headerView() string {
	title := HeaderStyle.Render("planboard · " + m.provider.Name())
	if m.filterValue != "" {
		kind := "person"
		if m.filterMode == FilterProject {
			kind = "project"
		}
		title += DimStyle.Render(fmt.Sprintf("  [%s: %s]", kind, m.filterValue))
	}
	return title
}

func (m Model) dashboardView() string {
	table := m.visibleTable()
	now := m.now()
	half := m.width/2 - 2
	workload := m.viewsCfg.WorkloadByAssignee(table)
	workloadTitle := "Workload by person"
	if m.filterMode == FilterPerson {
		workload = m.viewsCfg.WorkloadByProject(table)
		workloadTitle = "Workload by project"
	}

	panel := func(w Widget, content string) string {
		style := PanelStyle
		if w == m.focused {
			style = PanelActiveStyle
		}
		return style.Width(half).Render(content)
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		panel(WidgetDeadlines, renderDeadlines(m.viewsCfg, table, now, m.lookaheadDays, half)),
		panel(WidgetWorkload, renderWorkload(workloadTitle, workload, half)),
	)

	tableHeight := m.height - lipgloss.Height(top) - 8
	if tableHeight < 3 {
		tableHeight = 3
	}
	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		panel(WidgetTimeline, renderTimeline(m.viewsCfg, table, now, half)),
		panel(WidgetTable, renderTable(table, half, m.selected, tableHeight)),
	)

	out := lipgloss.JoinVertical(lipgloss.Left, top, bottom)
	if m.showDiags {
		out = lipgloss.JoinVertical(lipgloss.Left, out,
			PanelStyle.Width(m.width-2).Render(m.diags.Render(m.snap, m.width-4, 10)))
	}
	return out
}

func (m Model) summaryView() string {
	var content string
	switch {
	case m.summaryLoading:
		content = DimStyle.Render("Asking Gemini for a summary...")
	case m.summaryErr != nil:
		content = ErrorStyle.Render("Summary failed: " + m.summaryErr.Error())
	default:
		content = PanelTitleStyle.Render("Status summary") + "\n\n" + m.summary
	}
	return PanelStyle.Width(m.width - 2).Render(content)
}

func (m Model) statusBarView() string {
	parts := []string{
		"tab: widget", "r: refresh", "f: filter", "d: diagnostics",
	}
	if m.summarizer != nil {
		parts = append(parts, "s: summary")
	}
	parts = append(parts, "q: quit")

	status := strings.Join(parts, " · ")
	if m.snap != nil {
		age := m.now().Sub(m.snap.FetchedAt).Round(time.Second)
		status += fmt.Sprintf("  |  %d rows, fetched %s ago", m.snap.Table.Len(), age)
		if n := len(m.snap.Skips) + len(m.snap.SheetErrs); n > 0 {
			status += WarningStyle.Render(fmt.Sprintf(" (%d skipped)", n))
		}
	}
	if m.fetchErr != nil && m.snap != nil {
		status += ErrorStyle.Render("  refresh failed, showing stale data")
	}
	return StatusBarStyle.Render(truncate(status, m.width-2))
}

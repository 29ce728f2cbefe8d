package tui

import (
	"context"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planboard/planboard/internal/board"
	"github.com/planboard/planboard/internal/model"
	"github.com/planboard/planboard/internal/views"
)

// stubProvider returns a canned snapshot
type stubProvider struct {
	snap      *board.Snapshot
	err       error
	refreshes int
}

func (s *stubProvider) Name() string                        { return "Stub" }
func (s *stubProvider) IsAvailable(ctx context.Context) bool { return true }
func (s *stubProvider) Refresh()                            { s.refreshes++ }
func (s *stubProvider) Snapshot(ctx context.Context) (*board.Snapshot, error) {
	return s.snap, s.err
}

func testSnapshot() *board.Snapshot {
	return &board.Snapshot{
		CycleID: "cycle-1",
		Table: model.Table{Rows: []model.Row{
			{Project: "Alpha", SheetName: "Plan A", Task: "late", Assignee: "Jordan",
				Status: "In Progress", StartDate: "2024-06-01", EndDate: "2024-06-09"},
			{Project: "Beta", SheetName: "Plan B", Task: "soon", Assignee: "Sam",
				Status: "Not Started", StartDate: "2024-06-10", EndDate: "2024-06-12"},
		}},
		FetchedAt: time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC),
	}
}

func testModel(p board.Provider) Model {
	m := NewModel(Config{
		Provider:      p,
		Views:         views.New(views.DefaultTerminalStatuses),
		LookaheadDays: 7,
		DigestTopN:    5,
	})
	m.width = 120
	m.height = 40
	m.now = func() time.Time { return time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC) }
	return m
}

func TestSnapshotLoaded(t *testing.T) {
	p := &stubProvider{snap: testSnapshot()}
	m := testModel(p)

	updated, _ := m.Update(snapshotLoadedMsg{snap: p.snap})
	got := updated.(Model)

	assert.False(t, got.loading)
	require.NotNil(t, got.snap)
	assert.Equal(t, 2, got.snap.Table.Len())
}

func TestSnapshotLoadErrorKeepsOldData(t *testing.T) {
	p := &stubProvider{snap: testSnapshot()}
	m := testModel(p)
	m.snap = p.snap

	updated, _ := m.Update(snapshotLoadedMsg{err: fmt.Errorf("boom")})
	got := updated.(Model)

	assert.Error(t, got.fetchErr)
	require.NotNil(t, got.snap, "stale table survives a failed refresh")
}

func TestRefreshKeyInvalidatesProvider(t *testing.T) {
	p := &stubProvider{snap: testSnapshot()}
	m := testModel(p)
	m.snap = p.snap
	m.loading = false

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	got := updated.(Model)

	assert.Equal(t, 1, p.refreshes)
	assert.True(t, got.loading)
	assert.NotNil(t, cmd)
}

func TestTabCyclesWidgets(t *testing.T) {
	p := &stubProvider{snap: testSnapshot()}
	m := testModel(p)

	for want := 1; want < int(widgetCount)+1; want++ {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = updated.(Model)
		assert.Equal(t, Widget(want%int(widgetCount)), m.focused)
	}
}

func TestFilterCycle(t *testing.T) {
	p := &stubProvider{snap: testSnapshot()}
	m := testModel(p)
	m.snap = p.snap

	press := func() {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
		m = updated.(Model)
	}

	press() // first person
	assert.Equal(t, FilterPerson, m.filterMode)
	assert.Equal(t, "Jordan", m.filterValue)
	assert.Equal(t, 1, m.visibleTable().Len())

	press() // second person
	assert.Equal(t, "Sam", m.filterValue)

	press() // people exhausted, first project
	assert.Equal(t, FilterProject, m.filterMode)
	assert.Equal(t, "Alpha", m.filterValue)

	press()
	assert.Equal(t, "Beta", m.filterValue)

	press() // wraps off
	assert.Equal(t, FilterNone, m.filterMode)
	assert.Equal(t, 2, m.visibleTable().Len())
}

func TestEscapeClearsFilter(t *testing.T) {
	p := &stubProvider{snap: testSnapshot()}
	m := testModel(p)
	m.snap = p.snap
	m.filterMode = FilterPerson
	m.filterValue = "Jordan"

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	got := updated.(Model)
	assert.Equal(t, FilterNone, got.filterMode)
	assert.Empty(t, got.filterValue)
}

func TestTableWindow(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		selected  int
		height    int
		wantFirst int
		wantLast  int
	}{
		{"fits entirely", 5, 0, 10, 0, 5},
		{"top of long list", 100, 0, 10, 0, 10},
		{"middle keeps selection centered", 100, 50, 10, 45, 55},
		{"end clamps", 100, 99, 10, 90, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := tableWindow(tt.total, tt.selected, tt.height)
			assert.Equal(t, tt.wantFirst, first)
			assert.Equal(t, tt.wantLast, last)
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", truncate("hello", 10))
	assert.Equal(t, "hell…", truncate("hello world", 5))
	assert.Equal(t, "", truncate("hello", 0))
}

func TestViewRendersDashboard(t *testing.T) {
	p := &stubProvider{snap: testSnapshot()}
	m := testModel(p)
	m.loading = false
	m.snap = p.snap

	out := m.View()
	assert.Contains(t, out, "planboard")
	assert.Contains(t, out, "Deadlines")
	assert.Contains(t, out, "Workload by person")
	assert.Contains(t, out, "Timeline")
	assert.Contains(t, out, "All tasks (2)")
}

func TestViewFatalError(t *testing.T) {
	p := &stubProvider{err: fmt.Errorf("root id is neither a workspace nor a folder")}
	m := testModel(p)
	m.loading = false
	m.fetchErr = p.err

	out := m.View()
	assert.Contains(t, out, "No data")
}

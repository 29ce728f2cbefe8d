// Package board produces the aggregated task table that every dashboard
// widget and the summarizer read from. A provider runs the full fetch
// cycle (walk, extract, aggregate) against the remote service and caches
// the resulting snapshot for a bounded time window so repeated rendering
// requests do not re-trigger the walk.
package board

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/planboard/planboard/internal/extract"
	"github.com/planboard/planboard/internal/model"
	"github.com/planboard/planboard/internal/scan"
	"github.com/planboard/planboard/internal/smartsheet"
)

// API is the slice of the Smartsheet API a provider needs
type API interface {
	scan.Source
	GetSheet(ctx context.Context, id int64) (*smartsheet.Sheet, error)
	IsAuthenticated(ctx context.Context) bool
}

// SheetError records a sheet that failed to read during a cycle. Like walk
// skips it degrades the table to "fewer rows" and is kept for diagnostics.
type SheetError struct {
	Ref    model.SheetRef
	Reason string
}

// Snapshot is the immutable result of one fetch cycle
type Snapshot struct {
	CycleID   string // correlation id for the diagnostics log
	Table     model.Table
	Skips     []scan.Skip  // subtrees abandoned during the walk
	SheetErrs []SheetError // sheets that failed to read
	FetchedAt time.Time
}

// Provider serves aggregated task tables to rendering consumers
type Provider interface {
	// Name returns the display name of the data source
	Name() string

	// IsAvailable checks if the source is configured and reachable
	IsAvailable(ctx context.Context) bool

	// Snapshot returns the cached snapshot when fresh, otherwise runs a
	// full fetch cycle
	Snapshot(ctx context.Context) (*Snapshot, error)

	// Refresh invalidates the cache so the next Snapshot call re-fetches
	Refresh()
}

// SmartsheetProvider implements Provider against the Smartsheet API
type SmartsheetProvider struct {
	api       API
	walker    *scan.Walker
	extractor *extract.Extractor
	log       *zap.Logger

	// Cache. The mutex also serializes fetch cycles: at most one runs
	// per process at a time.
	mu     sync.Mutex
	cached *Snapshot
	ttl    time.Duration

	// now is swappable for tests
	now func() time.Time
}

// ProviderConfig wires a SmartsheetProvider
type ProviderConfig struct {
	API       API
	Walker    *scan.Walker
	Extractor *extract.Extractor
	TTL       time.Duration
	Logger    *zap.Logger
}

// NewSmartsheetProvider creates a provider with a snapshot cache of the
// given TTL
func NewSmartsheetProvider(cfg ProviderConfig) *SmartsheetProvider {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &SmartsheetProvider{
		api:       cfg.API,
		walker:    cfg.Walker,
		extractor: cfg.Extractor,
		ttl:       cfg.TTL,
		log:       log,
		now:       time.Now,
	}
}

// Name returns the display name
func (p *SmartsheetProvider) Name() string {
	return "Smartsheet"
}

// IsAvailable checks if the API token is valid
func (p *SmartsheetProvider) IsAvailable(ctx context.Context) bool {
	if p.api == nil {
		return false
	}
	return p.api.IsAuthenticated(ctx)
}

// Fetch runs one full cycle against rootID: walk for matching sheets,
// extract each, aggregate. A sheet that fails to read is recorded and
// skipped; only an unresolvable root is fatal.
func (p *SmartsheetProvider) Fetch(ctx context.Context, rootID int64) (*Snapshot, error) {
	cycleID := uuid.NewString()
	log := p.log.With(zap.String("cycle", cycleID))

	refs, skips, err := p.walker.Walk(ctx, rootID)
	if err != nil {
		return nil, err
	}

	var sheetErrs []SheetError
	batches := make([][]model.Row, 0, len(refs))
	for _, ref := range refs {
		sheet, err := p.api.GetSheet(ctx, ref.ID)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			sheetErrs = append(sheetErrs, SheetError{Ref: ref, Reason: err.Error()})
			log.Warn("skipping unreadable sheet",
				zap.Int64("id", ref.ID),
				zap.String("name", ref.Name),
				zap.Error(err))
			continue
		}
		batches = append(batches, p.extractor.Extract(sheet, ref))
	}

	snap := &Snapshot{
		CycleID:   cycleID,
		Table:     Aggregate(batches),
		Skips:     skips,
		SheetErrs: sheetErrs,
		FetchedAt: p.now(),
	}
	log.Info("fetch cycle complete",
		zap.Int("sheets", len(refs)),
		zap.Int("rows", snap.Table.Len()),
		zap.Int("sheet_errors", len(sheetErrs)))
	return snap, nil
}

// boundProvider is a SmartsheetProvider fixed to one root container. The
// root id lives here rather than in ProviderConfig so tests can call
// Fetch against arbitrary roots.
type boundProvider struct {
	*SmartsheetProvider
	rootID int64
}

// Bind fixes the root container id and returns the Provider used by the
// dashboard
func (p *SmartsheetProvider) Bind(rootID int64) Provider {
	return &boundProvider{SmartsheetProvider: p, rootID: rootID}
}

// Snapshot returns the cached snapshot when it is younger than the TTL,
// otherwise runs a fresh fetch cycle. The cached table is immutable; it is
// returned as-is to every caller within the window.
func (b *boundProvider) Snapshot(ctx context.Context) (*Snapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cached != nil && b.now().Sub(b.cached.FetchedAt) <= b.ttl {
		return b.cached, nil
	}

	snap, err := b.Fetch(ctx, b.rootID)
	if err != nil {
		return nil, err
	}
	b.cached = snap
	return snap, nil
}

// Refresh drops the cached snapshot. The next Snapshot call re-runs the
// full fetch cycle.
func (b *boundProvider) Refresh() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cached = nil
}

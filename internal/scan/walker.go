// Package scan discovers project-plan sheets under a Smartsheet workspace
// or folder. A root id is probed as a workspace first and retried as a
// folder on not-found, then the container tree is walked depth-first,
// collecting every sheet whose name contains the target keyword.
package scan

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/planboard/planboard/internal/model"
	"github.com/planboard/planboard/internal/smartsheet"
)

// Source is the slice of the Smartsheet API the walker needs
type Source interface {
	GetWorkspace(ctx context.Context, id int64) (*smartsheet.Workspace, error)
	GetFolder(ctx context.Context, id int64) (*smartsheet.Folder, error)
}

// Skip records a subtree that was abandoned mid-walk. Skips degrade the
// result to "fewer rows"; they are surfaced for diagnostics, never fatal.
type Skip struct {
	FolderID int64
	Name     string
	Reason   string
}

const (
	// defaultMaxDepth bounds the walk. The hierarchy is a tree, so this is
	// purely a guard against pathological nesting.
	defaultMaxDepth = 32

	// defaultFetchDelay spaces out folder fetches to stay under the
	// service rate limit. The walk is deliberately sequential.
	defaultFetchDelay = 100 * time.Millisecond
)

// Walker enumerates matching sheets under a root container
type Walker struct {
	src        Source
	keyword    string
	maxDepth   int
	fetchDelay time.Duration
	log        *zap.Logger
}

// Option configures a Walker
type Option func(*Walker)

// WithMaxDepth overrides the depth guard
func WithMaxDepth(d int) Option {
	return func(w *Walker) { w.maxDepth = d }
}

// WithFetchDelay overrides the inter-fetch pause
func WithFetchDelay(d time.Duration) Option {
	return func(w *Walker) { w.fetchDelay = d }
}

// WithLogger attaches a logger
func WithLogger(log *zap.Logger) Option {
	return func(w *Walker) { w.log = log }
}

// NewWalker creates a walker matching sheet names against keyword
// (case-insensitive substring)
func NewWalker(src Source, keyword string, opts ...Option) *Walker {
	w := &Walker{
		src:        src,
		keyword:    strings.ToLower(keyword),
		maxDepth:   defaultMaxDepth,
		fetchDelay: defaultFetchDelay,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// frame is one pending folder on the walk stack
type frame struct {
	stub  smartsheet.FolderStub
	depth int
}

// Walk discovers every matching sheet under rootID in pre-order
// depth-first order. Each result carries the display name of its immediate
// parent container as project context. The returned skips describe
// subtrees that failed to fetch. The only fatal error is a root id that
// resolves as neither workspace nor folder.
func (w *Walker) Walk(ctx context.Context, rootID int64) ([]model.SheetRef, []Skip, error) {
	name, sheets, folders, err := w.fetchRoot(ctx, rootID)
	if err != nil {
		return nil, nil, err
	}
	w.log.Info("connected to root container",
		zap.Int64("id", rootID),
		zap.String("name", name))

	var refs []model.SheetRef
	var skips []Skip

	refs = append(refs, w.match(name, sheets)...)

	// Explicit stack, pushed in reverse so siblings pop in listed order.
	var stack []frame
	for i := len(folders) - 1; i >= 0; i-- {
		stack = append(stack, frame{stub: folders[i], depth: 1})
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.depth > w.maxDepth {
			skips = append(skips, Skip{FolderID: f.stub.ID, Name: f.stub.Name, Reason: "max depth exceeded"})
			w.log.Warn("skipping folder: max depth exceeded",
				zap.Int64("id", f.stub.ID), zap.Int("depth", f.depth))
			continue
		}

		if err := w.pause(ctx); err != nil {
			return nil, nil, err
		}

		// Folder stubs from listings carry no contents; re-fetch.
		folder, err := w.src.GetFolder(ctx, f.stub.ID)
		if err != nil {
			if ctx.Err() != nil {
				return nil, nil, ctx.Err()
			}
			skips = append(skips, Skip{FolderID: f.stub.ID, Name: f.stub.Name, Reason: err.Error()})
			w.log.Warn("skipping folder subtree",
				zap.Int64("id", f.stub.ID),
				zap.String("name", f.stub.Name),
				zap.Error(err))
			continue
		}

		refs = append(refs, w.match(folder.Name, folder.Sheets)...)
		for i := len(folder.Folders) - 1; i >= 0; i-- {
			stack = append(stack, frame{stub: folder.Folders[i], depth: f.depth + 1})
		}
	}

	w.log.Info("walk complete",
		zap.Int("sheets", len(refs)),
		zap.Int("skipped", len(skips)))
	return refs, skips, nil
}

// fetchRoot probes the root id as a workspace, then as a folder. The two
// kinds share an id space and the caller cannot know which it holds.
func (w *Walker) fetchRoot(ctx context.Context, id int64) (string, []smartsheet.SheetStub, []smartsheet.FolderStub, error) {
	ws, err := w.src.GetWorkspace(ctx, id)
	if err == nil {
		return ws.Name, ws.Sheets, ws.Folders, nil
	}
	if !smartsheet.IsNotFound(err) {
		return "", nil, nil, fmt.Errorf("fetch root workspace %d: %w", id, err)
	}

	folder, ferr := w.src.GetFolder(ctx, id)
	if ferr != nil {
		return "", nil, nil, fmt.Errorf("root id %d is neither a workspace nor a folder: %w", id, ferr)
	}
	return folder.Name, folder.Sheets, folder.Folders, nil
}

// match filters sheets by keyword and tags them with the container name
func (w *Walker) match(container string, sheets []smartsheet.SheetStub) []model.SheetRef {
	var refs []model.SheetRef
	for _, s := range sheets {
		if strings.Contains(strings.ToLower(s.Name), w.keyword) {
			refs = append(refs, model.SheetRef{
				ID:        s.ID,
				Name:      s.Name,
				Project:   container,
				Permalink: s.Permalink,
			})
		}
	}
	return refs
}

// pause waits the configured inter-fetch delay unless the context ends first
func (w *Walker) pause(ctx context.Context) error {
	if w.fetchDelay <= 0 {
		return nil
	}
	t := time.NewTimer(w.fetchDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

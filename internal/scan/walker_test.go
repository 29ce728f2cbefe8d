package scan

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planboard/planboard/internal/model"
	"github.com/planboard/planboard/internal/smartsheet"
)

// fakeSource serves a canned container tree
type fakeSource struct {
	workspaces map[int64]*smartsheet.Workspace
	folders    map[int64]*smartsheet.Folder
	failing    map[int64]error
	fetches    []int64 // folder ids in fetch order
}

func (f *fakeSource) GetWorkspace(ctx context.Context, id int64) (*smartsheet.Workspace, error) {
	if ws, ok := f.workspaces[id]; ok {
		return ws, nil
	}
	return nil, &smartsheet.APIError{StatusCode: 404, Code: smartsheet.CodeNotFound, Message: "Not Found"}
}

func (f *fakeSource) GetFolder(ctx context.Context, id int64) (*smartsheet.Folder, error) {
	f.fetches = append(f.fetches, id)
	if err, ok := f.failing[id]; ok {
		return nil, err
	}
	if folder, ok := f.folders[id]; ok {
		return folder, nil
	}
	return nil, &smartsheet.APIError{StatusCode: 404, Code: smartsheet.CodeNotFound, Message: "Not Found"}
}

func sheet(id int64, name string) smartsheet.SheetStub {
	return smartsheet.SheetStub{ID: id, Name: name}
}

func stub(id int64, name string) smartsheet.FolderStub {
	return smartsheet.FolderStub{ID: id, Name: name}
}

// newTestWalker disables the rate-limit pause
func newTestWalker(src Source, keyword string, opts ...Option) *Walker {
	opts = append([]Option{WithFetchDelay(0)}, opts...)
	return NewWalker(src, keyword, opts...)
}

func TestWalkFindsNestedSheets(t *testing.T) {
	// Workspace "Studio"
	//   sheet "Project Plan - Alpha"
	//   sheet "Budget"               (no match)
	//   folder "Client A"
	//     sheet "Project Plan - Beta"
	//     folder "Old"
	//       sheet "Project Plan - Gamma"
	//   folder "Client B"
	//     sheet "project plan - delta"  (case-insensitive match)
	src := &fakeSource{
		workspaces: map[int64]*smartsheet.Workspace{
			1: {ID: 1, Name: "Studio",
				Sheets:  []smartsheet.SheetStub{sheet(10, "Project Plan - Alpha"), sheet(11, "Budget")},
				Folders: []smartsheet.FolderStub{stub(2, "Client A"), stub(3, "Client B")}},
		},
		folders: map[int64]*smartsheet.Folder{
			2: {ID: 2, Name: "Client A",
				Sheets:  []smartsheet.SheetStub{sheet(20, "Project Plan - Beta")},
				Folders: []smartsheet.FolderStub{stub(4, "Old")}},
			3: {ID: 3, Name: "Client B",
				Sheets: []smartsheet.SheetStub{sheet(30, "project plan - delta")}},
			4: {ID: 4, Name: "Old",
				Sheets: []smartsheet.SheetStub{sheet(40, "Project Plan - Gamma")}},
		},
	}

	w := newTestWalker(src, "Project Plan")
	refs, skips, err := w.Walk(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, skips)

	// Pre-order depth-first: Alpha (root), Beta (Client A), Gamma (Old),
	// delta (Client B). Each tagged with its immediate parent's name.
	want := []model.SheetRef{
		{ID: 10, Name: "Project Plan - Alpha", Project: "Studio"},
		{ID: 20, Name: "Project Plan - Beta", Project: "Client A"},
		{ID: 40, Name: "Project Plan - Gamma", Project: "Old"},
		{ID: 30, Name: "project plan - delta", Project: "Client B"},
	}
	assert.Equal(t, want, refs)
}

func TestWalkRootFolderFallback(t *testing.T) {
	// Root id resolves only as a folder; workspace probe 404s first.
	src := &fakeSource{
		folders: map[int64]*smartsheet.Folder{
			5: {ID: 5, Name: "Active Projects",
				Sheets: []smartsheet.SheetStub{sheet(50, "Project Plan - Epsilon")}},
		},
	}

	w := newTestWalker(src, "project plan")
	refs, _, err := w.Walk(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "Active Projects", refs[0].Project)
}

func TestWalkRootUnresolvable(t *testing.T) {
	src := &fakeSource{}

	w := newTestWalker(src, "project plan")
	_, _, err := w.Walk(context.Background(), 999)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "neither a workspace nor a folder")
}

func TestWalkRootNonNotFoundErrorIsFatal(t *testing.T) {
	// A workspace probe failing with anything but 1006 must not fall back
	// to the folder probe.
	src := &fakeSource{
		workspaces: map[int64]*smartsheet.Workspace{},
	}
	// Patch: direct auth failure from the workspace endpoint.
	authErr := &smartsheet.APIError{StatusCode: 401, Code: 1002, Message: "Your Access Token is invalid"}
	failAuth := &authFailingSource{fakeSource: src, err: authErr}

	w := newTestWalker(failAuth, "project plan")
	_, _, err := w.Walk(context.Background(), 1)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "neither")
	assert.Empty(t, src.fetches, "folder probe must not run")
}

type authFailingSource struct {
	*fakeSource
	err error
}

func (s *authFailingSource) GetWorkspace(ctx context.Context, id int64) (*smartsheet.Workspace, error) {
	return nil, s.err
}

func TestWalkSkipsFailedSubtree(t *testing.T) {
	src := &fakeSource{
		workspaces: map[int64]*smartsheet.Workspace{
			1: {ID: 1, Name: "Studio",
				Folders: []smartsheet.FolderStub{stub(2, "Broken"), stub(3, "Fine")}},
		},
		folders: map[int64]*smartsheet.Folder{
			3: {ID: 3, Name: "Fine",
				Sheets: []smartsheet.SheetStub{sheet(30, "Project Plan - Ok")}},
		},
		failing: map[int64]error{
			2: fmt.Errorf("permission denied"),
		},
	}

	w := newTestWalker(src, "project plan")
	refs, skips, err := w.Walk(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, refs, 1)
	assert.Equal(t, int64(30), refs[0].ID)

	require.Len(t, skips, 1)
	assert.Equal(t, int64(2), skips[0].FolderID)
	assert.Equal(t, "Broken", skips[0].Name)
	assert.Contains(t, skips[0].Reason, "permission denied")
}

func TestWalkDepthGuard(t *testing.T) {
	// folder 2 -> folder 3 -> folder 4, guard at depth 2
	src := &fakeSource{
		workspaces: map[int64]*smartsheet.Workspace{
			1: {ID: 1, Name: "Root", Folders: []smartsheet.FolderStub{stub(2, "L1")}},
		},
		folders: map[int64]*smartsheet.Folder{
			2: {ID: 2, Name: "L1", Folders: []smartsheet.FolderStub{stub(3, "L2")}},
			3: {ID: 3, Name: "L2", Folders: []smartsheet.FolderStub{stub(4, "L3")}},
			4: {ID: 4, Name: "L3"},
		},
	}

	w := newTestWalker(src, "plan", WithMaxDepth(2))
	_, skips, err := w.Walk(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, skips, 1)
	assert.Equal(t, int64(4), skips[0].FolderID)
	assert.Equal(t, "max depth exceeded", skips[0].Reason)
	assert.NotContains(t, src.fetches, int64(4))
}

// Walk on an unchanged tree is deterministic: two runs return identical
// results.
func TestWalkDeterministic(t *testing.T) {
	src := &fakeSource{
		workspaces: map[int64]*smartsheet.Workspace{
			1: {ID: 1, Name: "Studio",
				Sheets:  []smartsheet.SheetStub{sheet(10, "Project Plan - Alpha")},
				Folders: []smartsheet.FolderStub{stub(2, "A"), stub(3, "B")}},
		},
		folders: map[int64]*smartsheet.Folder{
			2: {ID: 2, Name: "A", Sheets: []smartsheet.SheetStub{sheet(20, "Project Plan - B")}},
			3: {ID: 3, Name: "B", Sheets: []smartsheet.SheetStub{sheet(30, "Project Plan - C")}},
		},
	}

	w := newTestWalker(src, "project plan")
	first, _, err := w.Walk(context.Background(), 1)
	require.NoError(t, err)
	second, _, err := w.Walk(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestWalkContextCancelled(t *testing.T) {
	src := &fakeSource{
		workspaces: map[int64]*smartsheet.Workspace{
			1: {ID: 1, Name: "Root", Folders: []smartsheet.FolderStub{stub(2, "A")}},
		},
		folders: map[int64]*smartsheet.Folder{2: {ID: 2, Name: "A"}},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := NewWalker(src, "plan") // default delay so the pause observes ctx
	_, _, err := w.Walk(ctx, 1)
	require.ErrorIs(t, err, context.Canceled)
}

package filesystem

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-textpad/pkg/models"
)

// sequentialIDs returns a generator producing id-1, id-2, ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestStore() *Store {
	return NewStore(NewState(), WithIDGenerator(sequentialIDs()))
}

func TestCreateItemsUniqueAndRootOrder(t *testing.T) {
	s := NewStore(NewState())

	var roots []string
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		var id string
		if i%2 == 0 {
			id = s.CreateFile(fmt.Sprintf("file%d", i), models.NoParent)
		} else {
			id = s.CreateFolder(fmt.Sprintf("folder%d", i), models.NoParent)
		}
		require.NotEmpty(t, id)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
		roots = append(roots, id)
	}

	folder := roots[1]
	child := s.CreateFile("nested", folder)
	require.NotEmpty(t, child)

	assert.Equal(t, roots, s.State().RootItems)
	assert.Len(t, s.State().Items, 21)
	require.NoError(t, s.State().Validate())
}

func TestCreateFileSuffix(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"draft", "draft.txt"},
		{"draft.txt", "draft.txt"},
		{"notes", "notes.txt"},
		{"archive.tar", "archive.tar.txt"},
		{"", ".txt"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s := newTestStore()
			id := s.CreateFile(tt.input, models.NoParent)
			item, ok := s.State().Get(id)
			require.True(t, ok)
			assert.Equal(t, tt.expected, item.Name)
			assert.Equal(t, "", item.Content)
			assert.True(t, item.IsFile())
		})
	}
}

func TestCreateFolderDefaults(t *testing.T) {
	s := newTestStore()
	id := s.CreateFolder("docs", models.NoParent)

	item, ok := s.State().Get(id)
	require.True(t, ok)
	assert.True(t, item.IsFolder())
	assert.True(t, item.Expanded)
	assert.Equal(t, "docs", item.Name)
	assert.Equal(t, []string{id}, s.State().RootItems)
}

func TestCreateUnderInvalidParentIsIgnored(t *testing.T) {
	s := newTestStore()
	file := s.CreateFile("a", models.NoParent)

	assert.Empty(t, s.CreateFile("b", "missing"))
	assert.Empty(t, s.CreateFolder("c", file))
	assert.Len(t, s.State().Items, 1)
}

func TestCreateNestedNotInRoot(t *testing.T) {
	s := newTestStore()
	folder := s.CreateFolder("docs", models.NoParent)
	file := s.CreateFile("readme", folder)

	assert.Equal(t, []string{folder}, s.State().RootItems)
	item, _ := s.State().Get(file)
	assert.Equal(t, folder, item.ParentID)
}

func TestUpdateFileContent(t *testing.T) {
	s := newTestStore()
	file := s.CreateFile("a", models.NoParent)
	folder := s.CreateFolder("f", models.NoParent)

	assert.True(t, s.UpdateFileContent(file, "hello"))
	item, _ := s.State().Get(file)
	assert.Equal(t, "hello", item.Content)

	before := s.Snapshot()
	assert.False(t, s.UpdateFileContent(folder, "nope"))
	assert.False(t, s.UpdateFileContent("missing", "nope"))
	assert.Equal(t, before, s.State())
}

func TestToggleFolderExpanded(t *testing.T) {
	s := newTestStore()
	folder := s.CreateFolder("f", models.NoParent)
	file := s.CreateFile("a", models.NoParent)

	assert.True(t, s.ToggleFolderExpanded(folder))
	item, _ := s.State().Get(folder)
	assert.False(t, item.Expanded)

	assert.True(t, s.ToggleFolderExpanded(folder))
	item, _ = s.State().Get(folder)
	assert.True(t, item.Expanded)

	before := s.Snapshot()
	assert.False(t, s.ToggleFolderExpanded(file))
	assert.False(t, s.ToggleFolderExpanded("missing"))
	assert.Equal(t, before, s.State())
}

func TestDeleteFolderRemovesSubtree(t *testing.T) {
	s := newTestStore()
	keep := s.CreateFile("keep", models.NoParent)
	other := s.CreateFolder("other", models.NoParent)
	otherChild := s.CreateFile("other-child", other)

	top := s.CreateFolder("top", models.NoParent)
	mid := s.CreateFolder("mid", top)
	s.CreateFile("a", top)
	s.CreateFile("b", mid)
	deep := s.CreateFolder("deep", mid)
	s.CreateFile("c", deep)

	subtree := s.State().Descendants(top)
	require.Len(t, subtree, 6)
	before := s.State().Len()

	assert.True(t, s.DeleteItem(top))

	assert.Equal(t, before-len(subtree), s.State().Len())
	for _, id := range subtree {
		_, ok := s.State().Get(id)
		assert.False(t, ok, "item %s should be gone", id)
	}
	for _, id := range []string{keep, other, otherChild} {
		_, ok := s.State().Get(id)
		assert.True(t, ok, "item %s should remain", id)
	}
	assert.Equal(t, []string{keep, other}, s.State().RootItems)
	require.NoError(t, s.State().Validate())
}

func TestDeleteNestedFileKeepsRoot(t *testing.T) {
	s := newTestStore()
	folder := s.CreateFolder("f", models.NoParent)
	file := s.CreateFile("a", folder)

	assert.True(t, s.DeleteItem(file))
	assert.Equal(t, []string{folder}, s.State().RootItems)
	assert.Equal(t, 1, s.State().Len())
}

func TestDeleteMissingIsNoop(t *testing.T) {
	s := newTestStore()
	s.CreateFile("a", models.NoParent)
	before := s.Snapshot()

	assert.False(t, s.DeleteItem("missing"))
	assert.Equal(t, before, s.State())
}

func TestRenameItem(t *testing.T) {
	s := newTestStore()
	file := s.CreateFile("a", models.NoParent)
	folder := s.CreateFolder("f", models.NoParent)

	assert.True(t, s.RenameItem(file, "b"))
	item, _ := s.State().Get(file)
	assert.Equal(t, "b.txt", item.Name)

	assert.True(t, s.RenameItem(file, "c.txt"))
	item, _ = s.State().Get(file)
	assert.Equal(t, "c.txt", item.Name)

	assert.True(t, s.RenameItem(folder, "plain.txt.d"))
	item, _ = s.State().Get(folder)
	assert.Equal(t, "plain.txt.d", item.Name)

	assert.False(t, s.RenameItem("missing", "x"))
}

func TestMoveFolderUnderDescendantRejected(t *testing.T) {
	s := newTestStore()
	top := s.CreateFolder("top", models.NoParent)
	mid := s.CreateFolder("mid", top)
	deep := s.CreateFolder("deep", mid)

	before := s.Snapshot()
	assert.False(t, s.MoveItem(top, deep))
	assert.False(t, s.MoveItem(top, mid))
	assert.False(t, s.MoveItem(top, top))
	assert.Equal(t, before, s.State())
}

func TestMoveRootFileIntoFolderAndBack(t *testing.T) {
	s := newTestStore()
	file := s.CreateFile("a", models.NoParent)
	folder := s.CreateFolder("f", models.NoParent)

	assert.True(t, s.MoveItem(file, folder))
	assert.Equal(t, []string{folder}, s.State().RootItems)
	item, _ := s.State().Get(file)
	assert.Equal(t, folder, item.ParentID)

	assert.True(t, s.MoveItem(file, models.NoParent))
	assert.Equal(t, []string{folder, file}, s.State().RootItems)
	item, _ = s.State().Get(file)
	assert.Equal(t, models.NoParent, item.ParentID)
	require.NoError(t, s.State().Validate())
}

func TestMoveFolderSideways(t *testing.T) {
	s := newTestStore()
	a := s.CreateFolder("a", models.NoParent)
	b := s.CreateFolder("b", models.NoParent)
	child := s.CreateFolder("child", a)

	assert.True(t, s.MoveItem(child, b))
	assert.True(t, s.MoveItem(a, child))
	assert.Equal(t, []string{b}, s.State().RootItems)
	assert.Equal(t, "b/child/a", s.State().Path(a))
	require.NoError(t, s.State().Validate())
}

func TestMoveInvalidTargets(t *testing.T) {
	s := newTestStore()
	file := s.CreateFile("a", models.NoParent)
	other := s.CreateFile("b", models.NoParent)
	before := s.Snapshot()

	assert.False(t, s.MoveItem("missing", models.NoParent))
	assert.False(t, s.MoveItem(file, other))
	assert.False(t, s.MoveItem(file, "missing"))
	assert.False(t, s.MoveItem(file, models.NoParent))
	assert.Equal(t, before, s.State())
}

func TestMoveRefusesOnBrokenParentChain(t *testing.T) {
	state := NewState()
	state.Items["x"] = models.Item{ID: "x", Name: "x", Type: models.TypeFolder, ParentID: "y"}
	state.Items["y"] = models.Item{ID: "y", Name: "y", Type: models.TypeFolder, ParentID: "x"}
	state.Items["m"] = models.Item{ID: "m", Name: "m", Type: models.TypeFolder}
	state.RootItems = []string{"m"}
	s := NewStore(state)

	assert.False(t, s.MoveItem("m", "x"))
	item, _ := s.State().Get("m")
	assert.Equal(t, models.NoParent, item.ParentID)
}

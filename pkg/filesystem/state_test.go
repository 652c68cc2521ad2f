package filesystem

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-textpad/pkg/models"
)

func buildSample(t *testing.T) (*Store, map[string]string) {
	t.Helper()
	s := newTestStore()
	ids := map[string]string{}
	ids["docs"] = s.CreateFolder("docs", models.NoParent)
	ids["readme"] = s.CreateFile("readme", models.NoParent)
	ids["guide"] = s.CreateFile("guide", ids["docs"])
	ids["api"] = s.CreateFolder("api", ids["docs"])
	ids["ref"] = s.CreateFile("ref", ids["api"])
	s.UpdateFileContent(ids["ref"], "line one\nline two")
	s.ToggleFolderExpanded(ids["api"])
	return s, ids
}

func TestStateJSONRoundTrip(t *testing.T) {
	s, _ := buildSample(t)

	data, err := json.Marshal(s.State())
	require.NoError(t, err)

	var decoded State
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, s.State(), decoded)
	require.NoError(t, decoded.Validate())
}

func TestStateJSONShape(t *testing.T) {
	s, ids := buildSample(t)

	data, err := json.Marshal(s.State())
	require.NoError(t, err)

	var raw struct {
		Items     map[string]map[string]interface{} `json:"items"`
		RootItems []string                          `json:"rootItems"`
	}
	require.NoError(t, json.Unmarshal(data, &raw))

	docs := raw.Items[ids["docs"]]
	assert.Nil(t, docs["parentId"])
	assert.Equal(t, "folder", docs["type"])
	assert.Equal(t, true, docs["expanded"])
	assert.NotContains(t, docs, "content")

	guide := raw.Items[ids["guide"]]
	assert.Equal(t, ids["docs"], guide["parentId"])
	assert.Equal(t, "", guide["content"])
	assert.NotContains(t, guide, "expanded")
}

func TestClone(t *testing.T) {
	s, ids := buildSample(t)
	clone := s.Snapshot()

	s.RenameItem(ids["readme"], "changed")
	s.CreateFile("extra", models.NoParent)

	item, _ := clone.Get(ids["readme"])
	assert.Equal(t, "readme.txt", item.Name)
	assert.Len(t, clone.RootItems, 2)
}

func TestChildrenOrdering(t *testing.T) {
	s, ids := buildSample(t)
	s.CreateFile("aaa", ids["docs"])

	children := s.State().Children(ids["docs"])
	require.Len(t, children, 3)
	assert.Equal(t, "api", children[0].Name)
	assert.Equal(t, "aaa.txt", children[1].Name)
	assert.Equal(t, "guide.txt", children[2].Name)

	roots := s.State().Children(models.NoParent)
	require.Len(t, roots, 2)
	assert.Equal(t, ids["docs"], roots[0].ID)
	assert.Equal(t, ids["readme"], roots[1].ID)
}

func TestPath(t *testing.T) {
	s, ids := buildSample(t)
	assert.Equal(t, "docs/api/ref.txt", s.State().Path(ids["ref"]))
	assert.Equal(t, "readme.txt", s.State().Path(ids["readme"]))
	assert.Equal(t, "", s.State().Path("missing"))
}

func TestIsAncestor(t *testing.T) {
	s, ids := buildSample(t)
	st := s.State()
	assert.True(t, st.IsAncestor(ids["docs"], ids["ref"]))
	assert.True(t, st.IsAncestor(ids["ref"], ids["ref"]))
	assert.False(t, st.IsAncestor(ids["ref"], ids["docs"]))
	assert.False(t, st.IsAncestor(ids["readme"], ids["ref"]))
}

func TestValidate(t *testing.T) {
	folder := func(id, parent string) models.Item {
		return models.Item{ID: id, Name: id, Type: models.TypeFolder, ParentID: parent, Expanded: true}
	}
	file := func(id, parent string) models.Item {
		return models.Item{ID: id, Name: id + ".txt", Type: models.TypeFile, ParentID: parent}
	}

	tests := []struct {
		name    string
		items   []models.Item
		roots   []string
		wantErr error
	}{
		{
			name:  "valid",
			items: []models.Item{folder("a", ""), file("b", "a")},
			roots: []string{"a"},
		},
		{
			name:    "dangling parent",
			items:   []models.Item{file("b", "nope")},
			roots:   []string{},
			wantErr: ErrDanglingParent,
		},
		{
			name:    "parent is a file",
			items:   []models.Item{file("a", ""), file("b", "a")},
			roots:   []string{"a"},
			wantErr: ErrDanglingParent,
		},
		{
			name:    "cycle",
			items:   []models.Item{folder("a", "b"), folder("b", "a")},
			roots:   []string{},
			wantErr: ErrCycle,
		},
		{
			name:    "root missing from list",
			items:   []models.Item{folder("a", "")},
			roots:   []string{},
			wantErr: ErrRootMismatch,
		},
		{
			name:    "non-root in list",
			items:   []models.Item{folder("a", ""), file("b", "a")},
			roots:   []string{"a", "b"},
			wantErr: ErrRootMismatch,
		},
		{
			name:    "duplicate root",
			items:   []models.Item{folder("a", "")},
			roots:   []string{"a", "a"},
			wantErr: ErrDuplicateRoot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := NewState()
			for _, item := range tt.items {
				st.Items[item.ID] = item
			}
			st.RootItems = tt.roots

			err := st.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateKeyMismatch(t *testing.T) {
	st := NewState()
	st.Items["a"] = models.Item{ID: "b", Name: "x", Type: models.TypeFolder}
	st.RootItems = []string{"a"}
	assert.ErrorIs(t, st.Validate(), ErrIDMismatch)
}

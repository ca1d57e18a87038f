package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/portalgun/internal/catalog"
	"github.com/rshade/portalgun/internal/engine"
)

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr error
	}{
		{name: "valid default", params: *NewParams()},
		{name: "valid page mode", params: Params{Page: 2, PageSize: 10}},
		{name: "zero page", params: Params{Page: 0}, wantErr: ErrInvalidPage},
		{name: "negative page size", params: Params{Page: 1, PageSize: -1}, wantErr: ErrInvalidPageSize},
		{name: "page size too large", params: Params{Page: 1, PageSize: MaxPageSize + 1}, wantErr: ErrInvalidPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParams_Resolve(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		q, err := NewParams().Resolve(catalog.Character, engine.DefaultPageSize)
		require.NoError(t, err)
		assert.Equal(t, catalog.Character, q.Kind)
		assert.Empty(t, q.Filter)
		assert.Nil(t, q.Sort)
		assert.Equal(t, engine.PageWindow{Page: 1, Size: engine.DefaultPageSize}, q.Window)
	})

	t.Run("all flags", func(t *testing.T) {
		p := Params{
			Filters:  []string{"name=rick", "status=alive", "name=morty"},
			Sort:     "name:desc",
			Page:     3,
			PageSize: 5,
		}
		q, err := p.Resolve(catalog.Character, engine.DefaultPageSize)
		require.NoError(t, err)
		assert.Equal(t, engine.FilterSpec{catalog.FieldName: "morty", catalog.FieldStatus: "alive"}, q.Filter)
		require.NotNil(t, q.Sort)
		assert.Equal(t, engine.SortSpec{Field: catalog.FieldName, Direction: engine.Descending}, *q.Sort)
		assert.Equal(t, engine.PageWindow{Page: 3, Size: 5}, q.Window)
	})

	t.Run("filter not valid for kind", func(t *testing.T) {
		_, err := Params{Page: 1, Filters: []string{"dimension=c-137"}}.Resolve(catalog.Character, 20)
		assert.ErrorIs(t, err, engine.ErrInvalidFilter)
	})

	t.Run("bad sort order", func(t *testing.T) {
		_, err := Params{Page: 1, Sort: "name:sideways"}.Resolve(catalog.Episode, 20)
		assert.ErrorIs(t, err, engine.ErrInvalidSortOrder)
		assert.Contains(t, err.Error(), "invalid --sort")
	})

	t.Run("unknown sort field", func(t *testing.T) {
		_, err := Params{Page: 1, Sort: "dimension"}.Resolve(catalog.Episode, 20)
		assert.ErrorIs(t, err, catalog.ErrUnknownField)
	})

	t.Run("bad default page size", func(t *testing.T) {
		_, err := NewParams().Resolve(catalog.Episode, 0)
		assert.ErrorIs(t, err, engine.ErrInvalidPageSize)
	})
}

func TestFooter(t *testing.T) {
	meta := engine.NewPageMeta(engine.PageWindow{Page: 2, Size: 20}, 1826)
	assert.Equal(t, "Showing 21-40 of 1,826 characters (page 2 of 92)", Footer(catalog.Character, meta))

	empty := engine.NewPageMeta(engine.PageWindow{Page: 1, Size: 20}, 0)
	assert.Equal(t, "No episodes match", Footer(catalog.Episode, empty))
}

func TestHelpText(t *testing.T) {
	assert.Contains(t, FilterHelp(), "location: name, type, dimension")
	assert.Contains(t, SortHelp(), "episode: ")
	assert.NotContains(t, FilterHelp(), "created")
}

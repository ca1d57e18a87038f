package catalog_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/portalgun/internal/catalog"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    catalog.Kind
		wantErr bool
	}{
		{in: "character", want: catalog.Character},
		{in: "Characters", want: catalog.Character},
		{in: " LOCATION ", want: catalog.Location},
		{in: "episodes", want: catalog.Episode},
		{in: "planet", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := catalog.ParseKind(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, catalog.ErrUnknownKind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseField(t *testing.T) {
	t.Run("aliases resolve to canonical names", func(t *testing.T) {
		f, err := catalog.ParseField(catalog.Episode, "episodeCode")
		require.NoError(t, err)
		assert.Equal(t, catalog.FieldEpisode, f)

		f, err = catalog.ParseField(catalog.Episode, "airDate")
		require.NoError(t, err)
		assert.Equal(t, catalog.FieldAirDate, f)
	})

	t.Run("field must belong to kind", func(t *testing.T) {
		_, err := catalog.ParseField(catalog.Location, "gender")
		require.ErrorIs(t, err, catalog.ErrUnknownField)

		_, err = catalog.ParseField(catalog.Character, "dimension")
		require.ErrorIs(t, err, catalog.ErrUnknownField)
	})

	t.Run("case-insensitive", func(t *testing.T) {
		f, err := catalog.ParseField(catalog.Character, "NAME")
		require.NoError(t, err)
		assert.Equal(t, catalog.FieldName, f)
	})
}

func TestDecode(t *testing.T) {
	t.Run("character with nested refs", func(t *testing.T) {
		raw := json.RawMessage(`{
			"id": 1, "name": "Rick Sanchez", "status": "Alive", "species": "Human",
			"type": "", "gender": "Male",
			"origin": {"name": "Earth (C-137)", "url": ""},
			"location": {"name": "Citadel of Ricks", "url": ""},
			"episode": ["e/1", "e/2", "e/3"],
			"created": "2017-11-04T18:48:46.250Z"
		}`)
		it, err := catalog.Decode(catalog.Character, raw)
		require.NoError(t, err)
		assert.Equal(t, catalog.Character, it.Kind)
		assert.Equal(t, 1, it.ID)
		assert.Equal(t, "Earth (C-137)", it.Origin)
		assert.Equal(t, "Citadel of Ricks", it.Location)
		assert.Equal(t, 3, it.EpisodeCount)
		assert.Equal(t, 2017, it.Created.Year())
		assert.Equal(t, catalog.NotAvailable, it.Display(catalog.FieldType))
	})

	t.Run("nulls become unknown", func(t *testing.T) {
		raw := json.RawMessage(`{"id": 7, "name": null, "origin": null, "created": "garbage"}`)
		it, err := catalog.Decode(catalog.Character, raw)
		require.NoError(t, err)
		assert.Empty(t, it.Name)
		assert.Empty(t, it.Origin)
		assert.True(t, it.Created.IsZero())
		assert.Equal(t, catalog.NotAvailable, it.Display(catalog.FieldName))
		assert.Equal(t, catalog.NotAvailable, it.Display(catalog.FieldCreated))
	})

	t.Run("episode", func(t *testing.T) {
		raw := json.RawMessage(`{"id": 2, "name": "Lawnmower Dog", "air_date": "December 9, 2013",
			"episode": "S01E02", "characters": ["a", "b"]}`)
		it, err := catalog.Decode(catalog.Episode, raw)
		require.NoError(t, err)
		assert.Equal(t, "S01E02", it.Episode)
		assert.Equal(t, 2, it.CharacterCount)
		v, ok := it.Text(catalog.FieldEpisode)
		assert.True(t, ok)
		assert.Equal(t, "S01E02", v)
	})

	t.Run("malformed object", func(t *testing.T) {
		_, err := catalog.Decode(catalog.Location, json.RawMessage(`42`))
		require.Error(t, err)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := catalog.Decode(catalog.Kind("planet"), json.RawMessage(`{}`))
		require.ErrorIs(t, err, catalog.ErrUnknownKind)
	})
}

func TestDecodeAll(t *testing.T) {
	raws := []json.RawMessage{
		json.RawMessage(`{"id": 1, "name": "Earth"}`),
		json.RawMessage(`{"id": 2, "name": "Abadango"}`),
	}
	items, err := catalog.DecodeAll(catalog.Location, raws)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Earth", items[0].Name)
	assert.Equal(t, "Abadango", items[1].Name)

	_, err = catalog.DecodeAll(catalog.Location, append(raws, json.RawMessage(`"oops"`)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "location item 2")
}

func TestItemFieldAccess(t *testing.T) {
	it := catalog.Item{Kind: catalog.Location, ID: 3, Name: "Citadel", Dimension: "unknown"}

	_, ok := it.Text(catalog.FieldGender)
	assert.False(t, ok, "gender is not a location field")

	n, ok := it.Number(catalog.FieldID)
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	_, ok = it.Number(catalog.FieldName)
	assert.False(t, ok)

	details := it.Details()
	require.Len(t, details, len(catalog.Fields(catalog.Location)))
	assert.Equal(t, catalog.Detail{Label: "ID", Value: "3"}, details[0])
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, catalog.NotAvailable, catalog.FormatDate(time.Time{}))
	ts := time.Date(2020, 1, 2, 3, 4, 5, 0, time.Local)
	assert.Equal(t, "2020-01-02 03:04:05", catalog.FormatDate(ts))
}

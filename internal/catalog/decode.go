package catalog

import (
	"encoding/json"
	"fmt"
	"time"
)

// namedRef is the {name, url} shape the API uses for origin and location.
type namedRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// characterJSON mirrors a character object on the wire.
type characterJSON struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	Status   string    `json:"status"`
	Species  string    `json:"species"`
	Type     string    `json:"type"`
	Gender   string    `json:"gender"`
	Origin   *namedRef `json:"origin"`
	Location *namedRef `json:"location"`
	Image    string    `json:"image"`
	Episode  []string  `json:"episode"`
	URL      string    `json:"url"`
	Created  string    `json:"created"`
}

// locationJSON mirrors a location object on the wire.
type locationJSON struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Dimension string   `json:"dimension"`
	Residents []string `json:"residents"`
	URL       string   `json:"url"`
	Created   string   `json:"created"`
}

// episodeJSON mirrors an episode object on the wire.
type episodeJSON struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	AirDate    string   `json:"air_date"`
	Episode    string   `json:"episode"`
	Characters []string `json:"characters"`
	URL        string   `json:"url"`
	Created    string   `json:"created"`
}

// Decode converts one raw upstream object into an Item of the given kind.
// Null and missing attributes become zero values; an unparseable created
// timestamp is treated as unknown.
func Decode(kind Kind, raw json.RawMessage) (Item, error) {
	switch kind {
	case Character:
		var c characterJSON
		if err := json.Unmarshal(raw, &c); err != nil {
			return Item{}, err
		}
		it := Item{
			Kind:         Character,
			ID:           c.ID,
			Name:         c.Name,
			Status:       c.Status,
			Species:      c.Species,
			Type:         c.Type,
			Gender:       c.Gender,
			EpisodeCount: len(c.Episode),
			Image:        c.Image,
			URL:          c.URL,
			Created:      parseCreated(c.Created),
		}
		if c.Origin != nil {
			it.Origin = c.Origin.Name
		}
		if c.Location != nil {
			it.Location = c.Location.Name
		}
		return it, nil
	case Location:
		var l locationJSON
		if err := json.Unmarshal(raw, &l); err != nil {
			return Item{}, err
		}
		return Item{
			Kind:          Location,
			ID:            l.ID,
			Name:          l.Name,
			Type:          l.Type,
			Dimension:     l.Dimension,
			ResidentCount: len(l.Residents),
			URL:           l.URL,
			Created:       parseCreated(l.Created),
		}, nil
	case Episode:
		var e episodeJSON
		if err := json.Unmarshal(raw, &e); err != nil {
			return Item{}, err
		}
		return Item{
			Kind:           Episode,
			ID:             e.ID,
			Name:           e.Name,
			AirDate:        e.AirDate,
			Episode:        e.Episode,
			CharacterCount: len(e.Characters),
			URL:            e.URL,
			Created:        parseCreated(e.Created),
		}, nil
	default:
		return Item{}, fmt.Errorf("%w: %q", ErrUnknownKind, string(kind))
	}
}

// DecodeAll decodes every raw object in order. The first failure aborts the
// whole batch.
func DecodeAll(kind Kind, raws []json.RawMessage) ([]Item, error) {
	items := make([]Item, 0, len(raws))
	for i, raw := range raws {
		it, err := Decode(kind, raw)
		if err != nil {
			return nil, fmt.Errorf("decoding %s item %d: %w", kind, i, err)
		}
		items = append(items, it)
	}
	return items, nil
}

func parseCreated(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

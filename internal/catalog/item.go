package catalog

import (
	"strconv"
	"time"
)

// NotAvailable is rendered in place of unknown values.
const NotAvailable = "N/A"

// Item is a kind-tagged catalog record. Fields that the upstream omitted or
// sent as null hold their zero value.
type Item struct {
	Kind Kind   `json:"kind" yaml:"kind"`
	ID   int    `json:"id"   yaml:"id"`
	Name string `json:"name" yaml:"name"`

	// Character attributes.
	Status       string `json:"status,omitempty"        yaml:"status,omitempty"`
	Species      string `json:"species,omitempty"       yaml:"species,omitempty"`
	Type         string `json:"type,omitempty"          yaml:"type,omitempty"`
	Gender       string `json:"gender,omitempty"        yaml:"gender,omitempty"`
	Origin       string `json:"origin,omitempty"        yaml:"origin,omitempty"`
	Location     string `json:"location,omitempty"      yaml:"location,omitempty"`
	EpisodeCount int    `json:"episode_count,omitempty" yaml:"episode_count,omitempty"`
	Image        string `json:"image,omitempty"         yaml:"image,omitempty"`

	// Location attributes. Type is shared with characters.
	Dimension     string `json:"dimension,omitempty"      yaml:"dimension,omitempty"`
	ResidentCount int    `json:"resident_count,omitempty" yaml:"resident_count,omitempty"`

	// Episode attributes.
	AirDate        string `json:"air_date,omitempty"        yaml:"air_date,omitempty"`
	Episode        string `json:"episode,omitempty"         yaml:"episode,omitempty"`
	CharacterCount int    `json:"character_count,omitempty" yaml:"character_count,omitempty"`

	URL     string    `json:"url,omitempty" yaml:"url,omitempty"`
	Created time.Time `json:"created"       yaml:"created"`
}

// Text returns the string form of f and whether f is defined for the item's
// kind. Unknown string values are returned as "".
func (it Item) Text(f Field) (string, bool) {
	if !HasField(it.Kind, f) {
		return "", false
	}
	switch f {
	case FieldName:
		return it.Name, true
	case FieldStatus:
		return it.Status, true
	case FieldSpecies:
		return it.Species, true
	case FieldType:
		return it.Type, true
	case FieldGender:
		return it.Gender, true
	case FieldOrigin:
		return it.Origin, true
	case FieldLocation:
		return it.Location, true
	case FieldDimension:
		return it.Dimension, true
	case FieldAirDate:
		return it.AirDate, true
	case FieldEpisode:
		return it.Episode, true
	case FieldID, FieldEpisodes, FieldResidents, FieldCharacters:
		n, _ := it.Number(f)
		return strconv.Itoa(n), true
	case FieldCreated:
		if it.Created.IsZero() {
			return "", true
		}
		return it.Created.Format(time.RFC3339), true
	default:
		return "", false
	}
}

// Number returns the numeric value of f. ok is false for non-numeric fields.
func (it Item) Number(f Field) (int, bool) {
	if !HasField(it.Kind, f) {
		return 0, false
	}
	switch f {
	case FieldID:
		return it.ID, true
	case FieldEpisodes:
		return it.EpisodeCount, true
	case FieldResidents:
		return it.ResidentCount, true
	case FieldCharacters:
		return it.CharacterCount, true
	default:
		return 0, false
	}
}

// Display returns the value of f formatted for people, substituting
// NotAvailable for unknown values.
func (it Item) Display(f Field) string {
	if f == FieldCreated {
		return FormatDate(it.Created)
	}
	v, ok := it.Text(f)
	if !ok || v == "" {
		return NotAvailable
	}
	return v
}

// Detail is one labelled line of an item's expanded view.
type Detail struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// detailLabels holds the headings used for the expanded view.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var detailLabels = map[Field]string{
	FieldID:         "ID",
	FieldName:       "Name",
	FieldStatus:     "Status",
	FieldSpecies:    "Species",
	FieldType:       "Type",
	FieldGender:     "Gender",
	FieldOrigin:     "Origin",
	FieldLocation:   "Location",
	FieldEpisodes:   "Episodes",
	FieldDimension:  "Dimension",
	FieldResidents:  "Residents",
	FieldAirDate:    "Air Date",
	FieldEpisode:    "Episode",
	FieldCharacters: "Characters",
	FieldCreated:    "Created",
}

// Details returns the expanded view of the item, one entry per field of its kind.
func (it Item) Details() []Detail {
	fields := kindFields[it.Kind]
	details := make([]Detail, 0, len(fields))
	for _, f := range fields {
		details = append(details, Detail{Label: Label(f), Value: it.Display(f)})
	}
	return details
}

// Label returns the human heading for f.
func Label(f Field) string {
	if l, ok := detailLabels[f]; ok {
		return l
	}
	return string(f)
}

// FormatDate renders a timestamp as local date and time, or NotAvailable.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return NotAvailable
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

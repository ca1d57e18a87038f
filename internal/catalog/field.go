package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Field names an attribute of an Item.
type Field string

// Item attributes. Not every field exists for every kind; see Fields.
const (
	FieldID         Field = "id"
	FieldName       Field = "name"
	FieldStatus     Field = "status"
	FieldSpecies    Field = "species"
	FieldType       Field = "type"
	FieldGender     Field = "gender"
	FieldOrigin     Field = "origin"
	FieldLocation   Field = "location"
	FieldEpisodes   Field = "episodes"
	FieldDimension  Field = "dimension"
	FieldResidents  Field = "residents"
	FieldAirDate    Field = "air_date"
	FieldEpisode    Field = "episode"
	FieldCreated    Field = "created"
	FieldCharacters Field = "characters"
)

// ValueType describes how a field's values are ordered.
type ValueType int

// Value types.
const (
	TextValue ValueType = iota
	NumberValue
	TimeValue
)

// ErrUnknownField is returned when a field name is not defined for a kind.
var ErrUnknownField = errors.New("unknown field")

// fieldAliases maps alternate spellings onto canonical field names.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var fieldAliases = map[string]Field{
	"episodecode":  FieldEpisode,
	"code":         FieldEpisode,
	"airdate":      FieldAirDate,
	"episodecount": FieldEpisodes,
	"createdat":    FieldCreated,
}

// fieldTypes records the ordering semantics of each field.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var fieldTypes = map[Field]ValueType{
	FieldID:         NumberValue,
	FieldEpisodes:   NumberValue,
	FieldResidents:  NumberValue,
	FieldCharacters: NumberValue,
	FieldCreated:    TimeValue,
}

// kindFields lists the fields each kind carries, in display order.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var kindFields = map[Kind][]Field{
	Character: {
		FieldID, FieldName, FieldStatus, FieldSpecies, FieldType, FieldGender,
		FieldOrigin, FieldLocation, FieldEpisodes, FieldCreated,
	},
	Location: {
		FieldID, FieldName, FieldType, FieldDimension, FieldResidents, FieldCreated,
	},
	Episode: {
		FieldID, FieldName, FieldAirDate, FieldEpisode, FieldCharacters, FieldCreated,
	},
}

// Fields returns the fields defined for kind in display order.
func Fields(kind Kind) []Field {
	fields := kindFields[kind]
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// HasField reports whether f is defined for kind.
func HasField(kind Kind, f Field) bool {
	for _, candidate := range kindFields[kind] {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseField resolves a field name for kind. Matching is case-insensitive and
// accepts a handful of aliases such as "episodeCode".
func ParseField(kind Kind, s string) (Field, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	f := Field(name)
	if alias, ok := fieldAliases[strings.ReplaceAll(name, "_", "")]; ok {
		f = alias
	}
	if !HasField(kind, f) {
		return "", fmt.Errorf("%w %q for %s", ErrUnknownField, s, kind)
	}
	return f, nil
}

// TypeOf returns the value type of f.
func TypeOf(f Field) ValueType {
	if t, ok := fieldTypes[f]; ok {
		return t
	}
	return TextValue
}

func (f Field) String() string {
	return string(f)
}

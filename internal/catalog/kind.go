package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies one of the collections exposed by the upstream API.
// The string form is also the endpoint path segment.
type Kind string

// Supported resource kinds.
const (
	Character Kind = "character"
	Location  Kind = "location"
	Episode   Kind = "episode"
)

// ErrUnknownKind is returned when a kind name cannot be resolved.
var ErrUnknownKind = errors.New("unknown resource kind")

// Kinds returns every supported kind in display order.
func Kinds() []Kind {
	return []Kind{Character, Location, Episode}
}

// ParseKind resolves a user supplied kind name. Matching is case-insensitive
// and accepts the plural form ("characters").
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.TrimSuffix(name, "s")
	for _, k := range Kinds() {
		if string(k) == name {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q (valid: character, location, episode)", ErrUnknownKind, s)
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	switch k {
	case Character, Location, Episode:
		return true
	default:
		return false
	}
}

// Plural returns the collection name used in headings ("characters").
func (k Kind) Plural() string {
	return string(k) + "s"
}

func (k Kind) String() string {
	return string(k)
}

// Package planet turns a seed and a set of named parameters into a generated
// planet: seed vector, archetype colors, and the shells (mesh plus material)
// configured on a rendering collaborator.
package planet

import (
	"fmt"
	"strings"
)

// Archetype selects which kind of planet a variant generates.
type Archetype uint8

const (
	Barren Archetype = iota
	Terrestrial
	Gas
)

// Archetypes lists every archetype in presentation order.
func Archetypes() []Archetype {
	return []Archetype{Barren, Terrestrial, Gas}
}

func (a Archetype) String() string {
	switch a {
	case Barren:
		return "barren"
	case Terrestrial:
		return "terrestrial"
	case Gas:
		return "gas"
	default:
		return fmt.Sprintf("archetype(%d)", uint8(a))
	}
}

// ParseArchetype accepts the lower-case archetype names.
func ParseArchetype(s string) (Archetype, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "barren":
		return Barren, nil
	case "terrestrial":
		return Terrestrial, nil
	case "gas":
		return Gas, nil
	}
	return 0, &Error{Kind: KindUnknownParameter, Message: fmt.Sprintf("unknown archetype %q", s)}
}

// State is a variant's position in its lifecycle.
type State uint8

const (
	Unrealized State = iota
	Generated
	Updated
	Disposed
)

func (s State) String() string {
	switch s {
	case Unrealized:
		return "unrealized"
	case Generated:
		return "generated"
	case Updated:
		return "updated"
	case Disposed:
		return "disposed"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

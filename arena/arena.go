// Package arena holds the named world locations games are played in.
package arena

import (
	"fmt"
	"github.com/lefinal/flier/config"
	"github.com/lefinal/flier/errors"
	"github.com/lefinal/flier/world"
)

// Arena is a named bundle of locations and location sets.
type Arena struct {
	name      string
	locations map[string]world.Location
	sets      map[string][]world.Location
}

// New creates an empty Arena with the given name.
func New(name string) *Arena {
	return &Arena{
		name:      name,
		locations: make(map[string]world.Location),
		sets:      make(map[string][]world.Location),
	}
}

// Name of the arena.
func (a *Arena) Name() string {
	return a.name
}

// AddLocation adds or replaces the named location.
func (a *Arena) AddLocation(name string, loc world.Location) {
	a.locations[name] = loc
}

// AddLocationSet adds or replaces the named location set.
func (a *Arena) AddLocationSet(name string, locs []world.Location) {
	set := make([]world.Location, len(locs))
	copy(set, locs)
	a.sets[name] = set
}

// Location returns the location with the given name. Unknown names yield an
// errors.KindUnknownLocation error.
func (a *Arena) Location(name string) (world.Location, error) {
	loc, ok := a.locations[name]
	if !ok {
		return world.Location{}, errors.NewLoadingError(errors.KindUnknownLocation,
			fmt.Sprintf("location '%s' does not exist", name),
			errors.Details{"arena": a.name, "location": name})
	}
	return loc, nil
}

// LocationSet returns a copy of the location set with the given name. A name
// of a single location yields a set containing only that location.
func (a *Arena) LocationSet(name string) ([]world.Location, error) {
	if set, ok := a.sets[name]; ok {
		locs := make([]world.Location, len(set))
		copy(locs, set)
		return locs, nil
	}
	if loc, ok := a.locations[name]; ok {
		return []world.Location{loc}, nil
	}
	return nil, errors.NewLoadingError(errors.KindUnknownLocation,
		fmt.Sprintf("location set '%s' does not exist", name),
		errors.Details{"arena": a.name, "set": name})
}

// FromSection loads an arena from its configuration section:
//
//	locations:
//	  a: {world: sky, x: 0, y: 80, z: 0, yaw: 90, pitch: 0}
//	sets:
//	  red: [a, b]
//
// The arena is named after the section. Sets reference location names.
func FromSection(section config.Section) (*Arena, error) {
	a := New(section.Name())
	locations, _ := section.Section("locations")
	for _, name := range locations.Keys() {
		var loc world.Location
		s, ok := locations.Section(name)
		if !ok {
			return nil, errors.NewLoadingError(errors.KindInvalidValue, "location must be a mapping",
				errors.Details{"arena": a.name, "location": name})
		}
		err := s.Decode(&loc)
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("decode location '%s'", name), nil)
		}
		a.AddLocation(name, loc)
	}
	sets, _ := section.Section("sets")
	for _, setName := range sets.Keys() {
		names, err := sets.StringList(setName)
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("load set '%s'", setName), nil)
		}
		locs := make([]world.Location, 0, len(names))
		for _, name := range names {
			loc, err := a.Location(name)
			if err != nil {
				return nil, errors.Wrap(err, fmt.Sprintf("resolve set '%s'", setName), nil)
			}
			locs = append(locs, loc)
		}
		a.AddLocationSet(setName, locs)
	}
	return a, nil
}

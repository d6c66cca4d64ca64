// Package weapon holds the weapons players use against each other.
package weapon

import (
	"fmt"
	"github.com/lefinal/flier/config"
	"github.com/lefinal/flier/errors"
	"github.com/lefinal/flier/game"
	"github.com/lefinal/flier/position"
	"github.com/lefinal/flier/world"
	"strings"
)

// MetadataKey is the entity metadata key the Tag of launched projectiles is
// stored at.
const MetadataKey = "flier-damager"

// Kinds of weapons as configured with the type key.
const (
	KindHomingMissile = "homing_missile"
)

// Weapon is usable by players.
type Weapon interface {
	game.Damager
	// Use fires the weapon. It returns false if the weapon could not be used.
	Use(p *game.InGamePlayer) bool
	// Replicate returns an independent weapon with the same configuration.
	Replicate() (Weapon, error)
}

// Tag is stored on launched projectiles so that hits can be attributed to the
// weapon and its shooter.
type Tag struct {
	Weapon  Weapon
	Shooter *game.InGamePlayer
}

// TagOf returns the Tag of the given entity if it was launched by a weapon.
func TagOf(e world.Entity) (Tag, bool) {
	v, ok := e.Metadata(MetadataKey)
	if !ok {
		return Tag{}, false
	}
	tag, ok := v.(Tag)
	return tag, ok
}

// HandleHit reports the hit of the target by the given projectile to the game
// of the target. It returns false if the entity was not launched by a weapon.
func HandleHit(projectile world.Entity, target *game.InGamePlayer) bool {
	tag, ok := TagOf(projectile)
	if !ok {
		return false
	}
	target.Game().HandleDamage(target, tag.Weapon, tag.Shooter)
	return true
}

// Load loads the weapon from its configuration section. The type key selects
// the kind of weapon.
func Load(section config.Section) (Weapon, error) {
	kind, err := section.String("type")
	if err != nil {
		return nil, errors.Wrap(err, "load type", errors.Details{"weapon": section.Name()})
	}
	switch kind {
	case KindHomingMissile:
		w, err := NewHomingMissile(section)
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("error in '%s' weapon", section.Name()),
				errors.Details{"weapon": section.Name()})
		}
		return w, nil
	}
	return nil, errors.NewLoadingError(errors.KindInvalidValue, fmt.Sprintf("unknown weapon type '%s'", kind),
		errors.Details{"weapon": section.Name()})
}

// base holds the configuration all weapons have in common.
type base struct {
	name    string
	section config.Section
	// friendlyFire allows targeting friendly players.
	friendlyFire bool
	// suicidal allows targeting the shooter.
	suicidal bool
	// where the shooter must be for using the weapon.
	where position.Where
}

func newBase(section config.Section) (base, error) {
	friendlyFire, err := section.BoolOr("friendly_fire", false)
	if err != nil {
		return base{}, errors.Wrap(err, "load friendly fire", nil)
	}
	suicidal, err := section.BoolOr("suicidal", false)
	if err != nil {
		return base{}, errors.Wrap(err, "load suicidal", nil)
	}
	whereStr, err := section.StringOr("where", string(position.Everywhere))
	if err != nil {
		return base{}, errors.Wrap(err, "load where", nil)
	}
	where, err := position.Parse(whereStr)
	if err != nil {
		return base{}, errors.Wrap(err, "parse where", errors.Details{"path": section.Path() + ".where"})
	}
	return base{
		name:         section.Name(),
		section:      section,
		friendlyFire: friendlyFire,
		suicidal:     suicidal,
		where:        where,
	}, nil
}

// usable checks whether the shooter is at a position the weapon may be used
// from.
func (b *base) usable(shooter *game.InGamePlayer) bool {
	return position.Check(shooter.Player(), shooter.Game().Host().World, b.where)
}

// Name is the id of the weapon.
func (b *base) Name() string {
	return b.name
}

// loadEntityKind loads the entity kind with the given key.
func loadEntityKind(section config.Section, key string) (world.EntityKind, error) {
	s, err := section.String(key)
	if err != nil {
		return "", err
	}
	s = strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), " ", "_")
	if s == "" {
		return "", errors.NewLoadingError(errors.KindInvalidValue, fmt.Sprintf("'%s' must not be empty", key),
			errors.Details{"path": section.Path() + "." + key})
	}
	return world.EntityKind(s), nil
}

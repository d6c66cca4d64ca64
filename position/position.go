// Package position classifies where a player is relative to the ground. Item
// usages are gated on it.
package position

import (
	"github.com/lefinal/flier/errors"
	"github.com/lefinal/flier/world"
	"strings"
)

// groundAltitude is the altitude below which a non-gliding player counts as
// standing on the ground.
const groundAltitude = 4

// Where is a position class or a union of position classes.
type Where string

const (
	// Ground is used for players who do not glide and are close to the ground.
	Ground Where = "GROUND"
	// Air is used for gliding players.
	Air Where = "AIR"
	// Fall is used for players that neither glide nor stand on the ground.
	Fall Where = "FALL"
	// NoGround matches Air and Fall.
	NoGround Where = "NO_GROUND"
	// NoAir matches Ground and Fall.
	NoAir Where = "NO_AIR"
	// NoFall matches Ground and Air.
	NoFall Where = "NO_FALL"
	// Everywhere matches everything.
	Everywhere Where = "EVERYWHERE"
)

// Parse parses the given config value.
func Parse(s string) (Where, error) {
	w := Where(strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), " ", "_"))
	switch w {
	case Ground, Air, Fall, NoGround, NoAir, NoFall, Everywhere:
		return w, nil
	}
	return "", errors.NewLoadingError(errors.KindInvalidValue, "unknown position", errors.Details{"was": s})
}

// Get returns the position class of the given player: Air, Ground or Fall.
func Get(player world.Player, altimeter world.Altimeter) Where {
	air, ground := classify(player, altimeter)
	switch {
	case air:
		return Air
	case ground:
		return Ground
	default:
		return Fall
	}
}

// Check reports whether the player is currently at the given position.
func Check(player world.Player, altimeter world.Altimeter, where Where) bool {
	air, ground := classify(player, altimeter)
	fall := !air && !ground
	switch where {
	case Ground:
		return ground
	case Air:
		return air
	case Fall:
		return fall
	case NoGround:
		return !ground
	case NoAir:
		return !air
	case NoFall:
		return !fall
	case Everywhere:
		return true
	}
	return false
}

func classify(player world.Player, altimeter world.Altimeter) (air bool, ground bool) {
	air = player.IsGliding()
	ground = !air && altimeter.Altitude(player.Location(), groundAltitude) < groundAltitude
	return air, ground
}

package sim

import (
	"github.com/google/uuid"
	"github.com/lefinal/flier/world"
)

// defaultEyeHeight is the distance between feet and eyes.
const defaultEyeHeight = 1.62

// Player is a simulated player whose kinematics are set from the outside.
type Player struct {
	id     uuid.UUID
	name   string
	locale string
	// Loc is the location of the player's feet.
	Loc world.Location
	// Vel is the current velocity.
	Vel world.Vector
	// Gliding describes whether the player glides.
	Gliding bool
	// EyeHeight is the distance between feet and eyes.
	EyeHeight float64
}

// NewPlayer creates a Player with a random id at the origin.
func NewPlayer(name string) *Player {
	return &Player{
		id:        uuid.New(),
		name:      name,
		locale:    "en",
		EyeHeight: defaultEyeHeight,
	}
}

// NewPlayerWithID creates a Player with the given id.
func NewPlayerWithID(id uuid.UUID, name string) *Player {
	p := NewPlayer(name)
	p.id = id
	return p
}

func (p *Player) ID() uuid.UUID {
	return p.id
}

func (p *Player) Name() string {
	return p.name
}

func (p *Player) Locale() string {
	return p.locale
}

// SetLocale sets the language tag returned by Locale.
func (p *Player) SetLocale(locale string) {
	p.locale = locale
}

func (p *Player) Location() world.Location {
	return p.Loc
}

func (p *Player) EyeLocation() world.Location {
	return p.Loc.Add(world.Vector{Y: p.EyeHeight})
}

func (p *Player) Velocity() world.Vector {
	return p.Vel
}

func (p *Player) IsGliding() bool {
	return p.Gliding
}

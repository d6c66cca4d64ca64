package sim

import (
	"github.com/lefinal/flier/world"
)

// gravityPerTick is subtracted from the vertical velocity of entities with
// gravity each tick.
const gravityPerTick = 0.03

// Entity is a simulated entity that moves by its velocity every tick.
type Entity struct {
	kind       world.EntityKind
	loc        world.Location
	vel        world.Vector
	gravity    bool
	glowing    bool
	shooter    world.Player
	metadata   map[string]interface{}
	dead       bool
	removed    bool
	ticksLived int
	// frozen entities do not move, which is used for simulating collisions.
	frozen bool
}

func (e *Entity) Kind() world.EntityKind {
	return e.kind
}

func (e *Entity) Location() world.Location {
	return e.loc
}

func (e *Entity) Velocity() world.Vector {
	return e.vel
}

func (e *Entity) SetVelocity(v world.Vector) {
	e.vel = v
}

func (e *Entity) SetGravity(gravity bool) {
	e.gravity = gravity
}

// HasGravity returns the value set with SetGravity.
func (e *Entity) HasGravity() bool {
	return e.gravity
}

func (e *Entity) SetGlowing(glowing bool) {
	e.glowing = glowing
}

// IsGlowing returns the value set with SetGlowing.
func (e *Entity) IsGlowing() bool {
	return e.glowing
}

func (e *Entity) SetShooter(shooter world.Player) {
	e.shooter = shooter
}

// Shooter returns the player set with SetShooter.
func (e *Entity) Shooter() world.Player {
	return e.shooter
}

func (e *Entity) SetMetadata(key string, value interface{}) {
	e.metadata[key] = value
}

func (e *Entity) Metadata(key string) (interface{}, bool) {
	v, ok := e.metadata[key]
	return v, ok
}

func (e *Entity) IsDead() bool {
	return e.dead
}

// Kill marks the entity as dead.
func (e *Entity) Kill() {
	e.dead = true
}

// Freeze stops the entity from moving as if it got stuck.
func (e *Entity) Freeze() {
	e.frozen = true
}

func (e *Entity) IsValid() bool {
	return !e.removed
}

func (e *Entity) TicksLived() int {
	return e.ticksLived
}

func (e *Entity) Remove() {
	e.removed = true
}

// tick advances the entity by one host tick.
func (e *Entity) tick() {
	e.ticksLived++
	if e.frozen {
		return
	}
	if e.gravity {
		e.vel = e.vel.Add(world.Vector{Y: -gravityPerTick})
	}
	e.loc = e.loc.Add(e.vel)
}

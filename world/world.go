package world

import "github.com/google/uuid"

// EntityKind is the host entity type used for spawning.
type EntityKind string

// Sound is a host sound identifier.
type Sound string

// SoundExperienceOrbPickup is the cue played to players tracked by a homing
// missile.
const SoundExperienceOrbPickup Sound = "ENTITY_EXPERIENCE_ORB_PICKUP"

// Player is a reference to a player connected to the host.
type Player interface {
	// ID is the stable unique id of the player.
	ID() uuid.UUID
	// Name is the display name.
	Name() string
	// Locale is the language tag of the player's client.
	Locale() string
	// Location of the player's feet.
	Location() Location
	// EyeLocation of the player.
	EyeLocation() Location
	// Velocity is the current velocity in voxels per tick.
	Velocity() Vector
	// IsGliding describes whether the player currently glides with wings.
	IsGliding() bool
}

// Entity is an entity spawned in the host world.
type Entity interface {
	Location() Location
	Velocity() Vector
	SetVelocity(v Vector)
	SetGravity(gravity bool)
	SetGlowing(glowing bool)
	// SetShooter marks the given player as the one who launched the entity.
	SetShooter(shooter Player)
	// SetMetadata attaches an arbitrary value to the entity that can be read by
	// damage handling.
	SetMetadata(key string, value interface{})
	// Metadata returns the value set with SetMetadata.
	Metadata(key string) (interface{}, bool)
	IsDead() bool
	// IsValid is false after the host removed the entity.
	IsValid() bool
	// TicksLived is the number of host ticks since the entity was spawned.
	TicksLived() int
	// Remove the entity from the world.
	Remove()
}

// Altimeter measures the distance to the ground.
type Altimeter interface {
	// Altitude returns the distance between the location and the ground below,
	// capped at max.
	Altitude(loc Location, max float64) float64
}

// World is the facade to the host world. All calls are expected to be made on
// the tick goroutine.
type World interface {
	Altimeter
	Teleport(p Player, loc Location)
	SpawnEntity(loc Location, kind EntityKind) (Entity, error)
	PlaySound(target Player, loc Location, sound Sound, volume float64, pitch float64)
	SendTitle(p Player, title string, subtitle string, fadeIn int, stay int, fadeOut int)
	SendMessage(p Player, text string)
	// SetSidebar replaces the sidebar lines shown to the player.
	SetSidebar(p Player, lines []string)
	// CallEvent raises the given event on the host event bus.
	CallEvent(e interface{})
}

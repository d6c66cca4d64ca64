package weapon

import (
	"github.com/lefinal/flier/config"
	"github.com/lefinal/flier/errors"
	"github.com/lefinal/flier/game"
	"github.com/lefinal/flier/tick"
	"github.com/lefinal/flier/world"
	"go.uber.org/zap"
)

// launchOffsetFactor scales the shooter's speed to the distance in front of
// the eyes the missile spawns at.
const launchOffsetFactor = 3

// maxStallTicks is the number of ticks a missile may stand still.
const maxStallTicks = 5

// soundDistance is the distance from the target the tracking cue is played at.
const soundDistance = 10

// HomingMissile launches projectiles that track the nearest enemy.
type HomingMissile struct {
	base
	entity          world.EntityKind
	searchRange     int
	searchRadius    float64
	speed           float64
	lifetime        int
	maneuverability float64
	// radius is the distance of the search center in front of the missile and
	// the search radius around it.
	radius    int
	radiusSqr int
}

// NewHomingMissile loads a HomingMissile from the given section.
func NewHomingMissile(section config.Section) (*HomingMissile, error) {
	b, err := newBase(section)
	if err != nil {
		return nil, err
	}
	m := &HomingMissile{base: b}
	m.entity, err = loadEntityKind(section, "entity")
	if err != nil {
		return nil, errors.Wrap(err, "load entity", nil)
	}
	m.searchRange, err = section.PositiveInt("search_range")
	if err != nil {
		return nil, errors.Wrap(err, "load search range", nil)
	}
	m.searchRadius, err = section.PositiveFloat("search_radius")
	if err != nil {
		return nil, errors.Wrap(err, "load search radius", nil)
	}
	m.speed, err = section.PositiveFloat("speed")
	if err != nil {
		return nil, errors.Wrap(err, "load speed", nil)
	}
	m.lifetime, err = section.PositiveInt("lifetime")
	if err != nil {
		return nil, errors.Wrap(err, "load lifetime", nil)
	}
	m.maneuverability, err = section.PositiveFloat("maneuverability")
	if err != nil {
		return nil, errors.Wrap(err, "load maneuverability", nil)
	}
	m.radius = m.searchRange / 2
	m.radiusSqr = m.radius * m.radius
	return m, nil
}

// Replicate loads a new HomingMissile from the same section.
func (m *HomingMissile) Replicate() (Weapon, error) {
	replica, err := NewHomingMissile(m.section)
	if err != nil {
		return nil, errors.Wrap(err, "replicate homing missile", errors.Details{"weapon": m.name})
	}
	return replica, nil
}

// Use launches a missile in the looking direction of the player. The missile
// is steered every tick until it expires.
func (m *HomingMissile) Use(shooter *game.InGamePlayer) bool {
	if !m.usable(shooter) {
		return false
	}
	g := shooter.Game()
	host := g.Host()
	player := shooter.Player()
	direction := player.Location().Direction()
	velocity := direction.Multiply(m.speed)
	pointer := direction.Multiply(player.Velocity().Length() * launchOffsetFactor)
	launch := player.EyeLocation().Add(pointer)
	entity, err := host.World.SpawnEntity(launch, m.entity)
	if err != nil {
		errors.Log(host.Logger, errors.Wrap(err, "spawn missile", errors.Details{
			"weapon":  m.name,
			"shooter": shooter.Name(),
		}))
		return false
	}
	entity.SetVelocity(velocity)
	entity.SetShooter(player)
	entity.SetGravity(false)
	entity.SetGlowing(true)
	entity.SetMetadata(MetadataKey, Tag{
		Weapon:  m,
		Shooter: shooter,
	})
	ms := &missile{
		weapon:  m,
		entity:  entity,
		shooter: shooter,
		world:   host.World,
	}
	g.Track(host.Scheduler.Schedule(1, 1, ms.tick))
	host.Logger.Debug("missile launched", zap.String("game", g.ID()),
		zap.String("weapon", m.name), zap.String("shooter", shooter.Name()))
	return true
}

// missile is the state of a launched missile.
type missile struct {
	weapon  *HomingMissile
	entity  world.Entity
	shooter *game.InGamePlayer
	world   world.World
	// stalled counts the ticks the missile did not move.
	stalled int
	lastLoc *world.Location
	// vec is the velocity set by the missile. It is not read back from the
	// entity after the first tick.
	vec         *world.Vector
	nearest     *game.InGamePlayer
	foundTarget bool
}

func (ms *missile) terminate(h *tick.Handle) {
	h.Cancel()
	ms.entity.Remove()
}

func (ms *missile) tick(h *tick.Handle) {
	m := ms.weapon
	if ms.entity.IsDead() || !ms.entity.IsValid() || ms.entity.TicksLived() >= m.lifetime {
		ms.terminate(h)
		return
	}
	loc := ms.entity.Location()
	if ms.lastLoc != nil && loc.DistanceSquared(*ms.lastLoc) == 0 {
		ms.stalled++
		if ms.stalled > maxStallTicks {
			ms.terminate(h)
			return
		}
	} else {
		ms.stalled = 0
	}
	ms.lastLoc = &loc
	if ms.vec == nil {
		v := ms.entity.Velocity().Normalize().Multiply(m.speed)
		ms.vec = &v
	}
	direction := ms.vec.Normalize()
	searchCenter := loc.Add(direction.Multiply(float64(m.radius)))
	ms.nearest = ms.findTarget(searchCenter)
	var newVec world.Vector
	switch {
	case ms.nearest != nil:
		ms.foundTarget = true
		target := ms.nearest.Player()
		aimPoint := target.Location().Pos.Midpoint(target.EyeLocation().Pos)
		aim := aimPoint.Subtract(loc.Pos).Add(target.Velocity()).Normalize().Multiply(m.maneuverability)
		newVec = direction.Add(aim).Normalize().Multiply(m.speed)
		ms.playCue(target, loc)
	case ms.foundTarget:
		// Target lost, so fly in circles.
		d := world.Vector{X: direction.Z, Y: -direction.Y, Z: -direction.X}.Multiply(m.searchRadius)
		newVec = direction.Add(d).Normalize().Multiply(m.speed)
	default:
		newVec = direction.Multiply(m.speed)
	}
	ms.vec = &newVec
	ms.entity.SetVelocity(newVec)
}

// findTarget returns the nearest targetable player inside the search radius
// around the given center. The previously tracked player is kept as long as
// it is found before a closer one.
func (ms *missile) findTarget(center world.Location) *game.InGamePlayer {
	m := ms.weapon
	g := ms.shooter.Game()
	var target *game.InGamePlayer
	distance := float64(m.radiusSqr)
	for _, p := range g.Players() {
		attitude := g.Attitude(p, ms.shooter)
		if attitude == game.Neutral {
			continue
		}
		if !m.friendlyFire && attitude == game.Friendly {
			continue
		}
		if !m.suicidal && p == ms.shooter {
			continue
		}
		d := p.Player().Location().DistanceSquared(center)
		if d < distance {
			target = p
			distance = d
			if ms.nearest == p {
				break
			}
		}
	}
	return target
}

// playCue plays the tracking sound to the target. The closer the missile, the
// more often the cue is played.
func (ms *missile) playCue(target world.Player, missileLoc world.Location) {
	targetLoc := target.Location()
	j := int(4 * targetLoc.Distance(missileLoc) / float64(ms.weapon.searchRange))
	if j <= 0 {
		j = 1
	}
	if ms.entity.TicksLived()%j != 0 {
		return
	}
	offset := missileLoc.Pos.Subtract(targetLoc.Pos).Normalize().Multiply(soundDistance)
	ms.world.PlaySound(target, targetLoc.Add(offset), world.SoundExperienceOrbPickup, 1, 1)
}

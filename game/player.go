package game

import (
	"github.com/google/uuid"
	"github.com/lefinal/flier/palette"
	"github.com/lefinal/flier/sidebar"
	"github.com/lefinal/flier/world"
)

// Wings are the wings a player currently wears.
type Wings struct {
	Health    float64
	MaxHealth float64
}

// Class is the equipment bag of a player.
type Class interface {
	// CurrentWings returns the wings the player wears. The second return value
	// is false if the player has no wings.
	CurrentWings() (Wings, bool)
}

// Damager is something that damages players, usually a weapon.
type Damager interface {
	// Name is the id of the damager.
	Name() string
}

// Attacker is the one that last damaged a player.
type Attacker struct {
	// Creator is the player that caused the damage. It is nil for damage
	// without a responsible player.
	Creator *InGamePlayer
	// Damager is the used damager. It may be nil.
	Damager Damager
}

// InGamePlayer is the record of a player participating in a Game.
type InGamePlayer struct {
	player   world.Player
	game     Game
	attacker *Attacker
	color    palette.Color
	playing  bool
	lines    []sidebar.Line
	// shown holds the sidebar texts last pushed to the host.
	shown []string
	class    Class
	// colors holds the last received colors of all players by name.
	colors map[string]palette.Color
}

func newInGamePlayer(player world.Player, game Game) *InGamePlayer {
	return &InGamePlayer{
		player: player,
		game:   game,
		color:  palette.White,
		lines:  make([]sidebar.Line, 0),
		colors: make(map[string]palette.Color),
	}
}

// ID of the player.
func (p *InGamePlayer) ID() uuid.UUID {
	return p.player.ID()
}

// Name is the display name of the player.
func (p *InGamePlayer) Name() string {
	return p.player.Name()
}

// Player returns the world.Player.
func (p *InGamePlayer) Player() world.Player {
	return p.player
}

// Game is the Game the player participates in.
func (p *InGamePlayer) Game() Game {
	return p.game
}

// Attacker is the one that last damaged the player. It is nil after each
// respawn.
func (p *InGamePlayer) Attacker() *Attacker {
	return p.attacker
}

// SetAttacker sets the Attacker.
func (p *InGamePlayer) SetAttacker(attacker *Attacker) {
	p.attacker = attacker
}

// Color of the player.
func (p *InGamePlayer) Color() palette.Color {
	return p.color
}

// SetColor sets the Color of the player.
func (p *InGamePlayer) SetColor(color palette.Color) {
	p.color = color
}

// IsPlaying describes whether the player is alive in the arena and not in the
// waiting room.
func (p *InGamePlayer) IsPlaying() bool {
	return p.playing
}

// SetPlaying sets the playing flag.
func (p *InGamePlayer) SetPlaying(playing bool) {
	p.playing = playing
}

// Class is the equipment bag of the player. It may be nil.
func (p *InGamePlayer) Class() Class {
	return p.class
}

// SetClass sets the Class.
func (p *InGamePlayer) SetClass(class Class) {
	p.class = class
}

// AddLines adds the given lines to the sidebar.
func (p *InGamePlayer) AddLines(lines ...sidebar.Line) {
	p.lines = append(p.lines, lines...)
}

// Sidebar renders all sidebar lines.
func (p *InGamePlayer) Sidebar() []string {
	texts := make([]string, 0, len(p.lines))
	for _, line := range p.lines {
		texts = append(texts, line.Text())
	}
	return texts
}

// refreshSidebar renders the sidebar and reports whether it differs from the
// one shown last.
func (p *InGamePlayer) refreshSidebar() ([]string, bool) {
	texts := p.Sidebar()
	if p.shown != nil && len(texts) == len(p.shown) {
		same := true
		for i := range texts {
			if texts[i] != p.shown[i] {
				same = false
				break
			}
		}
		if same {
			return texts, false
		}
	}
	p.shown = texts
	return texts, true
}

// UpdateColors replaces the known colors of all players.
func (p *InGamePlayer) UpdateColors(colors map[string]palette.Color) {
	p.colors = make(map[string]palette.Color, len(colors))
	for name, color := range colors {
		p.colors[name] = color
	}
}

// Colors returns the last known colors of all players by name.
func (p *InGamePlayer) Colors() map[string]palette.Color {
	return p.colors
}

// wings returns the health of the current wings for the health line.
func (p *InGamePlayer) wings() (float64, float64, bool) {
	if p.class == nil {
		return 0, 0, false
	}
	w, ok := p.class.CurrentWings()
	if !ok {
		return 0, 0, false
	}
	return w.Health, w.MaxHealth, true
}

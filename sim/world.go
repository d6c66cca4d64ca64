// Package sim provides an in-memory host world. It backs the headless server
// and is used by tests.
package sim

import (
	"github.com/lefinal/flier/world"
	"go.uber.org/zap"
	"math"
)

// Title is a recorded World.SendTitle call.
type Title struct {
	Player   world.Player
	Title    string
	Subtitle string
}

// Message is a recorded World.SendMessage call.
type Message struct {
	Player world.Player
	Text   string
}

// SoundPlay is a recorded World.PlaySound call.
type SoundPlay struct {
	Player world.Player
	Loc    world.Location
	Sound  world.Sound
	Volume float64
	Pitch  float64
}

// Sidebar is a recorded World.SetSidebar call.
type Sidebar struct {
	Player world.Player
	Lines  []string
}

// Teleport is a recorded World.Teleport call.
type Teleport struct {
	Player world.Player
	Loc    world.Location
}

// World is the in-memory world.World. It is not safe for concurrent use and
// is meant to be driven from the tick goroutine.
type World struct {
	logger *zap.Logger
	// GroundY is the height of the flat ground.
	GroundY float64
	// entities holds all valid entities.
	entities []*Entity
	// Titles holds all sent titles.
	Titles []Title
	// Messages holds all sent chat messages.
	Messages []Message
	// Sounds holds all played sounds.
	Sounds []SoundPlay
	// Events holds all raised events.
	Events []interface{}
	// Teleports holds all teleports.
	Teleports []Teleport
	// Sidebars holds all sidebar updates.
	Sidebars []Sidebar
}

// NewWorld creates an empty World with the ground at height zero.
func NewWorld(logger *zap.Logger) *World {
	return &World{
		logger: logger,
	}
}

// Tick moves all entities and forgets removed ones.
func (w *World) Tick() {
	alive := w.entities[:0]
	for _, e := range w.entities {
		if !e.IsValid() {
			continue
		}
		e.tick()
		alive = append(alive, e)
	}
	w.entities = alive
}

// Entities returns all entities that have not been removed.
func (w *World) Entities() []*Entity {
	entities := make([]*Entity, 0, len(w.entities))
	for _, e := range w.entities {
		if e.IsValid() {
			entities = append(entities, e)
		}
	}
	return entities
}

func (w *World) Altitude(loc world.Location, max float64) float64 {
	return math.Max(0, math.Min(max, loc.Pos.Y-w.GroundY))
}

func (w *World) Teleport(p world.Player, loc world.Location) {
	if simPlayer, ok := p.(*Player); ok {
		simPlayer.Loc = loc
		simPlayer.Vel = world.Vector{}
	}
	w.Teleports = append(w.Teleports, Teleport{Player: p, Loc: loc})
	w.logger.Debug("teleport", zap.String("player", p.Name()), zap.Any("location", loc))
}

func (w *World) SpawnEntity(loc world.Location, kind world.EntityKind) (world.Entity, error) {
	e := &Entity{
		kind:     kind,
		loc:      loc,
		gravity:  true,
		metadata: make(map[string]interface{}),
	}
	w.entities = append(w.entities, e)
	return e, nil
}

func (w *World) PlaySound(target world.Player, loc world.Location, sound world.Sound, volume float64, pitch float64) {
	w.Sounds = append(w.Sounds, SoundPlay{
		Player: target,
		Loc:    loc,
		Sound:  sound,
		Volume: volume,
		Pitch:  pitch,
	})
}

func (w *World) SendTitle(p world.Player, title string, subtitle string, _ int, _ int, _ int) {
	w.Titles = append(w.Titles, Title{Player: p, Title: title, Subtitle: subtitle})
	w.logger.Debug("title", zap.String("player", p.Name()), zap.String("title", title),
		zap.String("subtitle", subtitle))
}

func (w *World) SendMessage(p world.Player, text string) {
	w.Messages = append(w.Messages, Message{Player: p, Text: text})
	w.logger.Debug("message", zap.String("player", p.Name()), zap.String("text", text))
}

func (w *World) SetSidebar(p world.Player, lines []string) {
	shown := make([]string, len(lines))
	copy(shown, lines)
	w.Sidebars = append(w.Sidebars, Sidebar{Player: p, Lines: shown})
}

func (w *World) CallEvent(e interface{}) {
	w.Events = append(w.Events, e)
}

// TitlesFor returns all titles sent to the given player.
func (w *World) TitlesFor(p world.Player) []Title {
	titles := make([]Title, 0)
	for _, t := range w.Titles {
		if t.Player.ID() == p.ID() {
			titles = append(titles, t)
		}
	}
	return titles
}

// MessagesFor returns all messages sent to the given player.
func (w *World) MessagesFor(p world.Player) []string {
	messages := make([]string, 0)
	for _, m := range w.Messages {
		if m.Player.ID() == p.ID() {
			messages = append(messages, m.Text)
		}
	}
	return messages
}

// SidebarsFor returns all sidebar updates for the given player in order.
func (w *World) SidebarsFor(p world.Player) [][]string {
	sidebars := make([][]string, 0)
	for _, s := range w.Sidebars {
		if s.Player.ID() == p.ID() {
			sidebars = append(sidebars, s.Lines)
		}
	}
	return sidebars
}

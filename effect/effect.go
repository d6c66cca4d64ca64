// Package effect holds reactions applied to players, for example when an item
// is used or a player gets hit.
package effect

import (
	"fmt"
	"github.com/lefinal/flier/config"
	"github.com/lefinal/flier/errors"
	"github.com/lefinal/flier/game"
	"github.com/lefinal/flier/world"
	"strings"
)

// Kinds of effects as configured with the type key.
const (
	KindScore = "score"
	KindSound = "sound"
)

// Effect is applied to a target player.
type Effect interface {
	// Act applies the effect to the target. It returns false if the effect
	// could not be applied.
	Act(target *game.InGamePlayer) bool
}

// Load loads the effect from its configuration section. The type key selects
// the kind of effect.
func Load(section config.Section) (Effect, error) {
	kind, err := section.String("type")
	if err != nil {
		return nil, errors.Wrap(err, "load type", errors.Details{"effect": section.Name()})
	}
	var e Effect
	switch kind {
	case KindScore:
		e, err = NewScore(section)
	case KindSound:
		e, err = NewSound(section)
	default:
		return nil, errors.NewLoadingError(errors.KindInvalidValue, fmt.Sprintf("unknown effect type '%s'", kind),
			errors.Details{"effect": section.Name()})
	}
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("error in '%s' effect", section.Name()),
			errors.Details{"effect": section.Name()})
	}
	return e, nil
}

// Score modifies the score of the target or its team.
type Score struct {
	amount int
}

// NewScore loads a Score from the given section.
func NewScore(section config.Section) (*Score, error) {
	amount, err := section.Int("amount")
	if err != nil {
		return nil, errors.Wrap(err, "load amount", nil)
	}
	return &Score{amount: amount}, nil
}

// Amount of points added.
func (s *Score) Amount() int {
	return s.amount
}

func (s *Score) Act(target *game.InGamePlayer) bool {
	return target.Game().ModifyPoints(target.ID(), s.amount)
}

// Sound plays a sound to the target at its location.
type Sound struct {
	sound  world.Sound
	volume float64
	pitch  float64
}

// NewSound loads a Sound from the given section.
func NewSound(section config.Section) (*Sound, error) {
	name, err := section.String("sound")
	if err != nil {
		return nil, errors.Wrap(err, "load sound", nil)
	}
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return nil, errors.NewLoadingError(errors.KindInvalidValue, "sound must not be empty",
			errors.Details{"path": section.Path() + ".sound"})
	}
	volume, err := section.PositiveFloatOr("volume", 1)
	if err != nil {
		return nil, errors.Wrap(err, "load volume", nil)
	}
	pitch, err := section.PositiveFloatOr("pitch", 1)
	if err != nil {
		return nil, errors.Wrap(err, "load pitch", nil)
	}
	return &Sound{
		sound:  world.Sound(name),
		volume: volume,
		pitch:  pitch,
	}, nil
}

func (s *Sound) Act(target *game.InGamePlayer) bool {
	p := target.Player()
	target.Game().Host().World.PlaySound(p, p.Location(), s.sound, s.volume, s.pitch)
	return true
}

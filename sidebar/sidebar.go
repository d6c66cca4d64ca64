// Package sidebar provides the text lines shown in a player's HUD sidebar.
// Lines are polled every tick and only re-render when the value they display
// changed.
package sidebar

import (
	"fmt"
	"github.com/lefinal/flier/palette"
	"github.com/lefinal/flier/world"
	"strconv"
	"strings"
	"unicode/utf8"
)

// maxLineLength is the maximum number of characters the host renders for a
// single sidebar entry.
const maxLineLength = 16

// scorePlaceholder is replaced with the score in score line templates.
const scorePlaceholder = "{score}"

// Line produces the text of a single sidebar line.
type Line interface {
	Text() string
}

// cachedLine renders its text only if the key changed since the last call.
type cachedLine[K comparable] struct {
	key    func() K
	render func(K) string
	last   K
	text   string
	// rendered is false until the first render.
	rendered bool
}

func newCachedLine[K comparable](key func() K, render func(K) string) *cachedLine[K] {
	return &cachedLine[K]{
		key:    key,
		render: render,
	}
}

func (l *cachedLine[K]) Text() string {
	k := l.key()
	if !l.rendered || k != l.last {
		l.text = l.render(k)
		l.last = k
		l.rendered = true
	}
	return l.text
}

// NewScore creates a line showing the player's score. The template is usually
// the translated your_score message and contains the {score} placeholder.
func NewScore(template string, score func() int) Line {
	return newCachedLine(score, func(k int) string {
		return strings.ReplaceAll(template, scorePlaceholder, strconv.Itoa(k))
	})
}

// NewBestScore creates a line showing the highest score in the game.
func NewBestScore(template string, best func() int) Line {
	return newCachedLine(best, func(k int) string {
		return strings.ReplaceAll(template, scorePlaceholder, strconv.Itoa(k))
	})
}

// NewTeam creates a line showing a team's score in the team's color. The team
// name is shortened so that the whole line including color codes does not
// exceed 16 characters.
func NewTeam(color palette.Color, name string, score func() int) Line {
	return newCachedLine(score, func(k int) string {
		suffix := palette.White.Code() + ": " + strconv.Itoa(k)
		left := maxLineLength - utf8.RuneCountInString(color.Code()) - utf8.RuneCountInString(suffix)
		if left < 0 {
			left = 0
		}
		shown := name
		if runes := []rune(name); len(runes) > left {
			shown = string(runes[:left])
		}
		return color.Code() + shown + suffix
	})
}

// Wings reports the health of the player's current wings. The last return
// value is false if the player has no wings.
type Wings func() (health float64, maxHealth float64, ok bool)

// NewHealth creates a line showing the wing health in percent.
func NewHealth(wings Wings) Line {
	return newCachedLine(func() float64 {
		health, maxHealth, ok := wings()
		if !ok || maxHealth == 0 {
			return 0
		}
		return 100 * health / maxHealth
	}, func(k float64) string {
		return fmt.Sprintf("H: %.1f%%", k)
	})
}

// NewSpeed creates a line showing the player's speed.
func NewSpeed(velocity func() world.Vector) Line {
	return newCachedLine(func() float64 {
		s := velocity().Length() * 10
		if s < 1 {
			s = 0
		}
		return s
	}, func(k float64) string {
		return fmt.Sprintf("S: %.1f~", k)
	})
}

package game

import (
	"fmt"
	"github.com/lefinal/flier/arena"
	"github.com/lefinal/flier/config"
	"github.com/lefinal/flier/errors"
	"github.com/lefinal/flier/palette"
	"github.com/lefinal/flier/world"
)

// neutralTeamName is the name of the team of players without a team.
const neutralTeamName = "Neutral"

// Team is a team in a TeamDeathMatch.
type Team struct {
	// id is the configured id. It is empty for the neutral team.
	id string
	// name is the display name. Names starting with $ are message keys.
	name         string
	color        palette.Color
	spawns       []world.Location
	spawnCounter int
	score        int
}

func loadTeam(section config.Section, a *arena.Arena) (*Team, error) {
	colorName, err := section.String("color")
	if err != nil {
		return nil, errors.Wrap(err, "load color", nil)
	}
	color, err := palette.Parse(colorName)
	if err != nil {
		return nil, errors.Wrap(err, "parse color", nil)
	}
	name, err := section.String("name")
	if err != nil {
		return nil, errors.Wrap(err, "load name", nil)
	}
	spawnsName, err := section.String("spawns")
	if err != nil {
		return nil, errors.Wrap(err, "load spawns", nil)
	}
	spawns, err := a.LocationSet(spawnsName)
	if err != nil {
		return nil, errors.Wrap(err, "resolve spawns", nil)
	}
	if len(spawns) == 0 {
		return nil, errors.NewLoadingError(errors.KindEmptySpawnList,
			fmt.Sprintf("spawn list for team %s is empty", name), nil)
	}
	return &Team{
		id:     section.Name(),
		name:   palette.TranslateAlternateCodes('&', name),
		color:  color,
		spawns: spawns,
	}, nil
}

// neutralTeam returns a new team for players without one. Each call returns a
// distinct team.
func neutralTeam() *Team {
	return &Team{
		name:  neutralTeamName,
		color: palette.White,
	}
}

// ID of the team. It is empty for the neutral team.
func (t *Team) ID() string {
	return t.id
}

// Name is the display name.
func (t *Team) Name() string {
	return t.name
}

// Color of the team.
func (t *Team) Color() palette.Color {
	return t.color
}

// Score of the team.
func (t *Team) Score() int {
	return t.score
}

// IsNeutral describes whether this is the team of a player without a team.
func (t *Team) IsNeutral() bool {
	return t.id == ""
}

// nextSpawn returns the next spawn in rotation.
func (t *Team) nextSpawn() world.Location {
	loc := t.spawns[t.spawnCounter%len(t.spawns)]
	t.spawnCounter++
	return loc
}

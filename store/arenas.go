package store

import (
	"context"
	nativeerrors "errors"
	"fmt"
	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgconn"
	"github.com/lefinal/flier/arena"
	"github.com/lefinal/flier/errors"
	"github.com/lefinal/flier/world"
	"go.uber.org/zap"
)

// pgUndefinedTable is the PostgreSQL error code for missing relations.
const pgUndefinedTable = "42P01"

// Arena loads the arena with the given id from the arena_locations and
// arena_location_sets relations.
func (m *Mall) Arena(ctx context.Context, arenaID string) (*arena.Arena, error) {
	a := arena.New(arenaID)
	found, err := m.loadLocations(ctx, a)
	if err != nil {
		return nil, errors.Wrap(err, "load locations", errors.Details{"arena": arenaID})
	}
	if !found {
		return nil, errors.NewResourceNotFoundError(fmt.Sprintf("arena '%s' not found", arenaID),
			errors.Details{"arena": arenaID})
	}
	err = m.loadLocationSets(ctx, a)
	if err != nil {
		return nil, errors.Wrap(err, "load location sets", errors.Details{"arena": arenaID})
	}
	m.logger.Debug("arena loaded", zap.String("arena", arenaID))
	return a, nil
}

// loadLocations adds all locations of the arena. It returns false if there are
// none.
func (m *Mall) loadLocations(ctx context.Context, a *arena.Arena) (bool, error) {
	q, _, err := m.dialect.From(goqu.T("arena_locations")).
		Select(goqu.C("name"),
			goqu.C("world"),
			goqu.C("x"),
			goqu.C("y"),
			goqu.C("z"),
			goqu.C("yaw"),
			goqu.C("pitch")).
		Where(goqu.C("arena").Eq(a.Name())).
		Order(goqu.C("name").Asc()).ToSQL()
	if err != nil {
		return false, errors.NewQueryToSQLError(err, nil)
	}
	rows, err := m.db.Query(ctx, q)
	if err != nil {
		return false, queryError(err, q)
	}
	defer rows.Close()
	found := false
	for rows.Next() {
		var name string
		var loc world.Location
		err = rows.Scan(&name, &loc.World, &loc.Pos.X, &loc.Pos.Y, &loc.Pos.Z, &loc.Yaw, &loc.Pitch)
		if err != nil {
			return false, errors.NewScanDBRowError(err, "scan location", q)
		}
		a.AddLocation(name, loc)
		found = true
	}
	if err = rows.Err(); err != nil {
		return false, queryError(err, q)
	}
	return found, nil
}

// loadLocationSets adds all location sets of the arena. Members are kept in
// the order of their position.
func (m *Mall) loadLocationSets(ctx context.Context, a *arena.Arena) error {
	q, _, err := m.dialect.From(goqu.T("arena_location_sets")).
		Select(goqu.C("set_name"),
			goqu.C("location_name")).
		Where(goqu.C("arena").Eq(a.Name())).
		Order(goqu.C("set_name").Asc(), goqu.C("position").Asc()).ToSQL()
	if err != nil {
		return errors.NewQueryToSQLError(err, nil)
	}
	rows, err := m.db.Query(ctx, q)
	if err != nil {
		return queryError(err, q)
	}
	defer rows.Close()
	sets := make(map[string][]world.Location)
	order := make([]string, 0)
	for rows.Next() {
		var setName, locationName string
		err = rows.Scan(&setName, &locationName)
		if err != nil {
			return errors.NewScanDBRowError(err, "scan location set member", q)
		}
		loc, err := a.Location(locationName)
		if err != nil {
			return errors.Wrap(err, "resolve set member", errors.Details{"set": setName})
		}
		if _, ok := sets[setName]; !ok {
			order = append(order, setName)
		}
		sets[setName] = append(sets[setName], loc)
	}
	if err = rows.Err(); err != nil {
		return queryError(err, q)
	}
	for _, setName := range order {
		a.AddLocationSet(setName, sets[setName])
	}
	return nil
}

// queryError creates the error for a failed query. Missing relations are
// reported as errors.KindDB with a hint to set up the arena tables.
func queryError(err error, q string) error {
	var pgErr *pgconn.PgError
	if nativeerrors.As(err, &pgErr) && pgErr.Code == pgUndefinedTable {
		return errors.Error{
			Code:    errors.ErrFatal,
			Kind:    errors.KindDB,
			Err:     err,
			Message: "arena tables missing",
			Details: errors.Details{"query": q, "relation": pgErr.TableName},
		}
	}
	return errors.NewExecQueryError(err, "query db", q)
}

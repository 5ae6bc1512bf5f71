package repositories

import (
	"context"
	"slices"

	"yatstats/internal/models"
	"yatstats/pkg/database"

	"golang.org/x/sync/errgroup"
)

// StatsRepository loads batting and pitching history for a set of players.
// A non-empty set costs exactly two queries no matter how many players it
// holds; an empty set costs none.
type StatsRepository interface {
	LoadStats(ctx context.Context, playerIDs []int64) (models.StatsIndex, error)
}

type statsRepo struct {
	db database.Querier
}

func NewStatsRepo(db database.Querier) StatsRepository {
	return &statsRepo{db: db}
}

// LoadStats returns an index keyed by every id that has at least one batting
// or pitching row. Either query failing fails the whole call.
func (r *statsRepo) LoadStats(ctx context.Context, playerIDs []int64) (models.StatsIndex, error) {
	ids := distinctIDs(playerIDs)
	index := models.StatsIndex{}
	if len(ids) == 0 {
		return index, nil
	}

	var (
		batting  map[int64][]models.BattingLine
		pitching map[int64][]models.PitchingLine
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		batting, err = r.loadBatting(gctx, ids)
		return err
	})
	g.Go(func() error {
		var err error
		pitching, err = r.loadPitching(gctx, ids)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for id, lines := range batting {
		index.Ensure(id)
		stats := index[id]
		stats.Batting = lines
		index[id] = stats
	}
	for id, lines := range pitching {
		index.Ensure(id)
		stats := index[id]
		stats.Pitching = lines
		index[id] = stats
	}
	return index, nil
}

func (r *statsRepo) loadBatting(ctx context.Context, ids []int64) (map[int64][]models.BattingLine, error) {
	query := `
		SELECT playerid, season, team, ab, h, hr, r, rbi, avg
		FROM batting
		WHERE playerid = ANY($1)
		ORDER BY playerid ASC, season DESC
	`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, wrapErr("load batting", err)
	}
	defer rows.Close()

	grouped := make(map[int64][]models.BattingLine)
	for rows.Next() {
		var (
			line                 models.BattingLine
			team                 *string
			ab, h, hr, runs, rbi *int
			avg                  *float64
		)
		if err := rows.Scan(&line.PlayerID, &line.Season, &team, &ab, &h, &hr, &runs, &rbi, &avg); err != nil {
			return nil, wrapErr("scan batting", err)
		}
		line.Team = str(team)
		line.AtBats = num(ab)
		line.Hits = num(h)
		line.HomeRuns = num(hr)
		line.Runs = num(runs)
		line.RunsBattedIn = num(rbi)
		line.Average = dec(avg)
		grouped[line.PlayerID] = append(grouped[line.PlayerID], line)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("load batting", err)
	}
	return grouped, nil
}

func (r *statsRepo) loadPitching(ctx context.Context, ids []int64) (map[int64][]models.PitchingLine, error) {
	query := `
		SELECT playerid, season, team, ip, er, so, era
		FROM pitching
		WHERE playerid = ANY($1)
		ORDER BY playerid ASC, season DESC
	`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, wrapErr("load pitching", err)
	}
	defer rows.Close()

	grouped := make(map[int64][]models.PitchingLine)
	for rows.Next() {
		var (
			line    models.PitchingLine
			team    *string
			ip, era *float64
			er, so  *int
		)
		if err := rows.Scan(&line.PlayerID, &line.Season, &team, &ip, &er, &so, &era); err != nil {
			return nil, wrapErr("scan pitching", err)
		}
		line.Team = str(team)
		line.InningsPitched = dec(ip)
		line.EarnedRuns = num(er)
		line.Strikeouts = num(so)
		line.ERA = dec(era)
		grouped[line.PlayerID] = append(grouped[line.PlayerID], line)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("load pitching", err)
	}
	return grouped, nil
}

// distinctIDs drops zero ids and duplicates and sorts the rest so the bound
// argument is deterministic.
func distinctIDs(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id != 0 {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

package testhelpers

import (
	"context"
	"os"
	"testing"

	"yatstats/internal/models"
	"yatstats/pkg/database"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TestDB holds the database connection for testing
type TestDB struct {
	Pool    *pgxpool.Pool
	Cleanup func() error
}

// SetupTestDB connects, applies the schema and empties every table.
func SetupTestDB(t *testing.T, connString string) *TestDB {
	t.Helper()

	if connString == "" {
		connString = os.Getenv("TEST_DATABASE_URL")
		if connString == "" {
			connString = "host=localhost port=5432 user=postgres password=postgres dbname=yatstats_test sslmode=disable"
		}
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, connString, database.PoolOptions{MaxConns: 4})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if _, err := pool.Exec(ctx, database.Schema); err != nil {
		pool.Close()
		t.Fatalf("Failed to apply schema: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE pitching, batting, players, schools`); err != nil {
		pool.Close()
		t.Fatalf("Failed to reset test database: %v", err)
	}

	return &TestDB{
		Pool: pool,
		Cleanup: func() error {
			pool.Close()
			return nil
		},
	}
}

// SeedSchool inserts a school for testing
func SeedSchool(t *testing.T, db *TestDB, school models.School) {
	t.Helper()

	query := `
		INSERT INTO schools (hsid, school_name, school_name_upper, city_state, tagline)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''))
	`
	_, err := db.Pool.Exec(context.Background(), query,
		school.TenantKey, school.DisplayName, school.DisplayNameUpper, school.Location, school.Tagline)
	if err != nil {
		t.Fatalf("Failed to seed school: %v", err)
	}
}

// SeedPlayer inserts a player for testing. Empty names are stored as NULL.
func SeedPlayer(t *testing.T, db *TestDB, p models.Player) {
	t.Helper()

	query := `
		INSERT INTO players (playerid, hsid, firstname, lastname, position, gradyear, team, level)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''))
	`
	_, err := db.Pool.Exec(context.Background(), query,
		p.ID, p.TenantKey, p.FirstName, p.LastName, p.Position, p.GraduationYear, p.Team, p.Level)
	if err != nil {
		t.Fatalf("Failed to seed player: %v", err)
	}
}

// SeedBatting inserts a batting line for testing
func SeedBatting(t *testing.T, db *TestDB, line models.BattingLine) {
	t.Helper()

	query := `
		INSERT INTO batting (playerid, season, team, ab, h, hr, r, rbi, avg)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9)
	`
	_, err := db.Pool.Exec(context.Background(), query,
		line.PlayerID, line.Season, line.Team, line.AtBats, line.Hits, line.HomeRuns, line.Runs, line.RunsBattedIn, line.Average)
	if err != nil {
		t.Fatalf("Failed to seed batting: %v", err)
	}
}

// SeedPitching inserts a pitching line for testing
func SeedPitching(t *testing.T, db *TestDB, line models.PitchingLine) {
	t.Helper()

	query := `
		INSERT INTO pitching (playerid, season, team, ip, er, so, era)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7)
	`
	_, err := db.Pool.Exec(context.Background(), query,
		line.PlayerID, line.Season, line.Team, line.InningsPitched, line.EarnedRuns, line.Strikeouts, line.ERA)
	if err != nil {
		t.Fatalf("Failed to seed pitching: %v", err)
	}
}

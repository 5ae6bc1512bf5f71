package repositories

import (
	"context"
	"errors"

	"yatstats/internal/models"
	"yatstats/pkg/database"

	"github.com/jackc/pgx/v5"
)

type TenantRepository interface {
	// GetSchool returns nil, nil when no school has the given key.
	GetSchool(ctx context.Context, tenantKey string) (*models.School, error)
	GetRoster(ctx context.Context, tenantKey string) ([]models.Player, error)
}

type tenantRepo struct {
	db database.Querier
}

func NewTenantRepo(db database.Querier) TenantRepository {
	return &tenantRepo{db: db}
}

func (r *tenantRepo) GetSchool(ctx context.Context, tenantKey string) (*models.School, error) {
	query := `
		SELECT hsid, school_name, school_name_upper, city_state, tagline
		FROM schools
		WHERE hsid = $1
	`
	var (
		school                   models.School
		nameUpper, city, tagline *string
	)
	err := r.db.QueryRow(ctx, query, tenantKey).Scan(&school.TenantKey, &school.DisplayName, &nameUpper, &city, &tagline)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr("get school", err)
	}
	school.DisplayNameUpper = str(nameUpper)
	school.Location = str(city)
	school.Tagline = str(tagline)
	return &school, nil
}

// GetRoster orders by last then first name, case-insensitively, with missing
// names last and player id as the final tiebreak.
func (r *tenantRepo) GetRoster(ctx context.Context, tenantKey string) ([]models.Player, error) {
	query := `
		SELECT playerid, firstname, lastname, position, gradyear, team, level, hsid
		FROM players
		WHERE hsid = $1
		ORDER BY LOWER(NULLIF(lastname, '')) ASC NULLS LAST, LOWER(NULLIF(firstname, '')) ASC NULLS LAST, playerid ASC
	`
	rows, err := r.db.Query(ctx, query, tenantKey)
	if err != nil {
		return nil, wrapErr("get roster", err)
	}
	defer rows.Close()

	roster := []models.Player{}
	for rows.Next() {
		var (
			p                                        models.Player
			first, last, position, grad, team, level *string
		)
		if err := rows.Scan(&p.ID, &first, &last, &position, &grad, &team, &level, &p.TenantKey); err != nil {
			return nil, wrapErr("scan roster", err)
		}
		p.FirstName = str(first)
		p.LastName = str(last)
		p.Position = str(position)
		p.GraduationYear = str(grad)
		p.Team = str(team)
		p.Level = str(level)
		roster = append(roster, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("get roster", err)
	}
	return roster, nil
}

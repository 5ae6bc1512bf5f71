package repositories

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type StatsRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    StatsRepository
	context context.Context
}

var battingColumns = []string{"playerid", "season", "team", "ab", "h", "hr", "r", "rbi", "avg"}

var pitchingColumns = []string{"playerid", "season", "team", "ip", "er", "so", "era"}

const (
	battingQuery  = `SELECT playerid, season, team, ab, h, hr, r, rbi, avg FROM batting WHERE playerid = ANY\(\$1\) ORDER BY playerid ASC, season DESC`
	pitchingQuery = `SELECT playerid, season, team, ip, er, so, era FROM pitching WHERE playerid = ANY\(\$1\) ORDER BY playerid ASC, season DESC`
)

func (suite *StatsRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	require.NoError(suite.T(), err)
	// batting and pitching are fetched concurrently
	mock.MatchExpectationsInOrder(false)
	suite.mock = mock
	suite.repo = NewStatsRepo(mock)
	suite.context = context.Background()
}

func (suite *StatsRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestStatsRepoTestSuite(t *testing.T) {
	suite.Run(t, new(StatsRepoTestSuite))
}

func (suite *StatsRepoTestSuite) TestLoadStats_EmptySetRunsNoQuery() {
	for _, ids := range [][]int64{nil, {}, {0, 0}} {
		index, err := suite.repo.LoadStats(suite.context, ids)
		require.NoError(suite.T(), err)
		assert.NotNil(suite.T(), index)
		assert.Empty(suite.T(), index)
	}
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *StatsRepoTestSuite) TestLoadStats_GroupsBySeasonDescending() {
	suite.mock.ExpectQuery(battingQuery).WithArgs([]int64{1, 2, 3}).
		WillReturnRows(pgxmock.NewRows(battingColumns).
			AddRow(int64(1), 2024, stringPtr("Varsity"), intPtr(40), intPtr(14), intPtr(2), intPtr(9), intPtr(11), float64Ptr(0.350)).
			AddRow(int64(1), 2023, stringPtr("JV"), intPtr(30), intPtr(9), intPtr(0), intPtr(4), intPtr(5), float64Ptr(0.300)))
	suite.mock.ExpectQuery(pitchingQuery).WithArgs([]int64{1, 2, 3}).
		WillReturnRows(pgxmock.NewRows(pitchingColumns).
			AddRow(int64(2), 2024, stringPtr("Varsity"), float64Ptr(21.1), intPtr(6), intPtr(25), float64Ptr(2.53)))

	index, err := suite.repo.LoadStats(suite.context, []int64{3, 1, 2, 2})
	require.NoError(suite.T(), err)
	require.Len(suite.T(), index, 2)

	one := index[1]
	require.Len(suite.T(), one.Batting, 2)
	assert.Equal(suite.T(), 2024, one.Batting[0].Season)
	assert.Equal(suite.T(), 2023, one.Batting[1].Season)
	assert.Equal(suite.T(), 14, one.Batting[0].Hits)
	assert.InDelta(suite.T(), 0.350, one.Batting[0].Average, 0.0001)
	assert.NotNil(suite.T(), one.Pitching)
	assert.Empty(suite.T(), one.Pitching)

	two := index[2]
	assert.Empty(suite.T(), two.Batting)
	require.Len(suite.T(), two.Pitching, 1)
	assert.Equal(suite.T(), 25, two.Pitching[0].Strikeouts)
	assert.InDelta(suite.T(), 2.53, two.Pitching[0].ERA, 0.0001)

	_, hasThree := index[3]
	assert.False(suite.T(), hasThree, "ids without any stat rows are left to the caller")
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *StatsRepoTestSuite) TestLoadStats_TwoQueriesRegardlessOfSize() {
	ids := make([]int64, 0, 250)
	for i := int64(1); i <= 250; i++ {
		ids = append(ids, i)
	}

	suite.mock.ExpectQuery(battingQuery).WithArgs(ids).
		WillReturnRows(pgxmock.NewRows(battingColumns))
	suite.mock.ExpectQuery(pitchingQuery).WithArgs(ids).
		WillReturnRows(pgxmock.NewRows(pitchingColumns))

	index, err := suite.repo.LoadStats(suite.context, ids)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), index)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *StatsRepoTestSuite) TestLoadStats_NullStatColumns() {
	suite.mock.ExpectQuery(battingQuery).WithArgs([]int64{9}).
		WillReturnRows(pgxmock.NewRows(battingColumns).
			AddRow(int64(9), 2022, nil, nil, nil, nil, nil, nil, nil))
	suite.mock.ExpectQuery(pitchingQuery).WithArgs([]int64{9}).
		WillReturnRows(pgxmock.NewRows(pitchingColumns))

	index, err := suite.repo.LoadStats(suite.context, []int64{9})
	require.NoError(suite.T(), err)
	require.Len(suite.T(), index[9].Batting, 1)
	line := index[9].Batting[0]
	assert.Equal(suite.T(), 2022, line.Season)
	assert.Empty(suite.T(), line.Team)
	assert.Zero(suite.T(), line.AtBats)
	assert.Zero(suite.T(), line.Average)
}

func (suite *StatsRepoTestSuite) TestLoadStats_FailureReturnsNoPartialIndex() {
	suite.mock.ExpectQuery(battingQuery).WithArgs([]int64{1}).
		WillReturnError(errors.New("database connection failed"))
	suite.mock.ExpectQuery(pitchingQuery).WithArgs([]int64{1}).
		WillReturnRows(pgxmock.NewRows(pitchingColumns).
			AddRow(int64(1), 2024, stringPtr("Varsity"), float64Ptr(10.0), intPtr(3), intPtr(12), float64Ptr(2.70)))

	index, err := suite.repo.LoadStats(suite.context, []int64{1})
	assert.Nil(suite.T(), index)
	var repoErr *RepositoryError
	assert.ErrorAs(suite.T(), err, &repoErr)
}

func TestDistinctIDs(t *testing.T) {
	assert.Equal(t, []int64{1, 2, 5}, distinctIDs([]int64{5, 0, 2, 1, 5, 2}))
	assert.Empty(t, distinctIDs(nil))
}

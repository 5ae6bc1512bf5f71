package models

type BattingLine struct {
	PlayerID     int64   `json:"player_id" db:"playerid"`
	Season       int     `json:"season" db:"season"`
	Team         string  `json:"team,omitempty" db:"team"`
	AtBats       int     `json:"ab" db:"ab"`
	Hits         int     `json:"h" db:"h"`
	HomeRuns     int     `json:"hr" db:"hr"`
	Runs         int     `json:"r" db:"r"`
	RunsBattedIn int     `json:"rbi" db:"rbi"`
	Average      float64 `json:"avg" db:"avg"`
}

type PitchingLine struct {
	PlayerID       int64   `json:"player_id" db:"playerid"`
	Season         int     `json:"season" db:"season"`
	Team           string  `json:"team,omitempty" db:"team"`
	InningsPitched float64 `json:"ip" db:"ip"`
	EarnedRuns     int     `json:"er" db:"er"`
	Strikeouts     int     `json:"so" db:"so"`
	ERA            float64 `json:"era" db:"era"`
}

// PlayerStats holds one player's history, newest season first.
type PlayerStats struct {
	Batting  []BattingLine  `json:"batting"`
	Pitching []PitchingLine `json:"pitching"`
}

// EmptyPlayerStats returns stats with non-nil, empty sequences.
func EmptyPlayerStats() PlayerStats {
	return PlayerStats{
		Batting:  []BattingLine{},
		Pitching: []PitchingLine{},
	}
}

// StatsIndex maps a player id to that player's stats.
type StatsIndex map[int64]PlayerStats

// Ensure adds an empty entry for id when none exists.
func (s StatsIndex) Ensure(id int64) {
	if _, ok := s[id]; !ok {
		s[id] = EmptyPlayerStats()
	}
}

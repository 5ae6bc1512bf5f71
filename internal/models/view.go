package models

// CompositeView is everything the presentation layer needs for one tenant.
// Every player in Roster has an entry in Stats.
type CompositeView struct {
	School *School    `json:"school"`
	Roster []Player   `json:"roster"`
	Stats  StatsIndex `json:"stats"`
}

// RosterEntry is a player together with their stats.
type RosterEntry struct {
	Player
	Stats PlayerStats `json:"stats"`
}

// Entries returns the roster in order, each player joined with their stats.
func (v *CompositeView) Entries() []RosterEntry {
	entries := make([]RosterEntry, 0, len(v.Roster))
	for _, p := range v.Roster {
		stats, ok := v.Stats[p.ID]
		if !ok {
			stats = EmptyPlayerStats()
		}
		entries = append(entries, RosterEntry{Player: p, Stats: stats})
	}
	return entries
}

// BattingLines flattens batting history in roster order.
func (v *CompositeView) BattingLines() []BattingLine {
	lines := []BattingLine{}
	for _, p := range v.Roster {
		lines = append(lines, v.Stats[p.ID].Batting...)
	}
	return lines
}

// PitchingLines flattens pitching history in roster order.
func (v *CompositeView) PitchingLines() []PitchingLine {
	lines := []PitchingLine{}
	for _, p := range v.Roster {
		lines = append(lines, v.Stats[p.ID].Pitching...)
	}
	return lines
}

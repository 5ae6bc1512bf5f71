package models

import "strings"

type Player struct {
	ID             int64  `json:"player_id" db:"playerid"`
	FirstName      string `json:"first_name" db:"firstname"`
	LastName       string `json:"last_name" db:"lastname"`
	Position       string `json:"position,omitempty" db:"position"`
	GraduationYear string `json:"grad_year,omitempty" db:"gradyear"`
	Team           string `json:"team,omitempty" db:"team"`
	Level          string `json:"level,omitempty" db:"level"`
	TenantKey      string `json:"hsid" db:"hsid"`
}

// FullName joins the non-empty name parts.
func (p Player) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

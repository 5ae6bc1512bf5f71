package models

// School is the descriptive record of one tenant.
type School struct {
	TenantKey        string `json:"hsid" db:"hsid"`
	DisplayName      string `json:"school_name" db:"school_name"`
	DisplayNameUpper string `json:"school_name_upper,omitempty" db:"school_name_upper"`
	Location         string `json:"city_state,omitempty" db:"city_state"`
	Tagline          string `json:"tagline,omitempty" db:"tagline"`
}

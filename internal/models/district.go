package models

// District is immutable reference data for one administrative district.
// Rows are seeded externally; the API never creates or mutates them.
type District struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	State        string  `json:"state"`
	DistrictCode string  `json:"district_code"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
}

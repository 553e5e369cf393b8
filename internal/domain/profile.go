package domain

import "time"

// Profile is the locally stored record for a Cognito identity. UserID is the
// opaque sub issued by the user pool and is the join key for every other table.
type Profile struct {
	ID           int        `json:"id" db:"id"`
	UserID       string     `json:"user_id" db:"user_id"`
	Email        string     `json:"email" db:"email"`
	Name         *string    `json:"name" db:"name"`
	Bio          *string    `json:"bio" db:"bio"`
	LocationLat  *float64   `json:"location_lat" db:"location_lat"`
	LocationLng  *float64   `json:"location_lng" db:"location_lng"`
	LocationName *string    `json:"location_name" db:"location_name"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// Preferences holds the activity preferences for one profile. The storage
// layer does not enforce one row per user; reads pick the oldest row.
type Preferences struct {
	ID               int       `json:"id" db:"id"`
	UserID           string    `json:"user_id" db:"user_id"`
	Sports           []string  `json:"sports" db:"sports"`
	PreferredPace    *string   `json:"preferred_pace" db:"preferred_pace"`
	RideType         *string   `json:"ride_type" db:"ride_type"`
	DistanceRangeMin *int      `json:"distance_range_min" db:"distance_range_min"`
	DistanceRangeMax *int      `json:"distance_range_max" db:"distance_range_max"`
	Availability     []string  `json:"availability" db:"availability"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

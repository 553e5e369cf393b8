package domain

import "time"

// GroupEvent is an organized ride or run. Access and event type are stored
// as free text; only the creator may mutate or delete the row.
type GroupEvent struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	SportType   string    `json:"sport_type" db:"sport_type"`
	StartAt     time.Time `json:"start_at" db:"start_at"`
	Lat         *float64  `json:"lat" db:"lat"`
	Lng         *float64  `json:"lng" db:"lng"`
	Access      string    `json:"access" db:"access"`
	EventType   string    `json:"event_type" db:"event_type"`
	Distance    int       `json:"distance" db:"distance"`
	GPSFileLink *string   `json:"gps_file_link" db:"gps_file_link"`
	CreatedBy   string    `json:"created_by" db:"created_by"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

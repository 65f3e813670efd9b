package models

import "time"

const (
	LocationTypeOriginal = "original"
	LocationTypeGuess    = "guess"
	LocationTypeTravel   = "travel"
	LocationTypeBookmark = "bookmark"
	LocationTypeStart    = "start" // written only by the result pipeline (round start points)
)

// Dedup radii in meters for geofenced point types
const (
	TravelDedupRadius   = 200.0
	BookmarkDedupRadius = 10.0
)

// Location is a single recorded point. Rows written through the result
// pipeline (start/guess) are unique per (user_token, map, game, round, type)
// and upsert longitude on conflict; travel/bookmark rows are deduplicated by
// geofence before insert instead.
type Location struct {
	ID        string `gorm:"primaryKey;type:uuid" json:"id"`
	UserToken string `gorm:"uniqueIndex:idx_locations_key;index;size:32;not null" json:"user_token"`
	Map       string `gorm:"uniqueIndex:idx_locations_key;size:32;not null" json:"map"`
	Game      string `gorm:"uniqueIndex:idx_locations_key;size:32;not null" json:"game"`
	Round     int    `gorm:"uniqueIndex:idx_locations_key;not null" json:"round"`
	Type      string `gorm:"uniqueIndex:idx_locations_key;size:16;not null" json:"type"`

	Lat float64 `gorm:"not null" json:"lat"`
	Lng float64 `gorm:"not null" json:"lng"`

	// Optional free-text label, truncated to 64 chars on input
	Location *string `gorm:"size:64" json:"location,omitempty"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

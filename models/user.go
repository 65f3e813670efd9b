package models

import (
	"time"
)

// User is the owner of every recorded point and result. Identified on the
// wire by an opaque token issued once at signup; the token never changes.
type User struct {
	ID        string `gorm:"primaryKey;type:uuid" json:"id"`
	UserToken string `gorm:"uniqueIndex;size:32;not null" json:"user_token"`
	Email     string `gorm:"uniqueIndex;size:255;not null" json:"email"`

	// Activity counters — bumped on every authenticated request
	RequestCount  int64     `json:"request_count" gorm:"default:0"`
	LastRequestAt time.Time `json:"last_request_at"`
	GamesPlayed   int64     `json:"games_played" gorm:"default:0"`

	// Last-seen in-game identity, overwritten on each result submission
	UserID   string `gorm:"size:32" json:"user_id"`
	UserNick string `gorm:"size:128" json:"user_nick"`

	Timestamps
}

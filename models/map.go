package models

// Map is one playable map. A row is created on the first result submitted
// for that map code; every repeat submission bumps times_played.
type Map struct {
	ID      string `gorm:"primaryKey;type:uuid" json:"id"`
	Map     string `gorm:"uniqueIndex;size:32;not null" json:"map"`
	MapName string `gorm:"size:128" json:"map_name"`
	Slug    string `gorm:"index;size:160" json:"slug"` // URL-safe form of MapName, set at first play

	TimesPlayed int64 `json:"times_played" gorm:"default:1"`

	Timestamps
}

package models

// Game is the metadata of one completed game: the config the game was
// played with and its outcome. Unique per (game, user_token, map); a
// resubmission of the same key only refreshes the elapsed time.
type Game struct {
	ID        string `gorm:"primaryKey;type:uuid" json:"id"`
	Game      string `gorm:"uniqueIndex:idx_games_key;size:32;not null" json:"game"`
	UserToken string `gorm:"uniqueIndex:idx_games_key;size:32;not null" json:"user_token"`
	Map       string `gorm:"uniqueIndex:idx_games_key;size:32;not null" json:"map"`

	UserID   string `gorm:"size:32" json:"user_id"`
	UserNick string `gorm:"size:128" json:"user_nick"`

	// Config snapshot
	Rounds    int     `json:"rounds"`
	Moving    bool    `json:"moving"`
	Zooming   bool    `json:"zooming"`
	Rotating  bool    `json:"rotating"`
	TimeLimit float64 `json:"time_limit"`

	// Outcome
	Score    float64 `json:"score"`
	Distance float64 `json:"distance"`
	Time     float64 `json:"time"`

	Timestamps
}

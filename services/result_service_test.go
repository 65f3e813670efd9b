package services

import (
	"testing"

	"georound-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSubmission() *ResultSubmission {
	return &ResultSubmission{
		Token:      testToken,
		Game:       "ABCD1234EFGH5678",
		Map:        "m1",
		MapName:    "World Capitals",
		RoundCount: 2,
		Moving:     true,
		Zooming:    true,
		Rotating:   false,
		TimeLimit:  60,
		Score:      8500,
		Distance:   1234.5,
		Time:       87,
		UserID:     "user-1",
		UserNick:   "nick",
		Rounds:     []PositionInput{{Lat: 10, Lng: 20}, {Lat: 11, Lng: 21}},
		Guesses:    []PositionInput{{Lat: 10.5, Lng: 20.5}, {Lat: 11.5, Lng: 21.5}},
	}
}

func TestProcessRecordsEverything(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, testToken)
	s := NewResultService(db)

	require.NoError(t, s.process(validSubmission()))

	var m models.Map
	require.NoError(t, db.Where("map = ?", "m1").First(&m).Error)
	assert.EqualValues(t, 1, m.TimesPlayed)
	assert.Equal(t, "World Capitals", m.MapName)
	assert.Equal(t, "world-capitals", m.Slug)

	var user models.User
	require.NoError(t, db.Where("user_token = ?", testToken).First(&user).Error)
	assert.EqualValues(t, 1, user.GamesPlayed)
	assert.EqualValues(t, 2, user.RequestCount)
	assert.Equal(t, "nick", user.UserNick)

	var g models.Game
	require.NoError(t, db.Where("game = ?", "ABCD1234EFGH5678").First(&g).Error)
	assert.Equal(t, 8500.0, g.Score)
	assert.Equal(t, 87.0, g.Time)
	assert.True(t, g.Moving)

	var starts []models.Location
	require.NoError(t, db.Where("type = ?", models.LocationTypeStart).Order("round ASC").Find(&starts).Error)
	require.Len(t, starts, 2)
	assert.Equal(t, 1, starts[0].Round)
	assert.Equal(t, 20.0, starts[0].Lng)
	assert.Equal(t, 2, starts[1].Round)
	assert.Equal(t, 21.0, starts[1].Lng)

	var guesses []models.Location
	require.NoError(t, db.Where("type = ?", models.LocationTypeGuess).Find(&guesses).Error)
	assert.Len(t, guesses, 2)
}

func TestProcessResubmitUpdatesTimeOnly(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, testToken)
	s := NewResultService(db)

	require.NoError(t, s.process(validSubmission()))

	second := validSubmission()
	second.Score = 1
	second.Distance = 9
	second.Time = 321
	second.Moving = false
	require.NoError(t, s.process(second))

	var games []models.Game
	require.NoError(t, db.Find(&games).Error)
	require.Len(t, games, 1)
	// config and score stay from the first submission, only time moves
	assert.Equal(t, 8500.0, games[0].Score)
	assert.Equal(t, 1234.5, games[0].Distance)
	assert.True(t, games[0].Moving)
	assert.Equal(t, 321.0, games[0].Time)

	var m models.Map
	require.NoError(t, db.Where("map = ?", "m1").First(&m).Error)
	assert.EqualValues(t, 2, m.TimesPlayed)

	// location upserts keep one row per (round, type)
	var n int64
	require.NoError(t, db.Model(&models.Location{}).Count(&n).Error)
	assert.EqualValues(t, 4, n)
}

func TestProcessUnknownTokenStopsAfterMapStep(t *testing.T) {
	db := newTestDB(t)
	s := NewResultService(db)

	err := s.process(validSubmission())
	require.EqualError(t, err, "Invalid user token")

	// The map upsert already landed; that side effect is not rolled back.
	var m models.Map
	require.NoError(t, db.Where("map = ?", "m1").First(&m).Error)
	assert.EqualValues(t, 1, m.TimesPlayed)

	var games int64
	require.NoError(t, db.Model(&models.Game{}).Count(&games).Error)
	assert.EqualValues(t, 0, games)
	assert.EqualValues(t, 0, locationCount(t, db))
}

func TestProcessBadGuessAbortsRemainingLocations(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, testToken)
	s := NewResultService(db)

	sub := validSubmission()
	sub.Guesses = []PositionInput{{Lat: 95, Lng: 0}, {Lat: 10, Lng: 20}}

	err := s.process(sub)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid latitude or longitude")

	// Round starts were written before the bad guess; nothing after it was.
	var starts int64
	require.NoError(t, db.Model(&models.Location{}).Where("type = ?", models.LocationTypeStart).Count(&starts).Error)
	assert.EqualValues(t, 2, starts)

	var guesses int64
	require.NoError(t, db.Model(&models.Location{}).Where("type = ?", models.LocationTypeGuess).Count(&guesses).Error)
	assert.EqualValues(t, 0, guesses)

	// Map, user and game steps stay committed.
	var g models.Game
	require.NoError(t, db.Where("game = ?", sub.Game).First(&g).Error)
}

func TestProcessAcceptsOverRangeGuessLongitude(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, testToken)
	s := NewResultService(db)

	sub := validSubmission()
	sub.Guesses = []PositionInput{{Lat: 10, Lng: 200}}

	require.NoError(t, s.process(sub))

	var guess models.Location
	require.NoError(t, db.Where("type = ?", models.LocationTypeGuess).First(&guess).Error)
	assert.Equal(t, 200.0, guess.Lng)
}

func TestProcessDifferentMapsSameGameID(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, testToken)
	s := NewResultService(db)

	require.NoError(t, s.process(validSubmission()))

	other := validSubmission()
	other.Map = "m2"
	other.MapName = "Rural Roads"
	require.NoError(t, s.process(other))

	// (game, token, map) is the game key: a different map is a new row.
	var games int64
	require.NoError(t, db.Model(&models.Game{}).Count(&games).Error)
	assert.EqualValues(t, 2, games)
}

// services/result_service.go
package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"georound-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ResultService struct {
	DB *gorm.DB
}

func NewResultService(db *gorm.DB) *ResultService {
	return &ResultService{DB: db}
}

// RecordResult handles a completed-game submission. Four writes run strictly
// in order — map stats, user stats, game metadata, per-round locations — each
// fallible on its own, with no cross-step rollback. A failing step aborts the
// rest but leaves earlier steps committed; every step is an upsert so a
// client retry converges instead of double-counting rows.
func (s *ResultService) RecordResult(c *fiber.Ctx) error {
	var in ResultSubmissionInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false})
	}

	sub, verr := ValidateResultSubmission(in)
	if verr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": verr.Message,
		})
	}

	if err := s.process(sub); err != nil {
		return failResult(c, err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"token":      sub.Token,
		"game":       sub.Game,
		"map":        sub.Map,
		"mapName":    sub.MapName,
		"roundCount": sub.RoundCount,
		"moving":     sub.Moving,
		"zooming":    sub.Zooming,
		"rotating":   sub.Rotating,
		"timeLimit":  sub.TimeLimit,
		"score":      sub.Score,
		"distance":   sub.Distance,
		"time":       sub.Time,
		"userId":     sub.UserID,
		"userNick":   sub.UserNick,
		"rounds":     sub.Rounds,
		"guesses":    sub.Guesses,
	})
}

func failResult(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
	})
}

// process runs the four writes in order. The first failure aborts the rest;
// already-committed steps stay committed.
func (s *ResultService) process(sub *ResultSubmission) error {
	if err := s.recordMap(sub); err != nil {
		return err
	}
	if err := s.recordUser(sub); err != nil {
		return err
	}
	if err := s.recordGame(sub); err != nil {
		return err
	}
	return s.recordLocations(sub)
}

// recordMap upserts the map row; a repeat play bumps times_played. Runs
// before the token check, so the counter moves even for submissions that
// fail auth one step later.
func (s *ResultService) recordMap(sub *ResultSubmission) error {
	m := models.Map{
		ID:          uuid.NewString(),
		Map:         sub.Map,
		MapName:     sub.MapName,
		Slug:        slug.Make(sub.MapName),
		TimesPlayed: 1,
	}
	err := s.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "map"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"times_played": gorm.Expr("times_played + 1"),
		}),
	}).Create(&m).Error
	if err != nil {
		log.Printf("[RESULT] map upsert failed (map=%s): %v", sub.Map, err)
		return ErrStoreFailure
	}
	return nil
}

// recordUser bumps activity counters and overwrites the last-seen in-game
// identity. Zero rows affected means the token is unknown — the remaining
// steps never run.
func (s *ResultService) recordUser(sub *ResultSubmission) error {
	res := s.DB.Model(&models.User{}).
		Where("user_token = ?", sub.Token).
		Updates(map[string]interface{}{
			"last_request_at": time.Now(),
			"request_count":   gorm.Expr("request_count + 1"),
			"games_played":    gorm.Expr("games_played + 1"),
			"user_id":         sub.UserID,
			"user_nick":       sub.UserNick,
		})
	if res.Error != nil {
		log.Printf("[RESULT] user update failed: %v", res.Error)
		return ErrStoreFailure
	}
	if res.RowsAffected <= 0 {
		return errors.New("Invalid user token")
	}
	return nil
}

// recordGame upserts game metadata keyed by (game, user_token, map). On
// conflict only the elapsed time moves — config and score stay as first
// submitted.
func (s *ResultService) recordGame(sub *ResultSubmission) error {
	g := models.Game{
		ID:        uuid.NewString(),
		Game:      sub.Game,
		UserToken: sub.Token,
		Map:       sub.Map,
		UserID:    sub.UserID,
		UserNick:  sub.UserNick,
		Rounds:    sub.RoundCount,
		Moving:    sub.Moving,
		Zooming:   sub.Zooming,
		Rotating:  sub.Rotating,
		TimeLimit: sub.TimeLimit,
		Score:     sub.Score,
		Distance:  sub.Distance,
		Time:      sub.Time,
	}
	err := s.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "game"}, {Name: "user_token"}, {Name: "map"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"time": sub.Time,
		}),
	}).Create(&g).Error
	if err != nil {
		log.Printf("[RESULT] game upsert failed (game=%s): %v", sub.Game, err)
		return ErrStoreFailure
	}
	return nil
}

// recordLocations writes round start points and guesses, 1-based in input
// order. Each point is range-checked right before its write: a bad point
// aborts the remainder but keeps everything already written.
func (s *ResultService) recordLocations(sub *ResultSubmission) error {
	for i, pos := range sub.Rounds {
		if err := s.upsertRoundLocation(sub, i+1, models.LocationTypeStart, pos); err != nil {
			return err
		}
	}
	for i, pos := range sub.Guesses {
		if err := s.upsertRoundLocation(sub, i+1, models.LocationTypeGuess, pos); err != nil {
			return err
		}
	}
	return nil
}

func (s *ResultService) upsertRoundLocation(sub *ResultSubmission, round int, locType string, pos PositionInput) error {
	if verr := checkPosition(pos.Lat, pos.Lng); verr != nil {
		return fmt.Errorf("Invalid latitude or longitude, Lng: %v, Lat: %v", pos.Lng, pos.Lat)
	}

	loc := models.Location{
		ID:        uuid.NewString(),
		UserToken: sub.Token,
		Map:       sub.Map,
		Game:      sub.Game,
		Round:     round,
		Type:      locType,
		Lat:       pos.Lat,
		Lng:       pos.Lng,
	}
	err := s.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_token"}, {Name: "map"}, {Name: "game"}, {Name: "round"}, {Name: "type"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"lng": pos.Lng,
		}),
	}).Create(&loc).Error
	if err != nil {
		log.Printf("[RESULT] location upsert failed (game=%s, round=%d, type=%s): %v",
			sub.Game, round, locType, err)
		return ErrStoreFailure
	}
	return nil
}

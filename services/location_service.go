// services/location_service.go
package services

import (
	"errors"
	"log"
	"time"

	"georound-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvalidToken = errors.New("Invalid token")
	ErrStoreFailure = errors.New("Database error")
)

type LocationService struct {
	DB *gorm.DB
}

func NewLocationService(db *gorm.DB) *LocationService {
	return &LocationService{DB: db}
}

// RecordLocation handles a point report: validate, bump the user's activity
// counters, geofence-dedup travel/bookmark points, insert.
func (s *LocationService) RecordLocation(c *fiber.Ctx) error {
	var in LocationReportInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false})
	}

	report, verr := ValidateLocationReport(in)
	if verr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": verr.Message,
		})
	}

	// A geofenced duplicate is still a success; the envelope echoes the
	// input either way, no extra fields.
	_, err := s.recordPoint(report)
	if err != nil {
		if errors.Is(err, ErrInvalidToken) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Invalid token",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"token":    report.Token,
		"lat":      report.Lat,
		"lng":      report.Lng,
		"map":      report.Map,
		"game":     report.Game,
		"round":    report.Round,
		"type":     report.Type,
		"location": report.Location,
	})
}

// recordPoint runs the core pipeline for one validated report. The activity
// update doubles as the token check: zero rows affected means the token is
// unknown and nothing else runs. Returns duplicate=true when a same-type
// point already sits inside the geofence (no row written).
func (s *LocationService) recordPoint(report *LocationReport) (bool, error) {
	res := s.DB.Model(&models.User{}).
		Where("user_token = ?", report.Token).
		Updates(map[string]interface{}{
			"last_request_at": time.Now(),
			"request_count":   gorm.Expr("request_count + 1"),
		})
	if res.Error != nil {
		log.Printf("[LOCATION] user activity update failed: %v", res.Error)
		return false, ErrStoreFailure
	}
	if res.RowsAffected <= 0 {
		return false, ErrInvalidToken
	}

	if report.Type == models.LocationTypeTravel || report.Type == models.LocationTypeBookmark {
		radius := models.TravelDedupRadius
		if report.Type == models.LocationTypeBookmark {
			radius = models.BookmarkDedupRadius
		}
		box := GetBoundingBox(report.Lat, report.Lng, radius)

		var nearby int64
		err := s.DB.Model(&models.Location{}).
			Where("user_token = ? AND lat > ? AND lat < ? AND lng > ? AND lng < ? AND type = ?",
				report.Token, box.MinLat, box.MaxLat, box.MinLng, box.MaxLng, report.Type).
			Count(&nearby).Error
		if err != nil {
			log.Printf("[LOCATION] geofence lookup failed: %v", err)
			return false, ErrStoreFailure
		}
		if nearby > 0 {
			return true, nil
		}
	}

	loc := models.Location{
		ID:        uuid.NewString(),
		UserToken: report.Token,
		Map:       report.Map,
		Game:      report.Game,
		Round:     report.Round,
		Type:      report.Type,
		Lat:       report.Lat,
		Lng:       report.Lng,
		Location:  report.Location,
	}
	if err := s.DB.Create(&loc).Error; err != nil {
		log.Printf("[LOCATION] insert failed (token=%.8s…, type=%s): %v", report.Token, report.Type, err)
		return false, ErrStoreFailure
	}

	return false, nil
}

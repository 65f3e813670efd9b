package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"georound-backend/models"
	"georound-backend/utils"

	"gorm.io/gorm"
)

// LocationArchiver exports recently recorded points to R2 as GeoJSON so map
// activity survives any retention policy applied to the live table.
type LocationArchiver struct {
	DB *gorm.DB
}

func NewLocationArchiver(db *gorm.DB) *LocationArchiver {
	return &LocationArchiver{DB: db}
}

type geoJSONFeature struct {
	Type       string                 `json:"type"`
	Geometry   geoJSONPoint           `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

type geoJSONPoint struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"` // [lng, lat] per GeoJSON
}

type geoJSONCollection struct {
	Type     string           `json:"type"`
	Features []geoJSONFeature `json:"features"`
}

// SnapshotSince builds a FeatureCollection of points recorded after the
// cutoff and uploads it under archive/locations-YYYY-MM-DD.json.
func (a *LocationArchiver) SnapshotSince(cutoff time.Time) (int, error) {
	var locations []models.Location
	if err := a.DB.Where("created_at >= ?", cutoff).Order("created_at ASC").Find(&locations).Error; err != nil {
		return 0, fmt.Errorf("failed to load locations for archive: %w", err)
	}
	if len(locations) == 0 {
		return 0, nil
	}

	collection := geoJSONCollection{Type: "FeatureCollection", Features: make([]geoJSONFeature, 0, len(locations))}
	for _, loc := range locations {
		props := map[string]interface{}{
			"map":        loc.Map,
			"game":       loc.Game,
			"round":      loc.Round,
			"type":       loc.Type,
			"created_at": loc.CreatedAt.UTC().Format(time.RFC3339),
		}
		if loc.Location != nil {
			props["location"] = *loc.Location
		}
		collection.Features = append(collection.Features, geoJSONFeature{
			Type:       "Feature",
			Geometry:   geoJSONPoint{Type: "Point", Coordinates: [2]float64{loc.Lng, loc.Lat}},
			Properties: props,
		})
	}

	body, err := json.Marshal(collection)
	if err != nil {
		return 0, fmt.Errorf("failed to encode archive: %w", err)
	}

	key := fmt.Sprintf("archive/locations-%s.json", time.Now().UTC().Format("2006-01-02"))
	url, err := utils.UploadJSONToR2(key, body)
	if err != nil {
		return 0, err
	}

	log.Printf("[ARCHIVE] uploaded %d location(s) to %s", len(locations), url)
	return len(locations), nil
}

// PollLocations runs the snapshot on a fixed interval until ctx is cancelled.
func PollLocations(ctx context.Context, archiver *LocationArchiver, pollInterval time.Duration) {
	log.Println("Starting location archive polling...")

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Location archive polling stopped.")
			return
		case <-ticker.C:
			count, err := archiver.SnapshotSince(time.Now().UTC().Add(-24 * time.Hour))
			if err != nil {
				log.Printf("[ARCHIVE] snapshot failed: %v", err)
				continue
			}
			if count == 0 {
				log.Println("[ARCHIVE] no locations recorded in the last 24h, skipping upload")
			}
		}
	}
}

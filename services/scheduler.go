// services/scheduler.go
package services

import (
	"log"
	"time"

	"georound-backend/models"

	"github.com/go-co-op/gocron/v2"
)

func (s *ResultService) StartStatsScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	// Every hour: log play totals for the most active maps
	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(func() {
			var maps []models.Map
			err := s.DB.Order("times_played DESC").Limit(10).Find(&maps).Error
			if err != nil {
				log.Printf("[Scheduler] DB error: %v", err)
				return
			}

			var total int64
			for _, m := range maps {
				total += m.TimesPlayed
			}
			log.Printf("[Scheduler] top %d maps account for %d plays", len(maps), total)
			for _, m := range maps {
				log.Printf("[Scheduler]   %s (%s): %d plays", m.Map, m.MapName, m.TimesPlayed)
			}
		}),
	)
}

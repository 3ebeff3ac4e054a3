// services/scheduler.go
package services

import (
	"log"
	"time"

	"hackathon-management-system/models"

	"github.com/go-co-op/gocron/v2"
)

// StartLifecycleScheduler runs the periodic status transitions:
// scheduled publishes go live, and published hackathons whose end time has
// passed are marked completed. Finalization is never automatic.
func (s *HackathonService) StartLifecycleScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			now := time.Now()

			// Publish scheduled hackathons
			var due []models.Hackathon
			err := s.DB.Where("status = ? AND publish_schedule IS NOT NULL AND publish_schedule <= ?",
				models.HackathonStatusDraft, now).
				Find(&due).Error
			if err != nil {
				log.Printf("[Scheduler] DB error: %v", err)
				return
			}
			for _, h := range due {
				h.Status = models.HackathonStatusPublished
				h.PublishedAt = &now
				h.PublishSchedule = nil
				if err := s.DB.Save(&h).Error; err != nil {
					log.Printf("[Scheduler] Failed to publish hackathon %s: %v", h.ID, err)
				} else {
					log.Printf("[Scheduler] Auto-published hackathon: %s", h.EventName)
				}
			}

			// Complete published hackathons past their end time
			var ended []models.Hackathon
			err = s.DB.Where("status = ? AND end_time != ? AND end_time <= ?",
				models.HackathonStatusPublished, time.Time{}, now).
				Find(&ended).Error
			if err != nil {
				log.Printf("[Scheduler] DB error: %v", err)
				return
			}
			for _, h := range ended {
				h.Status = models.HackathonStatusCompleted
				if err := s.DB.Save(&h).Error; err != nil {
					log.Printf("[Scheduler] Failed to complete hackathon %s: %v", h.ID, err)
				} else {
					log.Printf("[Scheduler] Marked hackathon completed: %s", h.EventName)
				}
			}
		}),
	)
}

package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"lingualearn/internal/service"
)

// Scheduler runs periodic maintenance jobs
type Scheduler struct {
	scheduler   *gocron.Scheduler
	authService *service.AuthService
}

// NewScheduler creates a new maintenance scheduler
func NewScheduler(authService *service.AuthService) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler:   s,
		authService: authService,
	}
}

// Start begins running all scheduled jobs without blocking
func (s *Scheduler) Start() {
	// Hourly cleanup of expired sessions
	s.scheduler.Every(1).Hour().Do(s.cleanupSessions)
	s.scheduler.StartAsync()
	log.Println("Maintenance scheduler started")
}

// Stop terminates all scheduled jobs
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) cleanupSessions() {
	if err := s.authService.CleanupExpiredSessions(); err != nil {
		log.Printf("Session cleanup failed: %v", err)
	}
}

package cron

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/saikumarreddyappidi/Education/services"
)

// CronManager manages all scheduled cron jobs
type CronManager struct {
	cron          *cron.Cron
	recovery      *services.RecoveryService
	retentionDays int
}

// NewCronManager creates a new cron manager
func NewCronManager(recovery *services.RecoveryService, retentionDays int) *CronManager {
	// Create cron with seconds precision
	c := cron.New(cron.WithSeconds())

	return &CronManager{
		cron:          c,
		recovery:      recovery,
		retentionDays: retentionDays,
	}
}

// Start starts all cron jobs
func (m *CronManager) Start() error {
	log.Println("Starting cron jobs...")

	if err := m.registerJobs(); err != nil {
		return err
	}

	m.cron.Start()

	log.Println("Cron jobs started successfully")
	return nil
}

// Stop stops all cron jobs
func (m *CronManager) Stop() {
	log.Println("Stopping cron jobs...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Println("Cron jobs stopped")
}

// registerJobs registers all cron jobs with their schedules
func (m *CronManager) registerJobs() error {
	// Daily at 2 AM: prune expired recovery snapshots
	_, err := m.cron.AddFunc("0 0 2 * * *", func() {
		m.logJobStart("prune_recovery_snapshots")
		m.PruneRecoverySnapshots()
	})
	if err != nil {
		return err
	}

	log.Println("All cron jobs registered successfully")
	return nil
}

// logJobStart logs the start of a cron job
func (m *CronManager) logJobStart(jobName string) {
	log.Printf("[CRON] Starting job: %s at %s", jobName, time.Now().Format(time.RFC3339))
}

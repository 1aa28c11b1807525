package cron

import (
	"log"
	"time"
)

// PruneRecoverySnapshots deletes recovery snapshot files older than the
// configured retention window. Runs daily.
func (m *CronManager) PruneRecoverySnapshots() {
	jobName := "prune_recovery_snapshots"

	if m.recovery == nil || m.retentionDays <= 0 {
		log.Printf("[CRON] Skipped job: %s (recovery capture disabled)", jobName)
		return
	}

	age := time.Duration(m.retentionDays) * 24 * time.Hour
	removed, err := m.recovery.PruneOlderThan(age)
	if err != nil {
		log.Printf("[CRON] Error in job: %s - %v", jobName, err)
		return
	}

	log.Printf("[CRON] Completed job: %s - removed %d snapshots older than %d days",
		jobName, removed, m.retentionDays)
}

package services

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// RecoveryService persists raw request bodies to disk so work lost to a
// client crash can be recovered by hand. It is a best-effort sidecar: every
// failure is logged and swallowed, never surfaced to the primary operation.
type RecoveryService struct {
	dir string
}

// RecoveryRecord is one captured request dump.
type RecoveryRecord struct {
	Filename  string          `json:"filename"`
	Method    string          `json:"method"`
	URL       string          `json:"url"`
	Body      json.RawMessage `json:"body"`
	UserID    uint            `json:"userId"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewRecoveryService creates the recovery directory if needed.
func NewRecoveryService(dir string) (*RecoveryService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create recovery directory: %w", err)
	}
	return &RecoveryService{dir: dir}, nil
}

// Capture writes one request body dump, keyed by user, endpoint and time.
// Errors are logged, never returned.
func (s *RecoveryService) Capture(userID uint, method, url string, body []byte) {
	record := RecoveryRecord{
		Method:    method,
		URL:       url,
		Body:      json.RawMessage(body),
		UserID:    userID,
		Timestamp: time.Now().UTC(),
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		log.Println("recovery: failed to encode request dump:", err)
		return
	}

	name := fmt.Sprintf("%d_%s_%s.json",
		userID,
		sanitizeEndpoint(url),
		record.Timestamp.Format("2006-01-02T15-04-05.000000000"),
	)

	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		log.Println("recovery: failed to write request dump:", err)
	}
}

// ListForUser returns every dump belonging to the user, unreadable files
// skipped.
func (s *RecoveryService) ListForUser(userID uint) ([]RecoveryRecord, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RecoveryRecord{}, nil
		}
		return nil, err
	}

	prefix := fmt.Sprintf("%d_", userID)
	records := []RecoveryRecord{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			log.Println("recovery: failed to read dump:", err)
			continue
		}
		var record RecoveryRecord
		if err := json.Unmarshal(data, &record); err != nil {
			log.Println("recovery: failed to decode dump:", err)
			continue
		}
		record.Filename = entry.Name()
		records = append(records, record)
	}
	return records, nil
}

// Delete removes one dump. Only the owning user's files may be deleted.
func (s *RecoveryService) Delete(userID uint, filename string) error {
	filename = filepath.Base(filename) // no path traversal
	if !strings.HasPrefix(filename, fmt.Sprintf("%d_", userID)) {
		return ErrForbidden
	}

	path := filepath.Join(s.dir, filename)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return ErrRecoveryFileNotFound
		}
		return err
	}
	return os.Remove(path)
}

// PruneOlderThan removes dumps whose modification time predates the cutoff and
// returns how many were removed.
func (s *RecoveryService) PruneOlderThan(age time.Duration) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	cutoff := time.Now().Add(-age)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
				log.Println("recovery: failed to prune dump:", err)
				continue
			}
			removed++
		}
	}
	return removed, nil
}

func sanitizeEndpoint(url string) string {
	return strings.ReplaceAll(strings.Trim(url, "/"), "/", "_")
}

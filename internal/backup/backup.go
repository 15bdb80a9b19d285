// internal/backup/backup.go

// Package backup snapshots live dataset files before they are overwritten
// and restores them when a persist goes wrong. Snapshots are grouped in
// per-day buckets under the backup root:
//
//	backups/20250115/cpu_data_20250115_093042.json
//
// Retention works on whole buckets; bucket names sort lexicographically in
// date order, so cleanup is a string comparison.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hwcatalog/harvester/internal/logging"
)

const (
	bucketLayout = "20060102"
	stampLayout  = "20060102_150405"
)

// Manager creates, restores and expires dataset snapshots.
type Manager struct {
	root          string
	retentionDays int
	log           logging.Logger

	// now is swapped out by tests.
	now func() time.Time

	// bucketMu serializes bucket directory creation when categories run
	// in parallel.
	bucketMu sync.Mutex
}

// New builds a Manager rooted at dir, keeping retentionDays of buckets.
func New(dir string, retentionDays int, log logging.Logger) *Manager {
	return &Manager{
		root:          dir,
		retentionDays: retentionDays,
		log:           log,
		now:           time.Now,
	}
}

// Backup snapshots the file into today's bucket and returns the snapshot
// path. A missing source file is a first run: nothing to snapshot, empty
// path, no error.
func (m *Manager) Backup(path string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to open %s for backup: %w", path, err)
	}
	defer src.Close()

	now := m.now()
	bucket := filepath.Join(m.root, now.Format(bucketLayout))

	m.bucketMu.Lock()
	err = os.MkdirAll(bucket, 0o755)
	m.bucketMu.Unlock()
	if err != nil {
		return "", fmt.Errorf("failed to create backup bucket: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	dstPath := filepath.Join(bucket, fmt.Sprintf("%s_%s.json", stem, now.Format(stampLayout)))

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create backup file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dstPath)
		return "", fmt.Errorf("failed to copy backup: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(dstPath)
		return "", fmt.Errorf("failed to finish backup: %w", err)
	}

	m.log.Debugf("backed up %s to %s", path, dstPath)
	return dstPath, nil
}

// Restore copies a snapshot back over the live file.
func (m *Manager) Restore(snapshot, path string) error {
	data, err := os.ReadFile(snapshot)
	if err != nil {
		return fmt.Errorf("failed to read snapshot %s: %w", snapshot, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to restore %s: %w", path, err)
	}
	m.log.Warnf("restored %s from %s", path, snapshot)
	return nil
}

// Cleanup removes buckets older than the retention window and returns the
// removed bucket names.
func (m *Manager) Cleanup() ([]string, error) {
	entries, err := os.ReadDir(m.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list backup root: %w", err)
	}

	cutoff := m.now().AddDate(0, 0, -m.retentionDays).Format(bucketLayout)

	var removed []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || !isBucketName(name) {
			continue
		}
		if name >= cutoff {
			continue
		}
		if err := os.RemoveAll(filepath.Join(m.root, name)); err != nil {
			return removed, fmt.Errorf("failed to remove bucket %s: %w", name, err)
		}
		removed = append(removed, name)
	}

	sort.Strings(removed)
	if len(removed) > 0 {
		m.log.Infof("removed %d expired backup bucket(s)", len(removed))
	}
	return removed, nil
}

func isBucketName(name string) bool {
	if len(name) != len(bucketLayout) {
		return false
	}
	_, err := time.Parse(bucketLayout, name)
	return err == nil
}

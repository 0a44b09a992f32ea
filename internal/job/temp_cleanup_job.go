package job

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// TempCleanupJob removes staging files left behind by uploads that were
// interrupted before their deferred cleanup could run (crash, SIGKILL).
type TempCleanupJob struct {
	dir    string
	maxAge time.Duration
}

func NewTempCleanupJob(dir string, maxAge time.Duration) *TempCleanupJob {
	return &TempCleanupJob{dir: dir, maxAge: maxAge}
}

func (j *TempCleanupJob) Name() string {
	return "temp_cleanup"
}

func (j *TempCleanupJob) Run(ctx context.Context) error {
	if j.dir == "" {
		return nil
	}
	maxAge := j.maxAge
	if maxAge <= 0 {
		maxAge = 24 * time.Hour
	}
	cutoff := time.Now().Add(-maxAge)
	entries, err := os.ReadDir(j.dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "plantdex-upload-") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			_ = os.Remove(filepath.Join(j.dir, entry.Name()))
		}
	}
	return nil
}

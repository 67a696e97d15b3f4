package worker

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/deckfetch/api/internal/service"
)

// Sweeper deletes expired output documents and stale terminal job records
// on a fixed interval. Sweep errors are logged and never stop the timer.
type Sweeper struct {
	convertService *service.ConvertService
	outputDir      string
	interval       time.Duration
	fileMaxAge     time.Duration
	jobMaxAge      time.Duration
}

// NewSweeper creates a retention sweeper over the given output directory.
func NewSweeper(convertService *service.ConvertService, outputDir string, interval, fileMaxAge, jobMaxAge time.Duration) *Sweeper {
	return &Sweeper{
		convertService: convertService,
		outputDir:      outputDir,
		interval:       interval,
		fileMaxAge:     fileMaxAge,
		jobMaxAge:      jobMaxAge,
	}
}

// Run sweeps on the configured interval until ctx is canceled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweepOnce(time.Now())
		}
	}
}

func (s *Sweeper) sweepOnce(now time.Time) {
	s.sweepFiles(now)
	s.sweepJobs(now)
}

// sweepFiles removes output documents whose last modification is older
// than the file age threshold. Files at or under the threshold are never
// touched.
func (s *Sweeper) sweepFiles(now time.Time) {
	entries, err := os.ReadDir(s.outputDir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Sweep: failed to list %s: %v", s.outputDir, err)
		}
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			log.Printf("Sweep: failed to stat %s: %v", entry.Name(), err)
			continue
		}
		if now.Sub(info.ModTime()) <= s.fileMaxAge {
			continue
		}
		path := filepath.Join(s.outputDir, entry.Name())
		if err := os.Remove(path); err != nil {
			log.Printf("Sweep: failed to remove %s: %v", path, err)
			continue
		}
		log.Printf("Sweep: removed expired file %s", path)
	}
}

// sweepJobs drops terminal job records that have not been updated within
// the job age threshold. Running jobs are never removed.
func (s *Sweeper) sweepJobs(now time.Time) {
	for _, job := range s.convertService.Jobs() {
		if !job.Status.IsTerminal() {
			continue
		}
		if now.Sub(job.UpdatedAt) <= s.jobMaxAge {
			continue
		}
		s.convertService.DeleteJob(job.ID)
		log.Printf("Sweep: removed expired job %s", job.ID)
	}
}

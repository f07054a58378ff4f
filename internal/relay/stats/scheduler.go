// Package stats periodically measures the images root and publishes the
// totals as Prometheus gauges.
package stats

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/robfig/cron/v3"
	"github.com/storyboard-studio/storyboard-relay/internal/metrics"
	"go.uber.org/zap"
)

// Snapshot is the size of the images tree at one point in time.
type Snapshot struct {
	Projects int
	Files    int
	Bytes    int64
}

// Collect walks root: every directory directly under it is a project and
// every regular file inside a project counts as an image.
func Collect(root string) (Snapshot, error) {
	var snap Snapshot

	entries, err := os.ReadDir(root)
	if err != nil {
		return snap, fmt.Errorf("read images root: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		snap.Projects++

		files, err := os.ReadDir(filepath.Join(root, entry.Name()))
		if err != nil {
			return snap, fmt.Errorf("read project %s: %w", entry.Name(), err)
		}
		for _, f := range files {
			if !f.Type().IsRegular() {
				continue
			}
			info, err := f.Info()
			if err != nil {
				// removed between ReadDir and Info
				continue
			}
			snap.Files++
			snap.Bytes += info.Size()
		}
	}

	return snap, nil
}

type Scheduler struct {
	root   string
	spec   string
	logger *zap.Logger
	cron   *cron.Cron
}

func NewScheduler(root, spec string, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		root:   root,
		spec:   spec,
		logger: logger,
		cron:   cron.New(),
	}
}

// Start refreshes the gauges once, then on every tick of the schedule.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.Refresh); err != nil {
		return fmt.Errorf("schedule image stats %q: %w", s.spec, err)
	}

	s.Refresh()
	s.cron.Start()
	s.logger.Info("image stats scheduler started", zap.String("schedule", s.spec))
	return nil
}

// Stop stops the schedule and returns a context that is done once a running
// refresh has finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// Refresh collects a snapshot and publishes it.
func (s *Scheduler) Refresh() {
	snap, err := Collect(s.root)
	if err != nil {
		s.logger.Warn("collect image stats", zap.Error(err))
		return
	}

	metrics.ImageProjects.Set(float64(snap.Projects))
	metrics.ImageFiles.Set(float64(snap.Files))
	metrics.ImageBytes.Set(float64(snap.Bytes))
}

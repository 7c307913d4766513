package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"nms-extractor/feature/extract"
)

// Service persists run statistics and computes run-over-run diffs.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new report service and migrates the history schema.
func NewService(db *gorm.DB, logger *zap.Logger) (*Service, error) {
	if err := db.AutoMigrate(&Run{}, &CatalogStat{}); err != nil {
		return nil, fmt.Errorf("migrate history schema: %w", err)
	}
	return &Service{db: db, logger: logger}, nil
}

// Record stores a run's catalog counts and returns its diff against the
// previous recorded run.
func (s *Service) Record(summary *extract.Summary, version string) (*Diff, error) {
	previous, err := s.latestRun()
	if err != nil {
		return nil, err
	}

	run := Run{
		ID:         uuid.NewString(),
		Version:    version,
		TotalItems: summary.TotalItems,
		CreatedAt:  time.Now().UTC(),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&run).Error; err != nil {
			return err
		}
		for _, file := range summary.Files {
			stat := CatalogStat{RunID: run.ID, File: file.Name, Items: file.Items}
			if err := tx.Create(&stat).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("record run: %w", err)
	}
	s.logger.Info("run recorded",
		zap.String("run", run.ID),
		zap.String("version", version),
		zap.Int("items", run.TotalItems))

	return s.diff(run.ID, previous, summary)
}

// LatestDiff diffs the two most recent recorded runs.
func (s *Service) LatestDiff() (*Diff, error) {
	var runs []Run
	if err := s.db.Order("created_at desc").Limit(2).Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("load runs: %w", err)
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("no recorded runs")
	}

	current, err := s.statsFor(runs[0].ID)
	if err != nil {
		return nil, err
	}
	diff := &Diff{RunID: runs[0].ID}
	previous := map[string]int{}
	if len(runs) == 2 {
		diff.PreviousRunID = runs[1].ID
		previous, err = s.statsFor(runs[1].ID)
		if err != nil {
			return nil, err
		}
	}
	diff.Changed, diff.TotalDelta = deltas(previous, current)
	return diff, nil
}

func (s *Service) latestRun() (*Run, error) {
	var run Run
	err := s.db.Order("created_at desc").First(&run).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load previous run: %w", err)
	}
	return &run, nil
}

func (s *Service) statsFor(runID string) (map[string]int, error) {
	var stats []CatalogStat
	if err := s.db.Where("run_id = ?", runID).Find(&stats).Error; err != nil {
		return nil, fmt.Errorf("load stats for run %s: %w", runID, err)
	}
	counts := make(map[string]int, len(stats))
	for _, stat := range stats {
		counts[stat.File] = stat.Items
	}
	return counts, nil
}

func (s *Service) diff(runID string, previous *Run, summary *extract.Summary) (*Diff, error) {
	diff := &Diff{RunID: runID}
	previousCounts := map[string]int{}
	if previous != nil {
		diff.PreviousRunID = previous.ID
		var err error
		previousCounts, err = s.statsFor(previous.ID)
		if err != nil {
			return nil, err
		}
	}

	current := make(map[string]int, len(summary.Files))
	for _, file := range summary.Files {
		current[file.Name] = file.Items
	}
	diff.Changed, diff.TotalDelta = deltas(previousCounts, current)
	return diff, nil
}

// deltas lists per-file count changes between two runs, in file order.
func deltas(previous, current map[string]int) ([]CatalogDelta, int) {
	files := make(map[string]bool)
	for file := range previous {
		files[file] = true
	}
	for file := range current {
		files[file] = true
	}
	names := make([]string, 0, len(files))
	for file := range files {
		names = append(names, file)
	}
	sort.Strings(names)

	var changed []CatalogDelta
	total := 0
	for _, file := range names {
		before, after := previous[file], current[file]
		if before == after {
			continue
		}
		changed = append(changed, CatalogDelta{
			File:     file,
			Previous: before,
			Current:  after,
			Delta:    after - before,
		})
		total += after - before
	}
	return changed, total
}

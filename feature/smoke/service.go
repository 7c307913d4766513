package smoke

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"nms-extractor/feature/extract"
	"nms-extractor/feature/extract/models"
)

// ExpectedFiles lists every catalog file a complete run must produce.
func ExpectedFiles() []string {
	files := make([]string, 0, len(extract.CatalogOrder))
	for _, name := range extract.CatalogOrder {
		files = append(files, name+".json")
	}
	sort.Strings(files)
	return files
}

// Options selects which duplicate findings fail the check instead of
// warning.
type Options struct {
	StrictDuplicates          bool
	StrictCrossFileDuplicates bool
}

// Result collects the findings of one check.
type Result struct {
	Failures     []string
	Warnings     []string
	FilesChecked int
}

// OK reports whether the check passed.
func (r *Result) OK() bool {
	return len(r.Failures) == 0
}

// Service runs post-extraction smoke checks over a catalog directory.
type Service struct {
	dir string
	log *zap.Logger
}

// NewService builds a checker over the given catalog directory.
func NewService(dir string, log *zap.Logger) *Service {
	return &Service{dir: dir, log: log}
}

// Check validates the catalog directory. Duplicate ids warn by default and
// fail under the strict options; a missing directory always fails.
func (s *Service) Check(opts Options) (*Result, error) {
	result := &Result{}
	if opts.StrictDuplicates {
		opts.StrictCrossFileDuplicates = true
	}

	if _, err := os.Stat(s.dir); err != nil {
		return nil, fmt.Errorf("catalog directory missing: %w", err)
	}

	filesByID := make(map[string][]string)
	expected := ExpectedFiles()
	for _, filename := range expected {
		s.checkFile(filename, opts, result, filesByID)
	}
	result.FilesChecked = len(expected)

	s.reportCrossFileDuplicates(opts, result, filesByID)

	for _, failure := range result.Failures {
		s.log.Error("smoke check failed", zap.String("finding", failure))
	}
	for _, warning := range result.Warnings {
		s.log.Warn("smoke check warning", zap.String("finding", warning))
	}
	return result, nil
}

func (s *Service) checkFile(filename string, opts Options, result *Result, filesByID map[string][]string) {
	path := filepath.Join(s.dir, filename)
	data, err := os.ReadFile(path)
	if err != nil {
		result.Failures = append(result.Failures, filename+": file missing")
		return
	}

	var items []models.Item
	if err := json.Unmarshal(data, &items); err != nil {
		result.Failures = append(result.Failures, fmt.Sprintf("%s: invalid JSON (%v)", filename, err))
		return
	}

	seen := make(map[string]bool)
	duplicates := make(map[string]bool)
	for _, item := range items {
		id := item.ID()
		if id == "" {
			continue
		}
		if seen[id] {
			duplicates[id] = true
		}
		seen[id] = true
		if !contains(filesByID[id], filename) {
			filesByID[id] = append(filesByID[id], filename)
		}
	}

	if len(duplicates) > 0 {
		message := fmt.Sprintf("%s: duplicate Id values (%d): %s",
			filename, len(duplicates), preview(keys(duplicates), 10))
		if opts.StrictDuplicates {
			result.Failures = append(result.Failures, message)
		} else {
			result.Warnings = append(result.Warnings, message)
		}
	}
}

func (s *Service) reportCrossFileDuplicates(opts Options, result *Result, filesByID map[string][]string) {
	var crossed []string
	for id, files := range filesByID {
		if len(files) > 1 {
			sort.Strings(files)
			crossed = append(crossed, id+" ("+strings.Join(files, ", ")+")")
		}
	}
	if len(crossed) == 0 {
		return
	}
	sort.Strings(crossed)
	message := fmt.Sprintf("cross-file duplicate Id values (%d): %s", len(crossed), preview(crossed, 10))
	if opts.StrictCrossFileDuplicates {
		result.Failures = append(result.Failures, message)
	} else {
		result.Warnings = append(result.Warnings, message)
	}
}

func keys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func preview(values []string, limit int) string {
	if len(values) <= limit {
		return strings.Join(values, "; ")
	}
	return strings.Join(values[:limit], "; ") + " ..."
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}

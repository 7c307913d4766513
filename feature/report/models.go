package report

import "time"

// Run is one recorded extraction run.
type Run struct {
	ID         string `gorm:"primaryKey"`
	Version    string
	TotalItems int
	CreatedAt  time.Time
}

// CatalogStat is one catalog's item count within a run.
type CatalogStat struct {
	ID      uint   `gorm:"primaryKey;autoIncrement"`
	RunID   string `gorm:"index"`
	File    string
	Items   int
}

// CatalogDelta is the per-catalog difference between two runs.
type CatalogDelta struct {
	File     string `json:"file"`
	Previous int    `json:"previous"`
	Current  int    `json:"current"`
	Delta    int    `json:"delta"`
}

// Diff compares a run against the previous one.
type Diff struct {
	RunID         string         `json:"run_id"`
	PreviousRunID string         `json:"previous_run_id,omitempty"`
	Changed       []CatalogDelta `json:"changed"`
	TotalDelta    int            `json:"total_delta"`
}

// Package report records per-run catalog statistics in the history
// database and diffs a run against the one before it.
package report

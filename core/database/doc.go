// Package database opens the local SQLite database used to record per-run
// catalog statistics for the report command. The connection is optional:
// extraction proceeds without history when it cannot be opened.
package database

// Package models defines the record shapes shared by the table extractors
// and the enrichment pipeline.
package models

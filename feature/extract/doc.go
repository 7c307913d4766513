// Package extract turns the exported game tables into the final catalog
// files: per-table extraction, rule-based categorization, and an ordered
// enrichment and deduplication pipeline ending in globally unique item ids.
package extract

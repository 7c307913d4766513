// Package utils provides type conversion helpers for the open-shaped item
// records the enrichment passes operate on.
package utils

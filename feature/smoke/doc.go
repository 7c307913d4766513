// Package smoke validates a finished catalog directory: every expected
// file present and well-formed, and item ids unique within and across
// files.
package smoke

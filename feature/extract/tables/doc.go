// Package tables reads the game's source tables and emits normalized item
// records. Each extractor covers one table; shared reference lookups
// (product rows, item display names, reward effects) are memoized on the
// Context so repeated joins across extractors reuse the same data.
package tables

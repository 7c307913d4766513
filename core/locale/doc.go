// Package locale resolves the game's localization keys to display text.
//
// A Table is built once per run by merging the fixed list of English locale
// documents; later documents overwrite earlier keys. The Resolver layers the
// fallback chain on top of the table: literal lookup, curated overrides for
// keys the game ships without text, and a synthesized readable label derived
// from the key itself. Name-suffixed keys get title-casing with minor words
// kept lowercase, presentation markup is stripped, and control-prompt tokens
// are replaced with bracketed platform labels unless raw-token mode is on.
//
// For a fixed Table, platform, and mode, Translate is a pure function of its
// inputs; output snapshots are reproducible.
package locale

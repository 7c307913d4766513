package locale

import (
	"regexp"
	"strings"
)

// curatedOverrides supplies text for keys the game references but ships no
// localization entry for.
var curatedOverrides = Table{
	"UI_SPECIALS_SUB":     "Specials",
	"UI_UNCATEGORISED":    "Uncategorised",
	"TRA_BUYABLE_DEFAULT": "Trade Goods",
}

var tokenPattern = regexp.MustCompile(`FE_[A-Z0-9_]+`)

// Resolver resolves localization keys to display text with a fixed fallback
// chain. It is safe to copy and pure for fixed inputs.
type Resolver struct {
	table     Table
	overrides Table
	tokens    map[string]string
	rawTokens bool
}

// NewResolver builds a resolver for the given table and platform. When
// rawTokens is set, control-prompt tokens are left untouched in output text.
func NewResolver(table Table, platform string, rawTokens bool) *Resolver {
	return &Resolver{
		table:     table,
		overrides: curatedOverrides,
		tokens:    TokensForPlatform(platform),
		rawTokens: rawTokens,
	}
}

// Has reports whether key resolves through the table or the curated
// overrides.
func (r *Resolver) Has(key string) bool {
	if _, ok := r.table[key]; ok {
		return true
	}
	_, ok := r.overrides[key]
	return ok
}

// Translate resolves key to display text. The default is used when the key
// is absent from both the table and the curated overrides; passing the key
// itself as default reproduces the raw-key fallback.
func (r *Resolver) Translate(key, def string) string {
	text, ok := r.table[key]
	if !ok {
		text, ok = r.overrides[key]
	}
	if !ok {
		text = def
	}

	// A key that failed to resolve still reads like a key; synthesize a
	// readable label from its parts: TECH_FRAGMENT_NAME -> "Tech Fragment".
	if text == key && strings.Contains(key, "_") {
		text = readableLabel(key)
	}

	if strings.HasSuffix(key, "_NAME") {
		text = TitleCaseName(text)
	}

	text = StripMarkup(text)

	if !r.rawTokens {
		text = tokenPattern.ReplaceAllStringFunc(text, func(token string) string {
			if label, ok := r.tokens[token]; ok {
				return "[" + label + "]"
			}
			return token
		})
	}

	return text
}

// readableLabel derives a display label from a separator key: known suffixes
// removed, a generic leading UI namespace dropped, remaining words
// capitalized.
func readableLabel(key string) string {
	for _, suffix := range []string{"_NAME", "_DESC", "_SUBTITLE"} {
		key = strings.ReplaceAll(key, suffix, "")
	}
	words := strings.Split(key, "_")
	if len(words) > 1 && words[0] == "UI" {
		words = words[1:]
	}
	out := make([]string, 0, len(words))
	for _, word := range words {
		if word == "" {
			continue
		}
		out = append(out, capitalize(word))
	}
	return strings.Join(out, " ")
}

package tables

import (
	"strconv"
	"strings"
)

func numberedID(prefix string, n int) string {
	return prefix + "_" + strconv.Itoa(n)
}

// statDisplayName renders an internal stat-type constant as a readable
// label: listed prefixes removed, underscore-separated words capitalized.
func statDisplayName(statType string, stripPrefixes ...string) string {
	for _, prefix := range stripPrefixes {
		statType = strings.TrimPrefix(statType, prefix)
	}
	return titleWords(strings.ReplaceAll(statType, "_", " "))
}

// titleWords capitalizes the first letter of every word, lower-casing the
// rest.
func titleWords(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}

// isZeroValue reports whether a coerced scalar holds no data by numeric
// truthiness: zero numbers, false, and empty strings all count as zero.
func isZeroValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case int:
		return t == 0
	case float64:
		return t == 0
	}
	return false
}

package locale

import (
	"regexp"
	"strings"
)

// Words kept lowercase in title case (articles, conjunctions, short
// prepositions) except at the first or last position.
var lowercaseWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true, "but": true,
	"of": true, "in": true, "on": true, "at": true, "to": true, "for": true,
	"with": true, "by": true, "as": true, "from": true, "into": true,
	"onto": true, "upon": true, "nor": true, "so": true, "yet": true,
}

var markupPattern = regexp.MustCompile(`<[^>]*>`)

// StripMarkup removes presentation markup tags from localized text,
// e.g. "<TECHNOLOGY>freighter's emergency log<>" -> "freighter's emergency log".
func StripMarkup(text string) string {
	if text == "" {
		return text
	}
	return markupPattern.ReplaceAllString(text, "")
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	runes := []rune(strings.ToLower(word))
	runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
	return string(runes)
}

func capitalizeWord(word string, force bool) string {
	// Single-quoted words capitalize the first letter inside the quotes,
	// 'apple' -> 'Apple'.
	if len(word) >= 3 && strings.HasPrefix(word, "'") && strings.HasSuffix(word, "'") {
		inner := word[1 : len(word)-1]
		if force {
			return "'" + capitalize(inner) + "'"
		}
		return "'" + strings.ToLower(inner) + "'"
	}
	if force {
		return capitalize(word)
	}
	return strings.ToLower(word)
}

// TitleCaseName title-cases a display name keeping minor words lowercase,
// e.g. "CAKE OF GLASS" -> "Cake of Glass".
func TitleCaseName(s string) string {
	if strings.TrimSpace(s) == "" {
		return s
	}
	words := strings.Fields(s)
	out := make([]string, len(words))
	for i, word := range words {
		first := i == 0
		last := i == len(words)-1
		force := first || last || !lowercaseWords[strings.ToLower(word)]
		out[i] = capitalizeWord(word, force)
	}
	return strings.Join(out, " ")
}

package locale

// Platform identifiers for the control-prompt icon tables.
const (
	PlatformWin = "Win"
	PlatformPsn = "Psn"
	PlatformXbx = "Xbx"
	PlatformNsw = "Nsw"
)

// controllerTokens maps control-prompt tokens to human labels per platform.
// Tokens such as FE_ALT1 are prompt slots embedded in localized text; the
// game's action metadata does not provide a one-step token-to-button mapping,
// so the table is curated from known in-game defaults.
var controllerTokens = map[string]map[string]string{
	PlatformWin: {
		"FE_ALT1":   "E",
		"FE_SELECT": "Left Mouse Button",
		"FE_BACK":   "Esc",
	},
	PlatformPsn: {
		"FE_ALT1":   "Square",
		"FE_SELECT": "Cross",
		"FE_BACK":   "Circle",
	},
	PlatformXbx: {
		"FE_ALT1":   "X",
		"FE_SELECT": "A",
		"FE_BACK":   "B",
	},
	PlatformNsw: {
		"FE_ALT1":   "X",
		"FE_SELECT": "A",
		"FE_BACK":   "B",
	},
}

// TokensForPlatform returns the control-prompt label table for a platform,
// defaulting to the desktop table for unknown selectors.
func TokensForPlatform(platform string) map[string]string {
	if tokens, ok := controllerTokens[platform]; ok {
		return tokens
	}
	return controllerTokens[PlatformWin]
}

package mxml

import (
	"fmt"
	"strconv"
	"strings"
)

// Coerce converts a textual scalar into its natural type. Precedence:
// empty string, boolean, integer (no decimal separator, integral float),
// float, original string. It is total: parse failures return the input.
func Coerce(s string) any {
	if s == "" {
		return ""
	}
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	num, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	if !strings.Contains(s, ".") && num == float64(int64(num)) {
		return int(num)
	}
	return num
}

// CoerceProp reads and coerces a property in one step.
func CoerceProp(n *Node, name, def string) any {
	return Coerce(n.Prop(name, def))
}

// Colour converts an RGBA property node (R/G/B channels in 0..1) into an
// uppercase hex byte string. A missing node yields white.
func Colour(n *Node) string {
	if n == nil {
		return "FFFFFF"
	}
	channel := func(name string) int {
		f, err := strconv.ParseFloat(n.Prop(name, "1"), 64)
		if err != nil {
			f = 1
		}
		return int(f * 255)
	}
	return fmt.Sprintf("%02X%02X%02X", channel("R"), channel("G"), channel("B"))
}

// NormalizeIconPath maps a game texture path onto the extracted-texture
// layout: trimmed, backslashes to forward slashes, lower-cased.
func NormalizeIconPath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	return strings.ToLower(strings.ReplaceAll(path, "\\", "/"))
}

package analysis

import "strings"

const symbolMarker = "SYMBOL:"

// ExtractSymbol scans an analysis report for its SYMBOL line and returns the
// trading symbol with surrounding brackets stripped. It returns an empty
// string when no symbol line is present.
func ExtractSymbol(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, symbolMarker) {
			continue
		}
		symbol := strings.TrimSpace(strings.TrimPrefix(line, symbolMarker))
		symbol = strings.NewReplacer("[", "", "]", "").Replace(symbol)
		return strings.TrimSpace(symbol)
	}
	return ""
}

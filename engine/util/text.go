package util

// FitWidth cuts s to at most width runes, marking a cut with a trailing "~".
func FitWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "~"
}

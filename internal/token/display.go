package token

import "strings"

// #region display

const minDisplayWidth = 40

// FormatForDisplay wraps a CSM-1 token in a box-drawing frame. Every line
// is padded to the same width, at least minDisplayWidth runes of content.
func FormatForDisplay(token string) string {
	lines := strings.Split(token, "\n")

	width := minDisplayWidth
	for _, line := range lines {
		if n := len([]rune(line)); n > width {
			width = n
		}
	}

	var b strings.Builder
	b.WriteString("┌" + strings.Repeat("─", width+2) + "┐\n")
	for _, line := range lines {
		pad := width - len([]rune(line))
		b.WriteString("│ " + line + strings.Repeat(" ", pad) + " │\n")
	}
	b.WriteString("└" + strings.Repeat("─", width+2) + "┘")
	return b.String()
}

// #endregion display

// #region legend

// EmojiLegend returns the stable symbol glossary for token display.
func EmojiLegend() []LegendEntry {
	return []LegendEntry{
		{"🧠", "cognitive state"},
		{"💭", "emotional tone / affect"},
		{"🔋", "energy level"},
		{"⚡", "perceived urgency"},
		{"🩺", "body signals"},
		{"💊", "health (legacy)"},
		{"🧩", "cognitive load (legacy)"},
		{"🔇", "noise restricted / quiet preferred"},
		{"🔕", "silence required"},
		{"💰", "budget constraint"},
		{"🆓", "free resources only"},
		{"⏰", "time limited"},
		{"⏱️", "session length"},
		{"📅", "schedule constraint"},
		{"🚶", "mobility limited"},
		{"🌅", "morning preference"},
		{"🌙", "evening preference"},
		{PrivateMarker, "private, withheld"},
		{SharedMarker, "explicitly shared"},
	}
}

// #endregion legend

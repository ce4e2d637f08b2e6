package ui

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/cellbuf"
)

// overlayCenter composes overlay on top of base, centered, and returns a
// block of the same size as base. Cells outside the overlay keep the base
// content so the tree stays visible behind dialogs.
func overlayCenter(base, overlay string) string {
	width, height := lipgloss.Width(base), lipgloss.Height(base)
	if width <= 0 || height <= 0 || overlay == "" {
		return base
	}

	screen := cellbuf.NewScreen(io.Discard, width, height, &cellbuf.ScreenOptions{
		ShowCursor: false,
		AltScreen:  false,
	})
	writer := cellbuf.NewScreenWriter(screen)
	writer.PrintCropAt(0, 0, toCRLF(base), "")

	lines := strings.Split(strings.ReplaceAll(overlay, "\r\n", "\n"), "\n")
	x := max((width-min(lipgloss.Width(overlay), width))/2, 0)
	y := max((height-len(lines))/2, 0)
	for i, line := range lines {
		if y+i >= height {
			break
		}
		if line != "" {
			writer.PrintCropAt(x, y+i, line, "")
		}
	}

	raw := cellbuf.Render(screen)
	_ = screen.Close()
	return strings.TrimSuffix(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
}

func toCRLF(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", "\r\n")
}

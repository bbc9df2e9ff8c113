package tui

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/nightskate/internal/core"
)

func TestRenderScreenText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab")
	s.SetColored(2, 0, 'c', core.ColorRed)
	s.SetColored(3, 0, 'd', core.ColorRed)
	s.DrawTextColored(0, 1, "night", core.PaletteColor(3))

	out := ansi.Strip(NewScreenRenderer(lipgloss.NewRenderer(io.Discard)).Render(s))
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0] != "abcd  " {
		t.Errorf("line 0 = %q", lines[0])
	}
	if lines[1] != "night " {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestRenderScreenEmpty(t *testing.T) {
	if out := RenderScreen(core.NewScreen(0, 0)); out != "" {
		t.Errorf("empty screen rendered %q", out)
	}
}

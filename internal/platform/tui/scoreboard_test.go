package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/nightskate/internal/storage"
)

type fakeRuns struct {
	top, recent []storage.Run
	stats       *storage.GameStats
	err         error
}

func (f *fakeRuns) TopRuns(string, int) ([]storage.Run, error)    { return f.top, f.err }
func (f *fakeRuns) RecentRuns(string, int) ([]storage.Run, error) { return f.recent, f.err }
func (f *fakeRuns) Stats(string) (*storage.GameStats, error)      { return f.stats, f.err }

func TestScoreboardViews(t *testing.T) {
	when := time.Date(2026, 3, 14, 21, 30, 0, 0, time.UTC)
	src := &fakeRuns{
		top:    []storage.Run{{Score: 900, Distance: 900.4, Cause: "traffic collision", CreatedAt: when}},
		recent: []storage.Run{{Score: 12, Distance: 12.9, Cause: "barrier collision", CreatedAt: when}},
		stats: &storage.GameStats{
			Runs: 2, HighScore: 900, AvgScore: 456, LongestRun: 900.4,
			Causes: map[string]int{"traffic collision": 1, "barrier collision": 1},
		},
	}

	m := NewScoreboardModel(src, "skate", "Night Skate", 120, 30)
	view := m.View()
	for _, want := range []string{"HIGH SCORES - Night Skate", "900", "traffic collision", "Stats", "Endings"} {
		if !strings.Contains(view, want) {
			t.Errorf("top view missing %q", want)
		}
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	view = m.View()
	if !strings.Contains(view, "RECENT RUNS") || !strings.Contains(view, "barrier collision") {
		t.Error("tab should switch to recent runs")
	}
}

func TestScoreboardEmptyAndErrors(t *testing.T) {
	m := NewScoreboardModel(&fakeRuns{}, "skate", "Night Skate", 60, 20)
	if !strings.Contains(m.View(), "No runs recorded yet") {
		t.Error("empty board should say so")
	}

	m = NewScoreboardModel(&fakeRuns{err: errors.New("locked")}, "skate", "Night Skate", 60, 20)
	if !strings.Contains(m.View(), "locked") {
		t.Error("load error should be shown")
	}

	m = NewScoreboardModel(nil, "skate", "Night Skate", 60, 20)
	if !strings.Contains(m.View(), "No runs recorded yet") {
		t.Error("board without storage should render as empty")
	}
}

func TestScoreboardQuit(t *testing.T) {
	m := NewScoreboardModel(&fakeRuns{}, "skate", "Night Skate", 80, 24)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil || !next.(ScoreboardModel).IsQuitting() {
		t.Error("q should quit")
	}
}

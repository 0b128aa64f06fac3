package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func simScreen(t *testing.T) (*Screen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	sim.SetSize(80, 24)
	t.Cleanup(sim.Fini)
	return &Screen{screen: sim}, sim
}

func TestDrawLinePlacesRunesInConsecutiveColumns(t *testing.T) {
	screen, sim := simScreen(t)
	r := NewRenderer(screen)

	// Multibyte runes must not leave column gaps.
	msg := "héllo"
	r.drawLine(msg, 0, tcell.StyleDefault)

	col := 0
	for _, want := range msg {
		got, _, _, _ := sim.GetContent(col, 0)
		if got != want {
			t.Errorf("column %d = %q, want %q", col, got, want)
		}
		col++
	}
	got, _, _, _ := sim.GetContent(col, 0)
	if got != ' ' {
		t.Errorf("column %d = %q, want blank", col, got)
	}
}

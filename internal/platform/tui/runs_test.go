package tui

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/storage"
)

func TestRunRows(t *testing.T) {
	rows := RunRows([]storage.Run{
		{ID: 2, Mode: "campaign", Slot: "1", World: 9, Level: 1, Won: true, Coins: 31},
		{ID: 1, Mode: "practice", World: 2, Level: 3, Coins: 4},
	})
	if len(rows) != 2 {
		t.Fatalf("rows = %d", len(rows))
	}
	if rows[0][3] != "9-1" || rows[0][4] != "WON" {
		t.Errorf("row 0 = %v", rows[0])
	}
	if rows[1][2] != "-" || rows[1][4] != "lost" || rows[1][6] != "-" {
		t.Errorf("row 1 = %v", rows[1])
	}
}

func TestRunsModelView(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	empty := NewRunsModel(store, 80, 24)
	if !strings.Contains(empty.View(), "No runs recorded yet") {
		t.Error("empty history should say so")
	}

	store.RecordRun(storage.Run{Mode: "campaign", Slot: "1", World: 2, Level: 1, Coins: 5})
	m := NewRunsModel(store, 80, 24)
	view := m.View()
	if !strings.Contains(view, "1 runs") || !strings.Contains(view, "2-1") {
		t.Errorf("view missing run data:\n%s", view)
	}
}

func TestRunsModelNilStore(t *testing.T) {
	m := NewRunsModel(nil, 80, 24)
	if len(m.runs) != 0 || m.loadErr != nil {
		t.Error("nil store should show an empty history")
	}
}

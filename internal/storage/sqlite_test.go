package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Parent directories are created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestLoadProgressDefaults(t *testing.T) {
	store := openTestStore(t)

	progress, err := store.LoadProgress()
	if err != nil {
		t.Fatalf("LoadProgress() failed: %v", err)
	}
	for _, id := range SlotIDs {
		if progress[id] != 1 {
			t.Errorf("slot %s = %d, want 1", id, progress[id])
		}
	}
}

func TestSaveSlotUpserts(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveSlot("2", 3); err != nil {
		t.Fatalf("SaveSlot() failed: %v", err)
	}
	if err := store.SaveSlot("2", 4); err != nil {
		t.Fatalf("SaveSlot() failed: %v", err)
	}

	progress, err := store.LoadProgress()
	if err != nil {
		t.Fatalf("LoadProgress() failed: %v", err)
	}
	if progress["2"] != 4 {
		t.Errorf("slot 2 = %d, want 4", progress["2"])
	}
	if progress["1"] != 1 || progress["3"] != 1 {
		t.Errorf("untouched slots changed: %v", progress)
	}

	if err := store.ClearSlot("2"); err != nil {
		t.Fatalf("ClearSlot() failed: %v", err)
	}
	progress, _ = store.LoadProgress()
	if progress["2"] != 1 {
		t.Errorf("cleared slot = %d, want 1", progress["2"])
	}
}

func TestLoadProgressCorrupt(t *testing.T) {
	store := openTestStore(t)
	store.SaveSlot("1", 5)
	store.SaveSlot("3", 0)

	progress, err := store.LoadProgress()
	if !errors.Is(err, ErrCorruptState) {
		t.Fatalf("err = %v, want ErrCorruptState", err)
	}
	// Good rows survive, the bad one falls back
	if progress["1"] != 5 || progress["3"] != 1 {
		t.Errorf("progress = %v", progress)
	}
}

func TestLoadProgressSkipsMalformedRows(t *testing.T) {
	store := openTestStore(t)
	_, err := store.db.Exec(`INSERT INTO save_slots (slot, world) VALUES ('1', 'abc'), ('2', 4), ('3', 2.5)`)
	if err != nil {
		t.Fatal(err)
	}

	progress, err := store.LoadProgress()
	if !errors.Is(err, ErrCorruptState) {
		t.Fatalf("err = %v, want ErrCorruptState", err)
	}
	want := map[string]int{"1": 1, "2": 4, "3": 1}
	for id, w := range want {
		if progress[id] != w {
			t.Errorf("progress[%s] = %d, want %d", id, progress[id], w)
		}
	}
}

func TestImportJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    map[string]int
		corrupt bool
	}{
		{"legacy file", `{"1": 1, "2": 3, "3": 9}`, map[string]int{"1": 1, "2": 3, "3": 9}, false},
		{"partial with unknown key", `{"2": 2, "7": 4}`, map[string]int{"2": 2}, false},
		{"not json", `slot one = 3`, nil, true},
		{"zero world", `{"1": 0}`, nil, true},
		{"wrong type", `{"1": "three"}`, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := openTestStore(t)
			path := filepath.Join(t.TempDir(), "saves.json")
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}

			got, err := store.ImportJSON(path)
			if tt.corrupt {
				if !errors.Is(err, ErrCorruptState) {
					t.Fatalf("err = %v, want ErrCorruptState", err)
				}
				// Nothing written
				progress, _ := store.LoadProgress()
				for _, id := range SlotIDs {
					if progress[id] != 1 {
						t.Errorf("slot %s = %d after failed import", id, progress[id])
					}
				}
				return
			}
			if err != nil {
				t.Fatalf("ImportJSON() failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Errorf("imported %v, want %v", got, tt.want)
			}
			progress, _ := store.LoadProgress()
			for id, w := range tt.want {
				if progress[id] != w {
					t.Errorf("slot %s = %d, want %d", id, progress[id], w)
				}
			}
		})
	}
}

func TestImportJSONMissingFile(t *testing.T) {
	store := openTestStore(t)
	_, err := store.ImportJSON(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil || errors.Is(err, ErrCorruptState) {
		t.Errorf("err = %v, want a read error", err)
	}
}

func TestRunsAndStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", stats)
	}

	runs := []Run{
		{Mode: "campaign", Slot: "1", World: 2, Level: 3, Coins: 12},
		{Mode: "campaign", Slot: "2", World: 9, Level: 1, Won: true, Coins: 40},
		{Mode: "practice", World: 4, Level: 4, Coins: 3},
	}
	for _, r := range runs {
		if _, err := store.RecordRun(r); err != nil {
			t.Fatalf("RecordRun() failed: %v", err)
		}
	}

	recent, err := store.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("got %d runs, want 2", len(recent))
	}
	// Newest first
	if recent[0].Mode != "practice" || recent[1].Slot != "2" || !recent[1].Won {
		t.Errorf("recent = %+v", recent)
	}

	stats, err = store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 3 || stats.Wins != 1 || stats.BestCoins != 40 {
		t.Errorf("stats = %+v", stats)
	}
}

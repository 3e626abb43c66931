package game

import (
	"slices"
	"testing"
	"time"

	"github.com/gonewx/riverbank/pkg/config"
)

func TestCatchJournalRecord(t *testing.T) {
	j := NewCatchJournal(nil)
	day := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		catch      CaughtFish
		wantRecord bool
	}{
		{CaughtFish{Name: "carp", Tier: 0, Size: 30, Biome: "grassland", CaughtAt: day}, true},
		{CaughtFish{Name: "carp", Tier: 0, Size: 25, Biome: "grassland", CaughtAt: day.Add(time.Hour)}, false},
		{CaughtFish{Name: "carp", Tier: 0, Size: 42.5, Biome: "forest", CaughtAt: day.Add(2 * time.Hour)}, true},
		{CaughtFish{Name: "pike", Tier: 2, Size: 80, Biome: "grassland", CaughtAt: day}, true},
	}
	for i, tt := range tests {
		if got := j.Record(tt.catch); got != tt.wantRecord {
			t.Errorf("Record #%d (%s %.1f) = %v, want %v", i, tt.catch.Name, tt.catch.Size, got, tt.wantRecord)
		}
	}

	carp, ok := j.Entry("carp")
	if !ok {
		t.Fatal("carp entry missing")
	}
	if carp.Count != 3 || carp.BestSize != 42.5 {
		t.Errorf("carp entry = %+v", carp)
	}
	if !carp.FirstCaughtAt.Equal(day) {
		t.Errorf("FirstCaughtAt = %v, want %v", carp.FirstCaughtAt, day)
	}
	if !slices.Equal(carp.Biomes, []string{"forest", "grassland"}) {
		t.Errorf("Biomes = %v", carp.Biomes)
	}
	if j.TotalCatches() != 4 {
		t.Errorf("TotalCatches = %d, want 4", j.TotalCatches())
	}

	entries := j.Entries()
	if len(entries) != 2 || entries[0].Name != "pike" || entries[1].Name != "carp" {
		t.Errorf("Entries should be sorted by tier desc, got %+v", entries)
	}

	if _, ok := j.Entry("sturgeon"); ok {
		t.Error("unexpected sturgeon entry")
	}
}

func TestCatchJournalEvents(t *testing.T) {
	j := NewCatchJournal(nil)
	events := j.Events()

	events.OnBaitConsumed(config.BaitDefinition{Name: "worm"})
	events.OnCatchCompleted(CaughtFish{Name: "trout", Size: 33})
	events.OnFishEscaped(config.FishCatch{Name: "salmon"})
	events.OnFishEscaped(config.FishCatch{Name: "salmon"})

	if j.TotalCatches() != 1 || j.TotalEscapes() != 2 || j.BaitsConsumed() != 1 {
		t.Errorf("totals = %d catches / %d escapes / %d baits",
			j.TotalCatches(), j.TotalEscapes(), j.BaitsConsumed())
	}
	if _, ok := j.Entry("salmon"); ok {
		t.Error("escaped fish must not enter the journal")
	}
}

func TestCatchJournalFromFishingSession(t *testing.T) {
	h := newFishingHarness(t, 21)
	j := NewCatchJournal(nil)
	h.manager.SetEvents(ChainEvents(h.log.events(), j.Events()))

	h.toHooked(t, "worm", "", "still pond")
	for i := 0; i < 600 && h.manager.Phase() == PhaseHooked; i++ {
		h.manager.Update(1.0 / 60)
	}
	if _, ok := h.manager.CleanUpAfterCatch(); !ok {
		t.Fatalf("expected a collected catch, phase %s", h.manager.Phase())
	}

	entry, ok := j.Entry("stonefish")
	if !ok || entry.Count != 1 || entry.BestSize != 5 {
		t.Errorf("journal entry = %+v, ok=%v", entry, ok)
	}
	if j.BaitsConsumed() != 1 {
		t.Errorf("BaitsConsumed = %d, want 1", j.BaitsConsumed())
	}
	if len(h.log.caught) != 1 {
		t.Error("chained subscriber should also see the catch")
	}
}

func TestCatchJournalSaveLoad(t *testing.T) {
	gm := openTestGdata(t, "riverbank_test_journal")
	day := time.Date(2026, 6, 2, 8, 30, 0, 0, time.UTC)

	j1 := NewCatchJournal(gm)
	j1.Record(CaughtFish{Name: "cod", Tier: 0, Size: 55.5, Biome: "snowfield", CaughtAt: day})
	j1.Record(CaughtFish{Name: "icefish", Tier: 2, Size: 21, Biome: "snowfield", CaughtAt: day})
	j1.RecordEscape()
	j1.RecordBaitConsumed()

	if err := j1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	j2 := NewCatchJournal(gm)
	if j2.TotalCatches() != 2 || j2.TotalEscapes() != 1 || j2.BaitsConsumed() != 1 {
		t.Errorf("loaded totals = %d / %d / %d", j2.TotalCatches(), j2.TotalEscapes(), j2.BaitsConsumed())
	}
	cod, ok := j2.Entry("cod")
	if !ok || cod.BestSize != 55.5 || !cod.FirstCaughtAt.Equal(day) {
		t.Errorf("loaded cod = %+v, ok=%v", cod, ok)
	}
	if len(j2.Entries()) != 2 {
		t.Errorf("expected 2 species, got %d", len(j2.Entries()))
	}
}

func TestCatchJournalLoadCorrupted(t *testing.T) {
	gm := openTestGdata(t, "riverbank_test_journal_corrupt")
	if err := gm.SaveObjectProp(journalObject, journalProperty, []byte("entries: {broken")); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	j := NewCatchJournal(gm)
	if j.TotalCatches() != 0 || len(j.Entries()) != 0 {
		t.Error("corrupted journal should start empty")
	}
}

func TestCatchJournalNilManagerSave(t *testing.T) {
	j := NewCatchJournal(nil)
	j.Record(CaughtFish{Name: "carp", Size: 30})
	if err := j.Save(); err != nil {
		t.Errorf("Save() in degraded mode should return nil, got %v", err)
	}
}

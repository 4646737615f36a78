package state

import (
	"sync"
	"testing"
)

func TestNewStoreStartsBooting(t *testing.T) {
	snap := NewStore().Snapshot()
	if snap.Phase != BOOTING {
		t.Fatalf("phase = %v", snap.Phase)
	}
	if !snap.StartedAt.IsZero() {
		t.Fatalf("started at should be zero before running")
	}
}

func TestSetPhaseRecordsStartOnce(t *testing.T) {
	store := NewStore()
	store.SetPhase(RUNNING)
	first := store.Snapshot().StartedAt
	if first.IsZero() {
		t.Fatal("expected start time")
	}
	store.SetPhase(STOPPED)
	store.SetPhase(RUNNING)
	if got := store.Snapshot().StartedAt; !got.Equal(first) {
		t.Fatalf("start time changed: %v -> %v", first, got)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	store := NewStore()
	store.UpdateRain(RainInfo{Theme: "dark", Columns: 3})
	snap := store.Snapshot()
	snap.Rain.Columns = 99
	if store.Snapshot().Rain.Columns != 3 {
		t.Fatal("snapshot mutation leaked into store")
	}
}

func TestDisplayErrorKeepsDisplayInfo(t *testing.T) {
	store := NewStore()
	store.UpdateDisplay(DisplayInfo{Kind: "fb", Width: 800, Height: 480})
	store.RecordDisplayError("present failed")
	snap := store.Snapshot()
	if snap.Display.Kind != "fb" || snap.Display.LastError != "present failed" {
		t.Fatalf("display = %+v", snap.Display)
	}
	store.RecordDisplayError("")
	if store.Snapshot().Display.LastError != "" {
		t.Fatal("error not cleared")
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{BOOTING, "booting"},
		{RUNNING, "running"},
		{STOPPED, "stopped"},
		{ERROR, "error"},
		{Phase(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.phase, got, tt.want)
		}
	}
}

func TestStoreConcurrentUpdates(t *testing.T) {
	store := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				store.UpdateRain(RainInfo{Frame: uint64(i*100 + j)})
				_ = store.Snapshot()
			}
		}(i)
	}
	wg.Wait()
}

package state

import (
	"sync"
	"time"
)

type Phase int

const (
	BOOTING Phase = iota
	RUNNING
	STOPPED
	ERROR
)

func (p Phase) String() string {
	switch p {
	case BOOTING:
		return "booting"
	case RUNNING:
		return "running"
	case STOPPED:
		return "stopped"
	case ERROR:
		return "error"
	default:
		return "unknown"
	}
}

type RainInfo struct {
	Theme   string
	Width   int
	Height  int
	Columns int
	Frame   uint64
	Hovered int
}

type NetworkInfo struct {
	Listen string
	URL    string
}

type DisplayInfo struct {
	Kind      string
	Width     int
	Height    int
	LastError string
}

type State struct {
	Phase     Phase
	StartedAt time.Time
	Rain      RainInfo
	Network   NetworkInfo
	Display   DisplayInfo
}

type Store struct {
	mu    sync.RWMutex
	state State
}

func NewStore() *Store {
	return &Store{state: State{Phase: BOOTING}}
}

func (store *Store) Snapshot() State {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.state
}

func (store *Store) SetPhase(phase Phase) {
	store.mu.Lock()
	if phase == RUNNING && store.state.StartedAt.IsZero() {
		store.state.StartedAt = time.Now()
	}
	store.state.Phase = phase
	store.mu.Unlock()
}

func (store *Store) UpdateRain(rain RainInfo) {
	store.mu.Lock()
	store.state.Rain = rain
	store.mu.Unlock()
}

func (store *Store) UpdateNetwork(network NetworkInfo) {
	store.mu.Lock()
	store.state.Network = network
	store.mu.Unlock()
}

func (store *Store) UpdateDisplay(display DisplayInfo) {
	store.mu.Lock()
	store.state.Display = display
	store.mu.Unlock()
}

// RecordDisplayError keeps the last present failure; an empty message clears it.
func (store *Store) RecordDisplayError(message string) {
	store.mu.Lock()
	store.state.Display.LastError = message
	store.mu.Unlock()
}

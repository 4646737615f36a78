package rain

import (
	"context"
	"errors"
	"image"
	"sync"
	"testing"
	"time"
)

type fakeHost struct {
	mu      sync.Mutex
	width   int
	height  int
	theme   string
	hovered []image.Rectangle
	subs    map[int]func(Event)
	nextID  int
	mounted Surface
	opacity float64
}

func newFakeHost(width, height int, theme string) *fakeHost {
	return &fakeHost{width: width, height: height, theme: theme, subs: map[int]func(Event){}}
}

func (h *fakeHost) Viewport() (int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.width, h.height
}

func (h *fakeHost) Theme() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.theme
}

func (h *fakeHost) HoveredRegions() []image.Rectangle {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]image.Rectangle(nil), h.hovered...)
}

func (h *fakeHost) Subscribe(fn func(Event)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	h.subs[id] = fn
	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}

func (h *fakeHost) MountBackground(s Surface, opacity float64) {
	h.mounted = s
	h.opacity = opacity
}

func (h *fakeHost) emit(ev Event) {
	h.mu.Lock()
	subs := make([]func(Event), 0, len(h.subs))
	for _, fn := range h.subs {
		subs = append(subs, fn)
	}
	h.mu.Unlock()
	for _, fn := range subs {
		fn(ev)
	}
}

func (h *fakeHost) subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *fakeHost) setTheme(theme string) {
	h.mu.Lock()
	h.theme = theme
	h.mu.Unlock()
	h.emit(Event{Kind: EventThemeChange})
}

func (h *fakeHost) resize(width, height int) {
	h.mu.Lock()
	h.width, h.height = width, height
	h.mu.Unlock()
	h.emit(Event{Kind: EventResize})
}

func (h *fakeHost) hover(rects ...image.Rectangle) {
	h.mu.Lock()
	h.hovered = rects
	h.mu.Unlock()
	h.emit(Event{Kind: EventPointerMove})
}

// countingScheduler lets a fixed number of frames through, then fails.
type countingScheduler struct {
	frames int
	calls  int
	before func(call int)
}

var errSchedulerDone = errors.New("scheduler exhausted")

func (s *countingScheduler) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.before != nil {
		s.before(s.calls)
	}
	s.calls++
	if s.calls > s.frames {
		return errSchedulerDone
	}
	return nil
}

// blockingScheduler releases one frame per tick received.
type blockingScheduler struct{ tick chan struct{} }

func (s *blockingScheduler) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.tick:
		return nil
	}
}

func startedEngine(t *testing.T, host *fakeHost, surface *recordingSurface, sched Scheduler) *Engine {
	t.Helper()
	e := NewEngine(host, surface, sched, DefaultOptions(), seededRNG())
	if err := e.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	return e
}

func TestEngineStartMountsAndSeeds(t *testing.T) {
	host := newFakeHost(1400, 900, "light")
	surface := &recordingSurface{}
	e := startedEngine(t, host, surface, nil)

	if host.mounted != surface {
		t.Fatal("surface was not mounted on the host")
	}
	if host.opacity != DefaultSurfaceOpacity {
		t.Errorf("opacity = %v, want %v", host.opacity, DefaultSurfaceOpacity)
	}
	if surface.width != 1400 || surface.height != 900 {
		t.Errorf("surface sized %dx%d", surface.width, surface.height)
	}
	st := e.Status()
	if st.Columns != 100 || st.Theme != ThemeLight {
		t.Errorf("unexpected status %+v", st)
	}
	if host.subscribers() != 1 {
		t.Errorf("expected one subscription, got %d", host.subscribers())
	}
	if err := e.Start(context.Background()); err == nil {
		t.Error("second start should fail")
	}
}

func TestEngineStartRequiresCollaborators(t *testing.T) {
	if err := NewEngine(nil, &recordingSurface{}, nil, Options{}, nil).Start(context.Background()); err == nil {
		t.Error("expected error without host")
	}
	if err := NewEngine(newFakeHost(10, 10, ""), nil, nil, Options{}, nil).Start(context.Background()); err == nil {
		t.Error("expected error without surface")
	}
}

func TestEngineResizeScenario(t *testing.T) {
	host := newFakeHost(1400, 900, "dark")
	surface := &recordingSurface{}
	e := startedEngine(t, host, surface, nil)
	for i := 0; i < 5; i++ {
		e.Tick()
	}
	before := e.Drops()

	host.resize(700, 900)

	st := e.Status()
	if st.Columns != 50 {
		t.Fatalf("columns = %d, want 50", st.Columns)
	}
	if surface.width != 700 {
		t.Errorf("surface width = %d, want 700", surface.width)
	}
	after := e.Drops()
	for i := range after {
		if after[i] != before[i] {
			t.Fatalf("column %d changed across resize: %v -> %v", i, before[i], after[i])
		}
	}
}

func TestEngineThemeChangeMidRun(t *testing.T) {
	host := newFakeHost(280, 900, "light")
	surface := &recordingSurface{}
	e := startedEngine(t, host, surface, nil)

	e.Tick()
	if surface.glyphs[0].Fill != lightPalette.Normal {
		t.Fatalf("expected light palette, got %+v", surface.glyphs[0].Fill)
	}
	before := e.Drops()

	host.setTheme("dark")

	after := e.Drops()
	for i := range after {
		if after[i] != before[i] {
			t.Fatalf("theme change altered column %d", i)
		}
	}
	e.Tick()
	if surface.fades[len(surface.fades)-1] != darkPalette.Fade {
		t.Error("next frame should fade with the dark palette")
	}
	for i, g := range surface.glyphs {
		if g.Fill != darkPalette.Normal {
			t.Fatalf("glyph %d fill = %+v, want dark normal", i, g.Fill)
		}
	}
}

func TestEngineHoverScenario(t *testing.T) {
	host := newFakeHost(1400, 900, "dark")
	e := startedEngine(t, host, &recordingSurface{}, nil)

	host.hover(image.Rect(100, 100, 200, 200))
	if e.Status().Hovered != 1 {
		t.Fatalf("expected one hovered rect")
	}
	var near, far bool
	e.View(func() {
		near = e.field.Highlighted(50, 50)
		far = e.field.Highlighted(500, 500)
	})
	if !near || far {
		t.Errorf("near=%v far=%v, want true/false", near, far)
	}

	host.hover()
	if e.Status().Hovered != 0 {
		t.Error("leaving all cards should clear the hovered set")
	}
}

func TestEngineRunLoopStopsOnSchedulerError(t *testing.T) {
	host := newFakeHost(280, 900, "dark")
	sched := &countingScheduler{frames: 3}
	e := startedEngine(t, host, &recordingSurface{}, sched)

	var frames []uint64
	e.OnFrame = func(frame uint64) { frames = append(frames, frame) }

	err := e.RunLoop(context.Background())
	if !errors.Is(err, errSchedulerDone) {
		t.Fatalf("RunLoop error = %v", err)
	}
	if len(frames) != 3 || frames[2] != 3 {
		t.Errorf("frames = %v", frames)
	}
}

func TestEngineRunLoopAppliesThemeBetweenFrames(t *testing.T) {
	host := newFakeHost(280, 900, "light")
	surface := &recordingSurface{}
	sched := &countingScheduler{frames: 4}
	sched.before = func(call int) {
		if call == 2 {
			host.setTheme("dark")
		}
	}
	e := startedEngine(t, host, surface, sched)

	var fills []Palette
	e.OnFrame = func(uint64) { fills = append(fills, PaletteFor(string(e.Status().Theme))) }
	_ = e.RunLoop(context.Background())

	if len(fills) != 4 {
		t.Fatalf("expected 4 frames, got %d", len(fills))
	}
	if fills[1].Theme != ThemeLight || fills[2].Theme != ThemeDark {
		t.Errorf("theme sequence = %v %v %v %v", fills[0].Theme, fills[1].Theme, fills[2].Theme, fills[3].Theme)
	}
	if surface.glyphs[0].Fill != darkPalette.Normal {
		t.Error("last frame should be drawn with the dark palette")
	}
}

func TestEngineStopEndsLoopAndUnsubscribes(t *testing.T) {
	host := newFakeHost(280, 900, "dark")
	sched := &blockingScheduler{tick: make(chan struct{})}
	e := startedEngine(t, host, &recordingSurface{}, sched)

	done := make(chan error, 1)
	go func() { done <- e.RunLoop(context.Background()) }()

	sched.tick <- struct{}{}
	sched.tick <- struct{}{}

	if err := e.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("RunLoop returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("RunLoop did not return after Stop")
	}
	if host.subscribers() != 0 {
		t.Error("Stop should drop the host subscription")
	}
	if e.Status().Running {
		t.Error("engine still reports running")
	}
	if err := e.Stop(); err != nil {
		t.Errorf("second stop: %v", err)
	}
	if err := e.RunLoop(context.Background()); err != nil {
		t.Errorf("RunLoop after Stop = %v, want nil", err)
	}
}

func TestEngineStartAfterStop(t *testing.T) {
	host := newFakeHost(280, 900, "dark")
	surface := &recordingSurface{}
	e := NewEngine(host, surface, &countingScheduler{}, Options{}, nil)
	if err := e.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if err := e.Start(context.Background()); err == nil {
		t.Fatal("Start after Stop should fail")
	}
	if host.subscribers() != 0 {
		t.Errorf("subscribers = %d, want 0", host.subscribers())
	}
	if host.mounted != nil {
		t.Error("a stopped engine must not mount its surface")
	}
}

func TestEngineRunLoopEndsOnContextCancel(t *testing.T) {
	host := newFakeHost(280, 900, "dark")
	e := startedEngine(t, host, &recordingSurface{}, &blockingScheduler{tick: make(chan struct{})})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.RunLoop(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("RunLoop returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("RunLoop did not return after cancel")
	}
}

func TestEngineRunLoopRequiresStart(t *testing.T) {
	e := NewEngine(newFakeHost(10, 10, ""), &recordingSurface{}, &countingScheduler{}, Options{}, nil)
	if err := e.RunLoop(context.Background()); err == nil {
		t.Error("expected error when RunLoop precedes Start")
	}
}

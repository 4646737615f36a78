package rain

import (
	"context"
	"errors"
	"image"
	"sync"
)

type EventKind int

const (
	EventResize EventKind = iota
	EventThemeChange
	EventPointerMove
	EventScroll
)

func (k EventKind) String() string {
	switch k {
	case EventResize:
		return "resize"
	case EventThemeChange:
		return "theme"
	case EventPointerMove:
		return "pointer"
	case EventScroll:
		return "scroll"
	default:
		return "unknown"
	}
}

// Event is a change notification emitted by the host.
type Event struct {
	Kind EventKind
}

// Host is the page the engine decorates. The engine only reads from it and
// never owns the hoverable elements.
type Host interface {
	Viewport() (width, height int)
	Theme() string
	HoveredRegions() []image.Rectangle
	Subscribe(fn func(Event)) (unsubscribe func())
	MountBackground(s Surface, opacity float64)
}

// Status is a point-in-time view of the engine.
type Status struct {
	Theme   Theme
	Width   int
	Height  int
	Columns int
	Frame   uint64
	Hovered int
	Running bool
}

// Engine drives a Field against a host page and a surface. Host callbacks,
// frames and external calls are serialised by a single mutex so each one runs
// to completion before the next starts.
type Engine struct {
	Logger interface {
		Infof(string, string, ...interface{})
		Errorf(string, string, ...interface{})
	}

	// OnFrame, when set, runs on the loop goroutine after every frame.
	OnFrame func(frame uint64)

	host      Host
	surface   Surface
	scheduler Scheduler
	opts      Options
	rng       RNG

	mu          sync.Mutex
	field       *Field
	frame       uint64
	started     bool
	stopped     bool
	running     bool
	unsubscribe func()
	cancel      context.CancelFunc
}

func NewEngine(host Host, surface Surface, scheduler Scheduler, opts Options, rng RNG) *Engine {
	return &Engine{host: host, surface: surface, scheduler: scheduler, opts: opts.withDefaults(), rng: rng}
}

// Start mounts the surface, seeds the columns from the viewport, resolves the
// palette from the current theme and subscribes to host changes.
func (e *Engine) Start(ctx context.Context) error {
	if e.host == nil {
		return errors.New("no host configured")
	}
	if e.surface == nil {
		return errors.New("no surface configured")
	}

	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return errors.New("engine stopped")
	}
	if e.started {
		e.mu.Unlock()
		return errors.New("engine already started")
	}
	e.started = true

	width, height := e.host.Viewport()
	e.surface.Resize(width, height)
	e.field = NewField(width, height, e.opts, e.rng)
	e.field.SetTheme(e.host.Theme())
	e.field.SetHovered(e.host.HoveredRegions())
	columns, theme := e.field.Columns(), e.field.Palette().Theme
	e.mu.Unlock()

	e.host.MountBackground(e.surface, e.opts.SurfaceOpacity)
	unsubscribe := e.host.Subscribe(e.handle)

	e.mu.Lock()
	if e.stopped {
		// Stop ran while subscribing and had nothing to release.
		e.mu.Unlock()
		unsubscribe()
		return errors.New("engine stopped")
	}
	e.unsubscribe = unsubscribe
	e.mu.Unlock()

	if e.Logger != nil {
		e.Logger.Infof("rain", "engine started, %dx%d, %d columns, theme=%s", width, height, columns, theme)
	}
	return nil
}

// Stop ends RunLoop and drops the host subscription. It is safe to call more
// than once.
func (e *Engine) Stop() error {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return nil
	}
	e.stopped = true
	unsubscribe := e.unsubscribe
	e.unsubscribe = nil
	cancel := e.cancel
	e.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	if cancel != nil {
		cancel()
	}
	if e.Logger != nil {
		e.Logger.Infof("rain", "engine stopped")
	}
	return nil
}

// RunLoop renders frames at the scheduler's pace until ctx is done or Stop is
// called. It returns nil on either, or the scheduler's error.
func (e *Engine) RunLoop(ctx context.Context) error {
	if e.scheduler == nil {
		return errors.New("no scheduler configured")
	}
	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	e.mu.Lock()
	if !e.started {
		e.mu.Unlock()
		return errors.New("engine not started")
	}
	if e.stopped {
		e.mu.Unlock()
		return nil
	}
	e.cancel = cancel
	e.running = true
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.running = false
		e.cancel = nil
		e.mu.Unlock()
	}()

	for {
		if err := e.scheduler.Wait(loopCtx); err != nil {
			if loopCtx.Err() != nil {
				return nil
			}
			return err
		}
		frame := e.Tick()
		if e.OnFrame != nil {
			e.OnFrame(frame)
		}
	}
}

// Tick renders one frame and returns its number.
func (e *Engine) Tick() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.field == nil {
		return e.frame
	}
	e.field.Step(e.surface)
	e.frame++
	return e.frame
}

func (e *Engine) handle(ev Event) {
	switch ev.Kind {
	case EventResize:
		e.Resize()
	case EventThemeChange:
		e.UpdatePalette()
	case EventPointerMove, EventScroll:
		e.RefreshHovered()
	}
}

// Resize re-reads the viewport and adapts the surface and columns to it.
func (e *Engine) Resize() {
	width, height := e.host.Viewport()

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.field == nil {
		return
	}
	before := e.field.Columns()
	e.surface.Resize(width, height)
	e.field.Resize(width, height)
	if e.Logger != nil && before != e.field.Columns() {
		e.Logger.Infof("rain", "resized to %dx%d, columns %d -> %d", width, height, before, e.field.Columns())
	}
}

// UpdatePalette re-reads the theme attribute. Drop positions are untouched.
func (e *Engine) UpdatePalette() {
	theme := e.host.Theme()

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.field == nil {
		return
	}
	e.field.SetTheme(theme)
	if e.Logger != nil {
		e.Logger.Infof("rain", "palette switched to %s", e.field.Palette().Theme)
	}
}

// RefreshHovered replaces the hovered rectangles with the host's current set.
func (e *Engine) RefreshHovered() {
	rects := e.host.HoveredRegions()

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.field == nil {
		return
	}
	e.field.SetHovered(rects)
}

// View runs fn while no frame or host update can touch the surface.
func (e *Engine) View(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn()
}

func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	st := Status{Frame: e.frame, Running: e.running}
	if e.field == nil {
		return st
	}
	st.Theme = e.field.Palette().Theme
	st.Width, st.Height = e.field.Size()
	st.Columns = e.field.Columns()
	st.Hovered = len(e.field.hovered)
	return st
}

// Drops returns a copy of the current drop positions.
func (e *Engine) Drops() []float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.field == nil {
		return nil
	}
	return e.field.Drops()
}

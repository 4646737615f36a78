package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"sync/atomic"

	"github.com/rook-computer/rainfield/internal/display"
	"github.com/rook-computer/rainfield/internal/page"
	"github.com/rook-computer/rainfield/internal/rain"
	"github.com/rook-computer/rainfield/internal/render"
	"github.com/rook-computer/rainfield/internal/state"
	"github.com/rook-computer/rainfield/internal/system"
	"github.com/rook-computer/rainfield/internal/web"
)

type App struct {
	Store     *state.Store
	Page      *page.Page
	Engine    *rain.Engine
	Scheduler rain.Scheduler
	Frames    *render.FrameRenderer
	Display   display.Display
	Web       web.Server
	Logger    Logger

	presentFailing bool

	exitOnce atomic.Bool
	exitCh   chan error
}

func New(store *state.Store, pg *page.Page, engine *rain.Engine, frames *render.FrameRenderer, disp display.Display, webServer web.Server) *App {
	return &App{Store: store, Page: pg, Engine: engine, Frames: frames, Display: disp, Web: webServer, Logger: NoopLogger{}, exitCh: make(chan error, 1)}
}

// Exit requests the app to stop running. Only the first call counts.
func (app *App) Exit(err error) {
	if app.exitCh == nil {
		return
	}
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

// Start brings up the web server and the rain engine, then renders frames
// until ctx is done or Exit is called. It returns the Exit error, nil on a
// plain shutdown.
func (app *App) Start(ctx context.Context) error {
	if app.exitCh == nil {
		app.exitCh = make(chan error, 1)
	}
	if app.Logger == nil {
		app.Logger = NoopLogger{}
	}
	if app.Engine == nil || app.Page == nil || app.Frames == nil || app.Store == nil {
		return errors.New("app is missing its engine, page, renderer or store")
	}
	app.Store.SetPhase(state.BOOTING)

	if app.Web != nil {
		if err := app.Web.Start(ctx); err != nil {
			app.Store.SetPhase(state.ERROR)
			return fmt.Errorf("web server: %w", err)
		}
		defer func() { _ = app.Web.Stop() }()
	}

	app.Engine.OnFrame = app.renderFrame
	if err := app.Engine.Start(ctx); err != nil {
		app.Store.SetPhase(state.ERROR)
		return fmt.Errorf("rain engine: %w", err)
	}
	unsubscribe := app.Page.Subscribe(app.relayout)
	defer unsubscribe()

	app.publishStatus()
	app.Store.SetPhase(state.RUNNING)
	app.Logger.Infof("app", "running")

	loopCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.Engine.RunLoop(loopCtx); err != nil {
			app.Logger.Errorf("app", "render loop: %v", err)
			app.Exit(err)
		}
	}()

	var err error
	select {
	case <-ctx.Done():
	case err = <-app.exitCh:
	}
	cancel()
	_ = app.Engine.Stop()
	wg.Wait()
	if s, ok := app.Scheduler.(interface{ Stop() }); ok {
		s.Stop()
	}

	app.Store.SetPhase(state.STOPPED)
	app.Logger.Infof("app", "stopped")
	return err
}

func (app *App) Stop() error {
	app.Exit(nil)
	return nil
}

// relayout reflows the cards when the viewport width changes.
func (app *App) relayout(ev rain.Event) {
	if ev.Kind != rain.EventResize {
		return
	}
	width, height := app.Page.Viewport()
	app.Page.SetCards(page.LayoutCards(app.Page.Cards(), width))
	app.Store.UpdateDisplay(withSize(app.Store.Snapshot().Display, width, height))
}

func (app *App) renderFrame(uint64) {
	var frame *image.RGBA
	app.Engine.View(func() {
		width, height := app.Page.Viewport()
		frame = app.Frames.Render(width, height, app.Page.Compose)
	})

	if app.Display != nil {
		if err := app.Display.Present(frame); err != nil {
			if !app.presentFailing {
				app.Logger.Errorf("display", "present failed: %v", err)
				app.Store.RecordDisplayError(err.Error())
			}
			app.presentFailing = true
		} else if app.presentFailing {
			app.Logger.Infof("display", "present recovered")
			app.Store.RecordDisplayError("")
			app.presentFailing = false
		}
	}
	app.publishStatus()
}

func (app *App) publishStatus() {
	st := app.Engine.Status()
	app.Store.UpdateRain(state.RainInfo{
		Theme:   string(st.Theme),
		Width:   st.Width,
		Height:  st.Height,
		Columns: st.Columns,
		Frame:   st.Frame,
		Hovered: st.Hovered,
	})
}

// TerminalEvents routes terminal input into the page the way a browser
// would deliver it.
func (app *App) TerminalEvents() display.TerminalEvents {
	return display.TerminalEvents{
		Resize:      app.Page.Resize,
		Pointer:     app.Page.MovePointer,
		Scroll:      func(dy int) { app.Page.ScrollBy(dy) },
		ToggleTheme: func() { app.toggleTheme("terminal") },
		Quit:        func() { app.Exit(nil) },
	}
}

// KeyHandlers binds the device hotkeys: F2 toggles the theme, F4 exits.
func (app *App) KeyHandlers() system.KeyHandlers {
	return system.KeyHandlers{
		system.KeyF2: func() { app.toggleTheme("F2") },
		system.KeyF4: func() {
			app.Logger.Infof("input", "F4 pressed: exiting")
			app.Exit(nil)
		},
	}
}

func (app *App) toggleTheme(source string) {
	theme := app.Page.ToggleTheme()
	app.Logger.Infof("input", "%s: theme -> %s", source, theme)
}

func withSize(info state.DisplayInfo, width, height int) state.DisplayInfo {
	info.Width, info.Height = width, height
	return info
}

package app

import (
	"fmt"
	"image"
	"image/color"
	"net/http"

	"github.com/rook-computer/rainfield/internal/config"
	"github.com/rook-computer/rainfield/internal/display"
	"github.com/rook-computer/rainfield/internal/page"
	"github.com/rook-computer/rainfield/internal/rain"
	"github.com/rook-computer/rainfield/internal/render"
	"github.com/rook-computer/rainfield/internal/state"
	"github.com/rook-computer/rainfield/internal/web"
)

// Options are the inputs to Build. Display, Logger, RNG and Scheduler may be
// nil.
type Options struct {
	Config     config.Config
	Display    display.Display
	Logger     Logger
	ControlURL string

	RNG       rain.RNG
	Scheduler rain.Scheduler

	// StaticDir replaces the embedded viewer when set.
	StaticDir string

	// Routes adds handlers to the web server's mux.
	Routes func(mux *http.ServeMux)
}

// Build wires the page, rain engine, renderer, status store and web server
// for one display.
func Build(opts Options) (*App, error) {
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = NoopLogger{}
	}
	disp := opts.Display
	if disp == nil {
		disp = display.NoopDisplay{}
	}

	width, height := viewportSize(cfg, disp.Bounds())
	logger.Infof("app", "viewport %dx%d, display=%s, theme=%s", width, height, cfg.Display, cfg.Theme)

	canvas := render.NewCanvas(render.CanvasOptions{
		GlyphSize:  cfg.GlyphSize,
		GlowRadius: rain.DefaultGlowRadius,
		FontPath:   cfg.FontPath,
	}, logger)
	rainOpts := rain.DefaultOptions()
	rainOpts.GlyphSize = cfg.GlyphSize
	rainOpts.Alphabet = canvas.FilterAlphabet(rainOpts.Alphabet)
	if n := len([]rune(rain.Alphabet)); len(rainOpts.Alphabet) < n {
		logger.Infof("app", "glyph font covers %d of %d alphabet runes", len(rainOpts.Alphabet), n)
	}

	textFont, err := render.LoadTextFont(nil)
	if err != nil {
		return nil, fmt.Errorf("load text font: %w", err)
	}
	frames := render.NewFrameRenderer(render.NewTextRenderer(textFont))
	frames.Logger = logger

	var qr image.Image
	if opts.ControlURL != "" {
		qr, err = render.ControlQRCode(opts.ControlURL, 256, color.Black, color.White, true)
		if err != nil {
			logger.Errorf("app", "qr code: %v", err)
		}
	}
	pg := page.New(width, height, cfg.Theme)
	pg.SetCards(page.LayoutCards(defaultCards(cfg, opts.ControlURL, qr, len(rainOpts.Alphabet)), width))

	rng := opts.RNG
	if rng == nil {
		rng = rain.StdRNG{}
	}
	scheduler := opts.Scheduler
	if scheduler == nil {
		scheduler = rain.NewTickerScheduler(cfg.FPS)
	}
	engine := rain.NewEngine(pg, canvas, scheduler, rainOpts, rng)
	engine.Logger = logger

	store := state.NewStore()
	store.UpdateDisplay(state.DisplayInfo{Kind: cfg.Display, Width: width, Height: height})
	store.UpdateNetwork(state.NetworkInfo{Listen: cfg.Server.ListenAddr, URL: opts.ControlURL})

	var server web.Server = &web.NoopServer{}
	if cfg.Server.Enabled() {
		srv := web.NewHTTPServer(cfg.Server.ListenAddr, web.APIV1Deps{Status: store, Page: pg, Frames: frames})
		srv.DevMode = cfg.Server.DevMode
		srv.Logger = logger
		srv.Routes = opts.Routes
		srv.StaticDir = opts.StaticDir
		server = srv
	}

	a := New(store, pg, engine, frames, disp, server)
	a.Logger = logger
	a.Scheduler = scheduler
	return a, nil
}

// viewportSize picks the configured size, then the display's, then the
// default logical canvas.
func viewportSize(cfg config.Config, bounds image.Rectangle) (int, int) {
	if cfg.Width > 0 && cfg.Height > 0 {
		return cfg.Width, cfg.Height
	}
	if !bounds.Empty() {
		return bounds.Dx(), bounds.Dy()
	}
	return render.CanvasWidth, render.CanvasHeight
}

func defaultCards(cfg config.Config, controlURL string, qr image.Image, glyphs int) []page.Card {
	control := page.Card{ID: "control", Title: "Control", Image: qr}
	if controlURL != "" {
		control.Lines = []string{"Scan or open", controlURL}
	} else {
		control.Lines = []string{"Web control disabled"}
	}
	return []page.Card{
		control,
		{ID: "keys", Title: "Keys", Lines: []string{"F2 / t   toggle theme", "F4 / q   exit", "wheel    scroll"}},
		{ID: "rain", Title: "Rain", Lines: []string{
			fmt.Sprintf("%dpx glyphs at %d fps", cfg.GlyphSize, cfg.FPS),
			fmt.Sprintf("%d glyphs in the alphabet", glyphs),
		}},
		{ID: "hover", Title: "Hover", Lines: []string{"Glyphs near the card", "under the pointer glow"}},
		{ID: "theme", Title: "Theme", Lines: []string{"Light and dark palettes", "switch without a restart"}},
		{ID: "api", Title: "API", Lines: []string{"GET  /api/v1/status", "PUT  /api/v1/theme", "POST /api/v1/pointer"}},
	}
}

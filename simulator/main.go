package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rook-computer/rainfield/internal/app"
	"github.com/rook-computer/rainfield/internal/config"
	"github.com/rook-computer/rainfield/internal/display"
	"github.com/rook-computer/rainfield/internal/system"
)

const (
	defaultWidth  = 1280
	defaultHeight = 720
)

func main() {
	defaults, err := config.FromEnv(":8080", config.DisplayNone)
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}

	listenAddr := flag.String("listen", defaults.Server.ListenAddr, "http listen address; also configurable via RAINFIELD_LISTEN")
	devMode := flag.Bool("dev", defaults.Server.DevMode, "enable permissive CORS; also configurable via RAINFIELD_DEV")
	staticDir := flag.String("static-dir", "", "serve the viewer from this directory instead of the embedded one")
	theme := flag.String("theme", defaults.Theme, "initial theme: light | dark")
	size := flag.String("size", "", "viewport size WIDTHxHEIGHT (default 1280x720, or the terminal size with -terminal)")
	fps := flag.Int("fps", defaults.FPS, "frames per second")
	glyphSize := flag.Int("glyph-size", defaults.GlyphSize, "glyph size in pixels")
	fontPath := flag.String("font", defaults.FontPath, "glyph font file; Go Mono when empty (it has no katakana)")
	terminal := flag.Bool("terminal", defaults.Display == config.DisplayTerminal, "also draw the frames in this terminal")
	scenario := flag.String("scenario", "idle", "scripted input: idle | sweep | theme-cycle | scroll")
	debug := flag.Bool("debug", false, "enable debug logging to ./rainfield-debug.log")
	flag.Parse()

	cfg := defaults
	cfg.Server.ListenAddr = *listenAddr
	cfg.Server.DevMode = *devMode
	cfg.Theme = *theme
	cfg.FPS = *fps
	cfg.GlyphSize = *glyphSize
	cfg.FontPath = *fontPath
	cfg.Display = config.DisplayNone
	if *terminal {
		cfg.Display = config.DisplayTerminal
	}
	if *size != "" {
		if cfg.Width, cfg.Height, err = config.ParseSize(*size); err != nil {
			fmt.Println("size error:", err)
			os.Exit(2)
		}
	} else if cfg.Width == 0 && !*terminal {
		cfg.Width, cfg.Height = defaultWidth, defaultHeight
	}
	if err := cfg.Validate(); err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}

	var logger app.Logger = app.NoopLogger{}
	if *debug {
		f, err := os.OpenFile("./rainfield-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Println("debug log open error:", err)
		} else {
			defer f.Close()
			logger = app.NewFileLogger(f)
			logger.Infof("main", "simulator debug logging enabled")
		}
	}

	processCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var inner display.Display = display.NoopDisplay{}
	var term *display.Terminal
	if *terminal {
		term, err = display.NewTerminal()
		if err != nil {
			fmt.Println("terminal error:", err)
			os.Exit(1)
		}
		inner = term
	}

	var control *SimControl
	a, err := app.Build(app.Options{
		Config:     cfg,
		Display:    inner,
		Logger:     logger,
		ControlURL: system.ControlURL(cfg.Server.ListenAddr),
		StaticDir:  *staticDir,
		Routes:     func(mux *http.ServeMux) { registerSimEndpoints(mux, control) },
	})
	if err != nil {
		if term != nil {
			_ = term.Close()
		}
		fmt.Println("build error:", err)
		os.Exit(1)
	}
	control = NewSimControl(processCtx, a.Page, *scenario)
	a.Display = control.Wrap(inner)
	if err := control.ApplyScenario(*scenario); err != nil {
		if term != nil {
			_ = term.Close()
		}
		fmt.Println("scenario error:", err)
		os.Exit(2)
	}
	if term != nil {
		go term.Run(processCtx, a.TerminalEvents())
	}

	if !*terminal {
		fmt.Println("Rainfield simulator listening on", cfg.Server.ListenAddr)
		fmt.Println("Viewer:", system.ControlURL(cfg.Server.ListenAddr))
		fmt.Println("Scenario:", *scenario)
	}

	err = a.Start(processCtx)
	if term != nil {
		_ = term.Close()
	}
	if err != nil {
		fmt.Println("app error:", err)
		os.Exit(1)
	}
}

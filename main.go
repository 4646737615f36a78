package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rook-computer/rainfield/internal/app"
	"github.com/rook-computer/rainfield/internal/config"
	"github.com/rook-computer/rainfield/internal/display"
	"github.com/rook-computer/rainfield/internal/system"
)

func main() {
	os.Exit(run())
}

func run() int {
	defaults, err := config.FromEnv(":80", config.DisplayFramebuffer)
	if err != nil {
		fmt.Println("config error:", err)
		return 2
	}

	// Flags
	debug := flag.Bool("debug", false, "enable debug logging to ./rainfield-debug.log")
	stdioLog := flag.String("stdio-log", defaults.StdioLog, "redirect stdout+stderr (including panics) to this file; also configurable via "+config.EnvStdioLog)
	listenAddr := flag.String("listen", defaults.Server.ListenAddr, "control API listen address, or \"off\"; also configurable via RAINFIELD_LISTEN")
	devMode := flag.Bool("dev", defaults.Server.DevMode, "enable permissive CORS; also configurable via RAINFIELD_DEV")
	displayKind := flag.String("display", defaults.Display, "output: fb | terminal | none")
	fbPath := flag.String("fb", "/dev/fb0", "framebuffer device")
	theme := flag.String("theme", defaults.Theme, "initial theme: light | dark")
	fps := flag.Int("fps", defaults.FPS, "frames per second")
	glyphSize := flag.Int("glyph-size", defaults.GlyphSize, "glyph size in pixels")
	fontPath := flag.String("font", defaults.FontPath, "glyph font file; use a CJK font to get katakana")
	flag.Parse()

	cfg := defaults
	cfg.StdioLog = *stdioLog
	cfg.Server.ListenAddr = *listenAddr
	cfg.Server.DevMode = *devMode
	cfg.Display = *displayKind
	cfg.Theme = *theme
	cfg.FPS = *fps
	cfg.GlyphSize = *glyphSize
	cfg.FontPath = *fontPath
	if err := cfg.Validate(); err != nil {
		fmt.Println("config error:", err)
		return 2
	}

	// Best-effort: keep crash output when the console is in graphics mode.
	if cfg.StdioLog != "" {
		if err := system.RedirectStdIO(cfg.StdioLog); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	var logger app.Logger = app.NoopLogger{}
	if *debug {
		f, err := os.OpenFile("./rainfield-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			defer f.Close()
			logger = app.NewFileLogger(f)
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Println("debug log open error:", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		disp display.Display = display.NoopDisplay{}
		term *display.Terminal
	)
	switch cfg.Display {
	case config.DisplayFramebuffer:
		fb, err := display.OpenFramebuffer(*fbPath)
		if err != nil {
			fmt.Println("framebuffer error:", err)
			return 1
		}
		b := fb.Bounds()
		logger.Infof("fb", "framebuffer open, bounds=%dx%d", b.Dx(), b.Dy())
		disp = fb
		restore := system.TakeConsole(logger)
		defer restore()
	case config.DisplayTerminal:
		term, err = display.NewTerminal()
		if err != nil {
			fmt.Println("terminal error:", err)
			return 1
		}
		disp = term
	}
	defer disp.Close()

	controlURL := ""
	if cfg.Server.Enabled() {
		controlURL = system.ControlURL(cfg.Server.ListenAddr)
	}
	a, err := app.Build(app.Options{Config: cfg, Display: disp, Logger: logger, ControlURL: controlURL})
	if err != nil {
		fmt.Println("build error:", err)
		return 1
	}

	system.WatchKeys(ctx, logger, a.KeyHandlers())
	if term != nil {
		go term.Run(ctx, a.TerminalEvents())
	}

	if err := a.Start(ctx); err != nil {
		logger.Errorf("main", "app error: %v", err)
		fmt.Println("app error:", err)
		return 1
	}
	return 0
}

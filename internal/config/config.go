package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rook-computer/rainfield/internal/rain"
	"github.com/rook-computer/rainfield/internal/web"
)

const (
	EnvTheme     = "RAINFIELD_THEME"
	EnvDisplay   = "RAINFIELD_DISPLAY"
	EnvFPS       = "RAINFIELD_FPS"
	EnvGlyphSize = "RAINFIELD_GLYPH_SIZE"
	EnvSize      = "RAINFIELD_SIZE"
	EnvFont      = "RAINFIELD_FONT"
	EnvStdioLog  = "RAINFIELD_STDIO_LOG"
)

const (
	DisplayFramebuffer = "fb"
	DisplayTerminal    = "terminal"
	DisplayNone        = "none"
)

const (
	DefaultFPS = 60
	MaxFPS     = 120
)

// Config holds everything the binaries need to build an app. Width and
// Height of zero mean "use the display bounds".
type Config struct {
	Server    web.ServerConfig
	Theme     string
	Display   string
	FPS       int
	GlyphSize int
	Width     int
	Height    int
	FontPath  string
	StdioLog  string
}

// Defaults returns the configuration used when nothing is set.
func Defaults(listenAddr, display string) Config {
	return Config{
		Server:    web.ServerConfig{ListenAddr: listenAddr},
		Theme:     string(rain.ThemeDark),
		Display:   display,
		FPS:       DefaultFPS,
		GlyphSize: rain.DefaultGlyphSize,
	}
}

// FromEnv reads RAINFIELD_* variables on top of Defaults.
func FromEnv(listenAddr, display string) (Config, error) {
	cfg := Defaults(listenAddr, display)

	server, err := web.DefaultServerConfigFromEnv(listenAddr)
	if err != nil {
		return Config{}, err
	}
	cfg.Server = server

	if raw := os.Getenv(EnvTheme); raw != "" {
		cfg.Theme = raw
	}
	if raw := os.Getenv(EnvDisplay); raw != "" {
		cfg.Display = raw
	}
	if raw := os.Getenv(EnvFPS); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%s must be an integer (got %q): %w", EnvFPS, raw, err)
		}
		cfg.FPS = n
	}
	if raw := os.Getenv(EnvGlyphSize); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%s must be an integer (got %q): %w", EnvGlyphSize, raw, err)
		}
		cfg.GlyphSize = n
	}
	if raw := os.Getenv(EnvSize); raw != "" {
		w, h, err := ParseSize(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvSize, err)
		}
		cfg.Width, cfg.Height = w, h
	}
	cfg.FontPath = os.Getenv(EnvFont)
	cfg.StdioLog = os.Getenv(EnvStdioLog)

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Theme {
	case string(rain.ThemeLight), string(rain.ThemeDark):
	default:
		return fmt.Errorf("theme must be %q or %q (got %q)", rain.ThemeLight, rain.ThemeDark, c.Theme)
	}
	switch c.Display {
	case DisplayFramebuffer, DisplayTerminal, DisplayNone:
	default:
		return fmt.Errorf("display must be fb, terminal or none (got %q)", c.Display)
	}
	if c.FPS < 1 || c.FPS > MaxFPS {
		return fmt.Errorf("fps must be between 1 and %d (got %d)", MaxFPS, c.FPS)
	}
	if c.GlyphSize < 4 {
		return fmt.Errorf("glyph size must be at least 4 (got %d)", c.GlyphSize)
	}
	if c.Width < 0 || c.Height < 0 || (c.Width == 0) != (c.Height == 0) {
		return fmt.Errorf("invalid size %dx%d", c.Width, c.Height)
	}
	return nil
}

// ParseSize parses "WxH", e.g. "1280x720".
func ParseSize(raw string) (width, height int, err error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(raw)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("size must look like WIDTHxHEIGHT (got %q)", raw)
	}
	width, err = strconv.Atoi(w)
	if err != nil {
		return 0, 0, fmt.Errorf("bad width in %q: %w", raw, err)
	}
	height, err = strconv.Atoi(h)
	if err != nil {
		return 0, 0, fmt.Errorf("bad height in %q: %w", raw, err)
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("size must be positive (got %q)", raw)
	}
	return width, height, nil
}

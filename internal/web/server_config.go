package web

import (
	"fmt"
	"net"
	"os"
	"strconv"
)

const (
	EnvListenAddr = "RAINFIELD_LISTEN"
	EnvDevMode    = "RAINFIELD_DEV"
)

// ServerConfig contains settings for the control API server. An empty
// ListenAddr disables it.
//
// The intended defaults differ per binary:
// - device:    :80
// - simulator: :8080
type ServerConfig struct {
	ListenAddr string
	DevMode    bool
}

// Enabled reports whether the server should be started.
func (c ServerConfig) Enabled() bool { return c.ListenAddr != "" && c.ListenAddr != "off" }

func DefaultServerConfigFromEnv(defaultListenAddr string) (ServerConfig, error) {
	listenAddr := defaultListenAddr
	if raw := os.Getenv(EnvListenAddr); raw != "" {
		listenAddr = raw
	}

	devMode := false
	if raw := os.Getenv(EnvDevMode); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return ServerConfig{}, fmt.Errorf("%s must be a boolean (got %q): %w", EnvDevMode, raw, err)
		}
		devMode = parsed
	}
	if (ServerConfig{ListenAddr: listenAddr}).Enabled() {
		if _, _, err := net.SplitHostPort(listenAddr); err != nil {
			return ServerConfig{}, fmt.Errorf("%s must be host:port or \"off\" (got %q): %w", EnvListenAddr, listenAddr, err)
		}
	}

	return ServerConfig{ListenAddr: listenAddr, DevMode: devMode}, nil
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"image"
	"math"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rook-computer/rainfield/internal/display"
)

// simPage is what the scenarios drive.
type simPage interface {
	Viewport() (int, int)
	MovePointer(x, y int)
	LeavePointer()
	ScrollBy(dy int) int
	ToggleTheme() string
}

type SimFaults struct {
	PresentFail bool `json:"presentFail"`
}

type simStateResponse struct {
	Scenario string    `json:"scenario"`
	Faults   SimFaults `json:"faults"`
}

type scenarioRequest struct {
	Name string `json:"name"`
}

var scenarios = map[string]func(ctx context.Context, p simPage){
	"idle":        func(context.Context, simPage) {},
	"sweep":       runSweep,
	"theme-cycle": runThemeCycle,
	"scroll":      runScroll,
}

// SimControl runs scripted input against the page and injects display
// faults, so the rain can be exercised without a person at the browser.
type SimControl struct {
	processCtx      context.Context
	page            simPage
	startupScenario string

	mu       sync.Mutex
	scenario string
	cancel   context.CancelFunc
	faults   SimFaults
}

func NewSimControl(processCtx context.Context, page simPage, startupScenario string) *SimControl {
	if processCtx == nil {
		processCtx = context.Background()
	}
	c := &SimControl{processCtx: processCtx, page: page, startupScenario: strings.TrimSpace(startupScenario)}
	if c.startupScenario == "" {
		c.startupScenario = "idle"
	}
	return c
}

// ApplyScenario stops the running scenario and starts name.
func (c *SimControl) ApplyScenario(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		name = c.startupScenario
	}
	run, ok := scenarios[name]
	if !ok {
		return errors.New("unknown scenario " + name)
	}

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(c.processCtx)
	c.cancel = cancel
	c.scenario = name
	c.mu.Unlock()

	go run(ctx, c.page)
	return nil
}

func (c *SimControl) Reset() error {
	c.SetFaults(SimFaults{})
	c.page.LeavePointer()
	return c.ApplyScenario(c.startupScenario)
}

func (c *SimControl) Scenario() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scenario
}

func (c *SimControl) Faults() SimFaults {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.faults
}

func (c *SimControl) SetFaults(f SimFaults) {
	c.mu.Lock()
	c.faults = f
	c.mu.Unlock()
}

// Wrap returns a display that fails Present while the presentFail fault is set.
func (c *SimControl) Wrap(inner display.Display) display.Display {
	return &faultyDisplay{Display: inner, control: c}
}

type faultyDisplay struct {
	display.Display
	control *SimControl
}

func (d *faultyDisplay) Present(frame image.Image) error {
	if d.control.Faults().PresentFail {
		return errors.New("simulated present failure")
	}
	return d.Display.Present(frame)
}

func registerSimEndpoints(mux *http.ServeMux, c *SimControl) {
	mux.HandleFunc("/sim/state", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeSimError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
			return
		}
		writeSimJSON(w, http.StatusOK, simStateResponse{Scenario: c.Scenario(), Faults: c.Faults()})
	})
	mux.HandleFunc("/sim/scenario", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
			return
		}
		var req scenarioRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeSimError(w, http.StatusBadRequest, "invalid_json", err.Error())
			return
		}
		if err := c.ApplyScenario(req.Name); err != nil {
			writeSimError(w, http.StatusBadRequest, "unknown_scenario", err.Error())
			return
		}
		writeSimJSON(w, http.StatusOK, simStateResponse{Scenario: c.Scenario(), Faults: c.Faults()})
	})
	mux.HandleFunc("/sim/faults", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeSimJSON(w, http.StatusOK, c.Faults())
		case http.MethodPut:
			var f SimFaults
			if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
				writeSimError(w, http.StatusBadRequest, "invalid_json", err.Error())
				return
			}
			c.SetFaults(f)
			writeSimJSON(w, http.StatusOK, f)
		default:
			writeSimError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		}
	})
	mux.HandleFunc("/sim/reset", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
			return
		}
		if err := c.Reset(); err != nil {
			writeSimError(w, http.StatusInternalServerError, "reset_failed", err.Error())
			return
		}
		writeSimJSON(w, http.StatusOK, simStateResponse{Scenario: c.Scenario(), Faults: c.Faults()})
	})
}

// runSweep moves the pointer along a Lissajous curve over the viewport.
func runSweep(ctx context.Context, p simPage) {
	ticker := time.NewTicker(30 * time.Millisecond)
	defer ticker.Stop()
	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w, h := p.Viewport()
			t := time.Since(start).Seconds()
			x := float64(w) * (0.5 + 0.45*math.Sin(t*0.7))
			y := float64(h) * (0.5 + 0.45*math.Sin(t*1.1))
			p.MovePointer(int(x), int(y))
		}
	}
}

func runThemeCycle(ctx context.Context, p simPage) {
	ticker := time.NewTicker(3 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.ToggleTheme()
		}
	}
}

// runScroll scrolls down until the page stops moving, then back up.
func runScroll(ctx context.Context, p simPage) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	step := 8
	last := -1
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			y := p.ScrollBy(step)
			if y == last {
				step = -step
			}
			last = y
		}
	}
}

func writeSimJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSimError(w http.ResponseWriter, status int, code, message string) {
	writeSimJSON(w, status, map[string]string{"error": code, "message": message})
}

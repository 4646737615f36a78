package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"io"
	"net/http"
	"time"

	"github.com/rook-computer/rainfield/internal/rain"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 4 << 10

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type statusResponse struct {
	Phase      string `json:"phase"`
	Theme      string `json:"theme"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Columns    int    `json:"columns"`
	Frame      uint64 `json:"frame"`
	Hovered    int    `json:"hovered"`
	Display    string `json:"display"`
	LastError  string `json:"lastError,omitempty"`
	UptimeSecs int64  `json:"uptimeSeconds"`
}

type themeRequest struct {
	Theme string `json:"theme"`
}

type themeResponse struct {
	Theme string `json:"theme"`
}

type pointerRequest struct {
	X *int `json:"x"`
	Y *int `json:"y"`
}

type scrollRequest struct {
	DY int `json:"dy"`
}

type scrollResponse struct {
	ScrollY int `json:"scrollY"`
}

type viewportRequest struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type viewportResponse struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

func apiV1RouterWithDeps(deps APIV1Deps) http.Handler {
	deps = deps.withDefaults()
	mux := http.NewServeMux()
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) { handleStatus(w, r, deps) })
	mux.HandleFunc("/theme", func(w http.ResponseWriter, r *http.Request) { handleTheme(w, r, deps) })
	mux.HandleFunc("/theme/toggle", func(w http.ResponseWriter, r *http.Request) { handleThemeToggle(w, r, deps) })
	mux.HandleFunc("/pointer", func(w http.ResponseWriter, r *http.Request) { handlePointer(w, r, deps) })
	mux.HandleFunc("/scroll", func(w http.ResponseWriter, r *http.Request) { handleScroll(w, r, deps) })
	mux.HandleFunc("/viewport", func(w http.ResponseWriter, r *http.Request) { handleViewport(w, r, deps) })
	mux.HandleFunc("/frame.png", func(w http.ResponseWriter, r *http.Request) { handleFrame(w, r, deps) })
	return mux
}

func handleStatus(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}

	snap := deps.Status.Snapshot()
	resp := statusResponse{
		Phase:     snap.Phase.String(),
		Theme:     snap.Rain.Theme,
		Width:     snap.Rain.Width,
		Height:    snap.Rain.Height,
		Columns:   snap.Rain.Columns,
		Frame:     snap.Rain.Frame,
		Hovered:   snap.Rain.Hovered,
		Display:   snap.Display.Kind,
		LastError: snap.Display.LastError,
	}
	if !snap.StartedAt.IsZero() {
		resp.UptimeSecs = int64(time.Since(snap.StartedAt) / time.Second)
	}
	writeJSON(w, http.StatusOK, resp)
}

func handleTheme(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, themeResponse{Theme: deps.Page.Theme()})
	case http.MethodPut:
		var req themeRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Theme != string(rain.ThemeLight) && req.Theme != string(rain.ThemeDark) {
			writeAPIError(w, http.StatusBadRequest, "invalid_theme", fmt.Sprintf("theme must be %q or %q", rain.ThemeLight, rain.ThemeDark))
			return
		}
		deps.Page.SetTheme(req.Theme)
		logInfo(deps, "theme set to %s", req.Theme)
		writeJSON(w, http.StatusOK, themeResponse{Theme: req.Theme})
	default:
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	}
}

func handleThemeToggle(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	next := deps.Page.ToggleTheme()
	logInfo(deps, "theme toggled to %s", next)
	writeJSON(w, http.StatusOK, themeResponse{Theme: next})
}

func handlePointer(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	switch r.Method {
	case http.MethodPost:
		var req pointerRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.X == nil || req.Y == nil {
			writeAPIError(w, http.StatusBadRequest, "invalid_pointer", "x and y are required")
			return
		}
		deps.Page.MovePointer(*req.X, *req.Y)
		writeJSON(w, http.StatusOK, okResponse{OK: true})
	case http.MethodDelete:
		deps.Page.LeavePointer()
		writeJSON(w, http.StatusOK, okResponse{OK: true})
	default:
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	}
}

func handleScroll(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	var req scrollRequest
	if !decodeBody(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, scrollResponse{ScrollY: deps.Page.ScrollBy(req.DY)})
}

func handleViewport(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	switch r.Method {
	case http.MethodGet:
		width, height := deps.Page.Viewport()
		writeJSON(w, http.StatusOK, viewportResponse{Width: width, Height: height})
	case http.MethodPost:
		var req viewportRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Width <= 0 || req.Height <= 0 || req.Width > 8192 || req.Height > 8192 {
			writeAPIError(w, http.StatusBadRequest, "invalid_viewport", "width and height must be between 1 and 8192")
			return
		}
		deps.Page.Resize(req.Width, req.Height)
		logInfo(deps, "viewport resized to %dx%d", req.Width, req.Height)
		writeJSON(w, http.StatusOK, viewportResponse{Width: req.Width, Height: req.Height})
	default:
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	}
}

func handleFrame(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	frame := deps.Frames.LatestFrame()
	if frame == nil {
		writeAPIError(w, http.StatusServiceUnavailable, "no_frame", "no frame rendered yet")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(w, frame); err != nil && deps.Logger != nil {
		deps.Logger.Errorf("web", "frame encode: %v", err)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			writeAPIError(w, http.StatusBadRequest, "empty_body", "request body is empty")
			return false
		}
		writeAPIError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return false
	}
	return true
}

func logInfo(deps APIV1Deps, format string, args ...interface{}) {
	if deps.Logger != nil {
		deps.Logger.Infof("web", format, args...)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}

package web

import (
	"errors"
	"image"

	"github.com/rook-computer/rainfield/internal/state"
)

// StatusStore abstracts the status snapshot used by the API.
//
// The concrete implementation is *state.Store.
type StatusStore interface {
	Snapshot() state.State
}

// PageController is the subset of the page the API drives. Every call
// notifies the rain engine the same way local input does.
type PageController interface {
	Theme() string
	SetTheme(theme string)
	ToggleTheme() string
	MovePointer(x, y int)
	LeavePointer()
	ScrollBy(dy int) int
	Resize(width, height int)
	Viewport() (int, int)
}

// FrameSource returns the most recently composed frame, or nil before the
// first one.
type FrameSource interface {
	LatestFrame() image.Image
}

// sysLogger matches app.Logger so callers can pass it without adapters.
type sysLogger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type APIV1Deps struct {
	Status StatusStore
	Page   PageController
	Frames FrameSource
	Logger sysLogger
}

func (d APIV1Deps) withDefaults() APIV1Deps {
	out := d
	if out.Status == nil {
		out.Status = state.NewStore()
	}
	if out.Page == nil {
		out.Page = NoopPageController{Err: errors.New("page not configured")}
	}
	if out.Frames == nil {
		out.Frames = NoopFrameSource{}
	}
	return out
}

// NoopPageController ignores every change and reports a fixed dark theme.
type NoopPageController struct{ Err error }

func (NoopPageController) Theme() string        { return "dark" }
func (NoopPageController) SetTheme(string)      {}
func (NoopPageController) ToggleTheme() string  { return "dark" }
func (NoopPageController) MovePointer(int, int) {}
func (NoopPageController) LeavePointer()        {}
func (NoopPageController) ScrollBy(int) int     { return 0 }
func (NoopPageController) Resize(int, int)      {}
func (NoopPageController) Viewport() (int, int) { return 0, 0 }

type NoopFrameSource struct{}

func (NoopFrameSource) LatestFrame() image.Image { return nil }

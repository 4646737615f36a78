package display

import (
	"context"
	"errors"
	"image"
	"image/color"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Each terminal cell stands for CellWidth x CellHeight viewport pixels and
// is drawn as an upper half block: foreground is the top half, background
// the bottom half.
const (
	CellWidth  = 8
	CellHeight = 16
)

// TerminalEvents receives input from the terminal, already converted to
// viewport pixel coordinates.
type TerminalEvents struct {
	Resize      func(width, height int)
	Pointer     func(x, y int)
	Scroll      func(dy int)
	ToggleTheme func()
	Quit        func()
}

// Terminal presents frames in a tcell screen.
type Terminal struct {
	screen tcell.Screen

	mu           sync.Mutex
	cols, rows   int
	closed       bool
	scrollStepPx int
}

func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return newTerminal(screen)
}

func newTerminal(screen tcell.Screen) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()
	screen.Clear()
	cols, rows := screen.Size()
	return &Terminal{screen: screen, cols: cols, rows: rows, scrollStepPx: 3 * CellHeight}, nil
}

// Bounds is the viewport in pixels implied by the terminal size.
func (t *Terminal) Bounds() image.Rectangle {
	t.mu.Lock()
	defer t.mu.Unlock()
	return image.Rect(0, 0, t.cols*CellWidth, t.rows*CellHeight)
}

func (t *Terminal) Present(frame image.Image) error {
	if frame == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return errors.New("terminal closed")
	}

	cols, rows := t.cols, t.rows
	src := frame.Bounds()
	if src.Empty() || cols == 0 || rows == 0 {
		return nil
	}
	for row := 0; row < rows; row++ {
		topY := src.Min.Y + (row*2*src.Dy())/(rows*2)
		bottomY := src.Min.Y + ((row*2+1)*src.Dy())/(rows*2)
		for col := 0; col < cols; col++ {
			x := src.Min.X + (col*src.Dx()+src.Dx()/2)/cols
			style := tcell.StyleDefault.
				Foreground(toTcell(frame.At(x, topY))).
				Background(toTcell(frame.At(x, bottomY)))
			t.screen.SetContent(col, row, '▀', nil, style)
		}
	}
	t.screen.Show()
	return nil
}

// Run polls terminal input until ctx is done or the screen is closed.
func (t *Terminal) Run(ctx context.Context, events TerminalEvents) {
	go func() {
		<-ctx.Done()
		_ = t.Close()
	}()
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		t.dispatch(ev, events)
	}
}

func (t *Terminal) dispatch(ev tcell.Event, events TerminalEvents) {
	switch e := ev.(type) {
	case *tcell.EventResize:
		cols, rows := e.Size()
		t.mu.Lock()
		t.cols, t.rows = cols, rows
		t.mu.Unlock()
		t.screen.Sync()
		if events.Resize != nil {
			events.Resize(cols*CellWidth, rows*CellHeight)
		}
	case *tcell.EventMouse:
		x, y := e.Position()
		buttons := e.Buttons()
		switch {
		case buttons&tcell.WheelUp != 0:
			if events.Scroll != nil {
				events.Scroll(-t.scrollStepPx)
			}
		case buttons&tcell.WheelDown != 0:
			if events.Scroll != nil {
				events.Scroll(t.scrollStepPx)
			}
		default:
			if events.Pointer != nil {
				events.Pointer(x*CellWidth+CellWidth/2, y*CellHeight+CellHeight/2)
			}
		}
	case *tcell.EventKey:
		switch {
		case e.Key() == tcell.KeyEscape, e.Key() == tcell.KeyCtrlC, e.Rune() == 'q':
			if events.Quit != nil {
				events.Quit()
			}
		case e.Rune() == 't':
			if events.ToggleTheme != nil {
				events.ToggleTheme()
			}
		}
	}
}

func (t *Terminal) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	t.screen.Fini()
	return nil
}

func toTcell(c color.Color) tcell.Color {
	r, g, b, _ := c.RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}

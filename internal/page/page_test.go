package page

import (
	"image"
	"image/color"
	"sync"
	"testing"

	"github.com/rook-computer/rainfield/internal/rain"
	"github.com/rook-computer/rainfield/internal/render"
)

type eventLog struct {
	mu     sync.Mutex
	events []rain.EventKind
}

func (l *eventLog) record(ev rain.Event) {
	l.mu.Lock()
	l.events = append(l.events, ev.Kind)
	l.mu.Unlock()
}

func (l *eventLog) kinds() []rain.EventKind {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]rain.EventKind(nil), l.events...)
}

func testPage() *Page {
	p := New(1000, 600, "dark")
	p.SetCards([]Card{
		{ID: "a", Title: "A", Rect: image.Rect(100, 100, 200, 200)},
		{ID: "b", Title: "B", Rect: image.Rect(300, 100, 400, 200)},
		{ID: "c", Title: "C", Rect: image.Rect(100, 900, 200, 1000)},
	})
	return p
}

func TestHoveredRegionsFollowsPointer(t *testing.T) {
	p := testPage()
	if got := p.HoveredRegions(); got != nil {
		t.Fatalf("no pointer yet, got %v", got)
	}

	p.MovePointer(150, 150)
	got := p.HoveredRegions()
	if len(got) != 1 || got[0] != image.Rect(100, 100, 200, 200) {
		t.Fatalf("hovered = %v", got)
	}

	p.MovePointer(250, 150)
	if got := p.HoveredRegions(); len(got) != 0 {
		t.Fatalf("between cards should hover nothing, got %v", got)
	}

	p.MovePointer(350, 150)
	p.LeavePointer()
	if got := p.HoveredRegions(); len(got) != 0 {
		t.Fatalf("pointer left, got %v", got)
	}
}

func TestScrollMovesCardsUnderPointer(t *testing.T) {
	p := testPage()
	p.MovePointer(150, 150)

	if off := p.ScrollBy(800); off != 400 {
		t.Fatalf("scroll offset = %d, want clamp to 400", off)
	}
	got := p.HoveredRegions()
	if len(got) != 0 {
		t.Fatalf("after scrolling card a away, hovered = %v", got)
	}

	p.MovePointer(150, 550)
	got = p.HoveredRegions()
	if len(got) != 1 || got[0] != image.Rect(100, 500, 200, 600) {
		t.Fatalf("card c in screen coordinates = %v", got)
	}

	if off := p.ScrollBy(-5000); off != 0 {
		t.Errorf("scroll should clamp at 0, got %d", off)
	}
}

func TestPageNotifiesSubscribers(t *testing.T) {
	p := testPage()
	log := &eventLog{}
	unsubscribe := p.Subscribe(log.record)

	p.SetTheme("light")
	p.Resize(800, 600)
	p.MovePointer(1, 1)
	p.ScrollBy(10)

	want := []rain.EventKind{rain.EventThemeChange, rain.EventResize, rain.EventPointerMove, rain.EventScroll}
	got := log.kinds()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}

	unsubscribe()
	unsubscribe()
	p.SetTheme("dark")
	if len(log.kinds()) != len(want) {
		t.Error("unsubscribed listener still notified")
	}
}

func TestToggleTheme(t *testing.T) {
	p := New(10, 10, "")
	if got := p.ToggleTheme(); got != "light" {
		t.Errorf("absent theme is dark, toggle should give light, got %q", got)
	}
	if got := p.ToggleTheme(); got != "dark" {
		t.Errorf("toggle = %q", got)
	}
}

// Listeners may call back into the page while being notified.
func TestListenerCanReadPage(t *testing.T) {
	p := testPage()
	var theme string
	p.Subscribe(func(rain.Event) { theme = p.Theme() })
	p.SetTheme("light")
	if theme != "light" {
		t.Errorf("listener read %q", theme)
	}
}

type stubSurface struct{ img *image.RGBA }

func (s *stubSurface) Resize(int, int)      {}
func (s *stubSurface) Fade(color.Color)     {}
func (s *stubSurface) DrawGlyph(rain.Glyph) {}
func (s *stubSurface) Image() image.Image   { return s.img }

type callDrawer struct {
	layers  []float64
	fills   int
	strokes []color.Color
	texts   []string
}

func (d *callDrawer) Size() (int, int)                  { return 1000, 600 }
func (d *callDrawer) Fill(image.Rectangle, color.Color) { d.fills++ }
func (d *callDrawer) StrokeRect(_ image.Rectangle, c color.Color, _ int) {
	d.strokes = append(d.strokes, c)
}
func (d *callDrawer) MeasureText(string, render.TextStyle) render.TextMetrics {
	return render.TextMetrics{}
}
func (d *callDrawer) DrawText(text string, _, _ int, _ render.TextStyle) render.TextMetrics {
	d.texts = append(d.texts, text)
	return render.TextMetrics{LineHeight: 20}
}
func (d *callDrawer) DrawImageInRect(image.Image, image.Rectangle, render.ScaleMode) {}
func (d *callDrawer) DrawLayer(_ image.Image, opacity float64)                       { d.layers = append(d.layers, opacity) }

func TestComposeDrawsLayersThenVisibleCards(t *testing.T) {
	p := testPage()
	p.MountBackground(&stubSurface{img: image.NewRGBA(image.Rect(0, 0, 10, 10))}, 0.15)
	p.MovePointer(150, 150)

	d := &callDrawer{}
	p.Compose(d)

	if len(d.layers) != 1 || d.layers[0] != 0.15 {
		t.Errorf("layers = %v", d.layers)
	}
	if len(d.texts) != 2 {
		t.Errorf("expected only the two on-screen cards, drew %v", d.texts)
	}
	style := StyleFor("dark")
	if len(d.strokes) != 2 || d.strokes[0] != style.Accent || d.strokes[1] != style.Border {
		t.Errorf("hovered card should use accent border, got %v", d.strokes)
	}
}

func TestLayoutCards(t *testing.T) {
	cards := make([]Card, 4)
	out := LayoutCards(cards, 1400)
	if out[0].Rect.Min != image.Pt(cardGap, cardGap) {
		t.Errorf("first card at %v", out[0].Rect.Min)
	}
	if out[3].Rect.Min.Y <= out[0].Rect.Max.Y {
		t.Errorf("fourth card should wrap to a new row: %v", out[3].Rect)
	}
	narrow := LayoutCards(cards, 300)
	if narrow[1].Rect.Min.Y <= narrow[0].Rect.Max.Y {
		t.Error("narrow viewport should stack cards")
	}
}

func TestStyleFor(t *testing.T) {
	if got := StyleFor("light").Card; got != (color.NRGBA{R: 255, G: 255, B: 255, A: 217}) {
		t.Errorf("light card = %+v", got)
	}
	if got := StyleFor("dark").Accent; got != (color.NRGBA{R: 0, G: 255, B: 70, A: 255}) {
		t.Errorf("dark accent = %+v", got)
	}
	if StyleFor("sepia") != StyleFor("dark") {
		t.Error("unknown theme should use the dark style")
	}
}

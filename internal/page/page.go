package page

import (
	"image"
	"sort"
	"sync"

	"github.com/rook-computer/rainfield/internal/rain"
	"github.com/rook-computer/rainfield/internal/render"
)

// Card is a hoverable element. Rect is in document coordinates.
type Card struct {
	ID    string
	Title string
	Lines []string
	Rect  image.Rectangle
	// Image, when set, is drawn on the right half of the card.
	Image image.Image
}

type layer struct {
	surface rain.Surface
	opacity float64
	z       int
}

// Page models the document the rain decorates: a viewport, a data-theme
// attribute, hoverable cards, pointer and scroll position, and stacked
// layers. Listeners are notified after the page lock is released.
type Page struct {
	mu       sync.RWMutex
	width    int
	height   int
	theme    string
	scrollY  int
	pointer  image.Point
	inside   bool
	cards    []Card
	layers   []layer
	subs     map[int]func(rain.Event)
	nextSub  int
	contentH int
}

func New(width, height int, theme string) *Page {
	return &Page{width: width, height: height, theme: theme, subs: map[int]func(rain.Event){}}
}

func (p *Page) Viewport() (int, int) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.width, p.height
}

func (p *Page) Theme() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.theme
}

// Subscribe registers fn for every change notification until the returned
// function is called.
func (p *Page) Subscribe(fn func(rain.Event)) func() {
	p.mu.Lock()
	id := p.nextSub
	p.nextSub++
	p.subs[id] = fn
	p.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.subs, id)
			p.mu.Unlock()
		})
	}
}

func (p *Page) notify(kind rain.EventKind) {
	p.mu.RLock()
	ids := make([]int, 0, len(p.subs))
	for id := range p.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(rain.Event), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, p.subs[id])
	}
	p.mu.RUnlock()

	ev := rain.Event{Kind: kind}
	for _, fn := range fns {
		fn(ev)
	}
}

// SetTheme writes the data-theme attribute and notifies listeners.
func (p *Page) SetTheme(theme string) {
	p.mu.Lock()
	p.theme = theme
	p.mu.Unlock()
	p.notify(rain.EventThemeChange)
}

// ToggleTheme flips between light and dark and returns the new value.
func (p *Page) ToggleTheme() string {
	p.mu.Lock()
	next := string(rain.ParseTheme(p.theme).Toggle())
	p.theme = next
	p.mu.Unlock()
	p.notify(rain.EventThemeChange)
	return next
}

// Resize changes the viewport. The scroll offset is clamped to the new size.
func (p *Page) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	p.mu.Lock()
	p.width, p.height = width, height
	p.scrollY = p.clampScrollLocked(p.scrollY)
	p.mu.Unlock()
	p.notify(rain.EventResize)
}

// MovePointer moves the pointer to viewport coordinates (x, y).
func (p *Page) MovePointer(x, y int) {
	p.mu.Lock()
	p.pointer = image.Pt(x, y)
	p.inside = x >= 0 && y >= 0 && x < p.width && y < p.height
	p.mu.Unlock()
	p.notify(rain.EventPointerMove)
}

// LeavePointer records that the pointer left the viewport.
func (p *Page) LeavePointer() {
	p.mu.Lock()
	p.inside = false
	p.mu.Unlock()
	p.notify(rain.EventPointerMove)
}

// ScrollBy scrolls the document by dy pixels within its content height and
// returns the new offset.
func (p *Page) ScrollBy(dy int) int {
	p.mu.Lock()
	p.scrollY = p.clampScrollLocked(p.scrollY + dy)
	offset := p.scrollY
	p.mu.Unlock()
	p.notify(rain.EventScroll)
	return offset
}

func (p *Page) ScrollY() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.scrollY
}

func (p *Page) clampScrollLocked(y int) int {
	limit := p.contentH - p.height
	if y > limit {
		y = limit
	}
	if y < 0 {
		y = 0
	}
	return y
}

// SetCards replaces the page's hoverable cards.
func (p *Page) SetCards(cards []Card) {
	p.mu.Lock()
	p.cards = append([]Card(nil), cards...)
	p.contentH = 0
	for _, c := range p.cards {
		if c.Rect.Max.Y > p.contentH {
			p.contentH = c.Rect.Max.Y
		}
	}
	p.scrollY = p.clampScrollLocked(p.scrollY)
	p.mu.Unlock()
	p.notify(rain.EventPointerMove)
}

func (p *Page) Cards() []Card {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]Card(nil), p.cards...)
}

// HoveredRegions returns the viewport rectangles of the cards under the pointer.
func (p *Page) HoveredRegions() []image.Rectangle {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.inside {
		return nil
	}
	var out []image.Rectangle
	for _, c := range p.cards {
		r := p.screenRectLocked(c)
		if p.pointer.In(r) {
			out = append(out, r)
		}
	}
	return out
}

func (p *Page) screenRectLocked(c Card) image.Rectangle {
	return c.Rect.Sub(image.Pt(0, p.scrollY))
}

// MountBackground inserts s as the first layer, stacked behind the cards.
func (p *Page) MountBackground(s rain.Surface, opacity float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.layers = append([]layer{{surface: s, opacity: opacity, z: -1}}, p.layers...)
	sort.SliceStable(p.layers, func(i, j int) bool { return p.layers[i].z < p.layers[j].z })
}

// Compose draws the page: background, layers, then cards.
func (p *Page) Compose(d render.Drawer) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	style := StyleFor(p.theme)
	w, h := d.Size()
	viewport := image.Rect(0, 0, w, h)
	d.Fill(viewport, style.Background)

	for _, l := range p.layers {
		d.DrawLayer(l.surface.Image(), l.opacity)
	}

	for _, c := range p.cards {
		r := p.screenRectLocked(c)
		if !r.Overlaps(viewport) {
			continue
		}
		hovered := p.inside && p.pointer.In(r)
		drawCard(d, c, r, style, hovered)
	}
}

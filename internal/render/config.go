package render

// Logical viewport used when the output device does not dictate one.
var (
	CanvasWidth  = 1920
	CanvasHeight = 1080
)

// DefaultTextSize is the page text size in pixels when a style leaves it 0.
const DefaultTextSize = 18

package layout

import (
	"image"
	"testing"
)

func TestExpand(t *testing.T) {
	got := Expand(image.Rect(100, 100, 200, 200), 100)
	want := image.Rect(0, 0, 300, 300)
	if got != want {
		t.Fatalf("Expand = %v, want %v", got, want)
	}
	if got := Expand(image.Rect(1, 2, 3, 4), 0); got != image.Rect(1, 2, 3, 4) {
		t.Errorf("zero margin changed rect: %v", got)
	}
}

func TestContainsInclusive(t *testing.T) {
	rect := image.Rect(0, 0, 300, 300)
	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 50, 50, true},
		{"min corner", 0, 0, true},
		{"max corner", 300, 300, true},
		{"right of max", 300.5, 10, false},
		{"above", 10, -0.1, false},
		{"far away", 500, 500, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContainsInclusive(rect, tt.x, tt.y); got != tt.want {
				t.Errorf("ContainsInclusive(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestGrid(t *testing.T) {
	cells := Grid(image.Rect(0, 0, 210, 100), 2, 1, 10)
	if len(cells) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(cells))
	}
	if cells[0] != image.Rect(0, 0, 100, 100) {
		t.Errorf("cell 0 = %v", cells[0])
	}
	if cells[1] != image.Rect(110, 0, 210, 100) {
		t.Errorf("cell 1 = %v", cells[1])
	}
	if Grid(image.Rect(0, 0, 10, 10), 0, 1, 0) != nil {
		t.Error("expected nil grid for zero columns")
	}
}

func TestFitSquare(t *testing.T) {
	got := FitSquare(image.Rect(10, 10, 110, 60))
	if got != image.Rect(10, 10, 60, 60) {
		t.Fatalf("FitSquare = %v", got)
	}
}

package server

import "testing"

func TestTranslateScaledClick(t *testing.T) {
	rect := DisplayRect{Left: 0, Top: 0, Width: 200, Height: 400}
	natural := NaturalSize{Width: 400, Height: 800}

	p, err := Translate(rect, natural, 100, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.X != 200 || p.Y != 200 {
		t.Errorf("got (%d, %d), want (200, 200)", p.X, p.Y)
	}
}

func TestTranslateOffsetRect(t *testing.T) {
	rect := DisplayRect{Left: 50, Top: 20, Width: 100, Height: 200}
	natural := NaturalSize{Width: 1080, Height: 2340}

	p, err := Translate(rect, natural, 50, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.X != 0 || p.Y != 0 {
		t.Errorf("top-left corner should map to (0, 0), got (%d, %d)", p.X, p.Y)
	}
}

func TestTranslateStaysInBounds(t *testing.T) {
	rect := DisplayRect{Left: 10, Top: 10, Width: 123, Height: 457}
	natural := NaturalSize{Width: 1080, Height: 2340}

	// Sweep the rect including its far edge, where plain rounding would
	// land exactly on naturalWidth/naturalHeight.
	for dx := 0.0; dx <= rect.Width; dx += rect.Width / 16 {
		for dy := 0.0; dy <= rect.Height; dy += rect.Height / 16 {
			p, err := Translate(rect, natural, rect.Left+dx, rect.Top+dy)
			if err != nil {
				t.Fatalf("unexpected error at (%f, %f): %v", dx, dy, err)
			}
			if p.X < 0 || p.X >= natural.Width || p.Y < 0 || p.Y >= natural.Height {
				t.Fatalf("(%f, %f) translated out of bounds: (%d, %d)", dx, dy, p.X, p.Y)
			}
		}
	}
}

func TestTranslateMonotonic(t *testing.T) {
	rect := DisplayRect{Left: 0, Top: 0, Width: 300, Height: 600}
	natural := NaturalSize{Width: 1080, Height: 2340}

	prevX := -1
	for cx := 0.0; cx < rect.Width; cx += 7.5 {
		p, err := Translate(rect, natural, cx, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.X < prevX {
			t.Fatalf("X not monotonic: %d after %d at clientX=%f", p.X, prevX, cx)
		}
		prevX = p.X
	}
}

func TestTranslateRejectsDegenerateInput(t *testing.T) {
	natural := NaturalSize{Width: 1080, Height: 2340}

	if _, err := Translate(DisplayRect{Width: 0, Height: 400}, natural, 10, 10); err == nil {
		t.Error("expected error for zero-width rect")
	}

	rect := DisplayRect{Width: 200, Height: 400}
	if _, err := Translate(rect, NaturalSize{}, 10, 10); err == nil {
		t.Error("expected error when no screenshot has loaded")
	}
}

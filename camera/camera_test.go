package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNew(t *testing.T) {
	cam := New(1280, 720, 1280, 720)

	if cam.X != 640 || cam.Y != 360 {
		t.Errorf("expected camera at (640, 360), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 || cam.MinZoom != 1.0 {
		t.Errorf("expected zoom 1 and min zoom 1, got %f and %f", cam.Zoom, cam.MinZoom)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720, 1280, 720)
	cam.ZoomAt(300, 200, 2)

	testCases := []struct{ sx, sy float32 }{
		{640, 360},
		{100, 100},
		{1200, 600},
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestZoomAtKeepsCursorPoint(t *testing.T) {
	cam := New(1280, 720, 1280, 720)

	wx, wy := cam.ScreenToWorld(640, 360)
	cam.ZoomAt(640, 360, 2)
	gx, gy := cam.ScreenToWorld(640, 360)
	if !near(wx, gx) || !near(wy, gy) {
		t.Errorf("point under cursor moved from (%f,%f) to (%f,%f)", wx, wy, gx, gy)
	}
	if cam.Zoom != 2 {
		t.Errorf("zoom = %f, want 2", cam.Zoom)
	}
}

func TestViewStaysInsideWorld(t *testing.T) {
	cam := New(1280, 720, 1280, 720)
	cam.SetZoom(2)

	cam.Pan(-10000, -10000)
	minX, minY, _, _ := cam.VisibleWorldBounds()
	if !near(minX, 0) || !near(minY, 0) {
		t.Errorf("top-left after pan = (%f, %f), want (0, 0)", minX, minY)
	}

	cam.Pan(10000, 10000)
	_, _, maxX, maxY := cam.VisibleWorldBounds()
	if !near(maxX, 1280) || !near(maxY, 720) {
		t.Errorf("bottom-right after pan = (%f, %f), want (1280, 720)", maxX, maxY)
	}
}

func TestZoomClamped(t *testing.T) {
	cam := New(1280, 720, 1280, 720)

	cam.SetZoom(0.1)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("zoom = %f, want min %f", cam.Zoom, cam.MinZoom)
	}
	cam.SetZoom(100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("zoom = %f, want max %f", cam.Zoom, cam.MaxZoom)
	}

	// At minimum zoom the whole field is visible, so panning is a no-op.
	cam.SetZoom(cam.MinZoom)
	cam.Pan(300, 300)
	if cam.X != 640 || cam.Y != 360 {
		t.Errorf("camera moved to (%f, %f) at min zoom", cam.X, cam.Y)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 720, 1280, 720)
	cam.ZoomAt(0, 0, 4)

	if !cam.IsVisible(50, 50, 5) {
		t.Error("point near top-left should be visible")
	}
	if cam.IsVisible(1000, 600, 5) {
		t.Error("far point should be culled at 4x")
	}
}

func TestResizeRaisesMinZoom(t *testing.T) {
	cam := New(1280, 720, 1280, 720)
	cam.Resize(2560, 1440)
	if cam.MinZoom != 2 || cam.Zoom != 2 {
		t.Errorf("after resize min zoom = %f zoom = %f, want 2 and 2", cam.MinZoom, cam.Zoom)
	}
}

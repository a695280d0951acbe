package globeengine

import (
	"math"
	"testing"
)

func TestCameraProject(t *testing.T) {
	cam := NewCamera(1000, 1000, SphereRadius)

	// Sphere center projects to screen center regardless of orientation.
	sx, sy, _ := cam.Project(0, 0, 0)
	if sx != 500 || sy != 500 {
		t.Errorf("center = (%v, %v), want (500, 500)", sx, sy)
	}

	// The +Z axis faces the viewer.
	_, _, depth := cam.Project(0, 0, SphereRadius)
	if depth <= 0 {
		t.Errorf("front point depth = %v, want > 0", depth)
	}
	_, _, depth = cam.Project(0, 0, -SphereRadius)
	if depth >= 0 {
		t.Errorf("back point depth = %v, want < 0", depth)
	}

	// +Y is up on screen (screen Y grows downward).
	_, sy, _ = cam.Project(0, SphereRadius, 0)
	if sy >= 500 {
		t.Errorf("top point screen y = %v, want < 500", sy)
	}
}

func TestCameraYawBringsBackToFront(t *testing.T) {
	cam := NewCamera(1000, 1000, SphereRadius)
	cam.Yaw = math.Pi

	_, _, depth := cam.Project(0, 0, -SphereRadius)
	if depth <= 0 {
		t.Errorf("after half-turn yaw, back point depth = %v, want > 0", depth)
	}
}

func TestCameraResize(t *testing.T) {
	cam := NewCamera(1000, 500, SphereRadius)
	before := cam.ScreenRadius(SphereRadius)

	cam.Resize(2000, 1000, SphereRadius)
	after := cam.ScreenRadius(SphereRadius)
	if math.Abs(after-2*before) > 1e-9 {
		t.Errorf("radius after doubling viewport = %v, want %v", after, 2*before)
	}

	sx, sy, _ := cam.Project(0, 0, 0)
	if sx != 1000 || sy != 500 {
		t.Errorf("center after resize = (%v, %v), want (1000, 500)", sx, sy)
	}
}

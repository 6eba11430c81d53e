package system

import (
	"testing"

	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

func TestClampView(t *testing.T) {
	tests := []struct {
		name   string
		pos    float64
		span   float64
		extent float64
		want   float64
	}{
		{"inside", 100, 200, 1000, 100},
		{"left_edge", -40, 200, 1000, 0},
		{"right_edge", 900, 200, 1000, 800},
		{"larger_than_level", 30, 1200, 1000, -100},
		{"no_bounds", -40, 200, 0, -40},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := clampView(tc.pos, tc.span, tc.extent); got != tc.want {
				t.Fatalf("clampView(%v, %v, %v) = %v, want %v", tc.pos, tc.span, tc.extent, got, tc.want)
			}
		})
	}
}

func TestCameraSystemFollowsPlayer(t *testing.T) {
	w := ecs.NewWorld()
	player := ecs.CreateEntity(w)
	_ = ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	_ = ecs.Add(w, player, component.TransformComponent.Kind(), &component.Transform{X: 500, Y: 300})

	cam := ecs.CreateEntity(w)
	_ = ecs.Add(w, cam, component.CameraComponent.Kind(), &component.Camera{TargetName: "player", Zoom: 1, Smoothness: 0.5})
	_ = ecs.Add(w, cam, component.TransformComponent.Kind(), &component.Transform{})

	bounds := ecs.CreateEntity(w)
	_ = ecs.Add(w, bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{Width: 2000, Height: 1000})

	sys := NewCameraSystem(400, 200)
	sys.Update(w)

	tr, _ := ecs.Get(w, cam, component.TransformComponent.Kind())
	if tr.X != 300 || tr.Y != 200 {
		t.Fatalf("expected snap to (300, 200), got (%v, %v)", tr.X, tr.Y)
	}

	pt, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	pt.X = 700
	sys.Update(w)
	if tr.X != 400 {
		t.Fatalf("expected eased x 400, got %v", tr.X)
	}

	pt.X = 0
	sys.Snap()
	sys.Update(w)
	if tr.X != 0 {
		t.Fatalf("expected view clamped to left edge, got %v", tr.X)
	}
}

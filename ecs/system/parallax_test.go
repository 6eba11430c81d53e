package system

import (
	"math"
	"testing"

	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/parallax"
	"github.com/milk9111/topdown/prefabs"
)

type parallaxScene struct {
	w      *ecs.World
	player ecs.Entity
	cam    ecs.Entity
}

// newParallaxScene builds a world whose 200x100 camera view spans x in [0, 200].
func newParallaxScene(t *testing.T) parallaxScene {
	t.Helper()
	w := ecs.NewWorld()

	player := ecs.CreateEntity(w)
	_ = ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	_ = ecs.Add(w, player, component.TransformComponent.Kind(), &component.Transform{X: 100, Y: 50})

	cam := ecs.CreateEntity(w)
	_ = ecs.Add(w, cam, component.CameraComponent.Kind(), &component.Camera{Zoom: 1, ViewWidth: 200, ViewHeight: 100})
	_ = ecs.Add(w, cam, component.TransformComponent.Kind(), &component.Transform{})

	return parallaxScene{w: w, player: player, cam: cam}
}

func (s parallaxScene) addLayer(name string, x, y, strength, drift float64) ecs.Entity {
	e := ecs.CreateEntity(s.w)
	_ = ecs.Add(s.w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y})
	_ = ecs.Add(s.w, e, component.ParallaxLayerComponent.Kind(), &component.ParallaxLayer{
		Name:        name,
		Strength:    strength,
		DriftSpeed:  drift,
		WrapEnabled: true,
		WrapMargin:  10,
	})
	return e
}

func (s parallaxScene) movePlayer(dx, dy float64) {
	t, _ := ecs.Get(s.w, s.player, component.TransformComponent.Kind())
	t.X += dx
	t.Y += dy
}

func (s parallaxScene) pos(e ecs.Entity) (float64, float64) {
	t, _ := ecs.Get(s.w, e, component.TransformComponent.Kind())
	return t.X, t.Y
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestParallaxSystemMovesLayers(t *testing.T) {
	s := newParallaxScene(t)
	hills := s.addLayer("hills", 50, 20, 0.5, 0)
	sky := s.addLayer("sky", 60, 20, 0, 2)

	sys := NewParallaxSystem()
	s.w.SetDeltaTime(0.5)
	sys.Update(s.w)
	if x, _ := s.pos(hills); !near(x, 50) {
		t.Fatalf("first tick should not move hills, got x=%v", x)
	}
	if x, _ := s.pos(sky); !near(x, 59) {
		t.Fatalf("sky should drift 1 unit, got x=%v", x)
	}

	s.movePlayer(10, 4)
	sys.Update(s.w)
	if x, y := s.pos(hills); !near(x, 55) || !near(y, 22) {
		t.Fatalf("hills at (%v, %v), want (55, 22)", x, y)
	}
	if x, y := s.pos(sky); !near(x, 58) || !near(y, 20) {
		t.Fatalf("sky at (%v, %v), want (58, 20)", x, y)
	}

	layer, _ := ecs.Get(s.w, hills, component.ParallaxLayerComponent.Kind())
	if !layer.Registered || sys.Manager().Len() != 2 {
		t.Fatalf("expected both layers registered, got %d", sys.Manager().Len())
	}
}

func TestParallaxSystemWrapsAroundCamera(t *testing.T) {
	s := newParallaxScene(t)
	cloud := s.addLayer("clouds", -9, 0, 0, 2)

	sys := NewParallaxSystem()
	s.w.SetDeltaTime(1)
	sys.Update(s.w)

	if x, _ := s.pos(cloud); !near(x, 210) {
		t.Fatalf("expected cloud wrapped to right edge 210, got %v", x)
	}
}

func TestParallaxSystemRegistersLateLayers(t *testing.T) {
	s := newParallaxScene(t)
	sys := NewParallaxSystem()
	s.w.SetDeltaTime(0)
	sys.Update(s.w)

	s.movePlayer(20, 0)
	late := s.addLayer("late", 80, 0, 1, 0)
	sys.Update(s.w)
	if x, _ := s.pos(late); !near(x, 100) {
		t.Fatalf("late layer should follow this tick's movement, got %v", x)
	}

	layer, _ := ecs.Get(s.w, late, component.ParallaxLayerComponent.Kind())
	l, ok := sys.Manager().Layer(parallax.LayerHandle(layer.Handle))
	if !ok || l.StartPosition().X != 80 {
		t.Fatalf("expected start position 80 recorded at registration")
	}
}

func TestParallaxSystemResetRequest(t *testing.T) {
	s := newParallaxScene(t)
	hills := s.addLayer("hills", 50, 20, 0.5, 1)

	sys := NewParallaxSystem()
	s.w.SetDeltaTime(1)
	sys.Update(s.w)
	s.movePlayer(30, 0)
	sys.Update(s.w)

	req := ecs.CreateEntity(s.w)
	_ = ecs.Add(s.w, req, component.ParallaxResetRequestComponent.Kind(), &component.ParallaxResetRequest{})
	s.w.SetDeltaTime(0)
	sys.Update(s.w)

	if x, y := s.pos(hills); !near(x, 50) || !near(y, 20) {
		t.Fatalf("expected hills back at start, got (%v, %v)", x, y)
	}
	if ecs.Has(s.w, req, component.ParallaxResetRequestComponent.Kind()) {
		t.Fatal("reset request should be consumed")
	}
}

func TestParallaxSystemWithoutPlayer(t *testing.T) {
	w := ecs.NewWorld()
	layer := ecs.CreateEntity(w)
	_ = ecs.Add(w, layer, component.TransformComponent.Kind(), &component.Transform{X: 5})
	_ = ecs.Add(w, layer, component.ParallaxLayerComponent.Kind(), &component.ParallaxLayer{Strength: 1, DriftSpeed: 3})

	sys := NewParallaxSystem()
	w.SetDeltaTime(1)
	sys.Update(w)
	sys.Update(w)

	tr, _ := ecs.Get(w, layer, component.TransformComponent.Kind())
	if tr.X != 5 {
		t.Fatalf("layers should stay put without a player, got %v", tr.X)
	}
	if sys.Manager().Enabled() {
		t.Fatal("manager should be disabled")
	}

	player := ecs.CreateEntity(w)
	_ = ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	_ = ecs.Add(w, player, component.TransformComponent.Kind(), &component.Transform{X: 500})
	sys.Update(w)
	if tr.X != 2 {
		t.Fatalf("expected drift only once the player appears, got %v", tr.X)
	}
}

func TestParallaxSystemSurvivesDestroyedLayer(t *testing.T) {
	s := newParallaxScene(t)
	gone := s.addLayer("gone", 50, 0, 1, 0)
	kept := s.addLayer("kept", 60, 0, 1, 0)

	sys := NewParallaxSystem()
	s.w.SetDeltaTime(0)
	sys.Update(s.w)

	ecs.DestroyEntity(s.w, gone)
	s.movePlayer(5, 0)
	sys.Update(s.w)

	if x, _ := s.pos(kept); !near(x, 65) {
		t.Fatalf("expected kept layer at 65, got %v", x)
	}
}

func TestParallaxSystemApplySpec(t *testing.T) {
	s := newParallaxScene(t)
	hills := s.addLayer("hills", 50, 0, 0.5, 0)
	s.addLayer("other", 70, 0, 0.5, 0)

	sys := NewParallaxSystem()
	s.w.SetDeltaTime(0)
	sys.Update(s.w)

	off := false
	n := sys.ApplySpec(s.w, &prefabs.ParallaxSpec{Layers: []prefabs.ParallaxLayerSpec{
		{Name: "hills", Strength: 1, DriftSpeed: 0, WrapEnabled: &off},
	}})
	if n != 1 {
		t.Fatalf("expected one layer updated, got %d", n)
	}

	s.movePlayer(10, 0)
	sys.Update(s.w)
	if x, _ := s.pos(hills); !near(x, 60) {
		t.Fatalf("expected new strength applied, got x=%v", x)
	}
	layer, _ := ecs.Get(s.w, hills, component.ParallaxLayerComponent.Kind())
	if layer.WrapEnabled || layer.Strength != 1 {
		t.Fatalf("component not updated: %+v", layer)
	}
}

func TestCameraViewport(t *testing.T) {
	w := ecs.NewWorld()
	cam := ecs.CreateEntity(w)
	_ = ecs.Add(w, cam, component.CameraComponent.Kind(), &component.Camera{Zoom: 2, ViewWidth: 200, ViewHeight: 100})
	_ = ecs.Add(w, cam, component.TransformComponent.Kind(), &component.Transform{X: 10, Y: 20})

	v := cameraViewport{w: w, e: cam}
	if p := v.Position(); p.X != 60 || p.Y != 45 {
		t.Fatalf("center = (%v, %v), want (60, 45)", p.X, p.Y)
	}
	if v.HalfHeight() != 25 || v.Aspect() != 2 {
		t.Fatalf("half height %v aspect %v", v.HalfHeight(), v.Aspect())
	}
	left, right := parallax.ViewportBounds(v)
	if left != 10 || right != 110 {
		t.Fatalf("bounds = [%v, %v], want [10, 110]", left, right)
	}
}

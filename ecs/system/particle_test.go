package system

import (
	"math/rand/v2"
	"testing"

	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"golang.org/x/image/colornames"
)

func TestApplyFollow(t *testing.T) {
	follow := &component.ParticleFollow{LeftOffsetX: 14, LeftOffsetY: 10, RightOffsetX: -14, RightOffsetY: 10}

	tests := []struct {
		name       string
		facingLeft bool
		running    bool
		wantX      float64
		wantDir    float64
	}{
		{"facing_right_running", false, true, 86, -1},
		{"facing_left_running", true, true, 114, 1},
		{"facing_left_idle", true, false, 114, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			emitter := &component.ParticleEmitter{}
			tr := &component.Transform{}
			applyFollow(follow, emitter, tr, 100, 50, tc.facingLeft, tc.running)
			if tr.X != tc.wantX || tr.Y != 60 {
				t.Fatalf("position = (%v, %v), want (%v, 60)", tr.X, tr.Y, tc.wantX)
			}
			if emitter.Direction != tc.wantDir {
				t.Fatalf("direction = %v, want %v", emitter.Direction, tc.wantDir)
			}
			if emitter.Playing != tc.running {
				t.Fatalf("playing = %v, want %v", emitter.Playing, tc.running)
			}
		})
	}
}

func TestParticleFollowSystem(t *testing.T) {
	w := ecs.NewWorld()
	player := ecs.CreateEntity(w)
	_ = ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	_ = ecs.Add(w, player, component.TransformComponent.Kind(), &component.Transform{X: 200, Y: 100})
	_ = ecs.Add(w, player, component.PlayerComponent.Kind(), &component.Player{Running: true})
	_ = ecs.Add(w, player, component.SpriteComponent.Kind(), &component.Sprite{FacingLeft: true})

	dust := ecs.CreateEntity(w)
	_ = ecs.Add(w, dust, component.TransformComponent.Kind(), &component.Transform{})
	_ = ecs.Add(w, dust, component.ParticleFollowComponent.Kind(), &component.ParticleFollow{TargetName: "player", LeftOffsetX: 14, RightOffsetX: -14})
	_ = ecs.Add(w, dust, component.ParticleEmitterComponent.Kind(), &component.ParticleEmitter{})

	NewParticleFollowSystem().Update(w)

	tr, _ := ecs.Get(w, dust, component.TransformComponent.Kind())
	emitter, _ := ecs.Get(w, dust, component.ParticleEmitterComponent.Kind())
	if tr.X != 214 || !emitter.Playing || emitter.Direction != 1 {
		t.Fatalf("unexpected follow state x=%v playing=%v dir=%v", tr.X, emitter.Playing, emitter.Direction)
	}

	ecs.DestroyEntity(w, player)
	NewParticleFollowSystem().Update(w)
	if emitter.Playing {
		t.Fatal("emitter should stop once the target is gone")
	}
}

func TestStepEmitter(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	t.Run("spawns_at_rate", func(t *testing.T) {
		emitter := &component.ParticleEmitter{Playing: true, Rate: 10, Lifetime: 1, Speed: 50, Spread: 0.5, Direction: 1, Color: colornames.Wheat}
		stepEmitter(emitter, 5, 5, 0.5, rng)
		if len(emitter.Particles) != 5 {
			t.Fatalf("expected 5 particles, got %d", len(emitter.Particles))
		}
		for _, p := range emitter.Particles {
			if p.X != 5 || p.Y != 5 || p.VX <= 0 {
				t.Fatalf("unexpected particle %+v", p)
			}
		}
	})

	t.Run("caps_alive", func(t *testing.T) {
		emitter := &component.ParticleEmitter{Playing: true, Rate: 100, Lifetime: 1, Speed: 10, Direction: -1, MaxAlive: 3}
		stepEmitter(emitter, 0, 0, 0.5, rng)
		if len(emitter.Particles) != 3 {
			t.Fatalf("expected 3 particles, got %d", len(emitter.Particles))
		}
		if emitter.Particles[0].VX >= 0 {
			t.Fatalf("expected leftward emission, got %+v", emitter.Particles[0])
		}
	})

	t.Run("stopped_ages_out", func(t *testing.T) {
		emitter := &component.ParticleEmitter{Playing: true, Rate: 4, Lifetime: 0.5, Speed: 10, Direction: 1}
		stepEmitter(emitter, 0, 0, 0.5, rng)
		if len(emitter.Particles) != 2 {
			t.Fatalf("expected 2 particles, got %d", len(emitter.Particles))
		}
		emitter.Playing = false
		stepEmitter(emitter, 0, 0, 1, rng)
		if len(emitter.Particles) != 0 || emitter.Accumulator != 0 {
			t.Fatalf("expected every particle gone, got %d", len(emitter.Particles))
		}
	})
}

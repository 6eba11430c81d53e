package system

import (
	"math"
	"math/rand/v2"

	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

// ParticleSystem spawns and ages particles for every emitter.
type ParticleSystem struct {
	rngs map[ecs.Entity]*rand.Rand
}

func NewParticleSystem() *ParticleSystem {
	return &ParticleSystem{rngs: make(map[ecs.Entity]*rand.Rand)}
}

func (s *ParticleSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	for e := range s.rngs {
		if !ecs.IsAlive(w, e) {
			delete(s.rngs, e)
		}
	}

	dt := w.DeltaTime()
	ecs.ForEach2(w, component.ParticleEmitterComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, emitter *component.ParticleEmitter, t *component.Transform) {
		rng, ok := s.rngs[e]
		if !ok {
			rng = rand.New(rand.NewPCG(emitter.Seed, uint64(e)))
			s.rngs[e] = rng
		}
		stepEmitter(emitter, t.X, t.Y, dt, rng)
	})
}

func stepEmitter(emitter *component.ParticleEmitter, x, y, dt float64, rng *rand.Rand) {
	alive := emitter.Particles[:0]
	for _, p := range emitter.Particles {
		p.Age += dt
		if p.Age >= p.Life {
			continue
		}
		p.X += p.VX * dt
		p.Y += p.VY * dt
		alive = append(alive, p)
	}
	emitter.Particles = alive

	if !emitter.Playing || emitter.Rate <= 0 {
		emitter.Accumulator = 0
		return
	}

	emitter.Accumulator += dt * emitter.Rate
	for emitter.Accumulator >= 1 {
		emitter.Accumulator--
		if emitter.MaxAlive > 0 && len(emitter.Particles) >= emitter.MaxAlive {
			continue
		}
		angle := (rng.Float64()*2 - 1) * emitter.Spread
		speed := emitter.Speed * (0.5 + rng.Float64()*0.5)
		emitter.Particles = append(emitter.Particles, component.Particle{
			X:    x,
			Y:    y,
			VX:   math.Cos(angle) * speed * emitter.Direction,
			VY:   math.Sin(angle)*speed - speed*0.25,
			Life: emitter.Lifetime * (0.75 + rng.Float64()*0.5),
		})
	}
}

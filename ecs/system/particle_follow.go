package system

import (
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

// ParticleFollowSystem keeps emitters behind their target and plays them
// while the target runs.
type ParticleFollowSystem struct{}

func NewParticleFollowSystem() *ParticleFollowSystem { return &ParticleFollowSystem{} }

func (s *ParticleFollowSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach3(w, component.ParticleFollowComponent.Kind(), component.ParticleEmitterComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, follow *component.ParticleFollow, emitter *component.ParticleEmitter, t *component.Transform) {
		target := findEntityByNameOrTag(w, follow.TargetName)
		targetTransform, ok := ecs.Get(w, target, component.TransformComponent.Kind())
		if !ok {
			emitter.Playing = false
			return
		}

		facingLeft := false
		if sprite, ok := ecs.Get(w, target, component.SpriteComponent.Kind()); ok {
			facingLeft = sprite.FacingLeft
		}
		running := false
		if player, ok := ecs.Get(w, target, component.PlayerComponent.Kind()); ok {
			running = player.Running
		}

		applyFollow(follow, emitter, t, targetTransform.X, targetTransform.Y, facingLeft, running)
	})
}

// applyFollow places the emitter on the side opposite the facing direction
// and points the emission away from the target.
func applyFollow(follow *component.ParticleFollow, emitter *component.ParticleEmitter, t *component.Transform, targetX, targetY float64, facingLeft, running bool) {
	if facingLeft {
		t.X = targetX + follow.LeftOffsetX
		t.Y = targetY + follow.LeftOffsetY
		emitter.Direction = 1
	} else {
		t.X = targetX + follow.RightOffsetX
		t.Y = targetY + follow.RightOffsetY
		emitter.Direction = -1
	}
	emitter.Playing = running
}

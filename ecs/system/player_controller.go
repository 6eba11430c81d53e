package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/topdown/common"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

const inputThreshold = 0.1

type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()

	entities := ecs.Query(w,
		component.PlayerTagComponent.Kind(),
		component.PlayerComponent.Kind(),
		component.InputComponent.Kind(),
	)
	for _, e := range entities {
		player, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
		input, _ := ecs.Get(w, e, component.InputComponent.Kind())

		stepPlayerVelocity(player, input.MoveX, input.MoveY, dt)

		if bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && bodyComp.Body != nil {
			bodyComp.Body.SetVelocityVector(cp.Vector{X: player.VelocityX, Y: player.VelocityY})
			bodyComp.Body.SetAngularVelocity(0)
		} else if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			t.X += player.VelocityX * dt
			t.Y += player.VelocityY * dt
		}

		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok && player.RotateTowardsMovement {
			t.Rotation = rotateTowards(t.Rotation, input.MoveX, input.MoveY, player.RotationSpeed*dt)
		}

		if s, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok && input.MoveX != 0 {
			s.FacingLeft = input.MoveX < 0
		}
	}
}

// stepPlayerVelocity eases the player's velocity toward input*MoveSpeed,
// or toward rest when there is no input.
func stepPlayerVelocity(p *component.Player, moveX, moveY, dt float64) {
	targetX, targetY := 0.0, 0.0
	rate := p.Deceleration
	if math.Hypot(moveX, moveY) > inputThreshold {
		targetX = moveX * p.MoveSpeed
		targetY = moveY * p.MoveSpeed
		rate = p.Acceleration
	}

	p.VelocityX = common.LerpClamped(p.VelocityX, targetX, rate*dt)
	p.VelocityY = common.LerpClamped(p.VelocityY, targetY, rate*dt)
	p.Moving = math.Hypot(p.VelocityX, p.VelocityY) > common.MovingThreshold
	p.Running = p.Moving
}

// rotateTowards turns current toward the movement direction. Sprites face
// up at rotation zero, hence the quarter turn.
func rotateTowards(current, moveX, moveY, t float64) float64 {
	if math.Hypot(moveX, moveY) <= inputThreshold {
		return current
	}
	target := math.Atan2(moveY, moveX) + math.Pi/2
	return common.WrapAngle(common.LerpAngle(current, target, t))
}

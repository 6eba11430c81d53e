package entity

import (
	"fmt"

	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/prefabs"
	"golang.org/x/image/colornames"
)

// NewDust creates the running-dust emitter that follows the player.
func NewDust(w *ecs.World) (ecs.Entity, error) {
	spec, err := prefabs.LoadDustSpec()
	if err != nil {
		return 0, fmt.Errorf("dust: load spec: %w", err)
	}

	e := ecs.CreateEntity(w)
	if err := addTransform(w, e, prefabs.TransformSpec{}); err != nil {
		return 0, fmt.Errorf("dust: add transform: %w", err)
	}
	if err := addRenderLayer(w, e, spec.RenderLayer); err != nil {
		return 0, fmt.Errorf("dust: add render layer: %w", err)
	}
	if err := ecs.Add(w, e, component.ParticleFollowComponent.Kind(), &component.ParticleFollow{
		TargetName:   spec.Target,
		LeftOffsetX:  spec.LeftOffsetX,
		LeftOffsetY:  spec.LeftOffsetY,
		RightOffsetX: spec.RightOffsetX,
		RightOffsetY: spec.RightOffsetY,
	}); err != nil {
		return 0, fmt.Errorf("dust: add follow: %w", err)
	}
	if err := ecs.Add(w, e, component.ParticleEmitterComponent.Kind(), &component.ParticleEmitter{
		Rate:      spec.Rate,
		Lifetime:  spec.Lifetime,
		Speed:     spec.Speed,
		Spread:    spec.Spread,
		Size:      spec.Size,
		Color:     spec.Color.Or(colornames.Wheat),
		Direction: 1,
		MaxAlive:  spec.MaxAlive,
		Seed:      uint64(e),
	}); err != nil {
		return 0, fmt.Errorf("dust: add emitter: %w", err)
	}
	return e, nil
}

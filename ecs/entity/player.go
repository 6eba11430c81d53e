package entity

import (
	"fmt"

	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/prefabs"
)

func NewPlayer(w *ecs.World) (ecs.Entity, error) {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return 0, fmt.Errorf("player: load spec: %w", err)
	}

	player := ecs.CreateEntity(w)
	if err := ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add player tag: %w", err)
	}
	if err := ecs.Add(w, player, component.PlayerComponent.Kind(), &component.Player{
		MoveSpeed:             spec.MoveSpeed,
		Acceleration:          spec.Acceleration,
		Deceleration:          spec.Deceleration,
		RotateTowardsMovement: spec.RotateTowardsMovement,
		RotationSpeed:         spec.RotationSpeed,
	}); err != nil {
		return 0, fmt.Errorf("player: add player: %w", err)
	}
	if err := ecs.Add(w, player, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}
	if err := addTransform(w, player, spec.Transform); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}
	if err := addSprite(w, player, spec.Sprite); err != nil {
		return 0, fmt.Errorf("player: add sprite: %w", err)
	}
	if err := addRenderLayer(w, player, spec.RenderLayer); err != nil {
		return 0, fmt.Errorf("player: add render layer: %w", err)
	}

	mass := spec.Collider.Mass
	if mass <= 0 {
		mass = 1
	}
	if err := ecs.Add(w, player, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:    spec.Collider.Width,
		Height:   spec.Collider.Height,
		Mass:     mass,
		Friction: spec.Collider.Friction,
	}); err != nil {
		return 0, fmt.Errorf("player: add physics body: %w", err)
	}

	return player, nil
}

func NewPlayerAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	player, err := NewPlayer(w)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, player, x, y, 0); err != nil {
		return 0, fmt.Errorf("player: override transform: %w", err)
	}
	return player, nil
}

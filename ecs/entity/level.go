package entity

import (
	"fmt"

	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/prefabs"
)

// LoadLevelToWorld creates the level entity, the floor, and every item.
func LoadLevelToWorld(w *ecs.World, lvl *prefabs.LevelSpec, pickup *prefabs.PickupSpec) (ecs.Entity, error) {
	if lvl == nil {
		return 0, fmt.Errorf("level: nil spec")
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Width:  lvl.Width,
		Height: lvl.Height,
	}); err != nil {
		return 0, fmt.Errorf("level: add bounds: %w", err)
	}
	if err := ecs.Add(w, e, component.LevelComponent.Kind(), &component.Level{
		Name:         lvl.Name,
		LevelTime:    lvl.LevelTime,
		TimerEnabled: lvl.Timer(),
		AutoFind:     true,
		SpawnX:       lvl.SpawnX,
		SpawnY:       lvl.SpawnY,
	}); err != nil {
		return 0, fmt.Errorf("level: add level: %w", err)
	}

	if lvl.BannerTime > 0 {
		if err := ecs.Add(w, e, component.CountdownComponent.Kind(), &component.Countdown{
			Remaining: lvl.BannerTime,
			Running:   true,
		}); err != nil {
			return 0, fmt.Errorf("level: add banner countdown: %w", err)
		}
	}

	if lvl.Floor.Width > 0 && lvl.Floor.Height > 0 {
		if err := addTransform(w, e, prefabs.TransformSpec{}); err != nil {
			return 0, fmt.Errorf("level: add transform: %w", err)
		}
		if err := addSprite(w, e, lvl.Floor); err != nil {
			return 0, fmt.Errorf("level: add floor: %w", err)
		}
		if err := addRenderLayer(w, e, prefabs.RenderLayerSpec{Index: 0}); err != nil {
			return 0, fmt.Errorf("level: add render layer: %w", err)
		}
	}

	if _, err := SpawnItems(w, lvl, pickup); err != nil {
		return 0, err
	}
	return e, nil
}

// SpawnItems creates one pickup per item placement.
func SpawnItems(w *ecs.World, lvl *prefabs.LevelSpec, pickup *prefabs.PickupSpec) ([]ecs.Entity, error) {
	out := make([]ecs.Entity, 0, len(lvl.Items))
	for _, item := range lvl.Items {
		e, err := NewPickupAt(w, pickup, item.Name, item.X, item.Y)
		if err != nil {
			return out, fmt.Errorf("level: spawn %s: %w", item.Name, err)
		}
		out = append(out, e)
	}
	return out, nil
}

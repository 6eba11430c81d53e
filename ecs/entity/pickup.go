package entity

import (
	"fmt"

	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/prefabs"
	"golang.org/x/image/colornames"
)

func NewPickupAt(w *ecs.World, spec *prefabs.PickupSpec, name string, x, y float64) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("pickup: nil spec")
	}
	if name == "" {
		name = spec.Name
	}

	e := ecs.CreateEntity(w)
	if err := addTransform(w, e, prefabs.TransformSpec{X: x, Y: y}); err != nil {
		return 0, fmt.Errorf("pickup %s: add transform: %w", name, err)
	}
	if err := addSprite(w, e, spec.Sprite); err != nil {
		return 0, fmt.Errorf("pickup %s: add sprite: %w", name, err)
	}
	if err := addRenderLayer(w, e, spec.RenderLayer); err != nil {
		return 0, fmt.Errorf("pickup %s: add render layer: %w", name, err)
	}

	if err := ecs.Add(w, e, component.PickupComponent.Kind(), PickupFromSpec(spec, name)); err != nil {
		return 0, fmt.Errorf("pickup %s: add pickup: %w", name, err)
	}
	return e, nil
}

// PickupFromSpec fills in the defaults of an item pickup.
func PickupFromSpec(spec *prefabs.PickupSpec, name string) *component.Pickup {
	p := &component.Pickup{
		Name:          name,
		Radius:        spec.Radius,
		PickupTime:    spec.PickupTime,
		DecreaseDelay: spec.DecreaseDelay,
		DecreaseSpeed: spec.DecreaseSpeed,
		Bar: component.ProgressBar{
			OffsetX:    spec.Bar.OffsetX,
			OffsetY:    spec.Bar.OffsetY,
			Width:      spec.Bar.Width,
			Height:     spec.Bar.Height,
			Fill:       spec.Bar.Fill.Or(colornames.Green),
			Background: spec.Bar.Background.Or(colornames.Gray),
		},
	}
	if p.Radius <= 0 {
		p.Radius = 96
	}
	if p.PickupTime <= 0 {
		p.PickupTime = 2
	}
	if p.DecreaseSpeed <= 0 {
		p.DecreaseSpeed = 1
	}
	if p.Bar.Width <= 0 {
		p.Bar.Width = 48
	}
	if p.Bar.Height <= 0 {
		p.Bar.Height = 5
	}
	return p
}

package entity

import (
	"fmt"

	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/prefabs"
)

// NewParallaxLayers creates every background plane in spec. Layer transforms
// are relative to (anchorX, anchorY), normally the spawn point.
func NewParallaxLayers(w *ecs.World, spec *prefabs.ParallaxSpec, anchorX, anchorY float64) ([]ecs.Entity, error) {
	if spec == nil {
		return nil, nil
	}
	var out []ecs.Entity
	for _, layerSpec := range spec.Layers {
		count := max(layerSpec.Count, 1)
		for i := 0; i < count; i++ {
			e, err := NewParallaxLayer(w, layerSpec, anchorX, anchorY, i)
			if err != nil {
				return out, err
			}
			out = append(out, e)
		}
	}
	return out, nil
}

// NewParallaxLayer creates the index-th copy of a background plane.
func NewParallaxLayer(w *ecs.World, spec prefabs.ParallaxLayerSpec, anchorX, anchorY float64, index int) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)

	transform := spec.Transform
	transform.X += anchorX + float64(index)*spec.SpacingX
	transform.Y += anchorY + float64(index%2)*spec.SpacingY
	if err := addTransform(w, e, transform); err != nil {
		return 0, fmt.Errorf("parallax %s: add transform: %w", spec.Name, err)
	}

	sprite := spec.Sprite
	sprite.Seed += int64(index)
	if err := addSprite(w, e, sprite); err != nil {
		return 0, fmt.Errorf("parallax %s: add sprite: %w", spec.Name, err)
	}
	if err := addRenderLayer(w, e, spec.RenderLayer); err != nil {
		return 0, fmt.Errorf("parallax %s: add render layer: %w", spec.Name, err)
	}

	if err := ecs.Add(w, e, component.ParallaxLayerComponent.Kind(), ParallaxLayerFromSpec(spec)); err != nil {
		return 0, fmt.Errorf("parallax %s: add layer: %w", spec.Name, err)
	}
	return e, nil
}

// ParallaxLayerFromSpec converts the yaml options into a component.
func ParallaxLayerFromSpec(spec prefabs.ParallaxLayerSpec) *component.ParallaxLayer {
	return &component.ParallaxLayer{
		Name:        spec.Name,
		Strength:    spec.Strength,
		DriftSpeed:  spec.DriftSpeed,
		WrapEnabled: spec.Wrap(),
		WrapMargin:  spec.WrapMargin,
	}
}

package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/ecs/render"
	"github.com/milk9111/topdown/prefabs"
)

func addTransform(w *ecs.World, e ecs.Entity, spec prefabs.TransformSpec) error {
	sx, sy := spec.ScaleX, spec.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		Z:        spec.Z,
		ScaleX:   sx,
		ScaleY:   sy,
		Rotation: spec.Rotation,
	})
}

func addSprite(w *ecs.World, e ecs.Entity, spec prefabs.SpriteSpec) error {
	img, err := render.LoadImage(spec)
	if err != nil {
		return err
	}
	originX, originY := spec.OriginX, spec.OriginY
	if spec.Center && originX == 0 && originY == 0 {
		originX = float64(spec.Width) / 2
		originY = float64(spec.Height) / 2
	}
	return ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Image:   img,
		OriginX: originX,
		OriginY: originY,
	})
}

func addRenderLayer(w *ecs.World, e ecs.Entity, spec prefabs.RenderLayerSpec) error {
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

// SetEntityTransform moves e, keeping its physics body in sync when it has one.
func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return fmt.Errorf("entity %v has no transform", e)
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
		body.Body.SetPosition(cp.Vector{X: x, Y: y})
		body.Body.SetVelocityVector(cp.Vector{})
		body.Body.SetAngle(rotation)
	}
	return nil
}

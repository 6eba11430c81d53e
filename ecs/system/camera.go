package system

import (
	"github.com/milk9111/topdown/common"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity
	viewW        float64
	viewH        float64
	snap         bool
}

// NewCameraSystem creates a camera for a view of viewW by viewH pixels.
func NewCameraSystem(viewW, viewH float64) *CameraSystem {
	return &CameraSystem{viewW: viewW, viewH: viewH, snap: true}
}

// Snap makes the next update jump straight to the target.
func (cs *CameraSystem) Snap() {
	cs.snap = true
}

// Update eases the camera so its view is centered on the target entity.
func (cs *CameraSystem) Update(w *ecs.World) {
	if !ecs.IsAlive(w, cs.camEntity) {
		if camEntity, ok := ecs.First(w, component.CameraComponent.Kind()); ok {
			cs.camEntity = camEntity
		}
	}
	camComp, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}
	camComp.ViewWidth = cs.viewW
	camComp.ViewHeight = cs.viewH
	if camComp.Zoom <= 0 {
		camComp.Zoom = 1
	}

	if !ecs.IsAlive(w, cs.targetEntity) {
		cs.targetEntity = findEntityByNameOrTag(w, camComp.TargetName)
	}
	target, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	camTransform, ok := ecs.Get(w, cs.camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	halfW := cs.viewW / (2 * camComp.Zoom)
	halfH := cs.viewH / (2 * camComp.Zoom)
	desiredX := target.X - halfW
	desiredY := target.Y - halfH

	if e, ok := ecs.First(w, component.LevelBoundsComponent.Kind()); ok {
		bounds, _ := ecs.Get(w, e, component.LevelBoundsComponent.Kind())
		desiredX = clampView(desiredX, 2*halfW, bounds.Width)
		desiredY = clampView(desiredY, 2*halfH, bounds.Height)
	}

	if cs.snap {
		camTransform.X, camTransform.Y = desiredX, desiredY
		cs.snap = false
		return
	}
	camTransform.X = common.LerpClamped(camTransform.X, desiredX, camComp.Smoothness)
	camTransform.Y = common.LerpClamped(camTransform.Y, desiredY, camComp.Smoothness)
}

// clampView keeps a view of size span inside [0, extent]. Views larger than
// the extent are centered on it.
func clampView(pos, span, extent float64) float64 {
	if extent <= 0 {
		return pos
	}
	if span >= extent {
		return (extent - span) / 2
	}
	if pos < 0 {
		return 0
	}
	if pos+span > extent {
		return extent - span
	}
	return pos
}

func findEntityByNameOrTag(w *ecs.World, name string) ecs.Entity {
	if name == "" || name == "player" {
		if e, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
			return e
		}
	}
	return 0
}

package system

import (
	"github.com/charmbracelet/log"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/parallax"
	"github.com/milk9111/topdown/prefabs"
)

// ParallaxSystem drives background entities through a parallax.Manager.
// It must run after physics and the camera so layers see this frame's
// final target position.
type ParallaxSystem struct {
	manager      *parallax.Manager
	targetEntity ecs.Entity
	camEntity    ecs.Entity
	handles      map[ecs.Entity]parallax.LayerHandle
	warned       bool
}

func NewParallaxSystem() *ParallaxSystem {
	return &ParallaxSystem{handles: make(map[ecs.Entity]parallax.LayerHandle)}
}

// Manager exposes the underlying manager, nil before the first update.
func (ps *ParallaxSystem) Manager() *parallax.Manager {
	if ps == nil {
		return nil
	}
	return ps.manager
}

func (ps *ParallaxSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.manager == nil {
		ps.initialize(w)
	}
	ps.refreshReferences(w)
	ps.registerLayers(w)
	ps.handleResetRequests(w)

	ps.manager.Update(w.DeltaTime())
}

// initialize finds the player and camera and hands every existing
// background entity to a new manager.
func (ps *ParallaxSystem) initialize(w *ecs.World) {
	var target parallax.Target
	if e, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok && ecs.Has(w, e, component.TransformComponent.Kind()) {
		ps.targetEntity = e
		target = transformHandle{w: w, e: e}
		log.Debug("parallax: player found", "entity", e)
	} else {
		log.Warn("parallax: no player found, layers will not move")
		ps.warned = true
	}

	var viewport parallax.Viewport
	if e, ok := ecs.First(w, component.CameraComponent.Kind()); ok {
		ps.camEntity = e
		viewport = cameraViewport{w: w, e: e}
	}

	ps.manager = parallax.NewManager(target, viewport)
}

// refreshReferences re-resolves the player and camera when the entities
// they pointed at are gone.
func (ps *ParallaxSystem) refreshReferences(w *ecs.World) {
	if !ecs.IsAlive(w, ps.targetEntity) {
		if e, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok && ecs.Has(w, e, component.TransformComponent.Kind()) {
			ps.targetEntity = e
			ps.manager.SetTarget(transformHandle{w: w, e: e})
			ps.warned = false
		} else if ps.manager.Enabled() || !ps.warned {
			log.Warn("parallax: player lost, layers paused")
			ps.manager.SetTarget(nil)
			ps.warned = true
		}
	}

	if !ecs.IsAlive(w, ps.camEntity) {
		if e, ok := ecs.First(w, component.CameraComponent.Kind()); ok {
			ps.camEntity = e
			ps.manager.SetViewport(cameraViewport{w: w, e: e})
		} else {
			ps.manager.SetViewport(nil)
		}
	}
}

func (ps *ParallaxSystem) registerLayers(w *ecs.World) {
	for e := range ps.handles {
		if !ecs.IsAlive(w, e) {
			delete(ps.handles, e)
		}
	}

	ecs.ForEach2(w, component.ParallaxLayerComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, layer *component.ParallaxLayer, _ *component.Transform) {
		if layer.Registered {
			return
		}
		cfg := layerConfig(layer)
		ps.warnConfig(w, layer.Name, cfg)
		h := ps.manager.AddLayerWithConfig(transformHandle{w: w, e: e}, cfg)
		layer.Registered = true
		layer.Handle = int(h)
		ps.handles[e] = h
	})
}

func (ps *ParallaxSystem) warnConfig(w *ecs.World, name string, cfg parallax.LayerConfig) {
	if err := cfg.Validate(); err != nil {
		log.Warn("parallax: layer config", "layer", name, "err", err)
	}
	if !cfg.WrapEnabled || !ecs.IsAlive(w, ps.camEntity) {
		return
	}
	if err := parallax.CheckWrapMargin(cameraViewport{w: w, e: ps.camEntity}, cfg.WrapMargin); err != nil {
		log.Warn("parallax: wrap zones overlap", "layer", name, "err", err)
	}
}

func (ps *ParallaxSystem) handleResetRequests(w *ecs.World) {
	requests := ecs.Query(w, component.ParallaxResetRequestComponent.Kind())
	if len(requests) == 0 {
		return
	}
	ps.manager.ResetLayers()
	for _, e := range requests {
		ecs.Remove(w, e, component.ParallaxResetRequestComponent.Kind())
	}
	log.Debug("parallax: layers reset", "layers", ps.manager.Len())
}

// ApplySpec re-reads layer options from spec, matching layers by name.
// Start positions are kept.
func (ps *ParallaxSystem) ApplySpec(w *ecs.World, spec *prefabs.ParallaxSpec) int {
	if ps == nil || ps.manager == nil || spec == nil {
		return 0
	}
	updated := 0
	for e, h := range ps.handles {
		layer, ok := ecs.Get(w, e, component.ParallaxLayerComponent.Kind())
		if !ok {
			continue
		}
		layerSpec, ok := spec.Find(layer.Name)
		if !ok {
			continue
		}
		layer.Strength = layerSpec.Strength
		layer.DriftSpeed = layerSpec.DriftSpeed
		layer.WrapEnabled = layerSpec.Wrap()
		layer.WrapMargin = layerSpec.WrapMargin

		cfg := layerConfig(layer)
		ps.warnConfig(w, layer.Name, cfg)
		if ps.manager.Configure(h, cfg) {
			updated++
		}
	}
	return updated
}

func layerConfig(layer *component.ParallaxLayer) parallax.LayerConfig {
	return parallax.LayerConfig{
		ParallaxStrength: layer.Strength,
		DriftSpeed:       layer.DriftSpeed,
		WrapEnabled:      layer.WrapEnabled,
		WrapMargin:       layer.WrapMargin,
	}
}

// transformHandle reads and writes an entity's Transform. It serves both as
// the parallax target and as a layer handle.
type transformHandle struct {
	w *ecs.World
	e ecs.Entity
}

func (h transformHandle) Alive() bool {
	return ecs.Has(h.w, h.e, component.TransformComponent.Kind())
}

func (h transformHandle) Position() parallax.Vec3 {
	t, ok := ecs.Get(h.w, h.e, component.TransformComponent.Kind())
	if !ok {
		return parallax.Vec3{}
	}
	return parallax.Vec3{X: t.X, Y: t.Y, Z: t.Z}
}

func (h transformHandle) SetPosition(p parallax.Vec3) {
	t, ok := ecs.Get(h.w, h.e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	t.X, t.Y, t.Z = p.X, p.Y, p.Z
}

// cameraViewport exposes the camera entity as a parallax.Viewport. The
// camera transform is the view's top-left corner, so the center is offset
// by half the zoomed view.
type cameraViewport struct {
	w *ecs.World
	e ecs.Entity
}

func (v cameraViewport) zoom() (*component.Camera, float64) {
	cam, ok := ecs.Get(v.w, v.e, component.CameraComponent.Kind())
	if !ok {
		return nil, 1
	}
	if cam.Zoom <= 0 {
		return cam, 1
	}
	return cam, cam.Zoom
}

func (v cameraViewport) Position() parallax.Vec3 {
	t, ok := ecs.Get(v.w, v.e, component.TransformComponent.Kind())
	if !ok {
		return parallax.Vec3{}
	}
	cam, zoom := v.zoom()
	if cam == nil {
		return parallax.Vec3{X: t.X, Y: t.Y, Z: t.Z}
	}
	return parallax.Vec3{
		X: t.X + cam.ViewWidth/(2*zoom),
		Y: t.Y + cam.ViewHeight/(2*zoom),
		Z: t.Z,
	}
}

func (v cameraViewport) HalfHeight() float64 {
	cam, zoom := v.zoom()
	if cam == nil {
		return 0
	}
	return cam.ViewHeight / (2 * zoom)
}

func (v cameraViewport) Aspect() float64 {
	cam, _ := v.zoom()
	if cam == nil || cam.ViewHeight <= 0 {
		return 0
	}
	return cam.ViewWidth / cam.ViewHeight
}

package system

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

type RenderSystem struct {
	camEntity ecs.Entity
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	if !ecs.IsAlive(w, r.camEntity) {
		if camEntity, ok := ecs.First(w, component.CameraComponent.Kind()); ok {
			r.camEntity = camEntity
		}
	}

	camX, camY := 0.0, 0.0
	zoom := 1.0
	if camTransform, ok := ecs.Get(w, r.camEntity, component.TransformComponent.Kind()); ok {
		camX = camTransform.X
		camY = camTransform.Y
	}
	if camComp, ok := ecs.Get(w, r.camEntity, component.CameraComponent.Kind()); ok && camComp.Zoom > 0 {
		zoom = camComp.Zoom
	}

	entities := ecs.Query(w, component.TransformComponent.Kind(), component.RenderLayerComponent.Kind())
	sortByLayer(w, entities)

	for _, e := range entities {
		if e == r.camEntity {
			continue
		}
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())

		if s, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok && s.Image != nil {
			drawSprite(screen, s, t, camX, camY, zoom)
		}
		if emitter, ok := ecs.Get(w, e, component.ParticleEmitterComponent.Kind()); ok {
			drawParticles(screen, emitter, camX, camY, zoom)
		}
		if pickup, ok := ecs.Get(w, e, component.PickupComponent.Kind()); ok && pickup.Bar.Visible {
			drawProgressBar(screen, &pickup.Bar, t, camX, camY, zoom)
		}
	}
}

func sortByLayer(w *ecs.World, entities []ecs.Entity) {
	layerOf := func(e ecs.Entity) int {
		if layer, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
			return layer.Index
		}
		return 0
	}
	sort.SliceStable(entities, func(i, j int) bool {
		li, lj := layerOf(entities[i]), layerOf(entities[j])
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})
}

func drawSprite(screen *ebiten.Image, s *component.Sprite, t *component.Transform, camX, camY, zoom float64) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-s.OriginX, -s.OriginY)

	sx := t.ScaleX
	if sx == 0 {
		sx = 1
	}
	if s.FacingLeft {
		sx = -sx
	}
	sy := t.ScaleY
	if sy == 0 {
		sy = 1
	}

	op.GeoM.Scale(sx, sy)
	op.GeoM.Rotate(t.Rotation)
	op.GeoM.Scale(zoom, zoom)
	op.GeoM.Translate((t.X-camX)*zoom, (t.Y-camY)*zoom)

	screen.DrawImage(s.Image, op)
}

func drawParticles(screen *ebiten.Image, emitter *component.ParticleEmitter, camX, camY, zoom float64) {
	if len(emitter.Particles) == 0 {
		return
	}
	r, g, b, a := emitter.Color.RGBA()
	for _, p := range emitter.Particles {
		fade := 1 - p.Age/p.Life
		if fade <= 0 {
			continue
		}
		clr := color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(float64(a>>8) * fade)}
		size := float32(emitter.Size * zoom * (0.5 + 0.5*fade))
		vector.DrawFilledCircle(screen, float32((p.X-camX)*zoom), float32((p.Y-camY)*zoom), size, clr, true)
	}
}

// drawProgressBar draws the bar centered over t with its fill anchored left.
func drawProgressBar(screen *ebiten.Image, bar *component.ProgressBar, t *component.Transform, camX, camY, zoom float64) {
	x := float32((t.X + bar.OffsetX - bar.Width/2 - camX) * zoom)
	y := float32((t.Y + bar.OffsetY - camY) * zoom)
	w := float32(bar.Width * zoom)
	h := float32(bar.Height * zoom)

	if bar.Background != nil {
		vector.DrawFilledRect(screen, x, y, w, h, bar.Background, false)
	}
	if bar.FillWidth > 0 && bar.Fill != nil {
		vector.DrawFilledRect(screen, x, y, float32(bar.FillWidth*zoom), h, bar.Fill, false)
	}
}

package system

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

// PickupSystem fills an item's progress bar while the player stays in range
// and collects the item once the bar is full.
type PickupSystem struct{}

func NewPickupSystem() *PickupSystem { return &PickupSystem{} }

func (s *PickupSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	playerTransform, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	dt := w.DeltaTime()

	ecs.ForEach2(w, component.PickupComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pickup *component.Pickup, t *component.Transform) {
		dist := math.Hypot(t.X-playerTransform.X, t.Y-playerTransform.Y)
		if !stepPickup(pickup, dist, dt) {
			return
		}

		log.Info("picked up item", "item", pickup.Name)
		w.Events().Push(ecs.Event{
			Type: ecs.EventPickupCollected,
			Data: ecs.PickupCollected{Entity: e, Name: pickup.Name},
		})
		ecs.DestroyEntity(w, e)
	})
}

// stepPickup advances one tick for a player dist pixels away and reports
// whether the item was collected.
func stepPickup(p *component.Pickup, dist, dt float64) bool {
	p.InRange = dist <= p.Radius
	p.Bar.Visible = p.InRange || p.Progress > 0

	if p.InRange {
		p.TimeSinceLeftRange = 0
		p.Progress += dt / p.PickupTime
		if p.Progress >= 1 {
			p.Progress = 1
			p.Bar.FillWidth = p.Bar.Width
			return true
		}
	} else if p.Progress > 0 {
		p.TimeSinceLeftRange += dt
		if p.TimeSinceLeftRange >= p.DecreaseDelay {
			p.Progress -= dt * p.DecreaseSpeed / p.PickupTime
			p.Progress = math.Max(0, p.Progress)
		}
	}

	p.Bar.FillWidth = p.Progress * p.Bar.Width
	return false
}

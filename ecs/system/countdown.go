package system

import (
	"github.com/charmbracelet/log"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

type CountdownSystem struct{}

func NewCountdownSystem() *CountdownSystem { return &CountdownSystem{} }

func (s *CountdownSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()
	ecs.ForEach(w, component.CountdownComponent.Kind(), func(e ecs.Entity, c *component.Countdown) {
		if !stepCountdown(c, dt) {
			return
		}
		log.Info("time's up", "entity", e)
		w.Events().Push(ecs.Event{Type: ecs.EventTimerExpired, Data: e})
	})
}

// stepCountdown reports true on the tick the countdown stops.
func stepCountdown(c *component.Countdown, dt float64) bool {
	if !c.Running {
		return false
	}
	if c.Remaining > 0 {
		c.Remaining -= dt
		if c.Remaining > 0 {
			return false
		}
	}
	c.Remaining = 0
	c.Running = false
	c.Expired = true
	return true
}

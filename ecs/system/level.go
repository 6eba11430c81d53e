package system

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

// LevelSystem counts down the level timer and tracks the remaining items.
type LevelSystem struct{}

func NewLevelSystem() *LevelSystem { return &LevelSystem{} }

func (s *LevelSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.LevelComponent.Kind(), func(e ecs.Entity, level *component.Level) {
		if !level.Started {
			startLevel(w, level)
		}

		wasComplete, wasFailed := level.Complete, level.Failed
		stepLevel(level, func(id uint64) bool { return ecs.IsAlive(w, ecs.Entity(id)) }, w.DeltaTime())

		switch {
		case level.Complete && !wasComplete:
			log.Info("level complete", "level", level.Name, "time_remaining", fmt.Sprintf("%.2f", level.CurrentTime))
			w.Events().Push(ecs.Event{Type: ecs.EventLevelComplete, Data: e})
		case level.Failed && !wasFailed:
			log.Info("level failed, time ran out", "level", level.Name)
			w.Events().Push(ecs.Event{Type: ecs.EventLevelFailed, Data: e})
		}
	})
}

func startLevel(w *ecs.World, level *component.Level) {
	if level.AutoFind {
		level.Required = level.Required[:0]
		ecs.ForEach(w, component.PickupComponent.Kind(), func(item ecs.Entity, _ *component.Pickup) {
			level.Required = append(level.Required, uint64(item))
		})
	}
	level.ItemsRemaining = len(level.Required)
	level.CurrentTime = level.LevelTime
	level.Complete = false
	level.Failed = false
	level.Started = true
	level.TimerText = FormatTimer(level.CurrentTime)
	log.Info("level started", "level", level.Name, "items", level.ItemsRemaining, "seconds", level.LevelTime)
}

// RestartLevel clears the level's progress. The next update starts it again.
func RestartLevel(level *component.Level) {
	level.Started = false
	level.Complete = false
	level.Failed = false
	level.Required = level.Required[:0]
}

// stepLevel advances the timer and recounts items. alive reports whether a
// required item still exists.
func stepLevel(level *component.Level, alive func(uint64) bool, dt float64) {
	if level.Complete || level.Failed {
		return
	}

	remaining := level.Required[:0]
	for _, id := range level.Required {
		if alive(id) {
			remaining = append(remaining, id)
		}
	}
	level.Required = remaining

	if count := len(level.Required); count != level.ItemsRemaining {
		level.ItemsRemaining = count
		log.Info("item collected", "remaining", count)
		if count == 0 {
			level.Complete = true
			return
		}
	}

	if level.TimerEnabled {
		level.CurrentTime -= dt
		if level.CurrentTime <= 0 {
			level.CurrentTime = 0
			level.Failed = true
		}
		level.TimerText = FormatTimer(level.CurrentTime)
	}
}

// FormatTimer renders seconds as MM:SS.
func FormatTimer(seconds float64) string {
	minutes := int(math.Floor(seconds / 60))
	secs := int(math.Floor(math.Mod(seconds, 60)))
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

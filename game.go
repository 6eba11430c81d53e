package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/topdown/common"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/ecs/entity"
	"github.com/milk9111/topdown/ecs/system"
	"github.com/milk9111/topdown/prefabs"
	"golang.org/x/image/colornames"
)

type Game struct {
	world     *ecs.World
	scheduler *ecs.Scheduler

	input    *system.InputSystem
	camera   *system.CameraSystem
	parallax *system.ParallaxSystem
	render   *system.RenderSystem
	hud      *system.HUDSystem

	levelSpec   *prefabs.LevelSpec
	pickupSpec  *prefabs.PickupSpec
	levelEntity ecs.Entity
	player      ecs.Entity

	watcher *prefabs.Watcher

	paused         bool
	restartPending bool
	pauseUI        *ebitenui.UI
	resultUI       *ebitenui.UI
}

func NewGame(levelName string, debug, watch bool) (*Game, error) {
	levelSpec, err := prefabs.LoadLevelSpec(levelName)
	if err != nil {
		return nil, fmt.Errorf("game: load level %q: %w", levelName, err)
	}
	pickupSpec, err := prefabs.LoadPickupSpec()
	if err != nil {
		return nil, fmt.Errorf("game: load pickup spec: %w", err)
	}
	parallaxSpec, err := prefabs.LoadParallaxSpec()
	if err != nil {
		return nil, fmt.Errorf("game: load parallax spec: %w", err)
	}

	g := &Game{
		world:      ecs.NewWorld(),
		input:      system.NewInputSystem(),
		camera:     system.NewCameraSystem(common.BaseWidth, common.BaseHeight),
		parallax:   system.NewParallaxSystem(),
		render:     system.NewRenderSystem(),
		hud:        system.NewHUDSystem(debug),
		levelSpec:  levelSpec,
		pickupSpec: pickupSpec,
	}

	if g.levelEntity, err = entity.LoadLevelToWorld(g.world, levelSpec, pickupSpec); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	if g.player, err = entity.NewPlayerAt(g.world, levelSpec.SpawnX, levelSpec.SpawnY); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	if _, err = entity.NewCameraAt(g.world, levelSpec.SpawnX, levelSpec.SpawnY, common.BaseWidth, common.BaseHeight); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	if _, err = entity.NewParallaxLayers(g.world, parallaxSpec, levelSpec.SpawnX, levelSpec.SpawnY); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	if _, err = entity.NewDust(g.world); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	// Parallax runs after physics and the camera so layers see the final
	// player position for the frame.
	g.scheduler = ecs.NewScheduler(
		g.input,
		system.NewPlayerControllerSystem(),
		system.NewPhysicsSystem(),
		g.camera,
		g.parallax,
		system.NewPickupSystem(),
		system.NewLevelSystem(),
		system.NewCountdownSystem(),
		system.NewParticleFollowSystem(),
		system.NewParticleSystem(),
		ecs.SystemFunc(g.handleEvents),
	)
	g.pauseUI = NewPauseUI(g)

	if watch {
		w, err := prefabs.NewWatcher(prefabs.DiskDir)
		if err != nil {
			log.Warn("prefab hot reload disabled", "dir", prefabs.DiskDir, "err", err)
		} else {
			g.watcher = w
			log.Info("watching prefabs for changes", "dir", prefabs.DiskDir)
		}
	}

	log.Info("level loaded", "level", levelSpec.Name, "items", len(levelSpec.Items), "layers", len(parallaxSpec.Layers))
	return g, nil
}

func (g *Game) Update() error {
	g.world.SetDeltaTime(1 / float64(ebiten.TPS()))
	g.drainWatcher()

	if g.restartPending {
		g.restart()
	}

	switch {
	case g.resultUI != nil:
		g.resultUI.Update()
		g.input.Update(g.world)
		if in := g.playerInput(); in != nil && in.RestartPressed {
			g.restart()
		}
		return nil
	case g.paused:
		g.pauseUI.Update()
		g.input.Update(g.world)
		if in := g.playerInput(); in != nil {
			if in.RestartPressed {
				g.restart()
			} else if in.PausePressed {
				g.paused = false
			}
		}
		return nil
	}

	g.scheduler.Update(g.world)

	if in := g.playerInput(); in != nil {
		switch {
		case in.PausePressed:
			g.paused = true
		case in.RestartPressed:
			g.restartPending = true
		}
	}
	return nil
}

func (g *Game) playerInput() *component.Input {
	in, ok := ecs.Get(g.world, g.player, component.InputComponent.Kind())
	if !ok {
		return nil
	}
	return in
}

// handleEvents runs as the last system, before the queue is flushed.
func (g *Game) handleEvents(w *ecs.World) {
	w.Events().Each(ecs.EventLevelComplete, func(ecs.Event) {
		detail := ""
		if level, ok := ecs.Get(w, g.levelEntity, component.LevelComponent.Kind()); ok && level.TimerEnabled {
			detail = "Time left " + level.TimerText
		}
		g.resultUI = NewResultUI(g, "Level complete!", detail)
	})
	w.Events().Each(ecs.EventLevelFailed, func(ecs.Event) {
		detail := ""
		if level, ok := ecs.Get(w, g.levelEntity, component.LevelComponent.Kind()); ok {
			detail = fmt.Sprintf("%d items left", level.ItemsRemaining)
		}
		g.resultUI = NewResultUI(g, "Time's up!", detail)
	})
}

func (g *Game) requestRestart() {
	g.restartPending = true
}

// restart puts the player back on the spawn point, respawns every item,
// rewinds the level timer and sends the backgrounds back to where they
// started.
func (g *Game) restart() {
	g.restartPending = false
	g.paused = false
	g.resultUI = nil

	w := g.world
	for _, e := range ecs.Query(w, component.PickupComponent.Kind()) {
		ecs.DestroyEntity(w, e)
	}
	if _, err := entity.SpawnItems(w, g.levelSpec, g.pickupSpec); err != nil {
		log.Error("restart: respawn items", "err", err)
	}

	if level, ok := ecs.Get(w, g.levelEntity, component.LevelComponent.Kind()); ok {
		system.RestartLevel(level)
	}
	if c, ok := ecs.Get(w, g.levelEntity, component.CountdownComponent.Kind()); ok {
		*c = component.Countdown{Remaining: g.levelSpec.BannerTime, Running: true}
	}

	if err := entity.SetEntityTransform(w, g.player, g.levelSpec.SpawnX, g.levelSpec.SpawnY, 0); err != nil {
		log.Error("restart: move player", "err", err)
	}
	if p, ok := ecs.Get(w, g.player, component.PlayerComponent.Kind()); ok {
		p.VelocityX, p.VelocityY = 0, 0
		p.Moving, p.Running = false, false
	}

	req := ecs.CreateEntity(w)
	if err := ecs.Add(w, req, component.ParallaxResetRequestComponent.Kind(), &component.ParallaxResetRequest{}); err != nil {
		log.Error("restart: request parallax reset", "err", err)
	}
	g.camera.Snap()

	log.Info("level restarted", "level", g.levelSpec.Name)
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reloadPrefab(name)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Warn("prefab watcher", "err", err)
		default:
			return
		}
	}
}

func (g *Game) reloadPrefab(path string) {
	switch prefabs.Name(path) {
	case "parallax.yaml":
		spec, err := prefabs.LoadParallaxSpec()
		if err != nil {
			log.Warn("reload parallax", "err", err)
			return
		}
		n := g.parallax.ApplySpec(g.world, spec)
		log.Info("reloaded parallax layers", "updated", n)
	default:
		log.Debug("prefab changed, restart to apply", "file", path)
	}
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)

	g.render.Draw(g.world, screen)
	g.hud.Draw(g.world, screen)

	switch {
	case g.resultUI != nil:
		g.resultUI.Draw(screen)
	case g.paused:
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

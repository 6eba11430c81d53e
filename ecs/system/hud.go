package system

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/topdown/common"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/ecs/render"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const hudScale = 2.0

// HUDSystem draws the level timer, the item counter and the start banner
// in screen space.
type HUDSystem struct {
	face  ebtext.Face
	debug bool
}

func NewHUDSystem(debug bool) *HUDSystem {
	return &HUDSystem{face: ebtext.NewGoXFace(basicfont.Face7x13), debug: debug}
}

func (h *HUDSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if h == nil || w == nil || screen == nil {
		return
	}

	if h.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("TPS: %.2f  FPS: %.2f  entities: %d  sprites: %d", ebiten.ActualTPS(), ebiten.ActualFPS(), len(ecs.Entities(w)), render.CachedImages()))
	}

	e, ok := ecs.First(w, component.LevelComponent.Kind())
	if !ok {
		return
	}
	level, _ := ecs.Get(w, e, component.LevelComponent.Kind())

	if level.TimerEnabled {
		clr := color.Color(colornames.White)
		if level.CurrentTime <= 10 {
			clr = colornames.Tomato
		}
		h.drawText(screen, level.TimerText, common.BaseWidth/2, 24, ebtext.AlignCenter, clr)
	}
	h.drawText(screen, fmt.Sprintf("Items: %d", level.ItemsRemaining), common.BaseWidth-24, 24, ebtext.AlignEnd, colornames.White)

	if c, ok := ecs.Get(w, e, component.CountdownComponent.Kind()); ok && c.Running {
		h.drawText(screen, "Collect every item!", common.BaseWidth/2, common.BaseHeight/3, ebtext.AlignCenter, colornames.Gold)
	}
}

func (h *HUDSystem) drawText(screen *ebiten.Image, s string, x, y float64, align ebtext.Align, clr color.Color) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Scale(hudScale, hudScale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = align
	ebtext.Draw(screen, s, h.face, op)
}

package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/milk9111/topdown/parallax"
	"github.com/milk9111/topdown/prefabs"
)

// point is a bare position used for the target and each layer copy.
type point struct {
	pos   parallax.Vec3
	wraps int
	name  string
}

func (p *point) Position() parallax.Vec3 { return p.pos }

func (p *point) SetPosition(v parallax.Vec3) {
	if wrapped(p.pos.X, v.X) {
		p.wraps++
		log.Debug("wrap", "layer", p.name, "from", fmt.Sprintf("%.1f", p.pos.X), "to", fmt.Sprintf("%.1f", v.X))
	}
	p.pos = v
}

// wrapped reports a jump too large to be one tick of scrolling.
func wrapped(from, to float64) bool {
	d := to - from
	return d > 100 || d < -100
}

// centered is a viewport that stays centered on a target.
type centered struct {
	target     *point
	halfHeight float64
	aspect     float64
}

func (c centered) Position() parallax.Vec3 { return c.target.pos }
func (c centered) HalfHeight() float64     { return c.halfHeight }
func (c centered) Aspect() float64         { return c.aspect }

type layerWarning struct {
	name string
	err  error
}

type simulation struct {
	manager  *parallax.Manager
	target   *point
	viewport centered
	layers   []*point
	configs  []parallax.LayerConfig
}

// newSimulation lays out every layer copy the way the game does, anchored
// at the target's start.
func newSimulation(spec *prefabs.ParallaxSpec, startX, halfHeight, aspect float64) *simulation {
	target := &point{pos: parallax.Vec3{X: startX}}
	sim := &simulation{
		target:   target,
		viewport: centered{target: target, halfHeight: halfHeight, aspect: aspect},
	}
	sim.manager = parallax.NewManager(target, sim.viewport)

	for _, ls := range spec.Layers {
		cfg := parallax.LayerConfig{
			ParallaxStrength: ls.Strength,
			DriftSpeed:       ls.DriftSpeed,
			WrapEnabled:      ls.Wrap(),
			WrapMargin:       ls.WrapMargin,
		}
		for i := range max(ls.Count, 1) {
			p := &point{
				name: fmt.Sprintf("%s#%d", ls.Name, i),
				pos: parallax.Vec3{
					X: startX + ls.Transform.X + float64(i)*ls.SpacingX,
					Y: ls.Transform.Y + float64(i%2)*ls.SpacingY,
					Z: ls.Transform.Z,
				},
			}
			sim.manager.AddLayerWithConfig(p, cfg)
			sim.layers = append(sim.layers, p)
			sim.configs = append(sim.configs, cfg)
		}
	}
	return sim
}

func (s *simulation) check() []layerWarning {
	var out []layerWarning
	for i, cfg := range s.configs {
		if err := cfg.Validate(); err != nil {
			out = append(out, layerWarning{name: s.layers[i].name, err: err})
		}
		if !cfg.WrapEnabled {
			continue
		}
		if err := parallax.CheckWrapMargin(s.viewport, cfg.WrapMargin); err != nil {
			out = append(out, layerWarning{name: s.layers[i].name, err: err})
		}
	}
	return out
}

func (s *simulation) step(speed, dt float64) {
	s.target.pos.X += speed * dt
	s.manager.Update(dt)
}

func (s *simulation) report(tick int) {
	left, right := parallax.ViewportBounds(s.viewport)
	log.Info("tick", "n", tick, "target_x", fmt.Sprintf("%.1f", s.target.pos.X), "view", fmt.Sprintf("[%.1f, %.1f]", left, right))
	for _, l := range s.layers {
		log.Info("  layer", "name", l.name, "x", fmt.Sprintf("%.1f", l.pos.X), "y", fmt.Sprintf("%.1f", l.pos.Y), "wraps", l.wraps)
	}
}

func (s *simulation) totalWraps() int {
	n := 0
	for _, l := range s.layers {
		n += l.wraps
	}
	return n
}

// Command parallaxsim runs the parallax layers from a spec file without a
// window. A target moves along x at a fixed speed, the viewport stays
// centered on it, and layer positions are logged as the simulation runs.
package main

import (
	"flag"
	"os"

	"github.com/charmbracelet/log"
	"github.com/milk9111/topdown/prefabs"
)

func main() {
	specPath := flag.String("spec", "", "parallax spec file (defaults to the built-in prefabs/parallax.yaml)")
	ticks := flag.Int("ticks", 600, "number of ticks to simulate")
	dt := flag.Float64("dt", 1.0/60, "seconds per tick")
	speed := flag.Float64("speed", 240, "target speed along x, pixels/second")
	viewportX := flag.Float64("viewport-x", 0, "starting x of the target and the viewport center")
	halfHeight := flag.Float64("half-height", 360, "viewport half height")
	aspect := flag.Float64("aspect", 16.0/9, "viewport aspect ratio")
	every := flag.Int("every", 60, "log layer positions every n ticks (0 logs only the final state)")
	debug := flag.Bool("debug", false, "log every wrap")
	flag.Parse()

	if *debug {
		log.SetLevel(log.DebugLevel)
	}
	if *dt < 0 || *ticks < 0 {
		log.Fatal("ticks and dt must not be negative", "ticks", *ticks, "dt", *dt)
	}

	spec, err := loadSpec(*specPath)
	if err != nil {
		log.Fatal("failed to load parallax spec", "err", err)
	}

	sim := newSimulation(spec, *viewportX, *halfHeight, *aspect)
	if len(sim.layers) == 0 {
		log.Warn("spec has no layers", "spec", *specPath)
		os.Exit(0)
	}
	for _, w := range sim.check() {
		log.Warn("layer config", "layer", w.name, "err", w.err)
	}

	for tick := 1; tick <= *ticks; tick++ {
		sim.step(*speed, *dt)
		if *every > 0 && tick%*every == 0 {
			sim.report(tick)
		}
	}
	sim.report(*ticks)
	log.Info("done", "ticks", *ticks, "target_x", sim.target.pos.X, "wraps", sim.totalWraps())
}

func loadSpec(path string) (*prefabs.ParallaxSpec, error) {
	if path == "" {
		return prefabs.LoadParallaxSpec()
	}
	spec, err := prefabs.LoadSpecFile[prefabs.ParallaxSpec](path)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

package parallax

import (
	"errors"
	"math"
	"testing"
)

type point struct {
	pos  Vec3
	dead bool
}

func (p *point) Position() Vec3      { return p.pos }
func (p *point) SetPosition(v Vec3) { p.pos = v }
func (p *point) Alive() bool        { return !p.dead }

type camera struct {
	pos        Vec3
	halfHeight float64
	aspect     float64
}

func (c *camera) Position() Vec3      { return c.pos }
func (c *camera) HalfHeight() float64 { return c.halfHeight }
func (c *camera) Aspect() float64     { return c.aspect }

// halfWidth10 is centered at x=0 with a half-width of 10.
func halfWidth10() *camera {
	return &camera{halfHeight: 5, aspect: 2}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestZeroStrengthInvariance(t *testing.T) {
	target := &point{}
	layer := &point{pos: Vec3{X: 3, Y: 4, Z: 1}}
	m := NewManager(target, halfWidth10(), NewLayer(layer, LayerConfig{}))

	for _, step := range []Vec3{{X: 5}, {X: -20, Y: 3}, {Y: 100}, {}} {
		target.pos = target.pos.Add(step)
		m.Update(0.016)
	}

	if layer.pos != (Vec3{X: 3, Y: 4, Z: 1}) {
		t.Fatalf("expected layer unchanged, got %+v", layer.pos)
	}
}

func TestFullStrengthTracking(t *testing.T) {
	target := &point{pos: Vec3{X: 1, Y: 1}}
	layer := &point{pos: Vec3{X: 10, Y: -2}}
	m := NewManager(target, nil, NewLayer(layer, LayerConfig{ParallaxStrength: 1}))

	target.pos = Vec3{X: 4, Y: -6}
	m.Update(0.5)

	want := Vec3{X: 13, Y: -9}
	if layer.pos != want {
		t.Fatalf("expected %+v, got %+v", want, layer.pos)
	}
}

func TestDriftAccumulation(t *testing.T) {
	target := &point{}
	layer := &point{}
	const drift = 1.5
	m := NewManager(target, nil, NewLayer(layer, LayerConfig{DriftSpeed: drift}))

	ticks := []float64{0.016, 0.033, 0.5, 0, 1.25}
	total := 0.0
	for _, dt := range ticks {
		m.Update(dt)
		total += dt
	}

	if !approx(layer.pos.X, -drift*total) {
		t.Fatalf("expected x=%g, got %g", -drift*total, layer.pos.X)
	}
	if layer.pos.Y != 0 || layer.pos.Z != 0 {
		t.Fatalf("drift must be horizontal only, got %+v", layer.pos)
	}
}

func TestWrap(t *testing.T) {
	cases := []struct {
		name  string
		start Vec3
		want  Vec3
	}{
		{"left", Vec3{X: -12.01, Y: 7, Z: 2}, Vec3{X: 12, Y: 7, Z: 2}},
		{"right", Vec3{X: 12.01, Y: -3, Z: 1}, Vec3{X: -12, Y: -3, Z: 1}},
		{"inside_left_zone_boundary", Vec3{X: -12}, Vec3{X: -12}},
		{"inside_right_zone_boundary", Vec3{X: 12}, Vec3{X: 12}},
		{"on_screen", Vec3{X: 3}, Vec3{X: 3}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			layer := &point{pos: c.start}
			m := NewManager(&point{}, halfWidth10(), NewLayer(layer, LayerConfig{WrapEnabled: true, WrapMargin: 2}))
			m.Update(0.016)
			if layer.pos != c.want {
				t.Fatalf("expected %+v, got %+v", c.want, layer.pos)
			}
		})
	}
}

func TestWrapFollowsViewport(t *testing.T) {
	cam := halfWidth10()
	cam.pos.X = 100
	layer := &point{pos: Vec3{X: 80}}
	m := NewManager(&point{}, cam, NewLayer(layer, LayerConfig{WrapEnabled: true, WrapMargin: 5}))

	m.Update(0)

	if layer.pos.X != 115 {
		t.Fatalf("expected wrap to 115, got %g", layer.pos.X)
	}
}

func TestNoDoubleWrap(t *testing.T) {
	layer := &point{pos: Vec3{X: -50}}
	m := NewManager(&point{}, halfWidth10(), NewLayer(layer, LayerConfig{WrapEnabled: true, WrapMargin: 2}))

	m.Update(0)
	if layer.pos.X != 12 {
		t.Fatalf("expected single relocation to 12, got %g", layer.pos.X)
	}

	// Placement just past the right edge is inside the right zone and must stay.
	m.Update(0)
	if layer.pos.X != 12 {
		t.Fatalf("expected layer to stay at 12, got %g", layer.pos.X)
	}
}

func TestWrapDisabled(t *testing.T) {
	layer := &point{pos: Vec3{X: -50}}
	m := NewManager(&point{}, halfWidth10(), NewLayer(layer, LayerConfig{WrapEnabled: false, WrapMargin: 2}))
	m.Update(0.1)
	if layer.pos.X != -50 {
		t.Fatalf("expected no wrap, got %g", layer.pos.X)
	}
}

func TestResetIdempotence(t *testing.T) {
	target := &point{}
	a := &point{pos: Vec3{X: 1, Y: 2}}
	b := &point{pos: Vec3{X: -4, Z: 3}}
	m := NewManager(target, halfWidth10(),
		NewLayer(a, LayerConfig{ParallaxStrength: 0.3, DriftSpeed: 2}),
		NewLayer(b, LayerConfig{ParallaxStrength: 1, WrapEnabled: true, WrapMargin: 1}),
	)

	for i := 0; i < 10; i++ {
		target.pos.X += 3
		m.Update(0.1)
	}

	m.ResetLayers()
	onceA, onceB := a.pos, b.pos
	m.ResetLayers()

	if a.pos != onceA || b.pos != onceB {
		t.Fatalf("second reset changed state: %+v %+v vs %+v %+v", a.pos, b.pos, onceA, onceB)
	}
	if a.pos != (Vec3{X: 1, Y: 2}) || b.pos != (Vec3{X: -4, Z: 3}) {
		t.Fatalf("expected start positions, got %+v %+v", a.pos, b.pos)
	}

	// The jump back must not leak into the next tick as displacement.
	m.Update(0)
	if a.pos != (Vec3{X: 1, Y: 2}) {
		t.Fatalf("expected no displacement after reset, got %+v", a.pos)
	}
}

func TestResetKeepsConfig(t *testing.T) {
	layer := &point{}
	m := NewManager(&point{}, nil, NewLayer(layer, LayerConfig{DriftSpeed: 3, WrapEnabled: true, WrapMargin: 4}))
	m.ResetLayers()

	l, ok := m.Layer(0)
	if !ok {
		t.Fatal("expected layer 0")
	}
	if l.DriftSpeed != 3 || !l.WrapEnabled || l.WrapMargin != 4 {
		t.Fatalf("reset changed configuration: %+v", l.LayerConfig)
	}
}

func TestLayerIndependence(t *testing.T) {
	configs := []struct {
		start Vec3
		cfg   LayerConfig
	}{
		{Vec3{X: 0}, LayerConfig{ParallaxStrength: 0.2, DriftSpeed: 1}},
		{Vec3{X: 9, Y: 1}, LayerConfig{ParallaxStrength: 0.8, WrapEnabled: true, WrapMargin: 1}},
		{Vec3{X: -11.5}, LayerConfig{ParallaxStrength: 0, DriftSpeed: 4, WrapEnabled: true, WrapMargin: 0.5}},
		{Vec3{X: 2, Z: 5}, LayerConfig{ParallaxStrength: 1}},
	}
	movement := Vec3{X: 2.5, Y: -1}
	const dt = 0.25

	shared := make([]*point, len(configs))
	layers := make([]Layer, len(configs))
	for i, c := range configs {
		shared[i] = &point{pos: c.start}
		layers[i] = NewLayer(shared[i], c.cfg)
	}
	target := &point{}
	m := NewManager(target, halfWidth10(), layers...)
	target.pos = movement
	m.Update(dt)

	for i, c := range configs {
		alone := &point{pos: c.start}
		soloTarget := &point{}
		solo := NewManager(soloTarget, halfWidth10(), NewLayer(alone, c.cfg))
		soloTarget.pos = movement
		solo.Update(dt)

		if alone.pos != shared[i].pos {
			t.Fatalf("layer %d: shared %+v, alone %+v", i, shared[i].pos, alone.pos)
		}
	}
}

func TestScenarioHalfStrength(t *testing.T) {
	target := &point{}
	layer := &point{pos: Vec3{X: 100}}
	m := NewManager(target, halfWidth10(), NewLayer(layer, LayerConfig{ParallaxStrength: 0.5}))

	target.pos = Vec3{X: 5}
	m.Update(1)

	if layer.pos != (Vec3{X: 102.5}) {
		t.Fatalf("expected (102.5, 0), got %+v", layer.pos)
	}
}

func TestDisabledWithoutTarget(t *testing.T) {
	layer := &point{pos: Vec3{X: -100}}
	m := NewManager(nil, halfWidth10(), NewLayer(layer, LayerConfig{DriftSpeed: 10, WrapEnabled: true}))
	if m.Enabled() {
		t.Fatal("expected disabled manager")
	}
	m.Update(1)
	m.ResetLayers()
	if layer.pos.X != -100 {
		t.Fatalf("expected no-op, got %+v", layer.pos)
	}

	target := &point{pos: Vec3{X: 50}}
	m.SetTarget(target)
	m.Update(0)
	if layer.pos.X != 10 {
		t.Fatalf("expected wrap after target set, got %g", layer.pos.X)
	}
}

func TestNilViewportSkipsWrapOnly(t *testing.T) {
	target := &point{}
	layer := &point{pos: Vec3{X: -1000}}
	m := NewManager(target, nil, NewLayer(layer, LayerConfig{ParallaxStrength: 1, WrapEnabled: true}))
	target.pos.X = 1
	m.Update(0)
	if layer.pos.X != -999 {
		t.Fatalf("expected displacement without wrap, got %g", layer.pos.X)
	}
}

func TestSkipsMissingHandles(t *testing.T) {
	target := &point{}
	dead := &point{pos: Vec3{X: 7}}
	live := &point{}
	m := NewManager(target, nil,
		NewLayer(nil, LayerConfig{ParallaxStrength: 1}),
		NewLayer(dead, LayerConfig{ParallaxStrength: 1}),
		NewLayer(live, LayerConfig{ParallaxStrength: 1}),
	)
	dead.dead = true

	target.pos.X = 3
	m.Update(0)
	m.ResetLayers()
	m.Update(0)

	if dead.pos.X != 7 {
		t.Fatalf("dead handle was moved: %+v", dead.pos)
	}
	if live.pos.X != 0 {
		t.Fatalf("expected live layer reset to 0, got %g", live.pos.X)
	}
}

func TestAddLayer(t *testing.T) {
	target := &point{}
	first := &point{pos: Vec3{X: 1}}
	m := NewManager(target, nil, NewLayer(first, LayerConfig{ParallaxStrength: 1}))

	target.pos.X = 2
	m.Update(0)

	added := &point{pos: Vec3{X: 40, Y: 3}}
	h := m.AddLayer(added, 0.25)
	if m.Len() != 2 {
		t.Fatalf("expected 2 layers, got %d", m.Len())
	}
	l, ok := m.Layer(h)
	if !ok {
		t.Fatal("expected added layer")
	}
	if l.StartPosition() != (Vec3{X: 40, Y: 3}) {
		t.Fatalf("expected start at call time, got %+v", l.StartPosition())
	}
	if l.DriftSpeed != DefaultDriftSpeed || !l.WrapEnabled || l.WrapMargin != DefaultWrapMargin {
		t.Fatalf("expected defaults, got %+v", l.LayerConfig)
	}
	if first.pos.X != 3 {
		t.Fatalf("adding a layer touched another: %+v", first.pos)
	}
	if start := m.layers[0].StartPosition(); start.X != 1 {
		t.Fatalf("adding a layer changed another start: %+v", start)
	}
}

func TestConfigure(t *testing.T) {
	layer := &point{pos: Vec3{X: 5}}
	m := NewManager(&point{}, nil, NewLayer(layer, LayerConfig{}))
	layer.pos.X = 8

	if !m.Configure(0, LayerConfig{DriftSpeed: 2}) {
		t.Fatal("expected configure to succeed")
	}
	if m.Configure(3, LayerConfig{}) {
		t.Fatal("expected configure of unknown handle to fail")
	}
	m.Update(1)
	if layer.pos.X != 6 {
		t.Fatalf("expected drift of 2, got %g", layer.pos.X)
	}
	l, _ := m.Layer(0)
	if l.StartPosition().X != 5 {
		t.Fatalf("configure must not move start, got %+v", l.StartPosition())
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  LayerConfig
		want error
	}{
		{"ok", LayerConfig{ParallaxStrength: 0.5, WrapMargin: 1}, nil},
		{"strength_high", LayerConfig{ParallaxStrength: 1.1}, ErrStrengthOutOfRange},
		{"strength_low", LayerConfig{ParallaxStrength: -0.1}, ErrStrengthOutOfRange},
		{"negative_margin", LayerConfig{WrapMargin: -1}, ErrNegativeWrapMargin},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.cfg.Validate()
			if !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
		})
	}
}

func TestCheckWrapMargin(t *testing.T) {
	cam := halfWidth10()
	if err := CheckWrapMargin(cam, 9.99); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := CheckWrapMargin(cam, 10); !errors.Is(err, ErrWrapMarginTooWide) {
		t.Fatalf("expected ErrWrapMarginTooWide, got %v", err)
	}
	if err := CheckWrapMargin(nil, 1000); err != nil {
		t.Fatalf("nil viewport should pass, got %v", err)
	}
}

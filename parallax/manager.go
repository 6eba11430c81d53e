// Package parallax scrolls background layers from the motion of a target,
// adds a constant per-layer drift, and wraps layers horizontally around a
// moving viewport.
//
// The Manager is driven once per frame, after the target's position has
// been finalized for that frame. It is not safe for concurrent use.
package parallax

// Manager owns a set of layers and moves them every tick.
type Manager struct {
	target   Target
	viewport Viewport
	layers   []Layer
	previous Vec3
}

// NewManager initializes a manager. A nil target leaves the manager
// disabled: Update does nothing until SetTarget supplies one. Each layer's
// start position is captured from its handle now.
func NewManager(target Target, viewport Viewport, layers ...Layer) *Manager {
	m := &Manager{viewport: viewport}
	m.SetTarget(target)
	for _, l := range layers {
		m.add(l)
	}
	return m
}

// Enabled reports whether the manager has a target to follow.
func (m *Manager) Enabled() bool {
	return m != nil && m.target != nil
}

// SetTarget replaces the target and re-seeds the previous position so the
// next tick applies no displacement from the switch.
func (m *Manager) SetTarget(target Target) {
	if m == nil {
		return
	}
	m.target = target
	if target != nil {
		m.previous = target.Position()
	}
}

// SetViewport replaces the viewport used for wrapping. nil disables wrapping.
func (m *Manager) SetViewport(viewport Viewport) {
	if m == nil {
		return
	}
	m.viewport = viewport
}

// Update advances every layer by one tick of dt seconds. dt must be >= 0.
func (m *Manager) Update(dt float64) {
	if !m.Enabled() {
		return
	}

	current := m.target.Position()
	movement := current.Sub(m.previous)

	var left, right float64
	if m.viewport != nil {
		left, right = ViewportBounds(m.viewport)
	}

	for i := range m.layers {
		l := &m.layers[i]
		if !l.usable() {
			continue
		}

		displacement := movement.Scale(l.ParallaxStrength).Add(driftDirection.Scale(l.DriftSpeed * dt))
		pos := l.Handle.Position().Add(displacement)

		if l.WrapEnabled && m.viewport != nil {
			pos.X, _ = wrapX(pos.X, left, right, l.WrapMargin)
		}
		l.Handle.SetPosition(pos)
	}

	m.previous = current
}

// AddLayer registers handle with the given strength and the default drift
// and wrap settings.
func (m *Manager) AddLayer(handle Positionable, strength float64) LayerHandle {
	return m.AddLayerWithConfig(handle, DefaultLayerConfig(strength))
}

// AddLayerWithConfig registers handle with cfg. The start position is the
// handle's position at call time.
func (m *Manager) AddLayerWithConfig(handle Positionable, cfg LayerConfig) LayerHandle {
	if m == nil {
		return -1
	}
	return m.add(NewLayer(handle, cfg))
}

func (m *Manager) add(l Layer) LayerHandle {
	if l.usable() {
		l.start = l.Handle.Position()
	}
	m.layers = append(m.layers, l)
	return LayerHandle(len(m.layers) - 1)
}

// Configure replaces the options of a registered layer. The start position
// is left alone.
func (m *Manager) Configure(h LayerHandle, cfg LayerConfig) bool {
	l, ok := m.Layer(h)
	if !ok {
		return false
	}
	l.LayerConfig = cfg
	return true
}

// Layer returns the layer registered under h.
func (m *Manager) Layer(h LayerHandle) (*Layer, bool) {
	if m == nil || h < 0 || int(h) >= len(m.layers) {
		return nil, false
	}
	return &m.layers[h], true
}

// Len returns the number of registered layers.
func (m *Manager) Len() int {
	if m == nil {
		return 0
	}
	return len(m.layers)
}

// ResetLayers moves every layer back to its start position and re-seeds
// the previous target position.
func (m *Manager) ResetLayers() {
	if m == nil {
		return
	}
	for i := range m.layers {
		l := &m.layers[i]
		if !l.usable() {
			continue
		}
		l.Handle.SetPosition(l.start)
	}
	if m.target != nil {
		m.previous = m.target.Position()
	}
}

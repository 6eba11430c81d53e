package component

import "image/color"

// Particle is a single emitted dust mote.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Age    float64
	Life   float64
}

// ParticleEmitter spawns particles at its Transform while Playing.
type ParticleEmitter struct {
	Playing  bool
	Rate     float64
	Lifetime float64
	Speed    float64
	Spread   float64
	Size     float64
	Color    color.Color
	// Direction is +1 or -1 and mirrors the emission horizontally.
	Direction float64
	MaxAlive  int

	Accumulator float64
	Particles   []Particle
	Seed        uint64
}

var ParticleEmitterComponent = NewComponent[ParticleEmitter]()

// ParticleFollow pins an emitter to the left or right side of a target
// depending on which way the target's sprite faces.
type ParticleFollow struct {
	TargetName   string
	LeftOffsetX  float64
	LeftOffsetY  float64
	RightOffsetX float64
	RightOffsetY float64
}

var ParticleFollowComponent = NewComponent[ParticleFollow]()

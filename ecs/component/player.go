package component

// Player holds top-down movement tuning and the smoothed velocity.
type Player struct {
	MoveSpeed             float64
	Acceleration          float64
	Deceleration          float64
	RotateTowardsMovement bool
	RotationSpeed         float64

	VelocityX float64
	VelocityY float64
	Moving    bool
	Running   bool
}

var PlayerComponent = NewComponent[Player]()

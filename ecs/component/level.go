package component

// Level tracks the timer and the items left to collect.
type Level struct {
	Name         string
	LevelTime    float64
	TimerEnabled bool
	AutoFind     bool
	SpawnX       float64
	SpawnY       float64

	CurrentTime    float64
	ItemsRemaining int
	Required       []uint64
	Started        bool
	Complete       bool
	Failed         bool
	TimerText      string
}

var LevelComponent = NewComponent[Level]()

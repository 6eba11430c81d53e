package component

// Countdown is a seconds-based timer that stops itself once it runs out.
type Countdown struct {
	Remaining float64
	Running   bool
	Expired   bool
}

var CountdownComponent = NewComponent[Countdown]()

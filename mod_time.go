package helio

import (
	"time"
)

// Time tracks wall-clock time, the delta since the previous tick and a
// monotonically increasing frame counter.
type Time struct {
	Now   time.Time
	Dt    time.Duration
	Frame uint64
}

type TimeModule struct{}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Time{Now: time.Now()})
	app.UseSystem(
		System(timeSystem).InStage(Prelude),
	)
}

func timeSystem(t *Time) {
	now := time.Now()
	t.Dt = now.Sub(t.Now)
	t.Now = now
	t.Frame++
}

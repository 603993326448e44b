package app

// Time is the frame clock, stored as a singleton and advanced by App.Update
// before any stage runs.
type Time struct {
	// Delta is the duration of the current frame in seconds.
	Delta float64
	// Elapsed is the number of seconds since the first frame.
	Elapsed float64
	// Frame counts completed calls to App.Update, starting at 1 on the first frame.
	Frame uint64
}

func (t *Time) advance(dt float64) {
	t.Delta = dt
	t.Elapsed += dt
	t.Frame++
}

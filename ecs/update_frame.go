package ecs

// UpdateFrame is passed to every system executed by a Scheduler in one Once call.
type UpdateFrame struct {
	// DeltaTime is the time in seconds since the previous frame.
	DeltaTime float64
	// Elapsed is the sum of every DeltaTime this scheduler has run, including this one.
	Elapsed  float64
	Commands *Commands
	Storage  *Storage
}

func newUpdateFrame(dt, elapsed float64, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Elapsed:   elapsed,
		Commands:  newCommands(),
		Storage:   storage,
	}
}

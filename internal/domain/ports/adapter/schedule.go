package adapter

// ScheduleRunner owns the wall-clock trigger engine. AddDaily installs cmd to
// run every day at hour:minute and returns a handle; Remove cancels a handle
// and is a no-op for handles that are gone already.
type ScheduleRunner interface {
	AddDaily(hour, minute int, cmd func()) (int, error)
	Remove(id int)
}

package weather

import "time"

// SetClock pins the resolver's notion of now for tests outside the package.
func (r *WindowResolver) SetClock(now func() time.Time) {
	r.now = now
}

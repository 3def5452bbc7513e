package clock

import "time"

// FakeClock pins Now to a fixed instant so tests get deterministic
// issued_at, paid_at, and exchange dates. Times are normalized to UTC
// the same way SystemClock reports them.
type FakeClock struct {
	now time.Time
}

func NewFakeClock(at time.Time) *FakeClock {
	return &FakeClock{now: at.UTC()}
}

func (f *FakeClock) Now() time.Time {
	return f.now
}

// Advance moves the pinned instant forward, for tests that span due
// dates or aging buckets.
func (f *FakeClock) Advance(d time.Duration) {
	f.now = f.now.Add(d)
}

// SetNow repins the clock to an absolute instant.
func (f *FakeClock) SetNow(at time.Time) {
	f.now = at.UTC()
}

var _ Clock = (*FakeClock)(nil)

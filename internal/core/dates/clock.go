package dates

import "time"

// SystemClock reads the host time in the bucket's location. Core code only
// ever sees the port.Clock interface so tests can pin time.
type SystemClock struct {
	bucket *Bucket
}

func NewSystemClock(bucket *Bucket) *SystemClock {
	return &SystemClock{bucket: bucket}
}

func (c *SystemClock) Now() time.Time {
	return time.Now().In(c.bucket.Location())
}

func (c *SystemClock) Today() time.Time {
	return c.bucket.DayStart(time.Now())
}

// FixedClock pins Now/Today for tests.
type FixedClock struct {
	Time   time.Time
	Bucket *Bucket
}

func (c *FixedClock) Now() time.Time {
	return c.Time
}

func (c *FixedClock) Today() time.Time {
	return c.Bucket.DayStart(c.Time)
}

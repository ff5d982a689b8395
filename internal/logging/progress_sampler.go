package logging

import "math"

// ProgressSampler thins byte-count progress so a long transfer logs once per
// percentage bucket instead of once per write.
type ProgressSampler struct {
	total      int64
	bucketSize float64
	lastBucket int
}

// NewProgressSampler samples a transfer of total bytes, emitting every
// bucketSize percent (default 10).
func NewProgressSampler(total int64, bucketSize float64) *ProgressSampler {
	if bucketSize <= 0 {
		bucketSize = 10
	}
	return &ProgressSampler{total: total, bucketSize: bucketSize, lastBucket: -1}
}

// Observe records that done bytes have been transferred. It returns the
// floored percentage and true when a new bucket was entered. Unknown totals
// never emit; overshoot is reported as 100.
func (s *ProgressSampler) Observe(done int64) (float64, bool) {
	if s == nil || s.total <= 0 || done < 0 {
		return 0, false
	}
	percent := math.Min(math.Floor(float64(done)*100/float64(s.total)), 100)
	bucket := int(percent / s.bucketSize)
	if bucket <= s.lastBucket {
		return percent, false
	}
	s.lastBucket = bucket
	return percent, true
}

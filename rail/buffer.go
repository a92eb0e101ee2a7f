package rail

import "github.com/samber/mo"

// Range is a span of media already downloaded, in seconds.
type Range struct {
	Start float64
	End   float64
}

// BufferReport carries one of three buffering representations. They are
// consulted in priority order: buffered ranges against the duration, then the
// byte counters, then a generic loaded/total progress event.
type BufferReport struct {
	Ranges   []Range
	Duration mo.Option[float64]

	BufferedBytes mo.Option[int64]
	TotalBytes    int64

	LengthComputable bool
	Loaded           float64
	Total            float64
}

// Ratio returns the unclamped loaded fraction, or None if no representation is usable.
func (r BufferReport) Ratio() mo.Option[float64] {
	if d, ok := knownDuration(r.Duration); ok && len(r.Ranges) > 0 {
		// only the first range is tracked, later ranges are seek islands
		return mo.Some(r.Ranges[0].End / d)
	}

	if buffered, ok := r.BufferedBytes.Get(); ok && r.TotalBytes > 0 {
		return mo.Some(float64(buffered) / float64(r.TotalBytes))
	}

	if r.LengthComputable && r.Total != 0 {
		return mo.Some(r.Loaded / r.Total)
	}

	return mo.None[float64]()
}

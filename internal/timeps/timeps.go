// ABOUTME: Precision time arithmetic on a single picosecond integer ladder
// ABOUTME: Pure functions, saturating on uint64; no floating point

package timeps

import "math"

// TimePs is a point in time measured in picoseconds since an arbitrary epoch.
type TimePs uint64

// Max is the saturating ceiling for all TimePs arithmetic.
const Max TimePs = math.MaxUint64

const (
	psPerNs = 1000
	psPerMs = psPerNs * 1000
	psPerS  = psPerMs * 1000

	// fsPerPs is the femtosecond-per-picosecond ratio used only to derive
	// the minimum viewable duration (§4.4).
	fsPerPs = 1000
)

// FromNanos converts whole nanoseconds to TimePs, saturating on overflow.
func FromNanos(ns uint64) TimePs {
	return satMul(TimePs(ns), psPerNs)
}

// FromPicoseconds is the identity conversion, provided for call-site clarity.
func FromPicoseconds(ps uint64) TimePs {
	return TimePs(ps)
}

// FromSeconds converts whole seconds to TimePs, saturating on overflow.
func FromSeconds(s uint64) TimePs {
	return satMul(TimePs(s), psPerS)
}

// ToNanosFloor converts ps to ns rounding toward zero (used for range starts, §4.1).
func (t TimePs) ToNanosFloor() uint64 {
	return uint64(t) / psPerNs
}

// ToNanosCeil converts ps to ns rounding away from zero (used for range ends, §4.1).
func (t TimePs) ToNanosCeil() uint64 {
	v := uint64(t)
	if v%psPerNs == 0 {
		return v / psPerNs
	}
	return v/psPerNs + 1
}

// Add returns t+d, saturating at Max.
func (t TimePs) Add(d TimePs) TimePs {
	return satAdd(t, d)
}

// Sub returns t-d, saturating at 0 (never wraps, §4.1).
func (t TimePs) Sub(d TimePs) TimePs {
	if d > t {
		return 0
	}
	return t - d
}

// satAdd adds two TimePs values saturating at Max instead of wrapping.
func satAdd(a, b TimePs) TimePs {
	sum := a + b
	if sum < a { // overflow
		return Max
	}
	return sum
}

// satMul multiplies a TimePs by a small positive scalar, saturating at Max.
func satMul(a TimePs, scalar uint64) TimePs {
	if a == 0 || scalar == 0 {
		return 0
	}
	if uint64(a) > uint64(Max)/scalar {
		return Max
	}
	return TimePs(uint64(a) * scalar)
}

// TimePerPixel is a time-per-pixel rate in picoseconds.
type TimePerPixel TimePs

// FromDurationAndWidth computes ps-per-pixel, floored at 1 (§4.1):
// TimePerPixel.from_duration_and_width(dur_ps, w_px) = max(1, dur_ps/w_px).
func FromDurationAndWidth(durationPs TimePs, widthPx int) TimePerPixel {
	if widthPx <= 0 {
		return TimePerPixel(1)
	}
	v := uint64(durationPs) / uint64(widthPx)
	if v < 1 {
		v = 1
	}
	return TimePerPixel(v)
}

// Picoseconds returns the rate as a raw picosecond count.
func (t TimePerPixel) Picoseconds() uint64 {
	return uint64(t)
}

// MinDurationForWidth derives the minimum viewable duration from the
// femtosecond floor MIN_TIME_PER_PIXEL_FS=200 (§4.4):
// min_duration_ps = ceil(canvas_w * 200 fs).
func MinDurationForWidth(widthPx int) TimePs {
	const minFsPerPixel = 200
	if widthPx <= 0 {
		widthPx = 1
	}
	totalFs := uint64(widthPx) * minFsPerPixel
	// ceil(totalFs / fsPerPs)
	ps := totalFs / fsPerPs
	if totalFs%fsPerPs != 0 {
		ps++
	}
	if ps < 1 {
		ps = 1
	}
	return TimePs(ps)
}

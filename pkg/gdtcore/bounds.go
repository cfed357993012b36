package gdtcore

import "math"

// Bounds holds the overflow/precision limits that guard the lower-envelope
// arithmetic (C4). The reference implementation derives these from the
// bit widths of its AbscissaIndexType and ApexHeightType integer types;
// this port uses float64 throughout for abscissae and apex heights (see
// SPEC_FULL.md, "numeric representation decision"), so the limits are
// instead derived from float64's 53-bit mantissa, which is the point past
// which sums of the form (2*s^2*maxAbscissa) used by the intersection
// formula would start losing integer precision.
type Bounds struct {
	// MinimalSpacingPrecision is m in minimalSpacing = 10^-m. 0 means
	// spacing may be an integer value (the minimal representable spacing
	// is 1).
	MinimalSpacingPrecision int
	// MinimalSpacing is the smallest spacing value the bounds were
	// computed to tolerate.
	MinimalSpacing float64
	// MaxSpacing is the largest spacing value the bounds were computed
	// to tolerate.
	MaxSpacing float64
	// MaxAbscissa is the largest abscissa index addParabola will accept.
	MaxAbscissa float64
	// MaxApexHeight is the sentinel "infinity" apex height: the value
	// callers must use to mark "this voxel is not a site".
	MaxApexHeight float64
}

// mantissaLimit is the largest integer exactly representable in float64
// (2^53); values add and multiply without rounding error up to this.
const mantissaLimit = float64(1 << 53)

// precisionMargin reserves headroom below mantissaLimit for the
// intersection formula's numerator/denominator terms, which combine two
// apex heights and two squared-spacing offsets.
const precisionMargin = 1e-3

// NewBounds computes Bounds for the given MinimalSpacingPrecision and the
// largest spacing value that will be used. Per §4.4, MaxApexHeight is
// chosen so adding it to the largest representable squared offset cannot
// overflow (here: cannot lose integer precision), and MaxAbscissa is the
// largest abscissa for which (maxAbscissa*maxSpacing)^2 stays within that
// budget.
func NewBounds(minimalSpacingPrecision int, maxSpacing float64) Bounds {
	if maxSpacing <= 0 {
		maxSpacing = 1
	}
	maxApexHeight := mantissaLimit * precisionMargin
	maxAbscissa := math.Floor(math.Sqrt(maxApexHeight) / maxSpacing)

	return Bounds{
		MinimalSpacingPrecision: minimalSpacingPrecision,
		MinimalSpacing:          math.Pow(10, -float64(minimalSpacingPrecision)),
		MaxSpacing:              maxSpacing,
		MaxAbscissa:             maxAbscissa,
		MaxApexHeight:           maxApexHeight,
	}
}

// DefaultBounds returns the bounds the reference filter uses by default:
// MinimalSpacingPrecision = 3 (spacing down to 0.001), unit maximum
// spacing.
func DefaultBounds() Bounds {
	return NewBounds(3, 1)
}

// Clamp restricts x to [-MaxAbscissa, MaxAbscissa], as required when
// clamping an intersection abscissa (§4.1, step "The resulting x* is then
// clamped").
func (b Bounds) Clamp(x float64) float64 {
	if x > b.MaxAbscissa {
		return b.MaxAbscissa
	}
	if x < -b.MaxAbscissa {
		return -b.MaxAbscissa
	}
	return x
}

// ValidAbscissa reports whether i is within [-MaxAbscissa, MaxAbscissa].
func (b Bounds) ValidAbscissa(i float64) bool {
	return i >= -b.MaxAbscissa && i <= b.MaxAbscissa
}

// ValidApexHeight reports whether y is a legal, finite apex height.
func (b Bounds) ValidApexHeight(y float64) bool {
	return y <= b.MaxApexHeight
}

package gdtcore

import "math"

// parabola is p(x) = (x*s - i*s)^2 + y, with label l carried along. i and y
// are the apex abscissa and height.
type parabola[L any] struct {
	i float64
	y float64
	l L
}

// parabolaRegion pairs a parabola with the abscissa from which it starts
// dominating the envelope (§3, "Envelope" invariants).
type parabolaRegion[L any] struct {
	p            parabola[L]
	dominantFrom float64
}

// LowerEnvelope maintains the lower envelope of parabolas added in order
// of strictly increasing apex abscissa, and samples it at consecutive
// integer abscissae (C1). One instance is built and sampled once per
// scanline; it is not meant to be reused across scanlines.
type LowerEnvelope[L any] struct {
	spacing    float64
	useSpacing bool
	bounds     Bounds
	regions    []parabolaRegion[L]
}

// NewLowerEnvelope constructs an empty envelope with spacing s. capacity
// pre-sizes the backing storage to the expected scanline length.
// useSpacing selects which variant of the intersection formula is used;
// when false, s is ignored and unit spacing is assumed (§4.1).
func NewLowerEnvelope[L any](capacity int, s float64, useSpacing bool, bounds Bounds) *LowerEnvelope[L] {
	if s <= 0 {
		s = 1
	}
	return &LowerEnvelope[L]{
		spacing:    s,
		useSpacing: useSpacing,
		bounds:     bounds,
		regions:    make([]parabolaRegion[L], 0, capacity),
	}
}

// negativeInfinity stands in for "no lower bound" on the first region's
// dominance interval; any sampled abscissa compares greater than it.
const negativeInfinity = -math.MaxFloat64

// AddParabola appends a parabola with apex (i, y) and label l. i must be
// strictly greater than the apex abscissa of every previously added
// parabola; y must not exceed bounds.MaxApexHeight; |i| must not exceed
// bounds.MaxAbscissa. Violations panic when Debug is enabled (§4.1,
// "Error conditions").
func (e *LowerEnvelope[L]) AddParabola(i int, y float64, l L) {
	fi := float64(i)
	assertf(e.bounds.ValidAbscissa(fi), "gdtcore: abscissa %d exceeds MaxAbscissa %v", i, e.bounds.MaxAbscissa)
	assertf(e.bounds.ValidApexHeight(y), "gdtcore: apex height %v exceeds MaxApexHeight %v", y, e.bounds.MaxApexHeight)
	if n := len(e.regions); n > 0 {
		assertf(fi > e.regions[n-1].p.i, "gdtcore: abscissa %d is not strictly greater than previous apex %v", i, e.regions[n-1].p.i)
	}

	p := parabola[L]{i: fi, y: y, l: l}

	if len(e.regions) == 0 {
		e.regions = append(e.regions, parabolaRegion[L]{p: p, dominantFrom: negativeInfinity})
		return
	}

	for {
		last := e.regions[len(e.regions)-1]
		x := e.bounds.Clamp(e.intersection(last.p, p))
		if x <= last.dominantFrom && len(e.regions) > 1 {
			e.regions = e.regions[:len(e.regions)-1]
			continue
		}
		if x <= last.dominantFrom {
			// Only one region left: it is the first parabola ever added
			// and always has dominantFrom == negativeInfinity, so it
			// cannot be popped. Use its own dominance bound instead.
			e.regions = append(e.regions, parabolaRegion[L]{p: p, dominantFrom: last.dominantFrom})
			return
		}
		e.regions = append(e.regions, parabolaRegion[L]{p: p, dominantFrom: x})
		return
	}
}

// intersection returns the largest abscissa x at which p(x) <= q(x), for
// parabolas p and q with distinct apex abscissae (§4.1, "Intersection
// formula").
func (e *LowerEnvelope[L]) intersection(p, q parabola[L]) float64 {
	if e.useSpacing {
		s2 := e.spacing * e.spacing
		num := q.y - p.y + s2*(q.i*q.i-p.i*p.i)
		den := 2 * s2 * (q.i - p.i)
		return math.Floor(num / den)
	}
	num := q.y - p.y + (q.i*q.i - p.i*p.i)
	den := 2 * (q.i - p.i)
	return math.Floor(num / den)
}

// value evaluates parabola p at abscissa x.
func (e *LowerEnvelope[L]) value(p parabola[L], x float64) float64 {
	if e.useSpacing {
		d := x*e.spacing - p.i*e.spacing
		return d*d + p.y
	}
	d := x - p.i
	return d*d + p.y
}

// UniformSample writes the envelope's sampled minimum at abscissae
// from, from+1, ..., from+steps-1, together with the dominating
// parabola's label at each abscissa (§4.1). The envelope remains usable
// for further additions afterward.
func (e *LowerEnvelope[L]) UniformSample(from, steps int) (dist []float64, labels []L) {
	dist = make([]float64, steps)
	labels = make([]L, steps)
	e.sample(from, steps, func(idx int, v float64, p parabola[L]) {
		dist[idx] = v
		labels[idx] = p.l
	})
	return dist, labels
}

// UniformSampleValues is the label-free counterpart of UniformSample, for
// callers that run the envelope without Voronoi-map bookkeeping (the two
// distinct entry points called for by spec.md's open question on
// LowerEnvelope::uniformSample).
func (e *LowerEnvelope[L]) UniformSampleValues(from, steps int) []float64 {
	dist := make([]float64, steps)
	e.sample(from, steps, func(idx int, v float64, _ parabola[L]) {
		dist[idx] = v
	})
	return dist
}

// sample drives the shared sampling loop: append a sentinel region
// bounding iteration, walk [from, from+steps), and remove the sentinel
// again so the envelope stays reusable (§4.1, "Sampling algorithm"; §9,
// "Sentinel ownership").
func (e *LowerEnvelope[L]) sample(from, steps int, emit func(idx int, v float64, p parabola[L])) {
	sentinel := parabolaRegion[L]{
		p:            parabola[L]{i: e.bounds.MaxAbscissa, y: e.bounds.MaxApexHeight},
		dominantFrom: e.bounds.MaxAbscissa,
	}
	e.regions = append(e.regions, sentinel)
	defer func() {
		e.regions = e.regions[:len(e.regions)-1]
	}()

	j := 0
	x := float64(from)
	for idx := 0; idx < steps; idx++ {
		for j+1 < len(e.regions) && x > e.regions[j+1].dominantFrom {
			j++
		}
		emit(idx, e.value(e.regions[j].p, x), e.regions[j].p)
		x++
	}
}

// Len returns the number of parabola regions currently in the envelope
// (excluding any sentinel, which only exists transiently during
// sampling).
func (e *LowerEnvelope[L]) Len() int { return len(e.regions) }

// Package indicator provides the small pointwise functors drivers compose
// around GDTFilter: turning a binary mask into an indicator function image
// (IndicatorAccessor in the reference ITK sources), turning a radius field
// into a squared-distance-from-surface function (MinusSqrAccessor), and
// negating a distance map inside a mask to build a signed distance field
// (NegateInMaskFunctor). None of these touch the envelope/sweep/filter
// core; they only prepare its inputs and adjust its outputs.
package indicator

import (
	"math"

	"gdt/internal/models"
)

// FromMask builds an indicator function image from a binary mask: voxels
// with mask value greater than threshold are sites (apex height 0), every
// other voxel carries maxApexHeight, the GDTFilter sentinel for "not a
// site" (IndicatorAccessor).
func FromMask(mask *models.Image[float64], threshold, maxApexHeight float64) *models.Image[float64] {
	fn := models.NewImage[float64](mask.Region, mask.Spacing)
	for i, v := range mask.Data {
		if v > threshold {
			fn.Data[i] = 0
		} else {
			fn.Data[i] = maxApexHeight
		}
	}
	return fn
}

// LabelSitesSequential assigns each foreground voxel (mask value greater
// than threshold) a distinct sequential models.IntLabel, for drivers that
// want an identifiable Voronoi region per site rather than a position
// vector. Background voxels carry IntLabel(-1), a value the engine never
// reads since a background voxel's own label is never dominant at its own
// location once a site exists.
func LabelSitesSequential(mask *models.Image[float64], threshold float64) *models.Image[models.Label] {
	labels := models.NewImage[models.Label](mask.Region, mask.Spacing)
	next := 0
	for i, v := range mask.Data {
		if v > threshold {
			labels.Data[i] = models.IntLabel(next)
			next++
		} else {
			labels.Data[i] = models.IntLabel(-1)
		}
	}
	return labels
}

// PositionLabels labels every voxel in region with its own N-D coordinate
// as a models.VectorLabel, the input a vector-distance driver needs:
// after the sweep, each voxel's Voronoi label is the position of its
// nearest site, and subtracting the voxel's own position from that label
// yields the vector distance to the nearest site.
func PositionLabels(region models.Region, spacing []float64) *models.Image[models.Label] {
	labels := models.NewImage[models.Label](region, spacing)
	n := region.Dimension()
	coord := make([]int, n)
	for i := range labels.Data {
		rem := i
		for k := 0; k < n; k++ {
			coord[k] = rem % region.Size[k]
			rem /= region.Size[k]
		}
		coords := make([]float64, n)
		for k, c := range coord {
			coords[k] = float64(c)
		}
		labels.Data[i] = models.NewVectorLabel(coords...)
	}
	return labels
}

// RadiusField builds f(x) = -r(x)^2 (MinusSqrAccessor) the way
// itkIndicatorAccessor.h's IndicatorAccessor does: only the sparse site
// voxels named by sites carry a non-zero (here, negative) apex height;
// every other voxel gets maxApexHeight, the GDTFilter sentinel for "not a
// site". This is the indicator shape union-of-spheres scenarios use
// (spec.md S5): thresholding GDT(f) at <= 0 reproduces the union of the
// spheres, since f(x) = -r(x)^2 only at each sphere's center and D(x) =
// min_y[(x-y)^2 + f(y)] is non-positive exactly within distance r(y) of
// that center.
func RadiusField(region models.Region, spacing []float64, maxApexHeight float64, sites []Site) *models.Image[float64] {
	fn := models.NewImage[float64](region, spacing)
	for i := range fn.Data {
		fn.Data[i] = maxApexHeight
	}

	n := region.Dimension()
	coord := make([]int, n)
	for _, site := range sites {
		for k := 0; k < n; k++ {
			c := int(math.Round(site.Center[k]))
			if c < 0 {
				c = 0
			} else if c >= region.Size[k] {
				c = region.Size[k] - 1
			}
			coord[k] = c
		}
		idx := fn.Index(coord)
		v := -(site.Radius * site.Radius)
		if v < fn.Data[idx] {
			fn.Data[idx] = v
		}
	}
	return fn
}

// Site is one sphere of a union-of-spheres indicator: a center (in voxel
// index coordinates, rounded to the nearest voxel) and the radius whose
// square becomes that voxel's (negated) apex height.
type Site struct {
	Center []float64
	Radius float64
}

// Spheres builds the Site list RadiusField expects from parallel center
// and radius slices.
func Spheres(centers [][]float64, radii []float64) []Site {
	sites := make([]Site, len(centers))
	for i, center := range centers {
		sites[i] = Site{Center: center, Radius: radii[i]}
	}
	return sites
}

// NegateInMask negates dist in place wherever mask is true, turning an
// unsigned distance transform into a signed one (NegateInMaskFunctor):
// distances outside the mask stay positive, distances inside become
// negative.
func NegateInMask(dist *models.Image[float64], mask []bool) {
	for i := range dist.Data {
		if mask[i] {
			dist.Data[i] = -dist.Data[i]
		}
	}
}

// Sqrt takes the elementwise square root of a squared-distance image,
// turning GDTFilter's output (squared Euclidean distance) into an actual
// Euclidean distance map. Negative inputs (as produced upstream of
// NegateInMask) pass through as -sqrt(-v), preserving sign.
func Sqrt(dist *models.Image[float64]) *models.Image[float64] {
	out := models.NewImage[float64](dist.Region, dist.Spacing)
	for i, v := range dist.Data {
		if v < 0 {
			out.Data[i] = -math.Sqrt(-v)
		} else {
			out.Data[i] = math.Sqrt(v)
		}
	}
	return out
}

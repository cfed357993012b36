// Package gdtcore is the generalized distance transform engine: the
// lower-envelope-of-parabolas primitive (LowerEnvelope), the separable
// N-D sweep that composes it along every axis (Sweep), the top-level
// pipeline node (GDTFilter), and the overflow/precision bounds that bound
// both (Bounds).
package gdtcore

import (
	"fmt"

	"gdt/internal/models"
)

// GDTFilter is the top-level pipeline node (C3): it validates inputs,
// allocates outputs, and runs SeparableSweep across every axis.
type GDTFilter struct {
	// UseSpacing selects whether the per-axis voxel spacing is folded
	// into the parabola arithmetic. When false, unit spacing is used
	// regardless of the input image's declared spacing.
	UseSpacing bool
	// CreateVoronoiMap selects whether a companion label image is
	// consumed and a Voronoi map produced. When false, the label input
	// is ignored entirely.
	CreateVoronoiMap bool
	// Bounds are the overflow/precision limits every parabola addition
	// is checked against.
	Bounds Bounds
	// Parallelism is the number of worker goroutines used to process
	// scanlines within a single sweep pass. 1 (or less) runs a pass
	// sequentially. There is always a hard barrier between passes
	// regardless of Parallelism (§5).
	Parallelism int
}

// NewGDTFilter builds a GDTFilter with the reference implementation's
// defaults: spacing enabled, Voronoi map creation enabled, default
// Bounds, no parallelism.
func NewGDTFilter() *GDTFilter {
	return &GDTFilter{
		UseSpacing:       true,
		CreateVoronoiMap: true,
		Bounds:           DefaultBounds(),
		Parallelism:      1,
	}
}

// MaxApexHeight is the sentinel "infinity" value callers must use to mark
// a voxel as "not a site" in the function image they build (§6, "Public
// helpers").
func (f *GDTFilter) MaxApexHeight() float64 { return f.Bounds.MaxApexHeight }

// Run computes the generalized distance transform of functionImage and,
// if f.CreateVoronoiMap, the Voronoi map driven by labelImage. It
// validates that the images agree on region, allocates the full output
// region regardless of any notion of a requested sub-region (the
// transform is non-local along every axis, so partial outputs are not
// supported — §4.3, step 2), and runs one sweep pass per axis in
// ascending order.
func (f *GDTFilter) Run(functionImage *models.Image[float64], labelImage *models.Image[models.Label]) (*models.Image[float64], *models.Image[models.Label], error) {
	n := functionImage.Region.Dimension()
	if n < 1 {
		return nil, nil, fmt.Errorf("gdtcore: function image has no dimensions")
	}
	if f.CreateVoronoiMap {
		if labelImage == nil {
			return nil, nil, fmt.Errorf("gdtcore: CreateVoronoiMap requires a label image")
		}
		if !labelImage.Region.Equal(functionImage.Region) {
			return nil, nil, fmt.Errorf("gdtcore: label image region %v does not match function image region %v", labelImage.Region, functionImage.Region)
		}
	}

	dist := models.NewImage[float64](functionImage.Region, functionImage.Spacing)

	var voronoi *models.Image[models.Label]
	if f.CreateVoronoiMap {
		voronoi = models.NewImage[models.Label](functionImage.Region, functionImage.Spacing)
	}

	Sweep(functionImage, dist, labelImage, voronoi, 0, true, f.UseSpacing, f.Bounds, f.Parallelism)
	for axis := 1; axis < n; axis++ {
		Sweep(functionImage, dist, nil, voronoi, axis, false, f.UseSpacing, f.Bounds, f.Parallelism)
	}

	return dist, voronoi, nil
}

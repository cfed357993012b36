package gdtcore

import (
	"sync"

	"gdt/internal/models"
)

// Sweep runs one separable-sweep pass (C2) along axis over every scanline
// of dist (and, when labels are requested, labelsOut). On pass 0 the
// function values come from fn and the initial labels (if any) come from
// labelsIn; on later passes both distance and labels are read back from
// dist/labelsOut in place, as spec.md §4.2 describes.
//
// Scanlines are independent of one another within a single pass (they
// read and write disjoint positions), so when parallelism > 1 the
// transverse index space is partitioned into contiguous blocks and
// processed by a worker pool — the generalization of the quadrant-based
// parallel partitioning this engine's reconstruction-pipeline ancestor
// used for kriging, now applied to scanlines of a single sweep pass
// instead of spatial quadrants of a volume. There is a hard barrier
// between passes: Sweep itself does not return until every scanline of
// its pass has been written.
func Sweep(
	fn *models.Image[float64],
	dist *models.Image[float64],
	labelsIn, labelsOut *models.Image[models.Label],
	axis int,
	pass0 bool,
	useSpacing bool,
	bounds Bounds,
	parallelism int,
) {
	createVoronoi := labelsOut != nil
	blocks := models.Partition(dist, axis, parallelism)

	var wg sync.WaitGroup
	for _, block := range blocks {
		wg.Add(1)
		go func(block models.ScanlineBlock) {
			defer wg.Done()
			for t := block.From; t < block.To; t++ {
				transverse := dist.TransverseCoord(axis, t)
				sweepScanline(fn, dist, labelsIn, labelsOut, axis, transverse, pass0, useSpacing, createVoronoi, bounds)
			}
		}(block)
	}
	wg.Wait()
}

// sweepScanline runs the lower envelope over a single scanline, per
// spec.md §4.2's per-scanline algorithm.
func sweepScanline(
	fn *models.Image[float64],
	dist *models.Image[float64],
	labelsIn, labelsOut *models.Image[models.Label],
	axis int,
	transverse []int,
	pass0 bool,
	useSpacing bool,
	createVoronoi bool,
	bounds Bounds,
) {
	length := dist.Region.Size[axis]
	spacing := dist.Spacing[axis]

	distIndices := dist.ScanlineIndices(axis, transverse)
	var fnIndices []int
	if pass0 {
		fnIndices = fn.ScanlineIndices(axis, transverse)
	}
	var labelInIndices, labelOutIndices []int
	if createVoronoi {
		labelOutIndices = labelsOut.ScanlineIndices(axis, transverse)
		if pass0 && labelsIn != nil {
			labelInIndices = labelsIn.ScanlineIndices(axis, transverse)
		}
	}

	env := NewLowerEnvelope[models.Label](length, spacing, useSpacing, bounds)
	for i := 0; i < length; i++ {
		var y float64
		if pass0 {
			y = fn.Data[fnIndices[i]]
		} else {
			y = dist.Data[distIndices[i]]
		}

		var l models.Label
		if createVoronoi {
			if pass0 {
				if labelInIndices != nil {
					l = labelsIn.Data[labelInIndices[i]]
				}
			} else {
				l = labelsOut.Data[labelOutIndices[i]]
			}
		}

		env.AddParabola(i, y, l)
	}

	if createVoronoi {
		values, labels := env.UniformSample(0, length)
		for i := 0; i < length; i++ {
			dist.Data[distIndices[i]] = values[i]
			labelsOut.Data[labelOutIndices[i]] = labels[i]
		}
	} else {
		values := env.UniformSampleValues(0, length)
		for i := 0; i < length; i++ {
			dist.Data[distIndices[i]] = values[i]
		}
	}
}

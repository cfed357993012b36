// Command euclideandt-vector computes the vector distance transform of a
// binary mask: at every voxel, the offset to its nearest foreground site,
// mirroring the reference driver
// euclideanDistanceAndVectorDistanceTransform.cxx. Each axis of the vector
// field is written out as its own slice sequence since the grayscale PNG
// format this engine's drivers use carries one channel per pixel.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"

	"gdt/internal/models"
	"gdt/pkg/gdtcore"
	"gdt/pkg/indicator"
	"gdt/pkg/sliceio"
)

func main() {
	inputDir := flag.String("input", "", "Directory containing the binary mask as grayscale PNG slices")
	outputDir := flag.String("output", "euclideandt_vector_output", "Directory to save the vector-distance component slices to")
	threshold := flag.Float64("threshold", 0.5, "Mask threshold: voxels brighter than this are foreground")
	spacingX := flag.Float64("sx", 1, "Voxel spacing along X")
	spacingY := flag.Float64("sy", 1, "Voxel spacing along Y")
	spacingZ := flag.Float64("sz", 1, "Voxel spacing along Z")
	flag.Parse()

	if *inputDir == "" {
		fmt.Fprintln(os.Stderr, "usage: euclideandt-vector -input <slice dir> [-output <dir>]")
		flag.Usage()
		os.Exit(1)
	}

	fmt.Println("================================")
	fmt.Println("EUCLIDEAN DISTANCE AND VECTOR DISTANCE TRANSFORM")
	fmt.Println("================================")

	fmt.Println("Loading input mask...")
	mask, err := sliceio.LoadVolume(*inputDir, *spacingX, *spacingY, *spacingZ)
	if err != nil {
		log.Fatalf("loading mask: %v", err)
	}

	filter := gdtcore.NewGDTFilter()
	filter.CreateVoronoiMap = true

	fmt.Println("Building indicator function and position labels...")
	fn := indicator.FromMask(mask, *threshold, filter.MaxApexHeight())
	labels := indicator.PositionLabels(mask.Region, mask.Spacing)

	fmt.Println("Running distance and vector-distance transform...")
	_, voronoi, err := filter.Run(fn, labels)
	if err != nil {
		log.Fatalf("running filter: %v", err)
	}

	fmt.Println("Computing per-axis vector-distance components...")
	n := mask.Region.Dimension()
	components := make([]*models.Image[float64], n)
	for axis := 0; axis < n; axis++ {
		components[axis] = models.NewImage[float64](mask.Region, mask.Spacing)
	}

	coord := make([]int, n)
	for i := range voronoi.Data {
		rem := i
		for k := 0; k < n; k++ {
			coord[k] = rem % mask.Region.Size[k]
			rem /= mask.Region.Size[k]
		}

		nearest := voronoi.Data[i].(models.VectorLabel)
		self := models.NewVectorLabel(toFloats(coord)...)
		offset := nearest.Sub(self)
		for axis := 0; axis < n; axis++ {
			components[axis].Data[i] = offset.AtVec(axis)
		}
	}

	for axis := 0; axis < n; axis++ {
		axisDir := filepath.Join(*outputDir, fmt.Sprintf("axis_%d", axis))
		fmt.Printf("Saving component %d slices to %s...\n", axis, axisDir)
		if err := sliceio.SaveVolumeSlices(normalizeSigned(components[axis]), 2, axisDir); err != nil {
			log.Fatalf("saving component %d: %v", axis, err)
		}
	}

	fmt.Println("Done.")
}

func toFloats(coord []int) []float64 {
	out := make([]float64, len(coord))
	for i, c := range coord {
		out[i] = float64(c)
	}
	return out
}

// normalizeSigned maps a signed component image onto [0,1] for grayscale
// display: 0.5 is zero offset, with the magnitude of the largest absolute
// component in the image stretched to fill [0, 0.5] on either side.
func normalizeSigned(img *models.Image[float64]) *models.Image[float64] {
	maxAbs := 0.0
	for _, v := range img.Data {
		if a := math.Abs(v); a > maxAbs {
			maxAbs = a
		}
	}
	if maxAbs == 0 {
		maxAbs = 1
	}

	out := models.NewImage[float64](img.Region, img.Spacing)
	for i, v := range img.Data {
		out.Data[i] = 0.5 + 0.5*(v/maxAbs)
	}
	return out
}

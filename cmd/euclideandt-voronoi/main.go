// Command euclideandt-voronoi computes the Euclidean distance transform of
// a binary mask together with its Voronoi map, mirroring the reference
// driver euclideanDistanceAndVoronoiTransform.cxx. The Voronoi map is
// written out as a visualization where each site's region is shaded by
// a hash of its sequential site id ((id*37) mod 256, scaled to [0,1]),
// not as a machine-readable label
// image — see DESIGN.md.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gdt/internal/models"
	"gdt/pkg/gdtcore"
	"gdt/pkg/indicator"
	"gdt/pkg/sliceio"
)

func main() {
	inputDir := flag.String("input", "", "Directory containing the binary mask as grayscale PNG slices")
	outputDir := flag.String("output", "euclideandt_voronoi_output", "Directory to save the distance map slices to")
	voronoiDir := flag.String("voronoi-output", "euclideandt_voronoi_map", "Directory to save the Voronoi visualization slices to")
	threshold := flag.Float64("threshold", 0.5, "Mask threshold: voxels brighter than this are foreground")
	spacingX := flag.Float64("sx", 1, "Voxel spacing along X")
	spacingY := flag.Float64("sy", 1, "Voxel spacing along Y")
	spacingZ := flag.Float64("sz", 1, "Voxel spacing along Z")
	parallelism := flag.Int("parallelism", 1, "Worker goroutines per sweep pass")
	flag.Parse()

	if *inputDir == "" {
		fmt.Fprintln(os.Stderr, "usage: euclideandt-voronoi -input <slice dir> [-output <dir>] [-voronoi-output <dir>]")
		flag.Usage()
		os.Exit(1)
	}

	fmt.Println("================================")
	fmt.Println("EUCLIDEAN DISTANCE AND VORONOI TRANSFORM")
	fmt.Println("================================")

	fmt.Println("Loading input mask...")
	mask, err := sliceio.LoadVolume(*inputDir, *spacingX, *spacingY, *spacingZ)
	if err != nil {
		log.Fatalf("loading mask: %v", err)
	}

	filter := gdtcore.NewGDTFilter()
	filter.CreateVoronoiMap = true
	filter.Parallelism = *parallelism

	fmt.Println("Building indicator function and site labels...")
	fn := indicator.FromMask(mask, *threshold, filter.MaxApexHeight())
	labels := indicator.LabelSitesSequential(mask, *threshold)

	fmt.Println("Running distance and Voronoi transform...")
	squared, voronoi, err := filter.Run(fn, labels)
	if err != nil {
		log.Fatalf("running filter: %v", err)
	}

	dist := indicator.Sqrt(squared)

	fmt.Printf("Saving distance map slices to %s...\n", *outputDir)
	if err := sliceio.SaveVolumeSlices(dist, 2, *outputDir); err != nil {
		log.Fatalf("saving distance output: %v", err)
	}

	fmt.Printf("Saving Voronoi visualization slices to %s...\n", *voronoiDir)
	if err := sliceio.SaveVolumeSlices(voronoiVisualization(voronoi), 2, *voronoiDir); err != nil {
		log.Fatalf("saving voronoi output: %v", err)
	}

	fmt.Println("Done.")
}

// voronoiVisualization renders a models.Label-valued image as a grayscale
// float64 image for inspection: each IntLabel site id is mapped to a
// value in [0,1] by hashing it modulo 256, so neighboring sites are
// usually visually distinguishable without needing a color palette.
func voronoiVisualization(voronoi *models.Image[models.Label]) *models.Image[float64] {
	out := models.NewImage[float64](voronoi.Region, voronoi.Spacing)
	for i, l := range voronoi.Data {
		id, ok := l.(models.IntLabel)
		if !ok || id < 0 {
			out.Data[i] = 0
			continue
		}
		out.Data[i] = float64((int(id)*37)%256) / 255.0
	}
	return out
}

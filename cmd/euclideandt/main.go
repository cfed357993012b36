// Command euclideandt computes the Euclidean distance transform of a
// binary mask given as a directory of grayscale slice images, mirroring
// the reference driver euclideanDistanceTransform.cxx.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gdt/pkg/gdtcore"
	"gdt/pkg/indicator"
	"gdt/pkg/sliceio"
)

func main() {
	inputDir := flag.String("input", "", "Directory containing the binary mask as grayscale PNG slices")
	outputDir := flag.String("output", "euclideandt_output", "Directory to save the distance map slices to")
	threshold := flag.Float64("threshold", 0.5, "Mask threshold: voxels brighter than this are foreground")
	spacingX := flag.Float64("sx", 1, "Voxel spacing along X")
	spacingY := flag.Float64("sy", 1, "Voxel spacing along Y")
	spacingZ := flag.Float64("sz", 1, "Voxel spacing along Z")
	parallelism := flag.Int("parallelism", 1, "Worker goroutines per sweep pass")
	flag.Parse()

	if *inputDir == "" {
		fmt.Fprintln(os.Stderr, "usage: euclideandt -input <slice dir> [-output <dir>]")
		flag.Usage()
		os.Exit(1)
	}

	fmt.Println("================================")
	fmt.Println("EUCLIDEAN DISTANCE TRANSFORM")
	fmt.Println("================================")

	fmt.Println("Loading input mask...")
	mask, err := sliceio.LoadVolume(*inputDir, *spacingX, *spacingY, *spacingZ)
	if err != nil {
		log.Fatalf("loading mask: %v", err)
	}

	filter := gdtcore.NewGDTFilter()
	filter.CreateVoronoiMap = false
	filter.Parallelism = *parallelism

	fmt.Println("Building indicator function...")
	fn := indicator.FromMask(mask, *threshold, filter.MaxApexHeight())

	fmt.Println("Running distance transform...")
	squared, _, err := filter.Run(fn, nil)
	if err != nil {
		log.Fatalf("running filter: %v", err)
	}

	dist := indicator.Sqrt(squared)

	fmt.Printf("Saving distance map slices to %s...\n", *outputDir)
	if err := sliceio.SaveVolumeSlices(dist, 2, *outputDir); err != nil {
		log.Fatalf("saving output: %v", err)
	}

	fmt.Println("Done.")
}

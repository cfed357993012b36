// Command gdt-testimage generates a synthetic volume containing a handful
// of spheres as a directory of grayscale slice images, for use as input to
// the other drivers. It mirrors the reference driver testImage.cxx.
package main

import (
	"flag"
	"fmt"
	"log"

	"gdt/internal/models"
	"gdt/pkg/config"
	"gdt/pkg/sliceio"
)

func main() {
	size := flag.Int("size", 64, "Edge length of the cubic volume")
	configPath := flag.String("config", "", "YAML config file for sphere radii")
	outputDir := flag.String("output", "", "Directory to save the generated mask slices to (defaults to the config's testOutputDir)")
	flag.Parse()

	cfg := config.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
	}
	if *outputDir == "" {
		*outputDir = cfg.Test.TestOutputDir
	}

	fmt.Println("================================")
	fmt.Println("TEST IMAGE GENERATOR")
	fmt.Println("================================")
	fmt.Printf("Volume size: %d^3, spheres: %v\n", *size, cfg.Test.SphereRadii)

	region := models.NewRegion(*size, *size, *size)
	mask := models.NewImage[float64](region, nil)

	n := len(cfg.Test.SphereRadii)
	mid := float64(*size) / 2
	for s, r := range cfg.Test.SphereRadii {
		// Scatter spheres across the volume so the generated mask has
		// several disjoint (or, for adjacent radii, overlapping) blobs
		// rather than one concentric stack.
		t := float64(s) / float64(maxInt(n-1, 1))
		cx := mid * (0.5 + t)
		cy := mid
		cz := mid * (1.5 - t)

		for z := 0; z < *size; z++ {
			for y := 0; y < *size; y++ {
				for x := 0; x < *size; x++ {
					dx := float64(x) - cx
					dy := float64(y) - cy
					dz := float64(z) - cz
					if dx*dx+dy*dy+dz*dz <= r*r {
						mask.Set([]int{x, y, z}, 1)
					}
				}
			}
		}
	}

	fmt.Printf("Saving mask slices to %s...\n", *outputDir)
	if err := sliceio.SaveVolumeSlices(mask, 2, *outputDir); err != nil {
		log.Fatalf("saving output: %v", err)
	}

	fmt.Println("Done.")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

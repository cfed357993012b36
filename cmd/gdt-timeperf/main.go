// Command gdt-timeperf repeats a distance transform over a synthetic
// volume several times and reports mean/stddev timings, mirroring the
// reference driver timePerformance.cxx.
package main

import (
	"flag"
	"fmt"
	"time"

	"gonum.org/v1/gonum/stat"

	"gdt/internal/models"
	"gdt/pkg/gdtcore"
	"gdt/pkg/indicator"
)

func main() {
	size := flag.Int("size", 64, "Edge length of the cubic test volume")
	runs := flag.Int("runs", 10, "Number of repeated runs to time")
	parallelism := flag.Int("parallelism", 1, "Worker goroutines per sweep pass")
	flag.Parse()

	fmt.Println("================================")
	fmt.Println("GDT TIMING BENCHMARK")
	fmt.Println("================================")
	fmt.Printf("Volume: %d^3, runs: %d, parallelism: %d\n", *size, *runs, *parallelism)

	region := models.NewRegion(*size, *size, *size)
	filter := gdtcore.NewGDTFilter()
	filter.CreateVoronoiMap = false
	filter.Parallelism = *parallelism

	mask := models.NewImage[float64](region, nil)
	mid := *size / 2
	mask.Set([]int{mid, mid, mid}, 1)
	fn := indicator.FromMask(mask, 0.5, filter.MaxApexHeight())

	durations := make([]float64, *runs)
	for i := 0; i < *runs; i++ {
		start := time.Now()
		if _, _, err := filter.Run(fn, nil); err != nil {
			fmt.Printf("run %d failed: %v\n", i, err)
			return
		}
		durations[i] = time.Since(start).Seconds()
		fmt.Printf("run %d: %.4fs\n", i, durations[i])
	}

	mean := stat.Mean(durations, nil)
	stddev := stat.StdDev(durations, nil)

	fmt.Println("--------------------------------")
	fmt.Printf("mean:   %.4fs\n", mean)
	fmt.Printf("stddev: %.4fs\n", stddev)
}

// Command gdt-cacheperf compares the timing of a sweep pass along axis 0
// (contiguous scanlines in the row-major layout) against a higher axis
// (strided scanlines), mirroring the reference driver
// cachePerformance.cxx and the "staged contiguous scratch buffer" design
// note of spec.md.
package main

import (
	"flag"
	"fmt"
	"time"

	"gonum.org/v1/gonum/floats"

	"gdt/internal/models"
	"gdt/pkg/gdtcore"
)

func main() {
	size := flag.Int("size", 128, "Edge length of the square test image")
	runs := flag.Int("runs", 20, "Number of repeated sweep passes to time per axis")
	flag.Parse()

	fmt.Println("================================")
	fmt.Println("GDT CACHE BEHAVIOR BENCHMARK")
	fmt.Println("================================")
	fmt.Printf("Image: %dx%d, runs per axis: %d\n", *size, *size, *runs)

	region := models.NewRegion(*size, *size)
	bounds := gdtcore.DefaultBounds()

	fn := models.NewImage[float64](region, nil)
	for i := range fn.Data {
		fn.Data[i] = bounds.MaxApexHeight
	}
	fn.Set([]int{*size / 2, *size / 2}, 0)

	contiguous := timeAxis(fn, bounds, 0, *runs)
	strided := timeAxis(fn, bounds, 1, *runs)

	fmt.Println("--------------------------------")
	report("axis 0 (contiguous)", contiguous)
	report("axis 1 (strided)", strided)

	speedup := floats.Sum(strided) / floats.Sum(contiguous)
	fmt.Printf("strided/contiguous ratio: %.2fx\n", speedup)
}

func timeAxis(fn *models.Image[float64], bounds gdtcore.Bounds, axis, runs int) []float64 {
	samples := make([]float64, runs)
	for i := 0; i < runs; i++ {
		dist := models.NewImage[float64](fn.Region, fn.Spacing)
		start := time.Now()
		gdtcore.Sweep(fn, dist, nil, nil, axis, true, true, bounds, 1)
		samples[i] = time.Since(start).Seconds()
	}
	return samples
}

func report(label string, samples []float64) {
	min := floats.Min(samples)
	max := floats.Max(samples)
	sum := floats.Sum(samples)
	mean := sum / float64(len(samples))
	fmt.Printf("%s: mean=%.6fs min=%.6fs max=%.6fs\n", label, mean, min, max)
}

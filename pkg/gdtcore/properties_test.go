package gdtcore

import (
	"math"
	"math/rand"
	"testing"

	"gdt/internal/models"
)

// bruteForceSquaredDistance computes the squared Euclidean distance
// transform of a 2-D binary site mask by exhaustive O(n^2) enumeration,
// the ground truth TestCorrectnessVsBruteForce checks the engine against.
func bruteForceSquaredDistance(sites []bool, width, height int, spacing []float64) []float64 {
	out := make([]float64, width*height)
	sx, sy := spacing[0], spacing[1]
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			best := math.Inf(1)
			for sy2 := 0; sy2 < height; sy2++ {
				for sx2 := 0; sx2 < width; sx2++ {
					if !sites[sy2*width+sx2] {
						continue
					}
					dx := (float64(x) - float64(sx2)) * sx
					dy := (float64(y) - float64(sy2)) * sy
					d := dx*dx + dy*dy
					if d < best {
						best = d
					}
				}
			}
			out[y*width+x] = best
		}
	}
	return out
}

func TestCorrectnessVsBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	const width, height = 7, 9
	spacing := []float64{1, 1.7}

	for trial := 0; trial < 5; trial++ {
		region := models.NewRegion(width, height)
		sites := make([]bool, width*height)
		numSites := 1 + rng.Intn(4)
		for i := 0; i < numSites; i++ {
			sites[rng.Intn(len(sites))] = true
		}
		// Always keep at least one site so the test case is well-formed.
		sites[0] = true

		filter := NewGDTFilter()
		filter.CreateVoronoiMap = false

		fn := models.NewImage[float64](region, spacing)
		for i, isSite := range sites {
			if isSite {
				fn.Data[i] = 0
			} else {
				fn.Data[i] = filter.MaxApexHeight()
			}
		}

		dist, _, err := filter.Run(fn, nil)
		if err != nil {
			t.Fatalf("trial %d: Run: %v", trial, err)
		}

		want := bruteForceSquaredDistance(sites, width, height, spacing)
		for i := range want {
			if math.Abs(dist.Data[i]-want[i]) > 1e-6 {
				t.Errorf("trial %d: index %d: got %v, want %v", trial, i, dist.Data[i], want[i])
			}
		}
	}
}

func TestSeparabilityIdentity(t *testing.T) {
	// For a single site, the N-D transform must equal the sum of
	// independent 1-D transforms along each axis, since the squared
	// Euclidean metric is separable.
	const width, height = 11, 6
	spacing := []float64{1, 1}
	siteX, siteY := 4, 2

	region := models.NewRegion(width, height)
	filter := NewGDTFilter()
	filter.CreateVoronoiMap = false

	fn := models.NewImage[float64](region, spacing)
	for i := range fn.Data {
		fn.Data[i] = filter.MaxApexHeight()
	}
	fn.Set([]int{siteX, siteY}, 0)

	dist, _, err := filter.Run(fn, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			want := float64((x-siteX)*(x-siteX) + (y-siteY)*(y-siteY))
			if got := dist.At([]int{x, y}); got != want {
				t.Errorf("dist[%d][%d] = %v, want %v", y, x, got, want)
			}
		}
	}
}

func TestSpacingScaling(t *testing.T) {
	// Scaling every axis' spacing by c must scale every squared distance
	// by c^2.
	const width, height = 5, 5
	region := models.NewRegion(width, height)
	siteX, siteY := 2, 2

	run := func(spacing []float64) *models.Image[float64] {
		filter := NewGDTFilter()
		filter.CreateVoronoiMap = false
		fn := models.NewImage[float64](region, spacing)
		for i := range fn.Data {
			fn.Data[i] = filter.MaxApexHeight()
		}
		fn.Set([]int{siteX, siteY}, 0)
		dist, _, err := filter.Run(fn, nil)
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		return dist
	}

	base := run([]float64{1, 1})
	const c = 2.5
	scaled := run([]float64{c, c})

	for i := range base.Data {
		want := base.Data[i] * c * c
		if math.Abs(scaled.Data[i]-want) > 1e-6 {
			t.Errorf("index %d: scaled=%v, want %v (base=%v)", i, scaled.Data[i], want, base.Data[i])
		}
	}
}

func TestSentinelPropagation(t *testing.T) {
	// Redundant with filter_test.go's TestGDTFilterAllSentinelStaysSentinel
	// but kept here alongside the other numbered testable properties for
	// visibility.
	region := models.NewRegion(3, 3)
	filter := NewGDTFilter()
	filter.CreateVoronoiMap = false

	fn := models.NewImage[float64](region, nil)
	for i := range fn.Data {
		fn.Data[i] = filter.MaxApexHeight()
	}

	dist, _, err := filter.Run(fn, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for i, v := range dist.Data {
		if v != filter.MaxApexHeight() {
			t.Errorf("index %d: %v, want MaxApexHeight", i, v)
		}
	}
}

func TestIdempotenceOfIdentitySites(t *testing.T) {
	// Re-thresholding the distance transform's zero set must reproduce
	// exactly the original site set: sites have distance 0, and every
	// non-site voxel not coincident with another site has distance > 0.
	const width, height = 6, 6
	region := models.NewRegion(width, height)
	sites := map[[2]int]bool{{1, 1}: true, {4, 3}: true}

	filter := NewGDTFilter()
	filter.CreateVoronoiMap = false
	fn := models.NewImage[float64](region, nil)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if sites[[2]int{x, y}] {
				fn.Set([]int{x, y}, 0)
			} else {
				fn.Set([]int{x, y}, filter.MaxApexHeight())
			}
		}
	}

	dist, _, err := filter.Run(fn, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			isZero := dist.At([]int{x, y}) == 0
			if isZero != sites[[2]int{x, y}] {
				t.Errorf("(%d,%d): zero=%v, want site=%v", x, y, isZero, sites[[2]int{x, y}])
			}
		}
	}
}

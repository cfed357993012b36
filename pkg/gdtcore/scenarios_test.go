package gdtcore

import (
	"math"
	"testing"

	"gdt/internal/models"
	"gdt/pkg/indicator"
)

// TestScenarioS5UnionOfSpheres is spec.md scenario S5: a single sphere of
// radius 5 at (15,15,15) in a 31^3 volume with unit spacing; thresholding
// the transform output at <= 0 must recover exactly the voxels within
// Euclidean distance 5 of the centre.
func TestScenarioS5UnionOfSpheres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping 31^3 scenario in short mode")
	}

	const size = 31
	center := []float64{15, 15, 15}
	const radius = 5.0

	region := models.NewRegion(size, size, size)
	spacing := []float64{1, 1, 1}

	filter := NewGDTFilter()
	filter.CreateVoronoiMap = false
	fn := indicator.RadiusField(region, spacing, filter.MaxApexHeight(), indicator.Spheres([][]float64{center}, []float64{radius}))

	dist, _, err := filter.Run(fn, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	for z := 0; z < size; z++ {
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				dx := float64(x) - center[0]
				dy := float64(y) - center[1]
				dz := float64(z) - center[2]
				withinSphere := dx*dx+dy*dy+dz*dz <= radius*radius

				got := dist.At([]int{x, y, z}) <= 0
				if got != withinSphere {
					t.Fatalf("(%d,%d,%d): thresholded=%v, within sphere=%v", x, y, z, got, withinSphere)
				}
			}
		}
	}
}

// TestScenarioS6SignedDiskDistance is spec.md scenario S6: a signed DT on
// a 2-D filled disk of radius 4 in a 16x16 image. Values outside are
// positive Euclidean distance to the boundary, values inside are negated
// Euclidean distance to the boundary, and the boundary ring itself is
// zero.
func TestScenarioS6SignedDiskDistance(t *testing.T) {
	const size = 16
	center := []float64{7, 7}
	const radius = 4.0

	region := models.NewRegion(size, size)
	inside := make([]bool, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) - center[0]
			dy := float64(y) - center[1]
			inside[y*size+x] = dx*dx+dy*dy <= radius*radius
		}
	}

	eroded := erode4(inside, size, size)
	boundary := models.NewImage[float64](region, nil)
	for i := range boundary.Data {
		if inside[i] && !eroded[i] {
			boundary.Data[i] = 1
		}
	}

	filter := NewGDTFilter()
	filter.CreateVoronoiMap = false
	fn := indicator.FromMask(boundary, 0.5, filter.MaxApexHeight())

	squared, _, err := filter.Run(fn, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	dist := indicator.Sqrt(squared)
	indicator.NegateInMask(dist, inside)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			v := dist.At([]int{x, y})
			i := y*size + x
			switch {
			case boundary.Data[i] != 0:
				if math.Abs(v) > 1e-9 {
					t.Errorf("(%d,%d): boundary voxel has nonzero signed distance %v", x, y, v)
				}
			case inside[i]:
				if v > 0 {
					t.Errorf("(%d,%d): interior voxel has non-negative signed distance %v", x, y, v)
				}
			default:
				if v < 0 {
					t.Errorf("(%d,%d): exterior voxel has negative signed distance %v", x, y, v)
				}
			}
		}
	}
}

// erode4 is the 4-connected binary erosion used by the signedeuclideandt
// driver, duplicated here to keep this scenario test self-contained.
func erode4(mask []bool, width, height int) []bool {
	out := make([]bool, len(mask))
	at := func(x, y int) bool {
		if x < 0 || x >= width || y < 0 || y >= height {
			return false
		}
		return mask[y*width+x]
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			out[y*width+x] = at(x, y) && at(x-1, y) && at(x+1, y) && at(x, y-1) && at(x, y+1)
		}
	}
	return out
}

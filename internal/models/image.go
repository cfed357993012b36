// Package models holds the data types shared by the distance-transform
// engine: the dense N-D image container, its index region, and the
// scanline partitioning used for optional parallel sweeps.
package models

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Region is a half-open N-D index rectangle [0, Size_0) x ... x [0, Size_{N-1}).
// The engine never deals with a non-zero origin, so only the per-axis
// extents are stored.
type Region struct {
	Size []int
}

// NewRegion builds a Region from per-axis extents. Every extent must be
// positive.
func NewRegion(size ...int) Region {
	s := make([]int, len(size))
	copy(s, size)
	return Region{Size: s}
}

// Dimension returns the number of axes, N.
func (r Region) Dimension() int { return len(r.Size) }

// NumPixels returns the total voxel count of the region.
func (r Region) NumPixels() int {
	n := 1
	for _, s := range r.Size {
		n *= s
	}
	return n
}

// Equal reports whether two regions describe the same index rectangle.
func (r Region) Equal(o Region) bool {
	if len(r.Size) != len(o.Size) {
		return false
	}
	for i := range r.Size {
		if r.Size[i] != o.Size[i] {
			return false
		}
	}
	return true
}

// Label is the opaque per-voxel payload carried by a Voronoi map. The
// engine copies it but never inspects it, per the "polymorphic pixel
// types" design note: it may be an integer id, a position vector, or any
// other plain value.
type Label any

// IntLabel is the simplest Label: an integer site identifier.
type IntLabel int

// VectorLabel is a Label that carries a voxel's position (in index
// coordinates, as indicator.PositionLabels builds it), used to
// build vector-distance maps. It wraps gonum's dense vector type so the
// vector-distance drivers can subtract labels directly with mat.VecDense's
// arithmetic instead of hand-rolled loops.
type VectorLabel struct {
	Pos *mat.VecDense
}

// NewVectorLabel builds a VectorLabel from N coordinates.
func NewVectorLabel(coords ...float64) VectorLabel {
	return VectorLabel{Pos: mat.NewVecDense(len(coords), append([]float64(nil), coords...))}
}

// Sub returns l - o, the offset from o's position to l's position.
func (l VectorLabel) Sub(o VectorLabel) *mat.VecDense {
	out := mat.NewVecDense(l.Pos.Len(), nil)
	out.SubVec(l.Pos, o.Pos)
	return out
}

// Image is a dense, row-major N-D array of pixels over a Region, with a
// per-axis voxel Spacing. T is typically float64 (function/distance
// pixels) or Label (Voronoi pixels).
type Image[T any] struct {
	Data    []T
	Region  Region
	Spacing []float64
}

// NewImage allocates an Image over region with the given per-axis spacing.
// When spacing is nil, unit spacing is used on every axis.
func NewImage[T any](region Region, spacing []float64) *Image[T] {
	if spacing == nil {
		spacing = make([]float64, region.Dimension())
		for i := range spacing {
			spacing[i] = 1
		}
	}
	return &Image[T]{
		Data:    make([]T, region.NumPixels()),
		Region:  region,
		Spacing: append([]float64(nil), spacing...),
	}
}

// strides returns the row-major linearization strides: stride[0] = 1,
// stride[k] = stride[k-1] * Size[k-1].
func (img *Image[T]) strides() []int {
	n := img.Region.Dimension()
	strides := make([]int, n)
	s := 1
	for k := 0; k < n; k++ {
		strides[k] = s
		s *= img.Region.Size[k]
	}
	return strides
}

// Index linearizes an N-D coordinate into a flat Data index.
func (img *Image[T]) Index(coord []int) int {
	strides := img.strides()
	idx := 0
	for k, c := range coord {
		idx += c * strides[k]
	}
	return idx
}

// At returns the pixel at coord.
func (img *Image[T]) At(coord []int) T {
	return img.Data[img.Index(coord)]
}

// Set writes the pixel at coord.
func (img *Image[T]) Set(coord []int, v T) {
	img.Data[img.Index(coord)] = v
}

// ScanlineIndices returns the flat Data indices of every voxel on the
// scanline parallel to axis that passes through transverse (an (N-1)-long
// coordinate list holding the fixed indices for every other axis, in axis
// order with the axis-th entry skipped). The result has length
// Region.Size[axis].
func (img *Image[T]) ScanlineIndices(axis int, transverse []int) []int {
	n := img.Region.Dimension()
	strides := img.strides()
	base := 0
	t := 0
	for k := 0; k < n; k++ {
		if k == axis {
			continue
		}
		base += transverse[t] * strides[k]
		t++
	}

	length := img.Region.Size[axis]
	indices := make([]int, length)
	for i := 0; i < length; i++ {
		indices[i] = base + i*strides[axis]
	}
	return indices
}

// TransverseCount returns how many scanlines run parallel to axis, i.e.
// the product of every other axis' extent.
func (img *Image[T]) TransverseCount(axis int) int {
	count := 1
	for k, s := range img.Region.Size {
		if k != axis {
			count *= s
		}
	}
	return count
}

// TransverseCoord decomposes a linear transverse index (in
// [0, TransverseCount(axis))) into the per-axis coordinates used by
// ScanlineIndices, skipping axis.
func (img *Image[T]) TransverseCoord(axis, linear int) []int {
	n := img.Region.Dimension()
	coord := make([]int, 0, n-1)
	for k := 0; k < n; k++ {
		if k == axis {
			continue
		}
		size := img.Region.Size[k]
		coord = append(coord, linear%size)
		linear /= size
	}
	return coord
}

// ScanlineBlock describes a contiguous run of transverse scanline indices
// assigned to one worker during a parallel sweep pass. It generalizes the
// quadrant/sub-volume partitioning used for parallel kriging in the
// reconstruction pipeline this engine was adapted from: there, a slice was
// split into spatial quadrants; here, the transverse index space of a
// sweep pass is split into contiguous scanline ranges instead.
type ScanlineBlock struct {
	// Axis is the sweep axis this block's scanlines run parallel to.
	Axis int
	// From and To bound the half-open range [From, To) of transverse
	// linear indices (see Image.TransverseCoord) owned by this block.
	From, To int
}

// Partition splits the transverse index space of axis into up to
// numWorkers contiguous ScanlineBlocks of roughly equal size. numWorkers
// <= 1 yields a single block covering every scanline.
func Partition[T any](img *Image[T], axis, numWorkers int) []ScanlineBlock {
	total := img.TransverseCount(axis)
	if numWorkers < 1 {
		numWorkers = 1
	}
	if numWorkers > total {
		numWorkers = total
	}
	if numWorkers <= 1 {
		return []ScanlineBlock{{Axis: axis, From: 0, To: total}}
	}

	blockSize := (total + numWorkers - 1) / numWorkers
	blocks := make([]ScanlineBlock, 0, numWorkers)
	for from := 0; from < total; from += blockSize {
		to := from + blockSize
		if to > total {
			to = total
		}
		blocks = append(blocks, ScanlineBlock{Axis: axis, From: from, To: to})
	}
	return blocks
}

func (r Region) String() string {
	return fmt.Sprintf("%v", r.Size)
}

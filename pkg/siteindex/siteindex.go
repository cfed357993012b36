// Package siteindex provides a KD-tree-backed nearest-site lookup over
// N-D points, used to cross-check the engine's Voronoi map against an
// independent ground truth (testable property 2, spec.md §8). It is
// adapted from this repository's ancestor reconstruction pipeline, which
// used a gonum KD-tree to find a voxel's nearest neighbors for kriging
// interpolation; here the same KD-tree scaffolding locates the nearest
// site to a query point instead, with no interpolation or variogram
// weighting involved.
package siteindex

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/kdtree"
)

// Point is an N-D coordinate used as a KD-tree key.
type Point struct {
	Coords []float64
}

// Compare implements kdtree.Comparable.
func (p Point) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(Point)
	return p.Coords[int(d)] - q.Coords[int(d)]
}

// Dims implements kdtree.Comparable.
func (p Point) Dims() int { return len(p.Coords) }

// Distance returns the squared Euclidean distance to c, as required by
// kdtree.Comparable.
func (p Point) Distance(c kdtree.Comparable) float64 {
	q := c.(Point)
	sum := 0.0
	for i := range p.Coords {
		d := p.Coords[i] - q.Coords[i]
		sum += d * d
	}
	return sum
}

// equal reports whether p and q carry the same coordinates.
func (p Point) equal(q Point) bool {
	if len(p.Coords) != len(q.Coords) {
		return false
	}
	for i := range p.Coords {
		if p.Coords[i] != q.Coords[i] {
			return false
		}
	}
	return true
}

// Points is a collection of Point satisfying kdtree.Interface.
type Points []Point

func (p Points) Index(i int) kdtree.Comparable         { return p[i] }
func (p Points) Len() int                              { return len(p) }
func (p Points) Slice(start, end int) kdtree.Interface { return p[start:end] }

// Pivot implements kdtree.Interface.
func (p Points) Pivot(d kdtree.Dim) int {
	return kdtree.Partition(pointPlane{Points: p, Dim: d}, kdtree.MedianOfRandoms(pointPlane{Points: p, Dim: d}, 100))
}

// pointPlane adapts Points to kdtree.SortSlicer for a fixed dimension,
// exactly as this engine's ancestor adapted its 3D points for kriging's
// spatial index.
type pointPlane struct {
	Points
	kdtree.Dim
}

func (p pointPlane) Less(i, j int) bool {
	return p.Points[i].Coords[int(p.Dim)] < p.Points[j].Coords[int(p.Dim)]
}

func (p pointPlane) Slice(start, end int) kdtree.SortSlicer {
	return pointPlane{Points: p.Points[start:end], Dim: p.Dim}
}

func (p pointPlane) Swap(i, j int) {
	p.Points[i], p.Points[j] = p.Points[j], p.Points[i]
}

// Index is a nearest-site lookup over a fixed set of labeled points.
type Index struct {
	tree   *kdtree.Tree
	points []Point
	labels []any
}

// New builds an Index over points, each carrying the label at the same
// position in labels. len(points) must equal len(labels) and neither may
// be empty.
func New(points []Point, labels []any) (*Index, error) {
	if len(points) != len(labels) {
		return nil, fmt.Errorf("siteindex: %d points but %d labels", len(points), len(labels))
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("siteindex: no points to index")
	}
	stored := append([]Point(nil), points...)
	return &Index{
		tree:   kdtree.New(Points(stored), true),
		points: stored,
		labels: append([]any(nil), labels...),
	}, nil
}

// Nearest returns the label and squared distance of the site closest to
// query.
func (idx *Index) Nearest(query Point) (label any, sqDist float64) {
	keeper := kdtree.NewNKeeper(1)
	idx.tree.NearestSet(keeper, query)
	for _, item := range keeper.Heap {
		if item.Comparable == nil {
			continue
		}
		p := item.Comparable.(Point)
		return idx.labels[idx.indexOf(p)], item.Dist
	}
	return nil, 0
}

// indexOf finds the position of p among the originally indexed points.
func (idx *Index) indexOf(p Point) int {
	for i, q := range idx.points {
		if p.equal(q) {
			return i
		}
	}
	return -1
}

// Package broadphase cross-checks the k-d tree's collision output
// with an independent spatial index, for use in tests and the CLI's
// -verify-collisions mode. It is not part of the simulation core: the
// Barnes-Hut traversal already produces collision lists for every
// branch it descends into (branches accepted as a multipole are not
// searched), and this is belt-and-suspenders verification over the bodies' XY-projected
// bounding boxes, the same broad-phase-then-narrow-phase shape the
// teacher pack uses for its own 2-D tree packing (tree.HasCollision,
// tree.CalculateTotalOverlap).
package broadphase

import (
	"github.com/paulmach/orb"
	"github.com/tidwall/rtree"

	"gravtree/pkg/body"
)

// RTreeIndex is an R-tree over bodies' XY-projected bounding boxes,
// backed by github.com/tidwall/rtree.
type RTreeIndex struct {
	tree   rtree.RTree
	bodies []body.Body
}

// NewRTreeIndex builds an index over bodies.
func NewRTreeIndex(bodies []body.Body) *RTreeIndex {
	idx := &RTreeIndex{bodies: bodies}
	for i, b := range bodies {
		bound := boundingBox(b)
		idx.tree.Insert(bound.Min, bound.Max, i)
	}
	return idx
}

// Collisions returns the bodies overlapping bodies[i], narrowed from
// the XY bounding-box broad phase to a true 3-D sphere check via
// body.Overlaps.
func (idx *RTreeIndex) Collisions(i int) []body.Body {
	q := idx.bodies[i]
	bound := boundingBox(q)

	var out []body.Body
	idx.tree.Search(bound.Min, bound.Max, func(_, _ [2]float64, data interface{}) bool {
		j := data.(int)
		if j != i && q.Overlaps(idx.bodies[j]) {
			out = append(out, idx.bodies[j])
		}
		return true
	})
	return out
}

// boundingBox projects a body onto the XY plane and returns its
// bounding square as an orb.Bound, the same orb type the teacher
// pack uses to describe tree-canopy outlines (pkg/tree.GetOrbPolygon).
func boundingBox(b body.Body) orb.Bound {
	min := orb.Point{b.X - b.Radius, b.Y - b.Radius}
	max := orb.Point{b.X + b.Radius, b.Y + b.Radius}
	return orb.Bound{Min: min, Max: max}
}

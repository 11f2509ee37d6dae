package broadphase

import (
	"github.com/tidwall/geoindex"
	geoindexrtree "github.com/tidwall/geoindex/rtree"

	"gravtree/pkg/body"
)

// Both broad-phase backends project onto the XY plane and share the
// orb.Bound helper in rtree_index.go.

// GeoIndexIndex is the alternate broad-phase backend, selected via
// simconfig.Config's VerifyIndex="geoindex" instead of "rtree". It wraps the
// same XY-projected bounding boxes in tidwall/geoindex's generic
// Index, which itself wraps an R-tree implementation — the
// teacher pack's -algorithm flag picks between interchangeable
// solvers the same way (cmd/packer/main.go); this picks between
// interchangeable verification backends.
type GeoIndexIndex struct {
	index  *geoindex.Index
	bodies []body.Body
}

// NewGeoIndexIndex builds an index over bodies.
func NewGeoIndexIndex(bodies []body.Body) *GeoIndexIndex {
	idx := &GeoIndexIndex{
		index:  geoindex.Wrap(&geoindexrtree.RTree{}),
		bodies: bodies,
	}
	for i, b := range bodies {
		bound := boundingBox(b)
		idx.index.Insert(bound.Min, bound.Max, i)
	}
	return idx
}

// Collisions returns the bodies overlapping bodies[i], narrowed from
// the XY bounding-box broad phase to a true 3-D sphere check via
// body.Overlaps.
func (idx *GeoIndexIndex) Collisions(i int) []body.Body {
	q := idx.bodies[i]
	bound := boundingBox(q)

	var out []body.Body
	idx.index.Search(bound.Min, bound.Max, func(_, _ [2]float64, value interface{}) bool {
		j := value.(int)
		if j != i && q.Overlaps(idx.bodies[j]) {
			out = append(out, idx.bodies[j])
		}
		return true
	})
	return out
}

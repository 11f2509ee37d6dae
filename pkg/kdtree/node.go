package kdtree

import (
	"fmt"

	"gravtree/pkg/body"
)

// DefaultLeafCapacity is the maximum number of bodies a leaf holds
// before a build must split it, absent an explicit override.
const DefaultLeafCapacity = 3

// Node is a recursive binary split over bodies. It is either a Leaf
// (Bodies set, Left and Right nil) or an Internal node (Left and Right
// set, Bodies nil). Every node carries aggregates over its descendant
// bodies: COM (mass-weighted centroid), TotalMass, bounding extents,
// and RMax (the largest descendant radius).
type Node struct {
	Left, Right *Node

	// Diagnostic only on Internal nodes; the traversal does not
	// consult them, geometry drives multipole acceptance.
	SplitAxis  body.Axis
	SplitValue float64

	// Bodies is non-nil only on a Leaf.
	Bodies []body.Body

	COM                                 body.Body
	TotalMass                           float64
	XMin, XMax, YMin, YMax, ZMin, ZMax  float64
	RMax                                float64
}

// IsLeaf reports whether n is a Leaf.
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// MaxExtent returns the largest of the node's three bounding-range
// dimensions, the "s" of the theta multipole acceptance criterion.
func (n *Node) MaxExtent() float64 {
	xr := n.XMax - n.XMin
	yr := n.YMax - n.YMin
	zr := n.ZMax - n.ZMin
	m := xr
	if yr > m {
		m = yr
	}
	if zr > m {
		m = zr
	}
	return m
}

// Projected returns the node as a synthetic Body for multipole
// acceptance: position is the center of mass, mass is the total mass,
// velocity is zero, and radius is the super-radius (half the largest
// bounding dimension plus the largest descendant radius). The
// super-radius is not consulted by the theta criterion itself; it
// exists for symmetry with Body and for an alternative overlap
// pre-prune.
func (n *Node) Projected() body.Body {
	return body.Body{
		X:      n.COM.X,
		Y:      n.COM.Y,
		Z:      n.COM.Z,
		Mass:   n.TotalMass,
		Radius: n.MaxExtent()/2 + n.RMax,
	}
}

// Build constructs a Node tree over bodies top-down: an axis of
// greatest range is chosen (ties broken Z over Y over X), the slice is
// partitioned at its median along that axis, and the two halves are
// built recursively until a slice of at most leafCapacity bodies forms
// a Leaf. An empty slice returns a nil root, which is not an error.
// Build panics when any leaf or internal node ends up with a
// non-positive total mass (for example an all-zero-mass ensemble);
// individual body masses are not checked here, so callers are expected
// to validate them before Build is reached (see kdtree.New).
func Build(bodies []body.Body, leafCapacity int) *Node {
	if len(bodies) == 0 {
		return nil
	}
	if len(bodies) <= leafCapacity {
		return newLeaf(bodies)
	}

	xr, yr, zr := body.Ranges(bodies)
	axis := splitAxis(xr, yr, zr)
	medianValue, medianIndex := body.PartitionByMedian(bodies, axis)

	left := Build(bodies[:medianIndex], leafCapacity)
	right := Build(bodies[medianIndex:], leafCapacity)
	return combine(axis, medianValue, left, right)
}

// splitAxis picks the axis of greatest range, preferring Z over Y over
// X when ranges tie, matching the reference implementation's cascade.
func splitAxis(xRange, yRange, zRange float64) body.Axis {
	if zRange >= yRange && zRange >= xRange {
		return body.Z
	}
	if yRange >= xRange {
		return body.Y
	}
	return body.X
}

func newLeaf(bodies []body.Body) *Node {
	cp := make([]body.Body, len(bodies))
	copy(cp, bodies)

	com, totalMass := centerOfMass(bodies)
	xMin, xMax, yMin, yMax, zMin, zMax := body.Extents(bodies)

	return &Node{
		Bodies:     cp,
		COM:        com,
		TotalMass:  totalMass,
		XMin:       xMin,
		XMax:       xMax,
		YMin:       yMin,
		YMax:       yMax,
		ZMin:       zMin,
		ZMax:       zMax,
		RMax:       maxRadius(bodies),
	}
}

func centerOfMass(bodies []body.Body) (body.Body, float64) {
	var totalMass, x, y, z float64
	for _, b := range bodies {
		totalMass += b.Mass
		x += b.Mass * b.X
		y += b.Mass * b.Y
		z += b.Mass * b.Z
	}
	if totalMass <= 0 {
		panic(fmt.Sprintf("kdtree: all-zero-mass ensemble (total mass %v); Build requires every body to have positive mass", totalMass))
	}
	return body.Body{X: x / totalMass, Y: y / totalMass, Z: z / totalMass}, totalMass
}

func maxRadius(bodies []body.Body) float64 {
	m := bodies[0].Radius
	for _, b := range bodies[1:] {
		if b.Radius > m {
			m = b.Radius
		}
	}
	return m
}

func combine(axis body.Axis, splitValue float64, left, right *Node) *Node {
	totalMass := left.TotalMass + right.TotalMass
	if totalMass <= 0 {
		panic(fmt.Sprintf("kdtree: internal node combined to non-positive mass %v", totalMass))
	}

	com := body.Body{
		X: (left.TotalMass*left.COM.X + right.TotalMass*right.COM.X) / totalMass,
		Y: (left.TotalMass*left.COM.Y + right.TotalMass*right.COM.Y) / totalMass,
		Z: (left.TotalMass*left.COM.Z + right.TotalMass*right.COM.Z) / totalMass,
	}

	rMax := left.RMax
	if right.RMax > rMax {
		rMax = right.RMax
	}

	return &Node{
		Left:       left,
		Right:      right,
		SplitAxis:  axis,
		SplitValue: splitValue,
		COM:        com,
		TotalMass:  totalMass,
		XMin:       min2(left.XMin, right.XMin),
		XMax:       max2(left.XMax, right.XMax),
		YMin:       min2(left.YMin, right.YMin),
		YMax:       max2(left.YMax, right.YMax),
		ZMin:       min2(left.ZMin, right.ZMin),
		ZMax:       max2(left.ZMax, right.ZMax),
		RMax:       rMax,
	}
}

func min2(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max2(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Package body defines the canonical spatial record simulated by the
// tree, the capabilities a caller's own type must provide to plug into
// it, and the axis/geometry helpers the k-d tree build and traversal
// are built on.
package body

import "math"

// Axis selects one of the three coordinate axes a k-d tree node can
// split on.
type Axis int

const (
	X Axis = iota
	Y
	Z
)

// Body is the canonical spatial record: position, velocity, mass and
// radius. Mass must be strictly positive in every Body stored in a
// tree; that precondition is enforced at tree construction, not here.
type Body struct {
	X, Y, Z    float64
	VX, VY, VZ float64
	Mass       float64
	Radius     float64
}

// AsBody lets a caller-defined type project itself to the spatial
// record the tree actually indexes. The built-in Body type satisfies
// this trivially.
type AsBody interface {
	AsBody() Body
}

// AsBody implements AsBody for Body itself.
func (b Body) AsBody() Body { return b }

// SimulationResult is the per-body output of one Barnes-Hut traversal:
// the gravitational acceleration exerted on the query body, and the
// bodies it currently overlaps. It is only valid for the lifetime of
// the tree that produced it.
type SimulationResult struct {
	Acceleration [3]float64
	Collisions   []Body
}

// Equal reports whether a and b are the same body under the rule the
// traversal uses to suppress self-interaction: position, radius and
// mass must match, velocity is ignored. Two distinct bodies that
// happen to share position, radius and mass will therefore never be
// reported as colliding with each other. This is a deliberate
// compatibility compromise, not a bug: identifying bodies would
// require a stable per-body key the data model does not carry.
func (a Body) Equal(b Body) bool {
	return a.X == b.X && a.Y == b.Y && a.Z == b.Z &&
		a.Radius == b.Radius && a.Mass == b.Mass
}

// Coord returns the coordinate of b along axis.
func (b Body) Coord(axis Axis) float64 {
	switch axis {
	case X:
		return b.X
	case Y:
		return b.Y
	default:
		return b.Z
	}
}

// DistanceSquared returns the squared Euclidean distance between a and b.
func DistanceSquared(a, b Body) float64 {
	dx, dy, dz := DistanceVector(a, b)
	return dx*dx + dy*dy + dz*dz
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Body) float64 {
	return math.Sqrt(DistanceSquared(a, b))
}

// DistanceVector returns the vector pointing from a toward b.
func DistanceVector(a, b Body) (dx, dy, dz float64) {
	return b.X - a.X, b.Y - a.Y, b.Z - a.Z
}

// Overlaps reports whether a and b are distinct bodies (by Equal)
// whose spheres currently intersect.
func (a Body) Overlaps(b Body) bool {
	return !a.Equal(b) && Distance(a, b) <= a.Radius+b.Radius
}

// Extents returns the axis-aligned bounding minima and maxima of
// bodies. Calling it with an empty slice is a caller error; the
// behavior is undefined.
func Extents(bodies []Body) (xMin, xMax, yMin, yMax, zMin, zMax float64) {
	xMin, xMax = bodies[0].X, bodies[0].X
	yMin, yMax = bodies[0].Y, bodies[0].Y
	zMin, zMax = bodies[0].Z, bodies[0].Z
	for _, b := range bodies[1:] {
		if b.X < xMin {
			xMin = b.X
		}
		if b.X > xMax {
			xMax = b.X
		}
		if b.Y < yMin {
			yMin = b.Y
		}
		if b.Y > yMax {
			yMax = b.Y
		}
		if b.Z < zMin {
			zMin = b.Z
		}
		if b.Z > zMax {
			zMax = b.Z
		}
	}
	return
}

// Ranges returns the absolute extent of bodies along each axis.
func Ranges(bodies []Body) (xRange, yRange, zRange float64) {
	xMin, xMax, yMin, yMax, zMin, zMax := Extents(bodies)
	return math.Abs(xMax - xMin), math.Abs(yMax - yMin), math.Abs(zMax - zMin)
}

// PartitionByMedian reorders bodies in place, using quickselect with
// the first element as pivot, so that the element at index len/2 is
// the median along axis: every element below that index is not
// greater, and every element at or above it is not less, along axis.
// Ties may land on either side. It returns the median value and its
// index. Expected O(n), worst case O(n^2); stability is not required.
// NaN coordinates are a caller error; behavior is undefined.
func PartitionByMedian(bodies []Body, axis Axis) (medianValue float64, medianIndex int) {
	k := len(bodies) / 2
	quickselect(bodies, 0, len(bodies)-1, k, axis)
	return bodies[k].Coord(axis), k
}

func quickselect(bodies []Body, lo, hi, k int, axis Axis) {
	for {
		if lo == hi {
			return
		}
		p := partition(bodies, lo, hi, axis)
		switch {
		case k == p:
			return
		case k < p:
			hi = p - 1
		default:
			lo = p + 1
		}
	}
}

// partition picks bodies[lo] as the pivot and reorders bodies[lo:hi+1]
// so that everything not greater than the pivot along axis comes
// before it and everything not less comes after, returning the
// pivot's final index.
func partition(bodies []Body, lo, hi int, axis Axis) int {
	pivot := bodies[lo].Coord(axis)
	i := lo
	for j := lo + 1; j <= hi; j++ {
		if bodies[j].Coord(axis) <= pivot {
			i++
			bodies[i], bodies[j] = bodies[j], bodies[i]
		}
	}
	bodies[lo], bodies[i] = bodies[i], bodies[lo]
	return i
}

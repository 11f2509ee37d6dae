package kdtree

import (
	"math"

	"gravtree/pkg/body"
)

// Kernel computes the acceleration other exerts on q. ReferenceKernel
// and CorrectedKernel are the two kernels the tree ships with.
type Kernel func(q, other body.Body) [3]float64

// ReferenceKernel divides by d^2 rather than the Newtonian |d|^3, and
// is proportional to delta/|d|^2 rather than delta*mass/|d|^3. This is
// almost certainly a bug inherited from the reference implementation;
// it is preserved here, rather than silently fixed, so that numeric
// results pin to it. Use CorrectedKernel for the physically correct
// form. G = 1; units are absorbed into the tree's TimeStep.
func ReferenceKernel(q, other body.Body) [3]float64 {
	d2 := body.DistanceSquared(q, other)
	if d2 == 0 {
		return [3]float64{}
	}
	dx, dy, dz := body.DistanceVector(q, other)
	return [3]float64{
		dx / d2 * other.Mass,
		dy / d2 * other.Mass,
		dz / d2 * other.Mass,
	}
}

// CorrectedKernel is the Newtonian delta*mass/|d|^3 form the reference
// kernel should arguably compute. Selected via simconfig.Config's
// UseCorrectedKernel in the higher-level driver; not the default
// because it would break compatibility with pinned reference tests.
func CorrectedKernel(q, other body.Body) [3]float64 {
	d2 := body.DistanceSquared(q, other)
	if d2 == 0 {
		return [3]float64{}
	}
	d3 := d2 * math.Sqrt(d2)
	dx, dy, dz := body.DistanceVector(q, other)
	return [3]float64{
		dx / d3 * other.Mass,
		dy / d3 * other.Mass,
		dz / d3 * other.Mass,
	}
}

// Query runs the Barnes-Hut traversal of the tree rooted at root for
// query body q, returning its acceleration and collision list. A nil
// root (an empty tree) yields a zero SimulationResult. theta gates the
// multipole acceptance criterion: a node is treated as a single point
// mass when distance-squared times theta^2 exceeds the square of the
// node's largest bounding dimension. The returned acceleration is
// scaled by two, mirroring the reference implementation's calibration
// constant (see ReferenceKernel's doc comment for the sibling quirk in
// the per-pair kernel).
func Query(root *Node, q body.Body, theta float64, kernel Kernel) body.SimulationResult {
	if root == nil {
		return body.SimulationResult{}
	}
	acc, collisions := traverse(root, q, theta, kernel)
	return body.SimulationResult{
		Acceleration: [3]float64{acc[0] * 2, acc[1] * 2, acc[2] * 2},
		Collisions:   collisions,
	}
}

// traverse visits node: a Leaf contributes every body's pairwise
// acceleration and any collisions directly; an Internal node is either
// accepted as a single multipole (d^2 * theta^2 > s^2) or recursed into,
// merging the two children's accelerations and collision lists.
func traverse(node *Node, q body.Body, theta float64, kernel Kernel) ([3]float64, []body.Body) {
	if node.IsLeaf() {
		return accumulateLeaf(node, q, kernel)
	}

	s := node.MaxExtent()
	d2 := body.DistanceSquared(q, node.COM)
	if d2*theta*theta > s*s {
		return kernel(q, node.Projected()), nil
	}

	aLeft, cLeft := traverseChild(node.Left, q, theta, kernel)
	aRight, cRight := traverseChild(node.Right, q, theta, kernel)
	return [3]float64{
		aLeft[0] + aRight[0],
		aLeft[1] + aRight[1],
		aLeft[2] + aRight[2],
	}, append(cLeft, cRight...)
}

func traverseChild(child *Node, q body.Body, theta float64, kernel Kernel) ([3]float64, []body.Body) {
	if child == nil {
		return [3]float64{}, nil
	}
	return traverse(child, q, theta, kernel)
}

func accumulateLeaf(n *Node, q body.Body, kernel Kernel) ([3]float64, []body.Body) {
	var acc [3]float64
	var collisions []body.Body
	for _, b := range n.Bodies {
		if q.Overlaps(b) {
			collisions = append(collisions, b)
		}
		a := kernel(q, b)
		acc[0] += a[0]
		acc[1] += a[1]
		acc[2] += a[2]
	}
	return acc, collisions
}


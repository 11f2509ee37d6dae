package kdtree

import (
	"math"
	"testing"

	"gravtree/pkg/body"
)

func TestQueryEmptyTree(t *testing.T) {
	result := Query(nil, body.Body{Mass: 1}, 0.5, ReferenceKernel)
	if result.Acceleration != ([3]float64{}) {
		t.Fatalf("expected zero acceleration over an empty tree, got %v", result.Acceleration)
	}
	if len(result.Collisions) != 0 {
		t.Fatalf("expected no collisions over an empty tree, got %v", result.Collisions)
	}
}

// S2 — two distant, non-overlapping bodies.
func TestQueryDistantBodiesNoCollision(t *testing.T) {
	a := body.Body{X: 0, Y: 1000, Z: 0, Mass: 5, Radius: 10}
	b := body.Body{X: 0, Y: 0, Z: 1, Mass: 5, Radius: 10}
	root := Build([]body.Body{a, b}, 3)

	resA := Query(root, a, 0.2, ReferenceKernel)
	resB := Query(root, b, 0.2, ReferenceKernel)

	if len(resA.Collisions) != 0 {
		t.Fatalf("expected no collisions for a, got %v", resA.Collisions)
	}
	if len(resB.Collisions) != 0 {
		t.Fatalf("expected no collisions for b, got %v", resB.Collisions)
	}
}

// S3 — two overlapping bodies.
func TestQueryOverlappingBodies(t *testing.T) {
	a := body.Body{X: 0, Y: 0, Z: 0, Mass: 5, Radius: 10}
	b := body.Body{X: 0, Y: 0, Z: 1, Mass: 5, Radius: 10}
	root := Build([]body.Body{a, b}, 3)

	resA := Query(root, a, 0.2, ReferenceKernel)
	if len(resA.Collisions) != 1 || !resA.Collisions[0].Equal(b) {
		t.Fatalf("expected exactly one collision (b) for a, got %v", resA.Collisions)
	}

	resB := Query(root, b, 0.2, ReferenceKernel)
	if len(resB.Collisions) != 1 || !resB.Collisions[0].Equal(a) {
		t.Fatalf("expected exactly one collision (a) for b, got %v", resB.Collisions)
	}
}

// S4 — five overlapping bodies, every collision list has exactly 4 entries.
func TestQueryFiveOverlappingBodies(t *testing.T) {
	bodies := unitCubeCorners(10, 5)
	root := Build(bodies, 3)

	for i, q := range bodies {
		result := Query(root, q, 0.2, ReferenceKernel)
		if len(result.Collisions) != 4 {
			t.Fatalf("body %d: got %d collisions, want 4: %v", i, len(result.Collisions), result.Collisions)
		}
	}
}

// Property 7 — self-non-interaction: a body never collides with itself.
func TestQuerySelfNonInteraction(t *testing.T) {
	bodies := unitCubeCorners(10, 5)
	root := Build(bodies, 3)

	for _, q := range bodies {
		result := Query(root, q, 0.2, ReferenceKernel)
		for _, c := range result.Collisions {
			if c.Equal(q) {
				t.Fatalf("body %+v reported colliding with itself", q)
			}
		}
	}
}

// Property 6 — pairwise symmetry sanity: two equal-mass bodies symmetric about
// the origin yield equal-magnitude, opposite-sign accelerations, with
// theta small enough to suppress approximation.
func TestQueryPairwiseSymmetrySanity(t *testing.T) {
	a := body.Body{X: -10, Y: 0, Z: 0, Mass: 7, Radius: 1}
	b := body.Body{X: 10, Y: 0, Z: 0, Mass: 7, Radius: 1}
	root := Build([]body.Body{a, b}, 3)

	resA := Query(root, a, 0, ReferenceKernel)
	resB := Query(root, b, 0, ReferenceKernel)

	const tol = 1e-9
	for axis := 0; axis < 3; axis++ {
		if math.Abs(resA.Acceleration[axis]+resB.Acceleration[axis]) > tol {
			t.Fatalf("axis %d: accelerations not opposite: %v vs %v", axis, resA.Acceleration, resB.Acceleration)
		}
	}
}

func TestQueryZeroDistanceGuard(t *testing.T) {
	a := body.Body{X: 1, Y: 1, Z: 1, Mass: 3, Radius: 1}
	root := Build([]body.Body{a}, 3)
	result := Query(root, a, 0.5, ReferenceKernel)
	if result.Acceleration != ([3]float64{}) {
		t.Fatalf("expected zero self-acceleration, got %v", result.Acceleration)
	}
}

func TestReferenceKernelDividesByDistanceSquared(t *testing.T) {
	q := body.Body{X: 0, Y: 0, Z: 0}
	other := body.Body{X: 2, Y: 0, Z: 0, Mass: 4}
	got := ReferenceKernel(q, other)
	// d^2 = 4, delta = (2,0,0); reference kernel: delta/d^2 * mass
	want := [3]float64{2.0 / 4 * 4, 0, 0}
	if got != want {
		t.Fatalf("ReferenceKernel = %v, want %v", got, want)
	}
}

func TestCorrectedKernelIsNewtonian(t *testing.T) {
	q := body.Body{X: 0, Y: 0, Z: 0}
	other := body.Body{X: 2, Y: 0, Z: 0, Mass: 4}
	got := CorrectedKernel(q, other)
	d := 2.0
	want := [3]float64{2.0 / (d * d * d) * 4, 0, 0}
	const tol = 1e-12
	if math.Abs(got[0]-want[0]) > tol || got[1] != want[1] || got[2] != want[2] {
		t.Fatalf("CorrectedKernel = %v, want %v", got, want)
	}
}

func TestAccelerationDoubling(t *testing.T) {
	q := body.Body{X: 0, Y: 0, Z: 0, Mass: 1}
	other := body.Body{X: 2, Y: 0, Z: 0, Mass: 4}
	root := Build([]body.Body{q, other}, 3)

	raw := ReferenceKernel(q, other)
	result := Query(root, q, 0, ReferenceKernel)

	const tol = 1e-12
	if math.Abs(result.Acceleration[0]-2*raw[0]) > tol {
		t.Fatalf("expected doubled acceleration %v, got %v", 2*raw[0], result.Acceleration[0])
	}
}

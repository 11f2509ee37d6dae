package response

import (
	"math"
	"testing"

	"gravtree/pkg/body"
)

func TestDefaultAdvancesVelocityThenPosition(t *testing.T) {
	self := body.Body{X: 1, Y: 1, Z: 1, VX: 0, VY: 0, VZ: 0, Mass: 1, Radius: 1}
	result := body.SimulationResult{Acceleration: [3]float64{2, 0, 0}}

	next := Default(self, result, 0.5)

	if next.VX != 1 {
		t.Fatalf("VX = %v, want 1", next.VX)
	}
	if next.X != 1.5 {
		t.Fatalf("X = %v, want 1.5 (position uses the updated velocity)", next.X)
	}
}

func TestSoftBodyNoOverlapReturnsOwnVelocity(t *testing.T) {
	p1 := body.Body{X: 0, Y: 0, Z: 0, VX: 3, VY: 4, VZ: 0, Mass: 1, Radius: 1}
	p2 := body.Body{X: 100, Y: 0, Z: 0, Mass: 1, Radius: 1}

	vx, vy, vz := SoftBody(p1, p2, 10)
	if vx != p1.VX || vy != p1.VY || vz != p1.VZ {
		t.Fatalf("got (%v,%v,%v), want p1's own velocity (%v,%v,%v)", vx, vy, vz, p1.VX, p1.VY, p1.VZ)
	}
}

func TestSoftBodyPushesAway(t *testing.T) {
	p1 := body.Body{X: 0, Y: 0, Z: 0, Mass: 2, Radius: 5}
	p2 := body.Body{X: 3, Y: 0, Z: 0, Mass: 2, Radius: 5}

	vx, vy, vz := SoftBody(p1, p2, 1)
	if vx >= 0 {
		t.Fatalf("expected p1 to be pushed in -X away from p2, got vx=%v", vx)
	}
	if vy != 0 || vz != 0 {
		t.Fatalf("expected no Y/Z component for a purely-X overlap, got (%v,%v)", vy, vz)
	}

	overlap := (p1.Radius + p2.Radius) - 3
	wantMagnitude := math.Abs(1 * overlap / p1.Mass)
	if math.Abs(math.Abs(vx)-wantMagnitude) > 1e-9 {
		t.Fatalf("|vx| = %v, want %v", math.Abs(vx), wantMagnitude)
	}
}

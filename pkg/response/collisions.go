// Package response provides response rules a caller can plug into
// kdtree.Tree.Step. The core imposes no collision policy; these are
// conveniences, not requirements.
package response

import "gravtree/pkg/body"

// Default is the built-in response rule: velocity advances by
// acceleration*dt, then position advances by the new velocity*dt.
func Default(self body.Body, result body.SimulationResult, dt float64) body.Body {
	next := self
	next.VX += result.Acceleration[0] * dt
	next.VY += result.Acceleration[1] * dt
	next.VZ += result.Acceleration[2] * dt
	next.X += next.VX * dt
	next.Y += next.VY * dt
	next.Z += next.VZ * dt
	return next
}

// SoftBody returns the outward velocity p1 should take on this frame
// in response to overlapping p2, using Hooke's law: a force
// proportional to the overlap depth, scaled by stiffness. If the two
// spheres do not overlap, p1's own velocity is returned unchanged.
func SoftBody(p1, p2 body.Body, stiffness float64) (vx, vy, vz float64) {
	distance := body.Distance(p1, p2)
	radiiSum := p1.Radius + p2.Radius
	if distance >= radiiSum {
		return p1.VX, p1.VY, p1.VZ
	}

	overlap := radiiSum - distance
	force := stiffness * overlap
	accelScalar := force / p1.Mass

	dx, dy, dz := body.DistanceVector(p2, p1)
	ux, uy, uz := unitVector(dx, dy, dz)

	return ux * accelScalar, uy * accelScalar, uz * accelScalar
}

func unitVector(x, y, z float64) (float64, float64, float64) {
	length := body.Distance(body.Body{}, body.Body{X: x, Y: y, Z: z})
	return x / length, y / length, z / length
}

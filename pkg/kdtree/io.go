package kdtree

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gravtree/pkg/body"
)

// Load reads a persisted body list: one space-separated line per body,
// `x y z vx vy vz mass radius`, trailing newline after the last
// record. Simulation parameters (TimeStep, LeafCapacity, Theta) are
// not part of this format and must be supplied separately to New. A
// malformed line surfaces as a parse error naming the offending line
// number.
func Load(r io.Reader) ([]body.Body, error) {
	scanner := bufio.NewScanner(r)
	var bodies []body.Body
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 8 {
			return nil, fmt.Errorf("kdtree: line %d: expected 8 fields, got %d", lineNo, len(fields))
		}
		var v [8]float64
		for i, f := range fields {
			parsed, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("kdtree: line %d: %w", lineNo, err)
			}
			v[i] = parsed
		}
		bodies = append(bodies, body.Body{
			X: v[0], Y: v[1], Z: v[2],
			VX: v[3], VY: v[4], VZ: v[5],
			Mass: v[6], Radius: v[7],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("kdtree: reading body list: %w", err)
	}
	return bodies, nil
}

// Save writes bodies in the format Load reads: one
// `x y z vx vy vz mass radius` line per body, with a trailing newline
// after the last record.
func Save(w io.Writer, bodies []body.Body) error {
	bw := bufio.NewWriter(w)
	for _, b := range bodies {
		if _, err := fmt.Fprintf(bw, "%g %g %g %g %g %g %g %g\n",
			b.X, b.Y, b.Z, b.VX, b.VY, b.VZ, b.Mass, b.Radius); err != nil {
			return fmt.Errorf("kdtree: writing body list: %w", err)
		}
	}
	return bw.Flush()
}

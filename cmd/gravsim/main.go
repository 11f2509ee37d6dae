// Command gravsim drives a Barnes-Hut N-body simulation from a
// persisted body list, advancing it by a fixed number of time steps
// and writing the resulting body list back out.
package main

import (
	"flag"
	"fmt"
	"os"

	"gravtree/pkg/body"
	"gravtree/pkg/broadphase"
	"gravtree/pkg/kdtree"
	"gravtree/pkg/response"
	"gravtree/pkg/simconfig"
)

func main() {
	input := flag.String("input", "", "path to the input body list (x y z vx vy vz mass radius per line)")
	output := flag.String("output", "out.bodies", "path to write the resulting body list")
	configPath := flag.String("config", "", "path to a simconfig YAML file (optional, uses defaults if not provided)")
	steps := flag.Int("steps", 1, "number of time steps to advance")
	workers := flag.Int("workers", 0, "goroutine pool size for the per-body traversal (0 = use config value; a config value of 0 means runtime.NumCPU())")
	thetaOverride := flag.Float64("theta", -1, "override the configured theta (negative = use config value)")
	verify := flag.Bool("verify-collisions", false, "cross-check each step's collision lists against a broadphase index")
	verifyIndex := flag.String("verify-index", string(simconfig.VerifyIndexRTree), "broadphase backend for -verify-collisions: rtree or geoindex")

	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Error: -input is required")
		os.Exit(1)
	}

	config := loadConfig(*configPath)
	if *workers > 0 {
		config.Workers = *workers
	}
	if *thetaOverride >= 0 {
		config.Theta = *thetaOverride
	}
	if !*verify && config.VerifyCollisions && config.VerifyIndex != simconfig.VerifyIndexDisabled {
		*verify = true
		*verifyIndex = string(config.VerifyIndex)
	}

	bodies, err := loadBodies(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading bodies: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d bodies from %s\n", len(bodies), *input)

	tree, err := kdtree.New(bodies, config.TimeStep, config.LeafCapacity, config.Theta)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building tree: %v\n", err)
		os.Exit(1)
	}
	tree.Workers = config.Workers
	if config.UseCorrectedKernel {
		tree.Kernel = kdtree.CorrectedKernel
	}

	for n := 0; n < *steps; n++ {
		if *verify {
			verifyCollisions(tree, simconfig.VerifyIndex(*verifyIndex))
		}

		next, err := tree.Step(response.Default)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error on step %d: %v\n", n, err)
			os.Exit(1)
		}
		tree = next
		if n%10 == 0 {
			fmt.Printf("Step %d: %d bodies\n", n, tree.BodyCount())
		}
	}

	if err := writeBodies(*output, tree.Flatten()); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Done! Wrote %d bodies to %s\n", tree.BodyCount(), *output)
}

func loadConfig(path string) *simconfig.Config {
	if path == "" {
		return simconfig.Default()
	}
	config, err := simconfig.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v, using defaults\n", err)
		return simconfig.Default()
	}
	return config
}

func loadBodies(path string) ([]body.Body, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return kdtree.Load(f)
}

func writeBodies(path string, bodies []body.Body) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return kdtree.Save(f, bodies)
}

func verifyCollisions(tree *kdtree.Tree, index simconfig.VerifyIndex) {
	bodies := tree.Flatten()

	var collisionsAt func(i int) []body.Body
	switch index {
	case simconfig.VerifyIndexGeoIndex:
		idx := broadphase.NewGeoIndexIndex(bodies)
		collisionsAt = idx.Collisions
	default:
		idx := broadphase.NewRTreeIndex(bodies)
		collisionsAt = idx.Collisions
	}

	for i, b := range bodies {
		treeResult := tree.Query(b)
		broadphaseResult := collisionsAt(i)
		if len(treeResult.Collisions) != len(broadphaseResult) {
			fmt.Fprintf(os.Stderr,
				"Warning: body %d collision count mismatch: tree=%d broadphase=%d\n",
				i, len(treeResult.Collisions), len(broadphaseResult))
		}
	}
}

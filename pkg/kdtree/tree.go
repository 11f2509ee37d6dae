package kdtree

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"gravtree/pkg/body"
)

// Sentinel errors returned by New when a constructor precondition is
// violated, wrapped with %w. Test for them with errors.Is to
// distinguish the kind.
var (
	ErrInvalidTimeStep     = errors.New("kdtree: time step must be positive")
	ErrInvalidLeafCapacity = errors.New("kdtree: leaf capacity must be at least 1")
	ErrInvalidTheta        = errors.New("kdtree: theta must be non-negative")
	ErrNonPositiveMass     = errors.New("kdtree: body mass must be positive")
)

// ResponseFunc is the external collaborator contract: given a body,
// the SimulationResult computed for it, and the tree's time step, it
// returns the body's next-frame state. The tree imposes no collision
// response policy; pkg/response provides a default.
type ResponseFunc func(self body.Body, result body.SimulationResult, dt float64) body.Body

// Tree owns a single root node (present iff BodyCount > 0), the body
// count, and the simulation parameters used to build it and to drive
// subsequent steps. A Tree is immutable for the duration of one frame:
// Step never mutates it, it builds and returns a new Tree.
type Tree struct {
	root      *Node
	bodyCount int

	TimeStep     float64
	LeafCapacity int
	Theta        float64

	// Workers bounds the goroutine pool used by Step; zero means
	// runtime.NumCPU().
	Workers int
	// Kernel is the pairwise acceleration function used by Step's
	// traversal; nil means ReferenceKernel.
	Kernel Kernel
}

// New builds a Tree over bodies. TimeStep must be positive,
// LeafCapacity at least 1, Theta non-negative, and every body must
// have positive mass; violating any of these is reported as an error,
// not a panic, since they originate from caller-supplied data. A
// zero-length bodies slice is permitted and yields an empty tree.
func New(bodies []body.Body, timeStep float64, leafCapacity int, theta float64) (*Tree, error) {
	if timeStep <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidTimeStep, timeStep)
	}
	if leafCapacity < 1 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidLeafCapacity, leafCapacity)
	}
	if theta < 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidTheta, theta)
	}
	for i, b := range bodies {
		if b.Mass <= 0 {
			return nil, fmt.Errorf("%w: body %d has mass %v", ErrNonPositiveMass, i, b.Mass)
		}
	}

	return &Tree{
		root:         Build(bodies, leafCapacity),
		bodyCount:    len(bodies),
		TimeStep:     timeStep,
		LeafCapacity: leafCapacity,
		Theta:        theta,
	}, nil
}

// SetTheta mutates theta for subsequent Query/Step calls. It does not
// rebuild the tree.
func (t *Tree) SetTheta(theta float64) {
	t.Theta = theta
}

// BodyCount returns the number of bodies the tree was built over.
func (t *Tree) BodyCount() int {
	return t.bodyCount
}

// Flatten returns the tree's bodies in a stable, deterministic order
// for this tree instance: an in-order traversal of its leaves.
func (t *Tree) Flatten() []body.Body {
	return flatten(t.root)
}

func flatten(n *Node) []body.Body {
	if n == nil {
		return nil
	}
	if n.IsLeaf() {
		out := make([]body.Body, len(n.Bodies))
		copy(out, n.Bodies)
		return out
	}
	out := flatten(n.Left)
	return append(out, flatten(n.Right)...)
}

// Query runs a single Barnes-Hut traversal for q against this tree,
// using the tree's current theta and kernel.
func (t *Tree) Query(q body.Body) body.SimulationResult {
	return Query(t.root, q, t.Theta, t.kernel())
}

func (t *Tree) kernel() Kernel {
	if t.Kernel == nil {
		return ReferenceKernel
	}
	return t.Kernel
}

// Step flattens the tree to its bodies, computes each body's
// SimulationResult in parallel across a worker pool, applies respond
// to obtain the next-frame body, and builds a new Tree over the
// result with the same TimeStep, LeafCapacity, Theta, Workers and
// Kernel (stepping an empty tree returns an empty tree that carries
// only TimeStep, LeafCapacity and Theta). The old tree
// is left untouched; the traversal never mutates it. The order
// bodies are flattened in is deterministic, and the per-query
// reduction (left child before right) is sequential, so two Step
// calls over clones of the same tree produce bitwise-identical output.
func (t *Tree) Step(respond ResponseFunc) (*Tree, error) {
	bodies := t.Flatten()
	next := make([]body.Body, len(bodies))

	workers := t.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(bodies) {
		workers = len(bodies)
	}

	if workers == 0 {
		return New(next, t.TimeStep, t.LeafCapacity, t.Theta)
	}

	root := t.root
	theta := t.Theta
	kernel := t.kernel()

	jobs := make(chan int, len(bodies))
	for i := range bodies {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Go(func() {
			for i := range jobs {
				result := Query(root, bodies[i], theta, kernel)
				next[i] = respond(bodies[i], result, t.TimeStep)
			}
		})
	}
	wg.Wait()

	nt, err := New(next, t.TimeStep, t.LeafCapacity, t.Theta)
	if err != nil {
		return nil, err
	}
	nt.Workers = t.Workers
	nt.Kernel = t.Kernel
	return nt, nil
}

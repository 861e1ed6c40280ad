package pineda

import "github.com/pkg/errors"

// Edge is one directed weighted connection from node Pre to node Post
type Edge struct {
	Pre    int     // the presynaptic (source) node index
	Post   int     // the postsynaptic (destination) node index
	Weight float64 // the trainable weight of the connection
}

// Params contains the time constants and relaxation budget of a network
type Params struct {
	DT         float64        // the integration time step
	TauX       float64        // the time constant of the forward activations
	TauY       float64        // the time constant of the backward (adjoint) state
	TauW       float64        // the time constant of the weights (inverse learning rate)
	DivThresh  float64        // the per-node convergence threshold on the squared change
	MaxSteps   int            // the maximum number of iterations of each relaxation
	Activation ActivationFunc // the squashing function
}

// DefaultParams returns the standard parameters
func DefaultParams() Params {
	return Params{
		DT:         1.0,
		TauX:       1.0,
		TauY:       1.0,
		TauW:       32.0,
		DivThresh:  1e-6,
		MaxSteps:   400,
		Activation: Logistic,
	}
}

// Validate returns an error wrapping ErrParams if any parameter is unusable
func (p Params) Validate() error {
	switch {
	case !(p.DT > 0):
		return errors.Wrapf(ErrParams, "dt must be positive (%g)", p.DT)
	case !(p.TauX > 0), !(p.TauY > 0), !(p.TauW > 0):
		return errors.Wrapf(ErrParams, "time constants must be positive (tauX=%g tauY=%g tauW=%g)", p.TauX, p.TauY, p.TauW)
	case !(p.DivThresh >= 0):
		return errors.Wrapf(ErrParams, "divThresh must not be negative (%g)", p.DivThresh)
	case p.MaxSteps < 1:
		return errors.Wrapf(ErrParams, "maxSteps must be at least 1 (%d)", p.MaxSteps)
	case p.Activation.Func == nil || p.Activation.Derivative == nil:
		return errors.Wrap(ErrParams, "activation function is incomplete")
	}
	return nil
}

// NumNodes returns the number of nodes implied by the given edge endpoint arrays,
// which is one more than the largest index referenced by any edge
func NumNodes(pre, post []int) (int, error) {
	if len(pre) != len(post) {
		return 0, errors.Wrapf(ErrConfig, "pre and post have different lengths (%d != %d)", len(pre), len(post))
	}
	if len(pre) == 0 {
		return 0, errors.Wrap(ErrConfig, "no edges")
	}
	n := -1
	for i := range pre {
		if pre[i] < 0 || post[i] < 0 {
			return 0, errors.Wrapf(ErrNodeIndex, "edge %d (%d -> %d) has a negative endpoint", i, pre[i], post[i])
		}
		if pre[i] > n {
			n = pre[i]
		}
		if post[i] > n {
			n = post[i]
		}
	}
	return n + 1, nil
}

// Builder accumulates the edges of a network of a fixed number of nodes. It yields a
// Network exactly once, via Finalize.
type Builder struct {
	n         int
	params    Params
	edges     []Edge
	finalized bool
}

// NewBuilder creates and returns a builder for a network with n real nodes
func NewBuilder(n int, p Params) (*Builder, error) {
	if n < 1 {
		return nil, errors.Wrapf(ErrParams, "network needs at least one node (%d)", n)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Builder{n: n, params: p}, nil
}

// NumNodes returns the number of real nodes in the network being built
func (b *Builder) NumNodes() int {
	return b.n
}

// Connect appends an edge from pre to post with the given initial weight.
// Duplicate edges and self-loops are kept as separate edges.
func (b *Builder) Connect(pre, post int, weight float64) error {
	if b.finalized {
		return errors.Wrapf(ErrFinalized, "connect %d -> %d", pre, post)
	}
	if pre < 0 || pre >= b.n || post < 0 || post >= b.n {
		return errors.Wrapf(ErrNodeIndex, "edge %d -> %d outside [0, %d)", pre, post, b.n)
	}
	b.edges = append(b.edges, Edge{Pre: pre, Post: post, Weight: weight})
	return nil
}

// ConnectAll connects pre[i] to post[i] for every i with zero weight
func (b *Builder) ConnectAll(pre, post []int) error {
	if len(pre) != len(post) {
		return errors.Wrapf(ErrConfig, "pre and post have different lengths (%d != %d)", len(pre), len(post))
	}
	for i := range pre {
		if err := b.Connect(pre[i], post[i], 0); err != nil {
			return err
		}
	}
	return nil
}

// Finalize adds the bias unit (index N, wired to every real node with a zero weight),
// freezes the edge list and returns the compiled network with its weight checkpoint
// set to the current weights. It can only be called once.
func (b *Builder) Finalize() (*Network, error) {
	if b.finalized {
		return nil, errors.Wrap(ErrFinalized, "finalize called twice")
	}
	b.finalized = true

	n := b.n
	edges := make([]Edge, len(b.edges), len(b.edges)+n)
	copy(edges, b.edges)
	for i := 0; i < n; i++ {
		edges = append(edges, Edge{Pre: n, Post: i})
	}
	p := b.params
	net := &Network{
		n:          n,
		dtOverTauX: p.DT / p.TauX,
		dtOverTauY: p.DT / p.TauY,
		dtOverTauW: p.DT / p.TauW,
		divThresh:  p.DivThresh * float64(n),
		maxSteps:   p.MaxSteps,
		act:        p.Activation,
		edges:      edges,
		best:       make([]float64, len(edges)),
		prev:       make([]float64, n),

		X:      make([]float64, n+1),
		Y:      make([]float64, n+1),
		U:      make([]float64, n+1),
		F:      make([]float64, n+1),
		Fprime: make([]float64, n+1),
		J:      make([]float64, n+1),
		V:      make([]float64, n+1),
		Input:  make([]float64, n+1),
	}
	net.X[n] = 1
	net.Checkpoint()
	return net, nil
}

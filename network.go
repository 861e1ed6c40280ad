// Package pineda trains arbitrary-topology continuous-time recurrent networks with
// Pineda's recurrent backpropagation: the forward dynamics are relaxed to a fixed point,
// the linearized backward (adjoint) dynamics are relaxed to theirs using that solution,
// and a local three-factor rule updates each edge weight.
package pineda

import "github.com/pkg/errors"

// Network is a compiled recurrent network of N real nodes plus a bias unit at index N.
// It is created by Builder.Finalize, after which the edge list never changes.
//
// All per-node vectors have length N+1. The bias slot of X is fixed at 1 and no bias
// slot is ever integrated by the relaxations.
type Network struct {
	X      []float64 // the forward activation of each node
	Y      []float64 // the backward (adjoint) state of each node
	U      []float64 // the net input of each node
	F      []float64 // the squashed net input of each node
	Fprime []float64 // the derivative of the squashing function at each node
	J      []float64 // the target error injected at each node
	V      []float64 // the backward net sum of each node
	Input  []float64 // the external input clamped onto each node

	// ResetAllAdjoint makes SetInput clear the adjoint state of every real node.
	// By default the last real node keeps its adjoint state across presentations.
	ResetAllAdjoint bool

	n          int            // the number of real nodes
	dtOverTauX float64        // the forward integration rate
	dtOverTauY float64        // the backward integration rate
	dtOverTauW float64        // the weight integration rate
	divThresh  float64        // the convergence threshold, already scaled by n
	maxSteps   int            // the iteration budget of each relaxation
	act        ActivationFunc // the squashing function
	edges      []Edge         // the edges, bias edges last
	best       []float64      // the weight checkpoint
	prev       []float64      // scratch for convergence checks

	forwardSteps  int // iterations used by the last forward relaxation
	backwardSteps int // iterations used by the last backward relaxation
}

// NumNodes returns the number of real nodes (excluding the bias unit)
func (n *Network) NumNodes() int {
	return n.n
}

// BiasIndex returns the node index of the bias unit
func (n *Network) BiasIndex() int {
	return n.n
}

// NumEdges returns the number of edges, including the N bias edges
func (n *Network) NumEdges() int {
	return len(n.edges)
}

// Edges returns a copy of the edge list with the current weights
func (n *Network) Edges() []Edge {
	res := make([]Edge, len(n.edges))
	copy(res, n.edges)
	return res
}

// Weights returns a copy of the current weights in edge order
func (n *Network) Weights() []float64 {
	res := make([]float64, len(n.edges))
	for i, e := range n.edges {
		res[i] = e.Weight
	}
	return res
}

// SetWeight sets the weight of the edge at the given index
func (n *Network) SetWeight(i int, w float64) {
	n.edges[i].Weight = w
}

// SetWeights sets every weight from the given slice, which must have NumEdges values
func (n *Network) SetWeights(w []float64) error {
	if len(w) != len(n.edges) {
		return errors.Wrapf(ErrConfig, "got %d weights for %d edges", len(w), len(n.edges))
	}
	for i := range n.edges {
		n.edges[i].Weight = w[i]
	}
	return nil
}

// Best returns a copy of the weight checkpoint
func (n *Network) Best() []float64 {
	res := make([]float64, len(n.best))
	copy(res, n.best)
	return res
}

// Checkpoint accepts the current weights as the new checkpoint
func (n *Network) Checkpoint() {
	for i, e := range n.edges {
		n.best[i] = e.Weight
	}
}

// Rollback restores the weights from the checkpoint
func (n *Network) Rollback() {
	for i := range n.edges {
		n.edges[i].Weight = n.best[i]
	}
}

// RandomizeWeights sets every weight, bias edges included, to a uniform value in
// [weightMin, weightMax). The checkpoint is left unchanged.
func (n *Network) RandomizeWeights(src Source, weightMin, weightMax float64) error {
	if src == nil {
		return ErrNeedRandSource
	}
	if weightMax < weightMin {
		return errors.Wrapf(ErrParams, "weightMax %g below weightMin %g", weightMax, weightMin)
	}
	span := weightMax - weightMin
	for i := range n.edges {
		n.edges[i].Weight = src.Float64()*span + weightMin
	}
	return nil
}

// reset clears the activations, the adjoint state and the external inputs
func (n *Network) reset() {
	for i := 0; i < n.n; i++ {
		n.X[i] = 0
	}
	last := n.n - 1
	if n.ResetAllAdjoint {
		last = n.n
	}
	for i := 0; i < last; i++ {
		n.Y[i] = 0
	}
	for i := range n.Input {
		n.Input[i] = 0
	}
}

// SetInput resets the dynamical state and clamps vals[i] onto node ids[i]; every other
// node receives no external input
func (n *Network) SetInput(ids []int, vals []float64) error {
	if err := n.checkPairs("input", ids, vals); err != nil {
		return err
	}
	n.setInput(ids, vals)
	return nil
}

// setInput is SetInput for ids and vals that are already known to be valid
func (n *Network) setInput(ids []int, vals []float64) {
	n.reset()
	for i, id := range ids {
		n.Input[id] = vals[i]
	}
}

// SetError clears the target error and sets it to targets[i] - X[ids[i]] on each
// designated node. It reads the current activations, so it belongs after a forward
// relaxation.
func (n *Network) SetError(ids []int, targets []float64) error {
	if err := n.checkPairs("target", ids, targets); err != nil {
		return err
	}
	n.setError(ids, targets)
	return nil
}

// setError is SetError for ids and targets that are already known to be valid
func (n *Network) setError(ids []int, targets []float64) {
	for i := range n.J {
		n.J[i] = 0
	}
	for i, id := range ids {
		n.J[id] = targets[i] - n.X[id]
	}
}

// Error returns half the sum of the squared target errors set by SetError
func (n *Network) Error() float64 {
	var sum float64
	for _, j := range n.J {
		sum += j * j
	}
	return 0.5 * sum
}

// checkIDs returns an error wrapping ErrNodeIndex if any id is outside [0, N)
func (n *Network) checkIDs(what string, ids []int) error {
	for _, id := range ids {
		if id < 0 || id >= n.n {
			return errors.Wrapf(ErrNodeIndex, "%s node %d outside [0, %d)", what, id, n.n)
		}
	}
	return nil
}

// checkPairs returns an error if any id is out of range or ids and vals differ in length
func (n *Network) checkPairs(what string, ids []int, vals []float64) error {
	if err := n.checkIDs(what, ids); err != nil {
		return err
	}
	if len(vals) != len(ids) {
		return errors.Wrapf(ErrConfig, "got %d %s values for %d nodes", len(vals), what, len(ids))
	}
	return nil
}

// Infer clamps the given input, relaxes the forward dynamics and returns the settled
// activations of the output nodes, along with whether the relaxation converged.
// The weights are not changed.
func (n *Network) Infer(inputIDs []int, input []float64, outputIDs []int) ([]float64, bool, error) {
	if err := n.checkPairs("input", inputIDs, input); err != nil {
		return nil, false, err
	}
	if err := n.checkIDs("output", outputIDs); err != nil {
		return nil, false, err
	}
	n.setInput(inputIDs, input)
	converged := n.ConvergeForward()
	return n.Outputs(outputIDs), converged, nil
}

// Outputs returns the current activations of the given nodes
func (n *Network) Outputs(ids []int) []float64 {
	res := make([]float64, len(ids))
	for i, id := range ids {
		res[i] = n.X[id]
	}
	return res
}

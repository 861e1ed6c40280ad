package pineda

// forward performs one Euler step of the forward dynamics
func (n *Network) forward() {
	for i := range n.U {
		n.U[i] = 0
	}
	for _, e := range n.edges {
		n.U[e.Post] += n.X[e.Pre] * e.Weight
	}
	for i := 0; i < n.n; i++ {
		n.F[i] = n.act.Func(n.U[i])
	}
	for i := 0; i < n.n; i++ {
		n.X[i] += n.dtOverTauX * (-n.X[i] + n.F[i] + n.Input[i])
	}
}

// backward performs one Euler step of the adjoint dynamics. Edges run in reverse:
// error flows from each edge's post node to its pre node.
func (n *Network) backward() {
	for i := 0; i < n.n; i++ {
		n.Fprime[i] = n.act.Derivative(n.F[i])
	}
	for i := range n.V {
		n.V[i] = 0
	}
	for _, e := range n.edges {
		n.V[e.Pre] += n.Fprime[e.Post] * e.Weight * n.Y[e.Post]
	}
	for i := 0; i < n.n; i++ {
		n.Y[i] += n.dtOverTauY * (n.V[i] - n.Y[i] + n.J[i])
	}
}

// relax repeats step on state until the summed squared change of the real nodes drops
// to the threshold or the budget runs out. It returns the number of steps taken and
// whether it converged. At least one step is always taken.
func (n *Network) relax(state []float64, step func()) (int, bool) {
	for t := 1; t <= n.maxSteps; t++ {
		copy(n.prev, state[:n.n])
		step()
		var total float64
		for i := 0; i < n.n; i++ {
			d := state[i] - n.prev[i]
			total += d * d
		}
		if total <= n.divThresh {
			return t, true
		}
	}
	return n.maxSteps, false
}

// ConvergeForward relaxes the forward dynamics toward a fixed point and reports
// whether it got there within the iteration budget. If not, the last computed state
// is left in place and is what later steps use.
func (n *Network) ConvergeForward() bool {
	steps, ok := n.relax(n.X, n.forward)
	n.forwardSteps = steps
	return ok
}

// ConvergeBackward relaxes the adjoint dynamics toward a fixed point using the
// squashed values of the last forward relaxation and the target error set by SetError.
// It has its own iteration budget and the same soft-failure policy as ConvergeForward.
func (n *Network) ConvergeBackward() bool {
	steps, ok := n.relax(n.Y, n.backward)
	n.backwardSteps = steps
	return ok
}

// ForwardSteps returns the number of iterations used by the last ConvergeForward
func (n *Network) ForwardSteps() int {
	return n.forwardSteps
}

// BackwardSteps returns the number of iterations used by the last ConvergeBackward
func (n *Network) BackwardSteps() int {
	return n.backwardSteps
}

// weightStep returns the change applied to a weight for the given local delta:
// a fixed step of rate once |delta| exceeds 1, rate*delta otherwise
func weightStep(delta, rate float64) float64 {
	switch {
	case delta < -1:
		return -rate
	case delta > 1:
		return rate
	}
	return rate * delta
}

// UpdateWeights applies one saturating learning step to every edge using the
// correlation of the pre node's activation with the post node's adjoint state and
// squashing derivative
func (n *Network) UpdateWeights() {
	for i, e := range n.edges {
		delta := n.X[e.Pre] * n.Y[e.Post] * n.Fprime[e.Post]
		n.edges[i].Weight += weightStep(delta, n.dtOverTauW)
	}
}

package pineda

import (
	"log"

	"github.com/pkg/errors"
)

// Pattern is one training example: the values clamped onto the input nodes and the
// targets for the output nodes
type Pattern struct {
	Input  []float64
	Output []float64
}

// ProgressSteps is the number of progress reports a logged run makes
const ProgressSteps = 100

// errMinInit is the running best error before the first evaluation
const errMinInit = 1e9

// Stats counts what happened during a training run
type Stats struct {
	Epochs            int // the number of epochs run
	Evaluations       int // the number of evaluation epochs
	Rollbacks         int // the number of evaluations that restored the checkpoint
	ForwardUnsettled  int // the number of forward relaxations that did not converge
	BackwardUnsettled int // the number of backward relaxations that did not converge
}

// Trainer trains a network on a dataset by interleaving stochastic learning epochs
// with periodic evaluations over the whole dataset. It owns the network's weight
// checkpoint.
type Trainer struct {
	Net       *Network
	InputIDs  []int
	OutputIDs []int
	Patterns  []Pattern
	Logger    *log.Logger // if set, progress is reported here
	Stats     Stats

	src    Source
	errMin float64
}

// NewTrainer creates and returns a trainer for the given network and dataset, checking
// that every node designation is in range and every pattern has the right widths
func NewTrainer(net *Network, src Source, inputIDs, outputIDs []int, patterns []Pattern) (*Trainer, error) {
	if src == nil {
		return nil, ErrNeedRandSource
	}
	if err := net.checkIDs("input", inputIDs); err != nil {
		return nil, err
	}
	if err := net.checkIDs("output", outputIDs); err != nil {
		return nil, err
	}
	if len(patterns) == 0 {
		return nil, ErrEmptyDataset
	}
	for i, p := range patterns {
		if len(p.Input) != len(inputIDs) {
			return nil, errors.Wrapf(ErrConfig, "pattern %d has %d inputs for %d input nodes", i, len(p.Input), len(inputIDs))
		}
		if len(p.Output) != len(outputIDs) {
			return nil, errors.Wrapf(ErrConfig, "pattern %d has %d outputs for %d output nodes", i, len(p.Output), len(outputIDs))
		}
	}
	return &Trainer{
		Net:       net,
		InputIDs:  inputIDs,
		OutputIDs: outputIDs,
		Patterns:  patterns,
		src:       src,
		errMin:    errMinInit,
	}, nil
}

// ErrMin returns the best mean error accepted so far in the current or last run
func (t *Trainer) ErrMin() float64 {
	return t.errMin
}

// Run trains for k epochs. Every epoch whose index is a multiple of evalPeriod
// (including epoch 0) evaluates the mean error over the whole dataset and either
// accepts the current weights as the checkpoint or, if the error is more than twice
// the best so far, rolls back to the checkpoint. All other epochs learn from one
// randomly chosen pattern. Run returns the mean error of every evaluation epoch and
// leaves the network holding the checkpoint weights.
func (t *Trainer) Run(k, evalPeriod int) ([]float64, error) {
	if k < 0 {
		return nil, errors.Wrapf(ErrParams, "negative epoch count %d", k)
	}
	if evalPeriod < 1 {
		return nil, errors.Wrapf(ErrParams, "evaluation period must be at least 1 (%d)", evalPeriod)
	}
	if t.Logger != nil && k < ProgressSteps {
		return nil, errors.Wrapf(ErrTooFewEpochs, "%d epochs, need at least %d", k, ProgressSteps)
	}
	t.errMin = errMinInit

	res := make([]float64, 0, (k+evalPeriod-1)/evalPeriod)
	for e := 0; e < k; e++ {
		if e%evalPeriod != 0 {
			t.learn()
			continue
		}
		mean := t.evaluate()
		res = append(res, mean)
		if t.Logger != nil && e%(k/ProgressSteps) == 0 {
			t.Logger.Printf("progress: %g%% error: %g\n", 100*float64(e)/float64(k), mean)
		}
	}
	t.Stats.Epochs += k
	t.Net.Rollback()
	return res, nil
}

// present clamps the pattern, relaxes forward and sets the target error
func (t *Trainer) present(p Pattern) {
	t.Net.setInput(t.InputIDs, p.Input)
	if !t.Net.ConvergeForward() {
		t.Stats.ForwardUnsettled++
	}
	t.Net.setError(t.OutputIDs, p.Output)
}

// learn runs one stochastic learning epoch on a randomly chosen pattern
func (t *Trainer) learn() {
	p := t.Patterns[sampleIndex(t.src, len(t.Patterns))]
	t.present(p)
	if !t.Net.ConvergeBackward() {
		t.Stats.BackwardUnsettled++
	}
	t.Net.UpdateWeights()
}

// evaluate runs one evaluation epoch and returns the mean error over the dataset
func (t *Trainer) evaluate() float64 {
	var sum float64
	for _, p := range t.Patterns {
		t.present(p)
		sum += t.Net.Error()
	}
	mean := sum / float64(len(t.Patterns))
	t.Stats.Evaluations++

	if mean > 2*t.errMin {
		t.Net.Rollback()
		t.Stats.Rollbacks++
		return mean
	}
	t.Net.Checkpoint()
	if mean < t.errMin {
		t.errMin = mean
	}
	return mean
}

// Test presents every pattern with learning disabled and returns the settled output
// activations, pattern by pattern
func (t *Trainer) Test() []float64 {
	res := make([]float64, 0, len(t.Patterns)*len(t.OutputIDs))
	for _, p := range t.Patterns {
		t.Net.setInput(t.InputIDs, p.Input)
		t.Net.ConvergeForward()
		res = append(res, t.Net.Outputs(t.OutputIDs)...)
	}
	return res
}

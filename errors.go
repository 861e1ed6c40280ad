package pineda

import "github.com/pkg/errors"

// Validation errors. Callers branch on them with errors.Is; the returned errors wrap
// these with the offending values.
var (
	// ErrConfig indicates structurally inconsistent input: pre/post arrays of
	// different lengths, mismatched pattern counts or pattern widths.
	ErrConfig = errors.New("pineda: inconsistent configuration")

	// ErrNodeIndex indicates an edge endpoint or input/output designation outside [0, N).
	ErrNodeIndex = errors.New("pineda: node index out of range")

	// ErrParams indicates a non-positive time constant, step size or iteration budget.
	ErrParams = errors.New("pineda: invalid parameters")

	// ErrFinalized indicates a topology change after Finalize, or a second Finalize.
	ErrFinalized = errors.New("pineda: topology already finalized")

	// ErrNeedRandSource indicates a nil random source.
	ErrNeedRandSource = errors.New("pineda: random source is required")

	// ErrEmptyDataset indicates a trainer constructed without patterns.
	ErrEmptyDataset = errors.New("pineda: dataset has no patterns")

	// ErrTooFewEpochs indicates an epoch count too small for progress reporting.
	ErrTooFewEpochs = errors.New("pineda: too few epochs for progress reporting")
)

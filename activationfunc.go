package pineda

import (
	"math"

	"github.com/goki/mat32"
)

// ActivationFunc is a squashing function that turns a net input into a node's
// steady-state drive. It contains the function itself (Func) and its derivative
// (Derivative), which is expressed in terms of the squashed value F rather than the
// net input, since that is what the backward relaxation has on hand.
type ActivationFunc struct {
	Name       string
	Func       func(u float64) float64
	Derivative func(f float64) float64
}

// Logistic is the standard logistic / Sigmoid squashing function (1 / (1 + e^-u))
var Logistic = ActivationFunc{
	Name:       "logistic",
	Func:       LogisticFunc,
	Derivative: LogisticDerivative,
}

// FastLogistic is the logistic function computed in float32 with mat32.FastExp.
// It trades accuracy (and strict (0,1) bounds at large |u|) for speed.
var FastLogistic = ActivationFunc{
	Name:       "fastlogistic",
	Func:       FastLogisticFunc,
	Derivative: LogisticDerivative,
}

// LogisticFunc returns the value of the standard logistic function at the given point (1 / (1 + e^-u))
func LogisticFunc(u float64) float64 {
	return 1 / (1 + math.Exp(-u))
}

// fastExpMin is the lower bound below which mat32.FastExp flushes to zero; the upper
// bound keeps the float32 bit trick from overflowing.
const (
	fastExpMin = -87
	fastExpMax = 87
)

// FastLogisticFunc returns an approximation of the logistic function using mat32.FastExp
func FastLogisticFunc(u float64) float64 {
	x := float32(-u)
	if x < fastExpMin {
		x = fastExpMin
	} else if x > fastExpMax {
		x = fastExpMax
	}
	return float64(1 / (1 + mat32.FastExp(x)))
}

// LogisticDerivative returns the derivative of the logistic function given its value f
func LogisticDerivative(f float64) float64 {
	return f * (1 - f)
}

// ActivationByName returns the squashing function with the given name
// ("logistic" or "fastlogistic"). The empty name selects Logistic.
func ActivationByName(name string) (ActivationFunc, bool) {
	switch name {
	case "", Logistic.Name:
		return Logistic, true
	case FastLogistic.Name:
		return FastLogistic, true
	}
	return ActivationFunc{}, false
}

package calibrate

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// fitLogistic fits Pr(draw) ~ sigmoid(intercept + coef·x) by iteratively
// reweighted least squares (Fisher scoring), the same gradient-driven
// convergence-loop shape the teacher's MLE solver uses for its attack/
// defense fit, generalized here to a two-parameter logistic model. If
// every observed y is zero, per spec.md §4.6 the coefficients collapse to
// zero rather than running an ill-conditioned fit.
func fitLogistic(x, y []float64) (intercept, coef float64) {
	n := len(x)
	if n == 0 {
		return 0, 0
	}
	sum := 0.0
	for _, v := range y {
		sum += v
	}
	if sum == 0 {
		return 0, 0
	}

	beta := []float64{0, 0}
	for iter := 0; iter < 25; iter++ {
		xtwx := mat.NewDense(2, 2, nil)
		xtwz := mat.NewVecDense(2, nil)
		for i := 0; i < n; i++ {
			eta := beta[0] + beta[1]*x[i]
			p := sigmoid(eta)
			w := p * (1 - p)
			if w < 1e-6 {
				w = 1e-6
			}
			xi := [2]float64{1, x[i]}
			for a := 0; a < 2; a++ {
				for b := 0; b < 2; b++ {
					xtwx.Set(a, b, xtwx.At(a, b)+w*xi[a]*xi[b])
				}
				xtwz.SetVec(a, xtwz.AtVec(a)+xi[a]*(w*eta+(y[i]-p)))
			}
		}

		var betaVec mat.VecDense
		if err := betaVec.SolveVec(xtwx, xtwz); err != nil {
			break
		}
		newBeta := []float64{betaVec.AtVec(0), betaVec.AtVec(1)}
		diff := math.Abs(newBeta[0]-beta[0]) + math.Abs(newBeta[1]-beta[1])
		beta = newBeta
		if diff < 1e-6 {
			break
		}
	}
	return beta[0], beta[1]
}

func sigmoid(eta float64) float64 {
	return 1.0 / (1.0 + math.Exp(-eta))
}

// optimalDrawMultiplier grid-searches [0.8, 2.0] for the scalar that, when
// applied to the logistic model's predicted probabilities, best matches
// the observed draw rate, per spec.md §4.6.
func optimalDrawMultiplier(predicted []float64, observedRate float64) float64 {
	best := 1.0
	bestDiff := math.Inf(1)
	for step := 0; step <= 120; step++ {
		mult := 0.8 + float64(step)*0.01
		mean := 0.0
		for _, p := range predicted {
			mean += clampProb(mult * p)
		}
		if len(predicted) > 0 {
			mean /= float64(len(predicted))
		}
		diff := math.Abs(mean - observedRate)
		if diff < bestDiff {
			bestDiff = diff
			best = mult
		}
	}
	return best
}

func clampProb(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

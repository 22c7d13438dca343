package feasibility

import (
	"math"
)

// SolverConfig tunes the IRR root finder.
type SolverConfig struct {
	InitialGuess  float64 `json:"initial_guess" yaml:"initial_guess"`
	Tolerance     float64 `json:"tolerance" yaml:"tolerance"` // on |NPV|
	MaxIterations int     `json:"max_iterations" yaml:"max_iterations"`
	BracketLow    float64 `json:"bracket_low" yaml:"bracket_low"`
	BracketHigh   float64 `json:"bracket_high" yaml:"bracket_high"`
}

// DefaultSolverConfig: guess 10%, ε = 1e-6, 100 iterations, r ∈ [-0.99, 10].
func DefaultSolverConfig() SolverConfig {
	return SolverConfig{
		InitialGuess:  0.1,
		Tolerance:     1e-6,
		MaxIterations: 100,
		BracketLow:    -0.99,
		BracketHigh:   10.0,
	}
}

// withDefaults fills each zero field from DefaultSolverConfig independently.
// A zero value always means unset, so a guess or bracket end of exactly 0 is
// not expressible; use a small offset such as 1e-9 instead.
func (c SolverConfig) withDefaults() SolverConfig {
	d := DefaultSolverConfig()
	if c.Tolerance <= 0 {
		c.Tolerance = d.Tolerance
	}
	if c.MaxIterations <= 0 {
		c.MaxIterations = d.MaxIterations
	}
	if c.BracketLow == 0 {
		c.BracketLow = d.BracketLow
	}
	if c.BracketHigh == 0 {
		c.BracketHigh = d.BracketHigh
	}
	if c.InitialGuess == 0 {
		c.InitialGuess = d.InitialGuess
	}
	return c
}

const (
	MethodNewton    = "newton"
	MethodBisection = "bisection"

	// derivativeFloor below which a Newton step is treated as a division by ~0.
	derivativeFloor = 1e-12
	// bracketScanSteps is the grid used to look for a sign change.
	bracketScanSteps = 400
	relativeTolFloor = 1e-12
)

// IRRResult is a converged rate with the diagnostics of how it was reached.
type IRRResult struct {
	Rate       float64 `json:"rate"`
	Iterations int     `json:"iterations"`
	Method     string  `json:"method"`
	NPV        float64 `json:"npv_at_rate"`
}

// Pct returns the rate as a percentage.
func (r IRRResult) Pct() float64 { return r.Rate * 100 }

// NPV discounts flows[i] by (1+rate)^i.
func NPV(flows []float64, rate float64) float64 {
	npv, _ := npvAndDerivative(flows, rate)
	return npv
}

func npvAndDerivative(flows []float64, rate float64) (float64, float64) {
	var npv, d float64
	base := 1 + rate
	discount := 1.0 // (1+r)^-i
	for i, f := range flows {
		npv += f * discount
		// d/dr f(1+r)^-i = -i f (1+r)^-(i+1)
		d -= float64(i) * f * discount / base
		discount /= base
	}
	return npv, d
}

// SolveIRR finds r with NPV(flows, r) = 0.
//
// Newton-Raphson runs first from cfg.InitialGuess. When the derivative
// vanishes, a step leaves [BracketLow, BracketHigh], or the iteration budget
// runs out, the solver falls back to bisection over a sign-changing bracket
// found inside the same interval. A rate is only returned when |NPV| is
// within tolerance; otherwise the error is ErrIRRNonConvergent. Series without
// both a positive and a negative flow fail with ErrIRRUndefined.
func SolveIRR(flows []float64, cfg SolverConfig) (IRRResult, error) {
	cfg = cfg.withDefaults()

	var hasPos, hasNeg bool
	maxAbs := 0.0
	for _, f := range flows {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return IRRResult{}, irrUndefinedf("cash flow series contains a non-finite value")
		}
		if f > 0 {
			hasPos = true
		} else if f < 0 {
			hasNeg = true
		}
		maxAbs = math.Max(maxAbs, math.Abs(f))
	}
	if !hasPos || !hasNeg {
		return IRRResult{}, irrUndefinedf("cash flows never change sign")
	}
	if !(cfg.BracketLow > -1) || !(cfg.BracketHigh > cfg.BracketLow) {
		return IRRResult{}, nonConvergentf("invalid search range [%v, %v]", cfg.BracketLow, cfg.BracketHigh)
	}

	// Absolute ε, floored at a few thousand ulps of the largest flow so that
	// currency-scale series stay reachable in float64.
	tol := math.Max(cfg.Tolerance, maxAbs*relativeTolFloor)

	if res, ok := newton(flows, cfg, tol); ok {
		return res, nil
	}
	return bisect(flows, cfg, tol)
}

func newton(flows []float64, cfg SolverConfig, tol float64) (IRRResult, bool) {
	r := cfg.InitialGuess
	if r < cfg.BracketLow || r > cfg.BracketHigh {
		return IRRResult{}, false
	}

	for i := 0; i <= cfg.MaxIterations; i++ {
		npv, d := npvAndDerivative(flows, r)
		if math.Abs(npv) < tol {
			return IRRResult{Rate: r, Iterations: i, Method: MethodNewton, NPV: npv}, true
		}
		if i == cfg.MaxIterations || math.Abs(d) < derivativeFloor {
			return IRRResult{}, false
		}

		next := r - npv/d
		if math.IsNaN(next) || next < cfg.BracketLow || next > cfg.BracketHigh {
			return IRRResult{}, false
		}
		r = next
	}
	return IRRResult{}, false
}

func bisect(flows []float64, cfg SolverConfig, tol float64) (IRRResult, error) {
	lo, hi, fLo, ok := findBracket(flows, cfg.BracketLow, cfg.BracketHigh)
	if !ok {
		return IRRResult{}, nonConvergentf("no sign change of NPV within [%v, %v]", cfg.BracketLow, cfg.BracketHigh)
	}

	for i := 1; i <= cfg.MaxIterations; i++ {
		mid := lo + (hi-lo)/2
		fMid := NPV(flows, mid)
		if math.Abs(fMid) < tol {
			return IRRResult{Rate: mid, Iterations: i, Method: MethodBisection, NPV: fMid}, nil
		}
		if math.Signbit(fMid) == math.Signbit(fLo) {
			lo, fLo = mid, fMid
		} else {
			hi = mid
		}
	}
	return IRRResult{}, nonConvergentf("bisection exhausted %d iterations in [%v, %v]", cfg.MaxIterations, lo, hi)
}

// findBracket scans [low, high] on a fixed grid and returns the first
// sub-interval whose endpoints give NPVs of opposite sign.
func findBracket(flows []float64, low, high float64) (float64, float64, float64, bool) {
	step := (high - low) / bracketScanSteps
	prevR := low
	prevF := NPV(flows, prevR)
	if prevF == 0 {
		return low, low, 0, true
	}

	for i := 1; i <= bracketScanSteps; i++ {
		r := low + float64(i)*step
		if i == bracketScanSteps {
			r = high
		}
		f := NPV(flows, r)
		if math.IsNaN(f) {
			continue
		}
		if f == 0 {
			// exact hit, degenerate bracket
			return r, r, f, true
		}
		if !math.IsNaN(prevF) && math.Signbit(prevF) != math.Signbit(f) {
			return prevR, r, prevF, true
		}
		prevR, prevF = r, f
	}
	return 0, 0, 0, false
}

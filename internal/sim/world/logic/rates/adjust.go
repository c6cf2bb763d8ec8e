package rates

import "math"

// Policy is the daily step function shared by wages and rents.
type Policy struct {
	Threshold float64 `json:"threshold" yaml:"threshold"` // staffing or occupancy ratio that flips the direction
	Step      float64 `json:"step" yaml:"step"`           // multiplicative step, 0.01 = 1%
}

var DefaultPolicy = Policy{Threshold: 0.8, Step: 0.01}

// NextWage lowers pay when the employer is nearly full or in debt and raises it otherwise.
// Wages are whole currency units and never drop below 1.
func NextWage(wage, staffRatio, treasury float64, p Policy) float64 {
	if staffRatio > p.Threshold || treasury < 0 {
		w := math.Floor(wage * (1 - p.Step))
		if w < 1 {
			w = 1
		}
		return w
	}
	if up := math.Ceil(wage * (1 + p.Step)); up > 0 {
		return up
	}
	return wage + 1
}

// NextRent lowers the rate while occupancy is under the threshold and raises it otherwise.
// A zero rate is bumped by one unit since multiplying cannot move it.
func NextRent(rate, occupancy float64, p Policy) float64 {
	var next float64
	switch {
	case occupancy < p.Threshold:
		next = rate * (1 - p.Step)
	case rate > 0:
		next = rate * (1 + p.Step)
	default:
		next = rate + 1
	}
	if next < 0 {
		return 0
	}
	return next
}

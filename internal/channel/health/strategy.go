package health

// SuccessRateStrategy folds one gateway outcome into a 0–100 success rate.
type SuccessRateStrategy interface {
	Update(current float64, success bool) float64
}

// EWMAStrategy 趋势平滑，适合高频场景
type EWMAStrategy struct {
	Alpha float64 // e.g. 0.1
}

func (e *EWMAStrategy) Update(current float64, success bool) float64 {
	value := 0.0
	if success {
		value = 100
	}
	return e.Alpha*value + (1-e.Alpha)*current
}

// DecayStrategy shrinks the rate by Factor on each failure and leaves it
// unchanged on success.
type DecayStrategy struct {
	Factor float64 // e.g. 0.95
}

func (d *DecayStrategy) Update(current float64, success bool) float64 {
	if success {
		return current
	}
	return max(current*d.Factor, 0)
}

// SlidingStrategy moves the rate by fixed steps.
type SlidingStrategy struct {
	StepUp   float64
	StepDown float64
}

func (s *SlidingStrategy) Update(current float64, success bool) float64 {
	if success {
		return min(current+s.StepUp, 100)
	}
	return max(current-s.StepDown, 0)
}

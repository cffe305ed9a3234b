package health

import "fmt"

// NewStrategy returns the named success-rate strategy with its standard
// tuning.
func NewStrategy(name string) (SuccessRateStrategy, error) {
	switch name {
	case "", "ewma":
		return &EWMAStrategy{Alpha: 0.1}, nil
	case "decay":
		return &DecayStrategy{Factor: 0.95}, nil
	case "sliding":
		return &SlidingStrategy{StepUp: 5, StepDown: 10}, nil
	default:
		return nil, fmt.Errorf("unknown health strategy %q", name)
	}
}

package modulation

// AllPassStage is a first-order allpass section with one delay element.
//
//	y = a1*x + z
//	z = x - a1*y
type AllPassStage struct {
	z float64
}

// AllPassCoefficient returns a1 = (1-pf)/(1+pf) with pf = freq/sampleRate.
func AllPassCoefficient(freqHz float64, sampleRate int) float64 {
	pf := freqHz / float64(sampleRate)
	return (1 - pf) / (1 + pf)
}

// Process filters one sample with coefficient a1.
func (s *AllPassStage) Process(x, a1 float64) float64 {
	y := a1*x + s.z
	s.z = x - a1*y
	return y
}

// Reset clears the delay element.
func (s *AllPassStage) Reset() {
	s.z = 0
}

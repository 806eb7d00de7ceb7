package index

import "fmt"

// Detection defaults. A zero-valued field in Options means "use the
// default"; validation only rejects values that are explicitly out of
// range.
const (
	DefaultTopK        = 8
	DefaultTemperature = 0.7
	DefaultMinDepth    = 1

	// minTemperature is the floor applied to small positive temperatures
	// so the softmax division can never blow up.
	minTemperature = 0.01
)

// Options control a single Detect call.
type Options struct {
	// TopK caps how many candidates are returned. 0 means DefaultTopK.
	TopK int
	// Temperature controls softmax sharpness; lower is sharper.
	// 0 means DefaultTemperature; small positive values are clamped to a
	// floor.
	Temperature float64
	// DisableHeuristics turns off the depth boost, exact-leaf-phrase
	// bump, and shallow penalty, leaving pure cosine scores.
	DisableHeuristics bool
	// MinDepth excludes entries shallower than this from consideration
	// entirely. 0 means DefaultMinDepth.
	MinDepth int
}

// Validate rejects out-of-range option values. Zero values are legal;
// they select defaults.
func (o Options) Validate() error {
	if o.TopK < 0 {
		return fmt.Errorf("index: negative TopK %d", o.TopK)
	}
	if o.Temperature < 0 {
		return fmt.Errorf("index: negative Temperature %g", o.Temperature)
	}
	if o.MinDepth < 0 {
		return fmt.Errorf("index: negative MinDepth %d", o.MinDepth)
	}
	return nil
}

// withDefaults fills zero-valued fields and clamps the temperature floor.
func (o Options) withDefaults() Options {
	if o.TopK == 0 {
		o.TopK = DefaultTopK
	}
	if o.Temperature == 0 {
		o.Temperature = DefaultTemperature
	}
	if o.Temperature < minTemperature {
		o.Temperature = minTemperature
	}
	if o.MinDepth == 0 {
		o.MinDepth = DefaultMinDepth
	}
	return o
}

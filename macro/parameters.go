package macro

// Defaults for Parameters. DefaultParameters applies all of them; a config
// loader that fills a partially specified mapping should start from
// DefaultParameters and overwrite only the fields it finds.
const (
	DefaultFrom            = 0
	DefaultTo              = 365
	DefaultRecordFrequency = 50
)

// Parameters is the simulation configuration carried by the root group of a
// model. Function-valued fields hold strategy instances (DeltaFunc, Hook)
// rather than being part of any serialized form; loaders resolve them by
// name via DeltaFuncByName and HookByName.
type Parameters struct {
	// From and To bound the iteration counter. The engine advances the
	// model To-From times; To itself is one past the last iteration.
	From int
	To   int

	// RecordFrequency is the snapshot cadence in iterations. Minimum
	// meaningful value is 1.
	RecordFrequency int

	// RecordFirst and RecordLast include the initial and final states in
	// the recorded series.
	RecordFirst bool
	RecordLast  bool

	// ReduceInfectivity is the multiplier applied to S->E and S->I rates
	// by the ReduceInfectivity hook, once per invocation.
	ReduceInfectivity float64

	// AsymptomaticInfectiousness and TreatmentInfectiousness weight the
	// A- and T-prefixed compartments in the weighted infection force.
	AsymptomaticInfectiousness float64
	TreatmentInfectiousness    float64

	// Noise is the half-width of the uniform multiplier [1-Noise, 1+Noise]
	// drawn independently for every computed delta. Zero disables noise.
	Noise float64

	// Discrete rounds every delta to the nearest integer before it is
	// applied. Halves round away from zero.
	Discrete bool

	// TransitionFuncs overrides delta-function selection by exact
	// transition name. Entries are laid over the built-in table; the
	// "default" key is the fallback and must always resolve.
	TransitionFuncs map[string]DeltaFunc

	// BeforeFuncs and AfterFuncs run in order around every iteration.
	BeforeFuncs []Hook
	AfterFuncs  []Hook
}

// DefaultParameters returns a fully populated parameter set.
func DefaultParameters() *Parameters {
	return &Parameters{
		From:                       DefaultFrom,
		To:                         DefaultTo,
		RecordFrequency:            DefaultRecordFrequency,
		RecordFirst:                true,
		RecordLast:                 true,
		ReduceInfectivity:          1.0,
		AsymptomaticInfectiousness: 1.0,
		TreatmentInfectiousness:    1.0,
		Noise:                      0.0,
		Discrete:                   false,
		TransitionFuncs:            defaultTransitionFuncs(),
		BeforeFuncs:                nil,
		AfterFuncs:                 nil,
	}
}

// Clone returns a copy safe to mutate independently. Strategy instances are
// shared; they are stateless by contract.
func (p *Parameters) Clone() *Parameters {
	if p == nil {
		return nil
	}
	c := *p
	if p.TransitionFuncs != nil {
		c.TransitionFuncs = make(map[string]DeltaFunc, len(p.TransitionFuncs))
		for name, fn := range p.TransitionFuncs {
			c.TransitionFuncs[name] = fn
		}
	}
	c.BeforeFuncs = append([]Hook(nil), p.BeforeFuncs...)
	c.AfterFuncs = append([]Hook(nil), p.AfterFuncs...)
	return &c
}

// normalized fills a nil parameter set with defaults and lays any user
// TransitionFuncs entries over the built-in table, so that lookup always
// has a "default" fallback. Own entries win over the built-ins; built-ins
// win over nothing.
func (p *Parameters) normalized() *Parameters {
	if p == nil {
		return DefaultParameters()
	}
	c := p.Clone()
	if c.RecordFrequency < 1 {
		c.RecordFrequency = DefaultRecordFrequency
	}
	funcs := defaultTransitionFuncs()
	for name, fn := range c.TransitionFuncs {
		funcs[name] = fn
	}
	c.TransitionFuncs = funcs
	return c
}

package calc

// Step is a single iteration record. Fields a method does not use stay nil
// and are omitted from serialized output.
type Step struct {
	Iteration int `json:"iteration" yaml:"iteration"`

	// scalar methods
	Left       *float64 `json:"a,omitempty" yaml:"a,omitempty"`
	Right      *float64 `json:"b,omitempty" yaml:"b,omitempty"`
	Prev       *float64 `json:"x_k_1,omitempty" yaml:"x_k_1,omitempty"`
	X          float64  `json:"x_k" yaml:"x_k"`
	Next       *float64 `json:"x_k_plus_one,omitempty" yaml:"x_k_plus_one,omitempty"`
	FLeft      *float64 `json:"fa,omitempty" yaml:"fa,omitempty"`
	FRight     *float64 `json:"fb,omitempty" yaml:"fb,omitempty"`
	F          float64  `json:"f" yaml:"f"`
	Derivative *float64 `json:"f_prime_x_k,omitempty" yaml:"f_prime_x_k,omitempty"`

	// systems; F holds g1
	Y           *float64       `json:"y_k,omitempty" yaml:"y_k,omitempty"`
	G2          *float64       `json:"g2,omitempty" yaml:"g2,omitempty"`
	Jacobian    *[2][2]float64 `json:"jacobian,omitempty" yaml:"jacobian,omitempty"`
	Determinant *float64       `json:"determinant,omitempty" yaml:"determinant,omitempty"`
	DeltaX      *float64       `json:"dx,omitempty" yaml:"dx,omitempty"`
	DeltaY      *float64       `json:"dy,omitempty" yaml:"dy,omitempty"`

	AbsDiff float64 `json:"abs_diff" yaml:"abs_diff"`
}

// Float returns a pointer to v for populating optional Step fields.
func Float(v float64) *float64 { return &v }

// Trace is an ordered, append-only log of steps.
type Trace struct {
	steps     []Step
	observers []Observer
}

func NewTrace(observers ...Observer) *Trace {
	return &Trace{
		steps:     make([]Step, 0, 16),
		observers: observers,
	}
}

// Append records s and notifies observers in registration order.
func (t *Trace) Append(s Step) {
	t.steps = append(t.steps, s)
	for _, o := range t.observers {
		o.OnStep(s)
	}
}

func (t *Trace) Len() int { return len(t.steps) }

// Last returns the most recent step, or false on an empty trace.
func (t *Trace) Last() (Step, bool) {
	if len(t.steps) == 0 {
		return Step{}, false
	}
	return t.steps[len(t.steps)-1], true
}

// Steps returns a copy of the recorded steps.
func (t *Trace) Steps() []Step {
	out := make([]Step, len(t.steps))
	copy(out, t.steps)
	return out
}

// AbsDiffs returns the step distance of every recorded step.
func (t *Trace) AbsDiffs() []float64 {
	out := make([]float64, len(t.steps))
	for i, s := range t.steps {
		out[i] = s.AbsDiff
	}
	return out
}

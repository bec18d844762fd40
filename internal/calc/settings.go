package calc

const (
	// DefaultScalarStep is the finite-difference step for scalar derivatives.
	DefaultScalarStep = 1e-5

	// DefaultJacobianStep is the forward-difference step for system Jacobians.
	DefaultJacobianStep = 1e-4

	// DefaultMaxIterations bounds every iteration loop.
	DefaultMaxIterations = 10000
)

// Settings tunes solver behavior. The zero value is not usable; start from
// DefaultSettings.
type Settings struct {
	MaxIterations int
	ScalarStep    float64
	JacobianStep  float64
}

func DefaultSettings() Settings {
	return Settings{
		MaxIterations: DefaultMaxIterations,
		ScalarStep:    DefaultScalarStep,
		JacobianStep:  DefaultJacobianStep,
	}
}

// Observer is notified of every step as it is appended to a trace.
type Observer interface {
	OnStep(s Step)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Step)

func (f ObserverFunc) OnStep(s Step) { f(s) }

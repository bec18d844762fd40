package service

import (
	"context"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/san-kum/rootlab/internal/calc"
	"github.com/san-kum/rootlab/internal/logging"
	"github.com/san-kum/rootlab/internal/solver"
	"github.com/san-kum/rootlab/internal/system"
)

// Response is the payload returned for every request: either Result or
// Error is set. Steps carries the partial trace of a failed run when the
// service is configured to include it.
type Response[T any] struct {
	Result    *T          `json:"result,omitempty" yaml:"result,omitempty"`
	Error     string      `json:"error,omitempty" yaml:"error,omitempty"`
	Steps     []calc.Step `json:"steps,omitempty" yaml:"steps,omitempty"`
	RequestID string      `json:"-" yaml:"-"`
}

type (
	EquationResponse = Response[solver.Result]
	SystemResponse   = Response[system.Result]
)

// OK reports whether the request produced a result.
func (r Response[T]) OK() bool { return r.Result != nil }

type Service struct {
	log        *zap.Logger
	settings   calc.Settings
	scalarStep float64
	partial    bool
}

type Option func(*Service)

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.log = l }
}

func WithSettings(st calc.Settings) Option {
	return func(s *Service) { s.settings = st }
}

// WithPartialTrace attaches the steps recorded before a failure to error
// responses.
func WithPartialTrace(on bool) Option {
	return func(s *Service) { s.partial = on }
}

func New(opts ...Option) *Service {
	s := &Service{
		log:      zap.NewNop(),
		settings: calc.DefaultSettings(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.scalarStep = s.settings.ScalarStep
	return s
}

func (s *Service) SolveEquation(ctx context.Context, req EquationRequest) EquationResponse {
	id := uuid.NewString()
	log := s.log.With(zap.String("request_id", id), zap.Int("eq_id", req.EqID), zap.Int("method_id", req.MethodID))

	eq, m, err := req.Validate()
	if err != nil {
		log.Warn("rejected request", zap.Error(err))
		return EquationResponse{Error: err.Error(), RequestID: id}
	}
	if s.scalarStep > 0 {
		eq = eq.WithStep(s.scalarStep)
	}

	sv := solver.New(eq, m,
		solver.WithSettings(s.settings),
		solver.WithObserver(logging.NewStepObserver(log)),
	)
	res, err := sv.Solve(ctx, req.Interval[0], req.Interval[1], req.Estimate)
	if err != nil {
		log.Info("solve failed", zap.Stringer("method", m), zap.Error(err))
		return failure[solver.Result](id, err, s.partial)
	}

	log.Info("solved",
		zap.Stringer("method", m),
		zap.Float64("root", res.Root),
		zap.Int("iterations", res.Iterations),
		zap.Float64("error_value", res.ErrorValue),
	)
	return EquationResponse{Result: res, RequestID: id}
}

func (s *Service) SolveSystem(ctx context.Context, req SystemRequest) SystemResponse {
	id := uuid.NewString()
	log := s.log.With(zap.String("request_id", id), zap.Int("eq_id", req.EqID))

	sys, err := req.Validate()
	if err != nil {
		log.Warn("rejected request", zap.Error(err))
		return SystemResponse{Error: err.Error(), RequestID: id}
	}

	sv := system.New(sys, req.Interval[0], req.Interval[1], req.Estimate,
		system.WithSettings(s.settings),
		system.WithObserver(logging.NewStepObserver(log)),
	)
	res, err := sv.Solve(ctx)
	if err != nil {
		log.Info("solve failed", zap.Error(err))
		return failure[system.Result](id, err, s.partial)
	}

	log.Info("solved",
		zap.Float64("x", res.X),
		zap.Float64("y", res.Y),
		zap.Int("iterations", res.Iterations),
		zap.Float64("error_value", res.ErrorValue),
	)
	return SystemResponse{Result: res, RequestID: id}
}

// HandleEquation decodes a JSON request from r and solves it.
func (s *Service) HandleEquation(ctx context.Context, r io.Reader) EquationResponse {
	req, err := DecodeEquationRequest(r)
	if err != nil {
		return EquationResponse{Error: err.Error()}
	}
	return s.SolveEquation(ctx, req)
}

func (s *Service) HandleSystem(ctx context.Context, r io.Reader) SystemResponse {
	req, err := DecodeSystemRequest(r)
	if err != nil {
		return SystemResponse{Error: err.Error()}
	}
	return s.SolveSystem(ctx, req)
}

func failure[T any](id string, err error, partial bool) Response[T] {
	out := Response[T]{Error: err.Error(), RequestID: id}
	if partial {
		out.Steps = calc.PartialSteps(err)
	}
	return out
}

package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/san-kum/rootlab/internal/calc"
	"github.com/san-kum/rootlab/internal/equation"
	"github.com/san-kum/rootlab/internal/solver"
)

var (
	ErrEmptyRequest = errors.New("empty request")
	ErrParse        = errors.New("failed to parse request")
)

// EquationRequest selects a catalog equation, a method, and its inputs.
type EquationRequest struct {
	EqID     int       `json:"eq_id"`
	Interval []float64 `json:"interval"`
	Estimate float64   `json:"estimate"`
	MethodID int       `json:"method_id"`
}

// SystemRequest selects a catalog system; Interval holds the start point.
type SystemRequest struct {
	EqID     int       `json:"eq_id"`
	Interval []float64 `json:"interval"`
	Estimate float64   `json:"estimate"`
}

func DecodeEquationRequest(r io.Reader) (EquationRequest, error) {
	var req EquationRequest
	err := decode(r, &req)
	return req, err
}

func DecodeSystemRequest(r io.Reader) (SystemRequest, error) {
	var req SystemRequest
	err := decode(r, &req)
	return req, err
}

func decode(r io.Reader, v any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrParse, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmptyRequest
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrParse, err)
	}
	return nil
}

// Validate resolves the request against the catalogs.
func (r EquationRequest) Validate() (*equation.Scalar, solver.Method, error) {
	eq, err := equation.Lookup(r.EqID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid equation id %d: %w", r.EqID, err)
	}
	m, err := solver.MethodFromID(r.MethodID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid method id %d: %w", r.MethodID, err)
	}
	if len(r.Interval) != 2 {
		return nil, 0, fmt.Errorf("interval needs 2 values, got %d: %w", len(r.Interval), calc.ErrInvalidInterval)
	}
	if !(r.Estimate > 0) {
		return nil, 0, calc.ErrInvalidTolerance
	}
	return eq, m, nil
}

func (r SystemRequest) Validate() (*equation.System, error) {
	sys, err := equation.LookupSystem(r.EqID)
	if err != nil {
		return nil, fmt.Errorf("invalid system id %d: %w", r.EqID, err)
	}
	if len(r.Interval) != 2 {
		return nil, fmt.Errorf("start point needs 2 values, got %d: %w", len(r.Interval), calc.ErrInvalidInterval)
	}
	if !(r.Estimate > 0) {
		return nil, calc.ErrInvalidTolerance
	}
	return sys, nil
}

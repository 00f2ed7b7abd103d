// Package model loads the persisted churn pipeline and evaluates it.
//
// The artifact is a declarative export of a one-hot/standard-scaler/logistic
// pipeline. It is decoded once at boot and is read-only afterwards, so a
// single *Pipeline may be shared by every request goroutine.
package model

import (
	"context"
	"errors"
)

// DefaultEngine is reported when the artifact does not name its solver.
const DefaultEngine = "Convex-Optimization-SAGA"

var (
	ErrArtifactNotFound = errors.New("model artifact not found")
	ErrInvalidArtifact  = errors.New("invalid model artifact")
	ErrMissingColumns   = errors.New("missing columns")
	ErrTypeCoercion     = errors.New("type coercion failed")
	ErrEmptyFrame       = errors.New("empty frame")
)

// Row is one record of named feature values.
type Row = map[string]any

// Frame is an ordered set of rows scored together.
type Frame []Row

// Classifier returns class probabilities for every row of a frame.
// Each result row is [P(class 0), P(class 1)].
type Classifier interface {
	PredictProba(ctx context.Context, frame Frame) ([][]float64, error)
	Engine() string
}

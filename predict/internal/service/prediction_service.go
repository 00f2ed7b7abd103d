package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/arijbelmabrouk/Convex-Churn-Optimization/predict/internal/metrics"
	"github.com/arijbelmabrouk/Convex-Churn-Optimization/predict/internal/model"
	"github.com/arijbelmabrouk/Convex-Churn-Optimization/predict/internal/models"
)

// Threshold is the positive-class cutoff; a probability must exceed it.
const Threshold = 0.5

// ErrMalformedOutput is returned when the classifier's result does not have
// one row of two class probabilities.
var ErrMalformedOutput = errors.New("malformed classifier output")

type namedModel interface {
	ModelName() string
}

// PredictionService scores single feature records against the loaded model.
type PredictionService struct {
	classifier model.Classifier
}

// NewPredictionService wraps a loaded classifier.
func NewPredictionService(classifier model.Classifier) *PredictionService {
	return &PredictionService{classifier: classifier}
}

// Engine returns the engine name reported with predictions.
func (s *PredictionService) Engine() string {
	return s.classifier.Engine()
}

// ModelName returns the artifact name, if the classifier carries one.
func (s *PredictionService) ModelName() string {
	if n, ok := s.classifier.(namedModel); ok {
		return n.ModelName()
	}
	return ""
}

// Predict builds a one-row frame from record and returns the labeled,
// rounded positive-class probability. Errors are returned unwrapped so
// their text can be reported to the caller verbatim.
func (s *PredictionService) Predict(ctx context.Context, record map[string]interface{}) (*models.Prediction, error) {
	start := time.Now()
	proba, err := s.classifier.PredictProba(ctx, model.Frame{record})
	metrics.InferenceDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ErrorsTotal.WithLabelValues(ErrorKind(err)).Inc()
		return nil, err
	}
	if len(proba) != 1 || len(proba[0]) < 2 {
		err := fmt.Errorf("%w: got %d rows", ErrMalformedOutput, len(proba))
		metrics.ErrorsTotal.WithLabelValues(ErrorKind(err)).Inc()
		return nil, err
	}

	p := proba[0][1]
	label := 0
	if p > Threshold {
		label = 1
	}

	metrics.PredictionsTotal.WithLabelValues(strconv.Itoa(label)).Inc()
	metrics.Probability.Observe(p)

	return &models.Prediction{
		ChurnPrediction: label,
		Probability:     Round4(p),
		Engine:          s.classifier.Engine(),
	}, nil
}

// Round4 rounds half away from zero to four decimal places.
func Round4(p float64) float64 {
	return math.Round(p*1e4) / 1e4
}

// ErrorKind maps an inference error to a low-cardinality label.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, model.ErrMissingColumns):
		return "missing_columns"
	case errors.Is(err, model.ErrTypeCoercion):
		return "type_coercion"
	case errors.Is(err, model.ErrEmptyFrame):
		return "empty_frame"
	case errors.Is(err, ErrMalformedOutput):
		return "malformed_output"
	default:
		return "inference"
	}
}

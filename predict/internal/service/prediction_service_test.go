package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/arijbelmabrouk/Convex-Churn-Optimization/predict/internal/model"
)

// Mock implementations

type mockClassifier struct {
	predictFunc func(ctx context.Context, frame model.Frame) ([][]float64, error)
	engine      string
	lastFrame   model.Frame
}

func (m *mockClassifier) PredictProba(ctx context.Context, frame model.Frame) ([][]float64, error) {
	m.lastFrame = frame
	if m.predictFunc != nil {
		return m.predictFunc(ctx, frame)
	}
	return [][]float64{{0.5, 0.5}}, nil
}

func (m *mockClassifier) Engine() string {
	if m.engine == "" {
		return model.DefaultEngine
	}
	return m.engine
}

func fixedProbability(p float64) *mockClassifier {
	return &mockClassifier{
		predictFunc: func(ctx context.Context, frame model.Frame) ([][]float64, error) {
			return [][]float64{{1 - p, p}}, nil
		},
	}
}

func TestPredict_Threshold(t *testing.T) {
	tests := []struct {
		name      string
		p         float64
		wantLabel int
		wantProb  float64
	}{
		{"clearly positive", 0.8123456, 1, 0.8123},
		{"clearly negative", 0.1234567, 0, 0.1235},
		{"exactly half is negative", 0.5, 0, 0.5},
		{"just above half", 0.50001, 1, 0.5},
		{"rounds up to half but stays positive", 0.500049, 1, 0.5},
		{"certain", 1.0, 1, 1.0},
		{"impossible", 0.0, 0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewPredictionService(fixedProbability(tt.p))

			pred, err := svc.Predict(context.Background(), map[string]interface{}{"Contract": "One year"})
			if err != nil {
				t.Fatalf("Predict() error = %v", err)
			}
			if pred.ChurnPrediction != tt.wantLabel {
				t.Errorf("ChurnPrediction = %d, want %d", pred.ChurnPrediction, tt.wantLabel)
			}
			if pred.Probability != tt.wantProb {
				t.Errorf("Probability = %v, want %v", pred.Probability, tt.wantProb)
			}
			if pred.Engine != model.DefaultEngine {
				t.Errorf("Engine = %q, want %q", pred.Engine, model.DefaultEngine)
			}
		})
	}
}

func TestPredict_PassesRecordAsSingleRow(t *testing.T) {
	mock := &mockClassifier{}
	svc := NewPredictionService(mock)

	record := map[string]interface{}{"Gender": "Female", "Tenure in Months": 3}
	if _, err := svc.Predict(context.Background(), record); err != nil {
		t.Fatalf("Predict() error = %v", err)
	}

	if len(mock.lastFrame) != 1 {
		t.Fatalf("frame rows = %d, want 1", len(mock.lastFrame))
	}
	if mock.lastFrame[0]["Gender"] != "Female" {
		t.Errorf("row Gender = %v, want Female", mock.lastFrame[0]["Gender"])
	}
}

func TestPredict_ErrorsReturnedVerbatim(t *testing.T) {
	inferenceErr := errors.New("column transformer exploded")
	svc := NewPredictionService(&mockClassifier{
		predictFunc: func(ctx context.Context, frame model.Frame) ([][]float64, error) {
			return nil, inferenceErr
		},
	})

	pred, err := svc.Predict(context.Background(), map[string]interface{}{})
	if pred != nil {
		t.Errorf("Predict() = %+v, want nil", pred)
	}
	if err != inferenceErr {
		t.Errorf("Predict() error = %v, want %v", err, inferenceErr)
	}
}

func TestPredict_MalformedOutput(t *testing.T) {
	svc := NewPredictionService(&mockClassifier{
		predictFunc: func(ctx context.Context, frame model.Frame) ([][]float64, error) {
			return [][]float64{{1.0}}, nil
		},
	})

	_, err := svc.Predict(context.Background(), map[string]interface{}{})
	if !errors.Is(err, ErrMalformedOutput) {
		t.Errorf("Predict() error = %v, want ErrMalformedOutput", err)
	}
}

func TestPredict_WithPipeline(t *testing.T) {
	pipeline, err := model.Load("../../models/churn_pipeline.json")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	svc := NewPredictionService(pipeline)

	if svc.ModelName() != "churn_pipeline" {
		t.Errorf("ModelName() = %q, want churn_pipeline", svc.ModelName())
	}

	_, err = svc.Predict(context.Background(), map[string]interface{}{"Gender": "Male"})
	if !errors.Is(err, model.ErrMissingColumns) {
		t.Fatalf("Predict() error = %v, want ErrMissingColumns", err)
	}

	faker := gofakeit.New(7)
	for i := 0; i < 200; i++ {
		record := map[string]interface{}{
			"Gender":           faker.RandomString([]string{"Male", "Female"}),
			"Senior Citizen":   faker.RandomString([]string{"Yes", "No"}),
			"Tenure in Months": faker.IntRange(0, 72),
			"Contract":         faker.RandomString([]string{"Month-to-month", "One year", "Two year"}),
			"Payment Method":   faker.RandomString([]string{"Electronic check", "Mailed check", "Bank transfer", "Credit card"}),
			"Monthly Charge":   faker.Float64Range(18, 120),
		}

		pred, err := svc.Predict(context.Background(), record)
		if err != nil {
			t.Fatalf("Predict(%v) error = %v", record, err)
		}
		if pred.Probability < 0 || pred.Probability > 1 {
			t.Errorf("Probability = %v, out of range", pred.Probability)
		}
		if math.Abs(pred.Probability*1e4-math.Round(pred.Probability*1e4)) > 1e-6 {
			t.Errorf("Probability = %v has more than 4 decimals", pred.Probability)
		}
		if pred.ChurnPrediction == 1 && pred.Probability < 0.5 {
			t.Errorf("label 1 with probability %v", pred.Probability)
		}
		if pred.ChurnPrediction == 0 && pred.Probability > 0.5 {
			t.Errorf("label 0 with probability %v", pred.Probability)
		}
	}
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{model.ErrMissingColumns, "missing_columns"},
		{&model.CoercionError{Column: "x"}, "type_coercion"},
		{model.ErrEmptyFrame, "empty_frame"},
		{ErrMalformedOutput, "malformed_output"},
		{errors.New("other"), "inference"},
	}

	for _, tt := range tests {
		if got := ErrorKind(tt.err); got != tt.want {
			t.Errorf("ErrorKind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

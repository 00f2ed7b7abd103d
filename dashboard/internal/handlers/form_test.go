package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arijbelmabrouk/Convex-Churn-Optimization/common/churn"
)

type mockPredictor struct {
	prediction *churn.Prediction
	err        error
	records    []churn.FeatureRecord
}

func (m *mockPredictor) Predict(ctx context.Context, record churn.FeatureRecord) (*churn.Prediction, error) {
	m.records = append(m.records, record)
	return m.prediction, m.err
}

func postAnalyze(h *FormHandler, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h.Analyze(rr, req)
	return rr
}

func fullForm() url.Values {
	return url.Values{
		"gender":         {"Female"},
		"senior_citizen": {"No"},
		"tenure":         {"3"},
		"contract":       {"Month-to-month"},
		"payment_method": {"Electronic check"},
		"monthly_charge": {"89.90"},
	}
}

func TestIndex_RendersDefaults(t *testing.T) {
	h := NewFormHandler(&mockPredictor{}, nil)

	rr := httptest.NewRecorder()
	h.Index(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))

	body := rr.Body.String()
	assert.Contains(t, body, "Churn Optimization Engine")
	assert.Contains(t, body, `<option value="Male" selected>Male</option>`)
	assert.Contains(t, body, `<option value="Month-to-month" selected>Month-to-month</option>`)
	assert.Contains(t, body, `min="0" max="72" value="12"`)
	assert.Contains(t, body, `value="50.00"`)
	assert.NotContains(t, body, `class="result`)
	assert.NotContains(t, body, `class="error"`)
}

func TestIndex_UnknownPath(t *testing.T) {
	h := NewFormHandler(&mockPredictor{}, nil)

	rr := httptest.NewRecorder()
	h.Index(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAnalyze_Tiers(t *testing.T) {
	tests := []struct {
		name        string
		probability float64
		wantClass   string
		wantHead    string
		advisory    bool
	}{
		{"high", 0.75, "tier-high", "High Risk: 75.0%", true},
		{"elevated", 0.55, "tier-elevated", "Elevated Risk: 55.0%", false},
		{"elevated upper bound", 0.70, "tier-elevated", "Elevated Risk: 70.0%", false},
		{"low", 0.10, "tier-low", "Low Risk: 10.0%", false},
		{"low upper bound", 0.40, "tier-low", "Low Risk: 40.0%", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			predictor := &mockPredictor{prediction: &churn.Prediction{
				Probability: tt.probability,
				Engine:      "Convex-Optimization-SAGA",
			}}
			h := NewFormHandler(predictor, nil)

			rr := postAnalyze(h, fullForm())

			require.Equal(t, http.StatusOK, rr.Code)
			body := rr.Body.String()
			assert.Contains(t, body, tt.wantClass)
			assert.Contains(t, body, tt.wantHead)
			if tt.advisory {
				assert.Contains(t, body, churn.HighRiskAdvisory)
			} else {
				assert.NotContains(t, body, churn.HighRiskAdvisory)
			}
		})
	}
}

func TestAnalyze_SendsMappedRecordAndKeepsInputs(t *testing.T) {
	predictor := &mockPredictor{prediction: &churn.Prediction{Probability: 0.2}}
	h := NewFormHandler(predictor, nil)

	rr := postAnalyze(h, fullForm())

	require.Len(t, predictor.records, 1)
	rec := predictor.records[0]
	assert.Equal(t, "Female", rec[churn.KeyGender])
	assert.Equal(t, "No", rec[churn.KeySeniorCitizen])
	assert.Equal(t, 3, rec[churn.KeyTenure])
	assert.Equal(t, "Month-to-month", rec[churn.KeyContract])
	assert.Equal(t, "Electronic check", rec[churn.KeyPaymentMethod])
	assert.Equal(t, 89.9, rec[churn.KeyMonthlyCharge])

	body := rr.Body.String()
	assert.Contains(t, body, `<option value="Female" selected>Female</option>`)
	assert.Contains(t, body, `value="89.90"`)
}

func TestAnalyze_ServiceErrorShowsMessageOnly(t *testing.T) {
	predictor := &mockPredictor{err: errors.New("dial tcp 127.0.0.1:8000: connect: connection refused")}
	h := NewFormHandler(predictor, nil)

	rr := postAnalyze(h, fullForm())

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "API Connection Error: dial tcp 127.0.0.1:8000: connect: connection refused")
	assert.NotContains(t, body, `class="result`)
}

func TestAnalyze_InvalidInputSkipsService(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		value   string
		wantMsg string
	}{
		{"unknown contract", "contract", "Weekly", "contract must be one of"},
		{"tenure out of range", "tenure", "99", "tenure must be between 0 and 72"},
		{"tenure not a number", "tenure", "abc", "tenure must be a whole number"},
		{"charge not a number", "monthly_charge", "fifty", "monthly charge must be a number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			predictor := &mockPredictor{}
			h := NewFormHandler(predictor, nil)

			values := fullForm()
			values.Set(tt.field, tt.value)
			rr := postAnalyze(h, values)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.wantMsg)
			assert.Empty(t, predictor.records)
		})
	}
}

func TestAnalyze_AgainstRealClient(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"churn_prediction":1,"probability":0.8123,"engine":"Convex-Optimization-SAGA"}`)
	}))
	defer api.Close()

	h := NewFormHandler(churn.NewClient(api.URL, 0), nil)
	rr := postAnalyze(h, fullForm())

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "High Risk: 81.2%")
}

func TestStatic(t *testing.T) {
	data, err := io.ReadAll(mustOpen(t, "style.css"))
	require.NoError(t, err)
	assert.Contains(t, string(data), ".tier-high")
}

func mustOpen(t *testing.T, name string) io.Reader {
	t.Helper()
	f, err := Static().Open(name)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

package models

// PredictRequest is the body accepted by POST /predict.
type PredictRequest struct {
	Data map[string]interface{} `json:"data"`
}

// Prediction is the response body of POST /predict.
type Prediction struct {
	ChurnPrediction int     `json:"churn_prediction"`
	Probability     float64 `json:"probability"`
	Engine          string  `json:"engine"`
}

// HealthResponse is returned by /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// ReadyResponse is returned by /readyz once the model is loaded.
type ReadyResponse struct {
	Status string `json:"status"`
	Engine string `json:"engine"`
	Model  string `json:"model"`
}

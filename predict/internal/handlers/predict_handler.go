package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/arijbelmabrouk/Convex-Churn-Optimization/common/httputil"
	"github.com/arijbelmabrouk/Convex-Churn-Optimization/common/logging"
	"github.com/arijbelmabrouk/Convex-Churn-Optimization/predict/internal/metrics"
	"github.com/arijbelmabrouk/Convex-Churn-Optimization/predict/internal/models"
	"github.com/arijbelmabrouk/Convex-Churn-Optimization/predict/internal/ratelimit"
	"github.com/arijbelmabrouk/Convex-Churn-Optimization/predict/internal/service"
)

// DefaultMaxBodyBytes caps a /predict body when none is configured.
const DefaultMaxBodyBytes = 1 << 20

// Predictor is the inference operation the handler delegates to.
type Predictor interface {
	Predict(ctx context.Context, record map[string]interface{}) (*models.Prediction, error)
	Engine() string
	ModelName() string
}

type PredictHandler struct {
	service      Predictor
	rateLimiter  ratelimit.RateLimiter
	maxBodyBytes int64
	logger       *logging.Logger
}

// NewPredictHandler wires the handler. A nil limiter disables rate limiting
// and a non-positive maxBodyBytes selects DefaultMaxBodyBytes.
func NewPredictHandler(svc Predictor, limiter ratelimit.RateLimiter, maxBodyBytes int64, logger *logging.Logger) *PredictHandler {
	if limiter == nil {
		limiter = &ratelimit.NoOpRateLimiter{}
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &PredictHandler{
		service:      svc,
		rateLimiter:  limiter,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
}

// Predict handles POST /predict.
func (h *PredictHandler) Predict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		h.respondDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	ctx := r.Context()
	clientIP := httputil.GetClientIP(r)

	allowed, err := h.rateLimiter.Allow(ctx, clientIP)
	if err != nil {
		// Limiter failures must not block inference.
		h.logger.WarnContext(ctx, "rate limit check failed", logging.IP(clientIP), logging.Error(err))
	} else if !allowed {
		h.respondDetail(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	var req models.PredictRequest
	if err := httputil.DecodeJSON(r, h.maxBodyBytes, &req); err != nil {
		if errors.Is(err, httputil.ErrBodyTooLarge) {
			h.respondDetail(w, http.StatusRequestEntityTooLarge, err.Error())
			return
		}
		h.respondDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if req.Data == nil {
		h.respondDetail(w, http.StatusUnprocessableEntity, "field required: data")
		return
	}

	prediction, err := h.service.Predict(ctx, req.Data)
	if err != nil {
		h.logger.ErrorContext(ctx, "prediction failed",
			logging.IP(clientIP),
			slog.String("kind", service.ErrorKind(err)),
			logging.Error(err),
		)
		h.respondDetail(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.logger.DebugContext(ctx, "prediction served",
		logging.Label(prediction.ChurnPrediction),
		logging.Probability(prediction.Probability),
	)
	metrics.RequestsTotal.WithLabelValues(strconv.Itoa(http.StatusOK)).Inc()
	httputil.WriteJSON(w, http.StatusOK, prediction)
}

// Health handles GET /healthz.
func (h *PredictHandler) Health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, models.HealthResponse{Status: "healthy"})
}

// Ready handles GET /readyz. The handler only exists once the model has
// loaded, so it always reports ready.
func (h *PredictHandler) Ready(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, models.ReadyResponse{
		Status: "ready",
		Engine: h.service.Engine(),
		Model:  h.service.ModelName(),
	})
}

func (h *PredictHandler) respondDetail(w http.ResponseWriter, status int, detail string) {
	metrics.RequestsTotal.WithLabelValues(strconv.Itoa(status)).Inc()
	httputil.WriteDetail(w, status, detail)
}

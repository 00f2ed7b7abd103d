package handlers

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"strings"

	"github.com/arijbelmabrouk/Convex-Churn-Optimization/common/churn"
	"github.com/arijbelmabrouk/Convex-Churn-Optimization/common/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the embedded stylesheet tree rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Predictor is the inference call made when the form is submitted.
type Predictor interface {
	Predict(ctx context.Context, record churn.FeatureRecord) (*churn.Prediction, error)
}

type pageData struct {
	Form                 churn.Form
	GenderOptions        []string
	SeniorCitizenOptions []string
	ContractOptions      []string
	PaymentMethodOptions []string
	MinTenure            int
	MaxTenure            int
	Result               *churn.Assessment
	Error                string
}

type FormHandler struct {
	client Predictor
	tmpl   *template.Template
	logger *logging.Logger
}

func NewFormHandler(client Predictor, logger *logging.Logger) *FormHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &FormHandler{
		client: client,
		tmpl:   template.Must(template.ParseFS(templateFS, "templates/index.html")),
		logger: logger,
	}
}

// Index handles GET /: the form with every control at its default.
func (h *FormHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	h.render(w, http.StatusOK, newPage(churn.DefaultForm()))
}

// Analyze handles POST /analyze: validate, call the service once and show
// the tiered result, or the error with no result.
func (h *FormHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	form, err := parseForm(r)
	if err == nil {
		err = form.Validate()
	}
	if err != nil {
		page := newPage(form)
		page.Error = err.Error()
		h.render(w, http.StatusBadRequest, page)
		return
	}

	prediction, err := h.client.Predict(r.Context(), form.Record())
	if err != nil {
		h.logger.WarnContext(r.Context(), "prediction request failed", logging.Error(err))
		page := newPage(form)
		page.Error = churn.ConnectionError(err)
		h.render(w, http.StatusBadGateway, page)
		return
	}

	assessment := churn.Assess(prediction)
	h.logger.InfoContext(r.Context(), "prediction displayed",
		logging.Probability(prediction.Probability),
		logging.Label(prediction.ChurnPrediction),
	)

	page := newPage(form)
	page.Result = &assessment
	h.render(w, http.StatusOK, page)
}

func (h *FormHandler) render(w http.ResponseWriter, status int, page pageData) {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, "index.html", page); err != nil {
		h.logger.Error("failed to render page", logging.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func newPage(form churn.Form) pageData {
	return pageData{
		Form:                 form,
		GenderOptions:        churn.GenderOptions,
		SeniorCitizenOptions: churn.SeniorCitizenOptions,
		ContractOptions:      churn.ContractOptions,
		PaymentMethodOptions: churn.PaymentMethodOptions,
		MinTenure:            churn.MinTenure,
		MaxTenure:            churn.MaxTenure,
	}
}

// parseForm reads the posted controls. Absent fields keep their defaults so
// the re-rendered form stays usable; malformed numbers are reported.
func parseForm(r *http.Request) (churn.Form, error) {
	form := churn.DefaultForm()
	if err := r.ParseForm(); err != nil {
		return form, fmt.Errorf("invalid form submission: %w", err)
	}

	if v, ok := formValue(r, "gender"); ok {
		form.Gender = v
	}
	if v, ok := formValue(r, "senior_citizen"); ok {
		form.SeniorCitizen = v
	}
	if v, ok := formValue(r, "contract"); ok {
		form.Contract = v
	}
	if v, ok := formValue(r, "payment_method"); ok {
		form.PaymentMethod = v
	}
	if v, ok := formValue(r, "tenure"); ok {
		tenure, err := strconv.Atoi(v)
		if err != nil {
			return form, fmt.Errorf("invalid input: tenure must be a whole number of months, got %q", v)
		}
		form.Tenure = tenure
	}
	if v, ok := formValue(r, "monthly_charge"); ok {
		charge, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return form, fmt.Errorf("invalid input: monthly charge must be a number, got %q", v)
		}
		form.MonthlyCharge = charge
	}
	return form, nil
}

func formValue(r *http.Request, key string) (string, bool) {
	if _, ok := r.PostForm[key]; !ok {
		return "", false
	}
	return strings.TrimSpace(r.PostForm.Get(key)), true
}

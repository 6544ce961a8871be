package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"genie/synthdata-api/internal/anomaly"
	"genie/synthdata-api/internal/domain"
	"genie/synthdata-api/internal/generator"
	"genie/synthdata-api/internal/metrics"
)

// Handler holds the dependencies shared across all HTTP handlers.
type Handler struct {
	validate *validator.Validate
}

// NewHandler creates a Handler with a configured request validator.
func NewHandler() *Handler {
	return &Handler{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// ─── POST /api/v1/generate ────────────────────────────────────────────────────

// GenerateRequest is the batch generation payload. Fields absent from the
// body keep the defaults from defaultGenerateRequest.
type GenerateRequest struct {
	NumRecords  int     `json:"num_records" validate:"gte=100,lte=100000"`
	StartDate   string  `json:"start_date" validate:"datetime=2006-01-02"`
	EndDate     string  `json:"end_date" validate:"datetime=2006-01-02"`
	AnomalyRate float64 `json:"anomaly_rate" validate:"gte=0,lte=20"`
	Region      string  `json:"region"`
	Seed        int64   `json:"seed"`
}

// GenerateResponse carries the full batch plus its quality report.
type GenerateResponse struct {
	DatasetID        string               `json:"dataset_id"`
	Transactions     []domain.Transaction `json:"transactions"`
	Metrics          metrics.Report       `json:"metrics"`
	GenerationTimeMS int64                `json:"generation_time_ms"`
	Request          GenerateRequest      `json:"request"`
}

// defaultGenerateRequest seeds the documented defaults; decoding the request
// body over it lets an explicit zero (e.g. anomaly_rate: 0) survive instead
// of being mistaken for "field absent".
func defaultGenerateRequest() GenerateRequest {
	return GenerateRequest{
		NumRecords:  10000,
		StartDate:   "2024-01-01",
		EndDate:     "2024-12-31",
		AnomalyRate: 5.0,
		Region:      domain.RegionMajorCities,
	}
}

// Generate produces a synthetic transaction batch with injected anomalies and
// returns it synchronously with quality metrics.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	req := defaultGenerateRequest()
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		generateRequests.WithLabelValues("invalid").Inc()
		badRequest(w, "INVALID_JSON", "request body must be valid JSON")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		generateRequests.WithLabelValues("invalid").Inc()
		badRequest(w, "VALIDATION_ERROR", validationMessage(err))
		return
	}

	began := time.Now()

	// A fresh engine per request keeps identical seeds reproducible
	// regardless of what earlier requests generated.
	eng := generator.New(req.Seed, req.Region)
	batch, err := eng.GenerateBatch(generator.BatchOptions{
		NumRecords: req.NumRecords,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	})
	if err != nil {
		if errors.Is(err, generator.ErrInvalidInput) {
			generateRequests.WithLabelValues("invalid").Inc()
			badRequest(w, "VALIDATION_ERROR", err.Error())
			return
		}
		slog.Error("batch generation failed", "error", err)
		generateRequests.WithLabelValues("error").Inc()
		internalError(w)
		return
	}

	inj := anomaly.New(req.Seed)
	batch = inj.Inject(batch, req.AnomalyRate)

	report := metrics.Calculate(batch)
	elapsed := time.Since(began)

	generateRequests.WithLabelValues("ok").Inc()
	recordsGenerated.Add(float64(len(batch)))
	for name, count := range report.AnomalyBreakdown.ByType {
		anomaliesInjected.WithLabelValues(name).Add(float64(count))
	}
	generateDuration.Observe(elapsed.Seconds())

	slog.Info("batch generated",
		"dataset_records", len(batch),
		"anomalies", report.AnomalyBreakdown.TotalAnomalies,
		"seed", req.Seed,
		"duration_ms", elapsed.Milliseconds(),
	)

	ok(w, GenerateResponse{
		DatasetID:        uuid.NewString(),
		Transactions:     batch,
		Metrics:          report,
		GenerationTimeMS: elapsed.Milliseconds(),
		Request:          req,
	})
}

// ─── GET /api/v1/anomaly-types ────────────────────────────────────────────────

// anomalyTypeInfo describes one injectable archetype for API discovery.
type anomalyTypeInfo struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	RiskScoreMin float64 `json:"risk_score_min"`
	RiskScoreMax float64 `json:"risk_score_max"`
}

var anomalyCatalogue = []anomalyTypeInfo{
	{domain.AnomalyGeographic, "customer and merchant placed in distant cities (2000-4500 km apart)", 0.75, 0.95},
	{domain.AnomalyVelocity, "burst of rapid same-customer purchases in velocity-prone categories", 0.70, 0.90},
	{domain.AnomalyAmount, "amount inflated to 10-50x the customer's own average spend", 0.65, 0.85},
	{domain.AnomalyCategory, "purchase in a category unusual for the customer (gambling, crypto, wires)", 0.60, 0.80},
	{domain.AnomalyTemporal, "transaction moved into the 01:00-05:00 dead-of-night window", 0.55, 0.75},
	{domain.AnomalyMerchantRisk, "merchant replaced by a known high-risk brand with matching MCC", 0.80, 0.98},
}

// AnomalyTypes lists the six injectable archetypes and their risk bands.
func (h *Handler) AnomalyTypes(w http.ResponseWriter, r *http.Request) {
	ok(w, map[string]any{"anomaly_types": anomalyCatalogue})
}

// ─── Validation ───────────────────────────────────────────────────────────────

// validationMessage flattens the first validator error into a client-friendly
// string instead of leaking the struct-tag syntax.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	switch fe.Field() {
	case "NumRecords":
		return "num_records must be between 100 and 100000"
	case "StartDate", "EndDate":
		return fmt.Sprintf("%s must be a YYYY-MM-DD date", jsonName(fe.Field()))
	case "AnomalyRate":
		return "anomaly_rate must be between 0 and 20"
	}
	return fmt.Sprintf("%s failed validation (%s)", jsonName(fe.Field()), fe.Tag())
}

func jsonName(field string) string {
	switch field {
	case "NumRecords":
		return "num_records"
	case "StartDate":
		return "start_date"
	case "EndDate":
		return "end_date"
	case "AnomalyRate":
		return "anomaly_rate"
	}
	return field
}

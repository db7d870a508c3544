// Package metrics exposes Prometheus instrumentation for decisions and the HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/GlebRadaev/cardguard/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cardguard"

var (
	// RiskAssessmentsTotal counts assessments by level and outcome (scored/degraded).
	RiskAssessmentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "risk_assessments_total",
			Help:      "Risk assessments by level and outcome.",
		},
		[]string{"level", "outcome"},
	)

	RiskScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "risk_score",
			Help:      "Distribution of scored (non-degraded) risk assessments.",
			Buckets:   []float64{0, 10, 25, 50, 75, 90, 100},
		},
	)

	// LimitDecisionsTotal counts limit checks by operation, outcome and denial code.
	LimitDecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "limit_decisions_total",
			Help:      "Spending limit decisions by operation, outcome and code.",
		},
		[]string{"operation", "outcome", "code"},
	)

	EvaluationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "evaluation_duration_seconds",
			Help:      "Time spent gathering signals and deciding, by component.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"component"},
	)

	IssuanceTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "issuance_total",
			Help:      "Card issuance and reload requests by result.",
		},
		[]string{"operation", "result"},
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, route pattern and status code.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

func init() {
	prometheus.MustRegister(
		RiskAssessmentsTotal,
		RiskScore,
		LimitDecisionsTotal,
		EvaluationDuration,
		IssuanceTotal,
		HTTPRequestsTotal,
		HTTPRequestDuration,
	)
}

func ObserveRisk(a *domain.RiskAssessment, took time.Duration) {
	RiskAssessmentsTotal.WithLabelValues(string(a.Level), string(a.Outcome)).Inc()
	if a.Outcome == domain.RiskOutcomeScored {
		RiskScore.Observe(float64(a.Score))
	}
	EvaluationDuration.WithLabelValues("risk").Observe(took.Seconds())
}

func ObserveLimit(operation string, d *domain.LimitDecision, took time.Duration) {
	code := string(d.Code)
	if code == "" {
		code = "none"
	}
	LimitDecisionsTotal.WithLabelValues(operation, string(d.Outcome), code).Inc()
	EvaluationDuration.WithLabelValues("limits").Observe(took.Seconds())
}

func ObserveIssuance(operation, result string) {
	IssuanceTotal.WithLabelValues(operation, result).Inc()
}

// Middleware records request count and latency labelled by chi route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		path := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			path = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		HTTPRequestsTotal.WithLabelValues(r.Method, path, statusBucket(status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}

func statusBucket(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	case code >= 200:
		return "2xx"
	default:
		return strconv.Itoa(code/100) + "xx"
	}
}

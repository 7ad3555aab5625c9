package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	QASubmissionsTotal        metric.Int64Counter
	RecommendationsTotal      metric.Int64Counter
	GenerationDurationSeconds metric.Float64Histogram
	GenerationErrorsTotal     metric.Int64Counter
	ImageResolveAttemptsTotal metric.Int64Counter
	ImagePlaceholdersTotal    metric.Int64Counter
	DbQueryDurationSeconds    metric.Float64Histogram
	DbQueryErrorsTotal        metric.Int64Counter
	HeartbeatFailuresTotal    metric.Int64Counter
	SignupsTotal              metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics creates the instruments from the global MeterProvider. It runs
// once; instruments created before the provider is installed are forwarded to
// it by otel's global delegate.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("TravelQA")
		m := &AppMetrics{}

		m.QASubmissionsTotal = counter(meter, "qa_submissions_total", "Questionnaire submissions by outcome", "{submission}")
		m.RecommendationsTotal = counter(meter, "recommendations_persisted_total", "Recommended places written to qa_results", "{place}")
		m.GenerationDurationSeconds = histogram(meter, "recommendation_generation_duration_seconds", "Duration of the text-generation call")
		m.GenerationErrorsTotal = counter(meter, "recommendation_generation_errors_total", "Failed recommendation generations", "{error}")
		m.ImageResolveAttemptsTotal = counter(meter, "image_resolve_attempts_total", "Image resolution attempts including dedup retries", "{attempt}")
		m.ImagePlaceholdersTotal = counter(meter, "image_placeholders_total", "Places that fell back to the placeholder image", "{place}")
		m.DbQueryDurationSeconds = histogram(meter, "db_query_duration_seconds", "Duration of database queries in seconds")
		m.DbQueryErrorsTotal = counter(meter, "db_query_errors_total", "Total number of database query errors", "{error}")
		m.HeartbeatFailuresTotal = counter(meter, "db_heartbeat_failures_total", "Failed database heartbeat pings", "{failure}")
		m.SignupsTotal = counter(meter, "signups_total", "Accounts created", "{account}")

		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the instruments, initialising them on first use.
func Get() *AppMetrics {
	InitAppMetrics()
	return appMetrics
}

func counter(meter metric.Meter, name, desc, unit string) metric.Int64Counter {
	c, err := meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit(unit))
	if err != nil {
		log.Fatalf("Metrics: Failed to create %s: %v", name, err)
	}
	return c
}

func histogram(meter metric.Meter, name, desc string) metric.Float64Histogram {
	h, err := meter.Float64Histogram(name, metric.WithDescription(desc), metric.WithUnit("s"))
	if err != nil {
		log.Fatalf("Metrics: Failed to create %s: %v", name, err)
	}
	return h
}

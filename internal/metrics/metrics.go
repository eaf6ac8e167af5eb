package metrics

import "github.com/prometheus/client_golang/prometheus"

type Counter interface {
	Inc(labels ...string)
	Add(value float64, labels ...string)
}

type Counters struct {
	UploadsProcessed Counter
	LinesParsed      Counter

	GrpcRequests Counter
}

type PrometheusCounter struct {
	counter *prometheus.CounterVec
}

func newCounterVec(name, help string, labels []string) *PrometheusCounter {
	return &PrometheusCounter{
		counter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: name,
			Help: help,
		}, labels),
	}
}

func NewPrometheusCounter(name, help string, labels []string) *PrometheusCounter {
	c := newCounterVec(name, help, labels)
	prometheus.MustRegister(c.counter)
	return c
}

func (p *PrometheusCounter) Inc(labels ...string) {
	p.counter.WithLabelValues(labels...).Inc()
}

func (p *PrometheusCounter) Add(value float64, labels ...string) {
	p.counter.WithLabelValues(labels...).Add(value)
}

// Collector exposes the underlying vector, mostly for tests.
func (p *PrometheusCounter) Collector() *prometheus.CounterVec {
	return p.counter
}

func New() *Counters {
	return &Counters{
		UploadsProcessed: NewPrometheusCounter(
			"uploads_processed_total",
			"Number of uploaded log files by processing status",
			[]string{"status"},
		),
		LinesParsed: NewPrometheusCounter(
			"log_lines_parsed_total",
			"Number of parsed non-blank log lines by level",
			[]string{"level"},
		),
		GrpcRequests: NewPrometheusCounter(
			"grpc_requests_total",
			"Number of gRPC requests",
			[]string{"method", "status"},
		),
	}
}

// NewTestCounters registers on a private registry so tests can build
// counters more than once per process.
func NewTestCounters() *Counters {
	reg := prometheus.NewRegistry()

	uploads := newCounterVec("uploads_processed_total", "Number of uploaded log files by processing status", []string{"status"})
	lines := newCounterVec("log_lines_parsed_total", "Number of parsed non-blank log lines by level", []string{"level"})
	grpcRequests := newCounterVec("grpc_requests_total", "Number of gRPC requests", []string{"method", "status"})

	reg.MustRegister(uploads.counter, lines.counter, grpcRequests.counter)

	return &Counters{
		UploadsProcessed: uploads,
		LinesParsed:      lines,
		GrpcRequests:     grpcRequests,
	}
}

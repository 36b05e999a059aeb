package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	decodedPackets = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bitsctl",
			Subsystem: "decode",
			Name:      "packets_total",
			Help:      "Packets decoded, by literal or operator kind.",
		},
		[]string{"type"},
	)
	decodeErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bitsctl",
			Subsystem: "decode",
			Name:      "errors_total",
			Help:      "Failed decodes and evaluations, by reason.",
		},
		[]string{"reason"},
	)
	decodeBits = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "bitsctl",
			Subsystem: "decode",
			Name:      "bits",
			Help:      "Bits consumed by one top-level packet.",
			Buckets:   prometheus.ExponentialBuckets(16, 2, 12),
		},
	)
	solveDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bitsctl",
			Subsystem: "solve",
			Name:      "duration_seconds",
			Help:      "Solver run duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"solver", "success"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(decodedPackets, decodeErrors, decodeBits, solveDuration)
	})
}

func RecordPacket(packetType string) {
	RegisterMetrics()
	decodedPackets.WithLabelValues(packetType).Inc()
}

func RecordDecodeBits(consumed int) {
	RegisterMetrics()
	decodeBits.Observe(float64(consumed))
}

func RecordError(reason string) {
	RegisterMetrics()
	decodeErrors.WithLabelValues(reason).Inc()
}

func RecordSolve(solver string, duration time.Duration, success bool) {
	RegisterMetrics()
	solveDuration.WithLabelValues(solver, strconv.FormatBool(success)).Observe(duration.Seconds())
}

// WriteTextfile writes the default registry in the text exposition format,
// for the node exporter textfile collector.
func WriteTextfile(path string) error {
	RegisterMetrics()
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}

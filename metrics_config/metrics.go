package metrics_config

import (
	"net/http"
	"os"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/dominant-strategies/go-ziftr/log"
)

// DefaultAddr is where the /metrics endpoint listens unless overridden.
const DefaultAddr = ":2112"

// enabled decides whether collectors created by this package are registered
// with the default prometheus registry. Collectors are always usable.
var enabled atomic.Bool

func init() {
	enabled.Store(true)
}

func EnableMetrics() {
	enabled.Store(true)
}

func DisableMetrics() {
	enabled.Store(false)
}

func MetricsEnabled() bool {
	return enabled.Load()
}

func register(c prometheus.Collector) {
	if !MetricsEnabled() {
		return
	}
	if err := prometheus.Register(c); err != nil {
		log.Global.WithField("err", err).Warn("Failed to register metric")
	}
}

func NewGaugeVec(name string, help string, labels ...string) *prometheus.GaugeVec {
	gaugeVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: name,
		Help: help,
	}, labels)
	register(gaugeVec)
	return gaugeVec
}

func NewGauge(name string, help string) prometheus.Gauge {
	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: name,
		Help: help,
	})
	register(gauge)
	return gauge
}

func NewCounter(name string, help string) prometheus.Counter {
	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: name,
		Help: help,
	})
	register(counter)
	return counter
}

// StartProcessMetrics serves the default registry on addr, refreshing the
// process CPU and memory gauges on every scrape. It blocks until the server
// fails.
func StartProcessMetrics(addr string) error {
	if !enabled.Load() {
		return nil
	}
	if addr == "" {
		addr = DefaultAddr
	}
	cpuGauge := NewGaugeVec("cpu_usage", "Process CPU usage in percent", "cpu_type")
	memGauge := NewGaugeVec("mem_usage", "The current memory usage", "mem_type")

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.InstrumentMetricHandler(
		prometheus.DefaultRegisterer, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			updateProcessMetrics(cpuGauge, memGauge)
			promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{}).ServeHTTP(w, r)
		}),
	))
	log.Global.WithField("addr", addr).Info("Serving metrics")
	return http.ListenAndServe(addr, mux)
}

func updateProcessMetrics(cpuGauge, memGauge *prometheus.GaugeVec) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		log.Global.WithField("err", err).Error("Failed to get process")
		return
	}
	if percent, err := proc.CPUPercent(); err != nil {
		log.Global.WithField("err", err).Error("Failed to get CPU percent")
	} else {
		cpuGauge.WithLabelValues("process").Set(percent)
	}
	if threads, err := proc.NumThreads(); err != nil {
		log.Global.WithField("err", err).Error("Failed to get threads")
	} else {
		cpuGauge.WithLabelValues("threads").Set(float64(threads))
	}
	if memInfo, err := proc.MemoryInfo(); err != nil {
		log.Global.WithField("err", err).Error("Error while getting memory info")
	} else {
		memGauge.WithLabelValues("rss").Set(float64(memInfo.RSS))
		memGauge.WithLabelValues("swap").Set(float64(memInfo.Swap))
	}
}

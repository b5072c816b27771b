package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2},
		},
		[]string{"method", "endpoint"},
	)

	ProblemsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "balance_problems_generated_total",
			Help: "Problems generated, split by whether the out-of-range fallback was used",
		},
		[]string{"fallback"},
	)

	AnswersSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "balance_answers_submitted_total",
			Help: "Submitted answers by result",
		},
		[]string{"result"},
	)

	LevelUps = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "balance_level_ups_total",
			Help: "Levels gained by players",
		},
	)

	ConfigCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "balance_config_cache_lookups_total",
			Help: "Game configuration cache lookups by outcome",
		},
		[]string{"outcome"},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			ProblemsGenerated,
			AnswersSubmitted,
			LevelUps,
			ConfigCacheLookups,
		)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

func ObserveProblem(fallback bool) {
	ProblemsGenerated.WithLabelValues(strconv.FormatBool(fallback)).Inc()
}

func ObserveAnswer(correct bool, levelsGained int) {
	result := "wrong"
	if correct {
		result = "correct"
	}
	AnswersSubmitted.WithLabelValues(result).Inc()
	if levelsGained > 0 {
		LevelUps.Add(float64(levelsGained))
	}
}

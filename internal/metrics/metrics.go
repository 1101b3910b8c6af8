package metrics

import (
	"github.com/maxaizer/hh-sync/internal/events"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"net/http"
	"sync"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hhsync_errors_total",
			Help: "Total number of logged failures by type.",
		},
		[]string{"type"},
	)
	GroupsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hhsync_groups_total",
			Help: "Total number of processed employer groups by sync status.",
		},
		[]string{"status"},
	)
	ListingsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hhsync_listings_total",
			Help: "Total number of processed vacancies by outcome.",
		},
		[]string{"outcome"},
	)
	SyncDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hhsync_sync_duration_seconds",
			Help:    "Duration of each fetch and sync run in seconds.",
			Buckets: []float64{1, 5, 15, 30, 60, 300},
		},
	)
	RequestDuration = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "hhsync_hh_request_duration_seconds",
			Help:       "Duration of hh.ru API requests by endpoint.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"endpoint"},
	)
)

var registerOnce sync.Once

func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ErrorsCounter)
		prometheus.MustRegister(GroupsCounter)
		prometheus.MustRegister(ListingsCounter)
		prometheus.MustRegister(SyncDuration)
		prometheus.MustRegister(RequestDuration)
	})
}

func StartServer(address string) *http.Server {
	Register()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: address, Handler: mux}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("metrics server stopped: %v", err)
		}
	}()
	log.Infof("metrics server listening on %s", address)
	return server
}

func OnGroupSynced(event events.GroupSynced) {
	GroupsCounter.WithLabelValues(string(event.Result.Status)).Inc()
	ListingsCounter.WithLabelValues("inserted").Add(float64(event.Result.ListingsInserted))
	ListingsCounter.WithLabelValues("skipped").Add(float64(event.Result.ListingsSkipped))
}

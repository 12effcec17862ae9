package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotel", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hotel", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	ServiceRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotel", Name: "service_requests_total", Help: "Dispatched guest services."},
		[]string{"kind", "outcome"}, // outcome: ok or an error kind
	)
	Revenue = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotel", Name: "room_revenue_total", Help: "Room cost charged at check-in and check-out."},
		[]string{"kind"},
	)
	Rooms = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Namespace: "hotel", Name: "rooms", Help: "Rooms by state."},
		[]string{"state"}, // state: available|occupied|dirty
	)
	JournalWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotel", Name: "journal_writes_total", Help: "Event journal writes."},
		[]string{"status"},
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotel", Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del
	)
)

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, ServiceRequests, Revenue, Rooms, JournalWrites, CacheEvents)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

// ObserveService counts one service request. Cost is added to revenue only when positive.
func ObserveService(kind, outcome string, cost float64) {
	ServiceRequests.WithLabelValues(kind, outcome).Inc()
	if cost > 0 {
		Revenue.WithLabelValues(kind).Add(cost)
	}
}

func SetRoomStates(available, occupied, dirty int) {
	Rooms.WithLabelValues("available").Set(float64(available))
	Rooms.WithLabelValues("occupied").Set(float64(occupied))
	Rooms.WithLabelValues("dirty").Set(float64(dirty))
}

func ObserveJournal(err error) {
	if err != nil {
		JournalWrites.WithLabelValues("error").Inc()
		return
	}
	JournalWrites.WithLabelValues("ok").Inc()
}

func ObserveCache(cache, event string) { // event: hit|miss|set|del
	CacheEvents.WithLabelValues(cache, event).Inc()
}

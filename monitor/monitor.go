// monitor/monitor.go
package monitor

import (
	"expvar"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	OnlineParticipants prometheus.Gauge
	ActiveRooms        prometheus.Gauge
	ActiveGames        prometheus.Gauge
	GuessesReceived    prometheus.Counter
	CorrectGuesses     prometheus.Counter
	TurnsCompleted     prometheus.Counter
	GamesCompleted     prometheus.Counter
	TurnDuration       prometheus.Histogram
}

func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		OnlineParticipants: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "online_participants",
			Help:      "Number of connected participants",
		}),
		ActiveRooms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_rooms",
			Help:      "Number of live rooms",
		}),
		ActiveGames: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_games",
			Help:      "Number of rooms with a game in progress",
		}),
		GuessesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guesses_received_total",
			Help:      "Total number of guesses received",
		}),
		CorrectGuesses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "correct_guesses_total",
			Help:      "Total number of correct guesses",
		}),
		TurnsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turns_completed_total",
			Help:      "Total number of completed turns",
		}),
		GamesCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_completed_total",
			Help:      "Total number of completed games",
		}),
		TurnDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "turn_duration_seconds",
			Help:      "Length of completed turns",
			Buckets:   prometheus.LinearBuckets(5, 5, 15),
		}),
	}

	prometheus.MustRegister(
		m.OnlineParticipants,
		m.ActiveRooms,
		m.ActiveGames,
		m.GuessesReceived,
		m.CorrectGuesses,
		m.TurnsCompleted,
		m.GamesCompleted,
		m.TurnDuration,
	)

	return m
}

type Monitor struct {
	metrics      *Metrics
	startTime    time.Time
	requestCount int64
	mutex        sync.Mutex
}

func NewMonitor(namespace string) *Monitor {
	return &Monitor{
		metrics:   NewMetrics(namespace),
		startTime: time.Now(),
	}
}

func (m *Monitor) StartServer(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	expvar.Publish("uptime", expvar.Func(func() interface{} {
		return time.Since(m.startTime).Seconds()
	}))
	expvar.Publish("requests", expvar.Func(func() interface{} {
		m.mutex.Lock()
		defer m.mutex.Unlock()
		return m.requestCount
	}))
	mux.Handle("/debug/vars", expvar.Handler())

	go http.ListenAndServe(addr, mux)
}

func (m *Monitor) IncOnlineParticipants() {
	m.metrics.OnlineParticipants.Inc()
}

func (m *Monitor) DecOnlineParticipants() {
	m.metrics.OnlineParticipants.Dec()
}

func (m *Monitor) SetActiveRooms(count int) {
	m.metrics.ActiveRooms.Set(float64(count))
}

func (m *Monitor) IncRequests() {
	m.mutex.Lock()
	m.requestCount++
	m.mutex.Unlock()
}

// --- game.Metrics ---

func (m *Monitor) GameStarted() {
	m.metrics.ActiveGames.Inc()
}

func (m *Monitor) GameEnded() {
	m.metrics.ActiveGames.Dec()
	m.metrics.GamesCompleted.Inc()
}

func (m *Monitor) TurnCompleted(duration time.Duration) {
	m.metrics.TurnsCompleted.Inc()
	m.metrics.TurnDuration.Observe(duration.Seconds())
}

func (m *Monitor) GuessReceived(correct bool) {
	m.metrics.GuessesReceived.Inc()
	if correct {
		m.metrics.CorrectGuesses.Inc()
	}
}

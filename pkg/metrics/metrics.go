package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics метрики сервиса
// Все методы безопасно вызывать на nil-указателе (метрики выключены)
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration   *prometheus.HistogramVec
	dbQueryErrors     *prometheus.CounterVec
	dbOpenConnections prometheus.Gauge
	dbInUse           prometheus.Gauge
	dbIdle            prometheus.Gauge
	dbWaitCount       prometheus.Gauge

	appointmentsFinalized prometheus.Counter
	finalizeDuplicates    prometheus.Counter
	checkoutSessions      prometheus.Counter
	checkoutFailures      *prometheus.CounterVec
	gatewayBreakerState   prometheus.Gauge

	recommendationSubscriptions prometheus.Counter
}

// New создает и регистрирует метрики в реестре по умолчанию
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegistry создает и регистрирует метрики в переданном реестре
func NewWithRegistry(reg prometheus.Registerer, serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		dbQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Failed database queries",
			ConstLabels: labels,
		}, []string{"operation"}),
		dbOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open database connections",
			ConstLabels: labels,
		}),
		dbInUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Database connections in use",
			ConstLabels: labels,
		}),
		dbIdle: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Idle database connections",
			ConstLabels: labels,
		}),
		dbWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: labels,
		}),
		appointmentsFinalized: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "appointments_finalized_total",
			Help:        "Appointments created from a pending booking",
			ConstLabels: labels,
		}),
		finalizeDuplicates: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "appointments_finalize_duplicates_total",
			Help:        "Repeated finalize calls for an already registered appointment",
			ConstLabels: labels,
		}),
		checkoutSessions: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "checkout_sessions_created_total",
			Help:        "Hosted checkout sessions created",
			ConstLabels: labels,
		}),
		checkoutFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "checkout_failures_total",
			Help:        "Checkout initiation failures by reason",
			ConstLabels: labels,
		}, []string{"reason"}),
		gatewayBreakerState: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "payment_gateway_breaker_state",
			Help:        "Payment gateway circuit breaker state (0=closed, 1=half-open, 2=open)",
			ConstLabels: labels,
		}),
		recommendationSubscriptions: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "doctor_recommendation_subscriptions_total",
			Help:        "Doctors marked as recommended after a paid subscription",
			ConstLabels: labels,
		}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbQueryErrors,
		m.dbOpenConnections,
		m.dbInUse,
		m.dbIdle,
		m.dbWaitCount,
		m.appointmentsFinalized,
		m.finalizeDuplicates,
		m.checkoutSessions,
		m.checkoutFailures,
		m.gatewayBreakerState,
		m.recommendationSubscriptions,
	)

	return m
}

// ObserveHTTP учитывает обработанный HTTP запрос
func (m *Metrics) ObserveHTTP(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveQuery учитывает запрос к БД
func (m *Metrics) ObserveQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil && err != sql.ErrNoRows {
		m.dbQueryErrors.WithLabelValues(operation).Inc()
	}
}

// SetPoolStats обновляет метрики пула соединений
func (m *Metrics) SetPoolStats(stats sql.DBStats) {
	if m == nil {
		return
	}
	m.dbOpenConnections.Set(float64(stats.OpenConnections))
	m.dbInUse.Set(float64(stats.InUse))
	m.dbIdle.Set(float64(stats.Idle))
	m.dbWaitCount.Set(float64(stats.WaitCount))
}

// IncAppointmentsFinalized учитывает созданную запись на приём
func (m *Metrics) IncAppointmentsFinalized() {
	if m == nil {
		return
	}
	m.appointmentsFinalized.Inc()
}

// IncFinalizeDuplicates учитывает повторный вызов финализации
func (m *Metrics) IncFinalizeDuplicates() {
	if m == nil {
		return
	}
	m.finalizeDuplicates.Inc()
}

// IncCheckoutSessions учитывает созданную сессию оплаты
func (m *Metrics) IncCheckoutSessions() {
	if m == nil {
		return
	}
	m.checkoutSessions.Inc()
}

// IncCheckoutFailures учитывает неудачную попытку начать оплату
func (m *Metrics) IncCheckoutFailures(reason string) {
	if m == nil {
		return
	}
	m.checkoutFailures.WithLabelValues(reason).Inc()
}

// IncRecommendationSubscriptions учитывает оплаченную подписку врача на рекомендацию
func (m *Metrics) IncRecommendationSubscriptions() {
	if m == nil {
		return
	}
	m.recommendationSubscriptions.Inc()
}

// SetGatewayBreakerState выставляет состояние circuit breaker платёжного шлюза
func (m *Metrics) SetGatewayBreakerState(state int) {
	if m == nil {
		return
	}
	m.gatewayBreakerState.Set(float64(state))
}

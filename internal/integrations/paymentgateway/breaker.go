package paymentgateway

import (
	"errors"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerConfig настройки circuit breaker
type BreakerConfig struct {
	// MaxRequests максимум запросов в состоянии half-open
	MaxRequests uint32
	// Interval период сброса счётчиков в состоянии closed
	Interval time.Duration
	// Timeout время до перехода из open в half-open
	Timeout time.Duration
	// ConsecutiveFailures число подряд идущих отказов до размыкания
	ConsecutiveFailures uint32
}

// BreakerObserver получает состояние circuit breaker (0=closed, 1=half-open, 2=open)
type BreakerObserver interface {
	SetGatewayBreakerState(state int)
}

func newBreaker(cfg BreakerConfig, observer BreakerObserver, log Logger) *gobreaker.CircuitBreaker {
	threshold := cfg.ConsecutiveFailures
	if threshold == 0 {
		threshold = 5
	}

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "payment-gateway",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn("Circuit breaker %s state changed: %s -> %s", name, from, to)
			if observer != nil {
				observer.SetGatewayBreakerState(int(to))
			}
		},
		IsSuccessful: func(err error) bool {
			// Отказ по вине запроса не говорит о недоступности шлюза
			return err == nil || errors.Is(err, ErrAmountTooLow) || errors.Is(err, errRejected)
		},
	})
}

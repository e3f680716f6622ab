package paymentgateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент hosted checkout платёжного шлюза
// Результат оплаты сообщается только редиректом браузера на success/cancel URL,
// серверного подтверждения (webhook) нет
type Client struct {
	cfg        Config
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	log        Logger
}

// NewClient создает новый экземпляр клиента платёжного шлюза
func NewClient(cfg Config, breakerCfg BreakerConfig, observer BreakerObserver, log Logger) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		breaker: newBreaker(breakerCfg, observer, log),
		log:     log,
	}
}

// CreateCheckoutSession создает сессию оплаты и возвращает URL для редиректа
// amountMinorUnits сумма в минимальных единицах валюты (центах)
func (c *Client) CreateCheckoutSession(
	ctx context.Context,
	amountMinorUnits int64,
	description string,
	successURL string,
	cancelURL string,
) (*CheckoutSession, error) {
	if amountMinorUnits <= 0 || amountMinorUnits < c.cfg.MinAmountMinor {
		return nil, fmt.Errorf("%w: amount=%d, minimum=%d", ErrAmountTooLow, amountMinorUnits, c.cfg.MinAmountMinor)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.createCheckoutSession(ctx, amountMinorUnits, description, successURL, cancelURL)
	})
	if err != nil {
		switch {
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			c.log.Warn("Payment gateway circuit is open: %v", err)
			return nil, fmt.Errorf("%w: circuit open: %v", ErrGateway, err)
		case errors.Is(err, ErrAmountTooLow), errors.Is(err, ErrGateway):
			return nil, err
		default:
			return nil, fmt.Errorf("%w: %v", ErrGateway, err)
		}
	}

	return result.(*CheckoutSession), nil
}

func (c *Client) createCheckoutSession(
	ctx context.Context,
	amountMinorUnits int64,
	description string,
	successURL string,
	cancelURL string,
) (*CheckoutSession, error) {
	endpoint := fmt.Sprintf("%s/v1/checkout/sessions", strings.TrimRight(c.cfg.BaseURL, "/"))

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", successURL)
	form.Set("cancel_url", cancelURL)
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", c.cfg.Currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(amountMinorUnits, 10))
	form.Set("line_items[0][price_data][product_data][name]", description)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrGateway, err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+c.cfg.SecretKey)
	req.Header.Set("Idempotency-Key", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrGateway, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrGateway, err)
	}

	// Обработка статус-кодов
	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		// Продолжаем обработку
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, c.mapClientError(resp.StatusCode, body)
	default:
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrGateway, resp.StatusCode, string(body))
	}

	var session checkoutSessionResponse
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("%w: %w: failed to decode response: %v", ErrGateway, ErrInvalidResponse, err)
	}
	if session.URL == "" {
		return nil, fmt.Errorf("%w: %w: empty redirect url", ErrGateway, ErrInvalidResponse)
	}

	c.log.Info("Checkout session created: id=%s, amount=%d %s", session.ID, amountMinorUnits, c.cfg.Currency)

	return &CheckoutSession{
		ID:          session.ID,
		RedirectURL: session.URL,
	}, nil
}

func (c *Client) mapClientError(status int, body []byte) error {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Code == gatewayCodeAmountTooSmall {
		return fmt.Errorf("%w: %s", ErrAmountTooLow, errResp.Error.Message)
	}

	c.log.Warn("Payment gateway rejected request: status=%d, body=%s", status, string(body))
	return fmt.Errorf("%w: %w: status %d: %s", ErrGateway, errRejected, status, errResp.Error.Message)
}

package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"

	"github.com/aegisops/actiongate/pkg/infra/httpx"
)

const (
	defaultTimeout     = 5 * time.Second
	breakerMaxFailures = 5
	breakerResetAfter  = 30 * time.Second
)

type Config struct {
	WebhookURL string
	AckURL     string
	Timeout    time.Duration
}

type webhookNotifier struct {
	logger  *logrus.Logger
	client  *fasthttp.Client
	breaker httpx.CircuitBreaker
	cfg     Config
}

// NewWebhookNotifier posts alerts and acks to an operator webhook. All
// failures are reported to the caller but the breaker keeps a flapping
// channel from stalling the request path.
func NewWebhookNotifier(logger *logrus.Logger, cfg Config) Notifier {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &webhookNotifier{
		logger: logger,
		client: &fasthttp.Client{
			MaxConnsPerHost: 64,
			ReadTimeout:     cfg.Timeout,
			WriteTimeout:    cfg.Timeout,
		},
		breaker: httpx.NewCircuitBreaker("notifier", logger, breakerResetAfter, breakerMaxFailures),
		cfg:     cfg,
	}
}

func (n *webhookNotifier) Notify(ctx context.Context, alert Alert) error {
	return n.post(ctx, n.cfg.WebhookURL, alert)
}

func (n *webhookNotifier) AckCommand(ctx context.Context, ack Ack) error {
	url := n.cfg.AckURL
	if url == "" {
		url = n.cfg.WebhookURL
	}
	return n.post(ctx, url, ack)
}

func (n *webhookNotifier) post(ctx context.Context, url string, payload interface{}) error {
	if url == "" {
		return fmt.Errorf("notifier webhook url is not configured")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal notifier payload: %w", err)
	}

	timeout := n.cfg.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		return ctx.Err()
	}

	return n.breaker.Execute(func() error {
		req := fasthttp.AcquireRequest()
		resp := fasthttp.AcquireResponse()
		defer fasthttp.ReleaseRequest(req)
		defer fasthttp.ReleaseResponse(resp)

		req.SetRequestURI(url)
		req.Header.SetMethod(fasthttp.MethodPost)
		req.Header.SetContentType("application/json")
		req.SetBodyRaw(body)

		if err := n.client.DoTimeout(req, resp, timeout); err != nil {
			return fmt.Errorf("notifier request failed: %w", err)
		}
		if resp.StatusCode() >= 300 {
			return fmt.Errorf("notifier returned status %d", resp.StatusCode())
		}
		return nil
	})
}

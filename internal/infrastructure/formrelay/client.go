package formrelay

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/ffmaxarena/arena-api/internal/domain/submission"
	"github.com/ffmaxarena/arena-api/internal/platform/logging"
	"github.com/ffmaxarena/arena-api/internal/platform/resilience"
	"github.com/jonboulle/clockwork"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ErrTransient marks relay failures worth counting against the breaker.
var ErrTransient = crerr.New("form relay transient failure")

const maxResponseLog = 2048

type Config struct {
	URL       string
	AccessKey string
	Timeout   time.Duration
	Breaker   resilience.BreakerConfig
}

// Client posts form messages to a Web3Forms compatible endpoint.
type Client struct {
	http      *fasthttp.Client
	url       string
	accessKey string
	timeout   time.Duration
	logger    *logging.Logger
	breaker   *resilience.Breaker
	clock     clockwork.Clock
}

type relayResponse struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}

func NewClient(cfg Config, logger *logging.Logger, clock clockwork.Clock) (*Client, error) {
	endpoint, err := validateEndpoint(cfg.URL)
	if err != nil {
		return nil, crerr.Wrap(err, "invalid FORM_RELAY_URL")
	}
	if strings.TrimSpace(cfg.AccessKey) == "" {
		return nil, crerr.New("form relay access key is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Client{
		http: &fasthttp.Client{
			Name:         "ffmaxarena-api",
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		url:       endpoint,
		accessKey: strings.TrimSpace(cfg.AccessKey),
		timeout:   timeout,
		logger:    logger,
		breaker:   resilience.NewBreaker(cfg.Breaker, clock),
		clock:     clock,
	}, nil
}

// Send forwards one message. A relay answer with success=false is returned
// as a Result, not an error.
func (c *Client) Send(ctx context.Context, msg submission.Message) (submission.Result, error) {
	if err := ctx.Err(); err != nil {
		return submission.Result{}, err
	}

	var result submission.Result
	err := c.breaker.Do(func() error {
		var callErr error
		result, callErr = c.post(ctx, msg)
		return callErr
	}, isTransient)
	if stderrors.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "form relay circuit breaker rejected request", "kind", msg.Kind, "state", c.breaker.State())
		return submission.Result{}, fmt.Errorf("%w: form relay is temporarily unavailable: %v", ErrTransient, err)
	}
	if err != nil {
		return submission.Result{}, err
	}

	return result, nil
}

func (c *Client) post(ctx context.Context, msg submission.Message) (submission.Result, error) {
	body, err := sonic.Marshal(c.payload(msg))
	if err != nil {
		return submission.Result{}, crerr.Wrap(err, "marshal relay payload")
	}

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("form_relay.url", c.url),
			attribute.String("form_relay.kind", string(msg.Kind)),
			attribute.String("form_relay.subject", msg.Subject),
			attribute.String("form_relay.request_curl_preview", buildCurlPreview(c.url, msg)),
		)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBody(body)

	deadline := c.clock.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	started := c.clock.Now()
	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return submission.Result{}, fmt.Errorf("%w: post form relay kind=%s: %v", ErrTransient, msg.Kind, err)
	}

	status := resp.StatusCode()
	raw := resp.Body()
	c.logger.InfoContext(ctx, "form relay response",
		"kind", msg.Kind,
		"status", status,
		"duration_ms", c.clock.Since(started).Milliseconds(),
	)

	if isRetryableStatus(status) {
		return submission.Result{}, fmt.Errorf("%w: form relay status=%d body=%s", ErrTransient, status, truncate(string(raw), maxResponseLog))
	}

	var decoded relayResponse
	if err := sonic.Unmarshal(raw, &decoded); err != nil || decoded.Success == nil {
		return submission.Result{}, crerr.Newf("form relay status=%d returned an unreadable body: %s", status, truncate(string(raw), maxResponseLog))
	}

	return submission.Result{Success: *decoded.Success, Message: decoded.Message}, nil
}

func (c *Client) payload(msg submission.Message) map[string]string {
	out := make(map[string]string, len(msg.Fields)+3)
	for k, v := range msg.Fields {
		out[k] = v
	}
	out["access_key"] = c.accessKey
	out["subject"] = msg.Subject
	out["from_name"] = msg.FromName
	return out
}

func isTransient(err error) bool {
	return stderrors.Is(err, ErrTransient)
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusTooManyRequests || status >= 500
}

func validateEndpoint(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}

	return candidate, nil
}

// buildCurlPreview renders the request for traces with the access key masked.
func buildCurlPreview(endpoint string, msg submission.Message) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("curl -X POST ")
	_, _ = buf.WriteString(shellQuote(endpoint))
	_, _ = buf.WriteString(" -H 'Content-Type: application/json' -H 'Accept: application/json' -d ")

	preview := map[string]string{
		"access_key": "***",
		"subject":    msg.Subject,
		"from_name":  msg.FromName,
	}
	for k, v := range msg.Fields {
		preview[k] = truncate(v, 256)
	}
	// ConfigStd sorts map keys so previews are stable.
	body, err := sonic.ConfigStd.Marshal(preview)
	if err != nil {
		body = []byte("{}")
	}
	_, _ = buf.WriteString(shellQuote(string(body)))

	return buf.String()
}

func shellQuote(v string) string {
	return "'" + strings.ReplaceAll(v, "'", `'"'"'`) + "'"
}

func truncate(v string, max int) string {
	if len(v) <= max {
		return v
	}
	return v[:max] + "..."
}

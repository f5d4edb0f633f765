package probe

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"bandwidthtest/internal/models"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

const readBufferSize = 8192

// Prober times a single download and reports its throughput.
type Prober struct {
	client *http.Client
	logger *zap.Logger
	now    func() time.Time
}

// Option configures a Prober.
type Option func(*Prober)

// WithClient replaces the HTTP client used for the download.
func WithClient(client *http.Client) Option {
	return func(p *Prober) {
		p.client = client
	}
}

// WithClock replaces the time source. Readings must be monotonic.
func WithClock(now func() time.Time) Option {
	return func(p *Prober) {
		p.now = now
	}
}

// New creates a Prober. Compression is disabled on the default transport
// so the counted bytes are the bytes sent by the server.
func New(logger *zap.Logger, opts ...Option) *Prober {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DisableCompression = true

	p := &Prober{
		client: &http.Client{Transport: transport},
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseTarget validates raw as an absolute http or https URL.
func ParseTarget(raw string) (models.Target, error) {
	if raw == "" {
		return models.Target{}, newError(KindMalformedURL, "no protocol: %s", raw)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return models.Target{}, &Error{Kind: KindMalformedURL, Err: err}
	}

	switch u.Scheme {
	case "":
		return models.Target{}, newError(KindMalformedURL, "no protocol: %s", raw)
	case "http", "https":
	default:
		return models.Target{}, newError(KindMalformedURL, "unknown protocol: %s", u.Scheme)
	}

	if u.Host == "" {
		return models.Target{}, newError(KindMalformedURL, "missing host: %s", raw)
	}

	return models.Target{URL: u}, nil
}

// Measure downloads raw to completion and returns the byte count and the
// time it took. The clock starts before the request is sent, so name
// resolution and the handshakes are part of the measured window. Any HTTP
// status is measured.
func (p *Prober) Measure(ctx context.Context, raw string) (models.Measurement, error) {
	target, err := ParseTarget(raw)
	if err != nil {
		return models.Measurement{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return models.Measurement{}, &Error{Kind: KindMalformedURL, Err: err}
	}

	p.logger.Debug("opening connection", zap.String("url", target.String()))

	start := p.now()
	resp, err := p.client.Do(req)
	if err != nil {
		return models.Measurement{}, &Error{Kind: KindConnection, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		p.logger.Debug("measuring non-2xx response",
			zap.String("url", target.String()),
			zap.Int("status", resp.StatusCode))
	}

	buf := make([]byte, readBufferSize)
	n, err := io.CopyBuffer(io.Discard, resp.Body, buf)
	if err != nil {
		p.logger.Debug("transfer aborted",
			zap.Int64("bytes", n),
			zap.Error(err))
		return models.Measurement{}, &Error{Kind: KindTransfer, Err: err}
	}
	elapsed := p.now().Sub(start)

	m := models.Measurement{
		Target:  target,
		Status:  resp.StatusCode,
		Bytes:   n,
		Elapsed: elapsed,
	}

	p.logger.Debug("transfer complete",
		zap.String("size", humanize.IBytes(uint64(n))),
		zap.Int64("bytes", n),
		zap.Duration("elapsed", elapsed))

	return m, nil
}

// Run measures raw and converts the result to kilobytes per second.
func (p *Prober) Run(ctx context.Context, raw string) (models.Throughput, error) {
	m, err := p.Measure(ctx, raw)
	if err != nil {
		return 0, err
	}

	if m.Elapsed < models.MinElapsed {
		p.logger.Debug("elapsed time below clock resolution, clamping",
			zap.Duration("elapsed", m.Elapsed),
			zap.Duration("min", models.MinElapsed))
	}

	kbps := m.Throughput()
	p.logger.Debug("throughput computed",
		zap.Int64("kilobytes", m.Kilobytes()),
		zap.Int64("kbps", int64(kbps)),
		zap.String("rate", humanize.IBytes(uint64(kbps)*1024)+"/s"))

	return kbps, nil
}

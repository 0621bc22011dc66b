package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/uplandimports/storefront/pkg/models"
)

// Mailer emails notifications to the business contact address. It adds a
// per-send timeout and a simple circuit breaker around the Transport.
type Mailer struct {
	cfg       Config
	transport Transport
	now       func() time.Time

	// circuit breaker state
	failures  int32
	openUntil int64 // unix nano
}

var _ Notifier = (*Mailer)(nil)

type Option func(*Mailer)

// WithTransport replaces the SMTP transport.
func WithTransport(t Transport) Option {
	return func(m *Mailer) {
		if t != nil {
			m.transport = t
		}
	}
}

// WithClock overrides the time source used for message dates and the circuit.
func WithClock(now func() time.Time) Option {
	return func(m *Mailer) {
		if now != nil {
			m.now = now
		}
	}
}

// NewMailer builds a Mailer. An incomplete config is accepted; every send
// then fails with ErrNotConfigured.
func NewMailer(cfg Config, opts ...Option) *Mailer {
	def := DefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.CircuitFailureThreshold <= 0 {
		cfg.CircuitFailureThreshold = def.CircuitFailureThreshold
	}
	if cfg.CircuitReset <= 0 {
		cfg.CircuitReset = def.CircuitReset
	}

	m := &Mailer{
		cfg: cfg,
		transport: SMTPTransport{
			Host:     cfg.Host,
			Port:     cfg.Port,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	logger.Info("notify: mailer created",
		slog.Bool("enabled", cfg.Enabled()),
		slog.String("host", cfg.Host),
		slog.Duration("timeout", cfg.Timeout))
	return m
}

// NotifyInquiry emails a summary of a stored inquiry. The inquirer's
// address is set as Reply-To.
func (m *Mailer) NotifyInquiry(ctx context.Context, n InquiryNotice) error {
	if !m.cfg.Enabled() {
		return ErrNotConfigured
	}
	body, err := renderInquiry(n)
	if err != nil {
		return err
	}
	return m.deliver(ctx, InquirySubject(n.Inquiry), n.Inquiry.Email, body,
		slog.String("kind", "inquiry"), slog.Int64("inquiry_id", n.Inquiry.ID))
}

// NotifyQuote emails a summary of a quote request, including pricing once
// the quote has been priced.
func (m *Mailer) NotifyQuote(ctx context.Context, q models.Quote) error {
	if !m.cfg.Enabled() {
		return ErrNotConfigured
	}
	body, err := renderQuote(q)
	if err != nil {
		return err
	}
	return m.deliver(ctx, QuoteSubject(q), q.Email, body,
		slog.String("kind", "quote"), slog.Int64("quote_id", q.ID))
}

func (m *Mailer) deliver(ctx context.Context, subject, replyTo, body string, attrs ...any) error {
	if m.isCircuitOpen() {
		return ErrCircuitOpen
	}

	ctx, cancel := context.WithTimeout(ctx, m.cfg.Timeout)
	defer cancel()

	from := m.cfg.sender()
	msg := buildMessage(from, m.cfg.To, replyTo, subject, body, m.now())

	start := m.now()
	if err := m.transport.Send(ctx, from, []string{m.cfg.To}, msg); err != nil {
		m.recordFailure()
		return fmt.Errorf("send mail: %w", err)
	}

	atomic.StoreInt32(&m.failures, 0)
	logger.Info("notify: mail sent", append(attrs, slog.Duration("latency", m.now().Sub(start)))...)
	return nil
}

func (m *Mailer) isCircuitOpen() bool {
	if atomic.LoadInt32(&m.failures) < int32(m.cfg.CircuitFailureThreshold) {
		return false
	}

	if m.now().UnixNano() < atomic.LoadInt64(&m.openUntil) {
		return true
	}

	// attempt half-open: reset failures and allow a send
	atomic.StoreInt32(&m.failures, 0)
	return false
}

func (m *Mailer) recordFailure() {
	v := atomic.AddInt32(&m.failures, 1)
	if v >= int32(m.cfg.CircuitFailureThreshold) {
		atomic.StoreInt64(&m.openUntil, m.now().Add(m.cfg.CircuitReset).UnixNano())
	}
}
